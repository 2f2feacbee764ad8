package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	// Delete удаляет только пользователя без истории на площадке.
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// ExistsByEmail и ExistsByPhone не учитывают пользователя exceptID (uuid.Nil - никого не исключать).
	ExistsByEmail(ctx context.Context, email string, exceptID uuid.UUID) (bool, error)
	ExistsByPhone(ctx context.Context, phone string, exceptID uuid.UUID) (bool, error)
}
