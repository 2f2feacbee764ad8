package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
)

type ProfileErrorRepository interface {
	Create(ctx context.Context, item *entity.ProfileError) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ProfileError, error)
	List(ctx context.Context) ([]*entity.ProfileError, error)
	// Take удаляет заявку в статусе REVIEW и возвращает её. Повторный вызов вернёт NOT_FOUND.
	Take(ctx context.Context, id uuid.UUID) (*entity.ProfileError, error)
}

type PostErrorRepository interface {
	Create(ctx context.Context, item *entity.PostError) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PostError, error)
	List(ctx context.Context) ([]*entity.PostError, error)
	Take(ctx context.Context, id uuid.UUID) (*entity.PostError, error)
}
