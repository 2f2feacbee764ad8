package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
)

// ResponseRepository хранит отклики только на добавление.
type ResponseRepository interface {
	// Append добавляет отклик. Если у предыдущего отклика уже есть продолжение, возвращает CONFLICT.
	Append(ctx context.Context, response *entity.Response) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Response, error)
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*entity.Response, error)
	FindByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]*entity.Response, error)
	FindPostIDsByRespondent(ctx context.Context, respondentID uuid.UUID) ([]uuid.UUID, error)
}
