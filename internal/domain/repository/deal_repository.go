package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
)

type DealRepository interface {
	// CreateAndClosePost атомарно закрывает пост и сохраняет сделку.
	// Проигравший гонку получает CONFLICT, пост при этом не меняется.
	CreateAndClosePost(ctx context.Context, deal *entity.Deal) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Deal, error)
	ExistsForPost(ctx context.Context, postID uuid.UUID) (bool, error)
	FindByTeacherID(ctx context.Context, teacherID uuid.UUID) ([]*entity.Deal, error)
	FindByStudentID(ctx context.Context, studentID uuid.UUID) ([]*entity.Deal, error)
	// Finish переводит сделку OPEN -> FINISHED, иначе CONFLICT.
	Finish(ctx context.Context, id uuid.UUID, finishedAt time.Time) error
	// SetFeedback записывает оценку завершённой сделки ровно один раз, иначе CONFLICT.
	SetFeedback(ctx context.Context, id uuid.UUID, score int) error
	FeedbackScores(ctx context.Context, teacherID uuid.UUID) ([]int, error)
}
