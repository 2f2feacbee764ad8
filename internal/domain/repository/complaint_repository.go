package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
)

type ComplaintScope string

const (
	ComplaintScopeAll        ComplaintScope = ""
	ComplaintScopeMine       ComplaintScope = "mine"
	ComplaintScopeUnassigned ComplaintScope = "unassigned"
)

type ComplaintFilter struct {
	Scope       ComplaintScope
	ModeratorID uuid.UUID
	// Status сравнивается без учёта регистра. Пусто - любой.
	Status        string
	PlaintiffRole valueobject.Role
	Ascending     bool
}

type ComplaintRepository interface {
	// Create возвращает CONFLICT, если истец уже жаловался на эту сделку.
	Create(ctx context.Context, complaint *entity.Complaint) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error)
	FindByDealAndPlaintiff(ctx context.Context, dealID, plaintiffID uuid.UUID) (*entity.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter) ([]*entity.Complaint, error)
	// Assign назначает модератора неназначенной жалобе, иначе CONFLICT.
	Assign(ctx context.Context, id, moderatorID uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type DocumentRepository interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type DocumentComplaintRepository interface {
	Create(ctx context.Context, complaint *entity.DocumentComplaint) error
	List(ctx context.Context) ([]*entity.DocumentComplaint, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
