package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	// UpdateDetails сохраняет описание и учебное заведение, только пока пост открыт. Цену не трогает.
	UpdateDetails(ctx context.Context, post *entity.Post) error
	// RaisePrice ставит новую цену, если пост открыт и текущая цена не выше price.
	RaisePrice(ctx context.Context, id uuid.UUID, price float64) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	FindByStudentID(ctx context.Context, studentID uuid.UUID) ([]*entity.Post, error)
	// ListOpen возвращает только открытые посты.
	ListOpen(ctx context.Context, filter PostFilter) ([]*entity.Post, error)
	// CloseIfOpen переводит пост OPEN -> CLOSED. Если пост уже закрыт, возвращает ErrPostClosed.
	CloseIfOpen(ctx context.Context, id uuid.UUID) error
	// Delete удаляет пост вместе с откликами.
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostSortField string

const (
	PostSortByDate  PostSortField = "date"
	PostSortByPrice PostSortField = "price"
)

type PostFilter struct {
	Institution string
	SubjectArea string
	PriceMin    *float64
	PriceMax    *float64
	SortBy      PostSortField
	Ascending   bool
	Limit       int
	Offset      int
}

type CatalogKind string

const (
	CatalogWorkType    CatalogKind = "work_type"
	CatalogSubjectArea CatalogKind = "subject_area"
	CatalogInstitution CatalogKind = "institution"
)

type CatalogRepository interface {
	// Lookup ищет запись без учёта регистра и возвращает её каноническое имя.
	Lookup(ctx context.Context, kind CatalogKind, name string) (string, bool, error)
}
