package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type ProfileErrorRepository struct{ s *Store }

func cloneProfileError(e entity.ProfileError) *entity.ProfileError {
	e.TargetProfileID = clonePtr(e.TargetProfileID)
	return &e
}

func (r *ProfileErrorRepository) Create(ctx context.Context, item *entity.ProfileError) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.profileErrors[item.ID] = *cloneProfileError(*item)
	return nil
}

func (r *ProfileErrorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProfileError, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.profileErrors[id]
	if !ok {
		return nil, apperror.ErrProfileErrorNotFound
	}
	return cloneProfileError(e), nil
}

func (r *ProfileErrorRepository) List(ctx context.Context) ([]*entity.ProfileError, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := make([]*entity.ProfileError, 0, len(r.s.profileErrors))
	for _, e := range r.s.profileErrors {
		result = append(result, cloneProfileError(e))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *ProfileErrorRepository) Take(ctx context.Context, id uuid.UUID) (*entity.ProfileError, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.profileErrors[id]
	if !ok || e.Status != valueobject.ReviewStatusReview {
		return nil, apperror.ErrProfileErrorNotFound
	}
	delete(r.s.profileErrors, id)
	return cloneProfileError(e), nil
}

type PostErrorRepository struct{ s *Store }

func clonePostError(e entity.PostError) *entity.PostError {
	e.PostID = clonePtr(e.PostID)
	return &e
}

func (r *PostErrorRepository) Create(ctx context.Context, item *entity.PostError) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.postErrors[item.ID] = *clonePostError(*item)
	return nil
}

func (r *PostErrorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PostError, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.postErrors[id]
	if !ok {
		return nil, apperror.ErrPostErrorNotFound
	}
	return clonePostError(e), nil
}

func (r *PostErrorRepository) List(ctx context.Context) ([]*entity.PostError, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := make([]*entity.PostError, 0, len(r.s.postErrors))
	for _, e := range r.s.postErrors {
		result = append(result, clonePostError(e))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *PostErrorRepository) Take(ctx context.Context, id uuid.UUID) (*entity.PostError, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.postErrors[id]
	if !ok || e.Status != valueobject.ReviewStatusReview {
		return nil, apperror.ErrPostErrorNotFound
	}
	delete(r.s.postErrors, id)
	return clonePostError(e), nil
}
