package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type PostRepository struct{ s *Store }

func (r *PostRepository) Create(ctx context.Context, post *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.posts[post.ID] = *post
	return nil
}

func (r *PostRepository) UpdateDetails(ctx context.Context, post *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, err := r.s.openPostLocked(post.ID)
	if err != nil {
		return err
	}
	cur.Description = post.Description
	cur.Institution = post.Institution
	r.s.posts[post.ID] = cur
	return nil
}

func (r *PostRepository) RaisePrice(ctx context.Context, id uuid.UUID, price float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, err := r.s.openPostLocked(id)
	if err != nil {
		return err
	}
	if cur.Price > price {
		return apperror.ErrPriceDecrease
	}
	cur.Price = price
	r.s.posts[id] = cur
	return nil
}

func (s *Store) openPostLocked(id uuid.UUID) (entity.Post, error) {
	cur, ok := s.posts[id]
	if !ok {
		return entity.Post{}, apperror.ErrPostNotFound
	}
	if cur.Status != valueobject.PostStatusOpen {
		return entity.Post{}, apperror.ErrPostClosed
	}
	return cur, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, apperror.ErrPostNotFound
	}
	return &p, nil
}

func (r *PostRepository) FindByStudentID(ctx context.Context, studentID uuid.UUID) ([]*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var result []*entity.Post
	for _, p := range r.s.posts {
		if p.StudentID == studentID {
			p := p
			result = append(result, &p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *PostRepository) ListOpen(ctx context.Context, filter repository.PostFilter) ([]*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var result []*entity.Post
	for _, p := range r.s.posts {
		if p.Status != valueobject.PostStatusOpen {
			continue
		}
		if filter.Institution != "" && !strings.EqualFold(p.Institution, filter.Institution) {
			continue
		}
		if filter.SubjectArea != "" && !strings.EqualFold(p.SubjectArea, filter.SubjectArea) {
			continue
		}
		if filter.PriceMin != nil && p.Price < *filter.PriceMin {
			continue
		}
		if filter.PriceMax != nil && p.Price > *filter.PriceMax {
			continue
		}
		p := p
		result = append(result, &p)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if filter.Ascending {
			a, b = b, a
		}
		if filter.SortBy == repository.PostSortByPrice && a.Price != b.Price {
			return a.Price > b.Price
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() > b.ID.String()
	})

	if filter.Offset >= len(result) {
		return []*entity.Post{}, nil
	}
	result = result[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *PostRepository) CloseIfOpen(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.closePostLocked(id)
}

func (s *Store) closePostLocked(id uuid.UUID) error {
	p, ok := s.posts[id]
	if !ok {
		return apperror.ErrPostNotFound
	}
	if !p.Status.CanTransitionTo(valueobject.PostStatusClosed) {
		return apperror.ErrPostClosed
	}
	p.Status = valueobject.PostStatusClosed
	s.posts[id] = p
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return apperror.ErrPostNotFound
	}
	for _, d := range r.s.deals {
		if d.PostID == id {
			return apperror.New(apperror.ErrCodeConflict, "по посту уже заключена сделка")
		}
	}
	delete(r.s.posts, id)
	for rid, resp := range r.s.responses {
		if resp.PostID != id {
			continue
		}
		delete(r.s.responses, rid)
		if resp.PrevResponseID != nil {
			delete(r.s.successors, *resp.PrevResponseID)
		}
	}
	return nil
}

type CatalogRepository struct{ s *Store }

func (r *CatalogRepository) Lookup(ctx context.Context, kind repository.CatalogKind, name string) (string, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	canonical, ok := r.s.catalog[catalogKey{kind, strings.ToLower(strings.TrimSpace(name))}]
	return canonical, ok, nil
}
