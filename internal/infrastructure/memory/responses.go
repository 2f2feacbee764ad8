package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type ResponseRepository struct{ s *Store }

func (r *ResponseRepository) Append(ctx context.Context, response *entity.Response) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[response.PostID]; !ok {
		return apperror.ErrPostNotFound
	}
	if response.PrevResponseID != nil {
		prev := *response.PrevResponseID
		if _, ok := r.s.responses[prev]; !ok {
			return apperror.ErrResponseNotFound
		}
		if _, taken := r.s.successors[prev]; taken {
			return apperror.New(apperror.ErrCodeConflict, "на этот отклик уже ответили")
		}
		r.s.successors[prev] = response.ID
	} else {
		for _, existing := range r.s.responses {
			if existing.PostID == response.PostID && existing.PrevResponseID == nil && existing.RespondentID == response.RespondentID {
				return apperror.ErrAlreadyResponded
			}
		}
	}
	r.s.responses[response.ID] = *cloneResponse(*response)
	return nil
}

func (r *ResponseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Response, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	resp, ok := r.s.responses[id]
	if !ok {
		return nil, apperror.ErrResponseNotFound
	}
	return cloneResponse(resp), nil
}

func (r *ResponseRepository) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*entity.Response, error) {
	return r.FindByPostIDs(ctx, []uuid.UUID{postID})
}

func (r *ResponseRepository) FindByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]*entity.Response, error) {
	want := make(map[uuid.UUID]struct{}, len(postIDs))
	for _, id := range postIDs {
		want[id] = struct{}{}
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var result []*entity.Response
	for _, resp := range r.s.responses {
		if _, ok := want[resp.PostID]; ok {
			result = append(result, cloneResponse(resp))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *ResponseRepository) FindPostIDsByRespondent(ctx context.Context, respondentID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := make(map[uuid.UUID]struct{})
	var result []uuid.UUID
	for _, resp := range r.s.responses {
		if resp.RespondentID != respondentID {
			continue
		}
		if _, ok := seen[resp.PostID]; !ok {
			seen[resp.PostID] = struct{}{}
			result = append(result, resp.PostID)
		}
	}
	return result, nil
}
