package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type DealRepository struct{ s *Store }

func (r *DealRepository) CreateAndClosePost(ctx context.Context, deal *entity.Deal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.deals {
		if d.PostID == deal.PostID {
			return apperror.ErrPostClosed
		}
	}
	if err := r.s.closePostLocked(deal.PostID); err != nil {
		return err
	}
	d := *deal
	d.FinishedAt = clonePtr(deal.FinishedAt)
	r.s.deals[deal.ID] = d
	return nil
}

func (r *DealRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Deal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.deals[id]
	if !ok {
		return nil, apperror.ErrDealNotFound
	}
	d.FinishedAt = clonePtr(d.FinishedAt)
	return &d, nil
}

func (r *DealRepository) ExistsForPost(ctx context.Context, postID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.deals {
		if d.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

func (r *DealRepository) FindByTeacherID(ctx context.Context, teacherID uuid.UUID) ([]*entity.Deal, error) {
	return r.filter(func(d entity.Deal) bool { return d.TeacherID == teacherID }), nil
}

func (r *DealRepository) FindByStudentID(ctx context.Context, studentID uuid.UUID) ([]*entity.Deal, error) {
	return r.filter(func(d entity.Deal) bool { return d.StudentID == studentID }), nil
}

func (r *DealRepository) filter(match func(entity.Deal) bool) []*entity.Deal {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var result []*entity.Deal
	for _, d := range r.s.deals {
		if match(d) {
			d.FinishedAt = clonePtr(d.FinishedAt)
			result = append(result, &d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (r *DealRepository) Finish(ctx context.Context, id uuid.UUID, finishedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.deals[id]
	if !ok {
		return apperror.ErrDealNotFound
	}
	if !d.Status.CanTransitionTo(valueobject.DealStatusFinished) {
		return apperror.New(apperror.ErrCodeConflict, "сделка уже завершена")
	}
	d.Status = valueobject.DealStatusFinished
	d.FinishedAt = &finishedAt
	r.s.deals[id] = d
	return nil
}

func (r *DealRepository) SetFeedback(ctx context.Context, id uuid.UUID, score int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.deals[id]
	if !ok {
		return apperror.ErrDealNotFound
	}
	if !d.IsFinished() || d.HasFeedback() {
		return apperror.New(apperror.ErrCodeConflict, "отзыв по сделке уже оставлен")
	}
	d.Feedback = score
	r.s.deals[id] = d
	return nil
}

func (r *DealRepository) FeedbackScores(ctx context.Context, teacherID uuid.UUID) ([]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var scores []int
	for _, d := range r.s.deals {
		if d.TeacherID == teacherID && d.Feedback > 0 {
			scores = append(scores, d.Feedback)
		}
	}
	return scores, nil
}
