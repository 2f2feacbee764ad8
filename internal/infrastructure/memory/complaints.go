package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type ComplaintRepository struct{ s *Store }

func cloneComplaint(c entity.Complaint) *entity.Complaint {
	c.ModeratorID = clonePtr(c.ModeratorID)
	return &c
}

func (r *ComplaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.deals[complaint.DealID]; !ok {
		return apperror.ErrDealNotFound
	}
	for _, c := range r.s.complaints {
		if c.DealID == complaint.DealID && c.PlaintiffID == complaint.PlaintiffID {
			return apperror.New(apperror.ErrCodeConflict, "вы уже подали жалобу по этой сделке")
		}
	}
	r.s.complaints[complaint.ID] = *cloneComplaint(*complaint)
	return nil
}

func (r *ComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.complaints[id]
	if !ok {
		return nil, apperror.ErrComplaintNotFound
	}
	return cloneComplaint(c), nil
}

func (r *ComplaintRepository) FindByDealAndPlaintiff(ctx context.Context, dealID, plaintiffID uuid.UUID) (*entity.Complaint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.complaints {
		if c.DealID == dealID && c.PlaintiffID == plaintiffID {
			return cloneComplaint(c), nil
		}
	}
	return nil, apperror.ErrComplaintNotFound
}

func (r *ComplaintRepository) List(ctx context.Context, filter repository.ComplaintFilter) ([]*entity.Complaint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var result []*entity.Complaint
	for _, c := range r.s.complaints {
		switch filter.Scope {
		case repository.ComplaintScopeMine:
			if !c.IsAssignedTo(filter.ModeratorID) {
				continue
			}
		case repository.ComplaintScopeUnassigned:
			if c.ModeratorID != nil {
				continue
			}
		}
		if filter.Status != "" && !strings.EqualFold(c.Status, filter.Status) {
			continue
		}
		if filter.PlaintiffRole != "" && c.PlaintiffRole != filter.PlaintiffRole {
			continue
		}
		result = append(result, cloneComplaint(c))
	}
	sort.Slice(result, func(i, j int) bool {
		if filter.Ascending {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *ComplaintRepository) Assign(ctx context.Context, id, moderatorID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.complaints[id]
	if !ok {
		return apperror.ErrComplaintNotFound
	}
	if c.ModeratorID != nil {
		return apperror.New(apperror.ErrCodeConflict, "жалоба уже назначена модератору")
	}
	c.ModeratorID = &moderatorID
	r.s.complaints[id] = c
	return nil
}

func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.complaints[id]
	if !ok {
		return apperror.ErrComplaintNotFound
	}
	c.Status = status
	r.s.complaints[id] = c
	return nil
}

func (r *ComplaintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.complaints[id]; !ok {
		return apperror.ErrComplaintNotFound
	}
	delete(r.s.complaints, id)
	return nil
}

type DocumentRepository struct{ s *Store }

func (r *DocumentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.documents[id]
	return ok, nil
}

type DocumentComplaintRepository struct{ s *Store }

func (r *DocumentComplaintRepository) Create(ctx context.Context, complaint *entity.DocumentComplaint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.documents[complaint.DocumentID]; !ok {
		return apperror.ErrDocumentNotFound
	}
	r.s.documentComplaints[complaint.ID] = *complaint
	return nil
}

func (r *DocumentComplaintRepository) List(ctx context.Context) ([]*entity.DocumentComplaint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := make([]*entity.DocumentComplaint, 0, len(r.s.documentComplaints))
	for _, c := range r.s.documentComplaints {
		c := c
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *DocumentComplaintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.documentComplaints[id]; !ok {
		return apperror.ErrDocumentComplaintNotFound
	}
	delete(r.s.documentComplaints, id)
	return nil
}
