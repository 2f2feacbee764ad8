package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.contactTakenLocked(user) {
		return apperror.New(apperror.ErrCodeConflict, "email или телефон уже используются")
	}
	r.s.users[user.ID] = *cloneUser(*user)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return apperror.ErrUserNotFound
	}
	if r.contactTakenLocked(user) {
		return apperror.New(apperror.ErrCodeConflict, "email или телефон уже используются")
	}
	r.s.users[user.ID] = *cloneUser(*user)
	return nil
}

func (r *UserRepository) contactTakenLocked(user *entity.User) bool {
	for id, u := range r.s.users {
		if id == user.ID {
			continue
		}
		if strings.EqualFold(u.Email, user.Email) || (user.PhoneNumber != "" && u.PhoneNumber == user.PhoneNumber) {
			return true
		}
	}
	return false
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return apperror.ErrUserNotFound
	}
	if r.hasHistoryLocked(id) {
		return apperror.ErrAccountHasHistory
	}
	delete(r.s.users, id)
	for itemID, item := range r.s.profileErrors {
		if item.TargetProfileID != nil && *item.TargetProfileID == id {
			delete(r.s.profileErrors, itemID)
		}
	}
	return nil
}

func (r *UserRepository) hasHistoryLocked(id uuid.UUID) bool {
	for _, p := range r.s.posts {
		if p.StudentID == id {
			return true
		}
	}
	for _, resp := range r.s.responses {
		if resp.RespondentID == id {
			return true
		}
	}
	for _, d := range r.s.deals {
		if d.TeacherID == id || d.StudentID == id {
			return true
		}
	}
	for _, c := range r.s.complaints {
		if c.PlaintiffID == id || (c.ModeratorID != nil && *c.ModeratorID == id) {
			return true
		}
	}
	for _, c := range r.s.documentComplaints {
		if c.PlaintiffID == id {
			return true
		}
	}
	for _, item := range r.s.postErrors {
		if item.StudentID == id {
			return true
		}
	}
	return false
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperror.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, apperror.ErrUserNotFound
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, exceptID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for id, u := range r.s.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) ExistsByPhone(ctx context.Context, phone string, exceptID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for id, u := range r.s.users {
		if id != exceptID && u.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}
