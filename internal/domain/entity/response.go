package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

// Response - сообщение в ветке торга. После создания не меняется.
type Response struct {
	ID             uuid.UUID
	PostID         uuid.UUID
	RespondentID   uuid.UUID
	RespondentRole valueobject.Role
	Price          float64
	PrevResponseID *uuid.UUID
	CreatedAt      time.Time
}

func (r *Response) IsRoot() bool {
	return r.PrevResponseID == nil
}

func (r *Response) IsFromTeacher() bool {
	return r.RespondentRole == valueobject.RoleTeacher
}

// NewRootResponse открывает новую ветку: преподаватель отвечает прямо на пост.
func NewRootResponse(postID uuid.UUID, teacher Actor, price float64) (*Response, error) {
	if !teacher.IsTeacher() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "откликнуться на пост может только преподаватель")
	}
	p, err := valueobject.NewPrice(price)
	if err != nil {
		return nil, err
	}
	return &Response{
		ID:             uuid.New(),
		PostID:         postID,
		RespondentID:   teacher.UserID,
		RespondentRole: teacher.Role,
		Price:          p,
		CreatedAt:      Now(),
	}, nil
}

// NewCounterOffer создаёт ответ на target. Время строго больше времени target,
// чтобы порядок в ветке не зависел от разрешения часов.
func NewCounterOffer(target *Response, actor Actor, price float64) (*Response, error) {
	if !actor.Role.IsParty() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "участвовать в торге могут только студент и преподаватель")
	}
	p, err := valueobject.NewPrice(price)
	if err != nil {
		return nil, err
	}
	createdAt := Now()
	if !createdAt.After(target.CreatedAt) {
		createdAt = target.CreatedAt.Add(time.Microsecond)
	}
	prev := target.ID
	return &Response{
		ID:             uuid.New(),
		PostID:         target.PostID,
		RespondentID:   actor.UserID,
		RespondentRole: actor.Role,
		Price:          p,
		PrevResponseID: &prev,
		CreatedAt:      createdAt,
	}, nil
}
