package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type Deal struct {
	ID         uuid.UUID
	PostID     uuid.UUID
	ResponseID uuid.UUID
	TeacherID  uuid.UUID
	StudentID  uuid.UUID
	Price      float64
	Status     valueobject.DealStatus
	// Feedback: 0 - отзыва нет, 1..5 - оценка студента.
	Feedback   int
	CreatedAt  time.Time
	FinishedAt *time.Time
}

// NewDeal формирует сделку из принятого отклика преподавателя.
func NewDeal(post *Post, response *Response) (*Deal, error) {
	if !response.IsFromTeacher() {
		return nil, apperror.New(apperror.ErrCodePolicyViolation, "сделку можно заключить только по отклику преподавателя")
	}
	if response.PostID != post.ID {
		return nil, apperror.New(apperror.ErrCodeValidation, "отклик относится к другому посту")
	}
	return &Deal{
		ID:         uuid.New(),
		PostID:     post.ID,
		ResponseID: response.ID,
		TeacherID:  response.RespondentID,
		StudentID:  post.StudentID,
		Price:      response.Price,
		Status:     valueobject.DealStatusOpen,
		CreatedAt:  Now(),
	}, nil
}

func (d *Deal) IsParticipant(userID uuid.UUID) bool {
	return d.StudentID == userID || d.TeacherID == userID
}

// PartyRole возвращает роль участника сделки.
func (d *Deal) PartyRole(userID uuid.UUID) (valueobject.Role, bool) {
	switch userID {
	case d.StudentID:
		return valueobject.RoleStudent, true
	case d.TeacherID:
		return valueobject.RoleTeacher, true
	}
	return "", false
}

func (d *Deal) IsFinished() bool {
	return d.Status == valueobject.DealStatusFinished
}

func (d *Deal) HasFeedback() bool {
	return d.Feedback > 0
}

// AverageRating - среднее по оценкам больше нуля, 0 если оценок нет.
func AverageRating(scores []int) float64 {
	var sum, n int
	for _, s := range scores {
		if s > 0 {
			sum += s
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
