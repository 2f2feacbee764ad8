package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/deal"
)

type CreateDealRequest struct {
	ResponseID string `json:"response_id" binding:"required,uuid"`
}

type FeedbackRequest struct {
	Score int `json:"score"`
}

type DealResponse struct {
	ID         uuid.UUID  `json:"id"`
	PostID     uuid.UUID  `json:"post_id"`
	ResponseID uuid.UUID  `json:"response_id"`
	TeacherID  uuid.UUID  `json:"teacher_id"`
	StudentID  uuid.UUID  `json:"student_id"`
	Price      float64    `json:"price"`
	Status     string     `json:"status"`
	Feedback   *int       `json:"feedback"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at"`
}

type RatingResponse struct {
	TeacherID uuid.UUID `json:"teacher_id"`
	Rating    float64   `json:"rating"`
	Votes     int       `json:"votes"`
}

func ToDealResponse(d *entity.Deal) DealResponse {
	resp := DealResponse{
		ID:         d.ID,
		PostID:     d.PostID,
		ResponseID: d.ResponseID,
		TeacherID:  d.TeacherID,
		StudentID:  d.StudentID,
		Price:      d.Price,
		Status:     string(d.Status),
		CreatedAt:  d.CreatedAt,
		FinishedAt: d.FinishedAt,
	}
	if d.HasFeedback() {
		score := d.Feedback
		resp.Feedback = &score
	}
	return resp
}

func ToDealResponses(deals []*entity.Deal) []DealResponse {
	responses := make([]DealResponse, 0, len(deals))
	for _, d := range deals {
		responses = append(responses, ToDealResponse(d))
	}
	return responses
}

func ToRatingResponse(r *deal.TeacherRating) RatingResponse {
	return RatingResponse{TeacherID: r.TeacherID, Rating: r.Rating, Votes: r.Votes}
}
