package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
)

type CreatePostRequest struct {
	WorkType    string  `json:"work_type" binding:"required"`
	SubjectArea string  `json:"subject_area" binding:"required"`
	Institution string  `json:"institution" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

type EditPostRequest struct {
	Description string `json:"description"`
	Institution string `json:"institution"`
}

type PriceRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// OpenPostsQuery - параметры GET /api/posts.
type OpenPostsQuery struct {
	Institution string   `form:"institution"`
	SubjectArea string   `form:"subject_area"`
	PriceMin    *float64 `form:"price_min"`
	PriceMax    *float64 `form:"price_max"`
	Sort        string   `form:"sort"`
	Order       string   `form:"order"`
	Offset      int      `form:"offset"`
	Limit       int      `form:"limit"`
}

type PostResponse struct {
	ID          uuid.UUID `json:"id"`
	StudentID   uuid.UUID `json:"student_id"`
	WorkType    string    `json:"work_type"`
	SubjectArea string    `json:"subject_area"`
	Institution string    `json:"institution"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToPostResponse(post *entity.Post) PostResponse {
	return PostResponse{
		ID:          post.ID,
		StudentID:   post.StudentID,
		WorkType:    post.WorkType,
		SubjectArea: post.SubjectArea,
		Institution: post.Institution,
		Description: post.Description,
		Price:       post.Price,
		Status:      string(post.Status),
		CreatedAt:   post.CreatedAt,
	}
}

func ToPostResponses(posts []*entity.Post) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, ToPostResponse(post))
	}
	return responses
}
