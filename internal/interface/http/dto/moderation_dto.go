package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
)

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// ProfileErrorResponse не содержит хеш пароля и номер карты.
type ProfileErrorResponse struct {
	ID              uuid.UUID  `json:"id"`
	TargetProfileID *uuid.UUID `json:"target_profile_id"`
	FullName        string     `json:"full_name,omitempty"`
	Email           string     `json:"email,omitempty"`
	PhoneNumber     string     `json:"phone_number,omitempty"`
	Role            string     `json:"role"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}

type PostErrorResponse struct {
	ID          uuid.UUID  `json:"id"`
	PostID      *uuid.UUID `json:"post_id"`
	StudentID   uuid.UUID  `json:"student_id"`
	WorkType    string     `json:"work_type"`
	SubjectArea string     `json:"subject_area"`
	Institution string     `json:"institution,omitempty"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

type DecisionResponse struct {
	ReviewID uuid.UUID     `json:"review_id"`
	Status   string        `json:"status"`
	User     *UserResponse `json:"user,omitempty"`
	Post     *PostResponse `json:"post,omitempty"`
}

func ToProfileErrorResponse(e *entity.ProfileError) ProfileErrorResponse {
	return ProfileErrorResponse{
		ID:              e.ID,
		TargetProfileID: e.TargetProfileID,
		FullName:        e.FullName,
		Email:           e.Email,
		PhoneNumber:     e.PhoneNumber,
		Role:            string(e.Role),
		Description:     e.Description,
		Status:          string(e.Status),
		CreatedAt:       e.CreatedAt,
	}
}

func ToProfileErrorResponses(items []*entity.ProfileError) []ProfileErrorResponse {
	result := make([]ProfileErrorResponse, 0, len(items))
	for _, e := range items {
		result = append(result, ToProfileErrorResponse(e))
	}
	return result
}

func ToPostErrorResponse(e *entity.PostError) PostErrorResponse {
	return PostErrorResponse{
		ID:          e.ID,
		PostID:      e.PostID,
		StudentID:   e.StudentID,
		WorkType:    e.WorkType,
		SubjectArea: e.SubjectArea,
		Institution: e.Institution,
		Description: e.Description,
		Price:       e.Price,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
	}
}

func ToPostErrorResponses(items []*entity.PostError) []PostErrorResponse {
	result := make([]PostErrorResponse, 0, len(items))
	for _, e := range items {
		result = append(result, ToPostErrorResponse(e))
	}
	return result
}

func ReviewAccepted(id uuid.UUID) ReviewAcceptedResponse {
	return ReviewAcceptedResponse{ReviewID: id, Status: "REVIEW"}
}
