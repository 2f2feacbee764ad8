package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
)

type ComplaintRequest struct {
	Message string `json:"message" binding:"required"`
}

type ComplaintStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ComplaintResponse struct {
	ID            uuid.UUID  `json:"id"`
	DealID        uuid.UUID  `json:"deal_id"`
	PlaintiffID   uuid.UUID  `json:"plaintiff_id"`
	PlaintiffRole string     `json:"plaintiff_role"`
	Message       string     `json:"message"`
	Status        string     `json:"status"`
	ModeratorID   *uuid.UUID `json:"moderator_id"`
	CreatedAt     time.Time  `json:"created_at"`
}

type DocumentComplaintResponse struct {
	ID          uuid.UUID `json:"id"`
	DocumentID  uuid.UUID `json:"document_id"`
	PlaintiffID uuid.UUID `json:"plaintiff_id"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToComplaintResponse(c *entity.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:            c.ID,
		DealID:        c.DealID,
		PlaintiffID:   c.PlaintiffID,
		PlaintiffRole: strings.ToUpper(string(c.PlaintiffRole)),
		Message:       c.Message,
		Status:        c.Status,
		ModeratorID:   c.ModeratorID,
		CreatedAt:     c.CreatedAt,
	}
}

func ToComplaintResponses(items []*entity.Complaint) []ComplaintResponse {
	result := make([]ComplaintResponse, 0, len(items))
	for _, c := range items {
		result = append(result, ToComplaintResponse(c))
	}
	return result
}

func ToDocumentComplaintResponse(c *entity.DocumentComplaint) DocumentComplaintResponse {
	return DocumentComplaintResponse{
		ID:          c.ID,
		DocumentID:  c.DocumentID,
		PlaintiffID: c.PlaintiffID,
		Message:     c.Message,
		CreatedAt:   c.CreatedAt,
	}
}

func ToDocumentComplaintResponses(items []*entity.DocumentComplaint) []DocumentComplaintResponse {
	result := make([]DocumentComplaintResponse, 0, len(items))
	for _, c := range items {
		result = append(result, ToDocumentComplaintResponse(c))
	}
	return result
}
