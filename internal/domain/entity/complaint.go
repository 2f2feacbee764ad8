package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type Complaint struct {
	ID            uuid.UUID
	DealID        uuid.UUID
	PlaintiffID   uuid.UUID
	PlaintiffRole valueobject.Role
	Message       string
	Status        string
	ModeratorID   *uuid.UUID
	CreatedAt     time.Time
}

func NewComplaint(deal *Deal, plaintiffID uuid.UUID, message string) (*Complaint, error) {
	role, ok := deal.PartyRole(plaintiffID)
	if !ok {
		return nil, apperror.New(apperror.ErrCodeForbidden, "жалобу может подать только участник сделки")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "текст жалобы обязателен")
	}
	return &Complaint{
		ID:            uuid.New(),
		DealID:        deal.ID,
		PlaintiffID:   plaintiffID,
		PlaintiffRole: role,
		Message:       message,
		Status:        valueobject.ComplaintStatusNew,
		CreatedAt:     Now(),
	}, nil
}

func (c *Complaint) IsAssignedTo(moderatorID uuid.UUID) bool {
	return c.ModeratorID != nil && *c.ModeratorID == moderatorID
}

// NormalizeComplaintStatus обрезает пробелы и требует непустое значение.
func NormalizeComplaintStatus(status string) (string, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return "", apperror.New(apperror.ErrCodeValidation, "статус жалобы обязателен")
	}
	return status, nil
}

type DocumentComplaint struct {
	ID          uuid.UUID
	DocumentID  uuid.UUID
	PlaintiffID uuid.UUID
	Message     string
	CreatedAt   time.Time
}

func NewDocumentComplaint(documentID, plaintiffID uuid.UUID, message string) (*DocumentComplaint, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "текст жалобы обязателен")
	}
	return &DocumentComplaint{
		ID:          uuid.New(),
		DocumentID:  documentID,
		PlaintiffID: plaintiffID,
		Message:     message,
		CreatedAt:   Now(),
	}, nil
}
