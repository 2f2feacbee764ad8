package complaint

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/logger"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
	"github.com/ignatzorin/docexchange-backend/internal/validation"
)

type FileDocumentComplaintUseCase struct {
	documentRepo  repository.DocumentRepository
	complaintRepo repository.DocumentComplaintRepository
}

func NewFileDocumentComplaintUseCase(documentRepo repository.DocumentRepository, complaintRepo repository.DocumentComplaintRepository) *FileDocumentComplaintUseCase {
	return &FileDocumentComplaintUseCase{documentRepo: documentRepo, complaintRepo: complaintRepo}
}

func (uc *FileDocumentComplaintUseCase) Execute(ctx context.Context, actor entity.Actor, documentID uuid.UUID, message string) (*entity.DocumentComplaint, error) {
	exists, err := uc.documentRepo.Exists(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.ErrDocumentNotFound
	}
	if err := validation.ValidateLength("текст жалобы", message, 0, validation.MaxMessageLength); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	complaint, err := entity.NewDocumentComplaint(documentID, actor.UserID, message)
	if err != nil {
		return nil, err
	}
	if err := uc.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"complaint_id": complaint.ID, "document_id": documentID}).Info("подана жалоба на документ")
	return complaint, nil
}

type ListDocumentComplaintsUseCase struct {
	complaintRepo repository.DocumentComplaintRepository
}

func NewListDocumentComplaintsUseCase(complaintRepo repository.DocumentComplaintRepository) *ListDocumentComplaintsUseCase {
	return &ListDocumentComplaintsUseCase{complaintRepo: complaintRepo}
}

func (uc *ListDocumentComplaintsUseCase) Execute(ctx context.Context, actor entity.Actor) ([]*entity.DocumentComplaint, error) {
	if !actor.IsModerator() {
		return nil, apperror.ErrModeratorOnly
	}
	return uc.complaintRepo.List(ctx)
}

type DeleteDocumentComplaintUseCase struct {
	complaintRepo repository.DocumentComplaintRepository
}

func NewDeleteDocumentComplaintUseCase(complaintRepo repository.DocumentComplaintRepository) *DeleteDocumentComplaintUseCase {
	return &DeleteDocumentComplaintUseCase{complaintRepo: complaintRepo}
}

func (uc *DeleteDocumentComplaintUseCase) Execute(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if !actor.IsModerator() {
		return apperror.ErrModeratorOnly
	}
	return uc.complaintRepo.Delete(ctx, id)
}
