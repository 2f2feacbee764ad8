package complaint

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/logger"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
	"github.com/ignatzorin/docexchange-backend/internal/validation"
)

type CreateComplaintUseCase struct {
	dealRepo      repository.DealRepository
	complaintRepo repository.ComplaintRepository
}

func NewCreateComplaintUseCase(dealRepo repository.DealRepository, complaintRepo repository.ComplaintRepository) *CreateComplaintUseCase {
	return &CreateComplaintUseCase{dealRepo: dealRepo, complaintRepo: complaintRepo}
}

func (uc *CreateComplaintUseCase) Execute(ctx context.Context, actor entity.Actor, dealID uuid.UUID, message string) (*entity.Complaint, error) {
	deal, err := uc.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateLength("текст жалобы", message, 0, validation.MaxMessageLength); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	complaint, err := entity.NewComplaint(deal, actor.UserID, message)
	if err != nil {
		return nil, err
	}
	if err := uc.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"complaint_id":   complaint.ID,
		"deal_id":        deal.ID,
		"plaintiff_role": complaint.PlaintiffRole,
	}).Info("подана жалоба")
	return complaint, nil
}

type GetMyComplaintUseCase struct {
	complaintRepo repository.ComplaintRepository
}

func NewGetMyComplaintUseCase(complaintRepo repository.ComplaintRepository) *GetMyComplaintUseCase {
	return &GetMyComplaintUseCase{complaintRepo: complaintRepo}
}

func (uc *GetMyComplaintUseCase) Execute(ctx context.Context, actor entity.Actor, dealID uuid.UUID) (*entity.Complaint, error) {
	return uc.complaintRepo.FindByDealAndPlaintiff(ctx, dealID, actor.UserID)
}

type ListComplaintsQuery struct {
	Scope         string
	Status        string
	PlaintiffRole string
	Sort          string
}

type ListComplaintsUseCase struct {
	complaintRepo repository.ComplaintRepository
}

func NewListComplaintsUseCase(complaintRepo repository.ComplaintRepository) *ListComplaintsUseCase {
	return &ListComplaintsUseCase{complaintRepo: complaintRepo}
}

func (uc *ListComplaintsUseCase) Execute(ctx context.Context, actor entity.Actor, q ListComplaintsQuery) ([]*entity.Complaint, error) {
	if !actor.IsModerator() {
		return nil, apperror.ErrModeratorOnly
	}

	filter := repository.ComplaintFilter{ModeratorID: actor.UserID, Status: q.Status}
	switch repository.ComplaintScope(q.Scope) {
	case repository.ComplaintScopeAll, repository.ComplaintScopeMine, repository.ComplaintScopeUnassigned:
		filter.Scope = repository.ComplaintScope(q.Scope)
	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "фильтр назначения: mine или unassigned")
	}
	if q.PlaintiffRole != "" {
		role, err := valueobject.ParsePartyRole(q.PlaintiffRole)
		if err != nil {
			return nil, err
		}
		filter.PlaintiffRole = role
	}
	switch q.Sort {
	case "", "desc":
	case "asc":
		filter.Ascending = true
	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "сортировка: asc или desc")
	}

	return uc.complaintRepo.List(ctx, filter)
}

type AssignComplaintUseCase struct {
	complaintRepo repository.ComplaintRepository
}

func NewAssignComplaintUseCase(complaintRepo repository.ComplaintRepository) *AssignComplaintUseCase {
	return &AssignComplaintUseCase{complaintRepo: complaintRepo}
}

func (uc *AssignComplaintUseCase) Execute(ctx context.Context, actor entity.Actor, complaintID uuid.UUID) (*entity.Complaint, error) {
	if !actor.IsModerator() {
		return nil, apperror.ErrModeratorOnly
	}
	if err := uc.complaintRepo.Assign(ctx, complaintID, actor.UserID); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"complaint_id": complaintID, "moderator_id": actor.UserID}).Info("жалоба назначена")
	return uc.complaintRepo.FindByID(ctx, complaintID)
}

// loadAssigned возвращает жалобу, если actor - назначенный на неё модератор.
func loadAssigned(ctx context.Context, repo repository.ComplaintRepository, actor entity.Actor, complaintID uuid.UUID) (*entity.Complaint, error) {
	if !actor.IsModerator() {
		return nil, apperror.ErrModeratorOnly
	}
	complaint, err := repo.FindByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !complaint.IsAssignedTo(actor.UserID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "жалоба назначена другому модератору")
	}
	return complaint, nil
}

type UpdateComplaintStatusUseCase struct {
	complaintRepo repository.ComplaintRepository
}

func NewUpdateComplaintStatusUseCase(complaintRepo repository.ComplaintRepository) *UpdateComplaintStatusUseCase {
	return &UpdateComplaintStatusUseCase{complaintRepo: complaintRepo}
}

func (uc *UpdateComplaintStatusUseCase) Execute(ctx context.Context, actor entity.Actor, complaintID uuid.UUID, status string) (*entity.Complaint, error) {
	complaint, err := loadAssigned(ctx, uc.complaintRepo, actor, complaintID)
	if err != nil {
		return nil, err
	}
	status, err = entity.NormalizeComplaintStatus(status)
	if err != nil {
		return nil, err
	}
	if err := uc.complaintRepo.UpdateStatus(ctx, complaint.ID, status); err != nil {
		return nil, err
	}
	complaint.Status = status
	logger.WithFields(logrus.Fields{"complaint_id": complaint.ID, "status": status}).Info("статус жалобы изменён")
	return complaint, nil
}

type DeleteComplaintUseCase struct {
	complaintRepo repository.ComplaintRepository
}

func NewDeleteComplaintUseCase(complaintRepo repository.ComplaintRepository) *DeleteComplaintUseCase {
	return &DeleteComplaintUseCase{complaintRepo: complaintRepo}
}

func (uc *DeleteComplaintUseCase) Execute(ctx context.Context, actor entity.Actor, complaintID uuid.UUID) error {
	complaint, err := loadAssigned(ctx, uc.complaintRepo, actor, complaintID)
	if err != nil {
		return err
	}
	return uc.complaintRepo.Delete(ctx, complaint.ID)
}
