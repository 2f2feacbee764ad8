package deal

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/logger"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type CreateDealUseCase struct {
	postRepo     repository.PostRepository
	responseRepo repository.ResponseRepository
	dealRepo     repository.DealRepository
}

func NewCreateDealUseCase(postRepo repository.PostRepository, responseRepo repository.ResponseRepository, dealRepo repository.DealRepository) *CreateDealUseCase {
	return &CreateDealUseCase{postRepo: postRepo, responseRepo: responseRepo, dealRepo: dealRepo}
}

// Execute принимает отклик преподавателя: создаёт сделку и закрывает пост в одной транзакции.
func (uc *CreateDealUseCase) Execute(ctx context.Context, actor entity.Actor, responseID uuid.UUID) (*entity.Deal, error) {
	response, err := uc.responseRepo.FindByID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if !response.IsFromTeacher() {
		return nil, apperror.New(apperror.ErrCodePolicyViolation, "сделку можно заключить только по отклику преподавателя")
	}

	post, err := uc.postRepo.FindByID(ctx, response.PostID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStudent() || !post.IsOwnedBy(actor.UserID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "принять отклик может только автор поста")
	}
	if !post.IsOpen() {
		return nil, apperror.ErrPostClosed
	}

	deal, err := entity.NewDeal(post, response)
	if err != nil {
		return nil, err
	}
	if err := uc.dealRepo.CreateAndClosePost(ctx, deal); err != nil {
		if apperror.IsConflict(err) {
			logger.WithFields(logrus.Fields{"post_id": post.ID, "response_id": response.ID}).Warn("сделка по посту уже заключена")
		}
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"deal_id":    deal.ID,
		"post_id":    post.ID,
		"teacher_id": deal.TeacherID,
		"price":      deal.Price,
	}).Info("сделка заключена")
	return deal, nil
}
