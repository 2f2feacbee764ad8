package negotiation

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/negotiation"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/logger"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type CounterOfferCommand struct {
	Actor    entity.Actor
	TargetID uuid.UUID
	Price    float64
}

type CounterOfferUseCase struct {
	postRepo     repository.PostRepository
	responseRepo repository.ResponseRepository
}

func NewCounterOfferUseCase(postRepo repository.PostRepository, responseRepo repository.ResponseRepository) *CounterOfferUseCase {
	return &CounterOfferUseCase{postRepo: postRepo, responseRepo: responseRepo}
}

func (uc *CounterOfferUseCase) Execute(ctx context.Context, cmd CounterOfferCommand) (*entity.Response, error) {
	if !cmd.Actor.Role.IsParty() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "участвовать в торге могут только студент и преподаватель")
	}

	target, err := uc.responseRepo.FindByID(ctx, cmd.TargetID)
	if err != nil {
		return nil, err
	}
	post, err := uc.postRepo.FindByID(ctx, target.PostID)
	if err != nil {
		return nil, err
	}
	if !post.IsOpen() {
		return nil, apperror.ErrPostClosed
	}
	if cmd.Actor.IsStudent() && !post.IsOwnedBy(cmd.Actor.UserID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "торговаться по посту может только его автор")
	}

	responses, err := uc.responseRepo.FindByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	thread, ok := negotiation.ThreadOf(responses, target.ID)
	if !ok {
		return nil, apperror.ErrResponseNotFound
	}
	// Ветка принадлежит преподавателю, который её открыл.
	if cmd.Actor.IsTeacher() && thread.Root().RespondentID != cmd.Actor.UserID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "это ветка торга другого преподавателя")
	}

	allowed, err := negotiation.ValidateTarget(thread, cmd.Actor, target.ID)
	if err != nil {
		return nil, err
	}

	response, err := entity.NewCounterOffer(allowed, cmd.Actor, cmd.Price)
	if err != nil {
		return nil, err
	}
	if err := uc.responseRepo.Append(ctx, response); err != nil {
		if apperror.IsConflict(err) {
			logger.WithFields(logrus.Fields{"target_id": target.ID, "actor_id": cmd.Actor.UserID}).Warn("встречное предложение проиграло гонку")
			return nil, apperror.ErrStaleTarget
		}
		return nil, err
	}
	logger.WithFields(logrus.Fields{"post_id": post.ID, "response_id": response.ID, "target_id": target.ID}).Info("встречное предложение добавлено")
	return response, nil
}
