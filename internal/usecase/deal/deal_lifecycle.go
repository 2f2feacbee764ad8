package deal

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/logger"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type FinishDealUseCase struct {
	dealRepo repository.DealRepository
}

func NewFinishDealUseCase(dealRepo repository.DealRepository) *FinishDealUseCase {
	return &FinishDealUseCase{dealRepo: dealRepo}
}

func (uc *FinishDealUseCase) Execute(ctx context.Context, actor entity.Actor, dealID uuid.UUID) (*entity.Deal, error) {
	deal, err := uc.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.StudentID != actor.UserID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "завершить сделку может только автор поста")
	}

	finishedAt := entity.Now()
	if err := uc.dealRepo.Finish(ctx, deal.ID, finishedAt); err != nil {
		return nil, err
	}
	deal.Status = valueobject.DealStatusFinished
	deal.FinishedAt = &finishedAt

	logger.WithFields(logrus.Fields{"deal_id": deal.ID}).Info("сделка завершена")
	return deal, nil
}

type LeaveFeedbackUseCase struct {
	dealRepo repository.DealRepository
}

func NewLeaveFeedbackUseCase(dealRepo repository.DealRepository) *LeaveFeedbackUseCase {
	return &LeaveFeedbackUseCase{dealRepo: dealRepo}
}

// Execute записывает оценку 1..5 по завершённой сделке. Повторная оценка отклоняется.
func (uc *LeaveFeedbackUseCase) Execute(ctx context.Context, actor entity.Actor, dealID uuid.UUID, score int) (*entity.Deal, error) {
	if err := valueobject.ValidateFeedbackScore(score); err != nil {
		return nil, err
	}

	deal, err := uc.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.StudentID != actor.UserID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "оценить сделку может только автор поста")
	}
	if !deal.IsFinished() {
		return nil, apperror.New(apperror.ErrCodePolicyViolation, "оценку можно оставить только после завершения сделки")
	}
	if deal.HasFeedback() {
		return nil, apperror.New(apperror.ErrCodeConflict, "отзыв по сделке уже оставлен")
	}

	if err := uc.dealRepo.SetFeedback(ctx, deal.ID, score); err != nil {
		return nil, err
	}
	deal.Feedback = score

	logger.WithFields(logrus.Fields{"deal_id": deal.ID, "teacher_id": deal.TeacherID, "score": score}).Info("оставлен отзыв")
	return deal, nil
}
