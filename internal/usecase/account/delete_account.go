package account

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/logger"
)

// DeleteAccountUseCase удаляет собственный аккаунт, если по нему нет постов, откликов, сделок и жалоб.
type DeleteAccountUseCase struct {
	userRepo repository.UserRepository
}

func NewDeleteAccountUseCase(userRepo repository.UserRepository) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{userRepo: userRepo}
}

func (uc *DeleteAccountUseCase) Execute(ctx context.Context, actor entity.Actor) error {
	if err := uc.userRepo.Delete(ctx, actor.UserID); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"user_id": actor.UserID}).Info("аккаунт удалён")
	return nil
}
