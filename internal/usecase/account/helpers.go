package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
	"github.com/ignatzorin/docexchange-backend/internal/validation"
)

func validateProfile(fullName, email, phone, card string) error {
	if err := validation.ValidateLength("ФИО", fullName, validation.MinFullNameLength, validation.MaxFullNameLength); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidatePhone(phone); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateBankCard(card); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	return nil
}

// ensureContactsFree проверяет, что email и телефон не заняты другим пользователем.
func ensureContactsFree(ctx context.Context, users repository.UserRepository, email, phone string, exceptID uuid.UUID) error {
	taken, err := users.ExistsByEmail(ctx, email, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.New(apperror.ErrCodeConflict, "пользователь с таким email уже существует")
	}
	taken, err = users.ExistsByPhone(ctx, phone, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.New(apperror.ErrCodeConflict, "пользователь с таким телефоном уже существует")
	}
	return nil
}
