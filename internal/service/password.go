package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperror.New(apperror.ErrCodeValidation, "пароль слишком длинный")
		}
		return "", apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось захешировать пароль")
	}
	return string(hash), nil
}

// Compare возвращает ErrInvalidCredentials при несовпадении.
func (h *BcryptHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return apperror.ErrInvalidCredentials
	}
	return nil
}
