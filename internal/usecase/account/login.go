package account

import (
	"context"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
	"github.com/ignatzorin/docexchange-backend/internal/validation"
)

type LoginResult struct {
	User  *entity.User
	Token string
}

type LoginUseCase struct {
	userRepo repository.UserRepository
	hasher   repository.PasswordHasher
	tokens   repository.TokenIssuer
}

func NewLoginUseCase(userRepo repository.UserRepository, hasher repository.PasswordHasher, tokens repository.TokenIssuer) *LoginUseCase {
	return &LoginUseCase{userRepo: userRepo, hasher: hasher, tokens: tokens}
}

func (uc *LoginUseCase) Execute(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := uc.userRepo.FindByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}

type GetProfileUseCase struct {
	userRepo repository.UserRepository
}

func NewGetProfileUseCase(userRepo repository.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, actor entity.Actor) (*entity.User, error) {
	return uc.userRepo.FindByID(ctx, actor.UserID)
}
