package account

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/logger"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
	"github.com/ignatzorin/docexchange-backend/internal/validation"
)

// RegisterCommand - запрос на создание аккаунта.
// Trusted выставляет только модерация при одобрении заявки: проверка контактов пропускается,
// а вместо пароля принимается уже посчитанный хеш.
type RegisterCommand struct {
	FullName       string
	Email          string
	Password       string
	PasswordHash   string
	PhoneNumber    string
	BankCardNumber string
	Role           string
	Description    string
	Trusted        bool
}

// RegisterResult содержит либо созданного пользователя с токеном, либо заявку на проверку.
type RegisterResult struct {
	User   *entity.User
	Token  string
	Review *entity.ProfileError
}

type RegisterUseCase struct {
	userRepo   repository.UserRepository
	reviewRepo repository.ProfileErrorRepository
	scanner    repository.ContactScanner
	hasher     repository.PasswordHasher
	tokens     repository.TokenIssuer
}

func NewRegisterUseCase(
	userRepo repository.UserRepository,
	reviewRepo repository.ProfileErrorRepository,
	scanner repository.ContactScanner,
	hasher repository.PasswordHasher,
	tokens repository.TokenIssuer,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		scanner:    scanner,
		hasher:     hasher,
		tokens:     tokens,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	role, err := valueobject.ParsePartyRole(cmd.Role)
	if err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(cmd.FullName)
	email := validation.NormalizeEmail(cmd.Email)
	phone := validation.NormalizePhone(cmd.PhoneNumber)
	card := strings.ReplaceAll(strings.TrimSpace(cmd.BankCardNumber), " ", "")
	description := strings.TrimSpace(cmd.Description)

	if err := validateProfile(fullName, email, phone, card); err != nil {
		return nil, err
	}
	if role != valueobject.RoleTeacher && description != "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "описание профиля есть только у преподавателя")
	}
	if err := validation.ValidateLength("описание", description, 0, validation.MaxDescriptionLength); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	hash, err := uc.passwordHash(cmd)
	if err != nil {
		return nil, err
	}

	if err := ensureContactsFree(ctx, uc.userRepo, email, phone, uuid.Nil); err != nil {
		return nil, err
	}

	if !cmd.Trusted && (uc.scanner.ContainsContactInfo(fullName) || uc.scanner.ContainsContactInfo(description)) {
		item := entity.NewProfileError(nil)
		item.FullName = fullName
		item.Email = email
		item.PasswordHash = hash
		item.PhoneNumber = phone
		item.BankCardNumber = card
		item.Role = role
		item.Description = description
		if err := uc.reviewRepo.Create(ctx, item); err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{"review_id": item.ID, "email": email}).Info("регистрация отправлена на проверку")
		return &RegisterResult{Review: item}, nil
	}

	user := entity.NewUser(fullName, email, hash, phone, card, role, description)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"user_id": user.ID, "role": role, "trusted": cmd.Trusted}).Info("пользователь зарегистрирован")

	result := &RegisterResult{User: user}
	if !cmd.Trusted {
		if result.Token, err = uc.tokens.Issue(user); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (uc *RegisterUseCase) passwordHash(cmd RegisterCommand) (string, error) {
	if cmd.PasswordHash != "" {
		if !cmd.Trusted {
			return "", apperror.New(apperror.ErrCodeValidation, "хеш пароля принимается только от модерации")
		}
		return cmd.PasswordHash, nil
	}
	if err := validation.ValidatePassword(cmd.Password); err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	return uc.hasher.Hash(cmd.Password)
}
