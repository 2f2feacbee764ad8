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

// EditProfileCommand - правка профиля. Пустые поля не меняются.
type EditProfileCommand struct {
	Actor          entity.Actor
	UserID         uuid.UUID
	FullName       string
	Email          string
	PhoneNumber    string
	BankCardNumber string
	Description    string
	Password       string
	PasswordHash   string
	Trusted        bool
}

type EditProfileResult struct {
	User   *entity.User
	Review *entity.ProfileError
}

type EditProfileUseCase struct {
	userRepo   repository.UserRepository
	reviewRepo repository.ProfileErrorRepository
	scanner    repository.ContactScanner
	hasher     repository.PasswordHasher
}

func NewEditProfileUseCase(
	userRepo repository.UserRepository,
	reviewRepo repository.ProfileErrorRepository,
	scanner repository.ContactScanner,
	hasher repository.PasswordHasher,
) *EditProfileUseCase {
	return &EditProfileUseCase{
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		scanner:    scanner,
		hasher:     hasher,
	}
}

func (uc *EditProfileUseCase) Execute(ctx context.Context, cmd EditProfileCommand) (*EditProfileResult, error) {
	if cmd.Actor.UserID != cmd.UserID && !cmd.Actor.IsModerator() {
		return nil, apperror.ErrForbidden
	}

	user, err := uc.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	// changes - только изменённые поля, они же попадают в заявку на проверку.
	changes := entity.ProfileError{Role: user.Role}
	candidate := *user
	if user.Teacher != nil {
		t := *user.Teacher
		candidate.Teacher = &t
	}

	if v := strings.TrimSpace(cmd.FullName); v != "" && v != user.FullName {
		changes.FullName, candidate.FullName = v, v
	}
	if v := validation.NormalizeEmail(cmd.Email); v != "" && v != user.Email {
		changes.Email, candidate.Email = v, v
	}
	if v := validation.NormalizePhone(cmd.PhoneNumber); v != "" && v != user.PhoneNumber {
		changes.PhoneNumber, candidate.PhoneNumber = v, v
	}
	if v := strings.ReplaceAll(strings.TrimSpace(cmd.BankCardNumber), " ", ""); v != "" && v != user.BankCardNumber {
		changes.BankCardNumber, candidate.BankCardNumber = v, v
	}
	if v := strings.TrimSpace(cmd.Description); v != "" && v != user.Description() {
		if user.Role != valueobject.RoleTeacher {
			return nil, apperror.New(apperror.ErrCodeForbidden, "описание профиля есть только у преподавателя")
		}
		if err := validation.ValidateLength("описание", v, 0, validation.MaxDescriptionLength); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		if candidate.Teacher == nil {
			candidate.Teacher = &entity.TeacherProfile{}
		}
		changes.Description = v
		candidate.Teacher.Description = v
	}

	if err := validateProfile(candidate.FullName, candidate.Email, candidate.PhoneNumber, candidate.BankCardNumber); err != nil {
		return nil, err
	}

	switch {
	case cmd.PasswordHash != "":
		if !cmd.Trusted {
			return nil, apperror.New(apperror.ErrCodeValidation, "хеш пароля принимается только от модерации")
		}
		changes.PasswordHash, candidate.PasswordHash = cmd.PasswordHash, cmd.PasswordHash
	case cmd.Password != "":
		if err := validation.ValidatePassword(cmd.Password); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		hash, err := uc.hasher.Hash(cmd.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash, candidate.PasswordHash = hash, hash
	}

	if changes.Email != "" || changes.PhoneNumber != "" {
		if err := ensureContactsFree(ctx, uc.userRepo, candidate.Email, candidate.PhoneNumber, user.ID); err != nil {
			return nil, err
		}
	}

	needsReview := !cmd.Trusted && !cmd.Actor.IsModerator() &&
		(uc.scanner.ContainsContactInfo(changes.FullName) || uc.scanner.ContainsContactInfo(changes.Description))
	if needsReview {
		item := entity.NewProfileError(&user.ID)
		item.FullName = changes.FullName
		item.Email = changes.Email
		item.PasswordHash = changes.PasswordHash
		item.PhoneNumber = changes.PhoneNumber
		item.BankCardNumber = changes.BankCardNumber
		item.Role = changes.Role
		item.Description = changes.Description
		if err := uc.reviewRepo.Create(ctx, item); err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{"review_id": item.ID, "user_id": user.ID}).Info("правка профиля отправлена на проверку")
		return &EditProfileResult{Review: item}, nil
	}

	candidate.UpdatedAt = entity.Now()
	if err := uc.userRepo.Update(ctx, &candidate); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"user_id": user.ID, "editor_id": cmd.Actor.UserID, "trusted": cmd.Trusted}).Info("профиль обновлён")
	return &EditProfileResult{User: &candidate}, nil
}
