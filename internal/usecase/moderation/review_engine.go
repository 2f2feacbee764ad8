// Package moderation разбирает заявки, задержанные из-за контактов в тексте.
// Одобренная заявка повторяется через обычный путь регистрации или правки с флагом Trusted.
package moderation

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/logger"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/account"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/post"
)

type Registrar interface {
	Execute(ctx context.Context, cmd account.RegisterCommand) (*account.RegisterResult, error)
}

type ProfileEditor interface {
	Execute(ctx context.Context, cmd account.EditProfileCommand) (*account.EditProfileResult, error)
}

type PostCreator interface {
	Execute(ctx context.Context, cmd post.CreatePostCommand) (*post.CreatePostResult, error)
}

type PostEditor interface {
	Execute(ctx context.Context, cmd post.EditPostCommand) (*post.EditPostResult, error)
}

type ProfileDecision struct {
	Item     *entity.ProfileError
	Decision valueobject.Decision
	// User - созданный или изменённый профиль, только при одобрении.
	User *entity.User
}

type DecideProfileErrorUseCase struct {
	reviewRepo repository.ProfileErrorRepository
	register   Registrar
	edit       ProfileEditor
}

func NewDecideProfileErrorUseCase(reviewRepo repository.ProfileErrorRepository, register Registrar, edit ProfileEditor) *DecideProfileErrorUseCase {
	return &DecideProfileErrorUseCase{reviewRepo: reviewRepo, register: register, edit: edit}
}

func (uc *DecideProfileErrorUseCase) Execute(ctx context.Context, actor entity.Actor, itemID uuid.UUID, token string) (*ProfileDecision, error) {
	if !actor.IsModerator() {
		return nil, apperror.ErrModeratorOnly
	}
	decision, err := valueobject.ParseDecision(token)
	if err != nil {
		return nil, err
	}

	// Заявка снимается до повтора: при ошибке повтора она не вернётся в очередь.
	item, err := uc.reviewRepo.Take(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.Status = decision.Status()
	log := logger.WithFields(logrus.Fields{"review_id": item.ID, "moderator_id": actor.UserID, "decision": decision})

	result := &ProfileDecision{Item: item, Decision: decision}
	if decision == valueobject.DecisionDenied {
		log.Info("заявка на профиль отклонена")
		return result, nil
	}

	if item.IsNewAccount() {
		res, err := uc.register.Execute(ctx, account.RegisterCommand{
			FullName:       item.FullName,
			Email:          item.Email,
			PasswordHash:   item.PasswordHash,
			PhoneNumber:    item.PhoneNumber,
			BankCardNumber: item.BankCardNumber,
			Role:           string(item.Role),
			Description:    item.Description,
			Trusted:        true,
		})
		if err != nil {
			log.WithError(err).Warn("повтор регистрации не удался")
			return nil, err
		}
		result.User = res.User
	} else {
		res, err := uc.edit.Execute(ctx, account.EditProfileCommand{
			Actor:          actor,
			UserID:         *item.TargetProfileID,
			FullName:       item.FullName,
			Email:          item.Email,
			PhoneNumber:    item.PhoneNumber,
			BankCardNumber: item.BankCardNumber,
			Description:    item.Description,
			PasswordHash:   item.PasswordHash,
			Trusted:        true,
		})
		if err != nil {
			log.WithError(err).Warn("повтор правки профиля не удался")
			return nil, err
		}
		result.User = res.User
	}

	log.WithField("user_id", result.User.ID).Info("заявка на профиль одобрена")
	return result, nil
}

type PostDecision struct {
	Item     *entity.PostError
	Decision valueobject.Decision
	Post     *entity.Post
}

type DecidePostErrorUseCase struct {
	reviewRepo repository.PostErrorRepository
	create     PostCreator
	edit       PostEditor
}

func NewDecidePostErrorUseCase(reviewRepo repository.PostErrorRepository, create PostCreator, edit PostEditor) *DecidePostErrorUseCase {
	return &DecidePostErrorUseCase{reviewRepo: reviewRepo, create: create, edit: edit}
}

func (uc *DecidePostErrorUseCase) Execute(ctx context.Context, actor entity.Actor, itemID uuid.UUID, token string) (*PostDecision, error) {
	if !actor.IsModerator() {
		return nil, apperror.ErrModeratorOnly
	}
	decision, err := valueobject.ParseDecision(token)
	if err != nil {
		return nil, err
	}

	item, err := uc.reviewRepo.Take(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.Status = decision.Status()
	log := logger.WithFields(logrus.Fields{"review_id": item.ID, "moderator_id": actor.UserID, "decision": decision})

	result := &PostDecision{Item: item, Decision: decision}
	if decision == valueobject.DecisionDenied {
		log.Info("заявка на пост отклонена")
		return result, nil
	}

	// Повтор идёт от имени автора поста: права проверяются так же, как при обычном запросе.
	owner := entity.Actor{UserID: item.StudentID, Role: valueobject.RoleStudent}
	if item.ExistingPost() {
		res, err := uc.edit.Execute(ctx, post.EditPostCommand{
			Actor:       owner,
			PostID:      *item.PostID,
			Description: item.Description,
			Institution: item.Institution,
			Trusted:     true,
		})
		if err != nil {
			log.WithError(err).Warn("повтор правки поста не удался")
			return nil, err
		}
		result.Post = res.Post
	} else {
		res, err := uc.create.Execute(ctx, post.CreatePostCommand{
			Actor:       owner,
			WorkType:    item.WorkType,
			SubjectArea: item.SubjectArea,
			Institution: item.Institution,
			Description: item.Description,
			Price:       item.Price,
			Trusted:     true,
		})
		if err != nil {
			log.WithError(err).Warn("повтор создания поста не удался")
			return nil, err
		}
		result.Post = res.Post
	}

	log.WithField("post_id", result.Post.ID).Info("заявка на пост одобрена")
	return result, nil
}

type ListProfileErrorsUseCase struct {
	reviewRepo repository.ProfileErrorRepository
}

func NewListProfileErrorsUseCase(reviewRepo repository.ProfileErrorRepository) *ListProfileErrorsUseCase {
	return &ListProfileErrorsUseCase{reviewRepo: reviewRepo}
}

func (uc *ListProfileErrorsUseCase) Execute(ctx context.Context, actor entity.Actor) ([]*entity.ProfileError, error) {
	if !actor.IsModerator() {
		return nil, apperror.ErrModeratorOnly
	}
	return uc.reviewRepo.List(ctx)
}

type ListPostErrorsUseCase struct {
	reviewRepo repository.PostErrorRepository
}

func NewListPostErrorsUseCase(reviewRepo repository.PostErrorRepository) *ListPostErrorsUseCase {
	return &ListPostErrorsUseCase{reviewRepo: reviewRepo}
}

func (uc *ListPostErrorsUseCase) Execute(ctx context.Context, actor entity.Actor) ([]*entity.PostError, error) {
	if !actor.IsModerator() {
		return nil, apperror.ErrModeratorOnly
	}
	return uc.reviewRepo.List(ctx)
}
