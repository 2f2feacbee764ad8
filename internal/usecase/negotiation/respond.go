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

// RespondToPostUseCase открывает ветку торга: преподаватель отвечает прямо на пост.
type RespondToPostUseCase struct {
	postRepo     repository.PostRepository
	responseRepo repository.ResponseRepository
}

func NewRespondToPostUseCase(postRepo repository.PostRepository, responseRepo repository.ResponseRepository) *RespondToPostUseCase {
	return &RespondToPostUseCase{postRepo: postRepo, responseRepo: responseRepo}
}

func (uc *RespondToPostUseCase) Execute(ctx context.Context, actor entity.Actor, postID uuid.UUID, price float64) (*entity.Response, error) {
	if !actor.IsTeacher() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "откликнуться на пост может только преподаватель")
	}

	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsOpen() {
		return nil, apperror.ErrPostClosed
	}

	existing, err := uc.responseRepo.FindByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	for t := range negotiation.Threads(existing) {
		if t.Root().RespondentID == actor.UserID {
			return nil, apperror.ErrAlreadyResponded
		}
	}

	response, err := entity.NewRootResponse(post.ID, actor, price)
	if err != nil {
		return nil, err
	}
	if err := uc.responseRepo.Append(ctx, response); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"post_id": post.ID, "response_id": response.ID, "teacher_id": actor.UserID}).Info("открыта ветка торга")
	return response, nil
}
