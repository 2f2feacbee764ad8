package negotiation

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/negotiation"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

// ListPostThreadsUseCase: автор поста и модератор видят все ветки, преподаватель только свои.
type ListPostThreadsUseCase struct {
	postRepo     repository.PostRepository
	responseRepo repository.ResponseRepository
}

func NewListPostThreadsUseCase(postRepo repository.PostRepository, responseRepo repository.ResponseRepository) *ListPostThreadsUseCase {
	return &ListPostThreadsUseCase{postRepo: postRepo, responseRepo: responseRepo}
}

func (uc *ListPostThreadsUseCase) Execute(ctx context.Context, actor entity.Actor, postID uuid.UUID) ([]negotiation.Thread, error) {
	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses, err := uc.responseRepo.FindByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.IsModerator(), post.IsOwnedBy(actor.UserID):
		return negotiation.Collect(negotiation.Threads(responses)), nil
	case actor.IsTeacher():
		return negotiation.Collect(negotiation.ThreadsWith(responses, actor.UserID)), nil
	}
	return nil, apperror.ErrForbidden
}

// ListTeacherThreadsUseCase собирает ветки преподавателя по всем постам.
type ListTeacherThreadsUseCase struct {
	responseRepo repository.ResponseRepository
}

func NewListTeacherThreadsUseCase(responseRepo repository.ResponseRepository) *ListTeacherThreadsUseCase {
	return &ListTeacherThreadsUseCase{responseRepo: responseRepo}
}

func (uc *ListTeacherThreadsUseCase) Execute(ctx context.Context, actor entity.Actor) ([]negotiation.Thread, error) {
	if !actor.IsTeacher() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "список веток доступен только преподавателю")
	}

	postIDs, err := uc.responseRepo.FindPostIDsByRespondent(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if len(postIDs) == 0 {
		return []negotiation.Thread{}, nil
	}
	responses, err := uc.responseRepo.FindByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	return negotiation.Collect(negotiation.ThreadsWith(responses, actor.UserID)), nil
}
