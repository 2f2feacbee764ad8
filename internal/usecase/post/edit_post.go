package post

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/logger"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
	"github.com/ignatzorin/docexchange-backend/internal/validation"
)

// EditPostCommand меняет описание и/или учебное заведение. Пустое поле не меняется.
type EditPostCommand struct {
	Actor       entity.Actor
	PostID      uuid.UUID
	Description string
	Institution string
	Trusted     bool
}

type EditPostResult struct {
	Post   *entity.Post
	Review *entity.PostError
}

type EditPostUseCase struct {
	postRepo    repository.PostRepository
	catalogRepo repository.CatalogRepository
	reviewRepo  repository.PostErrorRepository
	scanner     repository.ContactScanner
}

func NewEditPostUseCase(
	postRepo repository.PostRepository,
	catalogRepo repository.CatalogRepository,
	reviewRepo repository.PostErrorRepository,
	scanner repository.ContactScanner,
) *EditPostUseCase {
	return &EditPostUseCase{
		postRepo:    postRepo,
		catalogRepo: catalogRepo,
		reviewRepo:  reviewRepo,
		scanner:     scanner,
	}
}

func (uc *EditPostUseCase) Execute(ctx context.Context, cmd EditPostCommand) (*EditPostResult, error) {
	post, err := uc.postRepo.FindByID(ctx, cmd.PostID)
	if err != nil {
		return nil, err
	}
	if !post.IsOwnedBy(cmd.Actor.UserID) {
		return nil, apperror.ErrForbidden
	}

	description := strings.TrimSpace(cmd.Description)
	if description == "" && strings.TrimSpace(cmd.Institution) == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "нечего изменять")
	}
	if err := validation.ValidateLength("описание", description, 0, validation.MaxDescriptionLength); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	var institution string
	if strings.TrimSpace(cmd.Institution) != "" {
		if institution, err = lookup(ctx, uc.catalogRepo, repository.CatalogInstitution, cmd.Institution); err != nil {
			return nil, err
		}
	}

	if err := post.Edit(description, institution); err != nil {
		return nil, err
	}

	if !cmd.Trusted && description != "" && uc.scanner.ContainsContactInfo(description) {
		item := entity.NewPostError(&post.ID, post.StudentID)
		item.WorkType = post.WorkType
		item.SubjectArea = post.SubjectArea
		item.Institution = institution
		item.Description = description
		item.Price = post.Price
		if err := uc.reviewRepo.Create(ctx, item); err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{"review_id": item.ID, "post_id": post.ID}).Info("правка поста отправлена на проверку")
		return &EditPostResult{Review: item}, nil
	}

	if err := uc.postRepo.UpdateDetails(ctx, post); err != nil {
		return nil, err
	}
	return &EditPostResult{Post: post}, nil
}
