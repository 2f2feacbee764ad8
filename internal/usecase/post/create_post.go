package post

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/logger"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
	"github.com/ignatzorin/docexchange-backend/internal/validation"
)

type CreatePostCommand struct {
	Actor       entity.Actor
	WorkType    string
	SubjectArea string
	Institution string
	Description string
	Price       float64
	// Trusted - повтор одобренной модератором заявки, описание не проверяется на контакты.
	Trusted bool
}

type CreatePostResult struct {
	Post   *entity.Post
	Review *entity.PostError
}

type CreatePostUseCase struct {
	postRepo    repository.PostRepository
	catalogRepo repository.CatalogRepository
	reviewRepo  repository.PostErrorRepository
	scanner     repository.ContactScanner
}

func NewCreatePostUseCase(
	postRepo repository.PostRepository,
	catalogRepo repository.CatalogRepository,
	reviewRepo repository.PostErrorRepository,
	scanner repository.ContactScanner,
) *CreatePostUseCase {
	return &CreatePostUseCase{
		postRepo:    postRepo,
		catalogRepo: catalogRepo,
		reviewRepo:  reviewRepo,
		scanner:     scanner,
	}
}

func (uc *CreatePostUseCase) Execute(ctx context.Context, cmd CreatePostCommand) (*CreatePostResult, error) {
	if !cmd.Actor.IsStudent() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "создавать посты могут только студенты")
	}

	workType, err := lookup(ctx, uc.catalogRepo, repository.CatalogWorkType, cmd.WorkType)
	if err != nil {
		return nil, err
	}
	subject, err := lookup(ctx, uc.catalogRepo, repository.CatalogSubjectArea, cmd.SubjectArea)
	if err != nil {
		return nil, err
	}
	institution, err := lookup(ctx, uc.catalogRepo, repository.CatalogInstitution, cmd.Institution)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateLength("описание", strings.TrimSpace(cmd.Description), 1, validation.MaxDescriptionLength); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	post, err := entity.NewPost(cmd.Actor.UserID, workType, subject, institution, cmd.Description, cmd.Price)
	if err != nil {
		return nil, err
	}

	if !cmd.Trusted && uc.scanner.ContainsContactInfo(post.Description) {
		item := entity.NewPostError(nil, post.StudentID)
		item.WorkType = post.WorkType
		item.SubjectArea = post.SubjectArea
		item.Institution = post.Institution
		item.Description = post.Description
		item.Price = post.Price
		if err := uc.reviewRepo.Create(ctx, item); err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{"review_id": item.ID, "student_id": post.StudentID}).Info("пост отправлен на проверку")
		return &CreatePostResult{Review: item}, nil
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"post_id": post.ID, "student_id": post.StudentID, "trusted": cmd.Trusted}).Info("пост создан")
	return &CreatePostResult{Post: post}, nil
}

// lookup возвращает каноническое имя записи справочника или VALIDATION_ERROR.
func lookup(ctx context.Context, catalog repository.CatalogRepository, kind repository.CatalogKind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.New(apperror.ErrCodeValidation, catalogLabel(kind)+" обязательно")
	}
	canonical, ok, err := catalog.Lookup(ctx, kind, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperror.New(apperror.ErrCodeValidation, catalogLabel(kind)+" не найдено в справочнике: "+name)
	}
	return canonical, nil
}

func catalogLabel(kind repository.CatalogKind) string {
	switch kind {
	case repository.CatalogWorkType:
		return "тип работы"
	case repository.CatalogSubjectArea:
		return "предметная область"
	default:
		return "учебное заведение"
	}
}
