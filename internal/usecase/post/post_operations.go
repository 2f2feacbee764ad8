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
)

type RaisePriceUseCase struct {
	postRepo repository.PostRepository
}

func NewRaisePriceUseCase(postRepo repository.PostRepository) *RaisePriceUseCase {
	return &RaisePriceUseCase{postRepo: postRepo}
}

func (uc *RaisePriceUseCase) Execute(ctx context.Context, actor entity.Actor, postID uuid.UUID, price float64) (*entity.Post, error) {
	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsOwnedBy(actor.UserID) {
		return nil, apperror.ErrForbidden
	}
	if err := post.RaisePrice(price); err != nil {
		return nil, err
	}
	if err := uc.postRepo.RaisePrice(ctx, post.ID, post.Price); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"post_id": post.ID, "price": post.Price}).Info("цена поста повышена")
	return post, nil
}

type DeletePostUseCase struct {
	postRepo repository.PostRepository
	dealRepo repository.DealRepository
}

func NewDeletePostUseCase(postRepo repository.PostRepository, dealRepo repository.DealRepository) *DeletePostUseCase {
	return &DeletePostUseCase{postRepo: postRepo, dealRepo: dealRepo}
}

// Execute: владелец удаляет пост без сделки целиком, модератор только закрывает его.
func (uc *DeletePostUseCase) Execute(ctx context.Context, actor entity.Actor, postID uuid.UUID) error {
	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	switch {
	case actor.IsModerator():
		if err := uc.postRepo.CloseIfOpen(ctx, post.ID); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{"post_id": post.ID, "moderator_id": actor.UserID}).Info("пост закрыт модератором")
		return nil

	case post.IsOwnedBy(actor.UserID):
		hasDeal, err := uc.dealRepo.ExistsForPost(ctx, post.ID)
		if err != nil {
			return err
		}
		if hasDeal {
			return apperror.New(apperror.ErrCodePolicyViolation, "нельзя удалить пост, по которому заключена сделка")
		}
		if err := uc.postRepo.Delete(ctx, post.ID); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{"post_id": post.ID}).Info("пост удалён владельцем")
		return nil
	}

	return apperror.ErrForbidden
}

type GetPostUseCase struct {
	postRepo repository.PostRepository
}

func NewGetPostUseCase(postRepo repository.PostRepository) *GetPostUseCase {
	return &GetPostUseCase{postRepo: postRepo}
}

func (uc *GetPostUseCase) Execute(ctx context.Context, postID uuid.UUID) (*entity.Post, error) {
	return uc.postRepo.FindByID(ctx, postID)
}

type ListMyPostsUseCase struct {
	postRepo repository.PostRepository
}

func NewListMyPostsUseCase(postRepo repository.PostRepository) *ListMyPostsUseCase {
	return &ListMyPostsUseCase{postRepo: postRepo}
}

func (uc *ListMyPostsUseCase) Execute(ctx context.Context, actor entity.Actor) ([]*entity.Post, error) {
	if !actor.IsStudent() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "посты есть только у студентов")
	}
	return uc.postRepo.FindByStudentID(ctx, actor.UserID)
}

const (
	DefaultOpenPostsLimit = 20
	MaxOpenPostsLimit     = 100
)

// ListOpenPostsQuery - фильтр ленты открытых постов. Пустые поля не фильтруют.
type ListOpenPostsQuery struct {
	Institution string
	SubjectArea string
	PriceMin    *float64
	PriceMax    *float64
	Sort        string
	Order       string
	Offset      int
	Limit       int
}

type ListOpenPostsUseCase struct {
	postRepo repository.PostRepository
}

func NewListOpenPostsUseCase(postRepo repository.PostRepository) *ListOpenPostsUseCase {
	return &ListOpenPostsUseCase{postRepo: postRepo}
}

func (uc *ListOpenPostsUseCase) Execute(ctx context.Context, q ListOpenPostsQuery) ([]*entity.Post, error) {
	filter, err := q.toFilter()
	if err != nil {
		return nil, err
	}
	return uc.postRepo.ListOpen(ctx, filter)
}

func (q ListOpenPostsQuery) toFilter() (repository.PostFilter, error) {
	filter := repository.PostFilter{
		Institution: strings.TrimSpace(q.Institution),
		SubjectArea: strings.TrimSpace(q.SubjectArea),
		PriceMin:    q.PriceMin,
		PriceMax:    q.PriceMax,
		Offset:      q.Offset,
		Limit:       q.Limit,
	}

	if q.PriceMin != nil && *q.PriceMin < 0 || q.PriceMax != nil && *q.PriceMax < 0 {
		return filter, apperror.New(apperror.ErrCodeValidation, "цена в фильтре не может быть отрицательной")
	}
	if q.PriceMin != nil && q.PriceMax != nil && *q.PriceMin > *q.PriceMax {
		return filter, apperror.New(apperror.ErrCodeValidation, "минимальная цена больше максимальной")
	}

	switch strings.ToLower(q.Sort) {
	case "", string(repository.PostSortByDate):
		filter.SortBy = repository.PostSortByDate
	case string(repository.PostSortByPrice):
		filter.SortBy = repository.PostSortByPrice
	default:
		return filter, apperror.New(apperror.ErrCodeValidation, "сортировка: date или price")
	}
	switch strings.ToLower(q.Order) {
	case "", "desc":
	case "asc":
		filter.Ascending = true
	default:
		return filter, apperror.New(apperror.ErrCodeValidation, "порядок: asc или desc")
	}

	if filter.Offset < 0 {
		return filter, apperror.New(apperror.ErrCodeValidation, "offset не может быть отрицательным")
	}
	switch {
	case filter.Limit == 0:
		filter.Limit = DefaultOpenPostsLimit
	case filter.Limit < 0 || filter.Limit > MaxOpenPostsLimit:
		return filter, apperror.New(apperror.ErrCodeValidation, "limit должен быть от 1 до 100")
	}
	return filter, nil
}
