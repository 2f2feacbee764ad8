package deal

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type TeacherRating struct {
	TeacherID uuid.UUID
	Rating    float64
	Votes     int
}

type TeacherRatingUseCase struct {
	userRepo repository.UserRepository
	dealRepo repository.DealRepository
}

func NewTeacherRatingUseCase(userRepo repository.UserRepository, dealRepo repository.DealRepository) *TeacherRatingUseCase {
	return &TeacherRatingUseCase{userRepo: userRepo, dealRepo: dealRepo}
}

func (uc *TeacherRatingUseCase) Execute(ctx context.Context, teacherID uuid.UUID) (*TeacherRating, error) {
	user, err := uc.userRepo.FindByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if user.Role != valueobject.RoleTeacher {
		return nil, apperror.ErrUserNotFound
	}

	scores, err := uc.dealRepo.FeedbackScores(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return &TeacherRating{
		TeacherID: teacherID,
		Rating:    entity.AverageRating(scores),
		Votes:     len(scores),
	}, nil
}

type ListMyDealsUseCase struct {
	dealRepo repository.DealRepository
}

func NewListMyDealsUseCase(dealRepo repository.DealRepository) *ListMyDealsUseCase {
	return &ListMyDealsUseCase{dealRepo: dealRepo}
}

func (uc *ListMyDealsUseCase) Execute(ctx context.Context, actor entity.Actor) ([]*entity.Deal, error) {
	switch {
	case actor.IsTeacher():
		return uc.dealRepo.FindByTeacherID(ctx, actor.UserID)
	case actor.IsStudent():
		return uc.dealRepo.FindByStudentID(ctx, actor.UserID)
	}
	return nil, apperror.New(apperror.ErrCodeForbidden, "сделки есть только у студентов и преподавателей")
}
