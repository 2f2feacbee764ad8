package complaint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/complaint"
)

type fixture struct {
	store     *memory.Store
	deal      *entity.Deal
	student   entity.Actor
	teacher   entity.Actor
	moderator entity.Actor
	create    *complaint.CreateComplaintUseCase
	list      *complaint.ListComplaintsUseCase
	assign    *complaint.AssignComplaintUseCase
	update    *complaint.UpdateComplaintStatusUseCase
	remove    *complaint.DeleteComplaintUseCase
	mine      *complaint.GetMyComplaintUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	student := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleStudent}
	teacher := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleTeacher}

	p, err := entity.NewPost(student.UserID, "Реферат", "История", "МГУ", "реферат", 100)
	require.NoError(t, err)
	require.NoError(t, store.Posts().Create(ctx, p))
	r, err := entity.NewRootResponse(p.ID, teacher, 100)
	require.NoError(t, err)
	d, err := entity.NewDeal(p, r)
	require.NoError(t, err)
	require.NoError(t, store.Deals().CreateAndClosePost(ctx, d))

	repo := store.Complaints()
	return &fixture{
		store:     store,
		deal:      d,
		student:   student,
		teacher:   teacher,
		moderator: entity.Actor{UserID: uuid.New(), Role: valueobject.RoleModerator},
		create:    complaint.NewCreateComplaintUseCase(store.Deals(), repo),
		list:      complaint.NewListComplaintsUseCase(repo),
		assign:    complaint.NewAssignComplaintUseCase(repo),
		update:    complaint.NewUpdateComplaintStatusUseCase(repo),
		remove:    complaint.NewDeleteComplaintUseCase(repo),
		mine:      complaint.NewGetMyComplaintUseCase(repo),
	}
}

func TestCreateComplaint_EitherPartyOncePerDeal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.create.Execute(ctx, f.student, f.deal.ID, "работа не выполнена")
	require.NoError(t, err)
	assert.Equal(t, valueobject.ComplaintStatusNew, c.Status)
	assert.Equal(t, valueobject.RoleStudent, c.PlaintiffRole)
	assert.Nil(t, c.ModeratorID)

	_, err = f.create.Execute(ctx, f.student, f.deal.ID, "ещё раз")
	assert.True(t, apperror.IsConflict(err))

	c2, err := f.create.Execute(ctx, f.teacher, f.deal.ID, "оплата не пришла")
	require.NoError(t, err)
	assert.Equal(t, valueobject.RoleTeacher, c2.PlaintiffRole)

	_, err = f.create.Execute(ctx, entity.Actor{UserID: uuid.New(), Role: valueobject.RoleStudent}, f.deal.ID, "чужая")
	assert.True(t, apperror.IsForbidden(err))

	_, err = f.create.Execute(ctx, f.student, uuid.New(), "нет сделки")
	assert.True(t, apperror.IsNotFound(err))

	own, err := f.mine.Execute(ctx, f.teacher, f.deal.ID)
	require.NoError(t, err)
	assert.Equal(t, c2.ID, own.ID)
}

func TestComplaint_AssignedModeratorOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.create.Execute(ctx, f.student, f.deal.ID, "работа не выполнена")
	require.NoError(t, err)

	_, err = f.update.Execute(ctx, f.moderator, c.ID, "IN_PROGRESS")
	assert.True(t, apperror.IsForbidden(err), "not assigned yet")

	_, err = f.assign.Execute(ctx, f.student, c.ID)
	assert.True(t, apperror.IsForbidden(err))

	assigned, err := f.assign.Execute(ctx, f.moderator, c.ID)
	require.NoError(t, err)
	require.NotNil(t, assigned.ModeratorID)

	other := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleModerator}
	_, err = f.assign.Execute(ctx, other, c.ID)
	assert.True(t, apperror.IsConflict(err))
	_, err = f.update.Execute(ctx, other, c.ID, "CLOSED")
	assert.True(t, apperror.IsForbidden(err))
	assert.True(t, apperror.IsForbidden(f.remove.Execute(ctx, other, c.ID)))

	_, err = f.update.Execute(ctx, f.moderator, c.ID, "   ")
	assert.True(t, apperror.IsValidation(err))

	updated, err := f.update.Execute(ctx, f.moderator, c.ID, " IN_PROGRESS ")
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", updated.Status)

	require.NoError(t, f.remove.Execute(ctx, f.moderator, c.ID))
	_, err = f.store.Complaints().FindByID(ctx, c.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestListComplaints_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fromStudent, err := f.create.Execute(ctx, f.student, f.deal.ID, "работа не выполнена")
	require.NoError(t, err)
	_, err = f.create.Execute(ctx, f.teacher, f.deal.ID, "оплата не пришла")
	require.NoError(t, err)
	_, err = f.assign.Execute(ctx, f.moderator, fromStudent.ID)
	require.NoError(t, err)

	_, err = f.list.Execute(ctx, f.student, complaint.ListComplaintsQuery{})
	assert.True(t, apperror.IsForbidden(err))

	mine, err := f.list.Execute(ctx, f.moderator, complaint.ListComplaintsQuery{Scope: "mine"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, fromStudent.ID, mine[0].ID)

	byTeacher, err := f.list.Execute(ctx, f.moderator, complaint.ListComplaintsQuery{PlaintiffRole: "teacher", Sort: "asc"})
	require.NoError(t, err)
	require.Len(t, byTeacher, 1)
	assert.Equal(t, valueobject.RoleTeacher, byTeacher[0].PlaintiffRole)

	_, err = f.list.Execute(ctx, f.moderator, complaint.ListComplaintsQuery{Scope: "everything"})
	assert.True(t, apperror.IsValidation(err))
	_, err = f.list.Execute(ctx, f.moderator, complaint.ListComplaintsQuery{Sort: "random"})
	assert.True(t, apperror.IsValidation(err))
}

type mockDocumentRepo struct {
	mock.Mock
}

func (m *mockDocumentRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockDocumentComplaintRepo struct {
	mock.Mock
}

func (m *mockDocumentComplaintRepo) Create(ctx context.Context, c *entity.DocumentComplaint) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockDocumentComplaintRepo) List(ctx context.Context) ([]*entity.DocumentComplaint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.DocumentComplaint), args.Error(1)
}

func (m *mockDocumentComplaintRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func TestFileDocumentComplaint(t *testing.T) {
	ctx := context.Background()
	docs := new(mockDocumentRepo)
	repo := new(mockDocumentComplaintRepo)
	uc := complaint.NewFileDocumentComplaintUseCase(docs, repo)
	user := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleStudent}
	docID := uuid.New()

	docs.On("Exists", ctx, docID).Return(true, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(c *entity.DocumentComplaint) bool {
		return c.DocumentID == docID && c.PlaintiffID == user.UserID && c.Message == "плагиат"
	})).Return(nil)

	c, err := uc.Execute(ctx, user, docID, " плагиат ")
	require.NoError(t, err)
	assert.Equal(t, docID, c.DocumentID)
	repo.AssertExpectations(t)
}

func TestFileDocumentComplaint_UnknownDocument(t *testing.T) {
	ctx := context.Background()
	docs := new(mockDocumentRepo)
	repo := new(mockDocumentComplaintRepo)
	uc := complaint.NewFileDocumentComplaintUseCase(docs, repo)
	docID := uuid.New()

	docs.On("Exists", ctx, docID).Return(false, nil)

	_, err := uc.Execute(ctx, entity.Actor{UserID: uuid.New(), Role: valueobject.RoleStudent}, docID, "плагиат")
	assert.True(t, apperror.IsNotFound(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDocumentComplaints_ModeratorOnly(t *testing.T) {
	ctx := context.Background()
	repo := new(mockDocumentComplaintRepo)
	list := complaint.NewListDocumentComplaintsUseCase(repo)
	remove := complaint.NewDeleteDocumentComplaintUseCase(repo)
	moderator := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleModerator}
	student := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleStudent}
	id := uuid.New()

	_, err := list.Execute(ctx, student)
	assert.True(t, apperror.IsForbidden(err))
	assert.True(t, apperror.IsForbidden(remove.Execute(ctx, student, id)))

	repo.On("List", ctx).Return([]*entity.DocumentComplaint{{ID: id}}, nil)
	repo.On("Delete", ctx, id).Return(errors.New("boom")).Once()

	items, err := list.Execute(ctx, moderator)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Error(t, remove.Execute(ctx, moderator, id))
	repo.AssertExpectations(t)
}
