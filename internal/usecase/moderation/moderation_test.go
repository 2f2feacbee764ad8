package moderation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/infrastructure/contactinfo"
	"github.com/ignatzorin/docexchange-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
	"github.com/ignatzorin/docexchange-backend/internal/service"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/account"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/moderation"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/post"
)

type fixture struct {
	store         *memory.Store
	hasher        *service.BcryptHasher
	register      *account.RegisterUseCase
	editProfile   *account.EditProfileUseCase
	createPost    *post.CreatePostUseCase
	editPost      *post.EditPostUseCase
	decideProfile *moderation.DecideProfileErrorUseCase
	decidePost    *moderation.DecidePostErrorUseCase
	listProfile   *moderation.ListProfileErrorsUseCase
}

var moderator = entity.Actor{UserID: uuid.New(), Role: valueobject.RoleModerator}

func newFixture() *fixture {
	store := memory.NewStore()
	store.SeedCatalog()
	scanner := contactinfo.NewScanner()
	hasher := service.NewBcryptHasher(bcrypt.MinCost)
	tokens := service.NewTokenManager("test-secret-test-secret-test-secret", time.Hour)

	f := &fixture{
		store:       store,
		hasher:      hasher,
		register:    account.NewRegisterUseCase(store.Users(), store.ProfileErrors(), scanner, hasher, tokens),
		editProfile: account.NewEditProfileUseCase(store.Users(), store.ProfileErrors(), scanner, hasher),
		createPost:  post.NewCreatePostUseCase(store.Posts(), store.Catalog(), store.PostErrors(), scanner),
		editPost:    post.NewEditPostUseCase(store.Posts(), store.Catalog(), store.PostErrors(), scanner),
		listProfile: moderation.NewListProfileErrorsUseCase(store.ProfileErrors()),
	}
	f.decideProfile = moderation.NewDecideProfileErrorUseCase(store.ProfileErrors(), f.register, f.editProfile)
	f.decidePost = moderation.NewDecidePostErrorUseCase(store.PostErrors(), f.createPost, f.editPost)
	return f
}

func flaggedRegistration() account.RegisterCommand {
	return account.RegisterCommand{
		FullName:       "Ольга Смирнова",
		Email:          "olga@example.org",
		Password:       "Secret123",
		PhoneNumber:    "+79160000001",
		BankCardNumber: "4111111111111111",
		Role:           "teacher",
		Description:    "пишите в telegram",
	}
}

func TestDecideProfile_ApproveNewAccount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	res, err := f.register.Execute(ctx, flaggedRegistration())
	require.NoError(t, err)
	require.NotNil(t, res.Review)

	decision, err := f.decideProfile.Execute(ctx, moderator, res.Review.ID, "APPROVED")
	require.NoError(t, err)
	assert.Equal(t, valueobject.ReviewStatusApproved, decision.Item.Status)
	require.NotNil(t, decision.User)

	user, err := f.store.Users().FindByEmail(ctx, "olga@example.org")
	require.NoError(t, err)
	assert.Equal(t, decision.User.ID, user.ID)
	assert.Equal(t, "Ольга Смирнова", user.FullName)
	assert.Equal(t, "пишите в telegram", user.Description())
	assert.NoError(t, f.hasher.Compare(user.PasswordHash, "Secret123"))

	items, err := f.listProfile.Execute(ctx, moderator)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = f.decideProfile.Execute(ctx, moderator, res.Review.ID, "approved")
	assert.True(t, apperror.IsNotFound(err))
}

func TestDecideProfile_ApproveEditMutatesExistingProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cmd := flaggedRegistration()
	cmd.Description = "математика"
	reg, err := f.register.Execute(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, reg.User)

	edit, err := f.editProfile.Execute(ctx, account.EditProfileCommand{
		Actor:       reg.User.Actor(),
		UserID:      reg.User.ID,
		Description: "мой gmail olga.math",
	})
	require.NoError(t, err)
	require.NotNil(t, edit.Review)

	decision, err := f.decideProfile.Execute(ctx, moderator, edit.Review.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, decision.User.ID)

	user, err := f.store.Users().FindByID(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "мой gmail olga.math", user.Description())
	assert.Equal(t, "Ольга Смирнова", user.FullName)

	// новый аккаунт не появился
	other, err := f.store.Users().ExistsByEmail(ctx, "olga@example.org", reg.User.ID)
	require.NoError(t, err)
	assert.False(t, other)
}

func TestDecideProfile_Deny(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	res, err := f.register.Execute(ctx, flaggedRegistration())
	require.NoError(t, err)

	decision, err := f.decideProfile.Execute(ctx, moderator, res.Review.ID, "Denied")
	require.NoError(t, err)
	assert.Equal(t, valueobject.ReviewStatusDenied, decision.Item.Status)
	assert.Nil(t, decision.User)

	_, err = f.store.Users().FindByEmail(ctx, "olga@example.org")
	assert.True(t, apperror.IsNotFound(err))
	_, err = f.store.ProfileErrors().FindByID(ctx, res.Review.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDecideProfile_Guards(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	res, err := f.register.Execute(ctx, flaggedRegistration())
	require.NoError(t, err)

	_, err = f.decideProfile.Execute(ctx, entity.Actor{UserID: uuid.New(), Role: valueobject.RoleTeacher}, res.Review.ID, "approved")
	assert.True(t, apperror.IsForbidden(err))

	_, err = f.decideProfile.Execute(ctx, moderator, res.Review.ID, "maybe")
	assert.True(t, apperror.IsPolicyViolation(err))

	// неверное решение не трогает заявку
	_, err = f.store.ProfileErrors().FindByID(ctx, res.Review.ID)
	require.NoError(t, err)

	_, err = f.decideProfile.Execute(ctx, moderator, uuid.New(), "approved")
	assert.True(t, apperror.IsNotFound(err))
}

func TestDecideProfile_FailedReplayIsNotRequeued(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	res, err := f.register.Execute(ctx, flaggedRegistration())
	require.NoError(t, err)

	// пока заявка ждала, email заняли
	cmd := flaggedRegistration()
	cmd.Description = "математика"
	cmd.PhoneNumber = "+79160000002"
	_, err = f.register.Execute(ctx, cmd)
	require.NoError(t, err)

	_, err = f.decideProfile.Execute(ctx, moderator, res.Review.ID, "approved")
	assert.True(t, apperror.IsConflict(err))

	_, err = f.store.ProfileErrors().FindByID(ctx, res.Review.ID)
	assert.True(t, apperror.IsNotFound(err))
}

var student = entity.Actor{UserID: uuid.New(), Role: valueobject.RoleStudent}

func TestDecidePost_ApproveNewPost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	res, err := f.createPost.Execute(ctx, post.CreatePostCommand{
		Actor:       student,
		WorkType:    "Реферат",
		SubjectArea: "История",
		Institution: "ВШЭ",
		Description: "детали в инстаграм",
		Price:       500,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Review)

	decision, err := f.decidePost.Execute(ctx, moderator, res.Review.ID, "approved")
	require.NoError(t, err)
	require.NotNil(t, decision.Post)
	assert.Equal(t, student.UserID, decision.Post.StudentID)
	assert.Equal(t, "детали в инстаграм", decision.Post.Description)
	assert.Equal(t, 500.0, decision.Post.Price)

	posts, err := f.store.Posts().FindByStudentID(ctx, student.UserID)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestDecidePost_ApproveEditOfExistingPost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.createPost.Execute(ctx, post.CreatePostCommand{
		Actor:       student,
		WorkType:    "Реферат",
		SubjectArea: "История",
		Institution: "ВШЭ",
		Description: "реферат про реформы",
		Price:       500,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Post)

	edit, err := f.editPost.Execute(ctx, post.EditPostCommand{
		Actor:       student,
		PostID:      created.Post.ID,
		Description: "подробнее: https://docs.example",
		Institution: "МГУ",
	})
	require.NoError(t, err)
	require.NotNil(t, edit.Review)

	decision, err := f.decidePost.Execute(ctx, moderator, edit.Review.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, created.Post.ID, decision.Post.ID)

	live, err := f.store.Posts().FindByID(ctx, created.Post.ID)
	require.NoError(t, err)
	assert.Equal(t, "подробнее: https://docs.example", live.Description)
	assert.Equal(t, "МГУ", live.Institution)

	posts, err := f.store.Posts().FindByStudentID(ctx, student.UserID)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}
