package account_test

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
)

type fixture struct {
	store    *memory.Store
	tokens   *service.TokenManager
	register *account.RegisterUseCase
	edit     *account.EditProfileUseCase
	login    *account.LoginUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	hasher := service.NewBcryptHasher(bcrypt.MinCost)
	tokens := service.NewTokenManager("test-secret-test-secret-test-secret", time.Hour)
	scanner := contactinfo.NewScanner()
	return &fixture{
		store:    store,
		tokens:   tokens,
		register: account.NewRegisterUseCase(store.Users(), store.ProfileErrors(), scanner, hasher, tokens),
		edit:     account.NewEditProfileUseCase(store.Users(), store.ProfileErrors(), scanner, hasher),
		login:    account.NewLoginUseCase(store.Users(), hasher, tokens),
	}
}

func teacherCommand() account.RegisterCommand {
	return account.RegisterCommand{
		FullName:       "Иван Петров",
		Email:          "Ivan@Example.org",
		Password:       "Secret123",
		PhoneNumber:    "+7 916 123-45-67",
		BankCardNumber: "4111 1111 1111 1111",
		Role:           "teacher",
		Description:    "Помогаю с математикой",
	}
}

func TestRegister_CreatesUserAndToken(t *testing.T) {
	f := newFixture()

	res, err := f.register.Execute(context.Background(), teacherCommand())
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.Nil(t, res.Review)
	assert.Equal(t, "ivan@example.org", res.User.Email)
	assert.Equal(t, "+79161234567", res.User.PhoneNumber)
	assert.Equal(t, "Помогаю с математикой", res.User.Description())
	assert.NotEqual(t, "Secret123", res.User.PasswordHash)

	actor, err := f.tokens.Resolve(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, actor.UserID)
	assert.Equal(t, valueobject.RoleTeacher, actor.Role)
}

func TestRegister_FlaggedDescriptionGoesToReview(t *testing.T) {
	f := newFixture()
	cmd := teacherCommand()
	cmd.Description = "пишите в телеграм"

	res, err := f.register.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Nil(t, res.User)
	require.NotNil(t, res.Review)
	assert.True(t, res.Review.IsNewAccount())
	assert.Equal(t, valueobject.ReviewStatusReview, res.Review.Status)
	assert.NotEqual(t, cmd.Password, res.Review.PasswordHash)

	_, err = f.store.Users().FindByEmail(context.Background(), "ivan@example.org")
	assert.True(t, apperror.IsNotFound(err))
}

func TestRegister_TrustedSkipsScannerAndUsesHash(t *testing.T) {
	f := newFixture()
	cmd := teacherCommand()
	cmd.Description = "пишите в телеграм"
	cmd.Password = ""
	cmd.PasswordHash = "$2a$04$precomputed"
	cmd.Trusted = true

	res, err := f.register.Execute(context.Background(), cmd)
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.Equal(t, "$2a$04$precomputed", res.User.PasswordHash)
	assert.Empty(t, res.Token)
}

func TestRegister_UntrustedHashRejected(t *testing.T) {
	f := newFixture()
	cmd := teacherCommand()
	cmd.PasswordHash = "$2a$04$precomputed"

	_, err := f.register.Execute(context.Background(), cmd)
	assert.True(t, apperror.IsValidation(err))
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		mutate func(*account.RegisterCommand)
	}{
		{"moderator role", func(c *account.RegisterCommand) { c.Role = "moderator" }},
		{"bad email", func(c *account.RegisterCommand) { c.Email = "nope" }},
		{"weak password", func(c *account.RegisterCommand) { c.Password = "123" }},
		{"bad card", func(c *account.RegisterCommand) { c.BankCardNumber = "1234 5678 9012 3456" }},
		{"student description", func(c *account.RegisterCommand) { c.Role = "student" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := teacherCommand()
			tt.mutate(&cmd)
			_, err := f.register.Execute(context.Background(), cmd)
			assert.True(t, apperror.IsValidation(err), err)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture()
	_, err := f.register.Execute(context.Background(), teacherCommand())
	require.NoError(t, err)

	cmd := teacherCommand()
	cmd.PhoneNumber = "+79990000000"
	_, err = f.register.Execute(context.Background(), cmd)
	assert.True(t, apperror.IsConflict(err))
}

func TestLogin(t *testing.T) {
	f := newFixture()
	_, err := f.register.Execute(context.Background(), teacherCommand())
	require.NoError(t, err)

	res, err := f.login.Execute(context.Background(), "IVAN@example.org", "Secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = f.login.Execute(context.Background(), "ivan@example.org", "Wrong123")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = f.login.Execute(context.Background(), "nobody@example.org", "Secret123")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func registerTeacher(t *testing.T, f *fixture) *entity.User {
	t.Helper()
	res, err := f.register.Execute(context.Background(), teacherCommand())
	require.NoError(t, err)
	return res.User
}

func TestEditProfile_AppliesChanges(t *testing.T) {
	f := newFixture()
	user := registerTeacher(t, f)

	res, err := f.edit.Execute(context.Background(), account.EditProfileCommand{
		Actor:       user.Actor(),
		UserID:      user.ID,
		FullName:    "Иван Сидоров",
		Description: "Физика и математика",
	})
	require.NoError(t, err)
	require.NotNil(t, res.User)

	stored, err := f.store.Users().FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Иван Сидоров", stored.FullName)
	assert.Equal(t, "Физика и математика", stored.Description())
	assert.Equal(t, user.Email, stored.Email)
}

func TestEditProfile_FlaggedEditCreatesTargetedReview(t *testing.T) {
	f := newFixture()
	user := registerTeacher(t, f)

	res, err := f.edit.Execute(context.Background(), account.EditProfileCommand{
		Actor:       user.Actor(),
		UserID:      user.ID,
		Description: "мой инстаграм ivan_math",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Review)
	require.NotNil(t, res.Review.TargetProfileID)
	assert.Equal(t, user.ID, *res.Review.TargetProfileID)
	assert.Empty(t, res.Review.FullName)

	stored, err := f.store.Users().FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Помогаю с математикой", stored.Description())
}

func TestEditProfile_Forbidden(t *testing.T) {
	f := newFixture()
	user := registerTeacher(t, f)

	_, err := f.edit.Execute(context.Background(), account.EditProfileCommand{
		Actor:    entity.Actor{UserID: uuid.New(), Role: valueobject.RoleStudent},
		UserID:   user.ID,
		FullName: "Кто-то другой",
	})
	assert.True(t, apperror.IsForbidden(err))
}

func TestEditProfile_StudentCannotSetDescription(t *testing.T) {
	f := newFixture()
	cmd := teacherCommand()
	cmd.Role = "student"
	cmd.Description = ""
	res, err := f.register.Execute(context.Background(), cmd)
	require.NoError(t, err)

	_, err = f.edit.Execute(context.Background(), account.EditProfileCommand{
		Actor:       res.User.Actor(),
		UserID:      res.User.ID,
		Description: "описание",
	})
	assert.True(t, apperror.IsForbidden(err))
}

func TestDeleteAccount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := registerTeacher(t, f)
	del := account.NewDeleteAccountUseCase(f.store.Users())
	actor := entity.Actor{UserID: user.ID, Role: user.Role}

	require.NoError(t, del.Execute(ctx, actor))

	_, err := f.login.Execute(ctx, "ivan@example.org", "Secret123")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	assert.ErrorIs(t, del.Execute(ctx, actor), apperror.ErrUserNotFound)

	// Email и телефон снова свободны.
	_, err = f.register.Execute(ctx, teacherCommand())
	assert.NoError(t, err)
}
