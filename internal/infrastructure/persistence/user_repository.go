package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

const userColumns = `id, full_name, email, password_hash, phone_number, bank_card_number, role, description, created_at, updated_at`

type userRow struct {
	ID             uuid.UUID      `db:"id"`
	FullName       string         `db:"full_name"`
	Email          string         `db:"email"`
	PasswordHash   string         `db:"password_hash"`
	PhoneNumber    string         `db:"phone_number"`
	BankCardNumber string         `db:"bank_card_number"`
	Role           string         `db:"role"`
	Description    sql.NullString `db:"description"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (r userRow) toEntity() *entity.User {
	u := &entity.User{
		ID:             r.ID,
		FullName:       r.FullName,
		Email:          r.Email,
		PasswordHash:   r.PasswordHash,
		PhoneNumber:    r.PhoneNumber,
		BankCardNumber: r.BankCardNumber,
		Role:           valueobject.Role(r.Role),
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
	}
	if u.Role == valueobject.RoleTeacher {
		u.Teacher = &entity.TeacherProfile{Description: r.Description.String}
	}
	return u
}

func userDescription(u *entity.User) sql.NullString {
	if u.Teacher == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: u.Teacher.Description, Valid: true}
}

var errContactsTaken = apperror.New(apperror.ErrCodeConflict, "email или телефон уже используются")

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.PhoneNumber,
		user.BankCardNumber,
		string(user.Role),
		userDescription(user),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if pqCode(err) == pqUniqueViolation {
			return errContactsTaken
		}
		return dbError(err, "не удалось создать пользователя")
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET full_name = $2, email = $3, password_hash = $4, phone_number = $5,
		    bank_card_number = $6, description = $7, updated_at = $8
		WHERE id = $1
	`,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.PhoneNumber,
		user.BankCardNumber,
		userDescription(user),
		user.UpdatedAt,
	)
	if err != nil {
		if pqCode(err) == pqUniqueViolation {
			return errContactsTaken
		}
		return dbError(err, "не удалось обновить пользователя")
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

// Delete держится на внешних ключах без каскада: ссылки из постов, откликов,
// сделок и жалоб оставляют пользователя на месте.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return apperror.ErrAccountHasHistory
		}
		return dbError(err, "не удалось удалить пользователя")
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, dbError(err, "не удалось получить пользователя")
	}
	return row.toEntity(), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, exceptID uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) AND id <> $2)`, email, exceptID)
}

func (r *UserRepository) ExistsByPhone(ctx context.Context, phone string, exceptID uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE phone_number = $1 AND id <> $2)`, phone, exceptID)
}

func (r *UserRepository) exists(ctx context.Context, query string, value string, exceptID uuid.UUID) (bool, error) {
	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, value, exceptID); err != nil {
		return false, dbError(err, "не удалось проверить уникальность контактов")
	}
	return ok, nil
}
