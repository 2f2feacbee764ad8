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

const profileErrorColumns = `id, target_profile_id, full_name, email, password_hash, phone_number,
	bank_card_number, role, description, status, created_at`

type profileErrorRow struct {
	ID              uuid.UUID     `db:"id"`
	TargetProfileID uuid.NullUUID `db:"target_profile_id"`
	FullName        string        `db:"full_name"`
	Email           string        `db:"email"`
	PasswordHash    string        `db:"password_hash"`
	PhoneNumber     string        `db:"phone_number"`
	BankCardNumber  string        `db:"bank_card_number"`
	Role            string        `db:"role"`
	Description     string        `db:"description"`
	Status          string        `db:"status"`
	CreatedAt       time.Time     `db:"created_at"`
}

func (r profileErrorRow) toEntity() *entity.ProfileError {
	e := &entity.ProfileError{
		ID:             r.ID,
		FullName:       r.FullName,
		Email:          r.Email,
		PasswordHash:   r.PasswordHash,
		PhoneNumber:    r.PhoneNumber,
		BankCardNumber: r.BankCardNumber,
		Role:           valueobject.Role(r.Role),
		Description:    r.Description,
		Status:         valueobject.ReviewStatus(r.Status),
		CreatedAt:      r.CreatedAt.UTC(),
	}
	if r.TargetProfileID.Valid {
		id := r.TargetProfileID.UUID
		e.TargetProfileID = &id
	}
	return e
}

type ProfileErrorRepository struct {
	db *sqlx.DB
}

func NewProfileErrorRepository(db *sqlx.DB) *ProfileErrorRepository {
	return &ProfileErrorRepository{db: db}
}

func (r *ProfileErrorRepository) Create(ctx context.Context, item *entity.ProfileError) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profile_errors (`+profileErrorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		item.ID,
		nullUUID(item.TargetProfileID),
		item.FullName,
		item.Email,
		item.PasswordHash,
		item.PhoneNumber,
		item.BankCardNumber,
		string(item.Role),
		item.Description,
		string(item.Status),
		item.CreatedAt,
	)
	if err != nil {
		return dbError(err, "не удалось сохранить заявку на проверку профиля")
	}
	return nil
}

func (r *ProfileErrorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProfileError, error) {
	return r.one(ctx, `SELECT `+profileErrorColumns+` FROM profile_errors WHERE id = $1`, id)
}

// Take удаляет заявку и возвращает её одним запросом, поэтому решение по ней принимается ровно один раз.
func (r *ProfileErrorRepository) Take(ctx context.Context, id uuid.UUID) (*entity.ProfileError, error) {
	return r.one(ctx, `DELETE FROM profile_errors WHERE id = $1 AND status = 'REVIEW' RETURNING `+profileErrorColumns, id)
}

func (r *ProfileErrorRepository) one(ctx context.Context, query string, id uuid.UUID) (*entity.ProfileError, error) {
	var row profileErrorRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrProfileErrorNotFound
		}
		return nil, dbError(err, "не удалось получить заявку на проверку профиля")
	}
	return row.toEntity(), nil
}

func (r *ProfileErrorRepository) List(ctx context.Context) ([]*entity.ProfileError, error) {
	var rows []profileErrorRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+profileErrorColumns+` FROM profile_errors WHERE status = 'REVIEW' ORDER BY created_at
	`); err != nil {
		return nil, dbError(err, "не удалось получить заявки на проверку профилей")
	}
	result := make([]*entity.ProfileError, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toEntity())
	}
	return result, nil
}

const postErrorColumns = `id, post_id, student_id, work_type, subject_area, institution, description, price, status, created_at`

type postErrorRow struct {
	ID          uuid.UUID     `db:"id"`
	PostID      uuid.NullUUID `db:"post_id"`
	StudentID   uuid.UUID     `db:"student_id"`
	WorkType    string        `db:"work_type"`
	SubjectArea string        `db:"subject_area"`
	Institution string        `db:"institution"`
	Description string        `db:"description"`
	Price       float64       `db:"price"`
	Status      string        `db:"status"`
	CreatedAt   time.Time     `db:"created_at"`
}

func (r postErrorRow) toEntity() *entity.PostError {
	e := &entity.PostError{
		ID:          r.ID,
		StudentID:   r.StudentID,
		WorkType:    r.WorkType,
		SubjectArea: r.SubjectArea,
		Institution: r.Institution,
		Description: r.Description,
		Price:       r.Price,
		Status:      valueobject.ReviewStatus(r.Status),
		CreatedAt:   r.CreatedAt.UTC(),
	}
	if r.PostID.Valid {
		id := r.PostID.UUID
		e.PostID = &id
	}
	return e
}

type PostErrorRepository struct {
	db *sqlx.DB
}

func NewPostErrorRepository(db *sqlx.DB) *PostErrorRepository {
	return &PostErrorRepository{db: db}
}

func (r *PostErrorRepository) Create(ctx context.Context, item *entity.PostError) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO post_errors (`+postErrorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		item.ID,
		nullUUID(item.PostID),
		item.StudentID,
		item.WorkType,
		item.SubjectArea,
		item.Institution,
		item.Description,
		item.Price,
		string(item.Status),
		item.CreatedAt,
	)
	if pqCode(err) == pqForeignKeyViolation {
		return apperror.ErrPostNotFound
	}
	if err != nil {
		return dbError(err, "не удалось сохранить заявку на проверку поста")
	}
	return nil
}

func (r *PostErrorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PostError, error) {
	return r.one(ctx, `SELECT `+postErrorColumns+` FROM post_errors WHERE id = $1`, id)
}

func (r *PostErrorRepository) Take(ctx context.Context, id uuid.UUID) (*entity.PostError, error) {
	return r.one(ctx, `DELETE FROM post_errors WHERE id = $1 AND status = 'REVIEW' RETURNING `+postErrorColumns, id)
}

func (r *PostErrorRepository) one(ctx context.Context, query string, id uuid.UUID) (*entity.PostError, error) {
	var row postErrorRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrPostErrorNotFound
		}
		return nil, dbError(err, "не удалось получить заявку на проверку поста")
	}
	return row.toEntity(), nil
}

func (r *PostErrorRepository) List(ctx context.Context) ([]*entity.PostError, error) {
	var rows []postErrorRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+postErrorColumns+` FROM post_errors WHERE status = 'REVIEW' ORDER BY created_at
	`); err != nil {
		return nil, dbError(err, "не удалось получить заявки на проверку постов")
	}
	result := make([]*entity.PostError, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toEntity())
	}
	return result, nil
}
