package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

const responseColumns = `id, post_id, respondent_id, respondent_role, price, prev_response_id, created_at`

type responseRow struct {
	ID             uuid.UUID     `db:"id"`
	PostID         uuid.UUID     `db:"post_id"`
	RespondentID   uuid.UUID     `db:"respondent_id"`
	RespondentRole string        `db:"respondent_role"`
	Price          float64       `db:"price"`
	PrevResponseID uuid.NullUUID `db:"prev_response_id"`
	CreatedAt      time.Time     `db:"created_at"`
}

func (r responseRow) toEntity() *entity.Response {
	resp := &entity.Response{
		ID:             r.ID,
		PostID:         r.PostID,
		RespondentID:   r.RespondentID,
		RespondentRole: valueobject.Role(r.RespondentRole),
		Price:          r.Price,
		CreatedAt:      r.CreatedAt.UTC(),
	}
	if r.PrevResponseID.Valid {
		prev := r.PrevResponseID.UUID
		resp.PrevResponseID = &prev
	}
	return resp
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

type ResponseRepository struct {
	db *sqlx.DB
}

func NewResponseRepository(db *sqlx.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// Append опирается на уникальные индексы: второе продолжение того же отклика
// и второй корень того же преподавателя по посту возвращают CONFLICT.
func (r *ResponseRepository) Append(ctx context.Context, response *entity.Response) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO responses (`+responseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		response.ID,
		response.PostID,
		response.RespondentID,
		string(response.RespondentRole),
		response.Price,
		nullUUID(response.PrevResponseID),
		response.CreatedAt,
	)
	switch pqCode(err) {
	case "":
	case pqUniqueViolation:
		if response.PrevResponseID == nil {
			return apperror.ErrAlreadyResponded
		}
		return apperror.New(apperror.ErrCodeConflict, "на этот отклик уже ответили")
	case pqForeignKeyViolation:
		if response.PrevResponseID != nil {
			return apperror.ErrResponseNotFound
		}
		return apperror.ErrPostNotFound
	}
	if err != nil {
		return dbError(err, "не удалось сохранить отклик")
	}
	return nil
}

func (r *ResponseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Response, error) {
	var row responseRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+responseColumns+` FROM responses WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrResponseNotFound
		}
		return nil, dbError(err, "не удалось получить отклик")
	}
	return row.toEntity(), nil
}

func (r *ResponseRepository) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*entity.Response, error) {
	return r.FindByPostIDs(ctx, []uuid.UUID{postID})
}

func (r *ResponseRepository) FindByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]*entity.Response, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, len(postIDs))
	for i, id := range postIDs {
		ids[i] = id.String()
	}

	var rows []responseRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+responseColumns+` FROM responses
		WHERE post_id = ANY($1::uuid[])
		ORDER BY created_at
	`, pq.Array(ids)); err != nil {
		return nil, dbError(err, "не удалось получить отклики")
	}
	result := make([]*entity.Response, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toEntity())
	}
	return result, nil
}

func (r *ResponseRepository) FindPostIDsByRespondent(ctx context.Context, respondentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, `
		SELECT DISTINCT post_id FROM responses WHERE respondent_id = $1
	`, respondentID); err != nil {
		return nil, dbError(err, "не удалось получить посты с откликами")
	}
	return ids, nil
}
