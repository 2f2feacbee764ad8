package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

const complaintColumns = `id, deal_id, plaintiff_id, plaintiff_role, message, status, moderator_id, created_at`

type complaintRow struct {
	ID            uuid.UUID     `db:"id"`
	DealID        uuid.UUID     `db:"deal_id"`
	PlaintiffID   uuid.UUID     `db:"plaintiff_id"`
	PlaintiffRole string        `db:"plaintiff_role"`
	Message       string        `db:"message"`
	Status        string        `db:"status"`
	ModeratorID   uuid.NullUUID `db:"moderator_id"`
	CreatedAt     time.Time     `db:"created_at"`
}

func (r complaintRow) toEntity() *entity.Complaint {
	c := &entity.Complaint{
		ID:            r.ID,
		DealID:        r.DealID,
		PlaintiffID:   r.PlaintiffID,
		PlaintiffRole: valueobject.Role(r.PlaintiffRole),
		Message:       r.Message,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt.UTC(),
	}
	if r.ModeratorID.Valid {
		id := r.ModeratorID.UUID
		c.ModeratorID = &id
	}
	return c
}

type ComplaintRepository struct {
	db *sqlx.DB
}

func NewComplaintRepository(db *sqlx.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO complaints (`+complaintColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		complaint.ID,
		complaint.DealID,
		complaint.PlaintiffID,
		string(complaint.PlaintiffRole),
		complaint.Message,
		complaint.Status,
		nullUUID(complaint.ModeratorID),
		complaint.CreatedAt,
	)
	switch code := pqCode(err); {
	case code == pqUniqueViolation:
		return apperror.New(apperror.ErrCodeConflict, "вы уже подали жалобу по этой сделке")
	case code == pqForeignKeyViolation:
		return apperror.ErrDealNotFound
	case err != nil:
		return dbError(err, "не удалось создать жалобу")
	}
	return nil
}

func (r *ComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error) {
	return r.findOne(ctx, `SELECT `+complaintColumns+` FROM complaints WHERE id = $1`, id)
}

func (r *ComplaintRepository) FindByDealAndPlaintiff(ctx context.Context, dealID, plaintiffID uuid.UUID) (*entity.Complaint, error) {
	return r.findOne(ctx, `SELECT `+complaintColumns+` FROM complaints WHERE deal_id = $1 AND plaintiff_id = $2`, dealID, plaintiffID)
}

func (r *ComplaintRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Complaint, error) {
	var row complaintRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrComplaintNotFound
		}
		return nil, dbError(err, "не удалось получить жалобу")
	}
	return row.toEntity(), nil
}

func (r *ComplaintRepository) List(ctx context.Context, filter repository.ComplaintFilter) ([]*entity.Complaint, error) {
	query, args := complaintListQuery(filter)
	var rows []complaintRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, dbError(err, "не удалось получить жалобы")
	}
	result := make([]*entity.Complaint, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toEntity())
	}
	return result, nil
}

func complaintListQuery(filter repository.ComplaintFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch filter.Scope {
	case repository.ComplaintScopeMine:
		where = append(where, "moderator_id = "+arg(filter.ModeratorID))
	case repository.ComplaintScopeUnassigned:
		where = append(where, "moderator_id IS NULL")
	}
	if filter.Status != "" {
		where = append(where, "LOWER(status) = LOWER("+arg(filter.Status)+")")
	}
	if filter.PlaintiffRole != "" {
		where = append(where, "plaintiff_role = "+arg(string(filter.PlaintiffRole)))
	}

	var b strings.Builder
	b.WriteString("SELECT " + complaintColumns + " FROM complaints")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	if filter.Ascending {
		b.WriteString(" ORDER BY created_at ASC")
	} else {
		b.WriteString(" ORDER BY created_at DESC")
	}
	return b.String(), args
}

func (r *ComplaintRepository) Assign(ctx context.Context, id, moderatorID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE complaints SET moderator_id = $2 WHERE id = $1 AND moderator_id IS NULL
	`, id, moderatorID)
	if err != nil {
		return dbError(err, "не удалось назначить жалобу")
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	found, err := exists(ctx, r.db, "complaints", id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.ErrComplaintNotFound
	}
	return apperror.New(apperror.ErrCodeConflict, "жалоба уже назначена модератору")
}

func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE complaints SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return dbError(err, "не удалось обновить статус жалобы")
	}
	return expectOne(res, apperror.ErrComplaintNotFound)
}

func (r *ComplaintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM complaints WHERE id = $1`, id)
	if err != nil {
		return dbError(err, "не удалось удалить жалобу")
	}
	return expectOne(res, apperror.ErrComplaintNotFound)
}

func expectOne(res sql.Result, notFound error) error {
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

type DocumentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, "documents", id)
}

type documentComplaintRow struct {
	ID          uuid.UUID `db:"id"`
	DocumentID  uuid.UUID `db:"document_id"`
	PlaintiffID uuid.UUID `db:"plaintiff_id"`
	Message     string    `db:"message"`
	CreatedAt   time.Time `db:"created_at"`
}

type DocumentComplaintRepository struct {
	db *sqlx.DB
}

func NewDocumentComplaintRepository(db *sqlx.DB) *DocumentComplaintRepository {
	return &DocumentComplaintRepository{db: db}
}

func (r *DocumentComplaintRepository) Create(ctx context.Context, complaint *entity.DocumentComplaint) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO document_complaints (id, document_id, plaintiff_id, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, complaint.ID, complaint.DocumentID, complaint.PlaintiffID, complaint.Message, complaint.CreatedAt)
	if pqCode(err) == pqForeignKeyViolation {
		return apperror.ErrDocumentNotFound
	}
	if err != nil {
		return dbError(err, "не удалось создать жалобу на документ")
	}
	return nil
}

func (r *DocumentComplaintRepository) List(ctx context.Context) ([]*entity.DocumentComplaint, error) {
	var rows []documentComplaintRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT id, document_id, plaintiff_id, message, created_at
		FROM document_complaints ORDER BY created_at
	`); err != nil {
		return nil, dbError(err, "не удалось получить жалобы на документы")
	}
	result := make([]*entity.DocumentComplaint, 0, len(rows))
	for _, row := range rows {
		result = append(result, &entity.DocumentComplaint{
			ID:          row.ID,
			DocumentID:  row.DocumentID,
			PlaintiffID: row.PlaintiffID,
			Message:     row.Message,
			CreatedAt:   row.CreatedAt.UTC(),
		})
	}
	return result, nil
}

func (r *DocumentComplaintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM document_complaints WHERE id = $1`, id)
	if err != nil {
		return dbError(err, "не удалось удалить жалобу на документ")
	}
	return expectOne(res, apperror.ErrDocumentComplaintNotFound)
}
