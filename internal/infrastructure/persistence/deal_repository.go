package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/logger"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

const dealColumns = `id, post_id, response_id, teacher_id, student_id, price, status, feedback, created_at, finished_at`

type dealRow struct {
	ID         uuid.UUID    `db:"id"`
	PostID     uuid.UUID    `db:"post_id"`
	ResponseID uuid.UUID    `db:"response_id"`
	TeacherID  uuid.UUID    `db:"teacher_id"`
	StudentID  uuid.UUID    `db:"student_id"`
	Price      float64      `db:"price"`
	Status     string       `db:"status"`
	Feedback   int          `db:"feedback"`
	CreatedAt  time.Time    `db:"created_at"`
	FinishedAt sql.NullTime `db:"finished_at"`
}

func (r dealRow) toEntity() *entity.Deal {
	d := &entity.Deal{
		ID:         r.ID,
		PostID:     r.PostID,
		ResponseID: r.ResponseID,
		TeacherID:  r.TeacherID,
		StudentID:  r.StudentID,
		Price:      r.Price,
		Status:     valueobject.DealStatus(r.Status),
		Feedback:   r.Feedback,
		CreatedAt:  r.CreatedAt.UTC(),
	}
	if r.FinishedAt.Valid {
		t := r.FinishedAt.Time.UTC()
		d.FinishedAt = &t
	}
	return d
}

type DealRepository struct {
	db    *sqlx.DB
	posts *PostRepository
}

func NewDealRepository(db *sqlx.DB, posts *PostRepository) *DealRepository {
	return &DealRepository{db: db, posts: posts}
}

// CreateAndClosePost закрывает пост условным UPDATE и вставляет сделку в той же транзакции.
// Конкурент блокируется на строке поста и после фиксации видит CLOSED.
func (r *DealRepository) CreateAndClosePost(ctx context.Context, deal *entity.Deal) error {
	return withTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.posts.closeIfOpen(ctx, tx, deal.PostID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO deals (`+dealColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			deal.ID,
			deal.PostID,
			deal.ResponseID,
			deal.TeacherID,
			deal.StudentID,
			deal.Price,
			string(deal.Status),
			deal.Feedback,
			deal.CreatedAt,
			deal.FinishedAt,
		)
		if pqCode(err) == pqUniqueViolation {
			logger.WithFields(logrus.Fields{"post_id": deal.PostID}).Warn("сделка по посту уже существует")
			return apperror.ErrPostClosed
		}
		if err != nil {
			return dbError(err, "не удалось создать сделку")
		}
		return nil
	})
}

func (r *DealRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Deal, error) {
	var row dealRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+dealColumns+` FROM deals WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrDealNotFound
		}
		return nil, dbError(err, "не удалось получить сделку")
	}
	return row.toEntity(), nil
}

func (r *DealRepository) ExistsForPost(ctx context.Context, postID uuid.UUID) (bool, error) {
	var ok bool
	if err := r.db.GetContext(ctx, &ok, `SELECT EXISTS(SELECT 1 FROM deals WHERE post_id = $1)`, postID); err != nil {
		return false, dbError(err, "не удалось проверить сделку по посту")
	}
	return ok, nil
}

func (r *DealRepository) FindByTeacherID(ctx context.Context, teacherID uuid.UUID) ([]*entity.Deal, error) {
	return r.list(ctx, `SELECT `+dealColumns+` FROM deals WHERE teacher_id = $1 ORDER BY created_at DESC`, teacherID)
}

func (r *DealRepository) FindByStudentID(ctx context.Context, studentID uuid.UUID) ([]*entity.Deal, error) {
	return r.list(ctx, `SELECT `+dealColumns+` FROM deals WHERE student_id = $1 ORDER BY created_at DESC`, studentID)
}

func (r *DealRepository) list(ctx context.Context, query string, arg any) ([]*entity.Deal, error) {
	var rows []dealRow
	if err := r.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, dbError(err, "не удалось получить сделки")
	}
	deals := make([]*entity.Deal, 0, len(rows))
	for _, row := range rows {
		deals = append(deals, row.toEntity())
	}
	return deals, nil
}

func (r *DealRepository) Finish(ctx context.Context, id uuid.UUID, finishedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE deals SET status = 'FINISHED', finished_at = $2
		WHERE id = $1 AND status = 'OPEN'
	`, id, finishedAt)
	if err != nil {
		return dbError(err, "не удалось завершить сделку")
	}
	return r.checkConditional(ctx, res, id, "сделка уже завершена")
}

func (r *DealRepository) SetFeedback(ctx context.Context, id uuid.UUID, score int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE deals SET feedback = $2
		WHERE id = $1 AND status = 'FINISHED' AND feedback = 0
	`, id, score)
	if err != nil {
		return dbError(err, "не удалось сохранить отзыв")
	}
	return r.checkConditional(ctx, res, id, "отзыв по сделке уже оставлен")
}

func (r *DealRepository) checkConditional(ctx context.Context, res sql.Result, id uuid.UUID, conflict string) error {
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	found, err := exists(ctx, r.db, "deals", id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.ErrDealNotFound
	}
	return apperror.New(apperror.ErrCodeConflict, conflict)
}

func (r *DealRepository) FeedbackScores(ctx context.Context, teacherID uuid.UUID) ([]int, error) {
	var scores []int
	if err := r.db.SelectContext(ctx, &scores, `
		SELECT feedback FROM deals WHERE teacher_id = $1 AND feedback > 0
	`, teacherID); err != nil {
		return nil, dbError(err, "не удалось получить оценки преподавателя")
	}
	return scores, nil
}
