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

const postColumns = `id, student_id, work_type, subject_area, institution, description, price, status, created_at`

type postRow struct {
	ID          uuid.UUID `db:"id"`
	StudentID   uuid.UUID `db:"student_id"`
	WorkType    string    `db:"work_type"`
	SubjectArea string    `db:"subject_area"`
	Institution string    `db:"institution"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r postRow) toEntity() *entity.Post {
	return &entity.Post{
		ID:          r.ID,
		StudentID:   r.StudentID,
		WorkType:    r.WorkType,
		SubjectArea: r.SubjectArea,
		Institution: r.Institution,
		Description: r.Description,
		Price:       r.Price,
		Status:      valueobject.PostStatus(r.Status),
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

type PostRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entity.Post) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (`+postColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		post.ID,
		post.StudentID,
		post.WorkType,
		post.SubjectArea,
		post.Institution,
		post.Description,
		post.Price,
		string(post.Status),
		post.CreatedAt,
	)
	if err != nil {
		return dbError(err, "не удалось создать пост")
	}
	return nil
}

func (r *PostRepository) UpdateDetails(ctx context.Context, post *entity.Post) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE posts SET description = $2, institution = $3
		WHERE id = $1 AND status = 'OPEN'
	`, post.ID, post.Description, post.Institution)
	if err != nil {
		return dbError(err, "не удалось обновить пост")
	}
	return r.checkTransition(ctx, r.db, res, post.ID)
}

// RaisePrice не даёт опустить цену, даже если параллельно её уже подняли выше.
func (r *PostRepository) RaisePrice(ctx context.Context, id uuid.UUID, price float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE posts SET price = $2 WHERE id = $1 AND status = 'OPEN' AND price <= $2
	`, id, price)
	if err != nil {
		return dbError(err, "не удалось изменить цену поста")
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	post, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !post.IsOpen() {
		return apperror.ErrPostClosed
	}
	return apperror.ErrPriceDecrease
}

// checkTransition разбирает условный UPDATE: пост отсутствует или уже закрыт.
func (r *PostRepository) checkTransition(ctx context.Context, q sqlx.QueryerContext, res sql.Result, id uuid.UUID) error {
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	found, err := exists(ctx, q, "posts", id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.ErrPostNotFound
	}
	return apperror.ErrPostClosed
}

func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var row postRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrPostNotFound
		}
		return nil, dbError(err, "не удалось получить пост")
	}
	return row.toEntity(), nil
}

func (r *PostRepository) FindByStudentID(ctx context.Context, studentID uuid.UUID) ([]*entity.Post, error) {
	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+postColumns+` FROM posts WHERE student_id = $1 ORDER BY created_at DESC
	`, studentID); err != nil {
		return nil, dbError(err, "не удалось получить посты")
	}
	posts := make([]*entity.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toEntity())
	}
	return posts, nil
}

func (r *PostRepository) ListOpen(ctx context.Context, filter repository.PostFilter) ([]*entity.Post, error) {
	query, args := openPostsQuery(filter)
	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, dbError(err, "не удалось получить посты")
	}
	posts := make([]*entity.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toEntity())
	}
	return posts, nil
}

func openPostsQuery(filter repository.PostFilter) (string, []any) {
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	where := []string{"status = 'OPEN'"}
	if filter.Institution != "" {
		where = append(where, "LOWER(institution) = LOWER("+arg(filter.Institution)+")")
	}
	if filter.SubjectArea != "" {
		where = append(where, "LOWER(subject_area) = LOWER("+arg(filter.SubjectArea)+")")
	}
	if filter.PriceMin != nil {
		where = append(where, "price >= "+arg(*filter.PriceMin))
	}
	if filter.PriceMax != nil {
		where = append(where, "price <= "+arg(*filter.PriceMax))
	}

	direction := "DESC"
	if filter.Ascending {
		direction = "ASC"
	}
	order := "created_at " + direction + ", id " + direction
	if filter.SortBy == repository.PostSortByPrice {
		order = "price " + direction + ", " + order
	}

	var b strings.Builder
	b.WriteString("SELECT " + postColumns + " FROM posts WHERE " + strings.Join(where, " AND "))
	b.WriteString(" ORDER BY " + order)
	if filter.Limit > 0 {
		b.WriteString(" LIMIT " + arg(filter.Limit))
	}
	if filter.Offset > 0 {
		b.WriteString(" OFFSET " + arg(filter.Offset))
	}
	return b.String(), args
}

func (r *PostRepository) CloseIfOpen(ctx context.Context, id uuid.UUID) error {
	return r.closeIfOpen(ctx, r.db, id)
}

func (r *PostRepository) closeIfOpen(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID) error {
	res, err := ext.ExecContext(ctx, `UPDATE posts SET status = 'CLOSED' WHERE id = $1 AND status = 'OPEN'`, id)
	if err != nil {
		return dbError(err, "не удалось закрыть пост")
	}
	return r.checkTransition(ctx, ext, res, id)
}

// Delete удаляет пост. Отклики и заявки на правку удаляются каскадно, пост со сделкой не удаляется.
func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return apperror.New(apperror.ErrCodeConflict, "по посту уже заключена сделка")
		}
		return dbError(err, "не удалось удалить пост")
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.ErrPostNotFound
	}
	return nil
}

type CatalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Lookup(ctx context.Context, kind repository.CatalogKind, name string) (string, bool, error) {
	var canonical string
	err := r.db.GetContext(ctx, &canonical, `
		SELECT name FROM catalog_entries WHERE kind = $1 AND LOWER(name) = LOWER($2)
	`, string(kind), name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, dbError(err, "не удалось прочитать справочник")
	}
	return canonical, true, nil
}
