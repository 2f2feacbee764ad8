package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// withTransaction выполняет fn в транзакции: ошибка или паника откатывают её.
func withTransaction(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось начать транзакцию")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось зафиксировать транзакцию")
	}
	return nil
}

// pqCode возвращает SQLSTATE ошибки PostgreSQL или пустую строку.
func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func dbError(err error, message string) error {
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, message)
}

// rowsAffected возвращает число затронутых строк.
func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, dbError(err, "не удалось проверить результат запроса")
	}
	return n, nil
}

// exists проверяет наличие строки с данным id, чтобы отличить NOT_FOUND от проигранного условного UPDATE.
func exists(ctx context.Context, q sqlx.QueryerContext, table string, id any) (bool, error) {
	var ok bool
	if err := sqlx.GetContext(ctx, q, &ok, "SELECT EXISTS(SELECT 1 FROM "+table+" WHERE id = $1)", id); err != nil {
		return false, dbError(err, "не удалось проверить наличие записи")
	}
	return ok, nil
}
