package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

// baseRepository provides common functionality for all repositories
type baseRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

// withTx executes a function within a transaction
func (r *baseRepository) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// observe records the outcome of one repository call. Meant for
// `defer r.observe("op", time.Now(), &err)` with a named error return.
func (r *baseRepository) observe(op string, start time.Time, err *error) {
	if r.metrics == nil {
		return
	}
	status := "success"
	if *err != nil && !isDomainError(*err) {
		status = "error"
	}
	r.metrics.ObserveDatabase(op, status, time.Since(start))
}

// insert runs an INSERT and reports the generated id. Postgres has no
// LastInsertId so it gets RETURNING instead.
func insert(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (int64, error) {
	if q.DriverName() == DriverPostgres {
		var id int64
		if err := q.QueryRowxContext(ctx, q.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, classify(err)
		}
		return id, nil
	}

	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, classify(err)
	}
	return res.LastInsertId()
}

// exists reports whether a row with the given id is present in table.
func exists(ctx context.Context, q sqlx.ExtContext, table string, id int64) (bool, error) {
	var found int64
	err := sqlx.GetContext(ctx, q, &found, q.Rebind("SELECT id FROM "+table+" WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// classify maps driver constraint violations onto repository sentinels.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, pqErr.Constraint)
		case "23503":
			return fmt.Errorf("%w: %s", repository.ErrForeignKey, pqErr.Constraint)
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, myErr.Message)
		case 1452:
			return fmt.Errorf("%w: %s", repository.ErrForeignKey, myErr.Message)
		}
	}

	return err
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func isDomainError(err error) bool {
	for _, target := range []error{
		repository.ErrNotFound,
		repository.ErrPatientNotFound,
		repository.ErrRoomNotFound,
		repository.ErrRoomUnavailable,
		repository.ErrAlreadyDischarged,
		repository.ErrDuplicate,
		repository.ErrForeignKey,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
