package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"fleetlog/internal/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// notFound converts sql.ErrNoRows into a domain NotFoundError and wraps
// anything else with op.
func notFound(err error, resource string, id int64, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, ID: id, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectAffected reports a NotFoundError when an UPDATE/DELETE by id touched
// no rows.
func expectAffected(res sql.Result, resource string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: rows affected: %w", resource, id, err)
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource, ID: id}
	}
	return nil
}
