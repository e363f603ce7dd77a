package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// errNoRows lets repositories report a zero-row update through the
// same classification path as a missing select.
func errNoRows() error { return sql.ErrNoRows }

// classify maps a driver error onto the application taxonomy. Integrity
// violations become conflicts, a missing row becomes not-found and
// anything else is a generic persistence failure; raw pq errors never
// escape this package.
func classify(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFound(resource, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return apperrors.NewConflict(resource+" already exists", err)
		case pgForeignKeyViolation, pgCheckViolation:
			return apperrors.NewConflict(resource+" violates data integrity", err)
		}
	}

	return apperrors.NewPersistence(err)
}
