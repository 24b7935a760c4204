package service

import (
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/edustack/campus-api/pkg/errors"
)

// Postgres error codes the services translate into client-facing failures.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// createError maps storage failures on insert into the error taxonomy:
// unique violations become conflicts, broken references become invalid
// arguments, anything else stays an internal failure.
func createError(err error, conflictMsg, referenceMsg, fallbackMsg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return appErrors.Clone(appErrors.ErrConflict, conflictMsg)
		case pgForeignKeyViolation:
			return appErrors.Clone(appErrors.ErrInvalidArgument, referenceMsg)
		}
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fallbackMsg)
}

// normalizePagination floors page and limit to 1 and caps the page size,
// mirroring the repository layer so pagination metadata reflects the window
// actually queried.
func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
