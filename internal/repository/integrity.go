package repository

import (
	"strings"

	"warbler/internal/models"
)

// classifyIntegrityError maps a driver error to a typed integrity violation,
// or nil when the error is not a constraint breach. Covers PostgreSQL
// (SQLSTATE 23xxx) and SQLite message formats.
func classifyIntegrityError(err error) *models.AppError {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "23505"),
		strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "unique constraint"):
		return models.NewIntegrityError(models.IntegrityUnique, err)
	case strings.Contains(msg, "23502"),
		strings.Contains(msg, "null value in column"),
		strings.Contains(msg, "not null constraint"):
		return models.NewIntegrityError(models.IntegrityNotNull, err)
	case strings.Contains(msg, "23503"),
		strings.Contains(msg, "violates foreign key"),
		strings.Contains(msg, "foreign key constraint"):
		return models.NewIntegrityError(models.IntegrityForeignKey, err)
	case strings.Contains(msg, "23514"),
		strings.Contains(msg, "check constraint"):
		return models.NewIntegrityError(models.IntegrityCheck, err)
	}
	return nil
}

// wrapPersistError returns a typed integrity violation when err is a
// constraint breach, otherwise an internal error.
func wrapPersistError(err error) error {
	if ierr := classifyIntegrityError(err); ierr != nil {
		return ierr
	}
	return models.NewInternalError(err)
}
