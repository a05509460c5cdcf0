package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("failed to %s %s", operation, entity)

	if errors.Is(cause, gorm.ErrRecordNotFound) {
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			message:    fmt.Sprintf("%s not found", entity),
			err:        ErrNotFound,
			Cause:      cause,
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		message:    "internal server error",
		err:        ErrInternal,
		Details:    details,
		Cause:      cause,
	}
}

// NewInsertRejectedError reports a write the store refused, e.g. a unique
// constraint violation.
func NewInsertRejectedError(entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		message:    fmt.Sprintf("could not create %s", entity),
		err:        ErrBadRequest,
		Cause:      cause,
	}
}

// IsConstraintViolation reports whether a driver error came from a unique or
// check constraint. Postgres and sqlite word these differently.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "constraint failed")
}
