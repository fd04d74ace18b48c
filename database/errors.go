package database

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/skillsenselab/secureapi/errors"
)

// IsConnectionError reports whether err looks like a lost or unreachable
// database connection rather than a result about the data itself. Callers
// use this to keep infrastructure failures from masquerading as lookups
// that found nothing.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	patterns := []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"i/o timeout",
		"no route to host",
		"network is unreachable",
		"connection closed",
		"database is locked",
		"driver: bad connection",
		"invalid connection",
		"unable to open database",
		"database is closed",
	}
	for _, p := range patterns {
		if strings.Contains(errStr, p) {
			return true
		}
	}
	return false
}

// IsNotFoundError reports whether err is a GORM record-not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err is a unique-constraint violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// FromDatabase converts a database error to an AppError for the given
// resource. Connectivity failures map to a retryable 503, never to a
// result-shaped error such as NotFound.
func FromDatabase(err error, resource string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(resource, "")
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.New(
			apperrors.ErrCodeAlreadyExists,
			"A "+resource+" with these details already exists.",
			http.StatusConflict,
		).WithCause(err)
	}

	if IsConnectionError(err) {
		return apperrors.ServiceUnavailable("database").WithCause(err)
	}

	return apperrors.DatabaseError(err)
}
