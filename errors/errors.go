// Package errors defines the service's error type: a machine-readable code,
// an HTTP status, a client-safe message, and an optional cause that stays
// server-side.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the error type every layer of the service speaks.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`

	// Retryable marks transient conditions a client may retry.
	Retryable bool `json:"retryable"`

	// HTTPStatus is the status the HTTP layer renders this error with.
	// Never serialized; the status line carries it.
	HTTPStatus int `json:"-"`

	// Details carries structured context safe to show to clients.
	Details map[string]any `json:"details,omitempty"`

	// Cause is the wrapped underlying error. Logged, never serialized.
	Cause error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause attaches the underlying error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail adds one detail entry and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New builds an AppError; the retryable flag follows from the code.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// InvalidCredentials is the single rejection returned for every failed login.
// The message never says whether the username or the password was wrong.
func InvalidCredentials() *AppError {
	return New(ErrCodeInvalidCredentials, "Invalid username or password.", http.StatusUnauthorized)
}

// AlreadyExists reports a uniqueness conflict on the named field.
func AlreadyExists(resource, field string) *AppError {
	return New(ErrCodeAlreadyExists,
		fmt.Sprintf("A %s with this %s already exists.", resource, field),
		http.StatusConflict).
		WithDetail("resource", resource).
		WithDetail("field", field)
}

// NotFound reports a missing resource; id is optional.
func NotFound(resource, id string) *AppError {
	e := New(ErrCodeNotFound,
		fmt.Sprintf("The requested %s was not found.", resource),
		http.StatusNotFound).
		WithDetail("resource", resource)
	if id != "" {
		e.WithDetail("id", id)
	}
	return e
}

// InvalidInput rejects a single bad field with the given reason.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, "Invalid input: "+reason, http.StatusBadRequest)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation rejects a request body with a caller-supplied message.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

// MissingField rejects a request missing a required field.
func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, "Missing required field: "+field, http.StatusBadRequest).
		WithDetail("field", field)
}

// Unauthorized reports a request with no valid identity. An empty reason
// gets a generic message.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return New(ErrCodeUnauthorized, reason, http.StatusUnauthorized)
}

// Forbidden reports an authenticated identity lacking permission.
func Forbidden(reason string) *AppError {
	if reason == "" {
		reason = "You don't have permission to perform this action."
	}
	return New(ErrCodeForbidden, reason, http.StatusForbidden)
}

// RateLimited reports a throttled client.
func RateLimited() *AppError {
	return New(ErrCodeRateLimited, "Too many requests. Please wait a moment and try again.", http.StatusTooManyRequests)
}

// ServiceUnavailable reports a named dependency being temporarily down.
func ServiceUnavailable(service string) *AppError {
	return New(ErrCodeServiceUnavailable,
		fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service),
		http.StatusServiceUnavailable).
		WithDetail("service", service)
}

// DatabaseError wraps a storage failure the client cannot act on.
func DatabaseError(cause error) *AppError {
	return New(ErrCodeDatabaseError, "A database error occurred. Please try again.", http.StatusInternalServerError).
		WithCause(cause)
}

// Internal wraps an unexpected failure.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred. Please try again or contact support.", http.StatusInternalServerError).
		WithCause(cause)
}
