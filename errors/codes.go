package errors

// ErrorCode is the machine-readable half of an AppError, stable across
// releases so clients can branch on it.
type ErrorCode string

const (
	// ErrCodeInvalidCredentials covers every failed login: unknown username
	// and wrong password alike, so callers cannot enumerate accounts.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeUnauthorized means the request carries no valid identity.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden means the authenticated identity lacks permission.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"

	// ErrCodeNotFound and ErrCodeAlreadyExists are resource lookup outcomes.
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// ErrCodeInvalidInput and ErrCodeMissingField reject bad request data.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// ErrCodeRateLimited tells a throttled client to back off and retry.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeServiceUnavailable marks a dependency outage, also retryable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// ErrCodeDatabaseError and ErrCodeInternal are server-side failures
	// whose detail stays in the logs.
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeRateLimited:        true,
	ErrCodeServiceUnavailable: true,
	ErrCodeDatabaseError:      true,
}

// IsRetryableCode reports whether the code marks a transient condition.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
