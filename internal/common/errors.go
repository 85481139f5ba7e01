// Package common defines shared constants and sentinel errors used across
// the products-api layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Login errors. ErrorInvalidCredentials covers both unknown email and
	// wrong password so callers cannot tell which check failed.
	ErrorInvalidCredentials = errors.New("invalid email or password")

	// Registration errors.
	ErrorEmailExists = errors.New("email already registered")

	// Bearer/reset token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Authorization errors.
	ErrAuthRequired = errors.New("authentication required")
	ErrForbidden    = errors.New("only admin can perform this action")

	// Password reset errors.
	ErrEmailNotFound = errors.New("email not found")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")
)

// ValidationError reports malformed client input. Unlike the sentinels above
// it carries a per-field message intended to be shown to the caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given user-facing message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
