package models

import "errors"

var (
	// ErrNotFound covers both a missing record and a record owned by a
	// different user, so a caller cannot probe for other users' todos.
	ErrNotFound = errors.New("not found")

	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Auth gate outcomes. The HTTP layer collapses all of these into one
	// uniform 401 response; the distinction exists only for logs and tests.
	ErrNoCredential        = errors.New("no credential")
	ErrMalformedCredential = errors.New("malformed credential")
	ErrInvalidCredential   = errors.New("invalid credential")
)

// ValidationError reports a missing, blank, oversized or malformed input
// field. It surfaces as a 400 with its message in the response body.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
