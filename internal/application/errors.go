package application

import "errors"

var (
	// ErrInvalidCredentials covers both unknown username and wrong password.
	// The two must not be distinguishable by the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound conflates "does not exist" with "exists but not yours".
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken signals a registration uniqueness conflict.
	ErrUsernameTaken = errors.New("username already exists")
)

// ValidationError is a deterministic client-input fault carrying the exact
// message the API returns. Note routes map it to 400, registration to 422.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) *ValidationError { return &ValidationError{Message: msg} }
