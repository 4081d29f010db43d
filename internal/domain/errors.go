package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Callers wrap one of these with %w and the HTTP layer
// classifies with errors.Is.
var (
	ErrAuthorization   = errors.New("access denied")
	ErrBadInput        = errors.New("bad input")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("authentication required")
)

// AuthorizationError returns ErrAuthorization annotated with the denied action.
func AuthorizationError(action string) error {
	return fmt.Errorf("%w: %s", ErrAuthorization, action)
}

// BadInputError returns ErrBadInput annotated with a formatted reason.
func BadInputError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadInput, fmt.Sprintf(format, args...))
}

// NotFoundError returns ErrNotFound annotated with the missing entity.
func NotFoundError(entity string, key any) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, entity, key)
}

// Check returns an authorization error for action unless allowed.
func Check(allowed bool, action string) error {
	if !allowed {
		return AuthorizationError(action)
	}
	return nil
}
