package service

import (
	"errors"
	"fmt"
)

var (
	// ErrProfileNotFound signals that no profile exists for the caller where
	// one was expected. Handlers map it to 404.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileExists signals a create against a user who already owns a
	// profile. Handlers map it to 409.
	ErrProfileExists = errors.New("profile already exists")
)

// ValidationError reports a malformed field in a submitted payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
