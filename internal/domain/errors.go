package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced by the store and the session workflows.
// Callers distinguish failures with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrValidation         = errors.New("validation failed")

	ErrActiveSessionExists = fmt.Errorf("%w: an active session already exists", ErrInvariantViolation)
	ErrSessionNotActive    = fmt.Errorf("%w: session is not active", ErrInvariantViolation)
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
