// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Error kinds. Callers branch on these with errors.Is, never on message text.
var (
	// Ledger errors.
	ErrCorruptLedger  = errors.New("corrupt ledger")
	ErrPersistFailure = errors.New("ledger persist failed")
	ErrLedgerNotFound = errors.New("ledger not found")

	// Probe errors.
	ErrProbeUnavailable = errors.New("window probe unavailable")

	// Input errors.
	ErrInvalidInput = errors.New("invalid input")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRecoverable reports whether the tracking loop can keep running after err.
// Persist and probe failures leave the in-memory state intact.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrPersistFailure) || errors.Is(err, ErrProbeUnavailable)
}
