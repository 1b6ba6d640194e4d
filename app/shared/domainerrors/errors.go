// Package domainerrors defines the error classes shared by every module.
// Module-level sentinels wrap one of these so transports can map a failure
// to a response with errors.Is without knowing the module.
package domainerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks missing or malformed input, rejected before any write.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a request that is well formed but violates current state
	// (party at capacity, decided application, duplicate membership).
	ErrConflict = errors.New("conflict")

	// ErrStore marks a persistence failure. Callers may retry.
	ErrStore = errors.New("store unavailable")
)

// ValidationError reports a single invalid field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Required builds a ValidationError for a missing field.
func Required(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

// IsDomain reports whether err belongs to a caller-actionable class.
// Anything else is treated as a store failure.
func IsDomain(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict)
}
