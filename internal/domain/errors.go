// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"sort"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState is returned when a task state is not one of the allowed values.
	ErrInvalidState = errors.New("invalid task state")

	// ErrInvalidStateFilter is returned when a list filter key is not recognized.
	ErrInvalidStateFilter = errors.New("invalid task state filter")
)

// ValidationError carries a per-field message map. It matches ErrValidation
// and, when Err is set, the more specific cause.
type ValidationError struct {
	Fields map[string]string
	Err    error
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string, cause error) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}, Err: cause}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}
