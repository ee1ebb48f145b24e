package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the single error kind for precondition violations:
// empty required sequences, non-positive weights, out-of-range counts and
// out-of-range hours. Callers test for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError describes a rejected argument. It always unwraps to
// ErrInvalidArgument.
type ArgumentError struct {
	// Argument names the offending parameter, e.g. "count" or "groups[2].importance".
	Argument string

	// Value is the rejected value, kept for diagnostics.
	Value any

	// Reason explains which precondition failed.
	Reason string
}

// Error implements the error interface for ArgumentError.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s=%v: %s", e.Argument, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidArgument, supporting Go 1.13+ error unwrapping.
func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

// NewArgumentError creates a new ArgumentError with the given details.
func NewArgumentError(argument string, value any, reason string) *ArgumentError {
	return &ArgumentError{
		Argument: argument,
		Value:    value,
		Reason:   reason,
	}
}

// ValidationError represents an error that occurred during validation.
// It can contain multiple validation failures.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// Unwrap classifies every validation failure as an invalid argument.
func (e *ValidationError) Unwrap() error { return ErrInvalidArgument }

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
	}
}
