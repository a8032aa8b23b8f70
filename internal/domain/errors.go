package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Specific failures wrap this with a ValidationError carrying the field.
	ErrValidation = errors.New("validation failed")

	// ErrNameEmpty is returned when a todo item's name is empty.
	ErrNameEmpty = errors.New("name cannot be empty")

	// ErrNameTooLong is returned when a todo item's name exceeds the maximum length.
	ErrNameTooLong = errors.New("name exceeds maximum length")

	// ErrAlreadyDeleted is returned when a delete is attempted on an item
	// that has already been soft-deleted.
	ErrAlreadyDeleted = errors.New("item already deleted")
)

// ValidationError describes a validation failure on a single field.
// It wraps ErrValidation so callers can match with errors.Is while
// still recovering the offending field with errors.As.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap makes ValidationError match ErrValidation under errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
