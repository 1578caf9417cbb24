package errors

import (
	"fmt"
	"net/http"
)

// ValidationError reports a single offending field of a submitted form. It is
// raised locally before any store call is made, so a failing submission never
// reaches the network and never invalidates cached data.
type ValidationError struct {
	Field  string // Offending field, store column spelling (e.g. "date_of_birth").
	Reason string // Human-readable reason shown next to the field.
}

// NewValidationError creates a field-attributed validation error.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the user-friendly error message
func (e *ValidationError) Message() string {
	return e.Reason
}

// Details returns detailed error information
func (e *ValidationError) Details() string {
	return e.Field
}
