// ABOUTME: Validation error type shared by every form-style operation
// ABOUTME: Callers detect it with errors.As to report inline without state changes
package models

import "fmt"

// ValidationError reports a missing or malformed form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Required builds the error for a blank required field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}
