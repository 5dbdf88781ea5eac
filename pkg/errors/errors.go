package errors

import (
	"errors"
	"fmt"
)

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// InputError reports a console token that could not be parsed into the
// expected type.
type InputError struct {
	Token    string
	Expected string
}

// NewInputError creates a new input error
func NewInputError(token, expected string) *InputError {
	return &InputError{
		Token:    token,
		Expected: expected,
	}
}

// Error implements the error interface
func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: expected %s", e.Token, e.Expected)
}

// InternalError represents a failure of a collaborator (database, cache)
// together with the operation that was being attempted.
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsInput reports whether err is or wraps an *InputError.
func IsInput(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsInternal reports whether err is or wraps an *InternalError.
func IsInternal(err error) bool {
	var target *InternalError
	return errors.As(err, &target)
}
