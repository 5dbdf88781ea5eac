package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "validation failed: Email - is required", NewValidationError("Email", "is required").Error())
	assert.Equal(t, "validation failed: Name is required", NewValidationError("", "Name is required").Error())
}

func TestInputError_Error(t *testing.T) {
	err := NewInputError("abc", "a number")
	assert.Equal(t, `invalid input "abc": expected a number`, err.Error())
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError("failed to delete user", cause)

	assert.Equal(t, "failed to delete user: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewInternalError("internal error", nil)
	assert.Equal(t, "internal error", bare.Error())
	assert.NoError(t, bare.Unwrap())
}

func TestClassification(t *testing.T) {
	wrapped := fmt.Errorf("create: %w", NewValidationError("", "Name is required"))

	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsInput(wrapped))
	assert.False(t, IsInternal(wrapped))

	assert.True(t, IsInput(NewInputError("x", "a number")))
	assert.True(t, IsInternal(fmt.Errorf("op: %w", NewInternalError("db", nil))))
	assert.False(t, IsInternal(errors.New("plain")))
}
