package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("clientName", "must be at least 2 characters")

	assert.True(t, IsValidation(err))
	assert.False(t, IsGeneration(err))
	assert.Contains(t, err.Error(), "clientName")
	assert.Contains(t, err.Error(), "must be at least 2 characters")
}

func TestValidationError_WithoutField(t *testing.T) {
	err := &ValidationError{Message: "request body malformed"}

	assert.True(t, IsValidation(err))
	assert.Equal(t, "validation failed: request body malformed", err.Error())
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewGenerationError("generate-quotation", "model call failed", cause)

	assert.True(t, IsGeneration(err))
	assert.Contains(t, err.Error(), "generate-quotation")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestGenerationError_WithoutCause(t *testing.T) {
	err := NewGenerationError("adjust-tone", "no tool call in response", nil)

	assert.True(t, IsGeneration(err))
	assert.Equal(t, "adjust-tone: no tool call in response", err.Error())
}

func TestPreconditionError(t *testing.T) {
	err := NewPreconditionError("suggest-add-ons", "project description is not available")

	assert.True(t, IsPrecondition(err))
	assert.Contains(t, err.Error(), "suggest-add-ons")
	assert.Contains(t, err.Error(), "project description is not available")
}

func TestEmailError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "with cause",
			err:      NewEmailError("relay rejected message", errors.New("550 mailbox unavailable")),
			expected: "email dispatch: relay rejected message: 550 mailbox unavailable",
		},
		{
			name:     "without cause",
			err:      NewEmailError("missing required fields", nil),
			expected: "email dispatch: missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsEmail(tt.err))
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("session", "operation already in flight")

	assert.True(t, IsConflict(err))
	assert.Equal(t, "session conflict: operation already in flight", err.Error())
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("session", "abc-123")

	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), `session with id "abc-123" not found`)

	noID := NewNotFoundError("session", "")
	assert.Equal(t, "session not found", noID.Error())
}

func TestUnavailableError(t *testing.T) {
	err := NewUnavailableError("mail-relay", "connection refused")

	assert.True(t, IsUnavailable(err))
	assert.Contains(t, err.Error(), "mail-relay")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSentinelChecks_WrappedErrors(t *testing.T) {
	// Sentinel checks must survive additional wrapping.
	wrapped := fmt.Errorf("handling request: %w",
		NewGenerationError("format-for-pdf", "schema mismatch", nil))

	require.True(t, IsGeneration(wrapped))
	assert.False(t, IsValidation(wrapped))

	var genErr *GenerationError
	require.True(t, errors.As(wrapped, &genErr))
	assert.Equal(t, "format-for-pdf", genErr.Operation)
}
