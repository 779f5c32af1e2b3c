package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeValidation, "validation"},
		{ErrorTypeNotFound, "not_found"},
		{ErrorTypeDatabase, "database"},
		{ErrorTypeInvalidInput, "invalid_input"},
		{ErrorTypeTimeout, "timeout"},
		{ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.String())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	plain := &AppError{Type: ErrorTypeValidation, Message: "title is required"}
	assert.Equal(t, "validation: title is required", plain.Error())

	wrapped := &AppError{Type: ErrorTypeDatabase, Message: "insert failed", Cause: errors.New("disk full")}
	assert.Equal(t, "database: insert failed (caused by: disk full)", wrapped.Error())
	assert.Equal(t, "disk full", wrapped.Unwrap().Error())
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "abc")

	assert.Equal(t, ErrorTypeNotFound, err.Type)
	assert.Equal(t, "task not found: abc", err.Message)
	assert.Equal(t, "TASK_NOT_FOUND", err.Code)

	resource, ok := err.GetContext("resource")
	require.True(t, ok)
	assert.Equal(t, "task", resource)
}

func TestAsAppError_ThroughWrapping(t *testing.T) {
	inner := NewInvalidInputError("status", "NOPE", "unknown status")
	outer := fmt.Errorf("failed to add: %w", inner)

	appErr, ok := AsAppError(outer)
	require.True(t, ok)
	assert.Same(t, inner, appErr)
	assert.True(t, IsErrorType(outer, ErrorTypeInvalidInput))
	assert.False(t, IsErrorType(outer, ErrorTypeDatabase))
	assert.Equal(t, "INVALID_INPUT", GetErrorCode(outer))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(errors.New("plain")))
}

func TestNotFoundCode(t *testing.T) {
	assert.Equal(t, "TASK_NOT_FOUND", NotFoundCode("task"))
	assert.Equal(t, "CONFIG_FILE_NOT_FOUND", NotFoundCode(" config file "))
}

func TestWrapError(t *testing.T) {
	cause := errors.New("bad json")
	err := WrapError(cause, ErrorTypeDatabase, "stored task could not be read")

	assert.Equal(t, CodeStoreFailure, err.Code)
	assert.Equal(t, "stored task could not be read", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsAppError(fmt.Errorf("list: %w", err)))
	assert.False(t, IsAppError(cause))
}

func TestAppError_Is(t *testing.T) {
	a := NewNotFoundError("task", "1")
	b := NewNotFoundError("task", "2")
	c := NewDatabaseError("list", nil)

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestFromContextError(t *testing.T) {
	err := FromContextError("list tasks", context.DeadlineExceeded)
	assert.True(t, IsErrorType(err, ErrorTypeTimeout))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other := errors.New("boom")
	assert.Same(t, other, FromContextError("list tasks", other))
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"validation passes message through", NewValidationError("title is required", nil), "title is required"},
		{"not found passes message through", NewNotFoundError("task", "x"), "task not found: x"},
		{"database is hidden", NewDatabaseError("insert", errors.New("locked")), "The task store could not complete the request. Please try again."},
		{"timeout is hidden", NewTimeoutError("list", "10s"), "The task store did not answer in time. Please try again."},
		{"plain error", errors.New("plain"), "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetUserMessage(tt.err))
		})
	}
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewValidationError("x", nil)))
	assert.False(t, ShouldLogError(NewNotFoundError("task", "x")))
	assert.True(t, ShouldLogError(NewDatabaseError("x", nil)))
	assert.True(t, ShouldLogError(errors.New("unknown")))
}
