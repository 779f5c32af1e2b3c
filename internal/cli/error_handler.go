package cli

import (
	stderrors "errors"
	"fmt"

	"task-list/internal/errors"
	"task-list/internal/logging"
	"task-list/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers.
// System errors (store failures, timeouts, unexpected errors) are logged
// before being shortened for the user.
type ErrorHandler struct {
	logger func() *logging.Logger
}

// NewErrorHandler creates a new error handler that logs nothing
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// WithLogger returns a handler that records system errors on logger
func (eh *ErrorHandler) WithLogger(logger *logging.Logger) *ErrorHandler {
	return &ErrorHandler{logger: func() *logging.Logger { return logger }}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", operation, eh.convert(operation, err))
}

// HandleSimple provides user-friendly error messages without operation context.
// The original error stays reachable through errors.As.
func (eh *ErrorHandler) HandleSimple(err error) error {
	return eh.convert("", err)
}

func (eh *ErrorHandler) convert(operation string, err error) error {
	if err == nil {
		return nil
	}

	// Already converted by a command
	var handled *userError
	if stderrors.As(err, &handled) {
		return err
	}

	if validationErr, ok := validation.AsValidationError(err); ok {
		return &userError{message: validationErr.GetUserFriendlyMessage(), cause: err}
	}

	if eh.logger != nil && errors.ShouldLogError(err) {
		eh.logger().Error("command failed",
			"operation", operation,
			"code", errors.GetErrorCode(err),
			"error", err.Error(),
		)
	}

	if errors.IsAppError(err) {
		return &userError{message: errors.GetUserMessage(err), cause: err}
	}

	return err
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}

// IsTimeoutError checks if an error is a timeout error
func (eh *ErrorHandler) IsTimeoutError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeTimeout)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// userError shows message while keeping cause for errors.Is and errors.As
type userError struct {
	message string
	cause   error
}

func (e *userError) Error() string { return e.message }

func (e *userError) Unwrap() error { return e.cause }
