package cli

import (
	"fmt"

	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", operation, eh.HandleSimple(err))
}

// HandleSimple provides user-friendly error messages without operation context.
// The returned error still wraps the original.
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}

	if validationErr, ok := validation.AsValidationError(err); ok {
		return &userError{message: validationErr.GetUserFriendlyMessage(), cause: err}
	}

	if _, ok := errors.AsAppError(err); ok {
		return &userError{message: errors.GetUserMessage(err), cause: err}
	}

	return err
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeInvalidInput)
}

// IsStorageError checks if an error came from the entry or settings store
func (eh *ErrorHandler) IsStorageError(err error) bool {
	return errors.IsStorageError(err)
}

// IsEmptyRangeError checks if an export found nothing to write
func (eh *ErrorHandler) IsEmptyRangeError(err error) bool {
	return errors.IsEmptyRangeError(err)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// userError shows message while keeping cause reachable for errors.Is/As
type userError struct {
	message string
	cause   error
}

func (e *userError) Error() string { return e.message }

func (e *userError) Unwrap() error { return e.cause }
