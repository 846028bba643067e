package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNewStorageError(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewStorageError("insert entry", cause)

	if err.Type != ErrorTypeStorage {
		t.Errorf("NewStorageError type = %v, want %v", err.Type, ErrorTypeStorage)
	}
	if err.Message != "storage operation failed: insert entry" {
		t.Errorf("NewStorageError message = %v", err.Message)
	}
	if err.Code != "STORAGE_ERROR" {
		t.Errorf("NewStorageError code = %v, want %v", err.Code, "STORAGE_ERROR")
	}
	operation, ok := err.GetContext("operation")
	if !ok || operation != "insert entry" {
		t.Errorf("NewStorageError should set operation context")
	}
}

func TestNewStorageError_Deadline(t *testing.T) {
	err := NewStorageError("list entries", fmt.Errorf("query: %w", context.DeadlineExceeded))

	if err.Type != ErrorTypeTimeout {
		t.Errorf("NewStorageError type = %v, want %v", err.Type, ErrorTypeTimeout)
	}
	if !IsStorageError(err) {
		t.Errorf("IsStorageError should include timeouts")
	}
}

func TestNewEmptyRangeError(t *testing.T) {
	err := NewEmptyRangeError("2024-01-01", "2024-01-31")

	if !IsEmptyRangeError(err) {
		t.Errorf("IsEmptyRangeError should return true")
	}
	if err.Code != "EMPTY_RANGE" {
		t.Errorf("NewEmptyRangeError code = %v, want %v", err.Code, "EMPTY_RANGE")
	}
	start, ok := err.GetContext("start")
	if !ok || start != "2024-01-01" {
		t.Errorf("NewEmptyRangeError should set start context")
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("from", "2024-13-01", "expected YYYY-MM-DD")

	if err.Type != ErrorTypeInvalidInput {
		t.Errorf("NewInvalidInputError type = %v, want %v", err.Type, ErrorTypeInvalidInput)
	}
	if err.Message != "invalid input for from: expected YYYY-MM-DD" {
		t.Errorf("NewInvalidInputError message = %v", err.Message)
	}
}

func TestAsAppError(t *testing.T) {
	appError := &AppError{Type: ErrorTypeEmptyRange}
	wrapped := fmt.Errorf("context: %w", appError)

	result, ok := AsAppError(wrapped)
	if !ok || result != appError {
		t.Errorf("AsAppError should unwrap to the same AppError instance")
	}

	result, ok = AsAppError(errors.New("regular error"))
	if ok || result != nil {
		t.Errorf("AsAppError should return nil, false for regular error")
	}

	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Invalid input error", NewInvalidInputError("id", "x", "must be a positive integer"), "invalid input for id: must be a positive integer"},
		{"Empty range error", NewEmptyRangeError("a", "b"), "No entries found in the selected date range to export."},
		{"Storage error", NewStorageError("query", errors.New("io")), "There was an error accessing your saved entries. Please try again."},
		{"Timeout error", NewTimeoutError("query", nil), "The operation timed out. Please try again."},
		{"Regular error", errors.New("regular error"), "regular error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if GetErrorCode(&AppError{Code: "EMPTY_RANGE"}) != "EMPTY_RANGE" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}
	if GetErrorCode(errors.New("regular error")) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Empty range error", NewEmptyRangeError("a", "b"), false},
		{"Invalid input error", NewInvalidInputError("to", "x", "format"), false},
		{"Storage error", NewStorageError("query", errors.New("io")), true},
		{"Timeout error", NewTimeoutError("query", nil), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ShouldLogError(tt.err); result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}
