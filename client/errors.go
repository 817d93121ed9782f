package client

import (
	"errors"
	"fmt"
)

// ErrorCode represents a categorized error type.
type ErrorCode int

const (
	ErrorUnknown ErrorCode = iota
	ErrorConnection
	ErrorDisconnected
	ErrorNotConnected
	ErrorInvalidConfig
	ErrorSerialization
	ErrorUndoFailed
	ErrorRedoFailed
)

// String returns the string representation of an ErrorCode.
func (e ErrorCode) String() string {
	switch e {
	case ErrorConnection:
		return "connection_error"
	case ErrorDisconnected:
		return "disconnected"
	case ErrorNotConnected:
		return "not_connected"
	case ErrorInvalidConfig:
		return "invalid_config"
	case ErrorSerialization:
		return "serialization_error"
	case ErrorUndoFailed:
		return "undo_failed"
	case ErrorRedoFailed:
		return "redo_failed"
	default:
		return fmt.Sprintf("unknown_code_%d", e)
	}
}

// BoardError is a structured error with code and context.
type BoardError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *BoardError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s (wrapped: %v)", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Unwrap support.
func (e *BoardError) Unwrap() error {
	return e.Wrapped
}

// NewError creates a BoardError with the given code and message.
func NewError(code ErrorCode, message string) *BoardError {
	return &BoardError{Code: code, Message: message}
}

// WrapError wraps an underlying error with a code and message.
func WrapError(code ErrorCode, message string, wrapped error) *BoardError {
	return &BoardError{Code: code, Message: message, Wrapped: wrapped}
}

// CodeOf extracts the ErrorCode from an error, or ErrorUnknown.
func CodeOf(err error) ErrorCode {
	var be *BoardError
	if errors.As(err, &be) {
		return be.Code
	}
	return ErrorUnknown
}
