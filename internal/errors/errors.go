package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies pipeline failures. The taxonomy is deliberately
// small: anything not covered here wraps as a plain error.
type ErrorType string

const (
	ErrTypeInputNotFound    ErrorType = "INPUT_NOT_FOUND"
	ErrTypeSchema           ErrorType = "SCHEMA"
	ErrTypeInsufficientData ErrorType = "INSUFFICIENT_DATA"
	ErrTypeConfig           ErrorType = "CONFIG"
	ErrTypeParsing          ErrorType = "PARSING"
	ErrTypeStorage          ErrorType = "STORAGE"
)

// AppError is the application-specific error carried across pipeline stages.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error.
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewInputNotFoundError reports a missing or unreadable source table.
func NewInputNotFoundError(path string, cause error) *AppError {
	return NewAppError(ErrTypeInputNotFound, fmt.Sprintf("input file %s not found", path), cause).
		WithContext("path", path)
}

// NewSchemaError reports a required column that is absent or has the wrong type.
func NewSchemaError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchema, message, cause)
}

// NewInsufficientDataError reports that a card has no qualifying rows to work with.
func NewInsufficientDataError(card string) *AppError {
	return NewAppError(ErrTypeInsufficientData, fmt.Sprintf("no qualifying records for %s", card), nil).
		WithContext("card", card)
}

// NewConfigError reports an invalid configuration value.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewParsingError reports a malformed input cell or row.
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError reports a failure writing a card document.
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// IsType reports whether err (or anything it wraps) is an AppError of the
// given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// IsInputNotFound reports whether err is an input-not-found failure.
func IsInputNotFound(err error) bool { return IsType(err, ErrTypeInputNotFound) }

// IsSchema reports whether err is a schema failure.
func IsSchema(err error) bool { return IsType(err, ErrTypeSchema) }

// IsInsufficientData reports whether err is an insufficient-data failure.
func IsInsufficientData(err error) bool { return IsType(err, ErrTypeInsufficientData) }

// IsConfig reports whether err is a configuration failure.
func IsConfig(err error) bool { return IsType(err, ErrTypeConfig) }
