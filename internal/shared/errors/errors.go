// Package errors provides application-level error types mapped onto HTTP status codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an application error.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation_error"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeInternal   ErrorType = "internal_error"
)

// InternalMessage is the only text clients ever see for unexpected failures.
const InternalMessage = "Internal server error"

// AppError is an error whose Message is safe to show to API clients.
type AppError struct {
	Type    ErrorType
	Message string
	Code    int
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// NewValidationError reports malformed input (HTTP 400).
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    http.StatusBadRequest,
	}
}

// NewNotFoundError reports a reference to a missing resource (HTTP 404).
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Code:    http.StatusNotFound,
	}
}

// NewInternalError wraps an unexpected failure (HTTP 500). The cause is kept for
// logging and never rendered.
func NewInternalError(cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: InternalMessage,
		Code:    http.StatusInternalServerError,
		cause:   cause,
	}
}

// GetAppError extracts an AppError from the chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func IsNotFoundError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeNotFound
}

func IsValidationError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeValidation
}
