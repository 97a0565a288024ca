// Package errors provides typed error definitions for gphotos-admin.
// Errors carry a code so callers can classify failures without string matching.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique identifier for different error types
type ErrorCode string

const (
	// Configuration errors
	ErrConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE_ERROR"

	// Backend API errors
	ErrNetworkConnection ErrorCode = "NETWORK_CONNECTION"
	ErrAPICall           ErrorCode = "API_CALL_FAILED"
	ErrAPIStatus         ErrorCode = "API_STATUS"
	ErrAPIDecode         ErrorCode = "API_DECODE"
	ErrActionFailed      ErrorCode = "ACTION_FAILED"
	ErrStreamClosed      ErrorCode = "STREAM_CLOSED"

	// Validation errors
	ErrValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrNotFound         ErrorCode = "NOT_FOUND"

	// Locale extraction
	ErrLocaleExtraction ErrorCode = "LOCALE_EXTRACTION"

	// Internal errors
	ErrInternal ErrorCode = "INTERNAL"
	ErrTimeout  ErrorCode = "TIMEOUT"
)

// AdminError represents a structured error with additional context
type AdminError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AdminError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause error
func (e *AdminError) Unwrap() error {
	return e.Cause
}

// GetHTTPStatus returns the appropriate HTTP status code for this error
func (e *AdminError) GetHTTPStatus() int {
	return GetHTTPStatus(e.Code)
}

// GetHTTPStatus maps an error code to an HTTP status
func GetHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrNotFound, ErrConfigNotFound:
		return http.StatusNotFound
	case ErrValidationFailed, ErrInvalidInput, ErrConfigInvalid:
		return http.StatusBadRequest
	case ErrNetworkConnection, ErrAPICall, ErrAPIStatus, ErrAPIDecode, ErrActionFailed, ErrStreamClosed:
		return http.StatusBadGateway
	case ErrTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new AdminError
func New(code ErrorCode, message string) *AdminError {
	return &AdminError{Code: code, Message: message}
}

// Newf creates a new AdminError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AdminError {
	return &AdminError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewWithDetails creates a new AdminError with details
func NewWithDetails(code ErrorCode, message, details string) *AdminError {
	return &AdminError{Code: code, Message: message, Details: details}
}

// Wrap creates a new AdminError that wraps an existing error
func Wrap(code ErrorCode, message string, cause error) *AdminError {
	return &AdminError{Code: code, Message: message, Cause: cause}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *AdminError {
	return &AdminError{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// WrapWithDetails creates a new AdminError with details that wraps an existing error
func WrapWithDetails(code ErrorCode, message, details string, cause error) *AdminError {
	return &AdminError{Code: code, Message: message, Details: details, Cause: cause}
}

// As finds the first AdminError in err's chain
func As(err error) (*AdminError, bool) {
	var ae *AdminError
	if stderrors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// GetCode extracts the error code from an error chain
func GetCode(err error) ErrorCode {
	if ae, ok := As(err); ok {
		return ae.Code
	}
	return ""
}

// HasCode checks if an error has a specific error code
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return HasCode(err, ErrNotFound) || HasCode(err, ErrConfigNotFound)
}

// IsValidation reports whether err is an input validation error
func IsValidation(err error) bool {
	return HasCode(err, ErrValidationFailed) || HasCode(err, ErrInvalidInput)
}

// IsNetwork reports whether err came from reaching the backend
func IsNetwork(err error) bool {
	return HasCode(err, ErrNetworkConnection) || HasCode(err, ErrTimeout)
}
