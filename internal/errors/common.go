package errors

import "fmt"

// Configuration Errors
func ConfigNotFound(path string) *AdminError {
	return NewWithDetails(ErrConfigNotFound, "Configuration file not found", fmt.Sprintf("Path: %s", path))
}

func ConfigInvalid(reason string) *AdminError {
	return NewWithDetails(ErrConfigInvalid, "Invalid configuration", reason)
}

func ConfigParseError(path string, cause error) *AdminError {
	return WrapWithDetails(ErrConfigParse, "Failed to parse configuration", fmt.Sprintf("Path: %s", path), cause)
}

// Backend Errors
func NetworkConnectionError(endpoint string, cause error) *AdminError {
	return WrapWithDetails(ErrNetworkConnection, "Cannot reach backend",
		fmt.Sprintf("Endpoint: %s", endpoint), cause)
}

func APICallError(method, path string, cause error) *AdminError {
	return WrapWithDetails(ErrAPICall, "API call failed",
		fmt.Sprintf("Method: %s, Path: %s", method, path), cause)
}

func APIStatusError(method, path string, status int, message string) *AdminError {
	code := ErrAPIStatus
	if status == 404 {
		code = ErrNotFound
	}
	details := fmt.Sprintf("Method: %s, Path: %s, Status: %d", method, path, status)
	if message != "" {
		details += ", Message: " + message
	}
	return NewWithDetails(code, "Backend returned an error", details)
}

func APIDecodeError(path string, cause error) *AdminError {
	return WrapWithDetails(ErrAPIDecode, "Failed to decode backend response",
		fmt.Sprintf("Path: %s", path), cause)
}

// ActionFailed reports a mutating call the backend refused
func ActionFailed(action, message string) *AdminError {
	return NewWithDetails(ErrActionFailed, fmt.Sprintf("%s failed", action), message)
}

// Validation Errors
func ValidationFailed(field, value, reason string) *AdminError {
	return NewWithDetails(ErrValidationFailed, "Validation failed",
		fmt.Sprintf("Field: %s, Value: %s, Reason: %s", field, value, reason))
}

func InvalidInput(input, expected string) *AdminError {
	return NewWithDetails(ErrInvalidInput, "Invalid input",
		fmt.Sprintf("Input: %s, Expected: %s", input, expected))
}

// Internal Errors
func InternalError(details string, cause error) *AdminError {
	if cause != nil {
		return WrapWithDetails(ErrInternal, "Internal error", details, cause)
	}
	return NewWithDetails(ErrInternal, "Internal error", details)
}
