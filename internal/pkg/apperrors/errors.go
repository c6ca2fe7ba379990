package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrTestNotFound = errors.New("test not found")

	// Authentication errors
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	// Validation errors
	ErrInvalidTestID = errors.New("invalid test id")
	ErrBadRequest    = errors.New("bad request")

	// Data source errors
	ErrDataSource = errors.New("data source failure")
)

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewDataSourceError wraps a failed fetch so callers can match ErrDataSource
// while the original driver error stays reachable through errors.Is/As.
func NewDataSourceError(operation string, cause error) error {
	return &CustomError{
		Err:     errors.Join(ErrDataSource, cause),
		Message: operation + ": " + cause.Error(),
		Code:    "DATA_SOURCE",
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}
