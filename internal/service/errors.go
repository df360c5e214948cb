package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in ServiceError
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrPersistenceUnavailable indicates that no persistence gateway is
	// configured or it could not be reached at startup.
	// API layer should map this to HTTP 503 Service Unavailable.
	ErrPersistenceUnavailable = errors.New("persistence is unavailable")

	// ErrPersistenceOperationFailed indicates that an individual save, load or
	// aggregate call failed. Local state is not affected.
	// API layer should map this to HTTP 502 Bad Gateway.
	ErrPersistenceOperationFailed = errors.New("persistence operation failed")
)

// ServiceError is a custom error type for service errors.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// operationFailed wraps a gateway error so that it matches both
// ErrPersistenceOperationFailed and the original error.
func operationFailed(operation, message string, err error) error {
	return NewServiceError(operation, message, fmt.Errorf("%w: %w", ErrPersistenceOperationFailed, err))
}
