// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrCapacityExceeded is returned when a 26th card is added to a selection.
	ErrCapacityExceeded = errors.New("selection is full")

	// ErrInvalidCard is returned when a card cannot be used in the requested
	// position, either because it is unknown or because it is placed elsewhere.
	ErrInvalidCard = errors.New("invalid card")

	// ErrCardNotInCatalog is returned when a card ID does not exist in the catalog.
	ErrCardNotInCatalog = fmt.Errorf("%w: not in catalog", ErrInvalidCard)

	// ErrIncompleteAssignment is matched by IncompleteAssignmentError.
	ErrIncompleteAssignment = errors.New("board assignment is incomplete")

	// ErrBoardNotReady is returned when placement is attempted before the
	// selection has ever reached its full size.
	ErrBoardNotReady = errors.New("board is not ready: select all cards first")

	// ErrNotTesting is returned when a recall is submitted outside a test.
	ErrNotTesting = errors.New("memorization test has not started")
)

// ValidationError carries the field that failed validation alongside the
// sentinel error describing the failure.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// IncompleteAssignmentError reports that an operation needs a complete board.
// It is a deferral rather than a failure: callers show the progress message.
type IncompleteAssignmentError struct {
	Placed   int
	Required int
}

// Error implements the error interface for IncompleteAssignmentError.
func (e *IncompleteAssignmentError) Error() string {
	return fmt.Sprintf("%d of %d cards placed", e.Placed, e.Required)
}

// Is lets errors.Is match ErrIncompleteAssignment.
func (e *IncompleteAssignmentError) Is(target error) bool {
	return target == ErrIncompleteAssignment
}

// ProgressMessage is the user-facing message for a deferred request.
func (e *IncompleteAssignmentError) ProgressMessage() string {
	return fmt.Sprintf("Place all cards first (%d/%d placed)", e.Placed, e.Required)
}
