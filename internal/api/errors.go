package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/karuta-api/internal/api/shared"
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/service"
	"github.com/phrazzld/karuta-api/internal/service/layout"
	"github.com/phrazzld/karuta-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, layout.ErrSessionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Layout state conflicts
	case errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrIncompleteAssignment),
		errors.Is(err, domain.ErrBoardNotReady),
		errors.Is(err, domain.ErrNotTesting),
		errors.Is(err, layout.ErrLayoutHidden):
		return http.StatusConflict

	// Cards that cannot be used where requested
	case errors.Is(err, domain.ErrInvalidCard):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	// Persistence gateway
	case errors.Is(err, service.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrPersistenceOperationFailed):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var incomplete *domain.IncompleteAssignmentError
	switch {
	case errors.Is(err, layout.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, domain.ErrCapacityExceeded):
		return fmt.Sprintf("Selection is full (%d cards)", domain.SelectionSize)
	case errors.As(err, &incomplete):
		return incomplete.ProgressMessage()
	case errors.Is(err, domain.ErrBoardNotReady):
		return "Select all cards before placing them"
	case errors.Is(err, domain.ErrNotTesting):
		return "Start a memorization test first"
	case errors.Is(err, layout.ErrLayoutHidden):
		return "Layout is hidden during a memorization test"

	case errors.Is(err, domain.ErrCardNotInCatalog):
		return "Card not found in catalog"
	case errors.Is(err, domain.ErrInvalidCard):
		return "Card is not available for this zone"

	case errors.Is(err, domain.ErrEmptyDeckName):
		return "Deck name is required"
	case errors.Is(err, domain.ErrDeckNameTooLong):
		return fmt.Sprintf("Deck name must be at most %d characters", domain.MaxDeckNameLength)
	case errors.Is(err, domain.ErrIncompleteDeck):
		return fmt.Sprintf("Select %d cards before saving", domain.SelectionSize)
	case errors.Is(err, domain.ErrScoreOutOfRange):
		return "Score is out of range"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	case errors.Is(err, service.ErrPersistenceUnavailable):
		return "Deck storage is not available"
	case errors.Is(err, service.ErrPersistenceOperationFailed):
		return "Deck storage request failed"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'AddCardRequest.CardID' Error:Field validation for 'CardID' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "max":
		return "too long"
	case "min":
		return "too short"
	case "gte", "lte":
		return "out of range"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err. When
// fallback is not empty it replaces the generic message of a 5xx response.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		msg = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}
