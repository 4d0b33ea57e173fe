package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/justic/justic-api/internal/api/shared"
	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/service/auth"
	"github.com/justic/justic-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrSessionNotFound):
		return http.StatusUnauthorized

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Provider errors. Rejection is checked first: it is a definite answer
	// about the request, not a gateway failure.
	case errors.Is(err, domain.ErrUpstreamRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUpstream),
		errors.Is(err, domain.ErrUpstreamContract):
		return http.StatusBadGateway

	// Not found errors
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Default: internal server error, including derivation and storage
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

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrSessionNotFound):
		return "Login session expired or already used"
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request"

	case errors.Is(err, domain.ErrUpstreamRejected):
		return "Video provider rejected the request"
	case errors.Is(err, domain.ErrUpstreamContract):
		return "Video provider returned an invalid response"
	case errors.Is(err, domain.ErrUpstream):
		return "Video provider unavailable"

	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, domain.ErrDerivation):
		return "Failed to generate thumbnail"
	case errors.Is(err, domain.ErrStorage):
		return "Storage error"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the mapped status and a safe message for err. A
// non-empty message overrides the derived one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'GenerateRequest.Prompt' Error:Field validation for 'Prompt' failed on the 'required' tag"
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

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
