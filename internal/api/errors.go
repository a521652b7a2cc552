package api

import (
	"errors"
	"net/http"

	"github.com/lingosavor/savor-api/internal/api/shared"
	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/generation"
	"github.com/lingosavor/savor-api/internal/service"
	"github.com/lingosavor/savor-api/internal/service/auth"
	"github.com/lingosavor/savor-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. This
// prevents leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Billing errors
	case errors.Is(err, service.ErrInsufficientGems),
		errors.Is(err, service.ErrNoAdViews):
		return http.StatusPaymentRequired

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Payload errors
	case errors.Is(err, service.ErrMediaTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrNotEnglish),
		errors.Is(err, domain.ErrTranscriptionEmpty),
		errors.Is(err, domain.ErrTranscriptionTooLong):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Upstream model failures
	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrEmptyResponse),
		errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrTransientFailure):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the error.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrInsufficientGems):
		return "Not enough gems"
	case errors.Is(err, service.ErrNoAdViews):
		return "No ad views remaining"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this resource"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, store.ErrDocumentNotFound):
		return "Document not found"
	case store.IsNotFoundError(err):
		return "Not found"

	case errors.Is(err, service.ErrMediaTooLarge):
		return "Media file is too large"
	case errors.Is(err, service.ErrUnsupportedMedia):
		return "Unsupported media type"
	case errors.Is(err, service.ErrNotEnglish):
		return "Document does not appear to be in English"
	case errors.Is(err, domain.ErrTranscriptionEmpty):
		return "Document has no transcription"
	case errors.Is(err, domain.ErrTranscriptionTooLong):
		return "Transcription is too long to synthesize"

	case errors.Is(err, service.ErrInvalidAmount):
		return "Amount must be a positive integer"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrWordExists):
		return "Word already saved"
	case store.IsDuplicateError(err):
		return "Already exists"

	case errors.Is(err, generation.ErrContentBlocked):
		return "Content was blocked by safety filters"
	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrEmptyResponse),
		errors.Is(err, generation.ErrTransientFailure):
		return "Content generation failed, please try again"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError maps a service error to a status code and safe message
// and writes the response, logging the underlying error.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
