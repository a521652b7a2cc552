package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/api/shared"
)

// getUserIDFromContext extracts the authenticated user's ID from the request
// context, as placed there by the auth middleware.
func getUserIDFromContext(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// requireUserID writes a 401 and returns false when no authenticated user is
// present on the request.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return "", false
	}
	return userID, true
}

// getPathUUID extracts and parses a UUID path parameter. Writes a 400 on
// missing or malformed values and returns false.
func getPathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing "+paramName)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+paramName)
		return uuid.Nil, false
	}
	return id, true
}
