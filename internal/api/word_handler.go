package api

import (
	"log/slog"
	"net/http"

	"github.com/lingosavor/savor-api/internal/api/shared"
	"github.com/lingosavor/savor-api/internal/service"
	"github.com/lingosavor/savor-api/internal/store"
)

// WordHandler handles word lookup requests.
type WordHandler struct {
	meaningService *service.MeaningService
	users          store.UserStore
	logger         *slog.Logger
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(meaningService *service.MeaningService, users store.UserStore, logger *slog.Logger) *WordHandler {
	return &WordHandler{
		meaningService: meaningService,
		users:          users,
		logger:         logger.With(slog.String("component", "word_handler")),
	}
}

// Meaning handles POST /api/words/meanings: contextual analysis of a word
// plus its dictionary entry and generated examples.
func (h *WordHandler) Meaning(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req MeaningRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	meaning, err := h.meaningService.Generate(r.Context(), user, req.Word, req.Sentence)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK,
		meaningToResponse(meaning.Analysis, meaning.Entry, meaning.Examples))
}
