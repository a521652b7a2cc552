package api

import (
	"log/slog"
	"net/http"

	"github.com/lingosavor/savor-api/internal/api/shared"
	"github.com/lingosavor/savor-api/internal/service"
)

// GemHandler handles gem balance requests.
type GemHandler struct {
	gemService *service.GemService
	logger     *slog.Logger
}

// NewGemHandler creates a new GemHandler.
func NewGemHandler(gemService *service.GemService, logger *slog.Logger) *GemHandler {
	return &GemHandler{
		gemService: gemService,
		logger:     logger.With(slog.String("component", "gem_handler")),
	}
}

// Add handles POST /api/gems/add. With is_ad set the credit consumes one of
// the user's remaining ad views.
func (h *GemHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddGemsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	balance, err := h.gemService.Add(r.Context(), userID, req.Amount, req.IsAd)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GemBalanceResponse{Gems: balance})
}
