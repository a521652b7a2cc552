package api

import (
	"log/slog"
	"net/http"

	"github.com/lingosavor/savor-api/internal/api/shared"
	"github.com/lingosavor/savor-api/internal/service"
	"github.com/lingosavor/savor-api/internal/store"
)

// ChatHandler handles room conversation requests.
type ChatHandler struct {
	chatService *service.ChatService
	users       store.UserStore
	logger      *slog.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *service.ChatService, users store.UserStore, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		users:       users,
		logger:      logger.With(slog.String("component", "chat_handler")),
	}
}

// Respond handles POST /api/rooms/{roomID}/respond. The user turn and the
// model reply are both persisted; the reply is returned.
func (h *ChatHandler) Respond(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	roomID, ok := getPathUUID(w, r, "roomID")
	if !ok {
		return
	}

	var req ChatRequest
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

	reply, err := h.chatService.Respond(r.Context(), user, roomID, req.Content)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reply)
}
