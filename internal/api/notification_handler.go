package api

import (
	"log/slog"
	"net/http"

	"github.com/lingosavor/savor-api/internal/api/shared"
	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/service"
)

// adminCreatedBy tags notifications enqueued through the operator endpoints.
const adminCreatedBy = "admin"

// NotificationHandler handles the operator notification endpoints. Both
// routes sit behind the admin token middleware, not user JWT auth.
type NotificationHandler struct {
	notificationService *service.NotificationService
	logger              *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *service.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger.With(slog.String("component", "notification_handler")),
	}
}

// Enqueue handles POST /api/notifications.
func (h *NotificationHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	var req NotificationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	notification, err := h.notificationService.Enqueue(
		r.Context(), req.UserID, req.Title, req.Body, req.Screen, adminCreatedBy, req.Data)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, notification)
}

// EnqueueBulk handles POST /api/notifications/bulk. Notifications are
// written in paced chunks; a failed chunk is logged and skipped, so the
// returned count can be lower than the number of targets.
func (h *NotificationHandler) EnqueueBulk(w http.ResponseWriter, r *http.Request) {
	var req BulkNotificationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	notifications := make([]*domain.Notification, 0, len(req.UserIDs))
	for _, userID := range req.UserIDs {
		notification, err := domain.NewNotification(userID, req.Title, req.Body, req.Screen, adminCreatedBy, req.Data)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid notification: "+err.Error())
			return
		}
		notifications = append(notifications, notification)
	}

	queued, err := h.notificationService.EnqueueBulk(r.Context(), notifications)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	h.logger.Info("bulk notifications enqueued",
		slog.Int("targets", len(req.UserIDs)),
		slog.Int64("queued", queued))
	shared.RespondWithJSON(w, r, http.StatusAccepted, QueuedResponse{Queued: queued})
}
