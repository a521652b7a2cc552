package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lingosavor/savor-api/internal/api"
	apiMiddleware "github.com/lingosavor/savor-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	userHandler := api.NewUserHandler(app.userService, app.logger)
	gemHandler := api.NewGemHandler(app.gemService, app.logger)
	wordHandler := api.NewWordHandler(app.meaningService, app.userStore, app.logger)
	chatHandler := api.NewChatHandler(app.chatService, app.userStore, app.logger)
	documentHandler := api.NewDocumentHandler(
		app.analysisService, app.transcribeService, app.speechService, app.userStore, app.logger)
	notificationHandler := api.NewNotificationHandler(app.notificationService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	adminMiddleware := apiMiddleware.NewAdminMiddleware(app.config.Auth.AdminTokenHash)

	r.Route("/api", func(r chi.Router) {
		// User-facing endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/users/bootstrap", userHandler.Bootstrap)
			r.Post("/users/push-token", userHandler.SavePushToken)
			r.Delete("/users/me", userHandler.DeleteAccount)

			r.Post("/gems/add", gemHandler.Add)
			r.Post("/words/meanings", wordHandler.Meaning)
			r.Post("/rooms/{roomID}/respond", chatHandler.Respond)

			r.Post("/documents/{documentID}/analyze", documentHandler.Analyze)
			r.Post("/documents/{documentID}/transcribe", documentHandler.Transcribe)
			r.Post("/documents/{documentID}/speech", documentHandler.Speech)
		})

		// Operator endpoints, gated by the shared admin token
		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware.Authorize)

			r.Post("/notifications", notificationHandler.Enqueue)
			r.Post("/notifications/bulk", notificationHandler.EnqueueBulk)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
