package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lingosavor/savor-api/internal/api/shared"
	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/service"
	"github.com/lingosavor/savor-api/internal/store"
)

// DocumentHandler handles the document processing endpoints: analysis,
// transcription and speech synthesis.
type DocumentHandler struct {
	analysisService   *service.AnalysisService
	transcribeService *service.TranscribeService
	speechService     *service.SpeechService
	users             store.UserStore
	logger            *slog.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(
	analysisService *service.AnalysisService,
	transcribeService *service.TranscribeService,
	speechService *service.SpeechService,
	users store.UserStore,
	logger *slog.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		analysisService:   analysisService,
		transcribeService: transcribeService,
		speechService:     speechService,
		users:             users,
		logger:            logger.With(slog.String("component", "document_handler")),
	}
}

// requestContext resolves the authenticated user and the documentID path
// parameter, writing the error response itself on failure.
func (h *DocumentHandler) requestContext(w http.ResponseWriter, r *http.Request) (*domain.User, uuid.UUID, bool) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return nil, uuid.Nil, false
	}
	documentID, ok := getPathUUID(w, r, "documentID")
	if !ok {
		return nil, uuid.Nil, false
	}
	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return nil, uuid.Nil, false
	}
	return user, documentID, true
}

// Analyze handles POST /api/documents/{documentID}/analyze. Billing and the
// refund compensation on failure live in the service layer.
func (h *DocumentHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	user, documentID, ok := h.requestContext(w, r)
	if !ok {
		return
	}

	analysis, err := h.analysisService.Analyze(r.Context(), user, documentID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, analysis)
}

// Transcribe handles POST /api/documents/{documentID}/transcribe.
func (h *DocumentHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	user, documentID, ok := h.requestContext(w, r)
	if !ok {
		return
	}

	transcription, err := h.transcribeService.Transcribe(r.Context(), user, documentID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TranscriptionResponse{Transcription: transcription})
}

// Speech handles POST /api/documents/{documentID}/speech.
func (h *DocumentHandler) Speech(w http.ResponseWriter, r *http.Request) {
	user, documentID, ok := h.requestContext(w, r)
	if !ok {
		return
	}

	audio, err := h.speechService.Synthesize(r.Context(), user, documentID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, audio)
}
