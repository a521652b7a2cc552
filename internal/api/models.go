package api

import (
	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/generation"
)

// Request bodies. Validation tags are enforced by shared.ValidateRequest.

// BootstrapRequest creates the user row on first sign-in.
type BootstrapRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
}

// PushTokenRequest saves the device push token for a user.
type PushTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// AddGemsRequest credits gems, optionally redeeming an ad view.
type AddGemsRequest struct {
	Amount int  `json:"amount" validate:"required,gt=0"`
	IsAd   bool `json:"is_ad"`
}

// MeaningRequest asks for an analysis of a word in its sentence.
type MeaningRequest struct {
	Word     string `json:"word"     validate:"required,max=100"`
	Sentence string `json:"sentence" validate:"required,max=2000"`
}

// ChatRequest is one user turn in a room conversation.
type ChatRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

// NotificationRequest enqueues a single notification.
type NotificationRequest struct {
	UserID string            `json:"user_id" validate:"required"`
	Title  string            `json:"title"   validate:"required,max=200"`
	Body   string            `json:"body"    validate:"required,max=1000"`
	Screen string            `json:"screen"  validate:"max=100"`
	Data   map[string]string `json:"data"`
}

// BulkNotificationRequest enqueues one notification per target user.
type BulkNotificationRequest struct {
	UserIDs []string          `json:"user_ids" validate:"required,min=1,dive,required"`
	Title   string            `json:"title"    validate:"required,max=200"`
	Body    string            `json:"body"     validate:"required,max=1000"`
	Screen  string            `json:"screen"   validate:"max=100"`
	Data    map[string]string `json:"data"`
}

// Response bodies. Domain types carry their own JSON tags; these wrap the
// composite or partial payloads.

// GemBalanceResponse reports the balance after a credit or charge.
type GemBalanceResponse struct {
	Gems int `json:"gems"`
}

// MeaningResponse bundles the contextual analysis with the dictionary entry
// and generated example sentence pairs.
type MeaningResponse struct {
	BaseWord       string                  `json:"base_word"`
	PartOfSpeech   string                  `json:"part_of_speech"`
	ContextMeaning string                  `json:"context_meaning"`
	Entry          *domain.DictionaryEntry `json:"entry,omitempty"`
	Examples       [][]string              `json:"examples,omitempty"`
}

func meaningToResponse(analysis generation.WordAnalysis, entry *domain.DictionaryEntry, examples [][]string) MeaningResponse {
	return MeaningResponse{
		BaseWord:       analysis.BaseWord,
		PartOfSpeech:   analysis.PartOfSpeech,
		ContextMeaning: analysis.ContextMeaning,
		Entry:          entry,
		Examples:       examples,
	}
}

// TranscriptionResponse returns the stored transcription text.
type TranscriptionResponse struct {
	Transcription string `json:"transcription"`
}

// QueuedResponse reports how many notifications were enqueued.
type QueuedResponse struct {
	Queued int64 `json:"queued"`
}
