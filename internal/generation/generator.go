package generation

import (
	"context"

	"github.com/lingosavor/savor-api/internal/domain"
)

// ChatTurn is one turn of conversation passed to the model, either as
// history for chat replies or as source material for quiz generation.
type ChatTurn struct {
	Role    string // "user" or "model"
	Content string
}

// PassageKind selects the flavor of generated passage.
type PassageKind string

const (
	PassageReading   PassageKind = "reading"
	PassageListening PassageKind = "listening"
)

// PassageRequest describes one reading or listening passage to generate.
// Topics are the study items (saved words, room titles) the passage should
// work in. PreviousText and UserImpression seed the model with the user's
// last passage and their reaction to it, so consecutive passages build on
// each other instead of repeating.
type PassageRequest struct {
	Kind           PassageKind
	Plan           domain.Plan
	Topics         []string
	PreviousText   string
	UserImpression string
}

// Passage is a generated passage with comprehension questions.
type Passage struct {
	Text      string
	Questions []domain.Quiz
}

// WordAnalysis is the result of analyzing a word in its sentence context:
// the dictionary base form and the role the word plays in that sentence.
type WordAnalysis struct {
	BaseWord       string
	PartOfSpeech   string
	ContextMeaning string
}

// DictionaryDraft is generated dictionary content for a base word, ready
// to become a domain.DictionaryEntry.
type DictionaryDraft struct {
	Pronunciation string
	Meanings      []domain.Meaning
	Derivatives   []domain.Derivative
	Etymology     string
}

// Media is inline binary content (audio, image, PDF) attached to a
// transcription request.
type Media struct {
	MIMEType string
	Data     []byte
}

// Generator defines the interface for AI content generation. It is the
// boundary between the application core and the external model service;
// implementations own prompt construction and response parsing.
type Generator interface {
	// GrammarQuizzes builds multiple-choice grammar questions from a
	// room's unreviewed conversation. Returns ErrInvalidResponse if the
	// model output cannot be parsed into quizzes.
	GrammarQuizzes(ctx context.Context, conversation []ChatTurn, plan domain.Plan) ([]domain.Quiz, error)

	// Passage generates a reading or listening passage with questions.
	Passage(ctx context.Context, req PassageRequest) (*Passage, error)

	// AnalyzeWord resolves a word, in the context of the sentence it was
	// found in, to its base form and contextual role.
	AnalyzeWord(ctx context.Context, word, sentence string, plan domain.Plan) (*WordAnalysis, error)

	// DictionaryEntry generates full dictionary content for a base word.
	DictionaryEntry(ctx context.Context, baseWord string, plan domain.Plan) (*DictionaryDraft, error)

	// Examples generates example sentences per meaning. seedWords are
	// other words the user saved, woven into examples where natural.
	// The outer slice is index-aligned with meanings.
	Examples(ctx context.Context, baseWord string, meanings []domain.Meaning, seedWords []string, plan domain.Plan) ([][]string, error)

	// ChatReply produces the model's next turn in a room conversation.
	ChatReply(ctx context.Context, system string, history []ChatTurn, message string, plan domain.Plan) (string, error)

	// Transcribe extracts an English transcription from inline media.
	Transcribe(ctx context.Context, prompt string, media Media) (string, error)

	// Summarize produces a learner-facing summary of the given text.
	Summarize(ctx context.Context, text string, plan domain.Plan) (string, error)

	// TranslateSentences splits text into sentences and translates each.
	TranslateSentences(ctx context.Context, text string, plan domain.Plan) ([]domain.SentenceTranslation, error)
}
