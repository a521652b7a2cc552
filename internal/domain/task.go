package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category names used in a bundle's answers map and isCompleted list.
const (
	CategoryGrammar   = "grammar"
	CategoryReading   = "reading"
	CategoryListening = "listening"
)

// Task bundle validation errors
var (
	ErrTaskIDEmpty        = errors.New("task ID cannot be empty")
	ErrTaskUserIDEmpty    = errors.New("task user ID cannot be empty")
	ErrTaskDateEmpty      = errors.New("task date cannot be empty")
	ErrTaskAnswersInvalid = errors.New("answers length does not match content length")
)

// WordListItem is one entry of a bundle's word list: the word text, its
// definitions, and the id of the UserWord it came from.
type WordListItem struct {
	ID      uuid.UUID `json:"id"`
	Word    string    `json:"word"`
	Meaning []string  `json:"meaning"`
}

// Quiz is a single multiple-choice question. Answer is the index into
// Options of the correct choice.
type Quiz struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
}

// GrammarQuiz is a quiz generated from one study room's unreviewed
// conversation. RoomID links it back to its source room.
type GrammarQuiz struct {
	Quiz
	RoomID uuid.UUID `json:"room_id"`
}

// PassageTask is a generated reading or listening passage with
// comprehension questions. AudioURL is set for listening tasks once
// narration audio has been synthesized and uploaded.
type PassageTask struct {
	Text           string  `json:"text"`
	Questions      []Quiz  `json:"questions"`
	UserImpression *string `json:"user_impression"`
	AudioURL       *string `json:"audio_url,omitempty"`
}

// DailyTaskBundle is one generation cycle's content for a user: word list,
// grammar quizzes, and optional reading/listening passages, plus the
// user's answer state. Answers maps a category name to per-question answer
// indices (-1 = unanswered); IsCompleted lists the categories the user has
// finished, which marks them for regeneration on the next cycle.
type DailyTaskBundle struct {
	ID          uuid.UUID        `json:"id"`
	UserID      string           `json:"user_id"`
	Date        string           `json:"date"` // YYYY-MM-DD, generation-local day
	WordList    []WordListItem   `json:"word_list"`
	GrammarList []GrammarQuiz    `json:"grammar_list"`
	Reading     *PassageTask     `json:"reading,omitempty"`
	Listening   *PassageTask     `json:"listening,omitempty"`
	Answers     map[string][]int `json:"answers"`
	IsCompleted []string         `json:"is_completed"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewDailyTaskBundle creates an empty bundle for the given user dated to
// the given generation time.
func NewDailyTaskBundle(userID string, now time.Time) *DailyTaskBundle {
	return &DailyTaskBundle{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        now.UTC().Format("2006-01-02"),
		Answers:     map[string][]int{},
		IsCompleted: []string{},
		CreatedAt:   now.UTC(),
	}
}

// UnansweredSlots builds a fresh -1-filled answers slice for n questions.
func UnansweredSlots(n int) []int {
	slots := make([]int, n)
	for i := range slots {
		slots[i] = -1
	}
	return slots
}

// HasContent reports whether the bundle carries any generated content.
// Bundles with no content at all are not worth persisting.
func (b *DailyTaskBundle) HasContent() bool {
	return len(b.WordList) > 0 || len(b.GrammarList) > 0 || b.Reading != nil || b.Listening != nil
}

// HasCompleted reports whether the given category is marked finished.
func (b *DailyTaskBundle) HasCompleted(category string) bool {
	for _, c := range b.IsCompleted {
		if c == category {
			return true
		}
	}
	return false
}

// Validate checks if the bundle has valid data. Answer slices must match
// the length of the content they answer.
func (b *DailyTaskBundle) Validate() error {
	if b.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}
	if b.UserID == "" {
		return ErrTaskUserIDEmpty
	}
	if b.Date == "" {
		return ErrTaskDateEmpty
	}

	if a, ok := b.Answers[CategoryGrammar]; ok && len(a) != len(b.GrammarList) {
		return ErrTaskAnswersInvalid
	}
	if a, ok := b.Answers[CategoryReading]; ok {
		if b.Reading == nil || len(a) != len(b.Reading.Questions) {
			return ErrTaskAnswersInvalid
		}
	}
	if a, ok := b.Answers[CategoryListening]; ok {
		if b.Listening == nil || len(a) != len(b.Listening.Questions) {
			return ErrTaskAnswersInvalid
		}
	}

	return nil
}
