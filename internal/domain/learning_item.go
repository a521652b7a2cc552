package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Stage tracks how far a learning item has progressed. Stages only move
// forward: unreviewed -> reading -> listening -> completed.
type Stage string

const (
	StageUnreviewed Stage = "unreviewed"
	StageReading    Stage = "reading"
	StageListening  Stage = "listening"
	StageCompleted  Stage = "completed"
)

// stageRank orders stages so that transitions can be checked for
// monotonicity. Unknown stages rank below unreviewed.
func stageRank(s Stage) int {
	switch s {
	case StageUnreviewed:
		return 0
	case StageReading:
		return 1
	case StageListening:
		return 2
	case StageCompleted:
		return 3
	default:
		return -1
	}
}

// IsValid reports whether s is one of the four known stages.
func (s Stage) IsValid() bool {
	return stageRank(s) >= 0
}

// Before reports whether s precedes other in the progression order.
func (s Stage) Before(other Stage) bool {
	return stageRank(s) < stageRank(other)
}

// Modality identifies which kind of practice a review exercised.
type Modality string

const (
	ModalityReading   Modality = "reading"
	ModalityListening Modality = "listening"
)

// ReviewEvent records a single answered exercise. A negative-free history
// of these drives the unreviewed -> reading transition.
type ReviewEvent struct {
	IsCorrect bool      `json:"is_correct"`
	At        time.Time `json:"at"`
}

// ReviewData holds per-modality review timestamps. Stored as JSONB so new
// modalities can be added without a migration.
type ReviewData struct {
	Reading   []time.Time `json:"reading,omitempty"`
	Listening []time.Time `json:"listening,omitempty"`
}

// ForModality returns the review timestamps recorded for the given modality.
func (r ReviewData) ForModality(m Modality) []time.Time {
	switch m {
	case ModalityReading:
		return r.Reading
	case ModalityListening:
		return r.Listening
	default:
		return nil
	}
}

// All returns every review timestamp across modalities.
func (r ReviewData) All() []time.Time {
	all := make([]time.Time, 0, len(r.Reading)+len(r.Listening))
	all = append(all, r.Reading...)
	all = append(all, r.Listening...)
	return all
}

// Record appends a review timestamp for the given modality.
func (r *ReviewData) Record(m Modality, at time.Time) {
	switch m {
	case ModalityReading:
		r.Reading = append(r.Reading, at)
	case ModalityListening:
		r.Listening = append(r.Listening, at)
	}
}

// Learning item validation errors
var (
	ErrItemIDEmpty      = errors.New("item ID cannot be empty")
	ErrItemUserIDEmpty  = errors.New("item user ID cannot be empty")
	ErrItemStageInvalid = errors.New("item stage is not a known stage")
	ErrWordEmpty        = errors.New("word cannot be empty")
	ErrRoomTitleEmpty   = errors.New("room title cannot be empty")
	ErrStageRegression  = errors.New("stage cannot move backwards")
)

// UserWord is a vocabulary item a user saved for study. WordID links to
// the shared dictionary entry holding the word's generated definitions.
type UserWord struct {
	ID         uuid.UUID     `json:"id"`
	UserID     string        `json:"user_id"`
	Word       string        `json:"word"`
	WordID     *uuid.UUID    `json:"word_id,omitempty"`
	ListIDs    []string      `json:"list_ids"`
	Stage      Stage         `json:"stage"`
	ReviewData ReviewData    `json:"review_data"`
	Answers    []ReviewEvent `json:"answers"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// NewUserWord creates a UserWord in the unreviewed stage.
// Returns an error if validation fails.
func NewUserWord(userID, word string, wordID *uuid.UUID) (*UserWord, error) {
	now := time.Now().UTC()
	w := &UserWord{
		ID:        uuid.New(),
		UserID:    userID,
		Word:      word,
		WordID:    wordID,
		Stage:     StageUnreviewed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate checks if the UserWord has valid data.
func (w *UserWord) Validate() error {
	if w.ID == uuid.Nil {
		return ErrItemIDEmpty
	}
	if w.UserID == "" {
		return ErrItemUserIDEmpty
	}
	if w.Word == "" {
		return ErrWordEmpty
	}
	if !w.Stage.IsValid() {
		return ErrItemStageInvalid
	}
	return nil
}

// AdvanceStage moves the word to the given stage. Returns
// ErrStageRegression if the target does not move the stage forward.
func (w *UserWord) AdvanceStage(target Stage) error {
	if !target.IsValid() {
		return ErrItemStageInvalid
	}
	if !w.Stage.Before(target) {
		return ErrStageRegression
	}
	w.Stage = target
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// UserRoom is a study room built around a source document. Rooms carry the
// same stage/review machinery as words and feed grammar quiz generation.
type UserRoom struct {
	ID         uuid.UUID  `json:"id"`
	UserID     string     `json:"user_id"`
	Title      string     `json:"title"`
	Abstract   string     `json:"abstract"`
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	Stage      Stage      `json:"stage"`
	ReviewData ReviewData `json:"review_data"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewUserRoom creates a UserRoom in the unreviewed stage.
// Returns an error if validation fails.
func NewUserRoom(userID, title, abstract string, documentID *uuid.UUID) (*UserRoom, error) {
	now := time.Now().UTC()
	r := &UserRoom{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		Abstract:   abstract,
		DocumentID: documentID,
		Stage:      StageUnreviewed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks if the UserRoom has valid data.
func (r *UserRoom) Validate() error {
	if r.ID == uuid.Nil {
		return ErrItemIDEmpty
	}
	if r.UserID == "" {
		return ErrItemUserIDEmpty
	}
	if r.Title == "" {
		return ErrRoomTitleEmpty
	}
	if !r.Stage.IsValid() {
		return ErrItemStageInvalid
	}
	return nil
}

// AdvanceStage moves the room to the given stage. Returns
// ErrStageRegression if the target does not move the stage forward.
func (r *UserRoom) AdvanceStage(target Stage) error {
	if !target.IsValid() {
		return ErrItemStageInvalid
	}
	if !r.Stage.Before(target) {
		return ErrStageRegression
	}
	r.Stage = target
	r.UpdatedAt = time.Now().UTC()
	return nil
}
