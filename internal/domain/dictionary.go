package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Dictionary validation errors
var (
	ErrDictionaryIDEmpty   = errors.New("dictionary entry ID cannot be empty")
	ErrDictionaryWordEmpty = errors.New("dictionary word cannot be empty")
)

// Meaning is one sense of a dictionary word.
type Meaning struct {
	PartOfSpeech string   `json:"part_of_speech"`
	Definition   string   `json:"definition"`
	Examples     []string `json:"examples,omitempty"`
}

// Derivative is a related word derived from the base word.
type Derivative struct {
	Word         string `json:"word"`
	PartOfSpeech string `json:"part_of_speech"`
	Definition   string `json:"definition"`
}

// DictionaryEntry is a shared, generated dictionary record keyed by base
// word. Entries are generated once and reused; SavedUsers counts how many
// users saved the word.
type DictionaryEntry struct {
	ID            uuid.UUID    `json:"id"`
	Word          string       `json:"word"`
	Pronunciation string       `json:"pronunciation,omitempty"`
	Meanings      []Meaning    `json:"meanings"`
	Derivatives   []Derivative `json:"derivatives,omitempty"`
	Etymology     string       `json:"etymology,omitempty"`
	SavedUsers    int          `json:"saved_users"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// NewDictionaryEntry creates a DictionaryEntry with a zero saved-user
// count. Returns an error if validation fails.
func NewDictionaryEntry(word string, meanings []Meaning) (*DictionaryEntry, error) {
	now := time.Now().UTC()
	e := &DictionaryEntry{
		ID:        uuid.New(),
		Word:      word,
		Meanings:  meanings,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate checks if the DictionaryEntry has valid data.
func (e *DictionaryEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrDictionaryIDEmpty
	}
	if e.Word == "" {
		return ErrDictionaryWordEmpty
	}
	return nil
}

// Definitions flattens the entry's meanings into plain definition strings,
// the shape word lists carry.
func (e *DictionaryEntry) Definitions() []string {
	defs := make([]string, 0, len(e.Meanings))
	for _, m := range e.Meanings {
		defs = append(defs, m.Definition)
	}
	return defs
}
