package service

import (
	"time"

	"github.com/lingosavor/savor-api/internal/domain"
)

// RegenFlags marks which bundle categories a scheduler run regenerates.
// Uncreated users get everything; users who completed categories get only
// those categories refreshed.
type RegenFlags struct {
	WordList    bool
	GrammarList bool
	Reading     bool
	Listening   bool
}

// AllRegenFlags returns flags with every category marked.
func AllRegenFlags() RegenFlags {
	return RegenFlags{WordList: true, GrammarList: true, Reading: true, Listening: true}
}

// RegenFlagsFor derives flags from a bundle's completed-category markers.
func RegenFlagsFor(completed []string) RegenFlags {
	var f RegenFlags
	for _, c := range completed {
		switch c {
		case domain.CategoryGrammar:
			f.GrammarList = true
		case domain.CategoryReading:
			f.Reading = true
		case domain.CategoryListening:
			f.Listening = true
		}
	}
	return f
}

// Any reports whether any category is flagged.
func (f RegenFlags) Any() bool {
	return f.WordList || f.GrammarList || f.Reading || f.Listening
}

// BundleContent is freshly generated content for one assembly. Only the
// fields whose flags are set are consulted.
type BundleContent struct {
	WordList    []domain.WordListItem
	GrammarList []domain.GrammarQuiz
	Reading     *domain.PassageTask
	Listening   *domain.PassageTask
}

// AssembleBundle builds the bundle a scheduler run persists for a user.
//
// With no existing bundle, every supplied content field goes in and each
// question-bearing category gets a fresh -1-filled answers slice (the
// word list carries no answers). With an existing bundle, only flagged
// categories are replaced and get their answers reset; unflagged
// categories are carried over untouched, answers included, so partial
// regeneration never clobbers the user's in-progress work. A flagged
// passage category whose generation yielded nothing keeps its old
// passage and answers rather than dropping them; this is what keeps
// free-plan users' listening passages intact across runs. Completion
// markers are consumed by regeneration, so IsCompleted always comes out
// empty. The result is a new row: fresh ID, date, and creation time.
func AssembleBundle(
	existing *domain.DailyTaskBundle,
	content BundleContent,
	flags RegenFlags,
	userID string,
	now time.Time,
) *domain.DailyTaskBundle {
	bundle := domain.NewDailyTaskBundle(userID, now)

	if existing != nil {
		bundle.WordList = existing.WordList
		bundle.GrammarList = existing.GrammarList
		bundle.Reading = existing.Reading
		bundle.Listening = existing.Listening
		for category, slots := range existing.Answers {
			bundle.Answers[category] = slots
		}
	}

	if existing == nil || flags.WordList {
		bundle.WordList = content.WordList
	}
	if existing == nil || flags.GrammarList {
		bundle.GrammarList = content.GrammarList
		bundle.Answers[domain.CategoryGrammar] = domain.UnansweredSlots(len(content.GrammarList))
	}
	if content.Reading != nil && (existing == nil || flags.Reading) {
		bundle.Reading = content.Reading
		bundle.Answers[domain.CategoryReading] = domain.UnansweredSlots(len(content.Reading.Questions))
	}
	if content.Listening != nil && (existing == nil || flags.Listening) {
		bundle.Listening = content.Listening
		bundle.Answers[domain.CategoryListening] = domain.UnansweredSlots(len(content.Listening.Questions))
	}

	return bundle
}
