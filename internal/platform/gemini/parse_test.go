package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingosavor/savor-api/internal/generation"
)

func TestParseQuizzes(t *testing.T) {
	t.Parallel()

	payload := `[
		{"question": "正しいのは？", "options": ["go", "goes", "going", "gone"], "answer": 1},
		{"question": "時制は？", "options": ["past", "present"], "answer": 0}
	]`

	quizzes, err := parseQuizzes(payload)
	require.NoError(t, err)
	require.Len(t, quizzes, 2)
	assert.Equal(t, 1, quizzes[0].Answer)
	assert.Len(t, quizzes[0].Options, 4)
}

func TestParseQuizzesRejectsBadAnswerIndex(t *testing.T) {
	t.Parallel()

	payload := `[{"question": "q", "options": ["a", "b"], "answer": 5}]`
	_, err := parseQuizzes(payload)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}

func TestParseQuizzesRejectsEmptyArray(t *testing.T) {
	t.Parallel()

	_, err := parseQuizzes(`[]`)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}

func TestParsePassage(t *testing.T) {
	t.Parallel()

	payload := `{
		"text": "The harbor was quiet that morning.",
		"questions": [
			{"question": "港の様子は？", "options": ["busy", "quiet", "closed", "crowded"], "answer": 1}
		]
	}`

	p, err := parsePassage(payload)
	require.NoError(t, err)
	assert.NotEmpty(t, p.Text)
	require.Len(t, p.Questions, 1)
	assert.Equal(t, 1, p.Questions[0].Answer)
}

func TestParsePassageRequiresQuestions(t *testing.T) {
	t.Parallel()

	_, err := parsePassage(`{"text": "something", "questions": []}`)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}

func TestParseWordAnalysisFallsBackToInputWord(t *testing.T) {
	t.Parallel()

	analysis, err := parseWordAnalysis(`{"part_of_speech": "動詞", "context_meaning": "走る"}`, "Running")
	require.NoError(t, err)
	assert.Equal(t, "running", analysis.BaseWord)
	assert.Equal(t, "動詞", analysis.PartOfSpeech)
}

func TestParseDictionaryDraft(t *testing.T) {
	t.Parallel()

	payload := `{
		"pronunciation": "rʌn",
		"meanings": [
			{"part_of_speech": "動詞", "definition": "走る"},
			{"part_of_speech": "名詞", "definition": "走ること"}
		],
		"etymology": "古英語 rinnan より"
	}`

	draft, err := parseDictionaryDraft(payload)
	require.NoError(t, err)
	assert.Len(t, draft.Meanings, 2)
	assert.Equal(t, "rʌn", draft.Pronunciation)
}

func TestParseDictionaryDraftRequiresMeanings(t *testing.T) {
	t.Parallel()

	_, err := parseDictionaryDraft(`{"pronunciation": "x", "meanings": []}`)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}

func TestParseExamplesAlignment(t *testing.T) {
	t.Parallel()

	payload := `[["I run daily.", "She runs fast."], ["It was a good run."]]`

	examples, err := parseExamples(payload, 2)
	require.NoError(t, err)
	assert.Len(t, examples, 2)

	_, err = parseExamples(payload, 3)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}

func TestParseTranslations(t *testing.T) {
	t.Parallel()

	payload := `[{"sentence": "Hello.", "translation": "こんにちは。"}]`
	translations, err := parseTranslations(payload)
	require.NoError(t, err)
	require.Len(t, translations, 1)
	assert.Equal(t, "こんにちは。", translations[0].Translation)

	_, err = parseTranslations(`[{"sentence": "Hello.", "translation": ""}]`)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}
