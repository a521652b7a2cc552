package generation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONPlainObject(t *testing.T) {
	t.Parallel()

	got, err := ExtractJSON(`{"word":"run","meanings":["走る"]}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"word":"run","meanings":["走る"]}`, got)
}

func TestExtractJSONMarkdownFence(t *testing.T) {
	t.Parallel()

	raw := "```json\n[{\"question\":\"q\",\"options\":[\"a\",\"b\"],\"answer\":1}]\n```"
	got, err := ExtractJSON(raw)
	require.NoError(t, err)

	var quizzes []map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &quizzes))
	assert.Len(t, quizzes, 1)
}

func TestExtractJSONSurroundingProse(t *testing.T) {
	t.Parallel()

	raw := "Here is your quiz:\n{\"question\": \"pick one\"}\nHope it helps!"
	got, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"question":"pick one"}`, got)
}

func TestExtractJSONBracesInsideStrings(t *testing.T) {
	t.Parallel()

	raw := `{"text":"a } tricky { string","n":1}`
	got, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, raw, got)
}

func TestExtractJSONEscapedQuotes(t *testing.T) {
	t.Parallel()

	raw := `{"text":"she said \"hi\""}`
	got, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, raw, got)
}

func TestExtractJSONNoPayload(t *testing.T) {
	t.Parallel()

	_, err := ExtractJSON("the model refused to answer")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestExtractJSONUnterminated(t *testing.T) {
	t.Parallel()

	_, err := ExtractJSON(`{"question":"cut off`)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
