package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/generation"
)

const wordSystem = `You are an English-Japanese dictionary editor. Always respond with JSON only.`

const analyzeWordPromptFormat = `Analyze the word "%s" as it is used in this sentence:

%s

Respond with JSON:
{"base_word": "dictionary base form", "part_of_speech": "品詞（日本語）", "context_meaning": "この文脈での意味（日本語）"}`

const dictionaryPromptFormat = `Create a full dictionary entry for the English word "%s".

Respond with JSON:
{
  "pronunciation": "IPA",
  "meanings": [{"part_of_speech": "品詞（日本語）", "definition": "意味（日本語）"}],
  "derivatives": [{"word": "...", "part_of_speech": "品詞（日本語）", "definition": "意味（日本語）"}],
  "etymology": "語源の説明（日本語）"
}

Rules:
- Include as many distinct meanings as the word genuinely has.
- Every meaning must carry its part of speech in Japanese (動詞, 名詞, 形容詞, ...).
- Include related derivative words and a detailed etymology.`

// AnalyzeWord resolves a word in sentence context to its base form and
// contextual role.
func (g *Generator) AnalyzeWord(
	ctx context.Context,
	word, sentence string,
	plan domain.Plan,
) (*generation.WordAnalysis, error) {
	if word == "" {
		return nil, ErrEmptyInput
	}

	prompt := fmt.Sprintf(analyzeWordPromptFormat, word, sentence)
	payload, err := g.generateJSON(ctx, g.modelForPlan(plan), wordSystem, prompt)
	if err != nil {
		return nil, err
	}

	return parseWordAnalysis(payload, word)
}

// DictionaryEntry generates full dictionary content for a base word.
func (g *Generator) DictionaryEntry(
	ctx context.Context,
	baseWord string,
	plan domain.Plan,
) (*generation.DictionaryDraft, error) {
	if baseWord == "" {
		return nil, ErrEmptyInput
	}

	prompt := fmt.Sprintf(dictionaryPromptFormat, baseWord)
	payload, err := g.generateJSON(ctx, g.modelForPlan(plan), wordSystem, prompt)
	if err != nil {
		return nil, err
	}

	return parseDictionaryDraft(payload)
}

// Examples generates example sentences per meaning, seeded with other
// words the user saved so examples double as review material.
func (g *Generator) Examples(
	ctx context.Context,
	baseWord string,
	meanings []domain.Meaning,
	seedWords []string,
	plan domain.Plan,
) ([][]string, error) {
	if baseWord == "" {
		return nil, ErrEmptyInput
	}
	if len(meanings) == 0 {
		return nil, fmt.Errorf("%w: no meanings to illustrate", ErrEmptyInput)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write 2 English example sentences for each meaning of the word %q below.\n\nMeanings:\n", baseWord)
	for i, m := range meanings {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, m.PartOfSpeech, m.Definition)
	}
	if len(seedWords) > 0 {
		fmt.Fprintf(&b, "\nWhere it reads naturally, also use these words the learner is studying: %s\n",
			strings.Join(seedWords, ", "))
	}
	b.WriteString(`
Respond with a JSON array of arrays, index-aligned with the meanings:
[["example 1 for meaning 1", "example 2 for meaning 1"], ["example 1 for meaning 2", ...]]`)

	payload, err := g.generateJSON(ctx, g.modelForPlan(plan), wordSystem, b.String())
	if err != nil {
		return nil, err
	}

	return parseExamples(payload, len(meanings))
}

func parseWordAnalysis(payload, fallbackWord string) (*generation.WordAnalysis, error) {
	var raw struct {
		BaseWord       string `json:"base_word"`
		PartOfSpeech   string `json:"part_of_speech"`
		ContextMeaning string `json:"context_meaning"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse word analysis: %v", generation.ErrInvalidResponse, err)
	}
	if raw.BaseWord == "" {
		// The model occasionally echoes nothing for trivial words.
		raw.BaseWord = strings.ToLower(fallbackWord)
	}
	return &generation.WordAnalysis{
		BaseWord:       raw.BaseWord,
		PartOfSpeech:   raw.PartOfSpeech,
		ContextMeaning: raw.ContextMeaning,
	}, nil
}

func parseDictionaryDraft(payload string) (*generation.DictionaryDraft, error) {
	var draft generation.DictionaryDraft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return nil, fmt.Errorf("%w: failed to parse dictionary entry: %v", generation.ErrInvalidResponse, err)
	}
	if len(draft.Meanings) == 0 {
		return nil, fmt.Errorf("%w: dictionary entry has no meanings", generation.ErrInvalidResponse)
	}
	for i, m := range draft.Meanings {
		if m.Definition == "" {
			return nil, fmt.Errorf("%w: meaning %d has no definition", generation.ErrInvalidResponse, i)
		}
	}
	return &draft, nil
}

func parseExamples(payload string, meaningCount int) ([][]string, error) {
	var examples [][]string
	if err := json.Unmarshal([]byte(payload), &examples); err != nil {
		return nil, fmt.Errorf("%w: failed to parse examples: %v", generation.ErrInvalidResponse, err)
	}
	if len(examples) != meaningCount {
		return nil, fmt.Errorf("%w: got examples for %d meanings, want %d",
			generation.ErrInvalidResponse, len(examples), meaningCount)
	}
	return examples, nil
}
