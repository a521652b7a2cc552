package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/generation"
)

const analysisSystem = `You help Japanese learners understand English documents. Always respond with JSON only.`

const summaryPromptFormat = `Summarize the following English text in Japanese, in 3-5 sentences,
for a language learner who has just read it.

%s

Respond with JSON: {"summary": "..."}`

const translationsPromptFormat = `Split the following English text into sentences and translate each
sentence into natural Japanese.

%s

Respond with a JSON array:
[{"sentence": "original English sentence", "translation": "日本語訳"}]`

// Summarize produces a learner-facing summary of the given text.
func (g *Generator) Summarize(ctx context.Context, text string, plan domain.Plan) (string, error) {
	if text == "" {
		return "", ErrEmptyInput
	}

	payload, err := g.generateJSON(ctx, g.modelForPlan(plan), analysisSystem,
		fmt.Sprintf(summaryPromptFormat, text))
	if err != nil {
		return "", err
	}

	var raw struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return "", fmt.Errorf("%w: failed to parse summary: %v", generation.ErrInvalidResponse, err)
	}
	if raw.Summary == "" {
		return "", fmt.Errorf("%w: empty summary", generation.ErrInvalidResponse)
	}
	return raw.Summary, nil
}

// TranslateSentences splits text into sentences and translates each.
func (g *Generator) TranslateSentences(
	ctx context.Context,
	text string,
	plan domain.Plan,
) ([]domain.SentenceTranslation, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}

	payload, err := g.generateJSON(ctx, g.modelForPlan(plan), analysisSystem,
		fmt.Sprintf(translationsPromptFormat, text))
	if err != nil {
		return nil, err
	}

	return parseTranslations(payload)
}

func parseTranslations(payload string) ([]domain.SentenceTranslation, error) {
	var translations []domain.SentenceTranslation
	if err := json.Unmarshal([]byte(payload), &translations); err != nil {
		return nil, fmt.Errorf("%w: failed to parse translations: %v", generation.ErrInvalidResponse, err)
	}
	if len(translations) == 0 {
		return nil, fmt.Errorf("%w: no translations in response", generation.ErrInvalidResponse)
	}
	for i, tr := range translations {
		if tr.Sentence == "" || tr.Translation == "" {
			return nil, fmt.Errorf("%w: translation %d is incomplete", generation.ErrInvalidResponse, i)
		}
	}
	return translations, nil
}
