package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lingosavor/savor-api/internal/generation"
)

const passageSystem = `You are an English teacher writing comprehension material for Japanese learners. Always respond with JSON only.`

// Passage generates a reading or listening passage with questions. The
// previous passage and the user's impression of it, when available, steer
// the model toward fresh topics at a suitable level.
func (g *Generator) Passage(
	ctx context.Context,
	req generation.PassageRequest,
) (*generation.Passage, error) {
	var b strings.Builder

	if req.Kind == generation.PassageListening {
		b.WriteString("Write a short English passage for listening practice, in a conversational spoken register.\n")
	} else {
		b.WriteString("Write a short English passage for reading practice.\n")
	}
	b.WriteString("Length: 120-200 words. Then write 3 multiple-choice comprehension questions about it.\n")

	if len(req.Topics) > 0 {
		fmt.Fprintf(&b, "\nWork these items the learner is studying into the passage naturally: %s\n",
			strings.Join(req.Topics, ", "))
	}
	if req.PreviousText != "" {
		fmt.Fprintf(&b, "\nThe learner's previous passage was:\n%s\n", req.PreviousText)
		b.WriteString("Choose a different topic.\n")
	}
	if req.UserImpression != "" {
		fmt.Fprintf(&b, "\nThe learner said this about the previous passage:\n%s\nTake it into account.\n", req.UserImpression)
	}

	b.WriteString(`
Respond with JSON:
{"text": "...", "questions": [{"question": "...", "options": ["...", "...", "...", "..."], "answer": 0}]}
Question text in Japanese, options in English; "answer" is the zero-based index of the correct option.`)

	payload, err := g.generateJSON(ctx, g.modelForPlan(req.Plan), passageSystem, b.String())
	if err != nil {
		return nil, err
	}

	return parsePassage(payload)
}

// parsePassage decodes and validates a passage response.
func parsePassage(payload string) (*generation.Passage, error) {
	var p generation.Passage
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("%w: failed to parse passage: %v", generation.ErrInvalidResponse, err)
	}
	if p.Text == "" {
		return nil, fmt.Errorf("%w: passage has no text", generation.ErrInvalidResponse)
	}
	if len(p.Questions) == 0 {
		return nil, fmt.Errorf("%w: passage has no questions", generation.ErrInvalidResponse)
	}
	for i, q := range p.Questions {
		if q.Question == "" || len(q.Options) < 2 || q.Answer < 0 || q.Answer >= len(q.Options) {
			return nil, fmt.Errorf("%w: passage question %d is invalid", generation.ErrInvalidResponse, i)
		}
	}
	return &p, nil
}
