package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/generation"
)

const grammarSystem = `You are an English teacher creating grammar exercises for Japanese learners. Always respond with JSON only.`

const grammarPromptFormat = `Below is a conversation between a learner and a tutor. Create multiple-choice
grammar questions based on the English expressions that appear in it.

Conversation:
%s

Rules:
- Write 1 to 3 questions, each testing a grammar point actually used in the conversation.
- Each question has exactly 4 options and one correct answer.
- Question text in Japanese, options in English.

Respond with a JSON array:
[{"question": "...", "options": ["...", "...", "...", "..."], "answer": 0}]
"answer" is the zero-based index of the correct option.`

// GrammarQuizzes builds grammar questions from a room's unreviewed
// conversation.
func (g *Generator) GrammarQuizzes(
	ctx context.Context,
	conversation []generation.ChatTurn,
	plan domain.Plan,
) ([]domain.Quiz, error) {
	if len(conversation) == 0 {
		return nil, ErrEmptyInput
	}

	var transcript strings.Builder
	for _, turn := range conversation {
		fmt.Fprintf(&transcript, "%s: %s\n", turn.Role, turn.Content)
	}

	prompt := fmt.Sprintf(grammarPromptFormat, transcript.String())

	payload, err := g.generateJSON(ctx, g.modelForPlan(plan), grammarSystem, prompt)
	if err != nil {
		return nil, err
	}

	quizzes, err := parseQuizzes(payload)
	if err != nil {
		return nil, err
	}

	g.logger.DebugContext(ctx, "generated grammar quizzes",
		slog.Int("count", len(quizzes)))
	return quizzes, nil
}

// parseQuizzes decodes and validates a JSON array of quizzes.
func parseQuizzes(payload string) ([]domain.Quiz, error) {
	var quizzes []domain.Quiz
	if err := json.Unmarshal([]byte(payload), &quizzes); err != nil {
		return nil, fmt.Errorf("%w: failed to parse quizzes: %v", generation.ErrInvalidResponse, err)
	}
	if len(quizzes) == 0 {
		return nil, fmt.Errorf("%w: no quizzes in response", generation.ErrInvalidResponse)
	}
	for i, q := range quizzes {
		if q.Question == "" || len(q.Options) < 2 {
			return nil, fmt.Errorf("%w: quiz %d is incomplete", generation.ErrInvalidResponse, i)
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return nil, fmt.Errorf("%w: quiz %d answer index out of range", generation.ErrInvalidResponse, i)
		}
	}
	return quizzes, nil
}
