package gemini

import (
	"context"

	"google.golang.org/genai"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/generation"
)

// ChatReply produces the model's next turn in a room conversation. The
// history is replayed as alternating user/model turns; the new message is
// appended as the final user turn.
func (g *Generator) ChatReply(
	ctx context.Context,
	system string,
	history []generation.ChatTurn,
	message string,
	plan domain.Plan,
) (string, error) {
	if message == "" {
		return "", ErrEmptyInput
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.RoleUser
		if turn.Role == string(domain.RoleModel) {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: message}},
	})

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction(system),
		Temperature:       genai.Ptr[float32](0.9),
	}

	return g.callWithRetry(ctx, g.modelForPlan(plan), contents, genCfg)
}
