package gemini

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/lingosavor/savor-api/internal/generation"
)

// Transcribe extracts an English transcription from inline media. The
// transcription model tier is fixed to the default model regardless of
// plan; transcription quality does not vary enough between tiers to
// justify the cost.
func (g *Generator) Transcribe(
	ctx context.Context,
	prompt string,
	media generation.Media,
) (string, error) {
	if len(media.Data) == 0 {
		return "", ErrEmptyInput
	}

	contents := userContent(
		&genai.Part{Text: prompt},
		&genai.Part{InlineData: &genai.Blob{
			MIMEType: media.MIMEType,
			Data:     media.Data,
		}},
	)

	text, err := g.callWithRetry(ctx, g.config.DefaultModel, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
