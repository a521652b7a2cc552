package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"google.golang.org/genai"

	"github.com/lingosavor/savor-api/internal/config"
	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/generation"
)

// Retry defaults for calls to the Gemini API.
const (
	defaultMaxRetries       = 3
	defaultBaseDelaySeconds = 2
)

// ErrEmptyInput is returned when a generation method is called without
// the material it needs to build a prompt.
var ErrEmptyInput = errors.New("input text cannot be empty")

// Generator implements the generation.Generator interface using Google's
// Gemini API.
type Generator struct {
	logger *slog.Logger
	config config.LLMConfig
	client *genai.Client

	maxRetries       int
	baseDelaySeconds int
	rng              *rand.Rand
}

// NewGenerator creates a Generator with the provided dependencies.
// Returns generation.ErrInvalidConfig if the configuration is unusable.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.DefaultModel == "" || cfg.ProModel == "" {
		return nil, fmt.Errorf("%w: model names cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:           logger.With(slog.String("component", "gemini_generator")),
		config:           cfg,
		client:           client,
		maxRetries:       defaultMaxRetries,
		baseDelaySeconds: defaultBaseDelaySeconds,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// modelForPlan maps a subscription plan to a model tier. Unknown plans get
// the default model.
func (g *Generator) modelForPlan(plan domain.Plan) string {
	if plan == domain.PlanPro {
		return g.config.ProModel
	}
	return g.config.DefaultModel
}

// userContent wraps prompt parts into a single user turn.
func userContent(parts ...*genai.Part) []*genai.Content {
	return []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
}

// systemInstruction builds the config's system instruction content.
func systemInstruction(text string) *genai.Content {
	if text == "" {
		return nil
	}
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// callWithRetry makes one logical Gemini call with exponential backoff.
// Transport errors are treated as transient and retried with jittered
// exponential delays; safety blocks and malformed responses are permanent
// and returned immediately. Returns the response text.
func (g *Generator) callWithRetry(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	genCfg *genai.GenerateContentConfig,
) (string, error) {
	for attempt := 0; ; attempt++ {
		text, err := g.callOnce(ctx, model, contents, genCfg)
		if err == nil {
			return text, nil
		}

		if errors.Is(err, generation.ErrContentBlocked) ||
			errors.Is(err, generation.ErrInvalidResponse) ||
			errors.Is(err, generation.ErrEmptyResponse) {
			g.logger.WarnContext(ctx, "permanent generation error, not retrying",
				slog.String("model", model),
				slog.String("error", err.Error()))
			return "", err
		}

		if attempt >= g.maxRetries {
			g.logger.WarnContext(ctx, "maximum retry attempts reached",
				slog.Int("max_retries", g.maxRetries))
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, g.maxRetries, err)
		}

		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(g.baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + g.rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		g.logger.InfoContext(ctx, "retrying Gemini call after delay",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callOnce performs a single API call and maps failure modes onto the
// generation error taxonomy.
func (g *Generator) callOnce(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	genCfg *genai.GenerateContentConfig,
) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", generation.ErrEmptyResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: candidate carried no text", generation.ErrEmptyResponse)
	}
	return text, nil
}

// generateJSON runs a prompt expecting a JSON response and returns the
// extracted payload.
func (g *Generator) generateJSON(ctx context.Context, model, system, prompt string) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: systemInstruction(system),
		Temperature:       genai.Ptr[float32](0.7),
	}

	text, err := g.callWithRetry(ctx, model, userContent(&genai.Part{Text: prompt}), genCfg)
	if err != nil {
		return "", err
	}
	return generation.ExtractJSON(text)
}

var _ generation.Generator = (*Generator)(nil)
