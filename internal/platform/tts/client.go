// Package tts wraps the Google Cloud Text-to-Speech API for narration
// synthesis.
package tts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// Synthesis voice. Journey voices read long-form passages naturally.
const (
	voiceLanguage = "en-US"
	voiceName     = "en-US-Journey-F"
)

// ErrNoAudio is returned when the API responds without audio content.
var ErrNoAudio = errors.New("no audio content synthesized")

// Client synthesizes MP3 narration from text.
type Client struct {
	logger *slog.Logger
	client *texttospeech.Client
}

// NewClient creates a Client using ambient Google Cloud credentials.
func NewClient(ctx context.Context, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	c, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech client: %w", err)
	}

	return &Client{
		logger: logger.With(slog.String("component", "tts_client")),
		client: c,
	}, nil
}

// Synthesize renders the given text as MP3 audio.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, errors.New("text cannot be empty")
	}

	resp, err := c.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: voiceLanguage,
			Name:         voiceName,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_FEMALE,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   texttospeechpb.AudioEncoding_MP3,
			SampleRateHertz: 44100,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	if len(resp.AudioContent) == 0 {
		return nil, ErrNoAudio
	}

	c.logger.DebugContext(ctx, "synthesized narration",
		slog.Int("text_length", len(text)),
		slog.Int("audio_bytes", len(resp.AudioContent)))

	return resp.AudioContent, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}
