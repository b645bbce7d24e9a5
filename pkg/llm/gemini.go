// Package llm adapts langchaingo models to the single-prompt text generation
// the rest of the service needs.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

var (
	// ErrEmptyResponse is returned when the model answered with no text.
	ErrEmptyResponse = errors.New("llm: empty response")
	// ErrNotConfigured is returned by Unconfigured for every prompt.
	ErrNotConfigured = errors.New("llm: provider not configured")
)

// Unconfigured stands in when no API key is set so the rest of the API keeps serving.
type Unconfigured struct{}

func (Unconfigured) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

// Generator sends one prompt and returns the first completion.
// It is safe for concurrent use.
type Generator struct {
	model   llms.Model
	timeout time.Duration
}

// NewGenerator wraps an already constructed model.
func NewGenerator(model llms.Model, timeout time.Duration) *Generator {
	return &Generator{model: model, timeout: timeout}
}

// NewGemini builds a Gemini-backed generator.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Generator, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("llm: create gemini client: %w", err)
	}

	return NewGenerator(client, timeout), nil
}

// Generate returns the trimmed text of the first response candidate.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
	if err != nil {
		return "", fmt.Errorf("llm: generate: %w", err)
	}

	text := strings.TrimSpace(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
