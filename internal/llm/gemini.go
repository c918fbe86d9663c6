// Package llm wraps the Gemini API behind a one-method interface.
//
// The analysis pipeline only ever needs "prompt in, rendered HTML out", so
// that is the whole interface. The orchestrator depends on Generator, not on
// GeminiClient, which is what lets its tests substitute a canned fake and
// exercise the partial-failure paths without network access.
package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yuin/goldmark"
	"google.golang.org/genai"
)

// Generator produces rendered HTML for a prompt.
//
// ERROR CONTRACT:
// Any provider-side failure (quota, malformed request, timeout) comes back as
// an error value, never as a panic. One failed call fails one analysis
// section only — there is no retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient implements Generator against the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

var _ Generator = (*GeminiClient)(nil)

// NewGemini creates a GeminiClient for the given API key and model name
// (e.g. "gemini-2.5-pro").
func NewGemini(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: creating Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Generate sends one non-streamed completion request and returns the model's
// markdown output rendered to HTML.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("llm: generating content: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", errors.New("llm: Gemini returned an empty response")
	}

	g.logger.Debug("generated content",
		slog.String("model", g.model),
		slog.Int("promptLen", len(prompt)),
		slog.Int("responseLen", len(text)),
	)

	return RenderMarkdown(text)
}

// RenderMarkdown converts markdown text to HTML with goldmark's defaults
// (CommonMark). The frontend injects the result straight into the page, the
// same way the LLM output has always been presented.
func RenderMarkdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("llm: rendering markdown: %w", err)
	}
	return buf.String(), nil
}
