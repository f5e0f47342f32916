package ai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/saint0x/ggreview/pkg/log"
	"google.golang.org/genai"
)

// FallbackReview is returned when the response carries no candidate text
const FallbackReview = "No review content generated."

// Options configures a Generator
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	// HTTPClient replaces the SDK's default client; tests point it at httptest.
	HTTPClient *http.Client
}

// Generator handles AI-powered review generation through the Gemini API
type Generator struct {
	logger *log.Logger
	client *genai.Client
	model  string
}

// New creates a new Generator instance
func New(ctx context.Context, logger *log.Logger, opts Options) (*Generator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("Gemini model is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions.BaseURL = opts.BaseURL
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Generator{
		logger: logger,
		client: client,
		model:  opts.Model,
	}, nil
}

// Generate sends the prompt as a single user turn and returns the first
// candidate's first part text, or FallbackReview when that path is absent.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("Sending %d byte prompt to %s", len(prompt), g.model)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, ok := firstPartText(resp)
	if !ok {
		g.logger.Warning("Gemini returned no candidate text")
		return FallbackReview, nil
	}
	return text, nil
}

func firstPartText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", false
	}
	part := candidate.Content.Parts[0]
	if part == nil || part.Text == "" {
		return "", false
	}
	return part.Text, true
}
