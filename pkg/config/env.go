package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Environment holds the process configuration read from environment variables
type Environment struct {
	GitHubToken  string `env:"GITHUB_TOKEN"`
	GitHubAPIURL string `env:"GITHUB_API_URL"`
	Repository   string `env:"GITHUB_REPOSITORY"`
	Ref          string `env:"GITHUB_REF"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL"`

	ExcludeExtensions []string `env:"REVIEW_EXCLUDE_EXTENSIONS" envSeparator:"," envDefault:".json,.md"`
	HistoryScanLimit  int      `env:"REVIEW_HISTORY_SCAN_LIMIT" envDefault:"10"`
	HistoryMatchLimit int      `env:"REVIEW_HISTORY_MATCH_LIMIT" envDefault:"3"`
	RequestsPerSecond float64  `env:"GITHUB_REQUESTS_PER_SECOND" envDefault:"10"`

	Port          string `env:"PORT" envDefault:"8080"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`

	Debug    bool   `env:"DEBUG"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the process environment, layered over an optional .env file.
// Variables already set in the process win over the file.
func Load(envFile string) (*Environment, error) {
	vars := fromOS()
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
		vars = merge(fileVars, vars)
	}
	return Parse(vars)
}

// Parse builds an Environment from an explicit variable map
func Parse(vars map[string]string) (*Environment, error) {
	e := &Environment{}
	if err := env.ParseWithOptions(e, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	e.ExcludeExtensions = cleanList(e.ExcludeExtensions)
	return e, nil
}

// ValidateReview checks what a single CI review run needs
func (e *Environment) ValidateReview() error {
	if e.Repository == "" {
		return fmt.Errorf("GITHUB_REPOSITORY not configured")
	}
	if e.Ref == "" {
		return fmt.Errorf("GITHUB_REF not configured")
	}
	return e.validateClients()
}

// ValidateServe checks what webhook mode needs
func (e *Environment) ValidateServe() error {
	if e.WebhookSecret == "" {
		return fmt.Errorf("WEBHOOK_SECRET not configured")
	}
	return e.validateClients()
}

func (e *Environment) validateClients() error {
	if e.GitHubToken == "" {
		return fmt.Errorf("GITHUB_TOKEN not configured")
	}
	if e.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY not configured")
	}
	if e.HistoryScanLimit <= 0 {
		return fmt.Errorf("REVIEW_HISTORY_SCAN_LIMIT must be positive, got %d", e.HistoryScanLimit)
	}
	if e.HistoryMatchLimit <= 0 {
		return fmt.Errorf("REVIEW_HISTORY_MATCH_LIMIT must be positive, got %d", e.HistoryMatchLimit)
	}
	return nil
}

func fromOS() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[key] = value
	}
	return out
}

// merge combines maps, later maps overriding earlier keys
func merge(sets ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
