// Package llm produces the narrative validation summary. A deterministic
// template is always available; an LLM provider can optionally rephrase the
// report for presentations. The narrative never affects check statuses or
// scores.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/exorank/internal/model"
)

// Provider is a text generator for the narrative summary.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Narrate turns a validation report into prose.
	Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error)
}

// NarrateRequest carries the report plus generation parameters.
type NarrateRequest struct {
	Report    model.ValidationReport
	Prompt    string // optional custom prompt
	Model     string
	MaxTokens int
}

// NarrateResponse is the generated narrative.
type NarrateResponse struct {
	Narrative  string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	Provider  string // "openai" or "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int
}

// ConfigFromModel converts the app-level LLM config.
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:  c.Provider,
		Model:     c.Model,
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		MaxTokens: c.MaxTokens,
	}
}

// NewProvider creates a provider based on configuration. An empty provider
// name disables LLM narration and the template path is used instead.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", config.Provider)
	}
}

// BuildPrompt constructs the default narration prompt. The model is asked
// to restate the report, not to re-judge it: statuses and deviations in the
// report are authoritative.
func BuildPrompt(report model.ValidationReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are writing a short narrative summary of a data-validation report for an exoplanet prioritisation pipeline.

RULES:
1. Only restate what the report says. Do not invent checks, numbers, or causes.
2. Keep PASS/REVIEW statuses exactly as given.
3. Two paragraphs maximum.

Overall status: %s
Checks:
`, report.Overall)
	for _, c := range report.Checks {
		fmt.Fprintf(&b, "- %s: %s (max deviation %.2e) — %s\n", c.Name, c.Status, c.MaxDeviation, c.Details)
	}
	return b.String()
}
