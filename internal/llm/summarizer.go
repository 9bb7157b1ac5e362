package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/exorank/internal/model"
)

// Summarizer renders the narrative validation summary. With no provider
// configured it always uses the deterministic template, so the default
// pipeline output is reproducible byte for byte.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer; provider may be nil (template only).
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// Narrative produces the summary text. LLM failures fall back to the
// template with a warning note rather than failing the validation run.
func (s *Summarizer) Narrative(ctx context.Context, report model.ValidationReport) string {
	if s.provider == nil {
		return TemplateNarrative(report)
	}

	resp, err := s.provider.Narrate(ctx, NarrateRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return TemplateNarrative(report) +
			fmt.Sprintf("\n> Note: LLM narration unavailable (%v); deterministic summary shown.\n", err)
	}

	var b strings.Builder
	b.WriteString("# Validation summary\n\n")
	b.WriteString(strings.TrimSpace(resp.Narrative))
	b.WriteString("\n\n---\n")
	fmt.Fprintf(&b, "Generated by %s/%s. Statuses and deviations come from the validation report and are not model output.\n",
		s.provider.Name(), resp.Model)
	return b.String()
}

// TemplateNarrative is the deterministic fallback summary.
func TemplateNarrative(report model.ValidationReport) string {
	pass, review := 0, 0
	var reviews []string
	for _, c := range report.Checks {
		if c.Status == model.StatusPass {
			pass++
		} else {
			review++
			reviews = append(reviews, fmt.Sprintf("%s (max deviation %.2e)", c.Name, c.MaxDeviation))
		}
	}

	var b strings.Builder
	b.WriteString("# Validation summary\n\n")
	fmt.Fprintf(&b, "Recomputed the scored table from %s and compared it against %s. ",
		report.SnapshotPath, report.StoredPath)
	fmt.Fprintf(&b, "%d of %d checks passed; overall status **%s**.\n", pass, len(report.Checks), report.Overall)
	if review > 0 {
		b.WriteString("\nChecks requiring review:\n")
		for _, r := range reviews {
			fmt.Fprintf(&b, "- %s\n", r)
		}
		b.WriteString("\nStored values diverge from fresh recomputation; the published table should not be trusted until the divergence is explained.\n")
	} else {
		b.WriteString("\nStored scores, tier labels, and candidate coverage all match fresh recomputation within tolerance.\n")
	}
	return b.String()
}
