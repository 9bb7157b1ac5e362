package llm

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ppiankov/exorank/internal/model"
)

func sampleReport() model.ValidationReport {
	return model.ValidationReport{
		SnapshotPath: "data/ps_snapshot.csv",
		StoredPath:   "results/habitable_priority_scores.csv",
		Overall:      model.StatusReview,
		Checks: []model.CheckRecord{
			{Name: "Pillar weight normalisation", Status: model.StatusPass, MaxDeviation: 0, Details: "Weights sum to 1.000000000000"},
			{Name: "Priority score equality", Status: model.StatusReview, MaxDeviation: 0.0123, Details: "Max abs deviation over 3 rows: 1.23e-02"},
		},
	}
}

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if p != nil {
		t.Error("empty provider name should disable LLM narration")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "mystery"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewProvider_OpenAIRequiresKey(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestTemplateNarrative_Review(t *testing.T) {
	text := TemplateNarrative(sampleReport())

	for _, want := range []string{
		"# Validation summary",
		"1 of 2 checks passed",
		"**REVIEW**",
		"Priority score equality",
		"should not be trusted",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("narrative missing %q:\n%s", want, text)
		}
	}
}

func TestTemplateNarrative_AllPass(t *testing.T) {
	report := sampleReport()
	report.Overall = model.StatusPass
	report.Checks[1].Status = model.StatusPass

	text := TemplateNarrative(report)
	if !strings.Contains(text, "2 of 2 checks passed") {
		t.Errorf("narrative missing pass count:\n%s", text)
	}
	if strings.Contains(text, "requiring review") {
		t.Errorf("all-pass narrative should not list review items:\n%s", text)
	}
}

func TestTemplateNarrative_Deterministic(t *testing.T) {
	if TemplateNarrative(sampleReport()) != TemplateNarrative(sampleReport()) {
		t.Error("template narrative must be deterministic")
	}
}

type stubProvider struct {
	narrative string
	err       error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &NarrateResponse{Narrative: s.narrative, Model: "stub-1"}, nil
}

func TestSummarizer_NoProviderUsesTemplate(t *testing.T) {
	s, err := NewSummarizer(Config{})
	if err != nil {
		t.Fatalf("NewSummarizer: %v", err)
	}
	got := s.Narrative(context.Background(), sampleReport())
	if got != TemplateNarrative(sampleReport()) {
		t.Error("nil provider should produce exactly the template narrative")
	}
}

func TestSummarizer_ProviderOutputIsAttributed(t *testing.T) {
	s := &Summarizer{provider: &stubProvider{narrative: "All is well."}}
	got := s.Narrative(context.Background(), sampleReport())

	if !strings.Contains(got, "All is well.") {
		t.Errorf("missing provider text:\n%s", got)
	}
	if !strings.Contains(got, "stub/stub-1") {
		t.Errorf("missing attribution footer:\n%s", got)
	}
}

func TestSummarizer_ProviderFailureFallsBack(t *testing.T) {
	s := &Summarizer{provider: &stubProvider{err: fmt.Errorf("rate limited")}}
	got := s.Narrative(context.Background(), sampleReport())

	if !strings.Contains(got, "# Validation summary") {
		t.Errorf("fallback should contain the template narrative:\n%s", got)
	}
	if !strings.Contains(got, "LLM narration unavailable") {
		t.Errorf("fallback should note the failure:\n%s", got)
	}
}

func TestBuildPrompt_ContainsChecksVerbatim(t *testing.T) {
	prompt := BuildPrompt(sampleReport())
	for _, want := range []string{"REVIEW", "Priority score equality", "Only restate"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
