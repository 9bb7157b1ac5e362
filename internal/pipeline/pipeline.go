// Package pipeline orchestrates the full run: load snapshot, select
// candidates, score, export, compare against the authoritative list, and
// the separate validation pass.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ppiankov/exorank/internal/cache"
	"github.com/ppiankov/exorank/internal/catalog"
	"github.com/ppiankov/exorank/internal/export"
	"github.com/ppiankov/exorank/internal/llm"
	"github.com/ppiankov/exorank/internal/model"
	"github.com/ppiankov/exorank/internal/refcat"
	"github.com/ppiankov/exorank/internal/score"
	"github.com/ppiankov/exorank/internal/validate"
	"github.com/ppiankov/exorank/internal/worker"
)

// Artifact file names under the output directory.
const (
	ScoredTableFile       = "habitable_priority_scores.csv"
	TopSummaryFile        = "habitable_top20.md"
	ComparisonFile        = "habitable_authoritative_comparison.csv"
	ValidationJSONFile    = "validation_report.json"
	ValidationMDFile      = "validation_report.md"
	ValidationSummaryFile = "validation_summary.md"
)

// Pipeline wires the components with one configuration and one profile.
type Pipeline struct {
	config   *model.Config
	profile  model.Profile
	scorer   *score.Scorer
	resolver *refcat.Resolver
}

// New creates a pipeline. The profile is validated once here; every later
// stage scores with the same immutable constants.
func New(cfg *model.Config, profile model.Profile) (*Pipeline, error) {
	scorer, err := score.NewScorer(profile)
	if err != nil {
		return nil, err
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}
	fetcher := refcat.NewFetcher(cfg.HTTP, store)

	return &Pipeline{
		config:   cfg,
		profile:  profile,
		scorer:   scorer,
		resolver: refcat.NewResolver(fetcher, cfg.Reference, cfg.HTTP),
	}, nil
}

// RankResult is the outcome of a full scoring run.
type RankResult struct {
	Candidates []model.CandidateRow
	Comparison model.ComparisonResult
}

// Rank runs the scoring pipeline end to end and writes all artifacts.
func (p *Pipeline) Rank(ctx context.Context, snapshotPath string) (*RankResult, error) {
	scored, err := p.computeScores(snapshotPath)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return nil, fmt.Errorf("no planets meet the habitable input criteria; review filtering bounds")
	}

	outDir := p.config.Output.Dir
	if err := export.WriteScoredCSV(filepath.Join(outDir, ScoredTableFile), scored); err != nil {
		return nil, fmt.Errorf("export scored table: %w", err)
	}
	if err := export.WriteTopMarkdown(filepath.Join(outDir, TopSummaryFile), scored, p.config.Output.TopN); err != nil {
		return nil, fmt.Errorf("export top summary: %w", err)
	}

	entries, source := p.resolver.Resolve(ctx)
	if source != refcat.SourceRemote {
		p.logf("reference list source: %s (live fetch unavailable or skipped)\n", source)
	}
	comparison := refcat.Compare(scored, entries, source)
	if err := export.WriteComparisonCSV(filepath.Join(outDir, ComparisonFile), comparison); err != nil {
		return nil, fmt.Errorf("export comparison: %w", err)
	}

	return &RankResult{Candidates: scored, Comparison: comparison}, nil
}

// Validate recomputes scores from the snapshot and diffs them against the
// stored scored table, then writes the validation artifacts. REVIEW
// outcomes are reported, never fatal.
func (p *Pipeline) Validate(ctx context.Context, snapshotPath string) (model.ValidationReport, error) {
	var report model.ValidationReport
	report.SnapshotPath = snapshotPath
	report.StoredPath = filepath.Join(p.config.Output.Dir, ScoredTableFile)

	recomputed, err := p.computeScores(snapshotPath)
	if err != nil {
		return report, err
	}

	validator, err := validate.NewValidator(p.profile)
	if err != nil {
		return report, err
	}

	stored, err := export.ReadScoredCSV(report.StoredPath)
	if err != nil {
		// A missing or unreadable stored table is itself a finding.
		report.Checks = []model.CheckRecord{{
			Name:    "Stored table availability",
			Status:  model.StatusReview,
			Details: fmt.Sprintf("Cannot load stored table: %v; run `exorank rank` first", err),
		}}
	} else {
		report.Checks = validator.Checks(recomputed, stored)
	}
	report.Overall = model.OverallStatus(report.Checks)

	outDir := p.config.Output.Dir
	if err := export.WriteValidationJSON(filepath.Join(outDir, ValidationJSONFile), report); err != nil {
		return report, fmt.Errorf("export validation JSON: %w", err)
	}
	if err := export.WriteValidationMarkdown(filepath.Join(outDir, ValidationMDFile), report); err != nil {
		return report, fmt.Errorf("export validation markdown: %w", err)
	}

	summarizer, err := llm.NewSummarizer(llm.ConfigFromModel(p.config.LLM))
	if err != nil {
		p.logf("warning: LLM narration disabled: %v\n", err)
		summarizer, _ = llm.NewSummarizer(llm.Config{})
	}
	narrative := summarizer.Narrative(ctx, report)
	if err := export.WriteNarrative(filepath.Join(outDir, ValidationSummaryFile), narrative); err != nil {
		return report, fmt.Errorf("export narrative: %w", err)
	}

	return report, nil
}

// computeScores loads the snapshot, selects candidates, scores them
// row-wise, and sorts by priority (descending, name ascending as the tie
// break) so the output ordering is deterministic.
func (p *Pipeline) computeScores(snapshotPath string) ([]model.CandidateRow, error) {
	rows, err := catalog.Load(snapshotPath)
	if err != nil {
		return nil, err
	}
	p.logf("loaded %d default-parameter rows\n", len(rows))

	candidates := catalog.SelectCandidates(rows, p.profile)
	p.logf("selected %d candidates\n", len(candidates))

	scored := worker.ScoreRows(candidates, p.config.Scoring.Workers, p.scorer.ScoreRow)
	SortByPriority(scored)
	return scored, nil
}

// SortByPriority orders rows highest priority first, ties broken by name.
func SortByPriority(rows []model.CandidateRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Priority != rows[j].Priority {
			return rows[i].Priority > rows[j].Priority
		}
		return rows[i].Name < rows[j].Name
	})
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
