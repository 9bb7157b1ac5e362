// Package validate recomputes every pillar score, the priority aggregate,
// and the tier labels from the stored table's raw inputs and diffs the
// results against the stored computed columns. It exists to catch silent
// drift between the scoring formulas and previously published results.
package validate

import (
	"fmt"
	"math"

	"github.com/ppiankov/exorank/internal/model"
	"github.com/ppiankov/exorank/internal/score"
)

// Tolerance for comparisons against persisted output. Fresh recomputation
// inside one process must agree far tighter than this; the looser bound
// absorbs the decimal round-trip through the CSV.
const StoredTolerance = 1e-6

// Validator re-derives scores with its own scorer instance so a bug in the
// pipeline wiring cannot hide itself.
type Validator struct {
	scorer *score.Scorer
}

// NewValidator builds a validator over the given scoring profile.
func NewValidator(profile model.Profile) (*Validator, error) {
	s, err := score.NewScorer(profile)
	if err != nil {
		return nil, err
	}
	return &Validator{scorer: s}, nil
}

// Checks runs every validation check. recomputed is the candidate set
// rebuilt from the snapshot and rescored; stored is the exported table.
// A REVIEW never aborts the run: all checks always execute so the full
// report is produced.
func (v *Validator) Checks(recomputed, stored []model.CandidateRow) []model.CheckRecord {
	checks := []model.CheckRecord{
		v.checkWeights(),
		v.checkCoverage(recomputed, stored),
		v.checkScoreRange(stored),
		v.checkTierLabels(stored),
		v.checkDistribution(recomputed, stored),
	}
	checks = append(checks, v.checkScoreEquality(recomputed, stored)...)
	return checks
}

// checkWeights verifies the pillar weight constants sum to exactly 1.
func (v *Validator) checkWeights() model.CheckRecord {
	sum := v.scorer.Profile().Weights.Sum()
	dev := math.Abs(sum - 1.0)
	rec := model.CheckRecord{
		Name:         "Pillar weight normalisation",
		Status:       model.StatusPass,
		MaxDeviation: dev,
		Details:      fmt.Sprintf("Weights sum to %.12f", sum),
	}
	if dev > 1e-9 {
		rec.Status = model.StatusReview
	}
	return rec
}

// checkCoverage verifies the recomputed candidate set has identical
// membership (by planet name) to the stored table.
func (v *Validator) checkCoverage(recomputed, stored []model.CandidateRow) model.CheckRecord {
	inModel := nameSet(recomputed)
	inStored := nameSet(stored)

	missing, extra := 0, 0
	for name := range inModel {
		if !inStored[name] {
			missing++
		}
	}
	for name := range inStored {
		if !inModel[name] {
			extra++
		}
	}

	rec := model.CheckRecord{
		Name:         "Candidate coverage",
		Status:       model.StatusPass,
		MaxDeviation: float64(missing + extra),
		Details: fmt.Sprintf("Rows in model: %d; stored: %d; missing=%d; extra=%d",
			len(recomputed), len(stored), missing, extra),
	}
	if missing > 0 || extra > 0 {
		rec.Status = model.StatusReview
	}
	return rec
}

// checkScoreEquality diffs each recomputed pillar and the aggregate against
// the stored columns, joined by planet name.
func (v *Validator) checkScoreEquality(recomputed, stored []model.CandidateRow) []model.CheckRecord {
	byName := make(map[string]model.CandidateRow, len(stored))
	for _, r := range stored {
		byName[r.Name] = r
	}

	type column struct {
		name string
		pick func(model.CandidateRow) float64
	}
	columns := []column{
		{"Climate pillar equality", func(r model.CandidateRow) float64 { return r.Climate }},
		{"Structure pillar equality", func(r model.CandidateRow) float64 { return r.Structure }},
		{"Observability pillar equality", func(r model.CandidateRow) float64 { return r.Observability }},
		{"System pillar equality", func(r model.CandidateRow) float64 { return r.System }},
		{"Priority score equality", func(r model.CandidateRow) float64 { return r.Priority }},
	}

	records := make([]model.CheckRecord, 0, len(columns))
	for _, col := range columns {
		maxDev := 0.0
		compared := 0
		for _, m := range recomputed {
			s, ok := byName[m.Name]
			if !ok {
				continue
			}
			compared++
			if dev := math.Abs(col.pick(m) - col.pick(s)); dev > maxDev {
				maxDev = dev
			}
		}
		rec := model.CheckRecord{
			Name:         col.name,
			Status:       model.StatusPass,
			MaxDeviation: maxDev,
			Details:      fmt.Sprintf("Max abs deviation over %d rows: %.2e", compared, maxDev),
		}
		if maxDev > StoredTolerance {
			rec.Status = model.StatusReview
		}
		records = append(records, rec)
	}
	return records
}

// checkScoreRange verifies every stored pillar and aggregate value lies in
// the closed unit interval.
func (v *Validator) checkScoreRange(stored []model.CandidateRow) model.CheckRecord {
	maxDev := 0.0
	violations := 0
	for _, r := range stored {
		for _, val := range []float64{r.Climate, r.Structure, r.Observability, r.System, r.Priority} {
			var dev float64
			if val < 0 {
				dev = -val
			} else if val > 1 {
				dev = val - 1
			}
			if dev > 0 {
				violations++
				if dev > maxDev {
					maxDev = dev
				}
			}
		}
	}

	rec := model.CheckRecord{
		Name:         "Score range",
		Status:       model.StatusPass,
		MaxDeviation: maxDev,
		Details:      fmt.Sprintf("Values outside [0,1]: %d", violations),
	}
	if violations > 0 {
		rec.Status = model.StatusReview
	}
	return rec
}

// checkTierLabels verifies each stored tier matches the deterministic
// classifier applied to the stored aggregate score.
func (v *Validator) checkTierLabels(stored []model.CandidateRow) model.CheckRecord {
	mismatches := 0
	for _, r := range stored {
		if v.scorer.Classify(r.Priority) != r.Tier {
			mismatches++
		}
	}

	rec := model.CheckRecord{
		Name:         "Tier labels",
		Status:       model.StatusPass,
		MaxDeviation: float64(mismatches),
		Details:      fmt.Sprintf("Band mismatches: %d", mismatches),
	}
	if mismatches > 0 {
		rec.Status = model.StatusReview
	}
	return rec
}

// checkDistribution compares the tier distribution and the high-priority
// share between the stored and recomputed tables.
func (v *Validator) checkDistribution(recomputed, stored []model.CandidateRow) model.CheckRecord {
	modelShare := highShare(recomputed)
	storedShare := highShare(stored)
	dev := math.Abs(modelShare - storedShare)

	rec := model.CheckRecord{
		Name:         "Tier distribution",
		Status:       model.StatusPass,
		MaxDeviation: dev,
		Details: fmt.Sprintf("High-priority share model=%.4f stored=%.4f; counts model=%v stored=%v",
			modelShare, storedShare, tierCounts(recomputed), tierCounts(stored)),
	}
	if dev > StoredTolerance || !sameCounts(tierCounts(recomputed), tierCounts(stored)) {
		rec.Status = model.StatusReview
	}
	return rec
}

func nameSet(rows []model.CandidateRow) map[string]bool {
	set := make(map[string]bool, len(rows))
	for _, r := range rows {
		set[r.Name] = true
	}
	return set
}

func highShare(rows []model.CandidateRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	high := 0
	for _, r := range rows {
		if r.Tier == model.TierHighPriority {
			high++
		}
	}
	return float64(high) / float64(len(rows))
}

// tierCounts returns [context, follow-up, high-priority] counts.
func tierCounts(rows []model.CandidateRow) [3]int {
	var counts [3]int
	for _, r := range rows {
		counts[r.Tier.Rank()]++
	}
	return counts
}

func sameCounts(a, b [3]int) bool {
	return a == b
}
