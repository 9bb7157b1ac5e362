// Package score computes the four habitability pillars, the weighted
// priority aggregate, and the tier classification. All functions are pure:
// they read the candidate row and the profile, and nothing else.
package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/exorank/internal/model"
)

// Scorer applies one scoring profile to candidate rows.
type Scorer struct {
	profile model.Profile
}

// NewScorer validates the profile and returns a scorer.
func NewScorer(profile model.Profile) (*Scorer, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("scoring profile: %w", err)
	}
	return &Scorer{profile: profile}, nil
}

// Profile returns the profile the scorer was built with.
func (s *Scorer) Profile() model.Profile {
	return s.profile
}

// Climate is the mean of trapezoidal memberships over equilibrium
// temperature, insolation, log orbital period, and host star temperature.
func (s *Scorer) Climate(c model.CandidateRow) float64 {
	p := s.profile
	sum := TrapezoidMembership(c.EqTempK, p.EqTemp) +
		TrapezoidMembership(c.Insolation, p.Insol) +
		TrapezoidMembership(math.Log10(c.OrbitalPeriodDays), p.LogPeriod) +
		TrapezoidMembership(c.StarTempK, p.StarTemp)
	return clamp01(sum / 4)
}

// Structure is the mean of trapezoidal memberships over planet radius and
// mass.
func (s *Scorer) Structure(c model.CandidateRow) float64 {
	p := s.profile
	sum := TrapezoidMembership(c.RadiusEarth, p.Radius) +
		TrapezoidMembership(c.MassEarth, p.Mass)
	return clamp01(sum / 2)
}

// Observability mixes a decreasing logistic of visual magnitude, an
// increasing logistic of log transit depth, and a decreasing logistic of
// log distance with fixed component weights.
func (s *Scorer) Observability(c model.CandidateRow) float64 {
	p := s.profile
	v := p.Obs.Magnitude*LogisticFall(c.VMag, p.MagFall) +
		p.Obs.Depth*LogisticRise(math.Log10(c.TransitDepthPPM), p.DepthRise) +
		p.Obs.Distance*LogisticFall(math.Log10(c.DistancePc), p.DistFall)
	return clamp01(v)
}

// System scores dynamical simplicity: full marks for single-star systems,
// a fixed discount otherwise.
func (s *Scorer) System(c model.CandidateRow) float64 {
	if c.StarCount == 1 {
		return s.profile.SingleStar
	}
	return s.profile.MultiStar
}

// Aggregate combines pillar scores through the fixed weighted sum.
func (s *Scorer) Aggregate(climate, structure, observability, system float64) float64 {
	w := s.profile.Weights
	return clamp01(w.Climate*climate + w.Structure*structure +
		w.Observability*observability + w.System*system)
}

// Classify buckets a priority score into its tier. Bands are
// [High, 1], [Mid, High), [0, Mid).
func (s *Scorer) Classify(priority float64) model.Tier {
	switch {
	case priority >= s.profile.Tiers.High:
		return model.TierHighPriority
	case priority >= s.profile.Tiers.Mid:
		return model.TierFollowUp
	default:
		return model.TierContext
	}
}

// ScoreRow returns a copy of the row with all pillar scores, the priority
// aggregate, and the tier filled in. The input row is not modified.
func (s *Scorer) ScoreRow(c model.CandidateRow) model.CandidateRow {
	c.Climate = s.Climate(c)
	c.Structure = s.Structure(c)
	c.Observability = s.Observability(c)
	c.System = s.System(c)
	c.Priority = s.Aggregate(c.Climate, c.Structure, c.Observability, c.System)
	c.Tier = s.Classify(c.Priority)
	return c
}
