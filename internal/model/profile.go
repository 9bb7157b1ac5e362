package model

import (
	"fmt"
	"math"
)

// Trapezoid holds the four breakpoints of a membership ramp: zero below A,
// linear rise to one between A and B, flat one between B and C, linear fall
// to zero between C and D, zero above D.
type Trapezoid struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
	C float64 `json:"c" yaml:"c"`
	D float64 `json:"d" yaml:"d"`
}

// Validate checks breakpoint ordering.
func (t Trapezoid) Validate() error {
	if !(t.A <= t.B && t.B <= t.C && t.C <= t.D) {
		return fmt.Errorf("trapezoid breakpoints out of order: %.3f %.3f %.3f %.3f", t.A, t.B, t.C, t.D)
	}
	return nil
}

// Logistic parameterizes 1 / (1 + exp(±(x - Midpoint) / Width)).
type Logistic struct {
	Midpoint float64 `json:"midpoint" yaml:"midpoint"`
	Width    float64 `json:"width" yaml:"width"`
}

// Weights defines the relative importance of the four pillars.
// All weights must sum to 1.0.
type Weights struct {
	Climate       float64 `json:"climate" yaml:"climate"`
	Structure     float64 `json:"structure" yaml:"structure"`
	Observability float64 `json:"observability" yaml:"observability"`
	System        float64 `json:"system" yaml:"system"`
}

// Sum returns the total of all pillar weights.
func (w Weights) Sum() float64 {
	return w.Climate + w.Structure + w.Observability + w.System
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w Weights) Validate() error {
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("pillar weights sum to %.12f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Climate, w.Structure, w.Observability, w.System} {
		if v < 0 {
			return fmt.Errorf("negative pillar weight: %f", v)
		}
	}
	return nil
}

// ObsWeights defines the fixed mix of the three observability components.
type ObsWeights struct {
	Magnitude float64 `json:"magnitude" yaml:"magnitude"`
	Depth     float64 `json:"depth" yaml:"depth"`
	Distance  float64 `json:"distance" yaml:"distance"`
}

// Sum returns the total of the observability component weights.
func (w ObsWeights) Sum() float64 {
	return w.Magnitude + w.Depth + w.Distance
}

// Thresholds holds the two tier cutoffs. Bands are [High, 1], [Mid, High),
// [0, Mid).
type Thresholds struct {
	High float64 `json:"high" yaml:"high"`
	Mid  float64 `json:"mid" yaml:"mid"`
}

// Range is an inclusive plausibility bound on a raw measurement.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies within the inclusive range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// SelectorBounds are the fixed plausibility filters applied before scoring.
type SelectorBounds struct {
	EqTempK       Range `json:"eq_temp_k" yaml:"eq_temp_k"`
	Insolation    Range `json:"insolation" yaml:"insolation"`
	RadiusEarth   Range `json:"radius_earth" yaml:"radius_earth"`
	PeriodDays    Range `json:"period_days" yaml:"period_days"`
	StarTempK     Range `json:"star_temp_k" yaml:"star_temp_k"`
	StarRadiusSun Range `json:"star_radius_sun" yaml:"star_radius_sun"`
	VMag          Range `json:"v_mag" yaml:"v_mag"`
	DistancePc    Range `json:"distance_pc" yaml:"distance_pc"`
}

// Profile is the immutable scoring configuration: membership breakpoints,
// logistic parameters, pillar weights, and tier thresholds. It is passed
// into the scorer and classifier explicitly so scoring stays pure.
type Profile struct {
	// Climate pillar memberships.
	EqTemp    Trapezoid `json:"eq_temp" yaml:"eq_temp"`
	Insol     Trapezoid `json:"insolation" yaml:"insolation"`
	LogPeriod Trapezoid `json:"log_period" yaml:"log_period"`
	StarTemp  Trapezoid `json:"star_temp" yaml:"star_temp"`

	// Structure pillar memberships.
	Radius Trapezoid `json:"radius" yaml:"radius"`
	Mass   Trapezoid `json:"mass" yaml:"mass"`

	// Observability pillar logistics. MagFall and DistFall are decreasing,
	// DepthRise is increasing over log10(transit depth ppm).
	MagFall   Logistic   `json:"mag_fall" yaml:"mag_fall"`
	DepthRise Logistic   `json:"depth_rise" yaml:"depth_rise"`
	DistFall  Logistic   `json:"dist_fall" yaml:"dist_fall"`
	Obs       ObsWeights `json:"obs_weights" yaml:"obs_weights"`

	// System pillar: single-star systems score SingleStar, everything
	// else MultiStar.
	SingleStar float64 `json:"single_star" yaml:"single_star"`
	MultiStar  float64 `json:"multi_star" yaml:"multi_star"`

	Weights Weights        `json:"weights" yaml:"weights"`
	Tiers   Thresholds     `json:"tiers" yaml:"tiers"`
	Bounds  SelectorBounds `json:"bounds" yaml:"bounds"`
}

// DefaultProfile returns the trapezoidal/logistic scoring revision.
func DefaultProfile() Profile {
	return Profile{
		EqTemp:    Trapezoid{A: 150, B: 240, C: 320, D: 450},
		Insol:     Trapezoid{A: 0.05, B: 0.8, C: 1.6, D: 5.0},
		LogPeriod: Trapezoid{A: 0.0, B: 2.0, C: 2.8, D: math.Log10(800)},
		StarTemp:  Trapezoid{A: 3500, B: 4800, C: 6300, D: 7500},

		Radius: Trapezoid{A: 0.4, B: 0.8, C: 1.6, D: 2.5},
		Mass:   Trapezoid{A: 0.1, B: 0.5, C: 3.0, D: 10.0},

		MagFall:   Logistic{Midpoint: 11.5, Width: 1.8},
		DepthRise: Logistic{Midpoint: 2.0, Width: 0.6},
		DistFall:  Logistic{Midpoint: 1.7, Width: 0.4},
		Obs:       ObsWeights{Magnitude: 0.40, Depth: 0.35, Distance: 0.25},

		SingleStar: 1.0,
		MultiStar:  0.65,

		Weights: Weights{Climate: 0.42, Structure: 0.23, Observability: 0.25, System: 0.10},
		Tiers:   Thresholds{High: 0.80, Mid: 0.60},

		Bounds: SelectorBounds{
			EqTempK:       Range{Min: 150, Max: 450},
			Insolation:    Range{Min: 0.05, Max: 5},
			RadiusEarth:   Range{Min: 0.3, Max: 4.0},
			PeriodDays:    Range{Min: 1, Max: 800},
			StarTempK:     Range{Min: 3500, Max: 7500},
			StarRadiusSun: Range{Min: 0.1, Max: 10},
			VMag:          Range{Min: 0, Max: 18},
			DistancePc:    Range{Min: 1, Max: 2000},
		},
	}
}

// Validate checks internal consistency of the profile.
func (p Profile) Validate() error {
	for name, t := range map[string]Trapezoid{
		"eq_temp": p.EqTemp, "insolation": p.Insol, "log_period": p.LogPeriod,
		"star_temp": p.StarTemp, "radius": p.Radius, "mass": p.Mass,
	} {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if err := p.Weights.Validate(); err != nil {
		return err
	}
	if math.Abs(p.Obs.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("observability component weights sum to %.12f, must sum to 1.0", p.Obs.Sum())
	}
	if !(0 <= p.Tiers.Mid && p.Tiers.Mid < p.Tiers.High && p.Tiers.High <= 1) {
		return fmt.Errorf("tier thresholds out of order: mid=%.3f high=%.3f", p.Tiers.Mid, p.Tiers.High)
	}
	return nil
}
