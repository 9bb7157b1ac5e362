package score

import (
	"math"

	"github.com/ppiankov/exorank/internal/model"
)

// TrapezoidMembership maps x to [0,1] through a four-breakpoint ramp:
// zero at or below A, linear rise to one between A and B, flat one between
// B and C, linear fall to zero between C and D, zero at or above D.
func TrapezoidMembership(x float64, t model.Trapezoid) float64 {
	if x >= t.B && x <= t.C {
		return 1
	}
	if x <= t.A || x >= t.D {
		return 0
	}
	if x < t.B {
		return (x - t.A) / (t.B - t.A)
	}
	return (t.D - x) / (t.D - t.C)
}

// LogisticFall is a decreasing logistic: 1 at small x, 0 at large x.
func LogisticFall(x float64, l model.Logistic) float64 {
	return 1 / (1 + math.Exp((x-l.Midpoint)/l.Width))
}

// LogisticRise is an increasing logistic: 0 at small x, 1 at large x.
func LogisticRise(x float64, l model.Logistic) float64 {
	return 1 / (1 + math.Exp((l.Midpoint-x)/l.Width))
}

// clamp01 guards aggregate results against floating-point drift outside the
// unit interval.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
