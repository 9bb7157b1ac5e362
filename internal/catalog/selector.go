package catalog

import (
	"math"

	"github.com/ppiankov/exorank/internal/model"
)

// Physical constants for derivations.
const (
	// Zero-albedo blackbody equilibrium temperature at 1 AU from the Sun.
	// Used to invert equilibrium temperature into insolation flux.
	blackbodyEqTempK = 278.3

	// Earth radius expressed in Solar radii, for transit depth.
	earthRadiusInSolar = 0.009158

	// Transit depth below this is indistinguishable from noise; the floor
	// also keeps log10(depth) well-defined.
	minTransitDepthPPM = 1.0

	// Breakpoint between the rocky and volatile mass-radius regimes.
	rockyRadiusLimit = 1.6
)

// DeriveInsolation returns the insolation flux proxy (Earth = 1) implied by
// an equilibrium temperature, via the fixed power law S = (T / 278.3 K)^4.
func DeriveInsolation(eqTempK float64) float64 {
	ratio := eqTempK / blackbodyEqTempK
	return ratio * ratio * ratio * ratio
}

// EstimateMass returns a mass estimate (Earth masses) from radius using a
// continuous two-regime power law: M = R^3.7 up to 1.6 Earth radii, then a
// shallower slope for volatile-rich planets.
func EstimateMass(radiusEarth float64) float64 {
	if radiusEarth <= rockyRadiusLimit {
		return math.Pow(radiusEarth, 3.7)
	}
	return math.Pow(rockyRadiusLimit, 3.7) * math.Pow(radiusEarth/rockyRadiusLimit, 1.7)
}

// TransitDepthPPM returns the fractional transit dimming in parts-per-million
// for a planet/star radius pair, floor-clamped at minTransitDepthPPM.
func TransitDepthPPM(radiusEarth, starRadiusSun float64) float64 {
	ratio := radiusEarth * earthRadiusInSolar / starRadiusSun
	depth := ratio * ratio * 1e6
	if depth < minTransitDepthPPM {
		return minTransitDepthPPM
	}
	return depth
}

// SelectCandidates filters the catalog down to rows with complete
// measurements (after derivation) and physically plausible values, and
// resolves each survivor into a CandidateRow ready for scoring.
//
// Rows failing a requirement or a bound are silently excluded; this is a
// data-quality filter, not an error. Output order follows input order, so
// the candidate set is deterministic for a given snapshot.
func SelectCandidates(rows []RawRow, profile model.Profile) []model.CandidateRow {
	candidates := make([]model.CandidateRow, 0, len(rows))
	for _, raw := range rows {
		if c, ok := resolve(raw, profile.Bounds); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// resolve checks completeness, performs the permitted derivations, and
// applies the plausibility bounds.
func resolve(raw RawRow, b model.SelectorBounds) (model.CandidateRow, bool) {
	var c model.CandidateRow

	// Insolation is the one field with a derivation path: when absent it
	// can be recovered from the equilibrium temperature.
	insol := raw.Insolation
	derived := false
	if insol == nil && raw.EqTempK != nil {
		v := DeriveInsolation(*raw.EqTempK)
		insol = &v
		derived = true
	}

	mass := raw.MassEarth
	estimated := false
	if mass == nil && raw.RadiusEarth != nil {
		v := EstimateMass(*raw.RadiusEarth)
		mass = &v
		estimated = true
	}

	if raw.EqTempK == nil || insol == nil || raw.RadiusEarth == nil || mass == nil ||
		raw.OrbitalPeriodDays == nil || raw.StarTempK == nil || raw.StarRadiusSun == nil ||
		raw.VMag == nil || raw.DistancePc == nil || raw.StarCount == nil {
		return c, false
	}

	if !b.EqTempK.Contains(*raw.EqTempK) ||
		!b.Insolation.Contains(*insol) ||
		!b.RadiusEarth.Contains(*raw.RadiusEarth) ||
		!b.PeriodDays.Contains(*raw.OrbitalPeriodDays) ||
		!b.StarTempK.Contains(*raw.StarTempK) ||
		!b.StarRadiusSun.Contains(*raw.StarRadiusSun) ||
		!b.VMag.Contains(*raw.VMag) ||
		!b.DistancePc.Contains(*raw.DistancePc) ||
		*raw.StarCount < 1 {
		return c, false
	}

	c = model.CandidateRow{
		Name:              raw.Name,
		HostName:          raw.HostName,
		EqTempK:           *raw.EqTempK,
		Insolation:        *insol,
		InsolationDerived: derived,
		RadiusEarth:       *raw.RadiusEarth,
		MassEarth:         *mass,
		MassEstimated:     estimated,
		OrbitalPeriodDays: *raw.OrbitalPeriodDays,
		StarTempK:         *raw.StarTempK,
		StarRadiusSun:     *raw.StarRadiusSun,
		VMag:              *raw.VMag,
		DistancePc:        *raw.DistancePc,
		StarCount:         *raw.StarCount,
		TransitDepthPPM:   TransitDepthPPM(*raw.RadiusEarth, *raw.StarRadiusSun),
	}
	return c, true
}
