package model

// CandidateRow is one planet that survived selection, with raw measurements,
// derived quantities, pillar scores, and the final classification.
// Rows are fully computed in one pass and never mutated afterwards.
type CandidateRow struct {
	Name     string `json:"pl_name"`  // Planet name, unique per default-parameter row
	HostName string `json:"hostname"` // Host star identifier

	EqTempK           float64 `json:"pl_eqt"`             // Equilibrium temperature (K)
	Insolation        float64 `json:"pl_insol"`           // Insolation flux (Earth = 1)
	InsolationDerived bool    `json:"insolation_derived"` // True if derived from EqTempK
	RadiusEarth       float64 `json:"pl_rade"`            // Planet radius (Earth radii)
	MassEarth         float64 `json:"pl_bmasse"`          // Planet mass (Earth masses)
	MassEstimated     bool    `json:"mass_estimated"`     // True if estimated from radius
	OrbitalPeriodDays float64 `json:"pl_orbper"`          // Orbital period (days)
	StarTempK         float64 `json:"st_teff"`            // Host star effective temperature (K)
	StarRadiusSun     float64 `json:"st_rad"`             // Host star radius (Solar radii)
	VMag              float64 `json:"sy_vmag"`            // Apparent visual magnitude
	DistancePc        float64 `json:"sy_dist"`            // Distance (parsec)
	StarCount         int     `json:"sy_snum"`            // Stars in the system

	TransitDepthPPM float64 `json:"transit_depth_ppm"` // (Rp/Rs)^2, floor-clamped

	Climate       float64 `json:"climate_score"`
	Structure     float64 `json:"structure_score"`
	Observability float64 `json:"observability_score"`
	System        float64 `json:"system_score"`
	Priority      float64 `json:"priority_score"`
	Tier          Tier    `json:"priority_band"`
}

// Tier is the ordinal priority band derived by thresholding the aggregate score.
type Tier string

const (
	TierContext      Tier = "Context"
	TierFollowUp     Tier = "Follow-up"
	TierHighPriority Tier = "High Priority"
)

// Rank orders tiers: Context < Follow-up < High Priority.
func (t Tier) Rank() int {
	switch t {
	case TierHighPriority:
		return 2
	case TierFollowUp:
		return 1
	default:
		return 0
	}
}

// ParseTier maps a stored band label back to a Tier. Unknown labels map to
// the zero value so the validator can flag them as mismatches.
func ParseTier(s string) Tier {
	switch s {
	case string(TierHighPriority):
		return TierHighPriority
	case string(TierFollowUp):
		return TierFollowUp
	case string(TierContext):
		return TierContext
	default:
		return ""
	}
}
