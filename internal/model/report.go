package model

// CheckStatus is the outcome of a single validation check.
type CheckStatus string

const (
	StatusPass   CheckStatus = "PASS"
	StatusReview CheckStatus = "REVIEW"
)

// CheckRecord is one validation check with its numeric evidence.
type CheckRecord struct {
	Name         string      `json:"name"`
	Status       CheckStatus `json:"status"`
	MaxDeviation float64     `json:"max_deviation"`
	Details      string      `json:"details"`
}

// ValidationReport is the machine-readable validation artifact: every check
// with PASS/REVIEW status plus the observed deviations.
type ValidationReport struct {
	SnapshotPath string        `json:"snapshot_path"`
	StoredPath   string        `json:"stored_path"`
	Overall      CheckStatus   `json:"overall"`
	Checks       []CheckRecord `json:"checks"`
}

// Overall returns REVIEW if any check requires review.
func OverallStatus(checks []CheckRecord) CheckStatus {
	for _, c := range checks {
		if c.Status != StatusPass {
			return StatusReview
		}
	}
	return StatusPass
}

// ComparisonRow is one candidate joined against the authoritative reference
// list by planet name.
type ComparisonRow struct {
	Name       string  `json:"pl_name"`
	Priority   float64 `json:"priority_score"`
	Tier       Tier    `json:"priority_band"`
	InCatalog  bool    `json:"in_catalog"`
	Confidence string  `json:"phl_confidence,omitempty"`
	Status     string  `json:"status"` // "match" or "investigate"
}

// ComparisonResult is the full comparison output plus provenance of the
// reference list that was actually used.
type ComparisonResult struct {
	Rows          []ComparisonRow `json:"rows"`
	Source        string          `json:"source"` // "remote", "cache", or "fallback"
	AgreementRate float64         `json:"agreement_rate"`
	HighPriority  int             `json:"high_priority"`
	Matched       int             `json:"matched"`
}

// OverviewStats are the headline catalog statistics used in documentation.
type OverviewStats struct {
	TotalPlanets      int     `json:"total_planets"`
	MedianDiscYear    float64 `json:"median_disc_year"`
	TemperateFraction float64 `json:"temperate_fraction"`
	NearbyTargets     int     `json:"nearby_targets"`
}
