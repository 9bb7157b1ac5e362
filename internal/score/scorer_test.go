package score

import (
	"math"
	"testing"

	"github.com/ppiankov/exorank/internal/model"
)

func earthLike() model.CandidateRow {
	return model.CandidateRow{
		Name:              "Earth twin",
		HostName:          "Sol twin",
		EqTempK:           288,
		Insolation:        1.0,
		RadiusEarth:       1.0,
		MassEarth:         1.0,
		OrbitalPeriodDays: 365.25,
		StarTempK:         5778,
		StarRadiusSun:     1.0,
		VMag:              4.8,
		DistancePc:        10,
		StarCount:         1,
		TransitDepthPPM:   83.9,
	}
}

func TestTrapezoidMembership_Breakpoints(t *testing.T) {
	trap := model.Trapezoid{A: 150, B: 240, C: 320, D: 450}

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"below A", 100, 0},
		{"exactly A", 150, 0},
		{"rising midpoint", 195, 0.5},
		{"exactly B", 240, 1},
		{"plateau", 280, 1},
		{"exactly C", 320, 1},
		{"falling midpoint", 385, 0.5},
		{"exactly D", 450, 0},
		{"above D", 500, 0},
	}
	for _, tc := range tests {
		got := TrapezoidMembership(tc.x, trap)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("%s: TrapezoidMembership(%v) = %v, want %v", tc.name, tc.x, got, tc.want)
		}
	}
}

func TestTrapezoidMembership_DegenerateShoulder(t *testing.T) {
	// A == B collapses the rising ramp; the breakpoint itself scores 1.
	trap := model.Trapezoid{A: 1, B: 1, C: 2, D: 3}
	if got := TrapezoidMembership(1, trap); got != 1 {
		t.Errorf("membership at collapsed shoulder = %v, want 1", got)
	}
	if got := TrapezoidMembership(0.999, trap); got != 0 {
		t.Errorf("membership just below collapsed shoulder = %v, want 0", got)
	}
}

func TestLogistic_Midpoint(t *testing.T) {
	l := model.Logistic{Midpoint: 11.5, Width: 1.8}
	if got := LogisticFall(11.5, l); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("LogisticFall at midpoint = %v, want 0.5", got)
	}
	if got := LogisticRise(11.5, l); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("LogisticRise at midpoint = %v, want 0.5", got)
	}
	// Fall and rise are mirror images.
	if f, r := LogisticFall(13, l), LogisticRise(10, l); math.Abs(f-r) > 1e-12 {
		t.Errorf("fall(13)=%v and rise(10)=%v should mirror around the midpoint", f, r)
	}
}

func TestNewScorer_RejectsBadWeights(t *testing.T) {
	p := model.DefaultProfile()
	p.Weights.Climate = 0.5 // sum now exceeds 1
	if _, err := NewScorer(p); err == nil {
		t.Fatal("expected error for weights that do not sum to 1")
	}
}

func TestScorer_ScoreRow_EarthTwin(t *testing.T) {
	scorer, err := NewScorer(model.DefaultProfile())
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}

	row := scorer.ScoreRow(earthLike())

	if row.Climate != 1.0 {
		t.Errorf("climate = %v, want 1.0 (all inputs inside plateau)", row.Climate)
	}
	if row.Structure != 1.0 {
		t.Errorf("structure = %v, want 1.0", row.Structure)
	}
	if row.System != 1.0 {
		t.Errorf("system = %v, want 1.0 for single star", row.System)
	}
	if row.Observability < 0.7 || row.Observability > 0.85 {
		t.Errorf("observability = %v, want bright nearby target in [0.7, 0.85]", row.Observability)
	}
	if row.Priority < 0.80 {
		t.Errorf("priority = %v, want >= 0.80 for an Earth twin", row.Priority)
	}
	if row.Tier != model.TierHighPriority {
		t.Errorf("tier = %q, want %q", row.Tier, model.TierHighPriority)
	}
}

func TestScorer_ScoreRow_FaintTargetNeverHighPriority(t *testing.T) {
	scorer, err := NewScorer(model.DefaultProfile())
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}

	// Perfect climate and structure, but faint, distant, shallow transit.
	row := earthLike()
	row.VMag = 18
	row.DistancePc = 1500
	row.TransitDepthPPM = 5

	scored := scorer.ScoreRow(row)
	if scored.Observability >= 0.1 {
		t.Fatalf("observability = %v, want < 0.1 for this target", scored.Observability)
	}
	if scored.Tier == model.TierHighPriority {
		t.Errorf("faint target classified %q; observability must be able to veto the top band", scored.Tier)
	}
}

func TestScorer_ScoreRow_DoesNotMutateInput(t *testing.T) {
	scorer, _ := NewScorer(model.DefaultProfile())
	row := earthLike()
	_ = scorer.ScoreRow(row)
	if row.Priority != 0 || row.Tier != "" {
		t.Errorf("input row mutated: priority=%v tier=%q", row.Priority, row.Tier)
	}
}

func TestScorer_System_MultiStarDiscount(t *testing.T) {
	scorer, _ := NewScorer(model.DefaultProfile())
	row := earthLike()
	row.StarCount = 2
	if got := scorer.System(row); got != 0.65 {
		t.Errorf("system score for binary = %v, want 0.65", got)
	}
}

func TestScorer_Classify_Boundaries(t *testing.T) {
	scorer, _ := NewScorer(model.DefaultProfile())

	tests := []struct {
		priority float64
		want     model.Tier
	}{
		{1.0, model.TierHighPriority},
		{0.80, model.TierHighPriority},
		{0.7999999, model.TierFollowUp},
		{0.60, model.TierFollowUp},
		{0.5999999, model.TierContext},
		{0.0, model.TierContext},
	}
	for _, tc := range tests {
		if got := scorer.Classify(tc.priority); got != tc.want {
			t.Errorf("Classify(%v) = %q, want %q", tc.priority, got, tc.want)
		}
	}
}

func TestScorer_Aggregate_MonotonicInEachPillar(t *testing.T) {
	scorer, _ := NewScorer(model.DefaultProfile())
	base := scorer.Aggregate(0.5, 0.5, 0.5, 0.5)
	if up := scorer.Aggregate(0.9, 0.5, 0.5, 0.5); up <= base {
		t.Errorf("raising climate did not raise the aggregate: %v <= %v", up, base)
	}
	if up := scorer.Aggregate(0.5, 0.5, 0.9, 0.5); up <= base {
		t.Errorf("raising observability did not raise the aggregate: %v <= %v", up, base)
	}
}

func TestScorer_AllScoresInUnitInterval(t *testing.T) {
	scorer, _ := NewScorer(model.DefaultProfile())

	rows := []model.CandidateRow{
		earthLike(),
		{EqTempK: 150, Insolation: 0.05, RadiusEarth: 0.3, MassEarth: 0.05,
			OrbitalPeriodDays: 1, StarTempK: 3500, VMag: 18, DistancePc: 2000,
			StarCount: 3, TransitDepthPPM: 1},
		{EqTempK: 450, Insolation: 5, RadiusEarth: 4, MassEarth: 300,
			OrbitalPeriodDays: 800, StarTempK: 7500, VMag: 0, DistancePc: 1,
			StarCount: 1, TransitDepthPPM: 1e6},
	}
	for i, row := range rows {
		scored := scorer.ScoreRow(row)
		for name, v := range map[string]float64{
			"climate": scored.Climate, "structure": scored.Structure,
			"observability": scored.Observability, "system": scored.System,
			"priority": scored.Priority,
		} {
			if v < 0 || v > 1 {
				t.Errorf("row %d: %s = %v outside [0,1]", i, name, v)
			}
		}
	}
}
