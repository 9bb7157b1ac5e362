package dashboard

import (
	"os"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/ppiankov/exorank/internal/model"
)

func scoredRows() []model.CandidateRow {
	return []model.CandidateRow{
		{Name: "Earth twin", HostName: "Sol twin", Priority: 0.94, Tier: model.TierHighPriority,
			Climate: 1, Structure: 1, Observability: 0.77, System: 1},
		{Name: "Kepler-442 b", HostName: "Kepler-442", Priority: 0.78, Tier: model.TierFollowUp,
			Climate: 0.87, Structure: 1, Observability: 0.34, System: 1},
		{Name: "Dim c", HostName: "Dim", Priority: 0.41, Tier: model.TierContext,
			Climate: 0.5, Structure: 0.6, Observability: 0.05, System: 0.65},
	}
}

func sampleComparison() model.ComparisonResult {
	return model.ComparisonResult{
		Source:        "remote",
		HighPriority:  1,
		Matched:       1,
		AgreementRate: 1.0,
	}
}

func TestBuild_WritesWellFormedHTML(t *testing.T) {
	dir := t.TempDir()
	path, err := Build(dir, scoredRows(), sampleComparison(), nil, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	doc, err := html.Parse(f)
	if err != nil {
		t.Fatalf("generated HTML does not parse: %v", err)
	}

	// The briefing table holds exactly topN data rows.
	if got := countElements(doc, "tbody", "tr"); got != 2 {
		t.Errorf("briefing table has %d rows, want 2", got)
	}
	text := collectText(doc)
	if !strings.Contains(text, "Earth twin") {
		t.Error("top candidate missing from briefing")
	}
	if strings.Contains(text, "Dim c") {
		t.Error("candidate beyond top-N leaked into briefing")
	}
	if !strings.Contains(text, "1 high priority") {
		t.Errorf("band counts missing: %s", text)
	}
	if !strings.Contains(text, "100% agreement") {
		t.Error("agreement line missing")
	}
}

func TestBuild_OverviewPanelOptional(t *testing.T) {
	dir := t.TempDir()
	overview := &model.OverviewStats{
		TotalPlanets: 5000, MedianDiscYear: 2016,
		TemperateFraction: 0.031, NearbyTargets: 800,
	}
	path, err := Build(dir, scoredRows(), sampleComparison(), overview, 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "5000 confirmed planets") {
		t.Error("overview panel missing")
	}
}

func TestBuild_RejectsEmptyTable(t *testing.T) {
	if _, err := Build(t.TempDir(), nil, sampleComparison(), nil, 10); err == nil {
		t.Fatal("expected error for empty scored table")
	}
}

func TestBuild_RejectsDuplicateNames(t *testing.T) {
	rows := scoredRows()
	rows[1].Name = rows[0].Name
	_, err := Build(t.TempDir(), rows, sampleComparison(), nil, 10)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate-name error, got %v", err)
	}
}

func TestBuild_RejectsOutOfRangeScores(t *testing.T) {
	rows := scoredRows()
	rows[2].Priority = 1.2
	_, err := Build(t.TempDir(), rows, sampleComparison(), nil, 10)
	if err == nil || !strings.Contains(err.Error(), "outside [0,1]") {
		t.Fatalf("expected range error, got %v", err)
	}
}

// countElements counts descendants with the given tag inside the first
// ancestor tag match.
func countElements(n *html.Node, ancestor, tag string) int {
	if n.Type == html.ElementNode && n.Data == ancestor {
		return countTag(n, tag)
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += countElements(c, ancestor, tag)
	}
	return total
}

func countTag(n *html.Node, tag string) int {
	count := 0
	if n.Type == html.ElementNode && n.Data == tag {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countTag(c, tag)
	}
	return count
}

func collectText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
