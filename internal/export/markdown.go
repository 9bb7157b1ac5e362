package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/exorank/internal/model"
)

// WriteTopMarkdown writes the human-readable top-N summary table.
func WriteTopMarkdown(path string, rows []model.CandidateRow, n int) error {
	if n > len(rows) {
		n = len(rows)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Top %d habitable-zone candidates\n\n", n)
	b.WriteString("| Planet | Priority | Band | Teq (K) | Radius (R⊕) | Period (d) | Vmag | Stars |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, r := range rows[:n] {
		fmt.Fprintf(&b, "| %s | %.4f | %s | %.0f | %.2f | %.1f | %.1f | %d |\n",
			r.Name, r.Priority, r.Tier, r.EqTempK, r.RadiusEarth,
			r.OrbitalPeriodDays, r.VMag, r.StarCount)
	}

	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("write top summary: %w", err)
	}
	return nil
}

// WriteValidationMarkdown writes the check table in the same layout the
// project has always published.
func WriteValidationMarkdown(path string, report model.ValidationReport) error {
	var b strings.Builder
	b.WriteString("# Validation report\n\n")
	fmt.Fprintf(&b, "Overall status: **%s**\n\n", report.Overall)
	b.WriteString("| Check | Status | Max deviation | Details |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, c := range report.Checks {
		fmt.Fprintf(&b, "| %s | %s | %.2e | %s |\n", c.Name, c.Status, c.MaxDeviation, c.Details)
	}

	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("write validation markdown: %w", err)
	}
	return nil
}

// WriteNarrative persists the narrative validation summary.
func WriteNarrative(path, narrative string) error {
	if err := os.WriteFile(path, []byte(narrative), 0o644); err != nil {
		return fmt.Errorf("write narrative summary: %w", err)
	}
	return nil
}
