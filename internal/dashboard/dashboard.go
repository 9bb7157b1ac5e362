// Package dashboard assembles a static HTML briefing from the exported
// scored table and comparison. Input tables are integrity-checked before
// assembly so a corrupted export cannot be published silently.
package dashboard

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/ppiankov/exorank/internal/model"
)

// Data is everything the briefing template renders.
type Data struct {
	Title      string
	Top        []model.CandidateRow
	High       int
	FollowUp   int
	Context    int
	Total      int
	Comparison model.ComparisonResult
	Overview   *model.OverviewStats
}

// Build validates the inputs, renders the briefing, and writes index.html
// under dir.
func Build(dir string, rows []model.CandidateRow, comparison model.ComparisonResult, overview *model.OverviewStats, topN int) (string, error) {
	if err := checkIntegrity(rows); err != nil {
		return "", err
	}

	if topN <= 0 || topN > len(rows) {
		topN = len(rows)
	}
	data := Data{
		Title:      "Exoplanet Follow-up Priority Briefing",
		Top:        rows[:topN],
		Total:      len(rows),
		Comparison: comparison,
		Overview:   overview,
	}
	for _, r := range rows {
		switch r.Tier {
		case model.TierHighPriority:
			data.High++
		case model.TierFollowUp:
			data.FollowUp++
		default:
			data.Context++
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create dashboard dir: %w", err)
	}
	path := filepath.Join(dir, "index.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create dashboard: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := briefingTemplate.Execute(f, data); err != nil {
		return "", fmt.Errorf("render dashboard: %w", err)
	}
	return path, nil
}

// checkIntegrity rejects tables that would render a misleading briefing:
// empty input, duplicate planet names, or scores outside the unit interval.
func checkIntegrity(rows []model.CandidateRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("scored table is empty; run `exorank rank` first")
	}
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if seen[r.Name] {
			return fmt.Errorf("scored table invalid: duplicate planet %q", r.Name)
		}
		seen[r.Name] = true
		for _, v := range []float64{r.Climate, r.Structure, r.Observability, r.System, r.Priority} {
			if v < 0 || v > 1 {
				return fmt.Errorf("scored table invalid: %s has score %g outside [0,1]", r.Name, v)
			}
		}
	}
	return nil
}

var briefingTemplate = template.Must(template.New("briefing").Funcs(template.FuncMap{
	"mulpct": func(v float64) float64 { return v * 100 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    body { font-family: 'Helvetica Neue', Arial, sans-serif; margin: 0; padding: 0; background: #0c1220; color: #f5f7ff; }
    header { padding: 2rem 1.5rem; background: linear-gradient(135deg, #1c2340, #101525); }
    main { padding: 1rem 1.5rem 3rem; max-width: 1100px; margin: 0 auto; }
    h1 { margin: 0; font-size: 2.2rem; }
    h2 { margin-top: 2.5rem; color: #9ad0ff; }
    p { line-height: 1.6; }
    .card { background: rgba(18, 24, 45, 0.92); border-radius: 12px; padding: 1.2rem; margin-top: 1.2rem; box-shadow: 0 12px 28px rgba(0, 0, 0, 0.35); }
    table { width: 100%; border-collapse: collapse; margin-top: 1rem; }
    th, td { padding: 0.4rem 0.6rem; text-align: left; border-bottom: 1px solid #2a3354; }
    th { color: #9ad0ff; }
    .band-high { color: #7cf29c; }
    .band-mid { color: #ffd97c; }
    .band-low { color: #9aa4c3; }
    footer { text-align: center; padding: 1.5rem; font-size: 0.85rem; color: #9aa4c3; }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p>Priority-ranked habitable-zone candidates from the latest Planetary Systems snapshot, with authoritative-list agreement.</p>
  </header>
  <main>
    {{if .Overview}}
    <section class="card">
      <h2>Catalog overview</h2>
      <p>{{.Overview.TotalPlanets}} confirmed planets in the default parameter set; median discovery year {{printf "%.0f" .Overview.MedianDiscYear}}; {{printf "%.1f" (mulpct .Overview.TemperateFraction)}}% temperate among fully measured rows; {{.Overview.NearbyTargets}} targets within 100 pc.</p>
    </section>
    {{end}}
    <section class="card">
      <h2>Priority bands</h2>
      <p>{{.Total}} scored candidates:
        <span class="band-high">{{.High}} high priority</span>,
        <span class="band-mid">{{.FollowUp}} follow-up</span>,
        <span class="band-low">{{.Context}} context</span>.</p>
    </section>
    <section class="card">
      <h2>Top candidates</h2>
      <table>
        <thead>
          <tr><th>Planet</th><th>Host</th><th>Priority</th><th>Band</th><th>Climate</th><th>Structure</th><th>Observability</th></tr>
        </thead>
        <tbody>
          {{range .Top}}
          <tr>
            <td>{{.Name}}</td>
            <td>{{.HostName}}</td>
            <td>{{printf "%.3f" .Priority}}</td>
            <td>{{.Tier}}</td>
            <td>{{printf "%.3f" .Climate}}</td>
            <td>{{printf "%.3f" .Structure}}</td>
            <td>{{printf "%.3f" .Observability}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
    </section>
    <section class="card">
      <h2>Authoritative agreement</h2>
      <p>Reference list source: {{.Comparison.Source}}. {{.Comparison.Matched}} candidates appear in the authoritative habitable list; over the {{.Comparison.HighPriority}} high-priority candidates that is {{printf "%.0f" (mulpct .Comparison.AgreementRate)}}% agreement.</p>
    </section>
  </main>
  <footer>
    Generated by exorank dashboard. Integrity checks executed before export.
  </footer>
</body>
</html>
`))
