package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/exorank/internal/catalog"
	"github.com/ppiankov/exorank/internal/dashboard"
	"github.com/ppiankov/exorank/internal/export"
	"github.com/ppiankov/exorank/internal/model"
	"github.com/ppiankov/exorank/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	dashDir      string
	dashSnapshot string
	dashTopN     int
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Assemble the HTML briefing from exported artifacts",
	Long: `Dashboard reads the scored table and the authoritative comparison from
the output directory and assembles a static HTML briefing. The inputs
are integrity-checked before assembly: a briefing is never written from
an empty, duplicated, or out-of-range table.

With --snapshot the briefing also includes the catalog overview panel.

Example:
  exorank dashboard
  exorank dashboard --out results --snapshot data/ps_snapshot.csv`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().StringVar(&dashDir, "out", "results", "directory holding the exported artifacts; index.html goes there too")
	dashboardCmd.Flags().StringVar(&dashSnapshot, "snapshot", "", "snapshot CSV for the catalog overview panel (optional)")
	dashboardCmd.Flags().IntVar(&dashTopN, "top", 20, "candidates shown in the briefing table")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	rows, err := export.ReadScoredCSV(filepath.Join(dashDir, pipeline.ScoredTableFile))
	if err != nil {
		return fmt.Errorf("dashboard failed: %w (run `exorank rank` first)", err)
	}

	comparison, err := export.ReadComparisonCSV(filepath.Join(dashDir, pipeline.ComparisonFile))
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "comparison table unavailable: %v\n", err)
		}
		comparison = model.ComparisonResult{Source: "unavailable"}
	}

	var overview *model.OverviewStats
	if dashSnapshot != "" {
		raw, err := catalog.Load(dashSnapshot)
		if err != nil {
			return err
		}
		stats := catalog.Overview(raw)
		overview = &stats
	}

	path, err := dashboard.Build(dashDir, rows, comparison, overview, dashTopN)
	if err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	fmt.Printf("Dashboard written to %s\n", path)

	return nil
}
