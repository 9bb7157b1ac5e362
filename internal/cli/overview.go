package cli

import (
	"fmt"

	"github.com/ppiankov/exorank/internal/catalog"
	"github.com/spf13/cobra"
)

// overviewCmd represents the overview command
var overviewCmd = &cobra.Command{
	Use:   "overview <snapshot.csv>",
	Short: "Print headline statistics for a snapshot",
	Long: `Overview loads a Planetary Systems snapshot and prints the headline
catalog statistics without scoring anything: total default-parameter
planets, the median discovery year, the temperate fraction among rows
with complete climate measurements, and the count of targets within
100 parsecs.

Example:
  exorank overview data/ps_snapshot.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(cmd *cobra.Command, args []string) error {
	rows, err := catalog.Load(args[0])
	if err != nil {
		return err
	}

	stats := catalog.Overview(rows)
	fmt.Printf("Planets (default parameter set): %d\n", stats.TotalPlanets)
	fmt.Printf("Median discovery year:           %.0f\n", stats.MedianDiscYear)
	fmt.Printf("Temperate fraction:              %.1f%%\n", stats.TemperateFraction*100)
	fmt.Printf("Targets within 100 pc:           %d\n", stats.NearbyTargets)

	return nil
}
