package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/exorank/internal/model"
	"github.com/ppiankov/exorank/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outDir      string
	topN        int
	workers     int
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFetch     bool
	refURL      string
	refLocal    string
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank <snapshot.csv>",
	Short: "Score a Planetary Systems snapshot and export the priority tables",
	Long: `Rank loads a NASA Exoplanet Archive Planetary Systems CSV snapshot and:
- Keeps only default-parameter rows with complete, physically plausible inputs
- Scores climate, structure, observability, and system-architecture pillars
- Aggregates them into one priority score and assigns a priority band
- Exports the full scored table, a top-N Markdown summary, and a
  comparison of the high-priority set against the PHL habitable list

Example:
  exorank rank data/ps_snapshot.csv
  exorank rank data/ps_snapshot.csv --out results --top 20
  exorank rank data/ps_snapshot.csv --no-fetch --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)

	// Output flags
	rankCmd.Flags().StringVar(&outDir, "out", "results", "output directory for exported artifacts")
	rankCmd.Flags().IntVar(&topN, "top", 20, "rows in the Markdown top summary")
	rankCmd.Flags().IntVar(&workers, "workers", 0, "concurrent scoring workers (0 = sequential)")

	// HTTP flags for the reference-list fetch
	rankCmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "HTTP timeout for the reference-list fetch")
	rankCmd.Flags().StringVar(&userAgent, "ua", "Exorank/0.1 (+https://github.com/ppiankov/exorank)", "HTTP User-Agent")
	rankCmd.Flags().Int64Var(&maxBytes, "max-bytes", 50_000_000, "max response bytes to read")
	rankCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	rankCmd.Flags().BoolVar(&noFetch, "no-fetch", false, "skip the live reference fetch and use the bundled local list")
	rankCmd.Flags().StringVar(&refURL, "ref-url", "", "override the authoritative reference-list URL")
	rankCmd.Flags().StringVar(&refLocal, "ref-local", "", "override the local reference-list fallback path")
}

func runRank(cmd *cobra.Command, args []string) error {
	snapshot := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg := buildConfig()
	p, err := pipeline.New(cfg, model.DefaultProfile())
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Snapshot: %s\n", snapshot)
		fmt.Fprintf(os.Stderr, "Output:   %s\n", cfg.Output.Dir)
		fmt.Fprintln(os.Stderr)
	}

	result, err := p.Rank(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("rank failed: %w", err)
	}

	counts := map[model.Tier]int{}
	for _, c := range result.Candidates {
		counts[c.Tier]++
	}
	fmt.Printf("Scored %d candidates: %d high priority, %d follow-up, %d context\n",
		len(result.Candidates),
		counts[model.TierHighPriority], counts[model.TierFollowUp], counts[model.TierContext])
	fmt.Printf("Reference list (%s): %d/%d high-priority candidates matched (%.0f%% agreement)\n",
		result.Comparison.Source, result.Comparison.Matched, result.Comparison.HighPriority,
		result.Comparison.AgreementRate*100)
	fmt.Printf("Artifacts written to %s\n", cfg.Output.Dir)

	return nil
}

// buildConfig merges defaults with the rank flag set.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.Cache.Enabled = !noCache
	cfg.Output.Dir = outDir
	cfg.Output.TopN = topN
	cfg.Output.Verbose = verbose
	cfg.Scoring.Workers = workers
	if noFetch {
		cfg.Reference.URL = ""
	}
	if refURL != "" {
		cfg.Reference.URL = refURL
	}
	if refLocal != "" {
		cfg.Reference.LocalPath = refLocal
	}
	return cfg
}
