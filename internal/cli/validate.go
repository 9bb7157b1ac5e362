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

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <snapshot.csv>",
	Short: "Recompute every score and diff against the stored table",
	Long: `Validate rebuilds the candidate set and every pillar score from the raw
snapshot and compares the results against the previously exported scored
table. Each check reports PASS or REVIEW; a REVIEW never aborts the run.

Checks:
- Pillar weights sum to 1
- Candidate coverage matches (no missing or extra planets)
- All stored scores lie in [0, 1]
- Stored priority bands match the deterministic classifier
- Tier distribution matches fresh recomputation
- Every pillar and the aggregate agree within 1e-6

Example:
  exorank validate data/ps_snapshot.csv
  exorank validate data/ps_snapshot.csv --out results
  exorank validate data/ps_snapshot.csv --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&outDir, "out", "results", "directory holding the stored table; validation artifacts go there too")
	validateCmd.Flags().IntVar(&workers, "workers", 0, "concurrent scoring workers (0 = sequential)")

	// LLM flags for the narrative summary
	validateCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narration of the validation report")
	validateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	validateCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runValidate(cmd *cobra.Command, args []string) error {
	snapshot := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Output.Dir = outDir
	cfg.Output.Verbose = verbose
	cfg.Scoring.Workers = workers

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	p, err := pipeline.New(cfg, model.DefaultProfile())
	if err != nil {
		return err
	}

	report, err := p.Validate(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}

	for _, c := range report.Checks {
		marker := "✓"
		if c.Status != model.StatusPass {
			marker = "!"
		}
		fmt.Printf("%s %-32s %s\n", marker, c.Name, c.Status)
	}
	fmt.Printf("\nOverall: %s\n", report.Overall)
	fmt.Printf("Report written to %s\n", cfg.Output.Dir)

	return nil
}
