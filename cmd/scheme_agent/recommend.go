package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jatin/yojana-sahayak/internal/config"
	"github.com/jatin/yojana-sahayak/internal/observability"
	"github.com/jatin/yojana-sahayak/internal/pipeline"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [text]",
	Short: "Recommend schemes for a free-text self-description",
	Long: `Extracts a structured profile from the given text, filters the catalog by
eligibility and prints a ranked shortlist.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecommend,
}

var (
	recommendConfigPath string
	recommendCatalog    string
	recommendAPIKey     string
	recommendRerank     bool
	recommendLimit      int
	recommendSeed       int64
	recommendJSON       bool
	recommendVerbose    bool
)

func init() {
	recommendCmd.Flags().StringVar(&recommendConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	recommendCmd.Flags().StringVar(&recommendCatalog, "catalog", "", "Path to the scheme catalog JSON file")
	recommendCmd.Flags().StringVar(&recommendAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	recommendCmd.Flags().BoolVar(&recommendRerank, "rerank", false, "Ask the model to re-score the shortlist (requires API key)")
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", 0, "Maximum results to show")
	recommendCmd.Flags().Int64Var(&recommendSeed, "seed", 0, "Fixed tie-break seed for reproducible output")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Print the full recommendation as JSON")
	recommendCmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(recommendConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("catalog") {
			cfg.CatalogPath = recommendCatalog
		}
		if cmd.Flags().Changed("api-key") {
			cfg.APIKey = recommendAPIKey
		}
		if cmd.Flags().Changed("rerank") {
			cfg.Rerank = recommendRerank
		}
		if cmd.Flags().Changed("limit") {
			cfg.Limit = recommendLimit
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = recommendSeed
		}
		if recommendVerbose {
			cfg.Verbose = true
		}
	})
	if err != nil {
		return err
	}

	svc, cleanup, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	text := strings.Join(args, " ")
	rec := svc.Run(ctx, pipeline.Request{Text: text, Limit: cfg.Limit})

	if recommendJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintProfile(&rec.User)
	}
	printer.PrintRecommendations(&rec)

	if rec.Hint != "" && len(rec.Items) == 0 {
		fmt.Println(rec.Hint)
	}
	return nil
}
