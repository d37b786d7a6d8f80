package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jatin/yojana-sahayak/internal/extract"
	"github.com/jatin/yojana-sahayak/internal/llm"
)

var parseCmd = &cobra.Command{
	Use:   "parse [text]",
	Short: "Extract a structured profile from free text",
	Long: `Runs only the profile extraction step and prints the result as JSON.
Useful for inspecting what the recommender understood from an input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var parseAPIKey string

func init() {
	parseCmd.Flags().StringVar(&parseAPIKey, "api-key", "", "Gemini API Key for AI-assisted extraction (optional; rule-based without it)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	apiKey := parseAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	extractor := &extract.Extractor{}
	if apiKey != "" {
		client, err := llm.NewClient(ctx, nil, apiKey)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		extractor.Client = client
	}

	profile := extractor.Extract(ctx, strings.Join(args, " "))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(profile)
}
