// Package main provides the entry point for the scheme recommender CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scheme_agent",
	Short: "Government welfare scheme recommender",
	Long:  "scheme_agent matches free-text self-descriptions against a catalog of government welfare schemes: it extracts a structured profile, filters by eligibility and ranks the results.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
