package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jatin/yojana-sahayak/internal/config"
	"github.com/jatin/yojana-sahayak/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the recommendation pipeline as REST endpoints.`,
	RunE:  runServe,
}

var (
	serveConfigPath string
	serveCatalog    string
	serveAPIKey     string
	serveRerank     bool
	servePort       int
	serveVerbose    bool
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().StringVar(&serveCatalog, "catalog", "", "Path to the scheme catalog JSON file")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	serveCmd.Flags().BoolVar(&serveRerank, "rerank", false, "Ask the model to re-score shortlists (requires API key)")
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(serveConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("catalog") {
			cfg.CatalogPath = serveCatalog
		}
		if cmd.Flags().Changed("api-key") {
			cfg.APIKey = serveAPIKey
		}
		if cmd.Flags().Changed("rerank") {
			cfg.Rerank = serveRerank
		}
		if cmd.Flags().Changed("port") || cfg.Port == 0 {
			cfg.Port = servePort
		}
		if serveVerbose {
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

	srv, err := server.New(server.Config{Port: cfg.Port, Service: svc})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
