package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jatin/yojana-sahayak/internal/catalog"
	"github.com/jatin/yojana-sahayak/internal/config"
	"github.com/jatin/yojana-sahayak/internal/llm"
	"github.com/jatin/yojana-sahayak/internal/pipeline"
)

// resolveAPIKey returns the configured key, falling back to the
// GEMINI_API_KEY environment variable. Empty means the AI paths stay
// disabled.
func resolveAPIKey(cfg *config.Config) string {
	if cfg.APIKey != "" {
		return cfg.APIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

// buildService loads the catalog and assembles the pipeline. The
// returned cleanup releases the LLM client when one was created.
func buildService(ctx context.Context, cfg *config.Config) (*pipeline.Service, func(), error) {
	if cfg.CatalogPath == "" {
		return nil, nil, fmt.Errorf("catalog path is required (--catalog or config file)")
	}

	result, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, nil, err
	}
	if len(result.Rejected) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d catalog entries rejected\n", len(result.Rejected))
		if cfg.Verbose {
			for _, rej := range result.Rejected {
				fmt.Fprintf(os.Stderr, "  entry %d (%s): %v\n", rej.Index, rej.Name, rej.Err)
			}
		}
	}
	if cfg.Verbose {
		fmt.Printf("Loaded %d schemes from %s\n", len(result.Schemes), cfg.CatalogPath)
	}

	opts := pipeline.Options{Rerank: cfg.Rerank, Seed: cfg.Seed}
	cleanup := func() {}

	if apiKey := resolveAPIKey(cfg); apiKey != "" {
		client, err := llm.NewClient(ctx, nil, apiKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		opts.Client = client
		cleanup = func() { _ = client.Close() }
	} else if cfg.Rerank {
		return nil, nil, fmt.Errorf("--rerank requires an API key (--api-key or GEMINI_API_KEY)")
	}

	return pipeline.New(result.Schemes, opts), cleanup, nil
}

// loadMergedConfig loads the optional config file and applies flag
// overrides on top.
func loadMergedConfig(path string, apply func(cfg *config.Config)) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return nil, err
		}
		cfg = loaded
	}
	apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
