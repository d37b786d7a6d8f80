// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the recommender configuration that can be loaded
// from a JSON file. All fields are optional; missing values use
// defaults or must be provided via CLI flags.
type Config struct {
	// CatalogPath points at the scheme catalog JSON file.
	CatalogPath string `json:"catalog,omitempty"`

	// Behavior
	APIKey  string `json:"api_key,omitempty"` // Gemini API key
	Rerank  bool   `json:"rerank,omitempty"`  // Ask the model to re-score the shortlist
	Verbose bool   `json:"verbose,omitempty"` // Print detailed debug information

	// Limits
	Limit int   `json:"limit,omitempty"` // Results per request
	Seed  int64 `json:"seed,omitempty"`  // Fixed tie-break seed; 0 seeds from the clock

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port
}

// DefaultPort is used when neither config nor flags set one.
const DefaultPort = 8080

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required
// fields are not checked here; CLI flag validation handles those after
// merging.
func (c *Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("config error: 'limit' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. Used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.CatalogPath == "" {
		result.CatalogPath = defaults.CatalogPath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Limit == 0 {
		result.Limit = defaults.Limit
	}
	if result.Seed == 0 {
		result.Seed = defaults.Seed
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if !result.Rerank {
		result.Rerank = defaults.Rerank
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
