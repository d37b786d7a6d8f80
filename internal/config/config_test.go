package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{
		"catalog": "/data/schemes.json",
		"api_key": "test-key",
		"rerank": true,
		"limit": 5,
		"port": 9090
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/schemes.json", cfg.CatalogPath)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.True(t, cfg.Rerank)
	assert.Equal(t, 5, cfg.Limit)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "{not json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{}).Validate())
	assert.NoError(t, (&Config{Limit: 10, Port: 8080}).Validate())
	assert.Error(t, (&Config{Limit: -1}).Validate())
	assert.Error(t, (&Config{Port: 70000}).Validate())
	assert.Error(t, (&Config{CatalogPath: "/definitely/not/there.json"}).Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Limit: 5}
	merged := cfg.MergeWithDefaults(Config{
		CatalogPath: "data/schemes.json",
		Limit:       10,
		Port:        DefaultPort,
		Verbose:     true,
	})

	assert.Equal(t, "data/schemes.json", merged.CatalogPath)
	assert.Equal(t, 5, merged.Limit, "explicit value wins over default")
	assert.Equal(t, DefaultPort, merged.Port)
	assert.True(t, merged.Verbose)
}
