package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schemes.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunValidate_CleanCatalog(t *testing.T) {
	path := writeTempCatalog(t, `[
		{"scheme_name": "PM Kisan", "target_groups": ["farmer"]},
		{"scheme_name": "Merit Scholarship", "income_limit": 250000}
	]`)
	assert.NoError(t, runValidate(nil, []string{path}))
}

func TestRunValidate_ReportsRejections(t *testing.T) {
	path := writeTempCatalog(t, `[
		{"scheme_name": "Good"},
		{"scheme_name": "Bad", "gender": "robot"}
	]`)
	err := runValidate(nil, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")
}

func TestRunValidate_MissingFile(t *testing.T) {
	err := runValidate(nil, []string{filepath.Join(t.TempDir(), "absent.json")})
	assert.Error(t, err)
}
