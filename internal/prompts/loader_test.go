package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("extraction.json", "extract-user-profile")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Text}}")
	assert.Contains(t, prompt, "valid JSON")
}

func TestGet_MissingKey(t *testing.T) {
	ClearCache()

	_, err := Get("extraction.json", "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGet_MissingFile(t *testing.T) {
	ClearCache()

	_, err := Get("nope.json", "extract-user-profile")
	require.Error(t, err)
}

func TestMustGet_RankingPrompt(t *testing.T) {
	ClearCache()

	prompt := MustGet("ranking.json", "rank-schemes")
	assert.Contains(t, prompt, "{{.Schemes}}")
	assert.Contains(t, prompt, "JSON array")
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	out := Format("Hello {{.Name}}, you are {{.Age}}", map[string]string{
		"Name": "Asha",
		"Age":  "21",
	})
	assert.Equal(t, "Hello Asha, you are 21", out)
	assert.False(t, strings.Contains(out, "{{"))
}
