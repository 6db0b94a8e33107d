package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"PORT",
	"OPENROUTER_API_KEY",
	"OPENROUTER_BASE_URL",
	"TEXT_MODEL",
	"FAL_KEY",
	"TOOLS_SECRET",
	"PUBLIC_BASE_URL",
	"OUTPUT_DIR",
}

// clearEnv unsets every config variable for the duration of the test.
// t.Setenv registers the restore, os.Unsetenv removes the value.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8787, cfg.Port)
	assert.Equal(t, ":8787", cfg.Addr())
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.TextBaseURL)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.TextModel)
	assert.Equal(t, "generated_images", cfg.OutputDir)
	assert.Equal(t, "http://localhost:8787", cfg.PublicBaseURL)
	assert.Empty(t, cfg.TextAPIKey)
	assert.Empty(t, cfg.ImageAPIKey)
	assert.Empty(t, cfg.ToolsSecret)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
	t.Setenv("OPENROUTER_BASE_URL", "https://example.com/v1")
	t.Setenv("TEXT_MODEL", "anthropic/claude-3.5-sonnet")
	t.Setenv("FAL_KEY", "fal-test")
	t.Setenv("TOOLS_SECRET", "hunter2")
	t.Setenv("PUBLIC_BASE_URL", "https://news.example.com")
	t.Setenv("OUTPUT_DIR", "out")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "sk-or-test", cfg.TextAPIKey)
	assert.Equal(t, "https://example.com/v1", cfg.TextBaseURL)
	assert.Equal(t, "anthropic/claude-3.5-sonnet", cfg.TextModel)
	assert.Equal(t, "fal-test", cfg.ImageAPIKey)
	assert.Equal(t, "hunter2", cfg.ToolsSecret)
	assert.Equal(t, "https://news.example.com", cfg.PublicBaseURL)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoadInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestPublicBaseURLFollowsPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.PublicBaseURL)
}
