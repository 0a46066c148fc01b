package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 1500*time.Millisecond, cfg.Completion.Debounce.Duration)
	assert.Equal(t, 2, cfg.Editor.TabSize)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
editor:
  tab_size: 4
  line_numbers: false
completion:
  debounce: 750ms
  model: claude-3-5-haiku-latest
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Editor.TabSize)
	assert.False(t, cfg.Editor.LineNumbers)
	assert.Equal(t, 750*time.Millisecond, cfg.Completion.Debounce.Duration)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.Completion.Model)
	// untouched fields keep their defaults
	assert.Equal(t, 14.0, cfg.Editor.FontSize)
	assert.Equal(t, 10, cfg.Completion.MinLength)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad duration", content: "completion:\n  debounce: soon\n"},
		{name: "tab size", content: "editor:\n  tab_size: 0\n"},
		{name: "font size", content: "editor:\n  font_size: -1\n"},
		{name: "not yaml", content: "editor: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestWriteRoundTripsDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Completion.Debounce = Duration{2 * time.Second}

	require.NoError(t, Write(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, loaded.Completion.Debounce.Duration)
}

func TestDefaultPathHonoursEnv(t *testing.T) {
	t.Setenv("CODEPAD_CONFIG", "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", DefaultPath())
}
