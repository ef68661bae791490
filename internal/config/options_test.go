package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	options, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, Defaults(dir), options)
}

func TestYAMLOverridesDefaultsAndEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	content := "storage: file\nlog_level: debug\ntick_interval: 500ms\nsound: bell\n"
	require.NoError(t, os.WriteFile(Path(dir), []byte(content), 0o644))
	t.Setenv("POMODORO_LOG_LEVEL", "warn")
	t.Setenv("POMODORO_NOTIFIER", "none")

	options, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "file", options.Storage)
	assert.Equal(t, "warn", options.LogLevel)
	assert.Equal(t, "none", options.Notifier)
	assert.Equal(t, "bell", options.Sound)
	assert.Equal(t, 500*time.Millisecond, options.TickInterval)
	assert.Equal(t, dir, options.DataDir)
}

func TestMalformedYAMLIsReported(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte("storage: [unterminated"), 0o644))

	_, err := Load(dir)

	assert.Error(t, err)
}
