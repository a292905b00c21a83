package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, "https://api.oto.sh/v1", cfg.APIBaseURL)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 1200*time.Millisecond, cfg.ThinkingDelay)
	require.False(t, cfg.Transcript.Enabled)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_base_url: http://localhost:8787
log_level: debug
transcript:
  enabled: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8787", cfg.APIBaseURL)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.Transcript.Enabled)
	// Unset fields keep their defaults.
	require.NotEmpty(t, cfg.PrefsPath)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: http://from-file\n"), 0o644))
	t.Setenv("OTO_API_URL", "http://from-env")
	t.Setenv("OTO_TOKEN", "env-token")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://from-env", cfg.APIBaseURL)
	require.Equal(t, "env-token", cfg.Token)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: [unterminated"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestSetupLoggingWritesToFileWhenInteractive(t *testing.T) {
	cfg := defaults(t.TempDir())
	cfg.LogFile = filepath.Join(t.TempDir(), "oto.log")

	cleanup, err := SetupLogging(cfg, true)
	require.NoError(t, err)
	cleanup()

	_, err = os.Stat(cfg.LogFile)
	require.NoError(t, err)
}

func TestSetupLoggingRejectsBadLevel(t *testing.T) {
	cfg := defaults(t.TempDir())
	cfg.LogLevel = "chatty"

	_, err := SetupLogging(cfg, true)
	require.Error(t, err)
}
