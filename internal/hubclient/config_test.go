package hubclient

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CAPSTONE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	for _, key := range []string{"CAPSTONE_BASE_URL", "CAPSTONE_TIMEOUT_MS", "CAPSTONE_CSRF_TOKEN", "CAPSTONE_CSRF_PATH", "CAPSTONE_LOG_CALLS"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: https://hub.example.com\ntimeout_ms: 2500\nlog_calls: true\n"), 0o600))
	t.Setenv("CAPSTONE_CONFIG", path)
	t.Setenv("CAPSTONE_TIMEOUT_MS", "4000")
	t.Setenv("CAPSTONE_CSRF_TOKEN", "static")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://hub.example.com", cfg.BaseURL)
	assert.Equal(t, 4000, cfg.TimeoutMs)
	assert.True(t, cfg.LogCalls)
	assert.Equal(t, "static", cfg.CSRFToken)
	assert.Equal(t, "/api/csrf-token", cfg.CSRFPath)
}

func TestLoadConfig_InvalidEnvIgnored(t *testing.T) {
	t.Setenv("CAPSTONE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("CAPSTONE_TIMEOUT_MS", "-5")
	t.Setenv("CAPSTONE_BASE_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.TimeoutMs)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: [unterminated"), 0o600))
	t.Setenv("CAPSTONE_CONFIG", path)

	_, err := LoadConfig()
	assert.Error(t, err)
}
