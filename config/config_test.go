// ABOUTME: Tests for layered config loading
// ABOUTME: Covers defaults, YAML parsing, env precedence and validation
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads. Blank values are ignored by the
// overrides, and t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"LIFEHUB_CONFIG",
		"LIFEHUB_STORAGE_BACKEND",
		"LIFEHUB_DB_PATH",
		"GEMINI_API_KEY",
		"LIFEHUB_AI_MODEL",
		"LIFEHUB_AI_CHAT_MODEL",
		"LIFEHUB_AI_TIMEOUT",
		"HUB_PASSCODE",
		"LIFEHUB_WEB_ADDR",
		"LIFEHUB_SYNC_LATENCY",
		"LIFEHUB_LOG_LEVEL",
	} {
		t.Setenv(v, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, time.Duration(0), cfg.AI.Timeout.Std(), "AI calls have no deadline unless configured")
	assert.Equal(t, 2*time.Second, cfg.Connectors.SyncLatency.Std())
	assert.Empty(t, cfg.Path)
	assert.Empty(t, cfg.Auth.Passcode)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
storage:
  backend: charm
ai:
  model: gemini-test
  timeout: 90s
auth:
  passcode: legacy
connectors:
  sync_latency: 0s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, BackendCharm, cfg.Storage.Backend)
	assert.Equal(t, "gemini-test", cfg.AI.Model)
	assert.Equal(t, "gemini-3-pro-preview", cfg.AI.ChatModel, "unset keys keep defaults")
	assert.Equal(t, 90*time.Second, cfg.AI.Timeout.Std())
	assert.Equal(t, "legacy", cfg.Auth.Passcode)
	assert.Equal(t, time.Duration(0), cfg.Connectors.SyncLatency.Std())
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "auth:\n  passcode: from-file\nai:\n  timeout: 90s\n")
	t.Setenv("HUB_PASSCODE", "from-env")
	t.Setenv("GEMINI_API_KEY", "  key-123 ")
	t.Setenv("LIFEHUB_AI_TIMEOUT", "5s")
	t.Setenv("LIFEHUB_STORAGE_BACKEND", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.Passcode)
	assert.Equal(t, "key-123", cfg.AI.APIKey)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout.Std())
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
}

func TestConfigPathFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "log:\n  level: debug\n")
	t.Setenv("LIFEHUB_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "storage: [unclosed"},
		{"bad duration", "ai:\n  timeout: soon\n"},
		{"unknown backend", "storage:\n  backend: postgres\n"},
		{"negative timeout", "ai:\n  timeout: -5s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTripsDurations(t *testing.T) {
	clearEnv(t)
	cfg := Defaults()
	cfg.AI.Timeout = Duration(45 * time.Second)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, Save(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 45s")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, loaded.AI.Timeout.Std())
}
