package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robpaolella/personal-finance-sub000/internal/domain/duplicates"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
storage:
  database_path: /var/lib/ledger/ledger.db
server:
  port: 9090
  allowed_origins:
    - https://ledger.example.com
duplicates:
  amount_epsilon: 0.01
  exact_threshold: 0.9
import:
  date_format: 01/02/2006
observability:
  logging:
    level: debug
    format: json
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/ledger/ledger.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://ledger.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 0.01, cfg.Duplicates.AmountEpsilon)
	assert.Equal(t, 0.9, cfg.Duplicates.ExactThreshold)
	assert.Equal(t, "01/02/2006", cfg.Import.DateFormat)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, "storage:\n  database_path: test.db\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "test.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
	assert.Equal(t, duplicates.DefaultConfig(), cfg.Duplicates.DetectorConfig())
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_LEDGER_DB", "/tmp/from-env.db")
	path := writeConfig(t, "storage:\n  database_path: ${TEST_LEDGER_DB}\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.Storage.DatabasePath)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LEDGER_DB_PATH", "env.db")
	t.Setenv("LEDGER_PORT", "7070")
	t.Setenv("LEDGER_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("DUPLICATE_EXACT_THRESHOLD", "0.75")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := LoadFromEnv()

	assert.Equal(t, "env.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 0.75, cfg.Duplicates.ExactThreshold)
	assert.Equal(t, 0.005, cfg.Duplicates.AmountEpsilon)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
}

func TestLoadOrEnvWithPath_FallsBackToEnv(t *testing.T) {
	t.Setenv("LEDGER_DB_PATH", "fallback.db")

	cfg := LoadOrEnvWithPath(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "fallback.db", cfg.Storage.DatabasePath)
}

func TestDetectorConfig_IgnoresNonPositive(t *testing.T) {
	got := DuplicatesConfig{AmountEpsilon: -1, ExactThreshold: 0}.DetectorConfig()
	assert.Equal(t, duplicates.DefaultConfig(), got)
}
