package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BOULDERLOG_DB", "BOULDERLOG_LOG_LEVEL", "BOULDERLOG_LOG_USECASES",
		"BOULDERLOG_SHEETS_ID", "BOULDERLOG_SHEETS_API_KEY", "BOULDERLOG_CONFIG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "boulderlog.db", filepath.Base(cfg.DBPath))

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
db: /data/climbs.db
log_level: info
sheets:
  spreadsheet_id: from-file
`), 0o644))

	cfg, err := Load(yamlPath, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "/data/climbs.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "from-file", cfg.Sheets.SpreadsheetID)

	t.Setenv("BOULDERLOG_DB", "/tmp/override.db")
	t.Setenv("BOULDERLOG_LOG_USECASES", "true")
	cfg, err = Load(yamlPath, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", cfg.DBPath)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, "from-file", cfg.Sheets.SpreadsheetID)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("BOULDERLOG_SHEETS_API_KEY=secret\n"), 0o644))
	// godotenv does not override variables that are already set, including
	// the empty ones from clearEnv.
	require.NoError(t, os.Unsetenv("BOULDERLOG_SHEETS_API_KEY"))
	t.Cleanup(func() { os.Unsetenv("BOULDERLOG_SHEETS_API_KEY") })

	cfg, err := Load(filepath.Join(dir, "missing.yaml"), envPath)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Sheets.APIKey)
}

func TestLoad_InvalidInputs(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("db: [unterminated"), 0o644))
	_, err := Load(bad, filepath.Join(dir, "missing.env"))
	assert.Error(t, err)

	t.Setenv("BOULDERLOG_LOG_LEVEL", "chatty")
	_, err = Load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}
