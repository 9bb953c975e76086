package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/job-capture/internal/httpx"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DATABASE_URL", "LOG_LEVEL", "FETCHER", "USER_AGENT", "RETENTION_DAYS"} {
		t.Setenv(k, "")
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

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite://job-capture.db", cfg.Database.URL)
	assert.Equal(t, "http", cfg.Fetch.Fetcher)
	assert.Equal(t, 20*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 90, cfg.Retention.Days)
	assert.Equal(t, 24*time.Hour, cfg.Retention.Interval)
	assert.Equal(t, 4, cfg.Capture.Concurrency)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: "9000"
database:
  url: postgres://localhost/jobs
log:
  level: debug
fetch:
  fetcher: colly
  timeout: 5s
  host_limits:
    linkedin.com:
      every: 3s
      burst: 1
retention:
  days: 30
capture:
  concurrency: 8
`)
	t.Setenv("PORT", "7070")
	t.Setenv("RETENTION_DAYS", "14")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/jobs", cfg.Database.URL)
	assert.Equal(t, 14, cfg.Retention.Days)
	assert.Equal(t, 8, cfg.Capture.Concurrency)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	opts := cfg.FetchOptions()
	assert.Equal(t, "colly", opts.Kind)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.Equal(t, map[string]httpx.Limit{"linkedin.com": {Every: 3 * time.Second, Burst: 1}}, opts.HostLimits)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "server: [not, a, map"))
	assert.Error(t, err)

	t.Setenv("RETENTION_DAYS", "forever")
	_, err = Load("")
	assert.ErrorContains(t, err, "RETENTION_DAYS")
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for level, want := range tests {
		var cfg Config
		cfg.Log.Level = level
		assert.Equal(t, want, cfg.SlogLevel(), level)
	}
}
