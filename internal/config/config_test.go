package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "CAC_ALLOWED_ORIGINS", "CAC_LOG_LEVEL", "CAC_LOG_JSON", "GIN_MODE",
		"OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT", "CAC_METRICS_ENABLED"} {
		t.Setenv(key, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "cac.yaml")
	content := "port: \"8080\"\nlog_level: debug\nallowed_origins:\n  - https://example.org\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://example.org"}, cfg.AllowedOrigins)

	t.Setenv("PORT", "9090")
	t.Setenv("CAC_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("CAC_LOG_JSON", "true")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.LogJSON)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("port: [\n"), 0o644))
	_, err := Load(bad)
	assert.Error(t, err)

	t.Setenv("CAC_LOG_LEVEL", "loud")
	_, err = Load("")
	assert.Error(t, err)

	t.Setenv("CAC_LOG_LEVEL", "")
	t.Setenv("PORT", "http")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadMetrics(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "cac.yaml")
	content := "metrics:\n  enabled: true\n  endpoint: collector:4317\n  interval: 30s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "collector:4317", cfg.Metrics.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Metrics.Interval)
	assert.Equal(t, "cac-decision", cfg.Metrics.ServiceName)

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "otel:4317", cfg.Metrics.Endpoint)

	t.Setenv("CAC_METRICS_ENABLED", "false")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Metrics.Enabled)

	bad := Default()
	bad.Metrics.Enabled = true
	bad.Metrics.Interval = 0
	assert.Error(t, bad.Validate())
}
