package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
trace_level: debug
ordering_checks: true
metrics:
  enabled: true
`))
	require.NoError(t, err)
	assert.True(t, cfg.OrderingChecks)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "uistate", cfg.Metrics.Namespace, "missing namespace keeps the default")
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, tracing.LevelDebug, level)
}

func TestParseRejectsUnknownLevel(t *testing.T) {
	_, err := Parse([]byte("trace_level: verbose\n"))
	assert.True(t, errors.Is(err, ErrTraceLevel))
	_, err = Parse([]byte("trace_level: [\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "uistate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trace_level: info\nmetrics:\n  namespace: ui\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ui", cfg.Metrics.Namespace)
	assert.False(t, cfg.OrderingChecks)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uistate.toml")
	data := "trace_level = \"debug\"\nordering_checks = true\n\n[metrics]\nenabled = true\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.OrderingChecks)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "uistate", cfg.Metrics.Namespace)
	_, err = ParseTOML([]byte("trace_level = \"loud\"\n"))
	assert.ErrorIs(t, err, ErrTraceLevel)
}
