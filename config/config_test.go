package config

import (
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadConfig_ParsesSections verifies YAML sections and derived defaults.
func TestLoadConfig_ParsesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lcg48.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
stream:
  seed: 42
  multiplier: 3
  position: 2
  streams: 8
validation:
  reference: /tmp/ref.txt
  int_iterations: 10
  lanes: 4
telemetry:
  interval: 250ms
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, StreamCfg{Seed: 42, Multiplier: 3, Position: 2, Total: 8}, cfg.Stream)
	require.True(t, cfg.Validation.Enabled())
	require.Equal(t, "/tmp/ref.txt", cfg.Validation.Reference)
	require.Equal(t, 10, cfg.Validation.IntIterations)
	require.Equal(t, DefaultFloatIterations, cfg.Validation.FloatIterations)
	require.Equal(t, DefaultDoubleIterations, cfg.Validation.DoubleIterations)
	require.Equal(t, 4, cfg.Validation.Lanes)
	require.Equal(t, 250*time.Millisecond, cfg.Telemetry.Interval)
	require.False(t, cfg.Bench.Enabled())
}

// TestLoadConfig_Empty verifies an empty file yields the defaults.
func TestLoadConfig_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, DefaultSeed, cfg.Stream.Seed)
	require.Equal(t, int32(1), cfg.Stream.Total)
	require.False(t, cfg.Validation.Enabled())
	require.False(t, cfg.Telemetry.Enabled())
}

// TestLoadConfig_Errors verifies missing files and bad YAML are reported.
func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stream: [unterminated"), 0o644))
	_, err = LoadConfig(path)
	require.Error(t, err)
}

// TestDefault verifies the defaults used when no config file exists.
func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, DefaultSeed, cfg.Stream.Seed)
	require.Equal(t, DefaultIntIterations, cfg.Validation.IntIterations)
	require.Equal(t, DefaultBenchIterations, cfg.Bench.Iterations)
	require.False(t, cfg.Telemetry.Enabled())
}

// TestAdjustConfig_TelemetryInterval verifies a zero interval gets the default.
func TestAdjustConfig_TelemetryInterval(t *testing.T) {
	cfg := &Config{Telemetry: &TelemetryCfg{}}
	cfg.AdjustConfig()
	require.Equal(t, DefaultTelemetryInterval, cfg.Telemetry.Interval)
}

// TestLoadConfig_ZeroSeed verifies an explicit zero seed is kept.
func TestLoadConfig_ZeroSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stream:\n  seed: 0\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Zero(t, cfg.Stream.Seed)
}

// TestValidationCfg_Adjust verifies unset iteration counts get the defaults and set ones are kept.
func TestValidationCfg_Adjust(t *testing.T) {
	cfg := &ValidationCfg{IntIterations: 7, FloatIterations: -1}
	cfg.Adjust()
	require.Equal(t, 7, cfg.IntIterations)
	require.Equal(t, DefaultFloatIterations, cfg.FloatIterations)
	require.Equal(t, DefaultDoubleIterations, cfg.DoubleIterations)
}
