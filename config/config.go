package config

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

const (
	DefaultSeed              int32 = 985456376
	DefaultIntIterations           = 200
	DefaultFloatIterations         = 50
	DefaultDoubleIterations        = 50
	DefaultTelemetryInterval       = 5 * time.Second
	DefaultBenchIterations         = 10_000_000
)

// Config groups the run configuration of the CLI driver.
// Optional sections are disabled by leaving them nil.
type Config struct {
	Stream StreamCfg `yaml:"stream"`

	// Validation configures golden-output certification.
	// If nil, validation runs with defaults when requested from the command line.
	Validation *ValidationCfg `yaml:"validation"`

	// Telemetry enables periodic progress logs during long runs.
	// If nil, only the final summary is logged.
	Telemetry *TelemetryCfg `yaml:"telemetry"`

	// Bench configures the throughput benchmark.
	Bench *BenchCfg `yaml:"bench"`
}

func (cfg *Config) AdjustConfig() {
	if cfg.Stream.Total <= 0 {
		cfg.Stream.Total = 1
	}

	if cfg.Validation.Enabled() {
		cfg.Validation.Adjust()
	}

	if cfg.Telemetry.Enabled() && cfg.Telemetry.Interval <= 0 {
		cfg.Telemetry.Interval = DefaultTelemetryInterval
	}

	if cfg.Bench.Enabled() && cfg.Bench.Iterations <= 0 {
		cfg.Bench.Iterations = DefaultBenchIterations
	}
}

// Default returns an adjusted configuration with validation and bench sections enabled.
func Default() *Config {
	cfg := &Config{
		Stream:     StreamCfg{Seed: DefaultSeed},
		Validation: &ValidationCfg{},
		Bench:      &BenchCfg{},
	}
	cfg.AdjustConfig()
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	// Zero is a valid seed, so the default goes in before decoding.
	cfg := &Config{Stream: StreamCfg{Seed: DefaultSeed}}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	cfg.AdjustConfig()

	return cfg, nil
}
