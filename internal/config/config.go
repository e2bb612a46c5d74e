package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds one computation run's settings (in-memory representation).
// Grid step and frontier epsilon control the approximation's resolution and
// its sensitivity to floating-point noise; both are tunable, not fixed.
type Config struct {
	// CSVPath is the input price table (yfinance-style multi-header CSV).
	CSVPath string `yaml:"csv_path"`
	// OutputPath is where the JSON dataset document is written.
	OutputPath string `yaml:"output_path"`
	// ChartPath is an optional PNG render of the risk/return cloud; empty skips it.
	ChartPath string `yaml:"chart_path"`

	// GridStep is the weight increment of the simplex enumeration grid.
	GridStep float64 `yaml:"grid_step"`
	// FrontierEpsilon is the strict-improvement margin of the frontier sweep.
	FrontierEpsilon float64 `yaml:"frontier_epsilon"`
	// WeightTolerance bounds the allowed deviation of a weight vector's sum from 1.
	WeightTolerance float64 `yaml:"weight_tolerance"`

	// Workers caps the goroutines evaluating the grid; 0 means sequential.
	Workers int `yaml:"workers"`

	// Port is the HTTP viewer listen port (only used with -serve).
	Port int `yaml:"port"`
	// DBPath is the SQLite run-history file.
	DBPath string `yaml:"db_path"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		OutputPath:      "site/frontier-data.json",
		GridStep:        0.02,
		FrontierEpsilon: 1e-12,
		WeightTolerance: 1e-9,
		Port:            9180,
		DBPath:          "frontiergen.db",
	}
}

// LoadFile reads a YAML config file over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the enumeration cannot run with.
func (c *Config) Validate() error {
	if c.GridStep <= 0 || c.GridStep > 1 {
		return fmt.Errorf("grid_step %v out of range (0, 1]", c.GridStep)
	}
	if c.FrontierEpsilon < 0 {
		return fmt.Errorf("frontier_epsilon %v must be non-negative", c.FrontierEpsilon)
	}
	if c.WeightTolerance <= 0 {
		return fmt.Errorf("weight_tolerance %v must be positive", c.WeightTolerance)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d must be non-negative", c.Workers)
	}
	return nil
}
