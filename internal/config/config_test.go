package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_Values(t *testing.T) {
	c := Default()
	if c == nil {
		t.Fatal("Default() returned nil")
	}
	if c.GridStep != 0.02 {
		t.Errorf("GridStep = %v, want 0.02", c.GridStep)
	}
	if c.FrontierEpsilon != 1e-12 {
		t.Errorf("FrontierEpsilon = %v, want 1e-12", c.FrontierEpsilon)
	}
	if c.WeightTolerance != 1e-9 {
		t.Errorf("WeightTolerance = %v, want 1e-9", c.WeightTolerance)
	}
	if c.OutputPath != "site/frontier-data.json" {
		t.Errorf("OutputPath = %q, want site/frontier-data.json", c.OutputPath)
	}
	if c.Port != 9180 {
		t.Errorf("Port = %d, want 9180", c.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"zero step", func(c *Config) { c.GridStep = 0 }, true},
		{"step above one", func(c *Config) { c.GridStep = 1.5 }, true},
		{"negative epsilon", func(c *Config) { c.FrontierEpsilon = -1e-12 }, true},
		{"zero tolerance", func(c *Config) { c.WeightTolerance = 0 }, true},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"coarse but legal step", func(c *Config) { c.GridStep = 0.5 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frontier.yaml")
	yaml := "csv_path: prices.csv\ngrid_step: 0.05\nworkers: 4\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.CSVPath != "prices.csv" {
		t.Errorf("CSVPath = %q, want prices.csv", c.CSVPath)
	}
	if c.GridStep != 0.05 {
		t.Errorf("GridStep = %v, want 0.05", c.GridStep)
	}
	if c.Workers != 4 {
		t.Errorf("Workers = %d, want 4", c.Workers)
	}
	// Unset fields keep their defaults.
	if c.FrontierEpsilon != 1e-12 {
		t.Errorf("FrontierEpsilon = %v, want default 1e-12", c.FrontierEpsilon)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "bad-step.yaml")
	if err := os.WriteFile(path, []byte("grid_step: -0.02\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile with negative grid_step should fail")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFile with missing file should fail")
	}
}
