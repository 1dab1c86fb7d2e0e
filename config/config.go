// Package config provides configuration loading and access for the
// fluid simulator: scalar type tags, registered static grid
// dimensions, the random seed, and I/O cadence.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulator configuration.
type Config struct {
	Scalar     ScalarConfig     `yaml:"scalar"`
	Grid       GridConfig       `yaml:"grid"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// ScalarConfig names the three scalar-type tags consumed in order as
// P, V, FV (spec §6's type-selection interface), each spelled the way
// sim.ParseTypeTag expects: "FLOAT", "DOUBLE", "FIXED(32, 16)", or
// "FAST_FIXED(32, 16)".
type ScalarConfig struct {
	Pressure string `yaml:"pressure"`
	Velocity string `yaml:"velocity"`
	Flow     string `yaml:"flow"`
}

// DimsConfig is one registered compile-time dimension pair.
type DimsConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// GridConfig holds grid-related settings.
type GridConfig struct {
	RegisteredSizes []DimsConfig `yaml:"registered_sizes"`
	Workers         int          `yaml:"workers"` // dirs-precompute worker count; 0 = GOMAXPROCS. Not read by any command: sim.Dispatch and cmd/fluidview always pass 0 to ComputeDirs.
}

// SimulationConfig holds driver-level settings.
type SimulationConfig struct {
	Seed               int64 `yaml:"seed"`
	Ticks              int   `yaml:"ticks"`
	CheckpointInterval int   `yaml:"checkpoint_interval"`
	LogInterval        int   `yaml:"log_interval"`
}

// TelemetryConfig holds CSV trace and rolling-stat settings.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	OutputDir   string `yaml:"output_dir"`
	StatsWindow int    `yaml:"stats_window"`
	TraceFlushN int    `yaml:"trace_flush_every"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	RegisteredSizeCount int
}

var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

func (c *Config) computeDerived() {
	c.Derived.RegisteredSizeCount = len(c.Grid.RegisteredSizes)
}
