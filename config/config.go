// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/kinetics/kinetics"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Viewport   ViewportConfig   `yaml:"viewport"`
	Particle   ParticleConfig   `yaml:"particle"`
	Simulation SimulationConfig `yaml:"simulation"`
	Limits     LimitsConfig     `yaml:"limits"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Stream     StreamConfig     `yaml:"stream"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ViewportConfig holds the simulation area, in pixels.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ParticleConfig holds per-particle constants.
type ParticleConfig struct {
	Radius float64 `yaml:"radius"`
}

// SimulationConfig holds the initial parameters.
type SimulationConfig struct {
	Temperature   int  `yaml:"temperature"`
	Concentration int  `yaml:"concentration"`
	Running       bool `yaml:"running"`
}

// LimitsConfig holds the slider ranges. They must lie inside the ranges the
// simulation accepts.
type LimitsConfig struct {
	TemperatureMin   int `yaml:"temperature_min"`
	TemperatureMax   int `yaml:"temperature_max"`
	ConcentrationMin int `yaml:"concentration_min"`
	ConcentrationMax int `yaml:"concentration_max"`
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	WindowTicks int  `yaml:"window_ticks"` // ticks per stats window
	PerfWindow  int  `yaml:"perf_window"`  // ticks in the rolling perf window
	LogStats    bool `yaml:"log_stats"`
}

// StreamConfig holds websocket streaming settings.
type StreamConfig struct {
	Addr         string        `yaml:"addr"` // empty = disabled
	Path         string        `yaml:"path"`
	QueueSize    int           `yaml:"queue_size"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DerivedConfig holds values computed from config (not in YAML).
type DerivedConfig struct {
	FrameDuration time.Duration
	ViewportW32   float32
	ViewportH32   float32
	Radius32      float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the loaded values against what the simulation accepts.
func (c *Config) Validate() error {
	var errs []error

	if c.Particle.Radius <= 0 {
		errs = append(errs, fmt.Errorf("particle.radius must be positive, got %g", c.Particle.Radius))
	}
	if c.Viewport.Width <= 2*c.Particle.Radius || c.Viewport.Height <= 2*c.Particle.Radius {
		errs = append(errs, fmt.Errorf("viewport %gx%g too small for radius %g",
			c.Viewport.Width, c.Viewport.Height, c.Particle.Radius))
	}

	l := c.Limits
	if l.TemperatureMin < kinetics.MinTemperature || l.TemperatureMax > kinetics.MaxTemperature ||
		l.TemperatureMin > l.TemperatureMax {
		errs = append(errs, fmt.Errorf("limits.temperature [%d, %d] outside [%d, %d]",
			l.TemperatureMin, l.TemperatureMax, kinetics.MinTemperature, kinetics.MaxTemperature))
	}
	if l.ConcentrationMin < kinetics.MinConcentration || l.ConcentrationMax > kinetics.MaxConcentration ||
		l.ConcentrationMin > l.ConcentrationMax {
		errs = append(errs, fmt.Errorf("limits.concentration [%d, %d] outside [%d, %d]",
			l.ConcentrationMin, l.ConcentrationMax, kinetics.MinConcentration, kinetics.MaxConcentration))
	}

	s := c.Simulation
	if s.Temperature < l.TemperatureMin || s.Temperature > l.TemperatureMax {
		errs = append(errs, fmt.Errorf("simulation.temperature %d outside limits", s.Temperature))
	}
	if s.Concentration < l.ConcentrationMin || s.Concentration > l.ConcentrationMax {
		errs = append(errs, fmt.Errorf("simulation.concentration %d outside limits", s.Concentration))
	}

	if c.Telemetry.WindowTicks < 1 {
		errs = append(errs, fmt.Errorf("telemetry.window_ticks must be >= 1, got %d", c.Telemetry.WindowTicks))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.FrameDuration = time.Second / time.Duration(fps)
	c.Derived.ViewportW32 = float32(c.Viewport.Width)
	c.Derived.ViewportH32 = float32(c.Viewport.Height)
	c.Derived.Radius32 = float32(c.Particle.Radius)

	if c.Stream.Path == "" {
		c.Stream.Path = "/ws"
	}
	if c.Stream.QueueSize <= 0 {
		c.Stream.QueueSize = 64
	}
	if c.Telemetry.PerfWindow <= 0 {
		c.Telemetry.PerfWindow = 60
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
