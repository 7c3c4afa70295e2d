// Package config handles converter configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/dtm2stl/internal/terrain"
)

// Config holds all converter settings.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig holds terrain file reading settings.
type InputConfig struct {
	// Delimiter separates fields; empty means runs of whitespace.
	Delimiter string `yaml:"delimiter"`
}

// MeshConfig holds mesh generation settings.
type MeshConfig struct {
	Degenerate  string `yaml:"degenerate"`  // skip or abort
	Orientation string `yaml:"orientation"` // up or source
	Precision   int    `yaml:"precision"`   // mantissa digits
}

// OutputConfig holds STL output settings.
type OutputConfig struct {
	Overwrite bool `yaml:"overwrite"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Delimiter: "",
		},
		Mesh: MeshConfig{
			Degenerate:  string(terrain.DegenerateSkip),
			Orientation: string(terrain.OrientUp),
			Precision:   6,
		},
		Output: OutputConfig{
			Overwrite: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that policy names and numeric settings are usable.
func (c *Config) Validate() error {
	if _, err := terrain.ParseDegeneratePolicy(c.Mesh.Degenerate); err != nil {
		return fmt.Errorf("mesh.degenerate: %w", err)
	}
	if _, err := terrain.ParseOrientation(c.Mesh.Orientation); err != nil {
		return fmt.Errorf("mesh.orientation: %w", err)
	}
	// Zero would be read as "unset" by the exporter.
	if c.Mesh.Precision < 1 || c.Mesh.Precision > 17 {
		return fmt.Errorf("mesh.precision must be between 1 and 17, got %d", c.Mesh.Precision)
	}
	if n := len([]rune(c.Input.Delimiter)); n > 1 {
		return fmt.Errorf("input.delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	return nil
}

// MeshOptions converts the mesh settings into generation options.
// Call Validate first; unknown names fall back to defaults.
func (c *Config) MeshOptions() terrain.Options {
	opts := terrain.DefaultOptions()
	if o, err := terrain.ParseOrientation(c.Mesh.Orientation); err == nil {
		opts.Orientation = o
	}
	if d, err := terrain.ParseDegeneratePolicy(c.Mesh.Degenerate); err == nil {
		opts.Degenerate = d
	}
	opts.Precision = c.Mesh.Precision
	return opts
}
