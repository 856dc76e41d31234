// Package configs holds the command-line application configuration.
package configs

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-dft/algorithms/windowing"
	"github.com/RyanBlaney/sonido-dft/dataset"
	"github.com/RyanBlaney/sonido-dft/logging"
	"github.com/RyanBlaney/sonido-dft/report"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output"`
	Workers      int    `mapstructure:"workers"`

	// Input
	Input      string `mapstructure:"input"`
	Format     string `mapstructure:"format"`
	MaxSamples int    `mapstructure:"max_samples"`
	Window     string `mapstructure:"window"`

	// Series evaluation; zero Points/End mean "use N"
	Threshold float64 `mapstructure:"threshold"`
	Points    int     `mapstructure:"points"`
	Delta     float64 `mapstructure:"delta"`
	Start     float64 `mapstructure:"start"`
	End       float64 `mapstructure:"end"`

	// Reference verification
	Tolerance float64 `mapstructure:"tolerance"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Verbose:      false,
		LogLevel:     "info",
		OutputFormat: report.FormatTable,
		Workers:      0,
		Format:       "auto",
		Window:       string(windowing.WindowRectangular),
		Threshold:    0,
		Points:       0,
		Delta:        0.5,
		Start:        0,
		End:          0,
		Tolerance:    1e-9,
	}
}

// SetDefaults registers DefaultConfig values on v
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("output", d.OutputFormat)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("input", d.Input)
	v.SetDefault("format", d.Format)
	v.SetDefault("max_samples", d.MaxSamples)
	v.SetDefault("window", d.Window)
	v.SetDefault("threshold", d.Threshold)
	v.SetDefault("points", d.Points)
	v.SetDefault("delta", d.Delta)
	v.SetDefault("start", d.Start)
	v.SetDefault("end", d.End)
	v.SetDefault("tolerance", d.Tolerance)
}

// LoadConfig loads configuration from viper
func LoadConfig(v *viper.Viper) (*Config, error) {
	config := DefaultConfig()

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ResolveGrid fills in the sample-count dependent defaults for a signal of n samples
func (c *Config) ResolveGrid(n int) (points int, end float64) {
	points, end = c.Points, c.End
	if points == 0 {
		points = n
	}
	if end == 0 {
		end = float64(n)
	}
	return points, end
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	var errs []error

	if _, err := logging.ParseLevel(config.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if !slices.Contains(report.Formats(), strings.ToLower(strings.TrimSpace(config.OutputFormat))) {
		errs = append(errs, fmt.Errorf("output format must be one of %s", strings.Join(report.Formats(), ", ")))
	}

	if config.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers cannot be negative"))
	}

	switch dataset.Format(config.Format) {
	case "", dataset.FormatAuto, dataset.FormatYAML, dataset.FormatJSON, dataset.FormatText, dataset.FormatF64:
	default:
		errs = append(errs, fmt.Errorf("unsupported input format %q", config.Format))
	}

	if _, err := windowing.ParseWindowType(config.Window); err != nil {
		errs = append(errs, err)
	}

	if config.MaxSamples < 0 {
		errs = append(errs, fmt.Errorf("max samples cannot be negative"))
	}

	if config.Points < 0 {
		errs = append(errs, fmt.Errorf("points cannot be negative"))
	}

	if config.Delta <= 0 || math.IsNaN(config.Delta) || math.IsInf(config.Delta, 0) {
		errs = append(errs, fmt.Errorf("delta must be a positive finite number"))
	}

	if config.End != 0 && config.End <= config.Start {
		errs = append(errs, fmt.Errorf("end (%g) must be greater than start (%g)", config.End, config.Start))
	}

	if config.Tolerance < 0 || math.IsNaN(config.Tolerance) {
		errs = append(errs, fmt.Errorf("tolerance cannot be negative"))
	}

	return errors.Join(errs...)
}
