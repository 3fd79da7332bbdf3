// Package config assembles the startup configuration from defaults, an
// optional YAML file, and command-line flags, in that order of precedence.
// Configuration is fixed for the lifetime of the run; there is no reload.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the visualizer.
type Config struct {
	MinFreq float64 `yaml:"minFreq"`
	MaxFreq float64 `yaml:"maxFreq"`
	MinDB   float64 `yaml:"minDb"`
	MaxDB   float64 `yaml:"maxDb"`
	FloorDB float64 `yaml:"floorDb"`

	SampleRate   float64 `yaml:"sampleRate"`
	SampleSizeMS int     `yaml:"sampleSizeMs"`
	ReferenceMax float64 `yaml:"referenceMax"`

	FallSpeed  float64 `yaml:"fallSpeed"`
	PeakHoldMS int     `yaml:"peakHoldMs"`

	BarChar  string `yaml:"barChar"`
	PeakChar string `yaml:"peakChar"`

	Color  bool `yaml:"color"`
	Peaks  bool `yaml:"peaks"`
	Axes   bool `yaml:"axes"`
	Border bool `yaml:"border"`

	LogFile string `yaml:"logFile"`
}

// Default returns the stock configuration: the full audible-ish range at
// 44.1 kHz with 50 ms frames and all decorations off.
func Default() Config {
	return Config{
		MinFreq:      30,
		MaxFreq:      16000,
		MinDB:        -90,
		MaxDB:        0,
		FloorDB:      -90,
		SampleRate:   44100,
		SampleSizeMS: 50,
		ReferenceMax: 3000,
		FallSpeed:    40,
		PeakHoldMS:   2000,
		BarChar:      "█",
		PeakChar:     "_",
	}
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate reports the first configuration error, if any. A failure here is
// fatal at startup and never retried.
func (c *Config) Validate() error {
	switch {
	case c.MinFreq <= 0:
		return fmt.Errorf("minimum frequency must be positive, got %g", c.MinFreq)
	case c.MinFreq >= c.MaxFreq:
		return fmt.Errorf("frequency range is empty: %g..%g Hz", c.MinFreq, c.MaxFreq)
	case c.MinDB >= c.MaxDB:
		return fmt.Errorf("decibel range is empty: %g..%g dB", c.MinDB, c.MaxDB)
	case c.SampleRate <= 0:
		return fmt.Errorf("sample rate must be positive, got %g", c.SampleRate)
	case c.SampleSizeMS <= 0:
		return fmt.Errorf("sample size must be positive, got %d ms", c.SampleSizeMS)
	case c.ReferenceMax <= 0:
		return fmt.Errorf("reference amplitude must be positive, got %g", c.ReferenceMax)
	case c.FallSpeed < 0:
		return fmt.Errorf("fall speed must not be negative, got %g", c.FallSpeed)
	case c.PeakHoldMS < 0:
		return fmt.Errorf("peak hold must not be negative, got %d ms", c.PeakHoldMS)
	case c.BarChar == "":
		return fmt.Errorf("bar character must not be empty")
	case c.PeakChar == "":
		return fmt.Errorf("peak character must not be empty")
	}
	return nil
}

// FrameSamples returns the capture buffer length implied by the sample rate
// and the per-frame window.
func (c *Config) FrameSamples() int {
	return int(c.SampleRate * float64(c.SampleSizeMS) / 1000)
}

// BarRune returns the first rune of the configured bar character.
func (c *Config) BarRune() rune { return firstRune(c.BarChar) }

// PeakRune returns the first rune of the configured peak character.
func (c *Config) PeakRune() rune { return firstRune(c.PeakChar) }

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}
