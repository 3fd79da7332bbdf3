package config

import (
	"flag"
	"fmt"
	"io"
)

// Parse builds the configuration for one run from args (without the program
// name). Precedence, lowest first: built-in defaults, the YAML file named
// by -config, explicit flags. Returns flag.ErrHelp when -h was requested
// and showVersion=true when -v/-version was given.
func Parse(args []string, output io.Writer) (cfg Config, showVersion bool, err error) {
	cfg = Default()

	fs := flag.NewFlagSet("spectroterm", flag.ContinueOnError)
	fs.SetOutput(output)

	var configPath string
	fs.StringVar(&configPath, "config", "", "YAML config file")

	flags := Default()
	fs.BoolVar(&flags.Axes, "a", flags.Axes, "draw graph axes")
	fs.BoolVar(&flags.Axes, "axes", flags.Axes, "draw graph axes")
	fs.BoolVar(&flags.Border, "b", flags.Border, "draw lines at terminal borders")
	fs.BoolVar(&flags.Border, "border", flags.Border, "draw lines at terminal borders")
	fs.BoolVar(&flags.Color, "c", flags.Color, "3 color mode")
	fs.BoolVar(&flags.Color, "color", flags.Color, "3 color mode")
	fs.BoolVar(&flags.Peaks, "p", flags.Peaks, "draw peaks that disappear after some time")
	fs.BoolVar(&flags.Peaks, "peaks", flags.Peaks, "draw peaks that disappear after some time")
	fs.Float64Var(&flags.FallSpeed, "f", flags.FallSpeed, "speed at which bars fall in rows per second")
	fs.Float64Var(&flags.FallSpeed, "fall-speed", flags.FallSpeed, "speed at which bars fall in rows per second")
	fs.IntVar(&flags.PeakHoldMS, "o", flags.PeakHoldMS, "time after which a peak disappears, in ms")
	fs.IntVar(&flags.PeakHoldMS, "peak-hold", flags.PeakHoldMS, "time after which a peak disappears, in ms")
	fs.StringVar(&flags.BarChar, "r", flags.BarChar, "character used to draw bars")
	fs.StringVar(&flags.BarChar, "bar-character", flags.BarChar, "character used to draw bars")
	fs.StringVar(&flags.PeakChar, "k", flags.PeakChar, "character used to draw peaks")
	fs.StringVar(&flags.PeakChar, "peak-character", flags.PeakChar, "character used to draw peaks")
	fs.Float64Var(&flags.MinFreq, "min-freq", flags.MinFreq, "minimum frequency on the x axis, Hz")
	fs.Float64Var(&flags.MaxFreq, "max-freq", flags.MaxFreq, "maximum frequency on the x axis, Hz")
	fs.Float64Var(&flags.MinDB, "min-db", flags.MinDB, "minimum loudness on the y axis, dB")
	fs.Float64Var(&flags.MaxDB, "max-db", flags.MaxDB, "maximum loudness on the y axis, dB")
	fs.Float64Var(&flags.FloorDB, "floor-db", flags.FloorDB, "lower bound on any band's reported loudness, dB")
	fs.Float64Var(&flags.SampleRate, "sample-rate", flags.SampleRate, "capture device sample rate")
	fs.IntVar(&flags.SampleSizeMS, "sample-size", flags.SampleSizeMS, "sample window in ms, higher values decrease fps")
	fs.Float64Var(&flags.ReferenceMax, "reference-max", flags.ReferenceMax, "amplitude mapped to maximum loudness")
	fs.StringVar(&flags.LogFile, "log-file", flags.LogFile, "write debug logs to this file")
	fs.BoolVar(&showVersion, "v", false, "print version and exit")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, false, err
	}

	if configPath != "" {
		if err := cfg.LoadFile(configPath); err != nil {
			return cfg, false, err
		}
	}

	// Explicit flags win over the config file.
	appliers := map[string]func(){
		"a": func() { cfg.Axes = flags.Axes }, "axes": func() { cfg.Axes = flags.Axes },
		"b": func() { cfg.Border = flags.Border }, "border": func() { cfg.Border = flags.Border },
		"c": func() { cfg.Color = flags.Color }, "color": func() { cfg.Color = flags.Color },
		"p": func() { cfg.Peaks = flags.Peaks }, "peaks": func() { cfg.Peaks = flags.Peaks },
		"f": func() { cfg.FallSpeed = flags.FallSpeed }, "fall-speed": func() { cfg.FallSpeed = flags.FallSpeed },
		"o": func() { cfg.PeakHoldMS = flags.PeakHoldMS }, "peak-hold": func() { cfg.PeakHoldMS = flags.PeakHoldMS },
		"r": func() { cfg.BarChar = flags.BarChar }, "bar-character": func() { cfg.BarChar = flags.BarChar },
		"k": func() { cfg.PeakChar = flags.PeakChar }, "peak-character": func() { cfg.PeakChar = flags.PeakChar },
		"min-freq":      func() { cfg.MinFreq = flags.MinFreq },
		"max-freq":      func() { cfg.MaxFreq = flags.MaxFreq },
		"min-db":        func() { cfg.MinDB = flags.MinDB },
		"max-db":        func() { cfg.MaxDB = flags.MaxDB },
		"floor-db":      func() { cfg.FloorDB = flags.FloorDB },
		"sample-rate":   func() { cfg.SampleRate = flags.SampleRate },
		"sample-size":   func() { cfg.SampleSizeMS = flags.SampleSizeMS },
		"reference-max": func() { cfg.ReferenceMax = flags.ReferenceMax },
		"log-file":      func() { cfg.LogFile = flags.LogFile },
	}
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := appliers[f.Name]; ok {
			apply()
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, false, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, showVersion, nil
}
