package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/spectroterm/internal/capture"
	"github.com/olivier-w/spectroterm/internal/config"
	"github.com/olivier-w/spectroterm/internal/ui"
)

const version = "0.1.0"

func main() {
	os.Exit(run())
}

// run holds the whole lifecycle so deferred cleanup (the capture stream,
// the log file) still happens on failure exits.
func run() int {
	cfg, showVersion, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if showVersion {
		fmt.Printf("spectroterm %s\n", version)
		return 0
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	dev, err := capture.Open(cfg.SampleRate, cfg.FrameSamples(), 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer dev.Close()

	program := tea.NewProgram(ui.New(cfg, dev), tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if m, ok := finalModel.(ui.Model); ok && m.Err() != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", m.Err())
		return 1
	}
	return 0
}

// setupLogging routes slog to the configured file, or discards everything
// when no file is given: stderr belongs to the alt-screen TUI.
func setupLogging(path string) (func(), error) {
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	return func() { f.Close() }, nil
}
