// Package ui runs the visualizer's frame loop as a Bubbletea model: one
// blocking capture read per frame, then analysis, animation, and rendering
// in sequence. Resize and quit are handled between frames, never inside
// one.
package ui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/spectroterm/internal/anim"
	"github.com/olivier-w/spectroterm/internal/config"
	"github.com/olivier-w/spectroterm/internal/dsp"
	"github.com/olivier-w/spectroterm/internal/render"
)

// Source delivers fixed-length mono sample buffers. capture.Device is the
// production implementation; tests substitute their own.
type Source interface {
	Read() ([]float64, error)
	SampleRate() float64
}

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

// Model is the Bubbletea model for the spectrum display.
type Model struct {
	cfg      config.Config
	source   Source
	keys     keyMap
	binFreqs []float64

	analyzer *dsp.Analyzer
	animator *anim.Animator
	renderer *render.Renderer

	width  int
	height int
	plotW  int
	plotH  int

	frame    string
	err      error
	quitting bool
}

// New creates a model for the given configuration and capture source. The
// spectrum pipeline is sized on the first window-size message.
func New(cfg config.Config, src Source) Model {
	return Model{
		cfg:      cfg,
		source:   src,
		keys:     defaultKeyMap(),
		binFreqs: dsp.BinFrequencies(cfg.FrameSamples(), cfg.SampleRate),
		animator: anim.New(anim.Config{
			MinDB:        cfg.MinDB,
			MaxDB:        cfg.MaxDB,
			FallSpeed:    cfg.FallSpeed,
			PeakHold:     time.Duration(cfg.PeakHoldMS) * time.Millisecond,
			PeaksEnabled: cfg.Peaks,
		}),
		renderer: render.New(render.Config{
			BarChar:  cfg.BarRune(),
			PeakChar: cfg.PeakRune(),
			MinDB:    cfg.MinDB,
			MaxDB:    cfg.MaxDB,
			Color:    cfg.Color,
			Axes:     cfg.Axes,
			Border:   cfg.Border,
		}),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(readCmd(m.source), tea.SetWindowTitle("spectroterm"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case samplesMsg:
		if m.quitting || m.err != nil {
			return m, nil
		}
		next := m.step(msg)
		if next.err != nil {
			return next, errPauseCmd()
		}
		return next, readCmd(m.source)

	case captureErrMsg:
		slog.Error("capture failed", "error", msg.err)
		m.err = fmt.Errorf("audio capture failed: %w", msg.err)
		return m, errPauseCmd()

	case errPauseDoneMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// resize recomputes the plot area and rebuilds the band mapping so the next
// analyzed frame matches the new bar count. The animator notices the new
// band count on its next step and starts fresh.
func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height
	m.plotW, m.plotH, _, _ = render.Layout(width, height, m.cfg.Axes, m.cfg.Border)

	bands, err := dsp.NewBands(m.cfg.MinFreq, m.cfg.MaxFreq, m.plotW, m.binFreqs)
	if err != nil {
		m.err = err
		return m
	}
	if m.analyzer == nil {
		m.analyzer, err = dsp.NewAnalyzer(m.cfg.SampleRate, m.cfg.ReferenceMax, m.cfg.FloorDB, bands)
		if err != nil {
			m.err = err
			return m
		}
	} else {
		m.analyzer.SetBands(bands)
	}
	slog.Info("resized", "width", width, "height", height, "bands", m.plotW)
	return m
}

// step runs the full pipeline on one captured buffer.
func (m Model) step(samples []float64) Model {
	if m.analyzer == nil {
		// No window size yet; skip this buffer.
		return m
	}
	dbFrame, err := m.analyzer.Analyze(samples)
	if err != nil {
		m.err = fmt.Errorf("spectrum analysis failed: %w", err)
		return m
	}
	frame := m.animator.Step(dbFrame, m.plotH, time.Now())
	m.frame = m.renderer.Frame(frame.Bars, frame.Peaks, m.analyzer.Bands().Edges(), m.width, m.height)
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	return m.frame
}

// Err returns the fatal error that ended the run, if any.
func (m Model) Err() error { return m.err }
