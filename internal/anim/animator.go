// Package anim smooths raw spectrum frames into visually stable bar
// heights: bars rise instantly, fall at a bounded rate, and optional peak
// markers hold a bar's recent maximum for a configured duration.
package anim

import (
	"math"
	"time"
)

// Config holds the tuning for one Animator. Values are fixed at startup.
type Config struct {
	MinDB        float64       // dB mapped to height 0
	MaxDB        float64       // dB mapped to full plot height
	FallSpeed    float64       // rows per second a bar may fall
	PeakHold     time.Duration // how long a peak marker holds before snapping down
	PeaksEnabled bool
}

// Frame is the animator output for one spectrum frame. Peaks is nil when
// peak markers are disabled, otherwise Peaks[i] >= Bars[i] for every band.
type Frame struct {
	Bars  []int
	Peaks []int
}

// Animator owns the per-bar temporal state between frames. It is not safe
// for concurrent use; the frame loop holds the only reference.
type Animator struct {
	cfg Config

	heights  []int
	peaks    []int
	peakedAt []time.Time
	lastStep time.Time
}

// New creates an Animator with empty state; the first Step initializes the
// bars directly from that frame's targets.
func New(cfg Config) *Animator {
	return &Animator{cfg: cfg}
}

// Step consumes one decibel frame and advances the bar and peak state.
// A change in band count (terminal resize) discards all prior smoothing and
// reinitializes from the current targets.
func (a *Animator) Step(frame []float64, plotHeight int, now time.Time) Frame {
	targets := make([]int, len(frame))
	for i, db := range frame {
		targets[i] = targetHeight(db, a.cfg.MinDB, a.cfg.MaxDB, plotHeight)
	}

	if len(a.heights) != len(targets) {
		a.reset(targets, now)
		return a.frame()
	}

	dt := now.Sub(a.lastStep).Seconds()
	a.lastStep = now
	maxFall := int(a.cfg.FallSpeed * dt)
	for i, target := range targets {
		if target >= a.heights[i] {
			a.heights[i] = target
		} else if fallen := a.heights[i] - maxFall; fallen > target {
			a.heights[i] = fallen
		} else {
			a.heights[i] = target
		}
		// A vertical shrink can leave a falling bar above the new plot.
		if a.heights[i] > plotHeight {
			a.heights[i] = plotHeight
		}
	}

	if a.cfg.PeaksEnabled {
		for i, h := range a.heights {
			switch {
			case h > a.peaks[i]:
				a.peaks[i] = h
				a.peakedAt[i] = now
			case now.Sub(a.peakedAt[i]) > a.cfg.PeakHold:
				a.peaks[i] = h
				a.peakedAt[i] = now
			}
			if a.peaks[i] > plotHeight {
				a.peaks[i] = plotHeight
			}
		}
	}
	return a.frame()
}

func (a *Animator) reset(targets []int, now time.Time) {
	a.heights = make([]int, len(targets))
	copy(a.heights, targets)
	a.lastStep = now
	if a.cfg.PeaksEnabled {
		a.peaks = make([]int, len(targets))
		copy(a.peaks, targets)
		a.peakedAt = make([]time.Time, len(targets))
		for i := range a.peakedAt {
			a.peakedAt[i] = now
		}
	}
}

func (a *Animator) frame() Frame {
	f := Frame{Bars: a.heights}
	if a.cfg.PeaksEnabled {
		f.Peaks = a.peaks
	}
	return f
}

// targetHeight maps db linearly from [minDB, maxDB] onto [0, plotHeight],
// rounded to the nearest row and clamped.
func targetHeight(db, minDB, maxDB float64, plotHeight int) int {
	if maxDB <= minDB || plotHeight <= 0 {
		return 0
	}
	h := int(math.Round((db - minDB) / (maxDB - minDB) * float64(plotHeight)))
	if h < 0 {
		return 0
	}
	if h > plotHeight {
		return plotHeight
	}
	return h
}
