package dsp

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// logEpsilon keeps the dB conversion defined for silent bands.
const logEpsilon = 1e-12

// Analyzer converts raw sample buffers into per-band decibel frames using a
// precomputed band mapping. It owns no goroutines and keeps only scratch
// state, so a single frame loop can reuse one instance across frames.
type Analyzer struct {
	sampleRate   float64
	referenceAmp float64
	floorDB      float64
	bands        *Bands

	mags []float64 // scratch: per-bin magnitudes of the last buffer
}

// NewAnalyzer creates an analyzer for buffers at the given sample rate.
// referenceAmp is the magnitude mapped to 0 dB; floorDB bounds the output
// from below.
func NewAnalyzer(sampleRate, referenceAmp, floorDB float64, bands *Bands) (*Analyzer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %g", sampleRate)
	}
	if referenceAmp <= 0 {
		return nil, fmt.Errorf("reference amplitude must be positive, got %g", referenceAmp)
	}
	if bands == nil {
		return nil, fmt.Errorf("band mapping is required")
	}
	return &Analyzer{
		sampleRate:   sampleRate,
		referenceAmp: referenceAmp,
		floorDB:      floorDB,
		bands:        bands,
	}, nil
}

// SetBands swaps in a new band mapping, typically after a terminal resize.
func (a *Analyzer) SetBands(bands *Bands) {
	a.bands = bands
}

// Bands returns the active band mapping.
func (a *Analyzer) Bands() *Bands { return a.bands }

// Analyze runs a real-input FFT over the full buffer and reduces the bin
// magnitudes to one decibel value per band. Silence is not an error: every
// band bottoms out at the configured floor.
func (a *Analyzer) Analyze(samples []float64) ([]float64, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("empty sample buffer")
	}

	spectrum := fft.FFTReal(samples)
	numBins := len(samples)/2 + 1
	if cap(a.mags) < numBins {
		a.mags = make([]float64, numBins)
	}
	mags := a.mags[:numBins]
	for i := range mags {
		mags[i] = cmplx.Abs(spectrum[i])
	}

	frame := make([]float64, a.bands.NumBands())
	for i, b := range a.bands.bands {
		var mag float64
		if len(b.bins) > 0 {
			// RMS across the bins the band covers directly.
			var sum float64
			for _, bin := range b.bins {
				sum += mags[bin] * mags[bin]
			}
			mag = math.Sqrt(sum / float64(len(b.bins)))
		} else {
			// Weighted RMS across the neighboring candidate bins.
			var sum float64
			for j, bin := range b.candidates {
				sum += mags[bin] * mags[bin] * b.weights[j]
			}
			mag = math.Sqrt(sum)
		}
		db := 20 * math.Log10(mag/a.referenceAmp+logEpsilon)
		frame[i] = math.Max(db, a.floorDB)
	}
	return frame, nil
}
