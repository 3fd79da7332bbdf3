// Package dsp turns raw sample buffers into logarithmically banded decibel
// spectra: a band mapper precomputes how FFT bins project onto log-spaced
// bands, and an analyzer applies that mapping to each captured buffer.
package dsp

import (
	"fmt"
	"math"
	"sort"
)

// centerEpsilon keeps the interpolation weight finite when a candidate bin
// sits exactly on a band center.
const centerEpsilon = 1e-6

// Bands maps the linear FFT bin axis onto a logarithmic frequency axis.
// It is built once at startup and rebuilt whenever the bar count or the
// frequency range changes; between rebuilds it is immutable.
type Bands struct {
	edges []float64
	bands []band
}

// band holds the precomputed bin selection for one bar. Either bins is
// non-empty (at least one FFT bin falls inside the band) or candidates and
// weights describe the interpolation across the nearest neighboring bins.
type band struct {
	bins       []int
	candidates []int
	weights    []float64
}

// NewBands computes logarithmic band edges between minFreq and maxFreq and,
// for every band too narrow to contain an FFT bin, interpolation weights
// over the bins nearest its boundaries. binFreqs must be the ascending
// real-FFT frequency axis.
func NewBands(minFreq, maxFreq float64, numBands int, binFreqs []float64) (*Bands, error) {
	if numBands <= 0 {
		return nil, fmt.Errorf("band count must be positive, got %d", numBands)
	}
	if minFreq <= 0 {
		return nil, fmt.Errorf("minimum frequency must be positive, got %g", minFreq)
	}
	if minFreq >= maxFreq {
		return nil, fmt.Errorf("frequency range is empty: %g..%g Hz", minFreq, maxFreq)
	}

	edges := make([]float64, numBands+1)
	ratio := maxFreq / minFreq
	for i := range edges {
		edges[i] = minFreq * math.Pow(ratio, float64(i)/float64(numBands))
	}
	// Pow rounding can land the endpoints a hair off.
	edges[0] = minFreq
	edges[numBands] = maxFreq

	b := &Bands{
		edges: edges,
		bands: make([]band, numBands),
	}
	for i := range b.bands {
		b.bands[i] = makeBand(edges[i], edges[i+1], binFreqs)
	}
	return b, nil
}

func makeBand(left, right float64, binFreqs []float64) band {
	lo := sort.SearchFloat64s(binFreqs, left)
	hi := sort.SearchFloat64s(binFreqs, right)
	if lo < hi {
		bins := make([]int, 0, hi-lo)
		for i := lo; i < hi; i++ {
			bins = append(bins, i)
		}
		return band{bins: bins}
	}

	// No bin falls inside the band: interpolate over the bins straddling
	// each boundary, weighted by distance to the band center.
	seen := make(map[int]bool, 4)
	var candidates []int
	add := func(i int) {
		if i >= 0 && i < len(binFreqs) && !seen[i] {
			seen[i] = true
			candidates = append(candidates, i)
		}
	}
	add(lo - 1)
	add(lo)
	if hi != lo {
		add(hi - 1)
		add(hi)
	}

	center := (left + right) / 2
	weights := make([]float64, len(candidates))
	var sum float64
	for i, bin := range candidates {
		w := 1 / (math.Abs(binFreqs[bin]-center) + centerEpsilon)
		weights[i] = w
		sum += w
	}
	for i := range weights {
		weights[i] /= sum
	}
	return band{candidates: candidates, weights: weights}
}

// NumBands returns the number of bands.
func (b *Bands) NumBands() int { return len(b.bands) }

// Edges returns the band boundary frequencies, len NumBands()+1.
func (b *Bands) Edges() []float64 { return b.edges }

// BinFrequencies returns the real-FFT frequency axis for a buffer of n
// samples at the given sample rate: n/2+1 linearly spaced values from 0 to
// the Nyquist frequency.
func BinFrequencies(n int, sampleRate float64) []float64 {
	freqs := make([]float64, n/2+1)
	for i := range freqs {
		freqs[i] = float64(i) * sampleRate / float64(n)
	}
	return freqs
}
