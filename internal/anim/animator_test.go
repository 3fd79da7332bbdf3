package anim

import (
	"testing"
	"time"
)

// dbForHeight returns the decibel value that maps exactly onto height h for
// a [-90, 0] range and the given plot height.
func dbForHeight(h, plotHeight int) float64 {
	return -90 + float64(h)/float64(plotHeight)*90
}

func testConfig() Config {
	return Config{
		MinDB:     -90,
		MaxDB:     0,
		FallSpeed: 5,
		PeakHold:  100 * time.Millisecond,
	}
}

func frameOf(db float64, n int) []float64 {
	frame := make([]float64, n)
	for i := range frame {
		frame[i] = db
	}
	return frame
}

func TestFirstStepInitializesFromTargets(t *testing.T) {
	a := New(testConfig())
	f := a.Step(frameOf(dbForHeight(10, 20), 4), 20, time.Now())
	if len(f.Bars) != 4 {
		t.Fatalf("expected 4 bars, got %d", len(f.Bars))
	}
	for i, h := range f.Bars {
		if h != 10 {
			t.Fatalf("bar %d: expected initial height 10, got %d", i, h)
		}
	}
}

func TestFallIsLimitedByElapsedTime(t *testing.T) {
	a := New(testConfig())
	t0 := time.Now()
	a.Step(frameOf(dbForHeight(10, 20), 1), 20, t0)

	// Target drops to 0; at 5 rows/s and dt=1s the bar may fall 5 rows.
	f := a.Step(frameOf(-90, 1), 20, t0.Add(time.Second))
	if f.Bars[0] != 5 {
		t.Fatalf("expected height 5 after limited fall, got %d", f.Bars[0])
	}

	// Never below target: a long gap falls all the way but not past it.
	f = a.Step(frameOf(dbForHeight(2, 20), 1), 20, t0.Add(10*time.Second))
	if f.Bars[0] != 2 {
		t.Fatalf("expected height 2 after long fall, got %d", f.Bars[0])
	}
}

func TestAttackIsInstant(t *testing.T) {
	a := New(testConfig())
	t0 := time.Now()
	a.Step(frameOf(-90, 1), 20, t0)

	f := a.Step(frameOf(dbForHeight(18, 20), 1), 20, t0.Add(10*time.Millisecond))
	if f.Bars[0] != 18 {
		t.Fatalf("expected instant rise to 18, got %d", f.Bars[0])
	}
}

func TestBandCountChangeResetsState(t *testing.T) {
	a := New(testConfig())
	t0 := time.Now()
	a.Step(frameOf(dbForHeight(15, 20), 4), 20, t0)

	// A resize changes the band count: heights come fresh from the new
	// frame's targets with no carried-over smoothing.
	f := a.Step(frameOf(dbForHeight(3, 20), 6), 20, t0.Add(50*time.Millisecond))
	if len(f.Bars) != 6 {
		t.Fatalf("expected 6 bars after resize, got %d", len(f.Bars))
	}
	for i, h := range f.Bars {
		if h != 3 {
			t.Fatalf("bar %d: expected fresh height 3, got %d", i, h)
		}
	}
}

func TestTargetsClampedToPlotHeight(t *testing.T) {
	a := New(testConfig())
	f := a.Step(frameOf(40, 1), 20, time.Now()) // above MaxDB
	if f.Bars[0] != 20 {
		t.Fatalf("expected clamp to plot height 20, got %d", f.Bars[0])
	}
}

func TestPeakHoldsThenSnapsDown(t *testing.T) {
	cfg := testConfig()
	cfg.PeaksEnabled = true
	cfg.FallSpeed = 1000 // bars track targets immediately
	a := New(cfg)
	t0 := time.Now()

	a.Step(frameOf(dbForHeight(10, 20), 1), 20, t0)

	// Bar drops; peak holds its raised height while within the hold window.
	f := a.Step(frameOf(dbForHeight(2, 20), 1), 20, t0.Add(50*time.Millisecond))
	if f.Bars[0] != 2 {
		t.Fatalf("expected bar 2, got %d", f.Bars[0])
	}
	if f.Peaks[0] != 10 {
		t.Fatalf("expected held peak 10, got %d", f.Peaks[0])
	}

	// Once the hold expires the peak snaps down to the current bar.
	f = a.Step(frameOf(dbForHeight(2, 20), 1), 20, t0.Add(200*time.Millisecond))
	if f.Peaks[0] != 2 {
		t.Fatalf("expected peak to snap to bar 2, got %d", f.Peaks[0])
	}
}

func TestPeakNeverBelowBar(t *testing.T) {
	cfg := testConfig()
	cfg.PeaksEnabled = true
	a := New(cfg)
	now := time.Now()

	heights := []int{3, 12, 7, 19, 0, 5, 20, 1}
	for _, h := range heights {
		now = now.Add(40 * time.Millisecond)
		f := a.Step(frameOf(dbForHeight(h, 20), 2), 20, now)
		for i := range f.Bars {
			if f.Peaks[i] < f.Bars[i] {
				t.Fatalf("peak %d below bar %d", f.Peaks[i], f.Bars[i])
			}
		}
	}
}

func TestVerticalShrinkBoundsBarsAndPeaks(t *testing.T) {
	cfg := testConfig()
	cfg.PeaksEnabled = true
	a := New(cfg)
	t0 := time.Now()

	a.Step(frameOf(dbForHeight(18, 20), 2), 20, t0)

	// The plot shrinks to 10 rows with the same band count: both bars and
	// held peaks must come down inside the new plot immediately.
	f := a.Step(frameOf(-90, 2), 10, t0.Add(10*time.Millisecond))
	for i := range f.Bars {
		if f.Bars[i] > 10 {
			t.Fatalf("bar %d above shrunk plot: %d", i, f.Bars[i])
		}
		if f.Peaks[i] > 10 {
			t.Fatalf("peak %d above shrunk plot: %d", i, f.Peaks[i])
		}
		if f.Peaks[i] < f.Bars[i] {
			t.Fatalf("peak %d below bar %d after shrink", f.Peaks[i], f.Bars[i])
		}
	}
}

func TestPeaksDisabledYieldsNil(t *testing.T) {
	a := New(testConfig())
	f := a.Step(frameOf(-45, 3), 20, time.Now())
	if f.Peaks != nil {
		t.Fatal("expected nil peaks when disabled")
	}
}
