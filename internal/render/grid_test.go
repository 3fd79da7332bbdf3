package render

import "testing"

func TestRenderSilentGridIsEmpty(t *testing.T) {
	grid := Render(make([]int, 10), nil, 8, 10, '█', '_')
	for y, row := range grid {
		for x, cell := range row {
			if cell.Ch != ' ' {
				t.Fatalf("cell (%d,%d): expected blank on silence, got %q", x, y, cell.Ch)
			}
		}
	}
}

func TestRenderBarGeometry(t *testing.T) {
	// One column at height 3 of 5: rows 2..4 filled, rows 0..1 blank.
	grid := Render([]int{3}, nil, 5, 1, '█', '_')
	for y := 0; y < 5; y++ {
		want := ' '
		if y >= 2 {
			want = '█'
		}
		if grid[y][0].Ch != want {
			t.Fatalf("row %d: expected %q, got %q", y, want, grid[y][0].Ch)
		}
	}
}

func TestRenderPeakOverridesBar(t *testing.T) {
	grid := Render([]int{2}, []int{4}, 5, 1, '█', '_')
	if grid[1][0].Ch != '_' {
		t.Fatalf("expected peak marker at row 1, got %q", grid[1][0].Ch)
	}
	if grid[3][0].Ch != '█' || grid[4][0].Ch != '█' {
		t.Fatal("expected bar cells below the peak")
	}
	if grid[0][0].Ch != ' ' || grid[2][0].Ch != ' ' {
		t.Fatal("expected blanks outside bar and peak")
	}
}

func TestRenderPeakAtBarTopWins(t *testing.T) {
	grid := Render([]int{3}, []int{3}, 5, 1, '█', '_')
	if grid[2][0].Ch != '_' {
		t.Fatalf("expected peak to win over bar at row 2, got %q", grid[2][0].Ch)
	}
}

func TestRenderZeroPeakDrawsNothing(t *testing.T) {
	grid := Render([]int{0}, []int{0}, 5, 1, '█', '_')
	for y, row := range grid {
		if row[0].Ch != ' ' {
			t.Fatalf("row %d: expected blank for zero peak, got %q", y, row[0].Ch)
		}
	}
}

func TestRowTierThresholds(t *testing.T) {
	const plotHeight = 20
	cases := []struct {
		y    int
		want Tier
	}{
		{19, TierLow},  // bottom row
		{11, TierLow},  // relative 0.45
		{10, TierMid},  // relative 0.50
		{6, TierMid},   // relative 0.70
		{5, TierHigh},  // relative 0.75
		{0, TierHigh},  // top row
	}
	for _, tc := range cases {
		if got := RowTier(tc.y, plotHeight); got != tc.want {
			t.Fatalf("row %d: expected tier %d, got %d", tc.y, tc.want, got)
		}
	}
}

func TestLayout(t *testing.T) {
	cases := []struct {
		name                       string
		width, height              int
		axes, border               bool
		plotW, plotH, offX, offY   int
	}{
		{"bare", 80, 24, false, false, 80, 24, 0, 0},
		{"axes", 80, 24, true, false, 76, 23, 4, 0},
		{"border", 80, 24, false, true, 78, 22, 1, 1},
		{"both", 80, 24, true, true, 74, 21, 5, 1},
		{"tiny", 3, 2, true, true, 1, 1, 5, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plotW, plotH, offX, offY := Layout(tc.width, tc.height, tc.axes, tc.border)
			if plotW != tc.plotW || plotH != tc.plotH || offX != tc.offX || offY != tc.offY {
				t.Fatalf("got (%d,%d,%d,%d), expected (%d,%d,%d,%d)",
					plotW, plotH, offX, offY, tc.plotW, tc.plotH, tc.offX, tc.offY)
			}
		})
	}
}
