// Package render turns smoothed bar and peak heights into a colored
// character grid and assembles full terminal frames with optional axes and
// border decorations.
package render

// Tier is the color band a plot row falls into. The tier depends on the
// row position only, not on the amplitude in that column, which keeps the
// per-cell work constant and reproduces the original gradient look.
type Tier uint8

const (
	TierLow Tier = iota
	TierMid
	TierHigh
)

// Cell is one plot position: the rune to draw and its color tier.
type Cell struct {
	Ch   rune
	Tier Tier
}

// RowTier returns the color tier for row y of a plot plotHeight rows tall,
// with row 0 at the top.
func RowTier(y, plotHeight int) Tier {
	if plotHeight <= 0 {
		return TierLow
	}
	relative := float64(plotHeight-y) / float64(plotHeight)
	switch {
	case relative < 0.5:
		return TierLow
	case relative < 0.75:
		return TierMid
	default:
		return TierHigh
	}
}

// Render maps bar heights (and peak heights, when peaks is non-nil) onto a
// plotHeight x plotWidth cell grid. Row 0 is the top row; a cell holds the
// bar rune when the bar in its column reaches it, and the peak rune exactly
// at the peak row, which wins over the bar rune.
func Render(bars, peaks []int, plotHeight, plotWidth int, barCh, peakCh rune) [][]Cell {
	grid := make([][]Cell, plotHeight)
	for y := range grid {
		row := make([]Cell, plotWidth)
		tier := RowTier(y, plotHeight)
		for x := range row {
			ch := ' '
			if x < len(bars) && y >= plotHeight-bars[x] {
				ch = barCh
			}
			if peaks != nil && x < len(peaks) && y == plotHeight-peaks[x] {
				ch = peakCh
			}
			row[x] = Cell{Ch: ch, Tier: tier}
		}
		grid[y] = row
	}
	return grid
}
