package util

import (
	"fmt"
	"math"
)

// FormatFrequency formats a frequency for an axis tick: whole hertz below
// 1 kHz ("500"), rounded kilohertz above ("2k").
func FormatFrequency(hz float64) string {
	if hz >= 1000 {
		return fmt.Sprintf("%dk", int(math.Round(hz/1000)))
	}
	return fmt.Sprintf("%d", int(math.Round(hz)))
}

// FormatDB right-justifies a decibel tick label to three characters, the
// width reserved for the vertical axis.
func FormatDB(db int) string {
	return fmt.Sprintf("%3d", db)
}
