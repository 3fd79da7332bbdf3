package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/spectroterm/internal/util"
)

const (
	// axisWidth columns on the left hold dB tick labels, axisHeight rows at
	// the bottom hold the frequency ticks.
	axisWidth  = 4
	axisHeight = 1

	frameTitle = "Spectrum Analyzer"
)

// tickFrequencies are the reference points labeled on the horizontal axis.
var tickFrequencies = []float64{30, 100, 200, 500, 1000, 2000, 5000, 10000, 16000}

// Layout computes the plot area inside a width x height terminal once
// border and axis decorations have taken their share. The plot never
// reaches the bottom border or the frequency axis row, so decorations
// survive every frame. The returned plot width doubles as the number of
// bands to analyze.
func Layout(width, height int, axes, border bool) (plotWidth, plotHeight, offX, offY int) {
	b, a := 0, 0
	if border {
		b = 1
	}
	if axes {
		a = 1
	}
	plotWidth = width - 2*b - axisWidth*a
	plotHeight = height - 2*b - axisHeight*a
	if plotWidth < 1 {
		plotWidth = 1
	}
	if plotHeight < 1 {
		plotHeight = 1
	}
	return plotWidth, plotHeight, b + axisWidth*a, b
}

// Config fixes a Renderer's appearance at startup.
type Config struct {
	BarChar  rune
	PeakChar rune
	MinDB    float64
	MaxDB    float64
	Color    bool
	Axes     bool
	Border   bool
}

// Renderer assembles full terminal frames. Color styles are resolved once
// at construction and reused for every frame.
type Renderer struct {
	cfg    Config
	styles [3]lipgloss.Style
}

// New creates a Renderer. When color is enabled the three tiers use the
// classic green / orange / red meter palette.
func New(cfg Config) *Renderer {
	r := &Renderer{cfg: cfg}
	if cfg.Color {
		r.styles[TierLow] = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
		r.styles[TierMid] = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
		r.styles[TierHigh] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	} else {
		for i := range r.styles {
			r.styles[i] = lipgloss.NewStyle()
		}
	}
	return r
}

// Frame renders one complete terminal frame: the decorations are drawn
// onto the canvas and the bar grid fills the plot area, which Layout keeps
// clear of every decoration row and column. edges is the band boundary
// axis used for frequency ticks; peaks may be nil.
func (r *Renderer) Frame(bars, peaks []int, edges []float64, width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	plotW, plotH, offX, offY := Layout(width, height, r.cfg.Axes, r.cfg.Border)
	decorate := offX+plotW <= width && offY+plotH <= height
	if !decorate {
		// Terminal too small for the margins; draw the bare plot instead.
		plotW, plotH, offX, offY = Layout(width, height, false, false)
	}

	canvas := make([][]rune, height)
	for y := range canvas {
		canvas[y] = blankRow(width)
	}
	if decorate && r.cfg.Border {
		drawBorder(canvas)
		drawText(canvas, 0, 2, frameTitle)
	}
	if decorate && r.cfg.Axes {
		r.drawDBAxis(canvas, plotH, offY)
		r.drawFreqAxis(canvas, edges, plotW, offX, height)
	}

	grid := Render(bars, peaks, plotH, plotW, r.cfg.BarChar, r.cfg.PeakChar)

	var sb strings.Builder
	for y := range canvas {
		if y > 0 {
			sb.WriteByte('\n')
		}
		py := y - offY
		if py < 0 || py >= plotH {
			sb.WriteString(string(canvas[y]))
			continue
		}
		sb.WriteString(string(canvas[y][:offX]))
		plot := make([]rune, plotW)
		for x, cell := range grid[py] {
			plot[x] = cell.Ch
		}
		sb.WriteString(r.styles[RowTier(py, plotH)].Render(string(plot)))
		sb.WriteString(string(canvas[y][offX+plotW:]))
	}
	return sb.String()
}

// drawDBAxis labels every 10 dB step on the left margin.
func (r *Renderer) drawDBAxis(canvas [][]rune, plotH, offY int) {
	span := r.cfg.MaxDB - r.cfg.MinDB
	if span <= 0 {
		return
	}
	for db := int(r.cfg.MinDB); db <= int(r.cfg.MaxDB); db += 10 {
		pos := int(math.Round((r.cfg.MaxDB - float64(db)) / span * float64(plotH)))
		if pos >= 0 && pos < plotH {
			drawText(canvas, offY+pos, offY, util.FormatDB(db))
		}
	}
	drawText(canvas, offY, offY+1, "dB")
}

// drawFreqAxis labels the reference frequencies that fall inside the band
// range on the bottom row, at the band edge nearest each reference.
func (r *Renderer) drawFreqAxis(canvas [][]rune, edges []float64, plotW, offX, height int) {
	if len(edges) < 2 {
		return
	}
	b := 0
	if r.cfg.Border {
		b = 1
	}
	row := height - 1 - b
	if row < 0 || row >= len(canvas) {
		return
	}
	for _, f := range tickFrequencies {
		if f <= edges[0] || f >= edges[len(edges)-1] {
			continue
		}
		pos := nearestEdge(edges, f)
		if pos >= 0 && pos < plotW-5 {
			drawText(canvas, row, offX+pos, util.FormatFrequency(f))
		}
	}
	if plotW > 3 {
		drawText(canvas, row, offX+plotW-3, "Hz")
	}
}

func nearestEdge(edges []float64, f float64) int {
	best, bestDist := 0, math.MaxFloat64
	for i, e := range edges {
		if d := math.Abs(e - f); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func blankRow(width int) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}
	return row
}

func drawText(canvas [][]rune, y, x int, s string) {
	if y < 0 || y >= len(canvas) {
		return
	}
	for i, ch := range []rune(s) {
		if x+i >= 0 && x+i < len(canvas[y]) {
			canvas[y][x+i] = ch
		}
	}
}

func drawBorder(canvas [][]rune) {
	h := len(canvas)
	if h < 2 {
		return
	}
	w := len(canvas[0])
	if w < 2 {
		return
	}
	for x := 1; x < w-1; x++ {
		canvas[0][x] = '─'
		canvas[h-1][x] = '─'
	}
	for y := 1; y < h-1; y++ {
		canvas[y][0] = '│'
		canvas[y][w-1] = '│'
	}
	canvas[0][0] = '┌'
	canvas[0][w-1] = '┐'
	canvas[h-1][0] = '└'
	canvas[h-1][w-1] = '┘'
}
