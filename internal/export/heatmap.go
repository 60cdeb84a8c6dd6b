package export

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/born-ml/einsum/internal/tensor"
)

// HeatmapOptions controls heat map rendering.
type HeatmapOptions struct {
	Title  string
	XLabel string    // Label of the last axis
	YLabel string    // Label of the second to last axis
	Width  vg.Length // Image width
	Height vg.Length // Image height
	Colors int       // Number of palette steps
}

// DefaultHeatmapOptions returns a square 4 inch image with a 12 step heat palette.
func DefaultHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{
		Width:  4 * vg.Inch,
		Height: 4 * vg.Inch,
		Colors: 12,
	}
}

// sliceGrid adapts a matrix slice to plotter.GridXYZ.
// Rows are flipped so that row 0 is drawn at the top, as in PrintSlices.
type sliceGrid struct {
	m matrix
}

func (g sliceGrid) Dims() (c, r int)      { return g.m.cols, g.m.rows }
func (g sliceGrid) Z(c, r int) float64    { return g.m.at(g.m.rows-1-r, c) }
func (g sliceGrid) X(c int) float64       { return float64(c) }
func (g sliceGrid) Y(r int) float64       { return float64(r) }
func (g sliceGrid) rowLabel(r int) string { return fmt.Sprint(g.m.rows - 1 - r) }

// RenderHeatmap draws the 2-D slice of t selected by lead (one index per
// leading axis; empty for a matrix) and saves it to path. The image
// format follows the file extension (.png, .svg, .pdf, ...). Missing
// parent directories are created.
func RenderHeatmap(path string, t *tensor.Tensor, lead []int, opts HeatmapOptions) error {
	m, err := matrixAt(t, lead)
	if err != nil {
		return err
	}
	defaults := DefaultHeatmapOptions()
	if opts.Colors < 2 {
		opts.Colors = defaults.Colors
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = defaults.Width, defaults.Height
	}

	grid := sliceGrid{m: m}
	h := plotter.NewHeatMap(grid, palette.Heat(opts.Colors, 1))
	if h.Min == h.Max {
		// A constant slice would collapse the palette range.
		h.Max = h.Min + 1
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Add(h)

	ticks := make([]plot.Tick, m.rows)
	for r := range ticks {
		ticks[r] = plot.Tick{Value: float64(r), Label: grid.rowLabel(r)}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("failed to save heat map: %w", err)
	}
	return nil
}
