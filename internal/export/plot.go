package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/vtkview/internal/colormap"
	"github.com/san-kum/vtkview/internal/render"
	"github.com/san-kum/vtkview/internal/vtk"
)

const paletteSize = 256

// PlotFormats are the formats WritePlot accepts.
var PlotFormats = []string{"png", "svg", "pdf"}

type PlotOptions struct {
	Format string
	Width  vg.Length
	Height vg.Length
	Title  string
	Legend bool
}

// frameGrid exposes a frame as plotter.GridXYZ in physical coordinates.
// Row r of the grid is the r-th row from the bottom.
type frameGrid struct {
	f       *render.Frame
	origin  [3]float64
	spacing [3]float64
}

func (g frameGrid) Dims() (c, r int) { return g.f.Width, g.f.Height }

func (g frameGrid) Z(c, r int) float64 {
	return g.f.Values[g.f.Height-1-r][c]
}

func (g frameGrid) X(c int) float64 { return g.origin[0] + float64(c)*g.spacing[0] }
func (g frameGrid) Y(r int) float64 { return g.origin[1] + float64(r)*g.spacing[1] }

// scalePalette samples an interpolator into a fixed palette.
type scalePalette []color.Color

func (p scalePalette) Colors() []color.Color { return p }

func newScalePalette(interp colormap.Interpolator, n int) scalePalette {
	samples := colormap.Sample(interp, n)
	p := make(scalePalette, len(samples))
	for i, c := range samples {
		p[i] = c
	}
	return p
}

// scaleColorMap adapts a colormap interpolator to palette.ColorMap for
// the color bar.
type scaleColorMap struct {
	interp   colormap.Interpolator
	min, max float64
	alpha    float64
}

func (m *scaleColorMap) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < m.min:
		return nil, palette.ErrUnderflow
	case v > m.max:
		return nil, palette.ErrOverflow
	}
	c := m.interp((v - m.min) / (m.max - m.min))
	c.A = uint8(math.Round(m.alpha * 255))
	return c, nil
}

func (m *scaleColorMap) Max() float64       { return m.max }
func (m *scaleColorMap) Min() float64       { return m.min }
func (m *scaleColorMap) SetMax(v float64)   { m.max = v }
func (m *scaleColorMap) SetMin(v float64)   { m.min = v }
func (m *scaleColorMap) Alpha() float64     { return m.alpha }
func (m *scaleColorMap) SetAlpha(a float64) { m.alpha = a }
func (m *scaleColorMap) Palette(n int) palette.Palette {
	return newScalePalette(m.interp, n)
}

// legendTicks labels the color bar with the same ticks as the legend.
type legendTicks struct{}

func (legendTicks) Ticks(min, max float64) []plot.Tick {
	values := colormap.Ticks(min, max, colormap.DefaultTickCount)
	ticks := make([]plot.Tick, len(values))
	for i, v := range values {
		ticks[i] = plot.Tick{Value: v, Label: colormap.FormatTick(v)}
	}
	return ticks
}

// NewHeatMapPlot builds the heatmap plot of f over the physical extent
// of g. Values outside the frame range take the end colors and NaN takes
// the minimum color, matching the rendered frame.
func NewHeatMapPlot(g *vtk.Grid, f *render.Frame, title string) (*plot.Plot, error) {
	if f.Width < 2 || f.Height < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGridTooSmall, f.Width, f.Height)
	}

	interp := colormap.Lookup(f.Colormap)
	pal := newScalePalette(interp, paletteSize)

	hm := plotter.NewHeatMap(frameGrid{f: f, origin: g.Origin, spacing: g.Spacing}, pal)
	hm.Min = f.Range.Min
	hm.Max = f.Range.Max
	hm.Underflow = pal[0]
	hm.Overflow = pal[len(pal)-1]
	hm.NaN = pal[0]

	p := plot.New()
	if title == "" {
		title = f.Field
	}
	p.Title.Text = title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.Add(hm)
	return p, nil
}

// NewColorBarPlot builds a vertical color bar plot for f.
func NewColorBarPlot(f *render.Frame) *plot.Plot {
	cm := &scaleColorMap{
		interp: colormap.Lookup(f.Colormap),
		min:    f.Range.Min,
		max:    f.Range.Max,
		alpha:  1,
	}

	p := plot.New()
	p.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: paletteSize})
	p.HideX()
	p.Y.Tick.Marker = legendTicks{}
	p.Y.Padding = 0
	return p
}

// WritePlot draws the heatmap of f, and its color bar when requested, to
// w in opts.Format.
func WritePlot(w io.Writer, g *vtk.Grid, f *render.Frame, opts PlotOptions) error {
	if !isPlotFormat(opts.Format) {
		return &FormatError{Format: opts.Format}
	}
	if opts.Width <= 0 {
		opts.Width = 16 * vg.Centimeter
	}
	if opts.Height <= 0 {
		opts.Height = 12 * vg.Centimeter
	}

	heat, err := NewHeatMapPlot(g, f, opts.Title)
	if err != nil {
		return err
	}

	c, err := draw.NewFormattedCanvas(opts.Width, opts.Height, opts.Format)
	if err != nil {
		return err
	}
	dc := draw.New(c)

	if opts.Legend {
		barW := opts.Width / 6
		heat.Draw(draw.Crop(dc, 0, -barW, 0, 0))
		bar := NewColorBarPlot(f)
		bar.Title.Text = " "
		bar.Draw(draw.Crop(dc, opts.Width-barW, 0, 0, 0))
	} else {
		heat.Draw(dc)
	}

	_, err = c.WriteTo(w)
	return err
}

func isPlotFormat(format string) bool {
	for _, f := range PlotFormats {
		if f == format {
			return true
		}
	}
	return false
}
