package render

import (
	"errors"
	"image"
	"image/color"

	"github.com/san-kum/vtkview/internal/colormap"
	"github.com/san-kum/vtkview/internal/vtk"
)

// Frame is a rendered field: one color per grid cell plus its legend.
type Frame struct {
	Field    string
	Colormap string
	Range    colormap.Range
	Auto     bool
	Width    int
	Height   int
	Pixels   [][]color.RGBA
	Values   [][]float64
	Legend   Legend
}

// At returns the color of display cell (x, row).
func (f *Frame) At(x, row int) color.RGBA {
	return f.Pixels[row][x]
}

// Image converts the frame to an RGBA image, cell pixels wide per point.
func (f *Frame) Image(cell int) *image.RGBA {
	if cell < 1 {
		cell = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, f.Width*cell, f.Height*cell))
	for row := 0; row < f.Height; row++ {
		for x := 0; x < f.Width; x++ {
			c := f.Pixels[row][x]
			for dy := 0; dy < cell; dy++ {
				for dx := 0; dx < cell; dx++ {
					img.SetRGBA(x*cell+dx, row*cell+dy, c)
				}
			}
		}
	}
	return img
}

// ResolveRange picks the range a render will use. A nil manual range
// means auto: the field's finite min/max, widened when degenerate. A
// manual range must be valid.
func ResolveRange(field *vtk.ScalarField, manual *colormap.Range) (colormap.Range, error) {
	if manual != nil {
		if !manual.Valid() {
			return colormap.Range{}, &RangeError{Range: *manual}
		}
		return *manual, nil
	}
	rng, ok := colormap.AutoRange(field.Values)
	if !ok {
		return colormap.Range{Min: 0, Max: 1}, nil
	}
	return rng.Widen(), nil
}

// MaxCells caps the nx*ny slice Render will allocate.
const MaxCells = 1 << 24

// Render maps field of g through the named colormap. A nil rng selects
// auto range.
func Render(g *vtk.Grid, field, cmap string, rng *colormap.Range) (*Frame, error) {
	sf, ok := g.Scalar(field)
	if !ok {
		return nil, &FieldNotFoundError{Field: field}
	}

	nx, ny := g.NX(), g.NY()
	if nx <= 0 || ny <= 0 || nx > MaxCells/ny {
		return nil, &SizeError{NX: nx, NY: ny}
	}

	r, err := ResolveRange(sf, rng)
	if err != nil {
		return nil, err
	}

	cm := colormap.Resolve(cmap)
	scale := colormap.NewScale(cm.Interpolate, r)

	pixels := make([][]color.RGBA, ny)
	values := make([][]float64, ny)
	for j := 0; j < ny; j++ {
		row := ny - 1 - j
		pixels[row] = make([]color.RGBA, nx)
		values[row] = make([]float64, nx)
		for i := 0; i < nx; i++ {
			v := g.Value(sf, i, j)
			values[row][i] = v
			pixels[row][i] = scale.At(v)
		}
	}

	return &Frame{
		Field:    field,
		Colormap: cm.Name,
		Range:    r,
		Auto:     rng == nil,
		Width:    nx,
		Height:   ny,
		Pixels:   pixels,
		Values:   values,
		Legend:   NewLegend(scale),
	}, nil
}

// RenderWithFallback renders with rng and, when rng is rejected, renders
// the same field again in auto mode. fellBack reports that the retry
// happened.
func RenderWithFallback(g *vtk.Grid, field, cmap string, rng *colormap.Range) (f *Frame, fellBack bool, err error) {
	f, err = Render(g, field, cmap, rng)
	if err == nil || !errors.Is(err, ErrInvalidRange) {
		return f, false, err
	}
	f, err = Render(g, field, cmap, nil)
	return f, true, err
}
