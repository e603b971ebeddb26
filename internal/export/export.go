package export

import (
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/san-kum/vtkview/internal/config"
	"github.com/san-kum/vtkview/internal/render"
	"github.com/san-kum/vtkview/internal/vtk"
)

// Options selects the output of Write.
type Options struct {
	Format   string
	CellSize int
	Width    vg.Length
	Height   vg.Length
	Legend   bool
	Title    string
	// Raw writes one pixel block per grid point instead of a plot with
	// axes. Only png and svg have a raw form.
	Raw bool
}

// OptionsFromConfig converts the render section of a config.
func OptionsFromConfig(rc config.RenderConfig) Options {
	return Options{
		Format:   rc.Format,
		CellSize: rc.CellSize,
		Width:    vg.Length(rc.Width) * vg.Centimeter,
		Height:   vg.Length(rc.Height) * vg.Centimeter,
		Legend:   rc.Legend,
		Title:    rc.Title,
		Raw:      rc.Raw,
	}
}

// Write renders f of g to w in o.Format.
func Write(w io.Writer, g *vtk.Grid, f *render.Frame, o Options) error {
	switch o.Format {
	case "png":
		if o.Raw {
			return png.Encode(w, f.Image(o.CellSize))
		}
		return WritePlot(w, g, f, PlotOptions{Format: o.Format, Width: o.Width, Height: o.Height, Title: o.Title, Legend: o.Legend})
	case "svg":
		if o.Raw {
			_, err := io.WriteString(w, FrameToSVG(f, o.CellSize, o.Legend))
			return err
		}
		return WritePlot(w, g, f, PlotOptions{Format: o.Format, Width: o.Width, Height: o.Height, Title: o.Title, Legend: o.Legend})
	case "pdf":
		if o.Raw {
			return &FormatError{Format: "raw " + o.Format}
		}
		return WritePlot(w, g, f, PlotOptions{Format: o.Format, Width: o.Width, Height: o.Height, Title: o.Title, Legend: o.Legend})
	case "html":
		return WriteHTML(w, f, HTMLOptions{Title: o.Title})
	case "csv":
		return WriteCSV(w, g, f.Field)
	case "json":
		return WriteJSON(w, g, f.Field)
	}
	return &FormatError{Format: o.Format}
}

// OutputPath returns the file name for input rendered in format, placed
// in dir or next to the input when dir is empty.
func OutputPath(input, dir, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+"."+format)
}
