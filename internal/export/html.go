package export

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/vtkview/internal/colormap"
	"github.com/san-kum/vtkview/internal/render"
)

// HTMLOptions configures the interactive page.
type HTMLOptions struct {
	Title      string
	Subtitle   string
	Width      string
	Height     string
	AssetsHost string
}

// visualMapColors samples the frame colormap for the echarts visual map.
func visualMapColors(f *render.Frame) []string {
	samples := colormap.Sample(colormap.Lookup(f.Colormap), 10)
	out := make([]string, len(samples))
	for i, c := range samples {
		out[i] = colormap.Hex(c)
	}
	return out
}

// NewHeatMapChart builds an echarts heatmap of f. Grid point (i, j) maps
// to category (i, j) with j = 0 at the bottom. Non-finite values are
// written as "-" so echarts leaves the cell empty.
func NewHeatMapChart(f *render.Frame, o HTMLOptions) *charts.HeatMap {
	xs := make([]string, f.Width)
	for i := range xs {
		xs[i] = strconv.Itoa(i)
	}
	ys := make([]string, f.Height)
	for j := range ys {
		ys[j] = strconv.Itoa(j)
	}

	data := make([]opts.HeatMapData, 0, f.Width*f.Height)
	for row := 0; row < f.Height; row++ {
		j := f.Height - 1 - row
		for i := 0; i < f.Width; i++ {
			var v interface{} = f.Values[row][i]
			if x := f.Values[row][i]; math.IsNaN(x) || math.IsInf(x, 0) {
				v = "-"
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{i, j, v}})
		}
	}

	title := o.Title
	if title == "" {
		title = f.Field
	}
	subtitle := o.Subtitle
	if subtitle == "" {
		subtitle = fmt.Sprintf("%s, range [%s, %s]", f.Colormap, colormap.FormatTick(f.Range.Min), colormap.FormatTick(f.Range.Max))
	}
	width, height := o.Width, o.Height
	if width == "" {
		width = "900px"
	}
	if height == "" {
		height = "700px"
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "VTK Visualizer - " + title, Width: width, Height: height, AssetsHost: o.AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "i"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "j", Data: ys}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(f.Range.Min),
			Max:        float32(f.Range.Max),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: visualMapColors(f)},
		}),
	)
	hm.SetXAxis(xs).AddSeries(f.Field, data)
	return hm
}

// WriteHTML renders the interactive heatmap page to w.
func WriteHTML(w io.Writer, f *render.Frame, o HTMLOptions) error {
	return NewHeatMapChart(f, o).Render(w)
}
