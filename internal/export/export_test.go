package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/palette"

	"github.com/san-kum/vtkview/internal/colormap"
	"github.com/san-kum/vtkview/internal/render"
	"github.com/san-kum/vtkview/internal/sequence"
	"github.com/san-kum/vtkview/internal/vtk"
)

func vtkText(nx, ny int, values string) string {
	return strings.Join([]string{
		"# vtk DataFile Version 3.0",
		"export test",
		"ASCII",
		"DATASET STRUCTURED_POINTS",
		"DIMENSIONS " + strconv.Itoa(nx) + " " + strconv.Itoa(ny) + " 1",
		"SPACING 0.5 0.5 1",
		"ORIGIN 1 2 0",
		"POINT_DATA " + strconv.Itoa(nx*ny),
		"SCALARS p float 1",
		"LOOKUP_TABLE default",
		values,
	}, "\n")
}

func testFrame(t *testing.T, nx, ny int, values string) (*vtk.Grid, *render.Frame) {
	t.Helper()
	g, err := vtk.Parse(vtkText(nx, ny, values))
	require.NoError(t, err)
	f, err := render.Render(g, "p", "Viridis", nil)
	require.NoError(t, err)
	return g, f
}

func TestFrameToSVG(t *testing.T) {
	_, f := testFrame(t, 3, 2, "0 1 2 3 4 5")

	svg := FrameToSVG(f, 10, true)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Contains(t, svg, `shape-rendering="crispEdges"`)
	assert.Contains(t, svg, `width="130" height="20"`)
	// Six cells plus the legend bar.
	assert.Equal(t, 7, strings.Count(svg, "<rect "))
	assert.Equal(t, len(f.Legend.Stops), strings.Count(svg, "<stop "))
	for _, tick := range f.Legend.Ticks {
		assert.Contains(t, svg, ">"+tick.Label+"</text>")
	}
	// Top-left cell is the max-y row, value 3.
	assert.Contains(t, svg, `<rect x="0" y="0" width="10" height="10" fill="`+colormap.Hex(f.At(0, 0))+`"/>`)

	plain := FrameToSVG(f, 0, false)
	assert.Contains(t, plain, `width="3" height="2"`)
	assert.NotContains(t, plain, "linearGradient")

	assert.Empty(t, FrameToSVG(nil, 4, true))
}

func TestWriteCSV(t *testing.T) {
	g, _ := testFrame(t, 2, 2, "1 2 x 4")

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, g))

	want := "i,j,p\n0,0,1\n1,0,2\n0,1,\n1,1,4\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}

	err := WriteCSV(&buf, g, "missing")
	assert.ErrorIs(t, err, render.ErrFieldNotFound)
}

func TestWriteJSON(t *testing.T) {
	g, _ := testFrame(t, 2, 2, "1 2 x 4")

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, g, "p"))

	var got struct {
		Dimensions [3]int     `json:"dimensions"`
		Spacing    [3]float64 `json:"spacing"`
		Origin     [3]float64 `json:"origin"`
		Fields     []struct {
			Name   string     `json:"name"`
			Values []*float64 `json:"values"`
			Stats  *struct {
				Finite int     `json:"finite"`
				Max    float64 `json:"max"`
			} `json:"stats"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, [3]int{2, 2, 1}, got.Dimensions)
	assert.Equal(t, [3]float64{0.5, 0.5, 1}, got.Spacing)
	assert.Equal(t, [3]float64{1, 2, 0}, got.Origin)
	require.Len(t, got.Fields, 1)
	assert.Equal(t, "p", got.Fields[0].Name)
	require.Len(t, got.Fields[0].Values, 4)
	assert.Nil(t, got.Fields[0].Values[2])
	assert.Equal(t, 4.0, *got.Fields[0].Values[3])
	require.NotNil(t, got.Fields[0].Stats)
	assert.Equal(t, 3, got.Fields[0].Stats.Finite)
	assert.Equal(t, 4.0, got.Fields[0].Stats.Max)
}

func TestWriteCSV_OversizedHeader(t *testing.T) {
	g, err := vtk.Parse("DIMENSIONS 1099511627776 2 1\nPOINT_DATA 1\nSCALARS p float 1\nLOOKUP_TABLE default\n1\n")
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.ErrorIs(t, WriteCSV(&buf, g), render.ErrGridTooLarge)
	assert.Zero(t, buf.Len())
}

func TestWriteJSON_StatsBeyondFloatRange(t *testing.T) {
	g, err := vtk.Parse(vtkText(2, 1, "1.7e308 -1.7e308"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, g))
	assert.NotContains(t, buf.String(), `"stats"`)
	assert.Contains(t, buf.String(), "1.7e+308")

	g, err = vtk.Parse(vtkText(2, 1, "1e308 1e308"))
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, WriteJSON(&buf, g))
	assert.Contains(t, buf.String(), `"stats"`)
}

func TestWriteJSON_AllNaNOmitsStats(t *testing.T) {
	g, _ := testFrame(t, 2, 2, "x x x x")

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, g))
	assert.NotContains(t, buf.String(), `"stats"`)
}

func TestWrite_RawPNG(t *testing.T) {
	g, f := testFrame(t, 3, 2, "0 1 2 3 4 5")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, g, f, Options{Format: "png", Raw: true, CellSize: 4}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestWrite_Plot(t *testing.T) {
	g, f := testFrame(t, 3, 2, "0 1 2 3 4 5")

	tests := []struct {
		format string
		prefix string
	}{
		{"png", "\x89PNG"},
		{"pdf", "%PDF"},
		{"svg", "<?xml"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, g, f, Options{Format: tt.format, Legend: true, Title: "pressure"})
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(buf.String(), tt.prefix))
		})
	}
}

func TestWrite_HTML(t *testing.T) {
	g, f := testFrame(t, 2, 2, "1 2 x 4")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, g, f, Options{Format: "html"}))
	out := buf.String()
	assert.Contains(t, out, "echarts")
	assert.Contains(t, out, "VTK Visualizer - p")
	assert.Contains(t, out, `"-"`)
}

func TestWrite_UnknownFormat(t *testing.T) {
	g, f := testFrame(t, 2, 2, "1 2 3 4")

	err := Write(&bytes.Buffer{}, g, f, Options{Format: "bmp"})
	assert.ErrorIs(t, err, ErrUnknownFormat)

	err = Write(&bytes.Buffer{}, g, f, Options{Format: "pdf", Raw: true})
	assert.ErrorIs(t, err, ErrUnknownFormat)

	err = WritePlot(&bytes.Buffer{}, g, f, PlotOptions{Format: "html"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNewHeatMapPlot_TooSmall(t *testing.T) {
	g, f := testFrame(t, 1, 3, "1 2 3")
	_, err := NewHeatMapPlot(g, f, "")
	assert.ErrorIs(t, err, ErrGridTooSmall)
}

func TestFrameGrid(t *testing.T) {
	g, f := testFrame(t, 3, 2, "0 1 2 3 4 5")
	fg := frameGrid{f: f, origin: g.Origin, spacing: g.Spacing}

	c, r := fg.Dims()
	assert.Equal(t, 3, c)
	assert.Equal(t, 2, r)
	// Row 0 of the plot grid is j = 0.
	assert.Equal(t, 0.0, fg.Z(0, 0))
	assert.Equal(t, 5.0, fg.Z(2, 1))
	assert.Equal(t, 2.0, fg.X(2))
	assert.Equal(t, 2.5, fg.Y(1))
}

func TestScaleColorMap(t *testing.T) {
	cm := &scaleColorMap{interp: colormap.Lookup("Greys"), min: 0, max: 10, alpha: 1}

	c, err := cm.At(0)
	require.NoError(t, err)
	assert.Equal(t, colormap.Lookup("Greys")(0), c)

	_, err = cm.At(-1)
	assert.True(t, errors.Is(err, palette.ErrUnderflow))
	_, err = cm.At(11)
	assert.True(t, errors.Is(err, palette.ErrOverflow))
	_, err = cm.At(math.NaN())
	assert.True(t, errors.Is(err, palette.ErrNaN))

	assert.Len(t, cm.Palette(5).Colors(), 5)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "karman_001.png"), OutputPath("/data/karman_001.vtk", "", "png"))
	assert.Equal(t, filepath.Join("out", "karman_001.svg"), OutputPath("/data/karman_001.vtk", "out", "svg"))
}

func TestBatch_Run(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"wave_1.vtk": vtkText(2, 2, "0 1 2 3"),
		"wave_2.vtk": "not a vtk file",
		"wave_3.vtk": vtkText(2, 2, "10 11 12 13"),
	}
	for name, text := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0644))
	}
	entries := sequence.NewResolver(nil).All(filepath.Join(dir, "wave_1.vtk"))
	require.Len(t, entries, 3)

	out := filepath.Join(dir, "out")
	b := &Batch{Options: Options{Format: "csv"}, OutDir: out, Workers: 2}
	results, err := b.Run(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, colormap.Range{Min: 0, Max: 3}, results[0].Range)
	assert.ErrorIs(t, results[1].Err, vtk.ErrFormat)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, colormap.Range{Min: 10, Max: 13}, results[2].Range)

	data, err := os.ReadFile(filepath.Join(out, "wave_3.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "i,j,p\n0,0,10\n"))
	_, err = os.Stat(filepath.Join(out, "wave_2.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestBatch_SharedRange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wave_1.vtk"), []byte(vtkText(2, 2, "0 1 2 3")), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wave_2.vtk"), []byte(vtkText(2, 2, "10 11 12 13")), 0644))
	entries := sequence.NewResolver(nil).All(filepath.Join(dir, "wave_2.vtk"))

	b := &Batch{Shared: true, Options: Options{Format: "json"}, OutDir: dir, Workers: 4}
	results, err := b.Run(context.Background(), entries)
	require.NoError(t, err)
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, colormap.Range{Min: 0, Max: 13}, r.Range)
	}
}

func TestBatch_Cancelled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wave_1.vtk"), []byte(vtkText(2, 2, "0 1 2 3")), 0644))
	entries := sequence.NewResolver(nil).All(filepath.Join(dir, "wave_1.vtk"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &Batch{Options: Options{Format: "csv"}, OutDir: dir}
	_, err := b.Run(ctx, entries)
	assert.ErrorIs(t, err, context.Canceled)
}
