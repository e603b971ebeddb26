package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/san-kum/vtkview/internal/analysis"
	"github.com/san-kum/vtkview/internal/render"
	"github.com/san-kum/vtkview/internal/vtk"
)

type GridData struct {
	Header     string      `json:"header,omitempty"`
	Dataset    string      `json:"dataset,omitempty"`
	Dimensions [3]int      `json:"dimensions"`
	Spacing    [3]float64  `json:"spacing"`
	Origin     [3]float64  `json:"origin"`
	Fields     []FieldData `json:"fields"`
}

// FieldData holds one scalar field. Non-finite values are written as
// null; Stats is omitted when the field has no finite value.
type FieldData struct {
	Name       string          `json:"name"`
	DataType   string          `json:"dataType"`
	Components int             `json:"components"`
	Stats      *analysis.Stats `json:"stats,omitempty"`
	Values     []*float64      `json:"values"`
}

// NewGridData collects the named scalar fields of g, or all of them
// when names is empty.
func NewGridData(g *vtk.Grid, names ...string) (*GridData, error) {
	if len(names) == 0 {
		names = g.Fields.ScalarNames()
	}
	data := &GridData{
		Header:     g.Header,
		Dataset:    g.DatasetType,
		Dimensions: g.Dimensions,
		Spacing:    g.Spacing,
		Origin:     g.Origin,
		Fields:     make([]FieldData, 0, len(names)),
	}

	for _, name := range names {
		f, ok := g.Scalar(name)
		if !ok {
			return nil, &render.FieldNotFoundError{Field: name}
		}
		fd := FieldData{
			Name:       f.Name,
			DataType:   f.DataType,
			Components: f.Components,
			Values:     make([]*float64, len(f.Values)),
		}
		for i := range f.Values {
			if v := f.Values[i]; !math.IsNaN(v) && !math.IsInf(v, 0) {
				fd.Values[i] = &f.Values[i]
			}
		}
		if st := analysis.Summarize(f.Values); st.Valid() {
			fd.Stats = &st
		}
		data.Fields = append(data.Fields, fd)
	}
	return data, nil
}

func WriteJSON(w io.Writer, g *vtk.Grid, names ...string) error {
	data, err := NewGridData(g, names...)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, g *vtk.Grid, names ...string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, g, names...)
}

// WriteCSV writes one row per grid point of the first z slice: i, j and
// the value of each named field. Missing values are left empty.
func WriteCSV(w io.Writer, g *vtk.Grid, names ...string) error {
	if len(names) == 0 {
		names = g.Fields.ScalarNames()
	}
	fields := make([]*vtk.ScalarField, len(names))
	for k, name := range names {
		f, ok := g.Scalar(name)
		if !ok {
			return &render.FieldNotFoundError{Field: name}
		}
		fields[k] = f
	}

	if nx, ny := g.NX(), g.NY(); nx > render.MaxCells/max(ny, 1) {
		return &render.SizeError{NX: nx, NY: ny}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"i", "j"}, names...)); err != nil {
		return err
	}

	record := make([]string, 2+len(fields))
	for j := 0; j < g.NY(); j++ {
		for i := 0; i < g.NX(); i++ {
			record[0] = strconv.Itoa(i)
			record[1] = strconv.Itoa(j)
			for k, f := range fields {
				record[2+k] = formatValue(g.Value(f, i, j))
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, g *vtk.Grid, names ...string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, g, names...)
}

// formatValue writes NaN as an empty cell and keeps infinities.
func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
