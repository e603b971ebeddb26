package analysis

import (
	"fmt"

	"github.com/san-kum/vtkview/internal/vtk"
)

// maxProfileLen bounds the length of a row or column profile.
const maxProfileLen = 1 << 24

// RowProfile returns the values of f along row j, i = 0..nx-1.
func RowProfile(g *vtk.Grid, f *vtk.ScalarField, j int) ([]float64, error) {
	if j < 0 || j >= g.NY() {
		return nil, &IndexError{Axis: "row", Index: j, Len: g.NY()}
	}
	if g.NX() > maxProfileLen {
		return nil, fmt.Errorf("%w: row of %d values", ErrProfileTooLong, g.NX())
	}
	out := make([]float64, g.NX())
	for i := range out {
		out[i] = g.Value(f, i, j)
	}
	return out, nil
}

// ColumnProfile returns the values of f along column i, j = 0..ny-1.
func ColumnProfile(g *vtk.Grid, f *vtk.ScalarField, i int) ([]float64, error) {
	if i < 0 || i >= g.NX() {
		return nil, &IndexError{Axis: "column", Index: i, Len: g.NX()}
	}
	if g.NY() > maxProfileLen {
		return nil, fmt.Errorf("%w: column of %d values", ErrProfileTooLong, g.NY())
	}
	out := make([]float64, g.NY())
	for j := range out {
		out[j] = g.Value(f, i, j)
	}
	return out, nil
}
