// Package vtk parses legacy ASCII VTK structured-points files.
//
// Only the subset needed for 2D pseudo-color display is understood:
//
//   - DIMENSIONS nx ny nz
//   - POINT_DATA n
//   - SCALARS name type ncomp, followed by one LOOKUP_TABLE line and n values
//   - VECTORS name type, followed by 3n values
//
// Every other line is skipped. Parsing is tolerant: a value block shorter
// than POINT_DATA declares is truncated at the first blank line, and
// malformed numbers become NaN instead of failing the parse.
//
// # Example
//
//	grid, err := vtk.Parse(text)
//	if errors.Is(err, vtk.ErrFormat) {
//	    // not a supported file
//	}
//	temp, _ := grid.Scalar("temperature")
package vtk
