// Package render turns one scalar field of a [vtk.Grid] into a color grid
// and a matching legend.
//
// Row 0 of a [Frame] is the grid's highest-y row, so frames display with y
// pointing up. Cells are flat-shaded; no interpolation happens between
// neighbouring points.
package render
