// Package export writes rendered fields to files.
//
// Supported outputs:
//
//   - SVG: one crisp rect per grid point plus a gradient legend ([FrameToSVG])
//   - PNG, SVG, PDF via gonum/plot: heatmap with a vertical color bar ([WritePlot])
//   - HTML: interactive go-echarts heatmap with a visual map ([WriteHTML])
//   - CSV and JSON field dumps ([WriteCSV], [WriteJSON])
//
// [Batch] renders every member of a file sequence on a bounded worker pool.
package export
