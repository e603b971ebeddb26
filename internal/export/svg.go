package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/vtkview/internal/colormap"
	"github.com/san-kum/vtkview/internal/render"
)

const (
	legendGap   = 20
	legendBar   = 20
	legendLabel = 60
)

// FrameToSVG draws f with cell pixels per grid point. With legend set a
// vertical gradient bar with tick labels is drawn to the right.
func FrameToSVG(f *render.Frame, cell int, legend bool) string {
	if f == nil {
		return ""
	}
	if cell < 1 {
		cell = 1
	}

	plotW := f.Width * cell
	plotH := f.Height * cell
	width := plotW
	if legend {
		width += legendGap + legendBar + legendLabel
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<title>%s</title>
<g shape-rendering="crispEdges">
`, width, plotH, width, plotH, html.EscapeString(f.Field)))

	for row := 0; row < f.Height; row++ {
		for x := 0; x < f.Width; x++ {
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, x*cell, row*cell, cell, cell, colormap.Hex(f.At(x, row))))
		}
	}
	sb.WriteString("</g>\n")

	if legend {
		writeLegendSVG(&sb, f.Legend, plotW+legendGap, plotH)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// writeLegendSVG draws the legend bar at x. Gradient offset 0 is the
// bottom of the bar.
func writeLegendSVG(sb *strings.Builder, lg render.Legend, x, height int) {
	sb.WriteString(`<defs>
<linearGradient id="legend-gradient" x1="0%" y1="100%" x2="0%" y2="0%">
`)
	for _, s := range lg.Stops {
		sb.WriteString(fmt.Sprintf(`<stop offset="%.1f%%" stop-color="%s"/>
`, s.Offset*100, colormap.Hex(s.Color)))
	}
	sb.WriteString("</linearGradient>\n</defs>\n")

	sb.WriteString(fmt.Sprintf(`<rect x="%d" y="0" width="%d" height="%d" fill="url(#legend-gradient)"/>
<g font-family="sans-serif" font-size="10" fill="#000">
`, x, legendBar, height))

	for _, t := range lg.Ticks {
		y := float64(height) * (1 - t.Pos)
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#000"/>
<text x="%d" y="%.1f" dominant-baseline="middle">%s</text>
`, x+legendBar, y, x+legendBar+4, y, x+legendBar+6, y, t.Label))
	}
	sb.WriteString("</g>\n")
}
