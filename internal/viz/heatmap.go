package viz

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/vtkview/internal/colormap"
	"github.com/san-kum/vtkview/internal/render"
)

const upperHalf = "▀"

func termColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(colormap.Hex(c))
}

// cellSize returns how many terminal columns and lines a frame occupies
// when fitted into maxW x maxH. Each line holds two grid rows.
func cellSize(f *render.Frame, maxW, maxH int) (cols, lines int) {
	cols = f.Width
	if maxW > 0 && cols > maxW {
		cols = maxW
	}
	rows := f.Height
	if maxH > 0 && rows > 2*maxH {
		rows = 2 * maxH
	}
	return cols, (rows + 1) / 2
}

// sample picks the frame pixel shown at display position (x, y) of a
// cols x rows view.
func sample(f *render.Frame, x, y, cols, rows int) color.RGBA {
	return f.Pixels[y*f.Height/rows][x*f.Width/cols]
}

// RenderHeatmap draws f in half blocks, scaled down by nearest sampling
// to at most maxW columns and maxH lines. Zero limits mean unbounded.
func RenderHeatmap(f *render.Frame, maxW, maxH int) string {
	if f == nil || f.Width == 0 || f.Height == 0 {
		return ""
	}
	cols, lines := cellSize(f, maxW, maxH)
	rows := f.Height
	if rows > 2*lines {
		rows = 2 * lines
	}

	var sb strings.Builder
	for line := 0; line < lines; line++ {
		top := 2 * line
		bottom := top + 1
		for x := 0; x < cols; x++ {
			style := lipgloss.NewStyle().Foreground(termColor(sample(f, x, top, cols, rows)))
			if bottom < rows {
				style = style.Background(termColor(sample(f, x, bottom, cols, rows)))
			}
			sb.WriteString(style.Render(upperHalf))
		}
		if line < lines-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// RenderLegend draws a vertical color bar of height lines with the tick
// labels placed on the nearest line. The maximum is at the top.
func RenderLegend(lg render.Legend, interp colormap.Interpolator, height int) string {
	if height < 2 {
		height = 2
	}

	labels := make([]string, height)
	for _, t := range lg.Ticks {
		line := int((1-t.Pos)*float64(height-1) + 0.5)
		if line >= 0 && line < height && labels[line] == "" {
			labels[line] = t.Label
		}
	}

	var sb strings.Builder
	for line := 0; line < height; line++ {
		t := 1 - float64(line)/float64(height-1)
		bar := lipgloss.NewStyle().Foreground(termColor(interp(t))).Render("██")
		sb.WriteString(bar)
		if labels[line] != "" {
			sb.WriteString(fmt.Sprintf(" %s", labels[line]))
		}
		if line < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
