package render

import (
	"image/color"

	"github.com/san-kum/vtkview/internal/colormap"
)

// Stop is one gradient stop. Offset 0 is the bottom of the bar (range
// minimum) and 1 the top.
type Stop struct {
	Offset float64
	Color  color.RGBA
}

// Tick is one labelled axis position. Pos runs from 0 at the bottom of the
// bar to 1 at the top.
type Tick struct {
	Value float64
	Label string
	Pos   float64
}

// Legend describes a vertical gradient bar spanning Range, max at the top.
type Legend struct {
	Range colormap.Range
	Stops []Stop
	Ticks []Tick
}

// NewLegend builds the legend for a scale. The stop count follows the
// scale's natural tick count; the axis aims for ten ticks.
func NewLegend(s *colormap.Scale) Legend {
	rng := s.Range()
	interp := s.Interpolator()

	n := len(colormap.Ticks(rng.Min, rng.Max, colormap.DefaultTickCount))
	if n < 2 {
		n = 2
	}
	stops := make([]Stop, n)
	for i := range stops {
		off := float64(i) / float64(n-1)
		stops[i] = Stop{Offset: off, Color: interp(off)}
	}

	values := colormap.Ticks(rng.Min, rng.Max, colormap.DefaultTickCount)
	ticks := make([]Tick, 0, len(values))
	span := rng.Max - rng.Min
	for _, v := range values {
		pos := 0.0
		if span != 0 {
			pos = (v - rng.Min) / span
		}
		ticks = append(ticks, Tick{Value: v, Label: colormap.FormatTick(v), Pos: pos})
	}

	return Legend{Range: rng, Stops: stops, Ticks: ticks}
}
