package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/vtkview/internal/colormap"
)

// Histogram counts field values in equal-width bins over Range. The last
// bin is closed so the range maximum is counted.
type Histogram struct {
	Range   colormap.Range `json:"range"`
	Edges   []float64      `json:"edges"`
	Counts  []int          `json:"counts"`
	Outside int            `json:"outside"`
}

// NewHistogram bins vs over rng, or over the finite range of vs when rng
// is nil. Values outside the range are counted in Outside; non-finite
// values are dropped.
func NewHistogram(vs []float64, bins int, rng *colormap.Range) (*Histogram, error) {
	if bins < 1 {
		return nil, ErrNoBins
	}

	var r colormap.Range
	if rng != nil {
		if !rng.Valid() {
			return nil, &RangeError{Range: *rng}
		}
		r = *rng
	} else {
		auto, ok := colormap.AutoRange(vs)
		if !ok {
			auto = colormap.Range{Min: 0, Max: 1}
		}
		r = auto.Widen()
	}

	h := &Histogram{
		Range:  r,
		Edges:  floats.Span(make([]float64, bins+1), r.Min, r.Max),
		Counts: make([]int, bins),
	}

	inside := make([]float64, 0, len(vs))
	for _, v := range Finite(vs) {
		if v < r.Min || v > r.Max {
			h.Outside++
			continue
		}
		inside = append(inside, v)
	}
	if len(inside) == 0 {
		return h, nil
	}
	sort.Float64s(inside)

	dividers := make([]float64, len(h.Edges))
	copy(dividers, h.Edges)
	dividers[bins] = math.Nextafter(r.Max, math.Inf(1))

	counts := stat.Histogram(nil, dividers, inside, nil)
	for i, c := range counts {
		h.Counts[i] = int(c)
	}
	return h, nil
}

// Peak returns the index of the fullest bin.
func (h *Histogram) Peak() int {
	best := 0
	for i, c := range h.Counts {
		if c > h.Counts[best] {
			best = i
		}
	}
	return best
}
