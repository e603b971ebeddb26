package colormap

import (
	"image/color"
	"math"
)

// Range is a value domain. A usable range has finite bounds with Min < Max.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Valid reports whether r can drive a Scale.
func (r Range) Valid() bool {
	return !math.IsNaN(r.Min) && !math.IsNaN(r.Max) &&
		!math.IsInf(r.Min, 0) && !math.IsInf(r.Max, 0) &&
		r.Min < r.Max
}

// Clamp limits v to r. NaN clamps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Widen turns a zero-width range into a unit-wide one centred on it.
func (r Range) Widen() Range {
	if r.Min == r.Max {
		return Range{Min: r.Min - 0.5, Max: r.Max + 0.5}
	}
	return r
}

// AutoRange scans values for their finite minimum and maximum. Non-finite
// values are skipped; ok is false when none are finite.
func AutoRange(values []float64) (r Range, ok bool) {
	r = Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
		ok = true
	}
	if !ok {
		return Range{}, false
	}
	return r, true
}

// Scale is a clamped sequential color scale.
type Scale struct {
	interp Interpolator
	rng    Range
}

// NewScale binds interp to rng. The caller is responsible for rng being
// valid; a zero-width range maps everything to the t=0 color.
func NewScale(interp Interpolator, rng Range) *Scale {
	return &Scale{interp: interp, rng: rng}
}

func (s *Scale) Range() Range { return s.rng }

// Normalize returns the clamped position of v in the range, in [0, 1].
func (s *Scale) Normalize(v float64) float64 {
	span := s.rng.Max - s.rng.Min
	if span == 0 || math.IsNaN(v) {
		return 0
	}
	return clamp01((v - s.rng.Min) / span)
}

// At returns the color for v.
func (s *Scale) At(v float64) color.RGBA {
	return s.interp(s.Normalize(v))
}

// Interpolator exposes the underlying t -> color function.
func (s *Scale) Interpolator() Interpolator {
	return s.interp
}
