package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a field. Min, Max, Mean, StdDev and Median are NaN
// when the field holds no finite value.
type Stats struct {
	Count     int     `json:"count"`
	Finite    int     `json:"finite"`
	NonFinite int     `json:"nonFinite"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"stdDev"`
	Median    float64 `json:"median"`
}

// Finite returns the finite values of vs in their original order.
func Finite(vs []float64) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Summarize computes Stats over the finite values of vs. StdDev may still
// be +Inf when the values span more than the float64 range; see Stats.Valid.
func Summarize(vs []float64) Stats {
	xs := Finite(vs)
	st := Stats{
		Count:     len(vs),
		Finite:    len(xs),
		NonFinite: len(vs) - len(xs),
	}
	if len(xs) == 0 {
		nan := math.NaN()
		st.Min, st.Max, st.Mean, st.StdDev, st.Median = nan, nan, nan, nan, nan
		return st
	}

	st.Min = floats.Min(xs)
	st.Max = floats.Max(xs)
	if len(xs) == 1 {
		st.Mean, st.StdDev, st.Median = xs[0], 0, xs[0]
		return st
	}
	st.Mean, st.StdDev = meanStdDev(xs, math.Max(math.Abs(st.Min), math.Abs(st.Max)))

	sort.Float64s(xs)
	st.Median = stat.Quantile(0.5, stat.Empirical, xs, nil)
	return st
}

// meanStdDev divides by scale first so sums of values near the float64
// limit do not overflow.
func meanStdDev(xs []float64, scale float64) (mean, std float64) {
	if scale <= 1 {
		return stat.MeanStdDev(xs, nil)
	}
	scaled := make([]float64, len(xs))
	for i, x := range xs {
		scaled[i] = x / scale
	}
	mean, std = stat.MeanStdDev(scaled, nil)
	return mean * scale, std * scale
}

// Valid reports whether every summary value is finite.
func (s Stats) Valid() bool {
	for _, v := range []float64{s.Min, s.Max, s.Mean, s.StdDev, s.Median} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
