// Package colormap maps normalized values to colors.
//
// A fixed registry holds thirteen named interpolators, in display order:
//
//	Viridis Plasma Inferno Magma Cividis Turbo Rainbow
//	Cool Warm Blues Greens Reds Greys
//
// Each interpolator is one of a small closed set of [Kind]s: a linear ramp
// through sampled stops, a uniform B-spline through ColorBrewer stops, a
// cubehelix path, the cyclical rainbow, or a fitted polynomial. Unknown
// names resolve to Viridis.
//
// A [Scale] binds an interpolator to a [Range] and clamps inputs to it, so
// values outside the range take the endpoint colors and NaN takes the
// minimum color.
package colormap
