package colormap

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Interpolator maps t in [0, 1] to a color. Inputs outside [0, 1] are
// clamped by every registered interpolator except Rainbow, which wraps.
type Interpolator func(t float64) color.RGBA

// Kind identifies how an interpolator computes its colors.
type Kind int

const (
	KindRamp Kind = iota
	KindBasis
	KindCubehelix
	KindRainbow
	KindPolynomial
)

func (k Kind) String() string {
	switch k {
	case KindRamp:
		return "ramp"
	case KindBasis:
		return "basis"
	case KindCubehelix:
		return "cubehelix"
	case KindRainbow:
		return "rainbow"
	case KindPolynomial:
		return "polynomial"
	default:
		return "unknown"
	}
}

func clamp01(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// parseStops panics on a malformed stop; the tables are static.
func parseStops(hexes []string) []colorful.Color {
	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(fmt.Sprintf("colormap: bad stop %q: %v", h, err))
		}
		stops[i] = c
	}
	return stops
}

// ramp interpolates linearly in RGB between evenly spaced stops.
func ramp(hexes ...string) Interpolator {
	stops := parseStops(hexes)
	n := len(stops) - 1
	return func(t float64) color.RGBA {
		t = clamp01(t)
		if t == 1 {
			return toRGBA(stops[n])
		}
		pos := t * float64(n)
		i := int(pos)
		return toRGBA(stops[i].BlendRgb(stops[i+1], pos-float64(i)))
	}
}

// basis runs a uniform cubic B-spline through the stops, channel by
// channel, with mirrored phantom points at both ends.
func basis(hexes ...string) Interpolator {
	stops := parseStops(hexes)
	r := make([]float64, len(stops))
	g := make([]float64, len(stops))
	b := make([]float64, len(stops))
	for i, s := range stops {
		r[i], g[i], b[i] = s.R, s.G, s.B
	}
	fr, fg, fb := splineBasis(r), splineBasis(g), splineBasis(b)
	return func(t float64) color.RGBA {
		t = clamp01(t)
		return toRGBA(colorful.Color{R: fr(t), G: fg(t), B: fb(t)})
	}
}

func splineBasis(values []float64) func(float64) float64 {
	n := len(values) - 1
	return func(t float64) float64 {
		var i int
		switch {
		case t <= 0:
			t, i = 0, 0
		case t >= 1:
			t, i = 1, n-1
		default:
			i = int(math.Floor(t * float64(n)))
		}
		v1, v2 := values[i], values[i+1]
		v0 := 2*v1 - v2
		if i > 0 {
			v0 = values[i-1]
		}
		v3 := 2*v2 - v1
		if i < n-1 {
			v3 = values[i+2]
		}
		return basisPoint((t-float64(i)/float64(n))*float64(n), v0, v1, v2, v3)
	}
}

func basisPoint(t1, v0, v1, v2, v3 float64) float64 {
	t2 := t1 * t1
	t3 := t2 * t1
	return ((1-3*t1+3*t2-t3)*v0 +
		(4-6*t2+3*t3)*v1 +
		(1+3*t1+3*t2-3*t3)*v2 +
		t3*v3) / 6
}

// cubehelix is a point in Green's cubehelix space: hue in degrees,
// saturation and lightness in [0, 1]ish.
type cubehelix struct {
	h, s, l float64
}

const (
	chA = -0.14861
	chB = +1.78277
	chC = -0.29227
	chD = -0.90649
	chE = +1.97294
)

func (c cubehelix) rgb() colorful.Color {
	h := (c.h + 120) * math.Pi / 180
	a := c.s * c.l * (1 - c.l)
	cosh, sinh := math.Cos(h), math.Sin(h)
	return colorful.Color{
		R: c.l + a*(chA*cosh+chB*sinh),
		G: c.l + a*(chC*cosh+chD*sinh),
		B: c.l + a*(chE*cosh),
	}
}

// cubehelixLong walks linearly from a to b without taking the short way
// round the hue circle.
func cubehelixLong(a, b cubehelix) Interpolator {
	return func(t float64) color.RGBA {
		t = clamp01(t)
		c := cubehelix{
			h: a.h + (b.h-a.h)*t,
			s: a.s + (b.s-a.s)*t,
			l: a.l + (b.l-a.l)*t,
		}
		return toRGBA(c.rgb())
	}
}

func rainbow(t float64) color.RGBA {
	if t < 0 || t > 1 {
		t -= math.Floor(t)
	}
	if math.IsNaN(t) {
		t = 0
	}
	ts := math.Abs(t - 0.5)
	c := cubehelix{h: 360*t - 100, s: 1.5 - 1.5*ts, l: 0.8 - 0.9*ts}
	return toRGBA(c.rgb())
}

func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

func turbo(t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: channel(34.61 + t*(1172.33-t*(10793.56-t*(33300.12-t*(38394.49-t*14825.05))))),
		G: channel(23.31 + t*(557.33+t*(1225.33-t*(3574.96-t*(1073.77+t*707.56))))),
		B: channel(27.2 + t*(3211.1-t*(15327.97-t*(27814-t*(22569.18-t*6838.66))))),
		A: 255,
	}
}

func cividis(t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: channel(-4.54 - t*(35.34-t*(2381.73-t*(6402.7-t*(7024.72-t*2710.57))))),
		G: channel(32.49 + t*(170.73+t*(52.82-t*(131.46-t*(176.58-t*67.37))))),
		B: channel(81.24 + t*(442.36-t*(2482.43-t*(6167.24-t*(6614.94-t*2475.67))))),
		A: 255,
	}
}
