package colormap

import (
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Default is the colormap used when a requested name is unknown.
const Default = "Viridis"

// Colormap is a registered, named interpolator.
type Colormap struct {
	Name        string
	Kind        Kind
	Interpolate Interpolator
}

var registry = []Colormap{
	{"Viridis", KindRamp, ramp(
		"#440154", "#482475", "#414487", "#355f8d", "#2a788e", "#21918c",
		"#22a884", "#44bf70", "#7ad151", "#bddf26", "#fde725")},
	{"Plasma", KindRamp, ramp(
		"#0d0887", "#41049d", "#6a00a8", "#8f0da4", "#b12a90", "#cc4778",
		"#e16462", "#f2844b", "#fca636", "#fcce25", "#f0f921")},
	{"Inferno", KindRamp, ramp(
		"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60",
		"#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4")},
	{"Magma", KindRamp, ramp(
		"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f",
		"#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf")},
	{"Cividis", KindPolynomial, cividis},
	{"Turbo", KindPolynomial, turbo},
	{"Rainbow", KindRainbow, rainbow},
	{"Cool", KindCubehelix, cubehelixLong(cubehelix{260, 0.75, 0.35}, cubehelix{80, 1.50, 0.8})},
	{"Warm", KindCubehelix, cubehelixLong(cubehelix{-100, 0.75, 0.35}, cubehelix{80, 1.50, 0.8})},
	{"Blues", KindBasis, basis(
		"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6",
		"#4292c6", "#2171b5", "#08519c", "#08306b")},
	{"Greens", KindBasis, basis(
		"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476",
		"#41ab5d", "#238b45", "#006d2c", "#00441b")},
	{"Reds", KindBasis, basis(
		"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a",
		"#ef3b2c", "#cb181d", "#a50f15", "#67000d")},
	{"Greys", KindBasis, basis(
		"#ffffff", "#f0f0f0", "#d9d9d9", "#bdbdbd", "#969696",
		"#737373", "#525252", "#252525", "#000000")},
}

// Names returns the registered colormap names in display order.
func Names() []string {
	names := make([]string, len(registry))
	for i, cm := range registry {
		names[i] = cm.Name
	}
	return names
}

// Get finds a colormap by case-insensitive name.
func Get(name string) (Colormap, bool) {
	for _, cm := range registry {
		if strings.EqualFold(cm.Name, name) {
			return cm, true
		}
	}
	return Colormap{}, false
}

// Resolve returns the named colormap, or Viridis when name is unknown.
func Resolve(name string) Colormap {
	if cm, ok := Get(name); ok {
		return cm
	}
	cm, _ := Get(Default)
	return cm
}

// Lookup returns the interpolator for name, falling back to Viridis.
func Lookup(name string) Interpolator {
	return Resolve(name).Interpolate
}

// Next returns the colormap after name in display order, wrapping.
func Next(name string) string {
	cur := Resolve(name).Name
	for i, cm := range registry {
		if cm.Name == cur {
			return registry[(i+1)%len(registry)].Name
		}
	}
	return Default
}

// Sample returns n evenly spaced colors from t=0 to t=1.
func Sample(interp Interpolator, n int) []color.RGBA {
	if n < 2 {
		n = 2
	}
	out := make([]color.RGBA, n)
	for i := range out {
		out[i] = interp(float64(i) / float64(n-1))
	}
	return out
}

// Hex formats c as #rrggbb.
func Hex(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
