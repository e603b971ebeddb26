package vtk

import (
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	kwDimensions  = "DIMENSIONS"
	kwPointData   = "POINT_DATA"
	kwScalars     = "SCALARS"
	kwVectors     = "VECTORS"
	kwDataset     = "DATASET"
	kwSpacing     = "SPACING"
	kwAspectRatio = "ASPECT_RATIO"
	kwOrigin      = "ORIGIN"
)

// lineCursor walks the input one line at a time. pos is the index of the
// current line and starts before the first one.
type lineCursor struct {
	lines []string
	pos   int
}

func newLineCursor(text string) *lineCursor {
	return &lineCursor{lines: strings.Split(text, "\n"), pos: -1}
}

func (c *lineCursor) advance() bool {
	c.pos++
	return c.pos < len(c.lines)
}

func (c *lineCursor) current() string {
	return strings.TrimSpace(c.lines[c.pos])
}

// skip steps over exactly one line whatever it contains.
func (c *lineCursor) skip() {
	c.pos++
}

// consumeValues reads numeric lines until limit values are collected or a
// blank line or the end of input is reached. The last line read becomes
// the current line, so the caller's next advance moves past it. A line
// may overshoot limit; all its tokens are kept.
func (c *lineCursor) consumeValues(limit int) []float64 {
	values := make([]float64, 0, max(limit, 0))
	for len(values) < limit {
		if !c.advance() {
			break
		}
		line := c.current()
		if line == "" {
			break
		}
		for _, tok := range strings.Fields(line) {
			values = append(values, parseNumber(tok))
		}
	}
	return values
}

func parseNumber(tok string) float64 {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Parse builds a Grid from legacy VTK text.
func Parse(text string) (*Grid, error) {
	g := &Grid{
		Spacing: [3]float64{1, 1, 1},
		Fields:  newFieldSet(),
	}
	hasDims := false

	c := newLineCursor(text)
	for c.advance() {
		line := c.current()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}

		keyword := strings.ToUpper(tokens[0])
		if c.pos == 1 && !isKeyword(keyword) && strings.HasPrefix(strings.TrimSpace(c.lines[0]), "#") {
			g.Header = line
			continue
		}

		switch keyword {
		case kwDimensions:
			if dims, ok := parseDimensions(tokens[1:]); ok {
				g.Dimensions = dims
				hasDims = true
			}
		case kwPointData:
			g.PointCount = 0
			if len(tokens) > 1 {
				if n, err := strconv.Atoi(tokens[1]); err == nil && n > 0 {
					g.PointCount = n
				}
			}
		case kwScalars:
			f := &ScalarField{
				Name:       tokenAt(tokens, 1, "scalars"),
				DataType:   tokenAt(tokens, 2, "float"),
				Components: 1,
			}
			if n, err := strconv.Atoi(tokenAt(tokens, 3, "1")); err == nil && n > 0 {
				f.Components = n
			}
			c.skip() // LOOKUP_TABLE
			f.Values = c.consumeValues(g.PointCount)
			g.Fields.putScalar(f)
		case kwVectors:
			f := &VectorField{
				Name:     tokenAt(tokens, 1, "vectors"),
				DataType: tokenAt(tokens, 2, "float"),
			}
			f.Values = c.consumeValues(3 * g.PointCount)
			g.Fields.putVector(f)
		case kwDataset:
			g.DatasetType = tokenAt(tokens, 1, "")
		case kwSpacing, kwAspectRatio:
			g.Spacing = parseTriple(tokens[1:], g.Spacing)
		case kwOrigin:
			g.Origin = parseTriple(tokens[1:], g.Origin)
		}
	}

	if !hasDims {
		return nil, &FormatError{Reason: "missing DIMENSIONS"}
	}
	if _, ok := pointCount(g.Dimensions); !ok {
		return nil, &FormatError{Reason: "DIMENSIONS too large"}
	}
	if len(g.Fields.scalarOrder) == 0 {
		return nil, &FormatError{Reason: "no SCALARS field"}
	}
	return g, nil
}

// ParseReader reads r to the end and parses the content.
func ParseReader(r io.Reader) (*Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// ParseFile parses the file at path.
func ParseFile(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// parseDimensions accepts two or three positive integers; nz defaults to 1.
func parseDimensions(tokens []string) ([3]int, bool) {
	dims := [3]int{1, 1, 1}
	if len(tokens) < 2 {
		return dims, false
	}
	for i := 0; i < 3 && i < len(tokens); i++ {
		n, err := strconv.Atoi(tokens[i])
		if err != nil || n <= 0 {
			return dims, false
		}
		dims[i] = n
	}
	return dims, true
}

func parseTriple(tokens []string, fallback [3]float64) [3]float64 {
	out := fallback
	for i := 0; i < 3 && i < len(tokens); i++ {
		if v, err := strconv.ParseFloat(tokens[i], 64); err == nil {
			out[i] = v
		}
	}
	return out
}

func isKeyword(s string) bool {
	switch s {
	case kwDimensions, kwPointData, kwScalars, kwVectors, kwDataset, kwSpacing, kwAspectRatio, kwOrigin:
		return true
	}
	return false
}

func tokenAt(tokens []string, i int, fallback string) string {
	if i < len(tokens) {
		return tokens[i]
	}
	return fallback
}
