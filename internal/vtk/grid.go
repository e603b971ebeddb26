package vtk

import "math"

// FieldKind tags the two attribute shapes found under POINT_DATA.
type FieldKind int

const (
	KindScalar FieldKind = iota
	KindVector
)

func (k FieldKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	default:
		return "unknown"
	}
}

// ScalarField is one value per grid point, indexed j*nx + i.
type ScalarField struct {
	Name       string
	DataType   string
	Components int
	Values     []float64
}

// VectorField holds interleaved x,y,z components, three per grid point.
type VectorField struct {
	Name     string
	DataType string
	Values   []float64
}

// Len returns the number of complete vectors.
func (v *VectorField) Len() int {
	return len(v.Values) / 3
}

// At returns the vector stored for point p.
func (v *VectorField) At(p int) (x, y, z float64) {
	b := p * 3
	if b < 0 || b+2 >= len(v.Values) {
		return math.NaN(), math.NaN(), math.NaN()
	}
	return v.Values[b], v.Values[b+1], v.Values[b+2]
}

// FieldSet stores point attributes keyed by name while remembering the
// order in which they were declared. Redeclaring a name replaces the data
// but keeps its original position.
type FieldSet struct {
	scalars     map[string]*ScalarField
	scalarOrder []string
	vectors     map[string]*VectorField
	vectorOrder []string
}

func newFieldSet() *FieldSet {
	return &FieldSet{
		scalars: make(map[string]*ScalarField),
		vectors: make(map[string]*VectorField),
	}
}

func (fs *FieldSet) putScalar(f *ScalarField) {
	if _, ok := fs.scalars[f.Name]; !ok {
		fs.scalarOrder = append(fs.scalarOrder, f.Name)
	}
	fs.scalars[f.Name] = f
}

func (fs *FieldSet) putVector(f *VectorField) {
	if _, ok := fs.vectors[f.Name]; !ok {
		fs.vectorOrder = append(fs.vectorOrder, f.Name)
	}
	fs.vectors[f.Name] = f
}

// ScalarNames returns scalar field names in declaration order.
func (fs *FieldSet) ScalarNames() []string {
	out := make([]string, len(fs.scalarOrder))
	copy(out, fs.scalarOrder)
	return out
}

// VectorNames returns vector field names in declaration order.
func (fs *FieldSet) VectorNames() []string {
	out := make([]string, len(fs.vectorOrder))
	copy(out, fs.vectorOrder)
	return out
}

func (fs *FieldSet) Scalar(name string) (*ScalarField, bool) {
	f, ok := fs.scalars[name]
	return f, ok
}

func (fs *FieldSet) Vector(name string) (*VectorField, bool) {
	f, ok := fs.vectors[name]
	return f, ok
}

// Kind reports whether name is a scalar or vector field.
func (fs *FieldSet) Kind(name string) (FieldKind, bool) {
	if _, ok := fs.scalars[name]; ok {
		return KindScalar, true
	}
	if _, ok := fs.vectors[name]; ok {
		return KindVector, true
	}
	return 0, false
}

// Grid is a parsed structured-points dataset.
type Grid struct {
	Header      string
	DatasetType string
	Dimensions  [3]int
	Spacing     [3]float64
	Origin      [3]float64
	PointCount  int
	Fields      *FieldSet
}

func (g *Grid) NX() int { return g.Dimensions[0] }
func (g *Grid) NY() int { return g.Dimensions[1] }
func (g *Grid) NZ() int { return g.Dimensions[2] }

// Points is nx*ny*nz, the number of values a complete scalar field holds.
// Parse rejects dimensions whose product does not fit in an int.
func (g *Grid) Points() int {
	n, _ := pointCount(g.Dimensions)
	return n
}

// pointCount multiplies dims, reporting false on overflow or a
// non-positive extent.
func pointCount(dims [3]int) (int, bool) {
	n := 1
	for _, d := range dims {
		if d <= 0 || n > math.MaxInt/d {
			return 0, false
		}
		n *= d
	}
	return n, true
}

// Scalar looks up a scalar field by name.
func (g *Grid) Scalar(name string) (*ScalarField, bool) {
	return g.Fields.Scalar(name)
}

// FirstScalar returns the first declared scalar field name.
func (g *Grid) FirstScalar() string {
	if len(g.Fields.scalarOrder) == 0 {
		return ""
	}
	return g.Fields.scalarOrder[0]
}

// HasScalar reports whether name is a scalar field of g.
func (g *Grid) HasScalar(name string) bool {
	_, ok := g.Fields.scalars[name]
	return ok
}

// Value returns the (i, j) sample of the z=0 slice, or NaN when the field
// was truncated before that point.
func (g *Grid) Value(f *ScalarField, i, j int) float64 {
	idx := j*g.NX() + i
	if f == nil || idx < 0 || idx >= len(f.Values) {
		return math.NaN()
	}
	return f.Values[idx]
}

// ShortFields lists scalar fields holding fewer values than the grid has
// points, in declaration order.
func (g *Grid) ShortFields() []string {
	want := g.Points()
	var short []string
	for _, name := range g.Fields.scalarOrder {
		if len(g.Fields.scalars[name].Values) < want {
			short = append(short, name)
		}
	}
	return short
}
