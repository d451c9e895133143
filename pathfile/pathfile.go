// Package pathfile reads and writes paths as TOML documents.
//
// A document looks like this:
//
//	kind = "bezier"
//	points = [[0, 0, 0], [3, 0, 0], [7, 0, 0], [10, 0, 0]]
//	modes = ["free", "free"]
//
//	[options]
//	presample_on_init = true
//	search_step_size = 0.0001
//	presample_resolution = 256
//	is_loop = false
//
// modes is optional and only valid for Bézier paths. Options that are left
// out keep their defaults. An optional [transform] table places the path in
// world space:
//
//	[transform]
//	translate = [0, 0, 5]
//	rotate = [0, 90, 0] # Euler angles in degrees, applied in X, Y, Z order
//	scale = [1, 1, 1]
package pathfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"

	"honnef.co/go/spline"
)

// Document is the decoded form of a path file.
type Document struct {
	Kind      spline.PathKind      `toml:"kind"`
	Points    [][]float64          `toml:"points"`
	Modes     []spline.TangentMode `toml:"modes,omitempty"`
	Options   spline.Options       `toml:"options"`
	Transform *Transform           `toml:"transform,omitempty"`
}

// Transform describes a local-to-world transform as translation, rotation
// and scale. Missing entries are the identity.
type Transform struct {
	Translate []float64 `toml:"translate,omitempty"`
	Rotate    []float64 `toml:"rotate,omitempty"`
	Scale     []float64 `toml:"scale,omitempty"`
}

func vec3(name string, v []float64, def spline.Vec3) (spline.Vec3, error) {
	if v == nil {
		return def, nil
	}
	if len(v) != 3 {
		return spline.Vec3{}, fmt.Errorf("transform %s has %d components, want 3", name, len(v))
	}
	return spline.Vec(v[0], v[1], v[2]), nil
}

// Build returns the transform as a matrix transform.
func (t *Transform) Build() (spline.MatrixTransform, error) {
	tr, err := vec3("translate", t.Translate, spline.Vec3{})
	if err != nil {
		return spline.MatrixTransform{}, err
	}
	rot, err := vec3("rotate", t.Rotate, spline.Vec3{})
	if err != nil {
		return spline.MatrixTransform{}, err
	}
	sc, err := vec3("scale", t.Scale, spline.Vec(1, 1, 1))
	if err != nil {
		return spline.MatrixTransform{}, err
	}
	q := mgl64.AnglesToQuat(mgl64.DegToRad(rot.X), mgl64.DegToRad(rot.Y), mgl64.DegToRad(rot.Z), mgl64.XYZ)
	return spline.TRS(tr, q, sc)
}

// Decode reads a document from r. Unknown keys are an error.
func Decode(r io.Reader) (*Document, error) {
	doc := &Document{Options: spline.DefaultOptions()}
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding path document: %w", err)
	}
	return doc, nil
}

// Path builds the path the document describes. opts are applied after the
// document's own settings.
func (doc *Document) Path(opts ...spline.Option) (*spline.Path, error) {
	points := make([]spline.Point, len(doc.Points))
	for i, c := range doc.Points {
		if len(c) != 3 {
			return nil, fmt.Errorf("point %d has %d coordinates, want 3", i, len(c))
		}
		points[i] = spline.Pt(c[0], c[1], c[2])
	}
	all := []spline.Option{spline.WithOptions(doc.Options)}
	if doc.Transform != nil {
		xf, err := doc.Transform.Build()
		if err != nil {
			return nil, err
		}
		all = append(all, spline.WithTransform(xf))
	}
	if len(doc.Modes) > 0 {
		all = append(all, spline.WithTangentModes(doc.Modes...))
	}
	return spline.NewPath(doc.Kind, points, append(all, opts...)...)
}

// FromPath returns the document describing p, with points in local space.
// The path's transform isn't recorded.
func FromPath(p *spline.Path) *Document {
	doc := &Document{
		Kind:    p.Kind(),
		Modes:   p.Modes(),
		Options: p.Options(),
	}
	for _, pt := range p.Points() {
		doc.Points = append(doc.Points, []float64{pt.X, pt.Y, pt.Z})
	}
	return doc
}

// Encode writes doc to w.
func Encode(w io.Writer, doc *Document) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(doc)
}

// Load reads the path file called name and builds its path.
func Load(name string, opts ...spline.Option) (*spline.Path, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	p, err := doc.Path(opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

// Save writes the document describing p to the file called name.
func Save(name string, p *spline.Path) error {
	var buf bytes.Buffer
	if err := Encode(&buf, FromPath(p)); err != nil {
		return err
	}
	return os.WriteFile(name, buf.Bytes(), 0o666)
}
