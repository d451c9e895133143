package pathfile

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/spline"
)

func TestLoad(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "scurve.toml"))
	require.NoError(t, err)
	assert.Equal(t, spline.Bezier, p.Kind())
	assert.Equal(t, 2, p.SegmentCount())
	assert.Equal(t, []spline.TangentMode{spline.Free, spline.Mirrored, spline.Free}, p.Modes())
	assert.True(t, p.Presampled())
	assert.Equal(t, 128, p.PresampleTable().Len())
	assert.False(t, p.IsLoop())
	assert.Equal(t, spline.Pt(20, 0, 0), p.ControlPoint(6, spline.Local))
}

func TestLoadDefaults(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "square.toml"))
	require.NoError(t, err)
	assert.Equal(t, spline.Linear, p.Kind())
	assert.True(t, p.IsLoop())
	assert.False(t, p.Presampled())

	want := spline.DefaultOptions()
	want.IsLoop = true
	assert.Equal(t, want, p.Options())
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.toml"))
	assert.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "kind = \"linear\"\npoints = [[0, 0, 0], [1, 0, 0]]\ncolor = \"red\"\n"},
		{"unknown kind", "kind = \"quadratic\"\npoints = [[0, 0, 0], [1, 0, 0]]\n"},
		{"unknown mode", "kind = \"bezier\"\npoints = [[0, 0, 0], [1, 0, 0], [2, 0, 0], [3, 0, 0]]\nmodes = [\"free\", \"smooth\"]\n"},
		{"not toml", "kind = \n"},
	}
	for _, tt := range tests {
		_, err := Decode(strings.NewReader(tt.doc))
		assert.Error(t, err, tt.name)
	}
}

func TestDocumentPathErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		is   error
	}{
		{"point count", "kind = \"bezier\"\npoints = [[0, 0, 0], [1, 0, 0]]\n", spline.ErrPointCount},
		{"mode count", "kind = \"bezier\"\npoints = [[0, 0, 0], [1, 0, 0], [2, 0, 0], [3, 0, 0]]\nmodes = [\"free\"]\n", spline.ErrPointCount},
		{"resolution", "kind = \"linear\"\npoints = [[0, 0, 0], [1, 0, 0]]\n[options]\npresample_resolution = 0\n", spline.ErrInvalidResolution},
		{"step size", "kind = \"linear\"\npoints = [[0, 0, 0], [1, 0, 0]]\n[options]\nsearch_step_size = -1.0\n", spline.ErrInvalidStepSize},
	}
	for _, tt := range tests {
		doc, err := Decode(strings.NewReader(tt.doc))
		require.NoError(t, err, tt.name)
		_, err = doc.Path()
		assert.ErrorIs(t, err, tt.is, tt.name)
	}

	for name, src := range map[string]string{
		"missing kind": "points = [[0, 0, 0], [1, 0, 0]]\n",
		"short point":  "kind = \"linear\"\npoints = [[0, 0], [1, 0, 0]]\n",
	} {
		doc, err := Decode(strings.NewReader(src))
		require.NoError(t, err, name)
		_, err = doc.Path()
		assert.Error(t, err, name)
	}
}

func TestRoundTrip(t *testing.T) {
	p, err := spline.NewPath(spline.Bezier, []spline.Point{
		spline.Pt(0, 0, 0), spline.Pt(2, 8, 0), spline.Pt(8, 8, 0),
		spline.Pt(10, 0, 0),
		spline.Pt(12, -8, 0), spline.Pt(18, -8, 0), spline.Pt(20, 0, 0),
	}, spline.WithTangentMode(spline.Mirrored))
	require.NoError(t, err)
	p.SetLoop(true)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FromPath(p)))
	assert.Contains(t, buf.String(), "bezier")
	assert.Contains(t, buf.String(), "mirrored")

	doc, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, FromPath(p), doc)

	q, err := doc.Path()
	require.NoError(t, err)
	assert.Equal(t, p.Points(), q.Points())
	assert.Equal(t, p.Modes(), q.Modes())
	assert.Equal(t, p.IsLoop(), q.IsLoop())
}

func TestSave(t *testing.T) {
	p, err := spline.NewLinearPath(spline.Pt(0, 0, 0), spline.Pt(0, 0, 5))
	require.NoError(t, err)
	name := filepath.Join(t.TempDir(), "line.toml")
	require.NoError(t, Save(name, p))

	q, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, p.Points(), q.Points())
	assert.Nil(t, q.Modes())
}

func TestPathOptions(t *testing.T) {
	doc, err := Decode(strings.NewReader("kind = \"linear\"\npoints = [[0, 0, 0], [1, 0, 0]]\n"))
	require.NoError(t, err)
	xf, err := spline.TRS(spline.Vec(5, 0, 0), mgl64.QuatIdent(), spline.Vec(1, 1, 1))
	require.NoError(t, err)

	p, err := doc.Path(spline.WithTransform(xf))
	require.NoError(t, err)
	assert.InDelta(t, 6.0, p.ControlPoint(1, spline.World).X, 1e-12)
}

func TestLoadTransform(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "lifted.toml"))
	require.NoError(t, err)
	got := p.ControlPoint(1, spline.World)
	assert.InDelta(t, 0.0, got.X, 1e-12)
	assert.InDelta(t, 2.0, got.Y, 1e-12)
	assert.InDelta(t, 5.0, got.Z, 1e-12)
	// Points stay in local space.
	assert.Equal(t, spline.Pt(1, 0, 0), p.ControlPoint(1, spline.Local))
}

func TestTransformErrors(t *testing.T) {
	for _, tf := range []Transform{
		{Translate: []float64{1, 2}},
		{Rotate: []float64{1, 2, 3, 4}},
		{Scale: []float64{1, 0, 1}},
	} {
		_, err := tf.Build()
		assert.Error(t, err, "%+v", tf)
	}
	xf, err := (&Transform{}).Build()
	require.NoError(t, err)
	assert.Equal(t, spline.Pt(1, 2, 3), xf.ToWorld(spline.Pt(1, 2, 3)))
}
