package spline

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// Space selects the coordinate space in which control points are read or
// written. Paths store points in local space; world space goes through the
// path's [Transform].
type Space int

const (
	Local Space = iota
	World
)

func (s Space) String() string {
	switch s {
	case Local:
		return "local"
	case World:
		return "world"
	default:
		return "Space(?)"
	}
}

// Transform converts points between a path's local space and the world space
// of whatever hosts the path.
type Transform interface {
	ToWorld(pt Point) Point
	ToLocal(pt Point) Point
}

type identity struct{}

func (identity) ToWorld(pt Point) Point { return pt }
func (identity) ToLocal(pt Point) Point { return pt }

// Identity is the transform that maps every point to itself.
var Identity Transform = identity{}

var errSingularMatrix = errors.New("transform matrix is not invertible")

// MatrixTransform is a [Transform] described by a 4×4 homogeneous matrix
// mapping local to world coordinates.
type MatrixTransform struct {
	m   mgl64.Mat4
	inv mgl64.Mat4
}

var _ Transform = MatrixTransform{}

// NewMatrixTransform returns the transform for m. The matrix has to be
// invertible.
func NewMatrixTransform(m mgl64.Mat4) (MatrixTransform, error) {
	if m.Det() == 0 {
		return MatrixTransform{}, errSingularMatrix
	}
	return MatrixTransform{m: m, inv: m.Inv()}, nil
}

// TRS returns the transform that scales by s, rotates by q and then
// translates by t, the usual composition for scene-graph nodes.
func TRS(t Vec3, q mgl64.Quat, s Vec3) (MatrixTransform, error) {
	m := mgl64.Translate3D(t.X, t.Y, t.Z).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl64.Scale3D(s.X, s.Y, s.Z))
	return NewMatrixTransform(m)
}

// Matrix returns the local-to-world matrix.
func (mt MatrixTransform) Matrix() mgl64.Mat4 { return mt.m }

func (mt MatrixTransform) ToWorld(pt Point) Point {
	return fromMgl(mgl64.TransformCoordinate(toMgl(pt), mt.m))
}

func (mt MatrixTransform) ToLocal(pt Point) Point {
	return fromMgl(mgl64.TransformCoordinate(toMgl(pt), mt.inv))
}

// ToWorldDir transforms a direction vector, ignoring translation.
func (mt MatrixTransform) ToWorldDir(v Vec3) Vec3 {
	w := mgl64.TransformNormal(mgl64.Vec3{v.X, v.Y, v.Z}, mt.m)
	return Vec3{w[0], w[1], w[2]}
}

func toMgl(pt Point) mgl64.Vec3 { return mgl64.Vec3{pt.X, pt.Y, pt.Z} }

func fromMgl(v mgl64.Vec3) Point { return Point{v[0], v[1], v[2]} }
