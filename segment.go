package spline

import "fmt"

type PathSegmentKind int

const (
	// A line segment.
	LineKind PathSegmentKind = iota + 1
	// A cubic Bézier segment.
	CubicKind
)

// PathSegment represents a segment of a [Path]. This type acts as a sort of
// tagged union of [Line] and [CubicBez].
type PathSegment struct {
	// We don't use an interface for PathSegment so that paths can hand out
	// segments without allocating.

	Kind PathSegmentKind
	P0   Point
	P1   Point
	P2   Point
	P3   Point
}

var _ ParametricCurve = PathSegment{}
var _ Arclener = PathSegment{}
var _ Deriver = PathSegment{}

func (seg PathSegment) String() string {
	switch seg.Kind {
	case LineKind:
		return fmt.Sprintf("Line(%s, %s)", seg.P0, seg.P1)
	case CubicKind:
		return fmt.Sprintf("CubicBez(%s, %s, %s, %s)", seg.P0, seg.P1, seg.P2, seg.P3)
	default:
		return "InvalidPathSegment"
	}
}

// Line returns the line represented by this segment. This is only valid when Kind ==
// LineKind.
func (seg PathSegment) Line() Line { return Line{seg.P0, seg.P1} }

// Cubic converts seg to a cubic Bézier. This is valid for any Kind.
func (seg PathSegment) Cubic() CubicBez {
	switch seg.Kind {
	case LineKind:
		return CubicBez{
			seg.P0,
			seg.P0.Lerp(seg.P1, 1.0/3.0),
			seg.P0.Lerp(seg.P1, 2.0/3.0),
			seg.P1,
		}
	case CubicKind:
		return CubicBez{seg.P0, seg.P1, seg.P2, seg.P3}
	default:
		return CubicBez{}
	}
}

// IsFinite reports whether none of the segment's points has an infinite or
// NaN coordinate.
func (seg PathSegment) IsFinite() bool {
	switch seg.Kind {
	case LineKind:
		l := seg.Line()
		return !l.IsInf() && !l.IsNaN()
	default:
		c := seg.Cubic()
		return !c.IsInf() && !c.IsNaN()
	}
}

func (seg PathSegment) Eval(t float64) Point {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Eval(t)
	case CubicKind:
		return seg.Cubic().Eval(t)
	default:
		panic(fmt.Sprintf("unhandled case %v", seg.Kind))
	}
}

func (seg PathSegment) Deriv(t float64) Vec3 {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Deriv(t)
	case CubicKind:
		return seg.Cubic().Deriv(t)
	default:
		panic(fmt.Sprintf("unhandled case %v", seg.Kind))
	}
}

// Direction returns the normalized tangent at t.
//
// Where the derivative vanishes but the segment isn't a single point, such
// as at an end whose handle sits on the anchor, the direction is taken from
// the nearest distinct control point. A segment collapsed to a single point
// has the zero vector as its direction.
func (seg PathSegment) Direction(t float64) Vec3 {
	const epsilon = 1e-24
	d := seg.Deriv(t)
	if d.Hypot2() > epsilon {
		return d.Normalize()
	}
	d0, d1 := seg.Tangents()
	if t < 0.5 {
		return d0.Normalize()
	}
	return d1.Normalize()
}

func (seg PathSegment) Tangents() (Vec3, Vec3) {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Tangents()
	case CubicKind:
		return seg.Cubic().Tangents()
	default:
		return Vec3{}, Vec3{}
	}
}

func (seg PathSegment) Arclen(accuracy float64) float64 {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Length()
	case CubicKind:
		return seg.Cubic().Arclen(accuracy)
	default:
		return 0
	}
}

func (seg PathSegment) Start() Point {
	return seg.P0
}

func (seg PathSegment) End() Point {
	switch seg.Kind {
	case LineKind:
		return seg.P1
	case CubicKind:
		return seg.P3
	default:
		return Point{}
	}
}
