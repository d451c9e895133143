package spline

// QuadBez is a quadratic Bézier. Within this package it mostly appears as the
// derivative of a [CubicBez].
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

var _ ParametricCurve = QuadBez{}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	v := Vec3(q.P0).Mul(mt * mt).
		Add(Vec3(q.P1).Mul(mt * 2.0).
			Add(Vec3(q.P2).Mul(t)).
			Mul(t))
	return Point(v)
}

func (q QuadBez) Start() Point {
	return q.P0
}

func (q QuadBez) End() Point {
	return q.P2
}
