package spline

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(0, 0, 0).Translate(Vec(-10, 0, 2)), Pt(-10, 0, 2))
	diff(t, Pt(1, 2, 3).Sub(Pt(1, 1, 1)), Vec(0, 1, 2))
	diff(t, Pt(0, 0, 0).Lerp(Pt(10, 20, 30), 0.5), Pt(5, 10, 15))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10, 0)
	p2 := Pt(0, 5, 0)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(1, 2, 2)
	p4 := Pt(0, 0, 0)
	if d := p3.Distance(p4); d != 3 {
		t.Errorf("got distance %v, want 3", d)
	}
}

func TestVecNormalize(t *testing.T) {
	diff(t, Vec(0, 3, 4).Normalize(), Vec(0, 0.6, 0.8), approx(1e-15))
	if v := (Vec3{}).Normalize(); !v.IsZero() {
		t.Errorf("zero vector normalized to %v", v)
	}
	if v := Vec(1, 2, 3).Normalize(); math.Abs(v.Hypot()-1) > 1e-15 {
		t.Errorf("got magnitude %g, want 1", v.Hypot())
	}
}

func TestVecCross(t *testing.T) {
	diff(t, Vec(1, 0, 0).Cross(Vec(0, 1, 0)), Vec(0, 0, 1))
	diff(t, Vec(0, 1, 0).Cross(Vec(1, 0, 0)), Vec(0, 0, -1))
}
