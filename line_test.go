package spline

import (
	"math"
	"testing"
)

func TestLineArclen(t *testing.T) {
	l := Line{Pt(0.0, 0.0, 0.0), Pt(1.0, 1.0, 1.0)}
	want := math.Sqrt(3.0)
	epsilon := 1e-9
	if d := math.Abs(l.Arclen(epsilon) - want); d > epsilon {
		t.Errorf("%g > %g", d, epsilon)
	}
}

func TestLineDeriv(t *testing.T) {
	l := Line{Pt(0, 0, 0), Pt(10, 0, 0)}
	for _, ts := range []float64{0, 0.3, 1} {
		diff(t, l.Deriv(ts), Vec(10, 0, 0))
	}
	if d := (Line{Pt(1, 1, 1), Pt(1, 1, 1)}).Deriv(0.5); !d.IsZero() {
		t.Errorf("degenerate line has derivative %v", d)
	}
}

func TestLineSubdivide(t *testing.T) {
	l := Line{Pt(0, 0, 0), Pt(4, 2, 0)}
	l0, l1 := l.Subdivide()
	diff(t, l0, Line{Pt(0, 0, 0), Pt(2, 1, 0)})
	diff(t, l1, Line{Pt(2, 1, 0), Pt(4, 2, 0)})
}
