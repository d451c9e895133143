package spline

import (
	"testing"
)

func TestEnforceTangent(t *testing.T) {
	anchor := Pt(0, 0, 0)
	moved := Pt(-2, 0, 0)
	sibling := Pt(0, 5, 0)

	diff(t, EnforceTangent(anchor, moved, sibling, Free), sibling)
	diff(t, EnforceTangent(anchor, moved, sibling, Mirrored), Pt(2, 0, 0))
	// Aligned keeps the sibling's distance of 5.
	diff(t, EnforceTangent(anchor, moved, sibling, Aligned), Pt(5, 0, 0), approx(1e-12))
}

func TestEnforceTangentAlignedDegenerate(t *testing.T) {
	anchor := Pt(1, 1, 1)
	sibling := Pt(3, 1, 1)
	// A handle on top of the anchor has no direction to align to.
	diff(t, EnforceTangent(anchor, anchor, sibling, Aligned), sibling)
}

func TestTangentModeText(t *testing.T) {
	for _, m := range []TangentMode{Free, Aligned, Mirrored} {
		b, err := m.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got TangentMode
		if err := got.UnmarshalText(b); err != nil {
			t.Fatal(err)
		}
		if got != m {
			t.Errorf("got %v, want %v", got, m)
		}
	}
	var m TangentMode
	if err := m.UnmarshalText([]byte("smooth")); err == nil {
		t.Error("expected error for unknown mode")
	}
	if _, err := TangentMode(7).MarshalText(); err == nil {
		t.Error("expected error for invalid mode")
	}
}
