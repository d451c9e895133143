package spline

import "fmt"

// TangentMode governs how moving one handle of a Bézier anchor affects the
// handle on the other side of the anchor.
type TangentMode int

const (
	// Free handles move independently.
	Free TangentMode = iota
	// Aligned handles stay colinear through the anchor; each keeps its own
	// distance to the anchor.
	Aligned
	// Mirrored handles are reflections of each other through the anchor.
	Mirrored
)

func (m TangentMode) String() string {
	switch m {
	case Free:
		return "free"
	case Aligned:
		return "aligned"
	case Mirrored:
		return "mirrored"
	default:
		return fmt.Sprintf("TangentMode(%d)", int(m))
	}
}

func (m TangentMode) MarshalText() ([]byte, error) {
	switch m {
	case Free, Aligned, Mirrored:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("invalid tangent mode %d", int(m))
	}
}

func (m *TangentMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "free":
		*m = Free
	case "aligned":
		*m = Aligned
	case "mirrored":
		*m = Mirrored
	default:
		return fmt.Errorf("invalid tangent mode %q", b)
	}
	return nil
}

// EnforceTangent returns the new position of sibling, the handle opposite
// moved across anchor, under the given mode.
//
// For [Aligned], a moved handle that coincides with the anchor defines no
// direction and sibling is returned unchanged.
func EnforceTangent(anchor, moved, sibling Point, mode TangentMode) Point {
	switch mode {
	case Mirrored:
		return anchor.Translate(anchor.Sub(moved))
	case Aligned:
		dir := anchor.Sub(moved).Normalize()
		if dir.IsZero() {
			return sibling
		}
		return anchor.Translate(dir.Mul(sibling.Distance(anchor)))
	default:
		return sibling
	}
}
