package spline

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
	"sync/atomic"
)

var (
	// ErrInvalidOperation is returned for operations that would break the
	// path's minimum topology.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrInvalidResolution is returned for presample resolutions below one.
	ErrInvalidResolution = errors.New("invalid presample resolution")
	// ErrInvalidStepSize is returned for presample step sizes outside (0, 1].
	ErrInvalidStepSize = errors.New("invalid presample step size")
	// ErrNonFinite is returned for control points with infinite or NaN
	// coordinates.
	ErrNonFinite = errors.New("non-finite control point")
	// ErrPointCount is returned when a point sequence doesn't form whole
	// segments.
	ErrPointCount = errors.New("point count doesn't match segment topology")
)

// PathKind selects how a path's control points form segments.
type PathKind int

const (
	// Linear paths connect consecutive points with straight lines.
	Linear PathKind = iota + 1
	// Bezier paths are chains of cubic Béziers sharing their end anchors.
	Bezier
)

func (k PathKind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Bezier:
		return "bezier"
	default:
		return fmt.Sprintf("PathKind(%d)", int(k))
	}
}

func (k PathKind) MarshalText() ([]byte, error) {
	switch k {
	case Linear, Bezier:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("invalid path kind %d", int(k))
	}
}

func (k *PathKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "linear":
		*k = Linear
	case "bezier":
		*k = Bezier
	default:
		return fmt.Errorf("invalid path kind %q", b)
	}
	return nil
}

// stride is the number of points each segment adds.
func (k PathKind) stride() int {
	if k == Bezier {
		return 3
	}
	return 1
}

// segments is a read-only view of a point sequence as segments.
type segments struct {
	kind   PathKind
	points []Point
}

func (s segments) count() int {
	return (len(s.points) - 1) / s.kind.stride()
}

func (s segments) segment(i int) PathSegment {
	if s.kind == Bezier {
		j := i * 3
		return CubicBez{s.points[j], s.points[j+1], s.points[j+2], s.points[j+3]}.Seg()
	}
	return Line{s.points[i], s.points[i+1]}.Seg()
}

// locate maps u ∈ [0, 1] over the whole path to a segment index and a local
// parameter. u == 1 maps to the end of the last segment.
func (s segments) locate(u float64) (int, float64) {
	u = clamp01(u)
	n := s.count()
	if u >= 1 {
		return n - 1, 1
	}
	f := u * float64(n)
	i := min(int(f), n-1)
	return i, f - float64(i)
}

func (s segments) eval(u float64) Point {
	i, t := s.locate(u)
	return s.segment(i).Eval(t)
}

func (s segments) direction(u float64) Vec3 {
	i, t := s.locate(u)
	return s.segment(i).Direction(t)
}

// Path is a piecewise linear or cubic Bézier curve in 3D with an optional
// arclength lookup table for constant-speed traversal.
//
// Control points are stored in local space as a flat sequence. A Bézier path
// of n segments has 3n+1 points: anchors at multiples of three, with two
// handles between consecutive anchors. A linear path of n segments has n+1
// points. On a closed path the last point is pinned to the first.
//
// Any mutation discards the presample table; queries then evaluate the raw
// curve parameter until [Path.Presample] runs again. Queries may run
// concurrently with a Presample on the same path, but not with mutations.
type Path struct {
	kind   PathKind
	points []Point
	// modes holds one entry per anchor; only used by Bézier paths.
	modes []TangentMode
	loop  bool
	xf    Transform
	opts  Options

	table atomic.Pointer[PresampleTable]
	// mu orders table publication against invalidation; version counts
	// mutations.
	mu      sync.Mutex
	version uint64
}

// NewLinearPath returns a linear path from p0 to p1.
func NewLinearPath(p0, p1 Point, opts ...Option) (*Path, error) {
	return NewPath(Linear, []Point{p0, p1}, opts...)
}

// NewBezierPath returns a Bézier path with a single segment from p0 to p1,
// its handles placed at a third and two thirds of the chord.
func NewBezierPath(p0, p1 Point, opts ...Option) (*Path, error) {
	return NewPath(Bezier, []Point{p0, p0.Lerp(p1, 1.0/3.0), p0.Lerp(p1, 2.0/3.0), p1}, opts...)
}

// NewPath returns a path of the given kind over a copy of points.
//
// The points have to form at least one whole segment and be finite, and the
// options have to pass [Options.Validate]. If the options ask for it, the
// path is presampled before it is returned.
func NewPath(kind PathKind, points []Point, opts ...Option) (*Path, error) {
	if kind != Linear && kind != Bezier {
		return nil, fmt.Errorf("invalid path kind %d", int(kind))
	}
	stride := kind.stride()
	if len(points) < stride+1 || (len(points)-1)%stride != 0 {
		return nil, fmt.Errorf("%w: %d points for a %s path", ErrPointCount, len(points), kind)
	}
	cfg := pathConfig{
		opts: DefaultOptions(),
		xf:   Identity,
		mode: Free,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.xf == nil {
		cfg.xf = Identity
	}
	if err := cfg.opts.Validate(); err != nil {
		return nil, err
	}

	p := &Path{
		kind:   kind,
		points: slices.Clone(points),
		xf:     cfg.xf,
		opts:   cfg.opts,
	}
	if kind == Bezier {
		p.modes = make([]TangentMode, len(points)/3+1)
		for i := range p.modes {
			p.modes[i] = cfg.mode
		}
	}
	if cfg.modes != nil {
		if kind != Bezier {
			return nil, fmt.Errorf("tangent modes given for a %s path", kind)
		}
		if len(cfg.modes) != len(p.modes) {
			return nil, fmt.Errorf("%w: %d tangent modes for %d anchors", ErrPointCount, len(cfg.modes), len(p.modes))
		}
		copy(p.modes, cfg.modes)
		for i := range p.modes {
			p.enforce(3 * i)
		}
	}
	for i := range p.view().count() {
		if seg := p.view().segment(i); !seg.IsFinite() {
			return nil, fmt.Errorf("%w in segment %d: %s", ErrNonFinite, i, seg)
		}
	}
	if cfg.opts.IsLoop {
		if !p.canLoop() {
			return nil, fmt.Errorf("%w: a closed linear path needs at least two segments", ErrInvalidOperation)
		}
		p.SetLoop(true)
	}
	if cfg.opts.PresampleOnInit {
		if err := p.Presample(cfg.opts.SearchStepSize, cfg.opts.PresampleResolution); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Path) Kind() PathKind { return p.kind }

// SegmentCount returns the number of segments.
func (p *Path) SegmentCount() int { return p.view().count() }

// ControlPointCount returns the number of control points, including the
// pinned closing point of a loop.
func (p *Path) ControlPointCount() int { return len(p.points) }

// Points returns a copy of the control points in local space.
func (p *Path) Points() []Point { return slices.Clone(p.points) }

// Modes returns a copy of the per-anchor tangent modes. It is nil for linear
// paths.
func (p *Path) Modes() []TangentMode { return slices.Clone(p.modes) }

// Options returns the settings the path was built with. IsLoop reflects the
// current topology.
func (p *Path) Options() Options {
	o := p.opts
	o.IsLoop = p.loop
	return o
}

// Transform returns the transform used for [World] space access.
func (p *Path) Transform() Transform { return p.xf }

// SetTransform replaces the transform used for [World] space access. Stored
// points are unaffected.
func (p *Path) SetTransform(xf Transform) {
	if xf == nil {
		xf = Identity
	}
	p.xf = xf
}

func (p *Path) view() segments {
	return segments{kind: p.kind, points: p.points}
}

func (p *Path) checkIndex(i int) {
	if i < 0 || i >= len(p.points) {
		panic(fmt.Sprintf("control point index %d out of range [0, %d)", i, len(p.points)))
	}
}

// Segment returns segment i.
func (p *Path) Segment(i int) PathSegment {
	if n := p.SegmentCount(); i < 0 || i >= n {
		panic(fmt.Sprintf("segment index %d out of range [0, %d)", i, n))
	}
	return p.view().segment(i)
}

// Segments returns an iterator over all segments in order.
func (p *Path) Segments() iter.Seq[PathSegment] {
	return func(yield func(PathSegment) bool) {
		v := p.view()
		for i := range v.count() {
			if !yield(v.segment(i)) {
				return
			}
		}
	}
}

// ControlPoint returns control point i in the given space.
func (p *Path) ControlPoint(i int, space Space) Point {
	p.checkIndex(i)
	if space == World {
		return p.xf.ToWorld(p.points[i])
	}
	return p.points[i]
}

// SetControlPoint moves control point i to pt, given in space.
//
// Moving an anchor translates its handles along with it. Moving a handle of a
// Bézier path repositions the sibling handle according to the anchor's
// [TangentMode].
func (p *Path) SetControlPoint(i int, pt Point, space Space) {
	p.checkIndex(i)
	if space == World {
		pt = p.xf.ToLocal(pt)
	}
	defer p.Invalidate()

	last := len(p.points) - 1
	if p.kind == Linear {
		p.points[i] = pt
		if p.loop && (i == 0 || i == last) {
			p.points[0] = pt
			p.points[last] = pt
		}
		return
	}

	if i%3 != 0 {
		p.points[i] = pt
		p.enforce(i)
		return
	}

	delta := pt.Sub(p.points[i])
	switch {
	case p.loop && (i == 0 || i == last):
		p.points[1] = p.points[1].Translate(delta)
		p.points[last-1] = p.points[last-1].Translate(delta)
		p.points[0] = pt
		p.points[last] = pt
	default:
		if i > 0 {
			p.points[i-1] = p.points[i-1].Translate(delta)
		}
		if i < last {
			p.points[i+1] = p.points[i+1].Translate(delta)
		}
		p.points[i] = pt
	}
}

// ControlPointMode returns the tangent mode of the anchor that control point
// i belongs to. It panics for linear paths.
func (p *Path) ControlPointMode(i int) TangentMode {
	p.checkBezier("ControlPointMode")
	p.checkIndex(i)
	return p.modes[(i+1)/3]
}

// SetControlPointMode sets the tangent mode of the anchor that control point
// i belongs to and immediately enforces it. It panics for linear paths.
func (p *Path) SetControlPointMode(i int, mode TangentMode) {
	p.checkBezier("SetControlPointMode")
	p.checkIndex(i)
	mi := (i + 1) / 3
	p.modes[mi] = mode
	if p.loop {
		last := len(p.modes) - 1
		switch mi {
		case 0:
			p.modes[last] = mode
		case last:
			p.modes[0] = mode
		}
	}
	p.enforce(i)
	p.Invalidate()
}

func (p *Path) checkBezier(op string) {
	if p.kind != Bezier {
		panic(fmt.Sprintf("%s called on %s path", op, p.kind))
	}
}

// enforce repositions the handle opposite control point i across its anchor.
// If i is the anchor itself, the handle before it stays fixed.
func (p *Path) enforce(i int) {
	mi := (i + 1) / 3
	mode := p.modes[mi]
	if mode == Free || (!p.loop && (mi == 0 || mi == len(p.modes)-1)) {
		return
	}

	middle := mi * 3
	var fixed, enforced int
	if i <= middle {
		fixed, enforced = middle-1, middle+1
	} else {
		fixed, enforced = middle+1, middle-1
	}
	fixed = p.wrapHandle(fixed)
	enforced = p.wrapHandle(enforced)
	p.points[enforced] = EnforceTangent(p.points[middle], p.points[fixed], p.points[enforced], mode)
}

// wrapHandle maps the handle indices just outside a closed path to the
// handles on the other side of the pinned anchor.
func (p *Path) wrapHandle(i int) int {
	n := len(p.points)
	switch {
	case i < 0:
		return n - 2
	case i >= n:
		return 1
	default:
		return i
	}
}

// IsLoop reports whether the path is closed.
func (p *Path) IsLoop() bool { return p.loop }

// SetLoop opens or closes the path.
//
// Closing pins the last point to the first. For Bézier paths the first
// anchor's mode then applies across the wrap; a [Free] first anchor is
// promoted to [Aligned] so that the direction is continuous there.
//
// A linear path with a single segment would collapse to a point, so closing
// one panics.
func (p *Path) SetLoop(loop bool) {
	if loop && !p.canLoop() {
		panic("SetLoop called on a linear path with a single segment")
	}
	defer p.Invalidate()
	p.loop = loop
	if !loop {
		return
	}
	last := len(p.points) - 1
	p.points[last] = p.points[0]
	if p.kind == Bezier {
		if p.modes[0] == Free {
			p.modes[0] = Aligned
		}
		p.modes[len(p.modes)-1] = p.modes[0]
		p.enforce(0)
	}
}

func (p *Path) canLoop() bool {
	return p.kind != Linear || p.SegmentCount() > 1
}

// AddSegment extends the path by one segment that continues the last
// segment's direction with the same chord length.
//
// On an open path the segment is appended. On a closed path it is inserted
// before the closing segment. The closing segment's first handle moves with
// the new anchor, and the new anchor's incoming handle is aligned with it.
// [Path.RemoveSegment] undoes AddSegment exactly.
func (p *Path) AddSegment() {
	defer p.Invalidate()
	if p.kind == Linear {
		p.addLinear()
	} else {
		p.addBezier()
	}
}

func (p *Path) addLinear() {
	n := len(p.points)
	// k is the last point before the new segment.
	k := n - 1
	if p.loop {
		k = n - 2
	}
	prev := max(k-1, 0)
	a := p.points[k]
	step := a.Sub(p.points[prev])
	if step.IsZero() {
		step = Vec(1, 0, 0)
	}
	p.points = slices.Insert(p.points, k+1, a.Translate(step))
}

func (p *Path) addBezier() {
	n := len(p.points)
	// k is the anchor the new segment starts at.
	k := n - 1
	if p.loop {
		k = n - 4
	}
	a := p.points[k]
	before := p.wrapHandle(k - 1)
	prevAnchor := k - 3
	if prevAnchor < 0 {
		prevAnchor = 0
		if p.loop {
			prevAnchor = n - 4
		}
	}

	dir := a.Sub(p.points[before]).Normalize()
	if dir.IsZero() {
		dir = a.Sub(p.points[prevAnchor]).Normalize()
	}
	if dir.IsZero() {
		dir = Vec(1, 0, 0)
	}
	length := a.Distance(p.points[prevAnchor])
	if length == 0 {
		length = 1
	}
	step := dir.Mul(length / 3)

	p.points = slices.Insert(p.points, k+1,
		a.Translate(step),
		a.Translate(step.Mul(2)),
		a.Translate(step.Mul(3)),
	)
	mi := k / 3
	p.modes = slices.Insert(p.modes, mi+1, p.modes[mi])

	// Smooth the join at the old anchor, keeping its incoming handle.
	p.enforce(k)
	if p.loop {
		// The closing segment now starts at the new anchor.
		anchor := p.points[k+3]
		p.points[k+4] = p.points[k+4].Translate(anchor.Sub(a))
		p.points[k+2] = EnforceTangent(anchor, p.points[k+4], p.points[k+2], Aligned)
		p.enforce(k + 4)
	}
}

// RemoveSegment removes the segment most recently added by
// [Path.AddSegment]: the last segment of an open path, or the segment before
// the closing segment of a closed one.
//
// It returns an error wrapping [ErrInvalidOperation] if the path has only one
// segment, or if it is a closed linear path with two.
func (p *Path) RemoveSegment() error {
	if p.SegmentCount() <= 1 {
		return fmt.Errorf("%w: cannot remove the only segment of a path", ErrInvalidOperation)
	}
	if p.loop && p.kind == Linear && p.SegmentCount() <= 2 {
		return fmt.Errorf("%w: a closed linear path needs at least two segments", ErrInvalidOperation)
	}
	defer p.Invalidate()
	n := len(p.points)
	stride := p.kind.stride()
	if !p.loop {
		p.points = p.points[:n-stride : n-stride]
		if p.kind == Bezier {
			p.modes = p.modes[: len(p.modes)-1 : len(p.modes)-1]
		}
		return nil
	}
	if p.kind == Linear {
		p.points = slices.Delete(p.points, n-2, n-1)
		return nil
	}
	// Return the closing segment's first handle to the anchor that
	// remains.
	p.points[n-3] = p.points[n-3].Translate(p.points[n-7].Sub(p.points[n-4]))
	p.points = slices.Delete(p.points, n-6, n-3)
	mi := (n - 4) / 3
	p.modes = slices.Delete(p.modes, mi, mi+1)
	return nil
}

// Eval returns the position at curve parameter u ∈ [0, 1], where each
// segment covers an equal share of the parameter range regardless of its
// length. u is clamped.
func (p *Path) Eval(u float64) Point {
	return p.view().eval(u)
}

// EvalDirection returns the normalized tangent at curve parameter u. It is
// the zero vector where the path has no direction, such as on a segment
// collapsed to a point.
func (p *Path) EvalDirection(u float64) Vec3 {
	return p.view().direction(u)
}

// Position returns the point at fraction d ∈ [0, 1] of the path's length.
//
// Without a presample table, d is used as the raw curve parameter, which
// doesn't move at constant speed along the path.
func (p *Path) Position(d float64) Point {
	return p.Eval(p.param(d))
}

// Direction returns the normalized tangent at fraction d of the path's
// length. See [Path.Position] for the behavior without a presample table
// and [Path.EvalDirection] for degenerate geometry.
func (p *Path) Direction(d float64) Vec3 {
	return p.EvalDirection(p.param(d))
}

// DirectionOr is like [Path.Direction] but returns fallback where the path
// has no direction.
func (p *Path) DirectionOr(d float64, fallback Vec3) Vec3 {
	if v := p.Direction(d); !v.IsZero() {
		return v
	}
	return fallback
}

func (p *Path) param(d float64) float64 {
	if tbl := p.table.Load(); tbl != nil {
		return tbl.Lookup(d)
	}
	return clamp01(d)
}

// Length returns the arclength of the path.
func (p *Path) Length(accuracy float64) float64 {
	n := p.SegmentCount()
	var sum float64
	for seg := range p.Segments() {
		sum += seg.Arclen(accuracy / float64(n))
	}
	return sum
}

// Samples returns an iterator over n positions spaced at equal fractions of
// the path's length, from the start to the end.
func (p *Path) Samples(n int) iter.Seq2[int, Point] {
	return func(yield func(int, Point) bool) {
		for i := range n {
			var d float64
			if n > 1 {
				d = float64(i) / float64(n-1)
			}
			if !yield(i, p.Position(d)) {
				return
			}
		}
	}
}

// Invalidate discards the presample table.
func (p *Path) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.version++
	p.table.Store(nil)
}
