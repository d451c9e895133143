// Package spline provides 3D paths made of lines or cubic Béziers, and
// queries that move along them at constant speed.
//
// # Curves
//
// [ParametricCurve] describes parametrized curves. These curves can be
// evaluated at t ∈ [0, 1] and return (x, y, z) values. The simplest
// parametric curve is the [Line]; the primary one is the [CubicBez].
// [CubicPosition] and [CubicTangent] evaluate a single cubic without
// constructing one.
//
// [Arclener] is an optional interface implemented by curves that can compute
// their length. Cubic Béziers do so with adaptive Legendre-Gauss quadrature.
//
// # Paths
//
// A [Path] owns a flat sequence of control points grouped into segments. Its
// [PathKind] is either [Linear], where consecutive points are joined by lines,
// or [Bezier], where every segment is a cubic and neighbouring segments share
// an anchor. Bézier anchors carry a [TangentMode] that keeps the handles on
// either side of the anchor [Free], [Aligned] or [Mirrored]. The rule is
// available on its own as [EnforceTangent].
//
// Paths can be closed with [Path.SetLoop]. The last point of a closed path is
// pinned to its first, and the first anchor's tangent mode applies across the
// wrap.
//
// Points are stored in local space. A [Transform], such as a
// [MatrixTransform], converts to and from the world space of whatever hosts
// the path; see [Path.ControlPoint] and [Path.SetControlPoint].
//
// # Curve parameter and arclength
//
// [Path.Eval] takes a parameter u ∈ [0, 1] that gives every segment an equal
// share, no matter how long it is. Within a segment, a cubic Bézier doesn't
// move at constant speed either. [Path.Presample] measures the path once and
// builds a [PresampleTable] mapping fractions of the path's length to curve
// parameters. [Path.Position] and [Path.Direction] use that table when it
// exists and fall back to the raw parameter when it doesn't.
//
// Every edit discards the table. Rebuild it after editing, or use
// [Path.PresampleAsync] or [PresampleAll] to build tables off the calling
// goroutine.
//
// # Literature
//
//   - [A Primer on Bézier Curves]
//   - [Curves and Splines] by Jasper Flick
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [Curves and Splines]: https://catlikecoding.com/unity/tutorials/curves-and-splines/
package spline
