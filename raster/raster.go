// Package raster draws paths into images using an orthographic projection
// onto one of the coordinate planes.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"honnef.co/go/spline"
)

// Plane selects the two coordinates that end up on screen.
type Plane int

const (
	XY Plane = iota
	XZ
	YZ
)

func (p Plane) String() string {
	switch p {
	case XY:
		return "xy"
	case XZ:
		return "xz"
	case YZ:
		return "yz"
	default:
		return fmt.Sprintf("Plane(%d)", int(p))
	}
}

func (p Plane) MarshalText() ([]byte, error) {
	switch p {
	case XY, XZ, YZ:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("invalid plane %d", int(p))
	}
}

func (p *Plane) UnmarshalText(b []byte) error {
	switch string(b) {
	case "xy":
		*p = XY
	case "xz":
		*p = XZ
	case "yz":
		*p = YZ
	default:
		return fmt.Errorf("invalid plane %q", b)
	}
	return nil
}

func (p Plane) project(pt spline.Point) (float64, float64) {
	switch p {
	case XZ:
		return pt.X, pt.Z
	case YZ:
		return pt.Y, pt.Z
	default:
		return pt.X, pt.Y
	}
}

// Options configures rendering.
type Options struct {
	Width, Height int
	// Padding is the margin, in pixels, kept free around the path.
	Padding int
	// Samples is the number of positions along the path joined by straight
	// lines.
	Samples int
	// Stroke is the line width in pixels.
	Stroke float64
	// AnchorSize is the edge length of the square anchor markers. Zero hides
	// them.
	AnchorSize float64
	Plane      Plane

	Background color.Color
	Line       color.Color
	Anchor     color.Color
}

// DefaultOptions returns the settings used by the command line tool.
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     600,
		Padding:    20,
		Samples:    512,
		Stroke:     2,
		AnchorSize: 6,
		Plane:      XY,
		Background: color.White,
		Line:       color.RGBA{0x20, 0x60, 0xd0, 0xff},
		Anchor:     color.RGBA{0xd0, 0x30, 0x20, 0xff},
	}
}

var errInvalidSize = errors.New("image size must be positive")

// projection maps path coordinates to pixels, fitting a bounding box into
// the image with the y axis pointing up.
type projection struct {
	plane      Plane
	midX, midY float64
	cx, cy     float64
	scale      float64
}

func newProjection(pts []spline.Point, opts Options) projection {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range pts {
		x, y := opts.Plane.project(pt)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	availX := float64(opts.Width - 2*opts.Padding)
	availY := float64(opts.Height - 2*opts.Padding)
	scale := math.Inf(1)
	if w := maxX - minX; w > 0 {
		scale = availX / w
	}
	if h := maxY - minY; h > 0 {
		scale = min(scale, availY/h)
	}
	if math.IsInf(scale, 1) || scale <= 0 {
		scale = 1
	}
	return projection{
		plane: opts.Plane,
		midX:  (minX + maxX) / 2,
		midY:  (minY + maxY) / 2,
		cx:    float64(opts.Width) / 2,
		cy:    float64(opts.Height) / 2,
		scale: scale,
	}
}

func (pr projection) apply(pt spline.Point) (float32, float32) {
	x, y := pr.plane.project(pt)
	return float32(pr.cx + (x-pr.midX)*pr.scale), float32(pr.cy - (y-pr.midY)*pr.scale)
}

// anchors returns the anchor points of p, skipping Bézier handles.
func anchors(p *spline.Path) []spline.Point {
	pts := p.Points()
	if p.Kind() != spline.Bezier {
		return pts
	}
	out := make([]spline.Point, 0, len(pts)/3+1)
	for i := 0; i < len(pts); i += 3 {
		out = append(out, pts[i])
	}
	return out
}

// Render draws p into a new image. Positions are spaced by arclength if p
// has been presampled.
func Render(p *spline.Path, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", errInvalidSize, opts.Width, opts.Height)
	}
	if opts.Samples < 2 {
		return nil, fmt.Errorf("need at least 2 samples, got %d", opts.Samples)
	}

	samples := make([]spline.Point, 0, opts.Samples)
	for _, pt := range p.Samples(opts.Samples) {
		samples = append(samples, pt)
	}
	marks := anchors(p)
	pr := newProjection(append(samples, marks...), opts)

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	z := vector.NewRasterizer(opts.Width, opts.Height)
	z.DrawOp = draw.Over
	half := float32(opts.Stroke / 2)
	for i := 1; i < len(samples); i++ {
		x0, y0 := pr.apply(samples[i-1])
		x1, y1 := pr.apply(samples[i])
		strokeSegment(z, x0, y0, x1, y1, half)
	}
	// Round the joins.
	for _, s := range samples {
		x, y := pr.apply(s)
		square(z, x, y, half)
	}
	z.Draw(img, img.Bounds(), image.NewUniform(opts.Line), image.Point{})

	if opts.AnchorSize > 0 {
		z.Reset(opts.Width, opts.Height)
		for _, a := range marks {
			x, y := pr.apply(a)
			square(z, x, y, float32(opts.AnchorSize/2))
		}
		z.Draw(img, img.Bounds(), image.NewUniform(opts.Anchor), image.Point{})
	}
	return img, nil
}

// strokeSegment adds the rectangle of width 2*half around the line from
// (x0, y0) to (x1, y1). It winds the same way as square, so that overlapping
// shapes add up instead of cancelling out.
func strokeSegment(z *vector.Rasterizer, x0, y0, x1, y1, half float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := dy/l*half, -dx/l*half
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

func square(z *vector.Rasterizer, x, y, half float32) {
	z.MoveTo(x-half, y-half)
	z.LineTo(x+half, y-half)
	z.LineTo(x+half, y+half)
	z.LineTo(x-half, y+half)
	z.ClosePath()
}

// WritePNG renders p and encodes the result as PNG.
func WritePNG(w io.Writer, p *spline.Path, opts Options) error {
	img, err := Render(p, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
