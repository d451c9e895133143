package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/spline"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Width = 100
	opts.Height = 50
	opts.Padding = 10
	opts.Samples = 16
	return opts
}

func isLine(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return b > 0xc000 && r < 0x4000 && g < 0x8000
}

func isAnchor(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r > 0xc000 && g < 0x4000 && b < 0x4000
}

func isBackground(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func mustLine(t *testing.T, p0, p1 spline.Point) *spline.Path {
	t.Helper()
	p, err := spline.NewLinearPath(p0, p1)
	require.NoError(t, err)
	return p
}

func mustBezier(t *testing.T, p0, p1 spline.Point) *spline.Path {
	t.Helper()
	p, err := spline.NewBezierPath(p0, p1)
	require.NoError(t, err)
	return p
}

func TestRenderLine(t *testing.T) {
	p := mustLine(t, spline.Pt(0, 0, 0), spline.Pt(10, 0, 0))
	img, err := Render(p, testOptions())
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())

	// The line runs along the middle row from x=10 to x=90.
	for _, x := range []int{30, 50, 70} {
		assert.True(t, isLine(img.At(x, 24)), "pixel %d,24 is %v", x, img.At(x, 24))
		assert.True(t, isLine(img.At(x, 25)), "pixel %d,25 is %v", x, img.At(x, 25))
		assert.True(t, isBackground(img.At(x, 5)), "pixel %d,5 is %v", x, img.At(x, 5))
		assert.True(t, isBackground(img.At(x, 45)), "pixel %d,45 is %v", x, img.At(x, 45))
	}
	assert.True(t, isBackground(img.At(3, 25)))
	assert.True(t, isBackground(img.At(97, 25)))

	assert.True(t, isAnchor(img.At(10, 25)), "start anchor is %v", img.At(10, 25))
	assert.True(t, isAnchor(img.At(89, 24)), "end anchor is %v", img.At(89, 24))
}

func TestRenderPlane(t *testing.T) {
	// A path along Z is a point in the XY plane and a line in XZ.
	p := mustLine(t, spline.Pt(0, 0, 0), spline.Pt(0, 0, 10))
	opts := testOptions()
	opts.AnchorSize = 0

	img, err := Render(p, opts)
	require.NoError(t, err)
	assert.True(t, isBackground(img.At(30, 25)))

	opts.Plane = XZ
	img, err = Render(p, opts)
	require.NoError(t, err)
	// Vertical line from y=10 to y=40 in the middle column.
	assert.True(t, isLine(img.At(50, 20)), "pixel is %v", img.At(50, 20))
	assert.True(t, isBackground(img.At(30, 25)))
}

func TestRenderBezier(t *testing.T) {
	p, err := spline.NewPath(spline.Bezier, []spline.Point{
		spline.Pt(0, 0, 0), spline.Pt(0, 10, 0), spline.Pt(10, 10, 0), spline.Pt(10, 0, 0),
	})
	require.NoError(t, err)
	require.NoError(t, p.Presample(1e-3, 64))

	opts := testOptions()
	opts.Width, opts.Height = 200, 200
	opts.Samples = 64
	img, err := Render(p, opts)
	require.NoError(t, err)

	lines := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isLine(img.At(x, y)) {
				lines++
			}
		}
	}
	assert.Greater(t, lines, 200)
	// Handles are neither marked nor part of the bounds.
	assert.Equal(t, []spline.Point{spline.Pt(0, 0, 0), spline.Pt(10, 0, 0)}, anchors(p))
	assert.True(t, isAnchor(img.At(10, 167)), "start anchor is %v", img.At(10, 167))
}

func TestRenderDegenerate(t *testing.T) {
	p := mustBezier(t, spline.Pt(1, 1, 1), spline.Pt(1, 1, 1))
	img, err := Render(p, testOptions())
	require.NoError(t, err)
	assert.True(t, isAnchor(img.At(50, 25)))
}

func TestRenderInvalid(t *testing.T) {
	p := mustLine(t, spline.Pt(0, 0, 0), spline.Pt(1, 0, 0))
	opts := testOptions()
	opts.Width = 0
	_, err := Render(p, opts)
	assert.Error(t, err)

	opts = testOptions()
	opts.Samples = 1
	_, err = Render(p, opts)
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	p := mustLine(t, spline.Pt(0, 0, 0), spline.Pt(3, 4, 0))
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, p, testOptions()))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestPlaneText(t *testing.T) {
	for _, pl := range []Plane{XY, XZ, YZ} {
		b, err := pl.MarshalText()
		require.NoError(t, err)
		var got Plane
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, pl, got)
	}
	var pl Plane
	assert.Error(t, pl.UnmarshalText([]byte("xw")))
}
