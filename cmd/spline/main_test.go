package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/spline"
)

var scurve = filepath.Join("..", "..", "pathfile", "testdata", "scurve.toml")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	spline.SetLogger(nil)
	return out.String(), err
}

func TestSample(t *testing.T) {
	out, err := execute(t, "sample", scurve, "-n", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[1], "0.0000"), lines[1])
	assert.Contains(t, lines[1], "(0, 0, 0)")
	assert.Contains(t, lines[3], "(20, 0, 0)")
	assert.True(t, strings.HasPrefix(lines[4], "length"), lines[4])
}

func TestSampleLength(t *testing.T) {
	square := filepath.Join("..", "..", "pathfile", "testdata", "square.toml")
	out, err := execute(t, "sample", square, "-n", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"length", "40"}, strings.Fields(lines[3]))
}

func TestSampleErrors(t *testing.T) {
	_, err := execute(t, "sample", scurve, "-n", "0")
	assert.Error(t, err)
	_, err = execute(t, "sample", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
	_, err = execute(t, "sample")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.png")
	_, err := execute(t, "render", scurve, "-o", name, "--width", "64", "--height", "32")
	require.NoError(t, err)

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	_, err = execute(t, "render", scurve, "-o", name, "--plane", "xw")
	assert.Error(t, err)
}

func TestMaze(t *testing.T) {
	out, err := execute(t, "maze", "--width", "4", "--height", "3", "--seed", "1", "--solve")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 7)
	assert.Contains(t, out, "•")

	_, err = execute(t, "maze", "--width", "0")
	assert.Error(t, err)
}

func TestViewer(t *testing.T) {
	p, err := loadPath(scurve)
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(60, 20)

	v := newViewer(screen, p, time.Second)
	v.draw()
	screen.Show()
	markers := 0
	for y := range 20 {
		for x := range 60 {
			if r, _, _, _ := screen.GetContent(x, y); r == '●' {
				markers++
			}
		}
	}
	assert.Equal(t, 1, markers)

	v.elapsed = 1500 * time.Millisecond
	// Open paths turn around at the end.
	assert.InDelta(t, 0.5, v.fraction(), 1e-9)
	p.SetLoop(true)
	assert.InDelta(t, 0.5, v.fraction(), 1e-9)
	v.elapsed = 1250 * time.Millisecond
	assert.InDelta(t, 0.25, v.fraction(), 1e-9)

	done := make(chan struct{})
	go func() {
		v.run()
		close(done)
	}()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("viewer didn't quit")
	}
}
