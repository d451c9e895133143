package main

import (
	"math"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"honnef.co/go/spline"
)

func newViewCmd() *cobra.Command {
	var period time.Duration
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Animate a marker moving along a path at constant speed",
		Long: "Animate a marker moving along a path at constant speed.\n\n" +
			"The path is projected onto the XY plane. Space pauses, q or Esc quits.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPath(args[0])
			if err != nil {
				return err
			}
			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()
			newViewer(screen, p, period).run()
			return nil
		},
	}
	cmd.Flags().DurationVar(&period, "period", 4*time.Second, "time for one pass along the path")
	return cmd
}

const frameInterval = 33 * time.Millisecond

type viewer struct {
	screen tcell.Screen
	path   *spline.Path
	period time.Duration

	trail  []spline.Point
	paused bool
	// elapsed is the animation time, which doesn't advance while paused.
	elapsed time.Duration
}

func newViewer(screen tcell.Screen, p *spline.Path, period time.Duration) *viewer {
	v := &viewer{
		screen: screen,
		path:   p,
		period: max(period, frameInterval),
	}
	for _, pt := range p.Samples(400) {
		v.trail = append(v.trail, pt)
	}
	return v
}

// fraction returns how far along the path the marker is.
func (v *viewer) fraction() float64 {
	laps := float64(v.elapsed) / float64(v.period)
	if v.path.IsLoop() {
		return laps - math.Floor(laps)
	}
	// Open paths are traversed back and forth.
	d := math.Mod(laps, 2)
	if d > 1 {
		d = 2 - d
	}
	return d
}

// fit maps path coordinates to screen cells. Terminal cells are about twice
// as tall as they are wide.
func (v *viewer) fit() func(spline.Point) (int, int) {
	w, h := v.screen.Size()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range v.trail {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}
	// Leave the last row for the status line.
	availW, availH := float64(w-2), float64(h-3)
	scale := math.Inf(1)
	if dx := maxX - minX; dx > 0 {
		scale = availW / dx
	}
	if dy := (maxY - minY) / 2; dy > 0 {
		scale = min(scale, availH/dy)
	}
	if math.IsInf(scale, 1) || scale <= 0 {
		scale = 1
	}
	midX, midY := (minX+maxX)/2, (minY+maxY)/2
	cx, cy := float64(w-1)/2, float64(h-2)/2
	return func(pt spline.Point) (int, int) {
		x := cx + (pt.X-midX)*scale
		y := cy - (pt.Y-midY)*scale/2
		return int(math.Round(x)), int(math.Round(y))
	}
}

func (v *viewer) draw() {
	v.screen.Clear()
	project := v.fit()

	trail := tcell.StyleDefault.Foreground(tcell.ColorTeal)
	for _, pt := range v.trail {
		x, y := project(pt)
		v.screen.SetContent(x, y, '·', nil, trail)
	}

	d := v.fraction()
	x, y := project(v.path.Position(d))
	v.screen.SetContent(x, y, '●', nil, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))

	dir := v.path.DirectionOr(d, spline.Vec(1, 0, 0))
	status := []rune(" d=" + strconv.FormatFloat(d, 'f', 3, 64) + "  dir=" + dir.String() + "  space: pause  q: quit")
	_, h := v.screen.Size()
	for i, r := range status {
		v.screen.SetContent(i, h-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
}

// handleKey reports whether the viewer should exit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			v.paused = !v.paused
		}
	}
	return false
}

func (v *viewer) run() {
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				v.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	last := time.Now()
	for {
		v.draw()
		v.screen.Show()

		ev := v.screen.PollEvent()
		now := time.Now()
		if !v.paused {
			v.elapsed += now.Sub(last)
		}
		last = now

		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case *tcell.EventInterrupt:
			// Next frame.
		}
	}
}
