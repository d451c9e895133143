package spline

import (
	"context"
	"math"
	"runtime"
	"slices"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// PresampleTable maps fractions of a path's length to curve parameters.
//
// Both columns are non-decreasing, start at 0 and end at 1.
type PresampleTable struct {
	// Distances holds fractions of the total length, evenly spaced.
	Distances []float64
	// Params holds the curve parameter at the matching distance.
	Params []float64
	// Length is the length of the path as measured while building the table.
	Length float64
}

// Len returns the number of entries.
func (t *PresampleTable) Len() int { return len(t.Distances) }

// Lookup returns the curve parameter at fraction d of the length,
// interpolating linearly between the bracketing entries. d is clamped to
// [0, 1].
func (t *PresampleTable) Lookup(d float64) float64 {
	d = clamp01(d)
	n := len(t.Distances)
	if n == 0 {
		return d
	}
	i := sort.SearchFloat64s(t.Distances, d)
	if i == 0 {
		return t.Params[0]
	}
	if i >= n {
		return t.Params[n-1]
	}
	d0, d1 := t.Distances[i-1], t.Distances[i]
	if d1 == d0 {
		return t.Params[i]
	}
	f := (d - d0) / (d1 - d0)
	return t.Params[i-1] + f*(t.Params[i]-t.Params[i-1])
}

// buildTable walks the curve in parameter steps of size step, measuring the
// polyline through the sampled positions, and then places resolution entries
// at evenly spaced fractions of the measured length.
func buildTable(s segments, step float64, resolution int) *PresampleTable {
	steps := int(math.Ceil(1 / step))
	cum := make([]float64, steps+1)
	prev := s.eval(0)
	for i := 1; i <= steps; i++ {
		pt := s.eval(float64(i) / float64(steps))
		cum[i] = cum[i-1] + pt.Distance(prev)
		prev = pt
	}
	total := cum[steps]

	tbl := &PresampleTable{
		Distances: make([]float64, resolution),
		Params:    make([]float64, resolution),
		Length:    total,
	}
	j := 0
	for i := range resolution {
		var d float64
		if resolution > 1 {
			d = float64(i) / float64(resolution-1)
		}
		tbl.Distances[i] = d
		if total == 0 {
			// A path collapsed to a point; any parameter is as good as another.
			tbl.Params[i] = d
			continue
		}
		target := d * total
		for j < steps && cum[j+1] < target {
			j++
		}
		if j >= steps {
			tbl.Params[i] = 1
			continue
		}
		var frac float64
		if seg := cum[j+1] - cum[j]; seg > 0 {
			frac = min((target-cum[j])/seg, 1)
		}
		tbl.Params[i] = (float64(j) + frac) / float64(steps)
	}
	// Pin the ends against roundoff in the accumulated length.
	tbl.Params[0] = 0
	if resolution > 1 {
		tbl.Params[resolution-1] = 1
	}
	return tbl
}

// Presample builds the arclength table used by [Path.Position] and
// [Path.Direction] to move along the path at constant speed.
//
// searchStepSize is the parameter step, as a fraction of the whole path,
// used to measure the path; resolution is the number of table entries. The
// previous table is discarded entirely. The new table is built on the side
// and published atomically, so concurrent queries see either the old or the
// new table.
func (p *Path) Presample(searchStepSize float64, resolution int) error {
	if err := validatePresample(searchStepSize, resolution); err != nil {
		return err
	}
	p.publish(p.snapshot(), searchStepSize, resolution)
	return nil
}

type snapshot struct {
	view    segments
	version uint64
}

func (p *Path) snapshot() snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return snapshot{
		view: segments{
			kind:   p.kind,
			points: slices.Clone(p.points),
		},
		version: p.version,
	}
}

func (p *Path) publish(snap snapshot, step float64, resolution int) {
	start := time.Now()
	tbl := buildTable(snap.view, step, resolution)
	elapsed := time.Since(start)

	p.mu.Lock()
	defer p.mu.Unlock()
	// A table for points that have since been edited is stale on arrival.
	if p.version != snap.version {
		Logger().Info("dropping stale presample table",
			"built", snap.version, "current", p.version)
		return
	}
	p.table.Store(tbl)
	Logger().Debug("presampled path",
		"segments", snap.view.count(),
		"entries", resolution,
		"length", tbl.Length,
		"elapsed", elapsed)
}

// PresampleTable returns the current table, or nil if the path hasn't been
// presampled since it was last modified.
func (p *Path) PresampleTable() *PresampleTable {
	return p.table.Load()
}

// Presampled reports whether a current presample table exists.
func (p *Path) Presampled() bool {
	return p.table.Load() != nil
}

// PresampleTask is a presample running in the background.
type PresampleTask struct {
	done chan struct{}
	err  error
}

// PresampleAsync runs [Path.Presample] on another goroutine. The control
// points are captured before PresampleAsync returns; edits made while the
// task runs cause its table to be dropped instead of published.
//
// The build itself can't be cancelled; cancelling the context passed to
// [PresampleTask.Wait] only stops waiting.
func (p *Path) PresampleAsync(searchStepSize float64, resolution int) *PresampleTask {
	task := &PresampleTask{done: make(chan struct{})}
	if err := validatePresample(searchStepSize, resolution); err != nil {
		task.err = err
		close(task.done)
		return task
	}
	snap := p.snapshot()
	go func() {
		defer close(task.done)
		p.publish(snap, searchStepSize, resolution)
	}()
	return task
}

// Done returns a channel that is closed once the task has finished.
func (t *PresampleTask) Done() <-chan struct{} { return t.done }

// Wait blocks until the task has finished or ctx is done.
func (t *PresampleTask) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PresampleAll presamples paths in parallel, using at most GOMAXPROCS
// goroutines. Paths whose build hasn't started when ctx is cancelled are
// skipped; builds that have started run to completion.
func PresampleAll(ctx context.Context, paths []*Path, searchStepSize float64, resolution int) error {
	if err := validatePresample(searchStepSize, resolution); err != nil {
		return err
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return p.Presample(searchStepSize, resolution)
		})
	}
	return g.Wait()
}
