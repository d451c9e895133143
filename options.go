package spline

import (
	"fmt"
	"math"
)

// Options holds the recognized path settings. The zero value is not useful;
// start from [DefaultOptions].
type Options struct {
	// PresampleOnInit runs [Path.Presample] when the path is constructed.
	PresampleOnInit bool `toml:"presample_on_init"`
	// SearchStepSize is the parameter step used while measuring the path,
	// as a fraction of the whole path. Smaller is more accurate and slower.
	SearchStepSize float64 `toml:"search_step_size"`
	// PresampleResolution is the number of entries in the presample table.
	PresampleResolution int `toml:"presample_resolution"`
	// IsLoop closes the path.
	IsLoop bool `toml:"is_loop"`
}

// DefaultOptions returns the settings used when none are given.
func DefaultOptions() Options {
	return Options{
		PresampleOnInit:     false,
		SearchStepSize:      1e-4,
		PresampleResolution: 256,
		IsLoop:              false,
	}
}

// maxPresampleSteps bounds the work done by a single presample.
const maxPresampleSteps = 1 << 24

// Validate reports whether the presample settings are usable.
func (o Options) Validate() error {
	return validatePresample(o.SearchStepSize, o.PresampleResolution)
}

func validatePresample(step float64, resolution int) error {
	if resolution <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}
	if math.IsNaN(step) || step <= 0 || step > 1 || math.Ceil(1/step) > maxPresampleSteps {
		return fmt.Errorf("%w: %g", ErrInvalidStepSize, step)
	}
	return nil
}

type pathConfig struct {
	opts  Options
	xf    Transform
	mode  TangentMode
	modes []TangentMode
}

// Option configures a path at construction.
type Option func(*pathConfig)

// WithOptions replaces all settings with opts.
func WithOptions(opts Options) Option {
	return func(c *pathConfig) { c.opts = opts }
}

// WithLoop sets whether the path is closed.
func WithLoop(loop bool) Option {
	return func(c *pathConfig) { c.opts.IsLoop = loop }
}

// WithTransform sets the transform used for [World] space access.
func WithTransform(xf Transform) Option {
	return func(c *pathConfig) { c.xf = xf }
}

// WithTangentMode sets the initial mode of every anchor of a Bézier path.
func WithTangentMode(mode TangentMode) Option {
	return func(c *pathConfig) { c.mode = mode }
}

// WithTangentModes sets the mode of each anchor of a Bézier path, in order.
// There has to be exactly one mode per anchor. It takes precedence over
// [WithTangentMode].
func WithTangentModes(modes ...TangentMode) Option {
	return func(c *pathConfig) { c.modes = modes }
}
