// Command spline samples, renders and animates paths stored in TOML files,
// and generates mazes.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"honnef.co/go/spline"
	"honnef.co/go/spline/pathfile"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "spline",
		Short:        "Sample, render and animate 3D paths",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			l := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(l)
			spline.SetLogger(l)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	root.AddCommand(
		newSampleCmd(),
		newRenderCmd(),
		newViewCmd(),
		newMazeCmd(),
	)
	return root
}

// loadPath loads a path file and presamples the path with its own settings
// unless the file already asked for that.
func loadPath(name string) (*spline.Path, error) {
	p, err := pathfile.Load(name)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded path", "file", name, "kind", p.Kind(), "segments", p.SegmentCount(), "loop", p.IsLoop())
	if !p.Presampled() {
		opts := p.Options()
		if err := p.Presample(opts.SearchStepSize, opts.PresampleResolution); err != nil {
			return nil, err
		}
	}
	return p, nil
}
