package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"honnef.co/go/spline"
)

func newSampleCmd() *cobra.Command {
	var (
		n     int
		world bool
	)
	cmd := &cobra.Command{
		Use:   "sample FILE",
		Short: "Print positions and directions at equal distances along a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", n)
			}
			p, err := loadPath(args[0])
			if err != nil {
				return err
			}
			xf := spline.Identity
			if world {
				xf = p.Transform()
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(tw, "d\tposition\tdirection")
			for i, pt := range p.Samples(n) {
				var d float64
				if n > 1 {
					d = float64(i) / float64(n-1)
				}
				dir := p.Direction(d)
				if mt, ok := xf.(spline.MatrixTransform); ok {
					dir = mt.ToWorldDir(dir).Normalize()
				}
				fmt.Fprintf(tw, "%.4f\t%s\t%s\n", d, xf.ToWorld(pt), dir)
			}
			fmt.Fprintf(tw, "length\t%.6g\t\n", p.Length(spline.DefaultAccuracy))
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 10, "number of samples")
	cmd.Flags().BoolVar(&world, "world", false, "print positions in world space")
	return cmd
}
