package main

import (
	"github.com/spf13/cobra"

	"honnef.co/go/spline/maze"
)

func newMazeCmd() *cobra.Command {
	var (
		cfg   maze.Config
		solve bool
	)
	cmd := &cobra.Command{
		Use:   "maze",
		Short: "Generate a maze and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := maze.Generate(cfg)
			if err != nil {
				return err
			}
			var path []int
			if solve {
				path = m.Solve(m.Cell(0, 0), m.Cell(m.Width-1, m.Height-1))
			}
			return m.WriteText(cmd.OutOrStdout(), path)
		},
	}
	cmd.Flags().IntVar(&cfg.Width, "width", 20, "width in cells")
	cmd.Flags().IntVar(&cfg.Height, "height", 10, "height in cells")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", 0, "random seed, 0 for a random maze")
	cmd.Flags().BoolVar(&solve, "solve", false, "mark the path from the top left to the bottom right cell")
	return cmd
}
