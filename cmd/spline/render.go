package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"honnef.co/go/spline/raster"
)

func newRenderCmd() *cobra.Command {
	opts := raster.DefaultOptions()
	var (
		output string
		plane  string
	)
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a path to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Plane.UnmarshalText([]byte(plane)); err != nil {
				return err
			}
			p, err := loadPath(args[0])
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := raster.WritePNG(f, p, opts); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			slog.Info("wrote image", "file", output, "width", opts.Width, "height", opts.Height, "plane", opts.Plane)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "path.png", "output file")
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "image width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", opts.Height, "image height in pixels")
	cmd.Flags().IntVar(&opts.Samples, "samples", opts.Samples, "number of positions joined by lines")
	cmd.Flags().Float64Var(&opts.Stroke, "stroke", opts.Stroke, "line width in pixels")
	cmd.Flags().StringVar(&plane, "plane", opts.Plane.String(), "projection plane: xy, xz or yz")
	return cmd
}
