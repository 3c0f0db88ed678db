package main

import (
	"context"
	"fmt"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/sample"
)

func newSampleCmd() *cobra.Command {
	opts := sample.DefaultOptions()
	opts.Workers = runtime.NumCPU()

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a sample drift dataset with the circles model",
		Long: `sample runs the circles agent model for every radius and simulation and
writes the drift CSV and the visualisation snapshots in the layout the
figure command reads by default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, shutdownSignals...)
			defer stop()

			out, err := sample.Generate(ctx, opts, commandLogger(cmd))
			if err != nil {
				return fmt.Errorf("generating sample: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, out.CSV)
			for _, p := range out.Snapshots {
				fmt.Fprintln(w, p)
			}
			if out.Video != "" {
				fmt.Fprintln(w, out.Video)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Dir, "dir", opts.Dir, "Output directory")
	flags.IntVar(&opts.Agents, "agents", opts.Agents, "Agents per simulation")
	flags.IntVar(&opts.Steps, "steps", opts.Steps, "Steps per simulation")
	flags.Float64SliceVar(&opts.Radii, "radii", opts.Radii, "Communication radii")
	flags.IntVar(&opts.Sims, "sims", opts.Sims, "Simulations per radius")
	flags.Int64Var(&opts.Seed, "seed", opts.Seed, "Random seed")
	flags.BoolVar(&opts.Video, "video", false, "Also write an MJPEG preview video")
	flags.IntVar(&opts.Workers, "workers", opts.Workers, "Simulations run in parallel")
	return cmd
}
