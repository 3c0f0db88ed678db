package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/config"
	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/drift"
	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/quicklook"
)

func newChartCmd() *cobra.Command {
	var (
		inputDir      string
		output        string
		width, height int
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render a quick-look drift chart as PNG or SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			format, err := quicklook.FormatFor(output)
			if err != nil {
				return err
			}
			csvPath := filepath.Join(inputDir, config.DriftCSVFilename)
			series, err := drift.LoadSeries(csvPath)
			if err != nil {
				return err
			}

			file, err := os.Create(output)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := file.Close(); err == nil {
					err = cerr
				}
			}()
			if err := quicklook.RenderChart(file, series, format, width, height); err != nil {
				return err
			}

			commandLogger(cmd).Info("wrote chart", "path", output, "series", len(series))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&inputDir, "input-dir", "i", config.DefaultInputDir, "Directory containing "+config.DriftCSVFilename)
	flags.StringVarP(&output, "output", "o", "drift_chart.png", "Output file (.png or .svg)")
	flags.IntVar(&width, "width", quicklook.DefaultWidth, "Chart width in pixels")
	flags.IntVar(&height, "height", quicklook.DefaultHeight, "Chart height in pixels")
	return cmd
}

func newSummaryCmd() *cobra.Command {
	var inputDir, output string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Write the aggregated drift table to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			csvPath := filepath.Join(inputDir, config.DriftCSVFilename)
			series, err := drift.LoadSeries(csvPath)
			if err != nil {
				return err
			}
			if err := quicklook.WriteSummary(output, series); err != nil {
				return err
			}
			commandLogger(cmd).Info("wrote summary", "path", output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&inputDir, "input-dir", "i", config.DefaultInputDir, "Directory containing "+config.DriftCSVFilename)
	flags.StringVarP(&output, "output", "o", "drift_summary.xlsx", "Output workbook")
	return cmd
}
