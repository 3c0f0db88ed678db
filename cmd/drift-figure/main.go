// Command drift-figure composes the drift publication figure: a line plot of
// mean drift per communication radius next to four simulation snapshots,
// written as figure.png and figure.pdf.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/config"
	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/figure"
	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/logging"
	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/validate"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Validation problems were already printed.
		if !errors.Is(err, validate.ErrInvalid) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// figureFlags are the root command's flag values before they are overlaid
// on the defaults and the config file.
type figureFlags struct {
	configPath string
	outputDir  string
	dpi        int
	inputDir   string
	visDir     string
	strict     bool
}

func newRootCmd() *cobra.Command {
	var ff figureFlags
	def := config.Default()

	cmd := &cobra.Command{
		Use:   "drift-figure",
		Short: "Compose the drift publication figure",
		Long: `drift-figure reads the per-step drift CSV and four visualisation
snapshots and writes a single figure, as PNG and PDF, with the drift line
plot in panel A and the snapshots in panels B to E.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ff.resolve(cmd)
			if err != nil {
				return err
			}
			return runFigure(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&ff.outputDir, "output-dir", "o", def.OutputDir, "Directory to write figure.png and figure.pdf to")
	flags.IntVar(&ff.dpi, "dpi", def.DPI, "Output resolution in dots per inch")
	flags.StringVarP(&ff.inputDir, "input-dir", "i", def.InputDir, "Directory containing "+config.DriftCSVFilename)
	flags.StringVarP(&ff.visDir, "vis-dir", "v", def.VisDir, "Directory containing the visualisation snapshots")
	flags.StringVar(&ff.configPath, "config", "", "Optional YAML config file; flags given explicitly take precedence")
	flags.BoolVar(&ff.strict, "strict", false, "Treat a missing drift CSV as a validation failure")
	cmd.PersistentFlags().String("log-level", def.LogLevel, "Log level: "+strings.Join(logging.Levels, ", "))

	cmd.AddCommand(
		newSampleCmd(),
		newChartCmd(),
		newSummaryCmd(),
		newVersionCmd(),
	)
	return cmd
}

// resolve builds the run configuration: defaults, then the config file, then
// any flag the user set explicitly.
func (ff *figureFlags) resolve(cmd *cobra.Command) (*config.RunConfig, error) {
	cfg := config.Default()
	if ff.configPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(ff.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = ff.outputDir
	}
	if flags.Changed("dpi") {
		cfg.DPI = ff.dpi
	}
	if flags.Changed("input-dir") {
		cfg.InputDir = ff.inputDir
	}
	if flags.Changed("vis-dir") {
		cfg.VisDir = ff.visDir
	}
	if flags.Changed("strict") {
		cfg.Strict = ff.strict
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runFigure(cmd *cobra.Command, cfg *config.RunConfig) error {
	logger := logging.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
	logger.Debug("resolved configuration",
		"output_dir", cfg.OutputDir,
		"dpi", cfg.DPI,
		"input_dir", cfg.InputDir,
		"vis_dir", cfg.VisDir,
		"strict", cfg.Strict)

	if err := validate.Check(cfg, cmd.OutOrStdout()).Err(); err != nil {
		return err
	}

	figure.SetTheme(figure.WhiteTheme())

	f, err := figure.Load(cfg.CSVPath(), cfg.VisualizationPaths(), logger)
	if err != nil {
		return err
	}
	pngPath, pdfPath := cfg.FigurePaths()
	paths, err := f.Save(pngPath, pdfPath, cfg.DPI)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.Info("wrote figure", "path", p)
	}
	return nil
}

// commandLogger is the logger for subcommands, honouring --log-level.
func commandLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.NewLogger(level, cmd.ErrOrStderr())
}
