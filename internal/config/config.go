// Package config holds the run configuration for drift-figure and the fixed
// input/output file names the figure is built from.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultDPI is the output resolution used when --dpi is not given.
	DefaultDPI = 300

	// DefaultOutputDir and DefaultInputDir are the working directory.
	DefaultOutputDir = "."
	DefaultInputDir  = "."

	// DefaultVisDir is where the sample generator writes its snapshots.
	DefaultVisDir = "./sample/figures/visualisation"

	// DriftCSVFilename is the per-step, per-simulation drift table.
	DriftCSVFilename = "drift_perStepPerSimulationCSV.csv"

	// FigureBasename is the stem shared by the PNG and PDF outputs.
	FigureBasename = "figure"
)

// VisualizationFiles are the snapshot images shown in panels B to E, in order.
// The figure layout has exactly four image cells.
var VisualizationFiles = []string{"0.png", "350.png", "650.png", "2500.png"}

// RunConfig is the immutable configuration of a single run.
type RunConfig struct {
	// OutputDir receives figure.png and figure.pdf. It is created if missing.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// DPI is the output resolution. Values below 1 are rejected at validation.
	DPI int `json:"dpi" yaml:"dpi"`

	// InputDir must contain DriftCSVFilename.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// VisDir must contain every entry of VisualizationFiles.
	VisDir string `json:"vis_dir" yaml:"vis_dir"`

	// LogLevel is "info" (default), "debug" or "trace".
	LogLevel string `json:"log_level" yaml:"log_level" validate:"omitempty,oneof=info debug trace"`

	// Strict makes a missing drift CSV a validation failure rather than a
	// reported problem only.
	Strict bool `json:"strict" yaml:"strict"`
}

// Default returns the configuration used when no flags or file are given.
func Default() *RunConfig {
	return &RunConfig{
		OutputDir: DefaultOutputDir,
		DPI:       DefaultDPI,
		InputDir:  DefaultInputDir,
		VisDir:    DefaultVisDir,
		LogLevel:  "info",
	}
}

// LoadFromFile reads a YAML configuration file on top of the defaults.
// Keys absent from the file keep their default values.
func LoadFromFile(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the struct-level constraints of the configuration. Path and
// DPI checks are left to the validate package so that every problem is
// reported together.
func (c *RunConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s: %q (must be one of: %s)", fe.Field(), fe.Value(), fe.Param())
		}
		return err
	}
	return nil
}

// CSVPath is the expected location of the drift table.
func (c *RunConfig) CSVPath() string {
	return filepath.Join(c.InputDir, DriftCSVFilename)
}

// VisualizationPaths returns the full paths of the four snapshot images.
func (c *RunConfig) VisualizationPaths() []string {
	paths := make([]string, len(VisualizationFiles))
	for i, name := range VisualizationFiles {
		paths[i] = filepath.Join(c.VisDir, name)
	}
	return paths
}

// FigurePaths returns the PNG and PDF output paths.
func (c *RunConfig) FigurePaths() (png, pdf string) {
	return filepath.Join(c.OutputDir, FigureBasename+".png"),
		filepath.Join(c.OutputDir, FigureBasename+".pdf")
}
