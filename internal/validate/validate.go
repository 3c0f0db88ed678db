// Package validate runs the pre-flight checks on a run configuration.
//
// Every check runs regardless of earlier failures and each problem is
// printed as it is found, so a user sees all of them in one pass. A
// problem does not always make the run invalid: an input directory that
// exists but lacks the drift CSV is reported and still passes unless the
// configuration is strict.
package validate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/config"
)

// ErrInvalid is returned by callers that stop because Check failed.
var ErrInvalid = errors.New("invalid arguments")

// requiredImages is the number of image cells in the figure layout.
const requiredImages = 4

// Result is the outcome of Check.
type Result struct {
	// Valid is false when at least one failing check marked the run invalid.
	Valid bool

	// Problems holds every diagnostic line that was printed, in order.
	Problems []string
}

// Err returns ErrInvalid when the result is not valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return ErrInvalid
}

type checker struct {
	w      io.Writer
	result Result
}

func (c *checker) report(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	c.result.Problems = append(c.result.Problems, line)
	fmt.Fprintln(c.w, line)
}

func (c *checker) fail(format string, args ...any) {
	c.report(format, args...)
	c.result.Valid = false
}

// Check validates cfg, printing a line to w for each problem found.
// The output directory is created as a side effect.
func Check(cfg *config.RunConfig, w io.Writer) Result {
	return check(cfg, config.VisualizationFiles, w)
}

func check(cfg *config.RunConfig, visFiles []string, w io.Writer) Result {
	c := &checker{w: w, result: Result{Valid: true}}

	c.outputDir(cfg.OutputDir)
	c.dpi(cfg.DPI)
	c.inputDir(cfg.InputDir, cfg.Strict)
	c.visDir(cfg.VisDir, visFiles)

	if len(visFiles) != requiredImages {
		c.fail("Error: visualisation file list does not contain %d files", requiredImages)
	}

	return c.result
}

// outputDir creates the leaf directory; an existing directory is fine.
func (c *checker) outputDir(dir string) {
	p := filepath.Clean(dir)
	err := os.Mkdir(p, 0o755)
	if err == nil {
		return
	}
	if errors.Is(err, fs.ErrExist) {
		if info, statErr := os.Stat(p); statErr == nil && info.IsDir() {
			return
		}
	}
	c.fail("Error: Could not create output directory %s: %v", p, err)
}

func (c *checker) dpi(dpi int) {
	if dpi < 1 {
		c.fail("Error: --dpi must be a positive value. %d", dpi)
	}
}

func (c *checker) inputDir(dir string, strict bool) {
	p := filepath.Clean(dir)
	if !isDir(p) {
		c.fail("Error: Invalid input_dir provided %s", dir)
		return
	}
	if isFile(filepath.Join(p, config.DriftCSVFilename)) {
		return
	}
	if strict {
		c.fail("Error: %s does not contain %s", p, config.DriftCSVFilename)
		return
	}
	c.report("Error: %s does not contain %s", p, config.DriftCSVFilename)
}

func (c *checker) visDir(dir string, files []string) {
	p := filepath.Clean(dir)
	if !isDir(p) {
		c.fail("Error: Invalid vis_dir provided %s", dir)
		return
	}

	var missing []string
	for _, name := range files {
		path := filepath.Join(p, name)
		if !isFile(path) {
			missing = append(missing, path)
		}
	}
	if len(missing) == 0 {
		return
	}

	c.fail("Error: %s does not contain required files:", p)
	for _, path := range missing {
		c.report("  %s", path)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
