package sample

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/icza/mjpeg"
	"golang.org/x/sync/errgroup"

	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/config"
)

// Snapshot steps, one per visualisation file in config.VisualizationFiles.
var SnapshotSteps = []int{0, 350, 650, 2500}

// Video settings.
const (
	VideoFile   = "drift.avi"
	VideoFPS    = 10
	VideoFrames = 100 // approximate number of frames over a whole run
	jpegQuality = 75
)

// CSVHeader is the column layout of the generated drift CSV. Names carry a
// leading space, as simulation exports often do.
var CSVHeader = []string{"step", " comm_radius", " simulation", " s_drift"}

// Options controls a generator run.
type Options struct {
	Dir     string
	Agents  int
	Steps   int
	Radii   []float64
	Sims    int
	Seed    int64
	Video   bool
	Workers int
}

// DefaultOptions matches the layout the figure command looks for by default.
func DefaultOptions() Options {
	return Options{
		Dir:     "sample",
		Agents:  256,
		Steps:   2500,
		Radii:   []float64{2, 4, 6},
		Sims:    3,
		Seed:    1,
		Workers: 4,
	}
}

func (o Options) validate() error {
	switch {
	case o.Dir == "":
		return fmt.Errorf("sample: empty output directory")
	case o.Agents < 1:
		return fmt.Errorf("sample: agents must be positive, got %d", o.Agents)
	case o.Steps < 1:
		return fmt.Errorf("sample: steps must be positive, got %d", o.Steps)
	case len(o.Radii) == 0:
		return fmt.Errorf("sample: no radii")
	case o.Sims < 1:
		return fmt.Errorf("sample: sims must be positive, got %d", o.Sims)
	}
	for _, r := range o.Radii {
		if r <= 0 {
			return fmt.Errorf("sample: radius must be positive, got %g", r)
		}
	}
	return nil
}

// Output lists the files a run wrote.
type Output struct {
	CSV       string
	Snapshots []string
	Video     string
}

// run is one (radius, simulation) pair. Only the recorded run keeps frames.
type run struct {
	radius float64
	sim    int
	record bool

	drift     []float64
	snapshots []*image.RGBA
	frames    [][]byte
}

// Generate runs every (radius, simulation) pair in parallel and writes the
// drift CSV, the snapshots of the first simulation at the largest radius and,
// if asked, the preview video.
func Generate(ctx context.Context, opts Options, logger *slog.Logger) (*Output, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	visDir := filepath.Join(opts.Dir, "figures", "visualisation")
	if err := os.MkdirAll(visDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", visDir, err)
	}

	radii := slices.Clone(opts.Radii)
	slices.Sort(radii)
	radii = slices.Compact(radii)
	largest := radii[len(radii)-1]

	runs := make([]*run, 0, len(radii)*opts.Sims)
	for _, r := range radii {
		for s := 0; s < opts.Sims; s++ {
			runs = append(runs, &run{radius: r, sim: s, record: r == largest && s == 0})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, rn := range runs {
		rn := rn
		seed := opts.Seed + int64(i)
		g.Go(func() error {
			logger.Debug("starting run", "radius", rn.radius, "simulation", rn.sim)
			return rn.simulate(ctx, opts, seed)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Output{CSV: filepath.Join(opts.Dir, config.DriftCSVFilename)}
	if err := writeCSV(out.CSV, runs); err != nil {
		return nil, err
	}
	logger.Info("wrote drift csv", "path", out.CSV, "runs", len(runs), "steps", opts.Steps)

	rec := runs[slices.IndexFunc(runs, func(r *run) bool { return r.record })]
	for i, img := range rec.snapshots {
		path := filepath.Join(visDir, config.VisualizationFiles[i])
		if err := savePNG(path, img); err != nil {
			return nil, err
		}
		out.Snapshots = append(out.Snapshots, path)
	}
	logger.Info("wrote snapshots", "dir", visDir, "radius", rec.radius)

	if opts.Video {
		out.Video = filepath.Join(visDir, VideoFile)
		if err := writeVideo(out.Video, rec.frames); err != nil {
			return nil, err
		}
		logger.Info("wrote video", "path", out.Video, "frames", len(rec.frames))
	}
	return out, nil
}

// snapshotStep clamps a snapshot step to the length of the run.
func snapshotStep(step, steps int) int {
	return min(step, steps)
}

func (rn *run) simulate(ctx context.Context, opts Options, seed int64) error {
	m := NewModel(opts.Agents, rn.radius, seed)
	rn.drift = make([]float64, opts.Steps)

	frameEvery := max(1, opts.Steps/VideoFrames)
	rn.snapshots = make([]*image.RGBA, len(SnapshotSteps))

	for step := 0; step <= opts.Steps; step++ {
		if step%100 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if rn.record {
			if err := rn.capture(m, opts, step, frameEvery); err != nil {
				return err
			}
		}
		if step < opts.Steps {
			rn.drift[step] = m.Step()
		}
	}
	return nil
}

// capture renders the current state if step is a snapshot or a video frame.
func (rn *run) capture(m *Model, opts Options, step, frameEvery int) error {
	var img *image.RGBA
	render := func() *image.RGBA {
		if img == nil {
			img = RenderFrame(m.Positions(), m.Width, fmt.Sprintf("step %d  r=%g", step, rn.radius))
		}
		return img
	}

	for i, s := range SnapshotSteps {
		if snapshotStep(s, opts.Steps) == step {
			rn.snapshots[i] = render()
		}
	}

	if opts.Video && step%frameEvery == 0 {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, render(), &jpeg.Options{Quality: jpegQuality}); err != nil {
			return fmt.Errorf("encoding frame %d: %w", step, err)
		}
		rn.frames = append(rn.frames, buf.Bytes())
	}
	return nil
}

func writeCSV(path string, runs []*run) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, rn := range runs {
		r := strconv.FormatFloat(rn.radius, 'f', -1, 64)
		sim := strconv.Itoa(rn.sim)
		for step, d := range rn.drift {
			row := []string{strconv.Itoa(step), r, sim, strconv.FormatFloat(d, 'f', 6, 64)}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func savePNG(path string, img image.Image) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

func writeVideo(path string, frames [][]byte) (err error) {
	vw, err := mjpeg.New(path, FrameSize, FrameSize, VideoFPS)
	if err != nil {
		return fmt.Errorf("creating video %s: %w", path, err)
	}
	defer func() {
		if cerr := vw.Close(); err == nil {
			err = cerr
		}
	}()
	for i, f := range frames {
		if err := vw.AddFrame(f); err != nil {
			return fmt.Errorf("adding frame %d: %w", i, err)
		}
	}
	return nil
}
