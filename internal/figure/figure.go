// Package figure composes the drift figure: a line plot of mean drift per
// communication radius and four simulation snapshots, laid out on a fixed
// mosaic and written as PNG and PDF.
package figure

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/drift"
	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/logging"
)

// Figure size and spacing. Pad surrounds the whole mosaic, gap separates
// neighbouring panels.
const (
	Width  = 10 * vg.Inch
	Height = 5 * vg.Inch

	pad      = vg.Length(6)
	gap      = vg.Length(8)
	labelGap = vg.Length(3)
)

// DriftPanel is the mosaic cell of the line plot; ImagePanels are the four
// snapshot cells in the order their images are given.
const DriftPanel = "drift"

var ImagePanels = []string{"v1", "v2", "v3", "v4"}

// Labels are the panel letters, drift panel first.
var Labels = []string{"A", "B", "C", "D", "E"}

// Figure is a composed, not yet rendered, figure.
type Figure struct {
	mosaic *Mosaic
	theme  Theme
	panels map[string]panel
	labels map[string]string
	logger *slog.Logger
}

// Compose lays out the drift series and exactly four snapshot images using
// the current theme.
func Compose(series []drift.Series, images []image.Image) (*Figure, error) {
	if len(images) != len(ImagePanels) {
		return nil, fmt.Errorf("figure: %d images, want %d", len(images), len(ImagePanels))
	}

	m, err := NewMosaic(PublicationLayout, PublicationWidths, PublicationHeights)
	if err != nil {
		return nil, err
	}

	th := CurrentTheme()
	p, err := newDriftPlot(series, th)
	if err != nil {
		return nil, fmt.Errorf("figure: drift panel: %w", err)
	}

	f := &Figure{
		mosaic: m,
		theme:  th,
		panels: map[string]panel{DriftPanel: plotPanel{p: p}},
		labels: map[string]string{DriftPanel: Labels[0]},
		logger: logging.Discard(),
	}
	for i, name := range ImagePanels {
		f.panels[name] = imagePanel{img: images[i]}
		f.labels[name] = Labels[i+1]
	}
	return f, nil
}

// Load reads the drift CSV and the snapshot images and composes them.
// Any read, decode or column error is returned as is; nothing is recovered.
func Load(csvPath string, imagePaths []string, logger *slog.Logger) (*Figure, error) {
	series, err := drift.LoadSeries(csvPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded drift table", "path", csvPath, "series", len(series))
	for _, s := range series {
		logger.Log(context.Background(), logging.LevelTrace, "drift series", "r", s.R, "points", len(s.Points))
	}

	images := make([]image.Image, len(imagePaths))
	for i, path := range imagePaths {
		img, err := DecodeImage(path)
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		logger.Debug("loaded snapshot", "path", path, "width", b.Dx(), "height", b.Dy())
		images[i] = img
	}

	f, err := Compose(series, images)
	if err != nil {
		return nil, err
	}
	f.logger = logger
	return f, nil
}

// Draw renders every panel and its letter onto c. dpi is the resolution
// raster panels are resampled to.
func (f *Figure) Draw(c draw.Canvas, dpi int) {
	c.SetColor(f.theme.Background)
	c.Fill(c.Rectangle.Path())

	area := draw.Crop(c, pad, -pad, pad, -pad)
	ls := f.theme.labelStyle()

	for _, name := range f.mosaic.Names() {
		p, ok := f.panels[name]
		if !ok {
			continue
		}
		rect, ok := f.mosaic.Rect(name, area.Rectangle, gap)
		if !ok {
			continue
		}
		f.logger.Log(context.Background(), logging.LevelTrace, "panel",
			"name", name, "label", f.labels[name],
			"x", rect.Min.X, "y", rect.Min.Y,
			"width", rect.Max.X-rect.Min.X, "height", rect.Max.Y-rect.Min.Y)

		sub := draw.Canvas{Canvas: c.Canvas, Rectangle: rect}

		if label := f.labels[name]; label != "" {
			sub.FillText(ls, vg.Point{X: rect.Min.X, Y: rect.Max.Y}, label)
			sub = draw.Crop(sub, 0, 0, 0, -(ls.Height(label) + labelGap))
		}
		p.draw(sub, dpi)
	}
}

// WritePNG renders the figure as a PNG at dpi.
func (f *Figure) WritePNG(w io.Writer, dpi int) error {
	if dpi < 1 {
		return fmt.Errorf("figure: dpi must be positive, got %d", dpi)
	}
	c := vgimg.NewWith(vgimg.UseWH(Width, Height), vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(f.theme.Background))
	f.Draw(draw.New(c), dpi)
	_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}

// WritePDF renders the figure as a PDF. Text and lines stay vector; the
// snapshots are embedded at dpi.
func (f *Figure) WritePDF(w io.Writer, dpi int) error {
	if dpi < 1 {
		return fmt.Errorf("figure: dpi must be positive, got %d", dpi)
	}
	c := vgpdf.New(Width, Height)
	f.Draw(draw.New(c), dpi)
	_, err := c.WriteTo(w)
	return err
}

// Save writes the PNG and the PDF rendering of the figure to the given
// paths and returns the paths written.
func (f *Figure) Save(pngPath, pdfPath string, dpi int) ([]string, error) {
	outputs := []struct {
		path  string
		write func(io.Writer, int) error
	}{
		{pngPath, f.WritePNG},
		{pdfPath, f.WritePDF},
	}

	paths := make([]string, 0, len(outputs))
	for _, o := range outputs {
		if err := writeFile(o.path, func(w io.Writer) error { return o.write(w, dpi) }); err != nil {
			return paths, fmt.Errorf("writing %s: %w", o.path, err)
		}
		paths = append(paths, o.path)
	}
	return paths, nil
}

// writeFile renders into memory first so a failed render leaves no file.
func writeFile(path string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
