package figure

import (
	"image"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg/draw"

	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/drift"
)

// Axis labels of the drift panel.
const (
	DriftXLabel = "Simulation steps"
	DriftYLabel = "Mean drift"
)

// panel draws itself into the canvas it is given. dpi is the resolution the
// figure is being rendered at, for panels that rasterise.
type panel interface {
	draw(c draw.Canvas, dpi int)
}

type plotPanel struct {
	p *plot.Plot
}

func (pp plotPanel) draw(c draw.Canvas, _ int) {
	pp.p.Draw(c)
}

// imagePanel shows a raster at its native aspect ratio with no axes or frame.
type imagePanel struct {
	img image.Image
}

func (ip imagePanel) draw(c draw.Canvas, dpi int) {
	rect := fitRect(c.Rectangle, ip.img)
	size := rect.Size()
	w := int(size.X.Dots(float64(dpi)) + 0.5)
	h := int(size.Y.Dots(float64(dpi)) + 0.5)
	c.DrawImage(rect, resample(ip.img, w, h))
}

// newDriftPlot draws one line per radius, coloured by radius, with a shaded
// 95% confidence band wherever a step has more than one sample.
func newDriftPlot(series []drift.Series, th Theme) (*plot.Plot, error) {
	p := plot.New()
	p.BackgroundColor = th.Background

	p.X.Label.Text = DriftXLabel
	p.Y.Label.Text = DriftYLabel
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font = th.textFont(th.TextSize)
		ax.Tick.Label.Font = th.textFont(th.TickSize)
	}

	p.Legend.Top = true
	p.Legend.TextStyle.Font = th.textFont(th.TickSize)
	if len(series) > 0 {
		p.Legend.Add(drift.ColRadius)
	}

	for i, s := range series {
		col := plotutil.Color(i)

		if band := confidenceBand(s); band != nil {
			poly, err := plotter.NewPolygon(band)
			if err != nil {
				return nil, err
			}
			poly.Color = withAlpha(col, th.BandAlpha)
			poly.LineStyle.Width = 0
			poly.LineStyle.Color = poly.Color
			p.Add(poly)
		}

		pts := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			pts[j].X = pt.Step
			pts[j].Y = pt.Mean
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = col
		line.LineStyle.Width = th.LineWidth
		p.Add(line)
		p.Legend.Add(s.R, line)
	}
	return p, nil
}

// confidenceBand is the closed outline of the interval around a series, or
// nil when no step has spread.
func confidenceBand(s drift.Series) plotter.XYs {
	spread := false
	for _, pt := range s.Points {
		if pt.High > pt.Low {
			spread = true
			break
		}
	}
	if !spread || len(s.Points) < 2 {
		return nil
	}

	n := len(s.Points)
	ring := make(plotter.XYs, 0, 2*n)
	for _, pt := range s.Points {
		ring = append(ring, plotter.XY{X: pt.Step, Y: pt.High})
	}
	for i := n - 1; i >= 0; i-- {
		ring = append(ring, plotter.XY{X: s.Points[i].Step, Y: s.Points[i].Low})
	}
	return ring
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}
