// Package quicklook renders fast previews of a drift dataset: a go-chart
// line chart of the mean drift per radius and an xlsx summary table.
package quicklook

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/drift"
)

// Default chart size in pixels.
const (
	DefaultWidth  = 1024
	DefaultHeight = 512
)

// Format is the chart output encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q (want .png or .svg)", ext)
	}
}

// Chart builds a line chart with one mean-drift series per radius.
func Chart(series []drift.Series, width, height int) chart.Chart {
	c := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 120},
		},
		XAxis: chart.XAxis{Name: "Simulation steps"},
		YAxis: chart.YAxis{Name: "Mean drift"},
	}

	for i, s := range series {
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j], ys[j] = p.Step, p.Mean
		}
		c.Series = append(c.Series, chart.ContinuousSeries{
			Name:    drift.ColRadius + "=" + s.R,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2,
			},
		})
	}

	c.Elements = []chart.Renderable{chart.LegendLeft(&c)}
	return c
}

// RenderChart writes the chart of series to w.
func RenderChart(w io.Writer, series []drift.Series, format Format, width, height int) error {
	if len(series) == 0 {
		return fmt.Errorf("no drift series to chart")
	}

	rp := chart.PNG
	if format == SVG {
		rp = chart.SVG
	}

	c := Chart(series, width, height)
	if err := c.Render(rp, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
