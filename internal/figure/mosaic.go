package figure

import (
	"fmt"

	"gonum.org/v1/plot/vg"
)

// PublicationLayout is the fixed drift-figure mosaic: one drift panel spanning
// both rows on the left, four image panels on the right.
var PublicationLayout = [][]string{
	{"drift", "v1", "v2"},
	{"drift", "v3", "v4"},
}

// PublicationWidths and PublicationHeights are the relative column widths and
// row heights of PublicationLayout.
var (
	PublicationWidths  = []float64{2, 1, 1}
	PublicationHeights = []float64{1, 1}
)

// span is a half-open block of grid cells.
type span struct {
	r0, r1 int
	c0, c1 int
}

// Mosaic is a grid of named cells. A name repeated over adjacent cells makes
// one panel spanning them; every name must cover a full rectangle.
type Mosaic struct {
	rows, cols int
	widths     []float64
	heights    []float64
	cells      map[string]span
	order      []string
}

// NewMosaic parses a named-cell layout. Nil ratios mean equal sizes.
func NewMosaic(layout [][]string, widthRatios, heightRatios []float64) (*Mosaic, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, fmt.Errorf("mosaic: empty layout")
	}
	m := &Mosaic{
		rows:  len(layout),
		cols:  len(layout[0]),
		cells: make(map[string]span),
	}
	for i, row := range layout {
		if len(row) != m.cols {
			return nil, fmt.Errorf("mosaic: row %d has %d cells, want %d", i, len(row), m.cols)
		}
	}

	var err error
	if m.widths, err = ratios(widthRatios, m.cols, "width"); err != nil {
		return nil, err
	}
	if m.heights, err = ratios(heightRatios, m.rows, "height"); err != nil {
		return nil, err
	}

	for r, row := range layout {
		for c, name := range row {
			if name == "" {
				return nil, fmt.Errorf("mosaic: cell (%d,%d) has no name", r, c)
			}
			s, ok := m.cells[name]
			if !ok {
				m.cells[name] = span{r0: r, r1: r + 1, c0: c, c1: c + 1}
				m.order = append(m.order, name)
				continue
			}
			s.r0, s.r1 = min(s.r0, r), max(s.r1, r+1)
			s.c0, s.c1 = min(s.c0, c), max(s.c1, c+1)
			m.cells[name] = s
		}
	}

	for name, s := range m.cells {
		for r := s.r0; r < s.r1; r++ {
			for c := s.c0; c < s.c1; c++ {
				if layout[r][c] != name {
					return nil, fmt.Errorf("mosaic: %q is not rectangular", name)
				}
			}
		}
	}
	return m, nil
}

func ratios(in []float64, n int, what string) ([]float64, error) {
	if in == nil {
		out := make([]float64, n)
		for i := range out {
			out[i] = 1
		}
		return out, nil
	}
	if len(in) != n {
		return nil, fmt.Errorf("mosaic: %d %s ratios for %d cells", len(in), what, n)
	}
	for _, v := range in {
		if v <= 0 {
			return nil, fmt.Errorf("mosaic: %s ratios must be positive", what)
		}
	}
	return append([]float64(nil), in...), nil
}

// Names returns the panel names in row-major order of first appearance.
func (m *Mosaic) Names() []string {
	return append([]string(nil), m.order...)
}

// Rect places the named panel inside area, leaving gap between neighbouring
// cells. Row 0 is the top row.
func (m *Mosaic) Rect(name string, area vg.Rectangle, gap vg.Length) (vg.Rectangle, bool) {
	s, ok := m.cells[name]
	if !ok {
		return vg.Rectangle{}, false
	}

	size := area.Size()
	usableW := size.X - gap*vg.Length(m.cols-1)
	usableH := size.Y - gap*vg.Length(m.rows-1)

	x0 := area.Min.X + usableW*frac(m.widths, s.c0) + gap*vg.Length(s.c0)
	x1 := area.Min.X + usableW*frac(m.widths, s.c1) + gap*vg.Length(s.c1-1)
	top := area.Max.Y - usableH*frac(m.heights, s.r0) - gap*vg.Length(s.r0)
	bottom := area.Max.Y - usableH*frac(m.heights, s.r1) - gap*vg.Length(s.r1-1)

	return vg.Rectangle{
		Min: vg.Point{X: x0, Y: bottom},
		Max: vg.Point{X: x1, Y: top},
	}, true
}

// frac is the share of the total taken by the first n entries.
func frac(sizes []float64, n int) vg.Length {
	var part, total float64
	for i, v := range sizes {
		if i < n {
			part += v
		}
		total += v
	}
	return vg.Length(part / total)
}
