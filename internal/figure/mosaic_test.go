package figure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func rect(x0, y0, x1, y1 float64) vg.Rectangle {
	return vg.Rectangle{
		Min: vg.Point{X: vg.Length(x0), Y: vg.Length(y0)},
		Max: vg.Point{X: vg.Length(x1), Y: vg.Length(y1)},
	}
}

func assertRect(t *testing.T, want, got vg.Rectangle) {
	t.Helper()
	assert.InDelta(t, float64(want.Min.X), float64(got.Min.X), 1e-9, "min x")
	assert.InDelta(t, float64(want.Min.Y), float64(got.Min.Y), 1e-9, "min y")
	assert.InDelta(t, float64(want.Max.X), float64(got.Max.X), 1e-9, "max x")
	assert.InDelta(t, float64(want.Max.Y), float64(got.Max.Y), 1e-9, "max y")
}

func TestPublicationMosaic(t *testing.T) {
	m, err := NewMosaic(PublicationLayout, PublicationWidths, PublicationHeights)
	require.NoError(t, err)

	assert.Equal(t, []string{"drift", "v1", "v2", "v3", "v4"}, m.Names())

	area := rect(0, 0, 400, 200)
	tests := []struct {
		name string
		want vg.Rectangle
	}{
		{"drift", rect(0, 0, 200, 200)},
		{"v1", rect(200, 100, 300, 200)},
		{"v2", rect(300, 100, 400, 200)},
		{"v3", rect(200, 0, 300, 100)},
		{"v4", rect(300, 0, 400, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Rect(tt.name, area, 0)
			require.True(t, ok)
			assertRect(t, tt.want, got)
		})
	}
}

func TestMosaicGap(t *testing.T) {
	m, err := NewMosaic(PublicationLayout, PublicationWidths, PublicationHeights)
	require.NoError(t, err)

	// 420 wide with two 10pt gaps leaves 400 to share 2:1:1.
	area := rect(0, 0, 420, 210)

	drift, _ := m.Rect("drift", area, 10)
	assertRect(t, rect(0, 0, 200, 210), drift)

	v1, _ := m.Rect("v1", area, 10)
	assertRect(t, rect(210, 110, 310, 210), v1)

	v4, _ := m.Rect("v4", area, 10)
	assertRect(t, rect(320, 0, 420, 100), v4)
}

func TestMosaicUnknownName(t *testing.T) {
	m, err := NewMosaic([][]string{{"a"}}, nil, nil)
	require.NoError(t, err)

	_, ok := m.Rect("b", rect(0, 0, 1, 1), 0)
	assert.False(t, ok)
}

func TestNewMosaicErrors(t *testing.T) {
	tests := []struct {
		name    string
		layout  [][]string
		widths  []float64
		heights []float64
		want    string
	}{
		{"empty", nil, nil, nil, "empty layout"},
		{"ragged", [][]string{{"a", "b"}, {"c"}}, nil, nil, "row 1"},
		{"unnamed", [][]string{{"a", ""}}, nil, nil, "no name"},
		{"not rectangular", [][]string{{"a", "a"}, {"a", "b"}}, nil, nil, "not rectangular"},
		{"split", [][]string{{"a", "b", "a"}}, nil, nil, "not rectangular"},
		{"width count", [][]string{{"a", "b"}}, []float64{1}, nil, "width ratios"},
		{"height value", [][]string{{"a"}}, nil, []float64{0}, "positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMosaic(tt.layout, tt.widths, tt.heights)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
