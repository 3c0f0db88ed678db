package sample

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBin(t *testing.T) {
	pos := []Vec{
		{X: 0, Y: 0},
		{X: 0.1, Y: 0.1},
		{X: 9.99, Y: 9.99},
		{X: 5, Y: 2.5},
	}
	counts := Bin(pos, 10)

	assert.Equal(t, 2, counts[0][0])
	assert.Equal(t, 1, counts[GridSize-1][GridSize-1])
	assert.Equal(t, 1, counts[25][12])

	total := 0
	for i := range counts {
		for j := range counts[i] {
			total += counts[i][j]
		}
	}
	assert.Equal(t, len(pos), total)
}

func TestBinZeroWidth(t *testing.T) {
	counts := Bin([]Vec{{X: 1, Y: 1}}, 0)
	assert.Zero(t, counts[0][0])
}

func TestRenderFrame(t *testing.T) {
	img := RenderFrame([]Vec{{X: 5, Y: 5}}, 10, "")
	assert.Equal(t, image.Rect(0, 0, FrameSize, FrameSize), img.Bounds())

	x, y := hexCenter(25, 25)
	assert.Equal(t, heat(1), img.RGBAAt(x, y))

	ex, ey := hexCenter(3, 3)
	assert.Equal(t, background, img.RGBAAt(ex, ey))
}

func TestRenderFrameCaption(t *testing.T) {
	img := RenderFrame(nil, 10, "step 0")

	// The caption box is painted white around the text.
	assert.Equal(t, captionBg, img.RGBAAt(3, 6))
	assert.Equal(t, background, img.RGBAAt(FrameSize-1, FrameSize-1))
}

func TestHexagonsFitTheFrame(t *testing.T) {
	x, y := hexCenter(GridSize-1, GridSize-1)
	assert.Less(t, x+CellSize, FrameSize)
	assert.Less(t, y+CellSize, FrameSize)

	x0, y0 := hexCenter(0, 0)
	assert.GreaterOrEqual(t, x0-CellSize, 0)
	assert.GreaterOrEqual(t, y0-CellSize, 0)
}

func TestGridIsCentred(t *testing.T) {
	left, _ := hexCenter(0, 0)
	right, _ := hexCenter(GridSize-1, 0)
	_, top := hexCenter(0, 0)
	_, bottom := hexCenter(1, GridSize-1)

	leftMargin := float64(left - CellSize)
	rightMargin := float64(FrameSize - (right + CellSize))
	topMargin := float64(top) - hexHalfHeight
	bottomMargin := float64(FrameSize-bottom) - hexHalfHeight

	assert.InDelta(t, leftMargin, rightMargin, 2)
	assert.InDelta(t, topMargin, bottomMargin, 2)
	assert.Positive(t, leftMargin)
	assert.Positive(t, topMargin)
}

func TestInsideHexagon(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	drawHexagon(img, 10, 10, color.White)

	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(19, 19))
}

func TestHeat(t *testing.T) {
	lo, hi := heat(0.01), heat(1)
	assert.Less(t, lo.R, hi.R)
	assert.Less(t, lo.G, hi.G)
	assert.Equal(t, color.RGBA{R: 255, G: 255, A: 255}, hi)
}
