package sample

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Snapshot geometry. The square is binned into GridSize x GridSize cells,
// each drawn as a hexagon of radius CellSize pixels.
const (
	GridSize = 50
	CellSize = 4
)

// FrameSize is the width and height of a rendered snapshot in pixels.
const FrameSize = GridSize * CellSize * 2

var (
	background = color.RGBA{0, 0, 0, 255}
	captionFg  = color.RGBA{0, 0, 0, 255}
	captionBg  = color.RGBA{255, 255, 255, 255}
)

// Bin counts agents per grid cell. Index is [i][j] with i along x.
func Bin(pos []Vec, width float64) [GridSize][GridSize]int {
	var counts [GridSize][GridSize]int
	if width <= 0 {
		return counts
	}
	for _, p := range pos {
		i := min(int(p.X/width*GridSize), GridSize-1)
		j := min(int(p.Y/width*GridSize), GridSize-1)
		if i < 0 || j < 0 {
			continue
		}
		counts[i][j]++
	}
	return counts
}

// RenderFrame draws agent density on a hexagonal grid with caption in the
// top-left corner. Empty cells stay black; occupied cells run from dark red
// to yellow as the count approaches the busiest cell.
func RenderFrame(pos []Vec, width float64, caption string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, FrameSize, FrameSize))
	fillBackground(img, background)

	counts := Bin(pos, width)
	peak := 0
	for i := range counts {
		for j := range counts[i] {
			peak = max(peak, counts[i][j])
		}
	}

	for i := 0; i < GridSize; i++ {
		for j := 0; j < GridSize; j++ {
			if counts[i][j] == 0 {
				continue
			}
			x, y := hexCenter(i, j)
			drawHexagon(img, x, y, heat(float64(counts[i][j])/float64(peak)))
		}
	}

	if caption != "" {
		drawTextWithBackground(img, 4, 16, caption, captionFg, captionBg)
	}
	return img
}

// heat maps t in (0,1] from dark red to yellow.
func heat(t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	return color.RGBA{
		R: uint8(96 + 159*math.Min(1, 2*t)),
		G: uint8(255 * math.Max(0, 2*t-1)),
		A: 255,
	}
}

func fillBackground(img *image.RGBA, c color.Color) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

// Hex grid extent. A cell is 2*CellSize wide and 2*hexHalfHeight tall; odd
// columns add half a cell at the bottom.
var (
	hexHalfHeight = CellSize * math.Sqrt(3) / 2
	gridWidth     = float64((GridSize-1)*CellSize*3/2 + 2*CellSize)
	gridHeight    = float64(2*GridSize+1) * hexHalfHeight

	originX = (FrameSize-gridWidth)/2 + CellSize
	originY = (FrameSize-gridHeight)/2 + hexHalfHeight
)

// hexCenter is the pixel centre of cell (i, j); odd columns are shifted half
// a cell down. The grid is centred in the frame.
func hexCenter(i, j int) (int, int) {
	x := originX + float64(i)*CellSize*3/2
	y := originY + float64(j)*2*hexHalfHeight + float64(i%2)*hexHalfHeight
	return int(math.Round(x)), int(math.Round(y))
}

func drawHexagon(img *image.RGBA, x, y int, c color.Color) {
	var hex [6]image.Point
	for k := 0; k < 6; k++ {
		angle := math.Pi / 3 * float64(k)
		hex[k] = image.Point{
			X: x + int(math.Round(CellSize*math.Cos(angle))),
			Y: y + int(math.Round(CellSize*math.Sin(angle))),
		}
	}
	fillHexagon(img, hex, c)
}

func fillHexagon(img *image.RGBA, hex [6]image.Point, c color.Color) {
	lo, hi := hex[0], hex[0]
	for _, p := range hex[1:] {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			if insideHexagon(image.Point{X: x, Y: y}, hex) {
				img.Set(x, y, c)
			}
		}
	}
}

// insideHexagon reports whether p lies inside the convex polygon hex, whose
// vertices wind clockwise in image space.
func insideHexagon(p image.Point, hex [6]image.Point) bool {
	for i := 0; i < 6; i++ {
		j := (i + 1) % 6
		if (hex[j].X-hex[i].X)*(p.Y-hex[i].Y)-(hex[j].Y-hex[i].Y)*(p.X-hex[i].X) < 0 {
			return false
		}
	}
	return true
}

func drawTextWithBackground(img *image.RGBA, x, y int, text string, fg, bg color.Color) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Height.Ceil()
	for i := x - 2; i < x+w+2; i++ {
		for j := y - h; j < y+3; j++ {
			img.Set(i, j, bg)
		}
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
