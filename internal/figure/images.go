package figure

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"gonum.org/v1/plot/vg"
)

// DecodeImage reads a raster image in any registered format.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// fitRect is the largest rectangle with the image's aspect ratio that fits
// centred in area.
func fitRect(area vg.Rectangle, img image.Image) vg.Rectangle {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return area
	}
	size := area.Size()
	scale := min(size.X/vg.Length(b.Dx()), size.Y/vg.Length(b.Dy()))
	w, h := vg.Length(b.Dx())*scale, vg.Length(b.Dy())*scale

	lo := vg.Point{
		X: area.Min.X + (size.X-w)/2,
		Y: area.Min.Y + (size.Y-h)/2,
	}
	return vg.Rectangle{Min: lo, Max: vg.Point{X: lo.X + w, Y: lo.Y + h}}
}

// resample scales img to w x h pixels. Enlarging keeps pixels as blocks;
// shrinking averages them.
func resample(img image.Image, w, h int) image.Image {
	w, h = max(w, 1), max(h, 1)
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}

	var s xdraw.Interpolator = xdraw.NearestNeighbor
	if w < b.Dx() || h < b.Dy() {
		s = xdraw.ApproxBiLinear
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	s.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
