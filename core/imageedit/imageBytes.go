package imageedit

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// MakeGrayImage - builds an 8 bit greyscale image from row-major values expected to be in 0..1.
// Values outside that range (or NaN) are clamped.
func MakeGrayImage(width int, height int, data []float32) *image.Gray {
	i := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := float64(data[y*width+x])
			if math.IsNaN(v) || v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			i.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}

	return i
}

// ToNRGBA - copies any image into non-premultiplied RGBA with its origin at 0,0, so
// Pix can be read channel by channel
func ToNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) {
		return nrgba
	}

	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}
