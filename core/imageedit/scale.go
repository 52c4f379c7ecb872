package imageedit

import (
	"image"

	"golang.org/x/image/draw"
)

// ScaleImageBy - integer upscale with nearest neighbour, so pixel (x, y) in the output came from
// (x/factor, y/factor) in the input. Handy when someone reads coordinates off the scaled image.
func ScaleImageBy(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Rect, img, bounds, draw.Src, nil)

	return dst
}
