package imageedit

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// MarkRegion - returns a copy of img with a 1 pixel outline drawn around rect
func MarkRegion(img image.Image, rect image.Rectangle, markColour color.Color) image.Image {
	bounds := img.Bounds()

	outImage := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(outImage, outImage.Bounds(), img, bounds.Min, draw.Src)

	rect = rect.Intersect(outImage.Bounds())
	if rect.Empty() {
		return outImage
	}

	for x := rect.Min.X; x < rect.Max.X; x++ {
		outImage.Set(x, rect.Min.Y, markColour)
		outImage.Set(x, rect.Max.Y-1, markColour)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		outImage.Set(rect.Min.X, y, markColour)
		outImage.Set(rect.Max.X-1, y, markColour)
	}

	return outImage
}
