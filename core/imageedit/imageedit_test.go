package imageedit

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

func Example_makeGrayImage() {
	img := MakeGrayImage(3, 2, []float32{0, 0.5, 1, -2, 7, float32(math.NaN())})
	fmt.Println(img.Bounds(), img.Pix)

	// Output:
	// (0,0)-(3,2) [0 128 255 0 255 0]
}

func Example_scaleImageBy() {
	img := MakeGrayImage(2, 1, []float32{0, 1})
	scaled := ScaleImageBy(img, 3)

	r0, _, _, _ := scaled.At(2, 2).RGBA()
	r1, _, _, _ := scaled.At(3, 0).RGBA()
	fmt.Println(scaled.Bounds(), r0>>8, r1>>8, ScaleImageBy(img, 1) == image.Image(img))

	// Output:
	// (0,0)-(6,3) 0 255 true
}

func Example_markRegion() {
	img := MakeGrayImage(4, 4, make([]float32, 16))
	marked := MarkRegion(img, image.Rect(1, 1, 3, 3), color.RGBA{R: 255, A: 255})

	for y := 0; y < 4; y++ {
		line := ""
		for x := 0; x < 4; x++ {
			r, _, _, _ := marked.At(x, y).RGBA()
			if r > 0 {
				line += "#"
			} else {
				line += "."
			}
		}
		fmt.Println(line)
	}

	// Output:
	// ....
	// .##.
	// .##.
	// ....
}

func Example_toNRGBA() {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(6, 5, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	out := ToNRGBA(src)
	fmt.Println(out.Bounds(), out.Pix[4:8])

	// Output:
	// (0,0)-(2,1) [1 2 3 255]
}
