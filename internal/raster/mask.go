package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// Flatten composites img over an opaque white canvas of the same size.
// Images without transparency come out unchanged.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// Grayscale converts img to single-channel luma (ITU-R 601)
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// Binarize forces every value above threshold to 255 in place and leaves
// the rest untouched. Applying it twice is the same as applying it once.
func Binarize(gray *image.Gray, threshold uint8) {
	for i, v := range gray.Pix {
		if v > threshold {
			gray.Pix[i] = 255
		}
	}
}

// BuildMask turns an arbitrary image into a placement mask: flattened onto
// white, converted to grayscale and thresholded. Pure white (255) marks
// excluded area, anything darker is open for placement.
func BuildMask(img image.Image, threshold uint8) *image.Gray {
	gray := Grayscale(Flatten(img))
	Binarize(gray, threshold)
	return gray
}
