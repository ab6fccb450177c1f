package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// CloudSize is the cloud canvas size as a fraction of the background,
// truncated to whole pixels.
func CloudSize(bg image.Rectangle, scale float64) image.Point {
	return image.Point{
		X: int(float64(bg.Dx()) * scale),
		Y: int(float64(bg.Dy()) * scale),
	}
}

// CenterOffset positions a cloud of the given size in the middle of bg
func CenterOffset(bg image.Rectangle, cloud image.Point) image.Point {
	return image.Point{
		X: floorDiv(bg.Dx()-cloud.X, 2),
		Y: floorDiv(bg.Dy()-cloud.Y, 2),
	}
}

// IsInk reports whether a pixel is part of the drawn cloud: any channel
// below the near-white threshold.
func IsInk(c color.Color, nearWhite uint8) bool {
	return isInk(color.NRGBAModel.Convert(c).(color.NRGBA), nearWhite)
}

func isInk(c color.NRGBA, nearWhite uint8) bool {
	return !(c.R >= nearWhite && c.G >= nearWhite && c.B >= nearWhite)
}

// Composite returns a copy of bg with every ink pixel of cloud drawn at
// offset. Near-white cloud pixels are transparent. The result always has
// the background's bounds; cloud pixels falling outside are skipped.
func Composite(bg *image.RGBA, cloud image.Image, offset image.Point, nearWhite uint8) *image.RGBA {
	result := image.NewRGBA(bg.Bounds())
	draw.Draw(result, result.Bounds(), bg, bg.Bounds().Min, draw.Src)

	cb := cloud.Bounds()
	bounds := result.Bounds()
	for y := 0; y < cb.Dy(); y++ {
		for x := 0; x < cb.Dx(); x++ {
			c := color.NRGBAModel.Convert(cloud.At(cb.Min.X+x, cb.Min.Y+y)).(color.NRGBA)
			if !isInk(c, nearWhite) {
				continue
			}

			p := image.Point{X: bounds.Min.X + offset.X + x, Y: bounds.Min.Y + offset.Y + y}
			if !p.In(bounds) {
				continue
			}
			result.SetRGBA(p.X, p.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return result
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
