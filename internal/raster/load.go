// Package raster prepares mask and background images, composites a
// rendered cloud onto a background and writes the result.
package raster

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes a JPEG, PNG, GIF, BMP, TIFF or WebP file
func LoadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, format, nil
}

// ToRGB copies img into an opaque RGBA raster anchored at the origin.
// Colour channels are kept as stored and any alpha channel is discarded,
// so the pixels are untouched.
func ToRGB(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			dst.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return dst
}

// SavePNG writes img to path as a PNG
func SavePNG(img image.Image, path string) error {
	outFile, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(outFile, img); err != nil {
		outFile.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return outFile.Close()
}
