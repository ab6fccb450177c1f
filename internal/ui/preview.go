package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// PreviewConfig holds the preview size in terminal cells
type PreviewConfig struct {
	Width  int
	Height int
}

// DefaultPreviewConfig returns a sensible default preview size
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Width:  72,
		Height: 20,
	}
}

// FitPreview returns the largest preview that fits maxWidth x maxHeight cells
// and keeps the image's aspect ratio. Cells are treated as twice as tall as
// they are wide.
func FitPreview(bounds image.Rectangle, maxWidth, maxHeight int) PreviewConfig {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || maxWidth <= 0 || maxHeight <= 0 {
		return PreviewConfig{}
	}

	cfg := PreviewConfig{Width: maxWidth}
	cfg.Height = int(float64(maxWidth) * float64(h) / float64(w) / 2)
	if cfg.Height > maxHeight {
		cfg.Height = maxHeight
		cfg.Width = int(float64(maxHeight) * 2 * float64(w) / float64(h))
	}
	cfg.Width = max(1, min(cfg.Width, maxWidth))
	cfg.Height = max(1, cfg.Height)
	return cfg
}

// DownsampleImage reduces img to the preview size. Each terminal cell shows
// the average colour of the source region it covers.
func DownsampleImage(img image.Image, config PreviewConfig) [][]color.RGBA {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()
	if config.Width <= 0 || config.Height <= 0 || srcWidth == 0 || srcHeight == 0 {
		return nil
	}

	preview := make([][]color.RGBA, config.Height)
	for row := 0; row < config.Height; row++ {
		preview[row] = make([]color.RGBA, config.Width)
		y0 := row * srcHeight / config.Height
		y1 := max((row+1)*srcHeight/config.Height, y0+1)
		for col := 0; col < config.Width; col++ {
			x0 := col * srcWidth / config.Width
			x1 := max((col+1)*srcWidth/config.Width, x0+1)

			var sumR, sumG, sumB uint32
			pixelCount := 0

			for y := y0; y < y1 && y < srcHeight; y++ {
				for x := x0; x < x1 && x < srcWidth; x++ {
					r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
					// RGBA() returns 16-bit values, convert to 8-bit
					sumR += r >> 8
					sumG += g >> 8
					sumB += b >> 8
					pixelCount++
				}
			}

			if pixelCount > 0 {
				preview[row][col] = color.RGBA{
					R: uint8(sumR / uint32(pixelCount)),
					G: uint8(sumG / uint32(pixelCount)),
					B: uint8(sumB / uint32(pixelCount)),
					A: 255,
				}
			}
		}
	}

	return preview
}

// RenderPreview converts a preview grid to a framed string using ANSI 24-bit
// background colours
func RenderPreview(preview [][]color.RGBA, label string) string {
	if len(preview) == 0 {
		return ""
	}

	var result strings.Builder
	border := strings.Repeat("─", len(preview[0]))

	if label != "" {
		result.WriteString("  " + label + "\n")
	}
	result.WriteString("  ┌" + border + "┐\n")

	for _, row := range preview {
		result.WriteString("  │")
		for _, pixel := range row {
			// \x1b[48;2;R;G;Bm sets a 24-bit background colour
			fmt.Fprintf(&result, "\x1b[48;2;%d;%d;%dm \x1b[0m", pixel.R, pixel.G, pixel.B)
		}
		result.WriteString("│\n")
	}

	result.WriteString("  └" + border + "┘\n")

	return result.String()
}
