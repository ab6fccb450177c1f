package renderer

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Render rasterises a layout: background fill, each word in its colour,
// then the mask contour when one is configured.
func (c *Cloud) Render(l *Layout) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c.opts.BackgroundColor), image.Point{}, draw.Src)

	for _, w := range l.Words {
		draw.DrawMask(img, w.Bounds(), image.NewUniform(w.Color), image.Point{}, w.glyph, image.Point{}, draw.Over)
	}

	if c.opts.Mask != nil && c.opts.ContourWidth > 0 {
		drawContour(img, c.opts.Mask, c.opts.ContourWidth, c.opts.ContourColor)
	}
	return img
}

// Draw generates a layout for freq and renders it
func (c *Cloud) Draw(freq map[string]int) (*image.RGBA, *Layout, error) {
	l, err := c.Generate(freq)
	if err != nil {
		return nil, nil, err
	}
	return c.Render(l), l, nil
}

// drawContour outlines the boundary between excluded (white) and open mask
// pixels. The outermost image row and column never count as boundary.
// Lines are width/2 pixels thick on each side of the edge, at least one.
func drawContour(img *image.RGBA, mask *image.Gray, width int, col color.Color) {
	mb := mask.Bounds()
	w, h := min(mb.Dx(), img.Bounds().Dx()), min(mb.Dy(), img.Bounds().Dy())
	open := func(x, y int) bool {
		return mask.GrayAt(mb.Min.X+x, mb.Min.Y+y).Y != 255
	}

	edge := make([]bool, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			o := open(x, y)
			if open(x-1, y) != o || open(x+1, y) != o || open(x, y-1) != o || open(x, y+1) != o {
				edge[y*w+x] = true
			}
		}
	}

	radius := width / 2
	rgba := color.RGBAModel.Convert(col).(color.RGBA)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !edge[y*w+x] {
				continue
			}
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					px, py := x+dx, y+dy
					if px < 0 || py < 0 || px >= w || py >= h {
						continue
					}
					img.SetRGBA(px, py, rgba)
				}
			}
		}
	}
}
