package renderer

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// ErrNoFont is returned when the font file is missing or unusable. Without
// a font covering the text's script, names would render as placeholder boxes.
var ErrNoFont = errors.New("font unavailable")

// LoadFont loads a TrueType font from a file
func LoadFont(fontPath string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoFont, err)
	}
	return ParseFont(fontBytes)
}

// ParseFont parses TrueType font data
func ParseFont(data []byte) (*truetype.Font, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing font: %w", ErrNoFont, err)
	}
	return f, nil
}

// Orientation of a placed word
type Orientation int

const (
	Horizontal Orientation = iota
	Rotated                // 90° counter-clockwise, reading bottom to top
)

func (o Orientation) String() string {
	if o == Rotated {
		return "rotated"
	}
	return "horizontal"
}

func (o Orientation) flip() Orientation {
	if o == Rotated {
		return Horizontal
	}
	return Rotated
}

// faceCache holds one face per pixel size for the duration of a layout
type faceCache struct {
	font  *truetype.Font
	faces map[int]font.Face
}

func newFaceCache(f *truetype.Font) *faceCache {
	return &faceCache{font: f, faces: make(map[int]font.Face)}
}

func (c *faceCache) face(size int) font.Face {
	if face, ok := c.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(c.font, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[size] = face
	return face
}

func (c *faceCache) Close() {
	for _, face := range c.faces {
		face.Close()
	}
	c.faces = nil
}

// rasterize draws text into a tight coverage mask anchored at the origin.
// It returns nil when the text has no ink.
func rasterize(face font.Face, text string, orient Orientation) *image.Alpha {
	d := &font.Drawer{Face: face, Src: image.Opaque}

	bounds, _ := d.BoundString(text)
	x0, y0 := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	w := bounds.Max.X.Ceil() - x0
	h := bounds.Max.Y.Ceil() - y0
	if w <= 0 || h <= 0 {
		return nil
	}

	glyph := image.NewAlpha(image.Rect(0, 0, w, h))
	d.Dst = glyph
	d.Dot = fixed.P(-x0, -y0)
	d.DrawString(text)

	if orient == Rotated {
		return rotate90(glyph)
	}
	return glyph
}

// rotate90 turns a mask 90° counter-clockwise: source (x, y) lands on
// (y, w-1-x).
func rotate90(src *image.Alpha) *image.Alpha {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewAlpha(image.Rect(0, 0, h, w))

	m := f64.Aff3{
		0, 1, 0,
		-1, 0, float64(w),
	}
	draw.NearestNeighbor.Transform(dst, m, src, src.Bounds(), draw.Src, nil)
	return dst
}
