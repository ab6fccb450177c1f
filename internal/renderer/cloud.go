// Package renderer lays out weighted terms on a canvas and rasterises them
// into a word cloud image.
package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/golang/freetype/truetype"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

var (
	// ErrNoTerms is returned when there is nothing to lay out
	ErrNoTerms = errors.New("no terms to render")
	// ErrNoSpace is returned when the two heaviest terms cannot be placed
	// while deriving a font size
	ErrNoSpace = errors.New("couldn't find space to draw; canvas too small or too much of the mask is excluded")
)

// Options configures layout and rasterisation
type Options struct {
	Font            *truetype.Font
	BackgroundColor color.Color

	// Mask constrains placement: pure white pixels are excluded. When set,
	// the canvas takes the mask's size and Width/Height are ignored.
	Mask   *image.Gray
	Width  int
	Height int

	MaxWords    int
	MinFontSize int
	MaxFontSize int // 0 derives a size from the two heaviest terms

	RandomState      uint64
	Margin           int
	PreferHorizontal float64
	RelativeScaling  float64
	FontStep         int

	ContourWidth int
	ContourColor color.Color

	// ColorSource recolours each word with the mean colour of the image
	// region it covers. It is scaled to the canvas when sizes differ.
	ColorSource image.Image
}

// PlacedWord is one term positioned on the canvas
type PlacedWord struct {
	Text        string
	Weight      float64 // relative to the heaviest term, in (0, 1]
	FontSize    int
	Position    image.Point // top-left of the glyph box
	Orientation Orientation
	Color       color.RGBA

	glyph *image.Alpha
}

// Bounds is the canvas rectangle covered by the word
func (w PlacedWord) Bounds() image.Rectangle {
	return w.glyph.Bounds().Add(w.Position)
}

// Layout is the result of placing terms
type Layout struct {
	Width  int
	Height int
	Words  []PlacedWord
}

// Cloud generates layouts and renders them. It is not safe for concurrent use.
type Cloud struct {
	opts          Options
	width, height int
	colorSource   *image.RGBA
}

// New validates opts and prepares a renderer
func New(opts Options) (*Cloud, error) {
	if opts.Font == nil {
		return nil, ErrNoFont
	}
	width, height := opts.Width, opts.Height
	if opts.Mask != nil {
		width, height = opts.Mask.Bounds().Dx(), opts.Mask.Bounds().Dy()
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	if opts.MinFontSize < 1 {
		opts.MinFontSize = 1
	}
	if opts.MaxFontSize > 0 && opts.MaxFontSize < opts.MinFontSize {
		return nil, fmt.Errorf("max font size %d below min font size %d", opts.MaxFontSize, opts.MinFontSize)
	}
	if opts.FontStep < 1 {
		opts.FontStep = 1
	}
	if opts.MaxWords <= 0 {
		opts.MaxWords = math.MaxInt
	}
	if opts.Margin < 0 {
		opts.Margin = 0
	}
	if opts.BackgroundColor == nil {
		opts.BackgroundColor = color.White
	}
	if opts.ContourColor == nil {
		opts.ContourColor = color.Black
	}

	c := &Cloud{opts: opts, width: width, height: height}
	if opts.ColorSource != nil {
		c.colorSource = fitToCanvas(opts.ColorSource, width, height)
	}
	return c, nil
}

type term struct {
	text   string
	weight float64
}

// rankTerms sorts by value descending (ties by text), keeps the first
// limit, and scales weights so the heaviest is 1.
func rankTerms(freq map[string]int, limit int) []term {
	terms := make([]term, 0, len(freq))
	for text, v := range freq {
		if v > 0 {
			terms = append(terms, term{text: text, weight: float64(v)})
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].weight != terms[j].weight {
			return terms[i].weight > terms[j].weight
		}
		return terms[i].text < terms[j].text
	})
	if len(terms) > limit {
		terms = terms[:limit]
	}
	if len(terms) > 0 {
		top := terms[0].weight
		for i := range terms {
			terms[i].weight /= top
		}
	}
	return terms
}

// Generate places as many terms as fit, heaviest first. A layout with no
// words is not an error; it renders as a blank canvas. The same options and
// input always produce the same layout.
func (c *Cloud) Generate(freq map[string]int) (*Layout, error) {
	terms := rankTerms(freq, c.opts.MaxWords)
	if len(terms) == 0 {
		return nil, ErrNoTerms
	}

	faces := newFaceCache(c.opts.Font)
	defer faces.Close()

	fontSize := c.opts.MaxFontSize
	if fontSize <= 0 {
		var err error
		if fontSize, err = c.autoFontSize(terms, faces); err != nil {
			return nil, err
		}
	}

	return c.place(terms, fontSize, faces), nil
}

// autoFontSize lays out the two heaviest terms at canvas height and uses
// the harmonic mean of the sizes they end up with.
func (c *Cloud) autoFontSize(terms []term, faces *faceCache) (int, error) {
	if len(terms) == 1 {
		return c.height, nil
	}

	trial := c.place(terms[:2], c.height, faces)
	switch len(trial.Words) {
	case 0:
		return 0, ErrNoSpace
	case 1:
		return trial.Words[0].FontSize, nil
	}
	s0, s1 := trial.Words[0].FontSize, trial.Words[1].FontSize
	return 2 * s0 * s1 / (s0 + s1), nil
}

func (c *Cloud) place(terms []term, maxFontSize int, faces *faceCache) *Layout {
	o := c.opts
	rng := rand.New(rand.NewPCG(o.RandomState, o.RandomState))
	occ := newOccupancy(c.width, c.height, o.Mask)
	layout := &Layout{Width: c.width, Height: c.height}

	fontSize := maxFontSize
	lastWeight := 1.0

	for _, t := range terms {
		rs := o.RelativeScaling
		if rs != 0 {
			fontSize = int(math.RoundToEven((rs*(t.weight/lastWeight) + (1 - rs)) * float64(fontSize)))
		}

		orient := Horizontal
		if rng.Float64() >= o.PreferHorizontal {
			orient = Rotated
		}

		var glyph *image.Alpha
		var pos image.Point
		triedOther := false
		for fontSize >= o.MinFontSize {
			glyph = rasterize(faces.face(fontSize), t.text, orient)
			if glyph == nil {
				break
			}
			b := glyph.Bounds()
			var ok bool
			if pos, ok = occ.sample(b.Dx()+o.Margin, b.Dy()+o.Margin, rng); ok {
				break
			}

			if !triedOther && o.PreferHorizontal < 1 {
				orient = orient.flip()
				triedOther = true
			} else {
				fontSize -= o.FontStep
				orient = Horizontal
			}
		}
		if fontSize < o.MinFontSize {
			break
		}
		if glyph == nil {
			continue
		}

		at := pos.Add(image.Point{X: o.Margin / 2, Y: o.Margin / 2})
		occ.mark(glyph, at)

		word := PlacedWord{
			Text:        t.text,
			Weight:      t.weight,
			FontSize:    fontSize,
			Position:    at,
			Orientation: orient,
			glyph:       glyph,
		}
		word.Color = c.wordColor(word, rng)
		layout.Words = append(layout.Words, word)
		lastWeight = t.weight
	}

	return layout
}

// wordColor is hsl(h, 80%, 50%) with a random hue, or the mean colour of
// the colour source under the word.
func (c *Cloud) wordColor(w PlacedWord, rng *rand.Rand) color.RGBA {
	if c.colorSource != nil {
		return meanColor(c.colorSource, w.Bounds())
	}
	r, g, b := colorful.Hsl(float64(rng.IntN(256)), 0.8, 0.5).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func meanColor(img *image.RGBA, r image.Rectangle) color.RGBA {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return color.RGBA{A: 255}
	}
	var sumR, sumG, sumB, n uint64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := img.RGBAAt(x, y)
			sumR += uint64(p.R)
			sumG += uint64(p.G)
			sumB += uint64(p.B)
			n++
		}
	}
	return color.RGBA{R: uint8(sumR / n), G: uint8(sumG / n), B: uint8(sumB / n), A: 255}
}

// fitToCanvas converts img to RGBA at the canvas size
func fitToCanvas(img image.Image, width, height int) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if bounds.Dx() != width || bounds.Dy() != height {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	} else {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	}
	return dst
}
