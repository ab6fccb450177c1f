package renderer

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

func testFont(t testing.TB) *truetype.Font {
	t.Helper()
	f, err := ParseFont(goregular.TTF)
	if err != nil {
		t.Fatalf("parsing test font: %v", err)
	}
	return f
}

var testFreq = map[string]int{
	"Baoyu":   120,
	"Daiyu":   90,
	"Baochai": 60,
	"Xifeng":  40,
	"Pinger":  15,
	"Xiren":   10,
}

func testOptions(t testing.TB) Options {
	return Options{
		Font:             testFont(t),
		BackgroundColor:  color.White,
		Width:            300,
		Height:           200,
		MaxWords:         200,
		MinFontSize:      8,
		MaxFontSize:      48,
		RandomState:      42,
		Margin:           2,
		PreferHorizontal: 0.9,
		RelativeScaling:  0.5,
		FontStep:         1,
	}
}

func generate(t *testing.T, opts Options, freq map[string]int) (*Cloud, *Layout) {
	t.Helper()
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	l, err := c.Generate(freq)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	return c, l
}

func TestNew_RequiresFont(t *testing.T) {
	opts := testOptions(t)
	opts.Font = nil
	if _, err := New(opts); !errors.Is(err, ErrNoFont) {
		t.Errorf("New() error = %v, want ErrNoFont", err)
	}
}

func TestLoadFont_Missing(t *testing.T) {
	if _, err := LoadFont("does-not-exist.ttf"); !errors.Is(err, ErrNoFont) {
		t.Errorf("LoadFont() error = %v, want ErrNoFont", err)
	}
}

func TestGenerate_NoTerms(t *testing.T) {
	c, err := New(testOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Generate(map[string]int{}); !errors.Is(err, ErrNoTerms) {
		t.Errorf("Generate() error = %v, want ErrNoTerms", err)
	}
}

func TestGenerate_NothingFits(t *testing.T) {
	opts := testOptions(t)
	opts.Width, opts.Height = 6, 6
	opts.MinFontSize = 40
	c, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	l, err := c.Generate(testFreq)
	if err != nil {
		t.Fatalf("Generate() error = %v, want an empty layout", err)
	}
	if len(l.Words) != 0 || l.Width != 6 || l.Height != 6 {
		t.Errorf("layout = %d words on %dx%d, want 0 words on 6x6", len(l.Words), l.Width, l.Height)
	}

	img := c.Render(l)
	for i := 0; i < len(img.Pix); i++ {
		if img.Pix[i] != 255 {
			t.Fatalf("blank cloud has non-white byte %d at %d", img.Pix[i], i)
		}
	}
}

func TestGenerate_AutoFontSizeNoSpace(t *testing.T) {
	opts := testOptions(t)
	opts.Width, opts.Height = 6, 6
	opts.MinFontSize = 40
	opts.MaxFontSize = 0
	c, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Generate(testFreq); !errors.Is(err, ErrNoSpace) {
		t.Errorf("Generate() error = %v, want ErrNoSpace", err)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	_, a := generate(t, testOptions(t), testFreq)
	_, b := generate(t, testOptions(t), testFreq)

	if len(a.Words) != len(b.Words) {
		t.Fatalf("word counts differ: %d vs %d", len(a.Words), len(b.Words))
	}
	for i := range a.Words {
		wa, wb := a.Words[i], b.Words[i]
		if wa.Text != wb.Text || wa.Position != wb.Position || wa.FontSize != wb.FontSize ||
			wa.Orientation != wb.Orientation || wa.Color != wb.Color {
			t.Errorf("word %d differs: %+v vs %+v", i, wa, wb)
		}
	}
}

func TestGenerate_SizesFollowWeights(t *testing.T) {
	opts := testOptions(t)
	_, l := generate(t, opts, testFreq)

	if len(l.Words) == 0 {
		t.Fatal("no words placed")
	}
	if l.Words[0].Text != "Baoyu" {
		t.Errorf("first word = %q, want the heaviest term", l.Words[0].Text)
	}
	if l.Words[0].Weight != 1 {
		t.Errorf("first weight = %v, want 1", l.Words[0].Weight)
	}
	for i, w := range l.Words {
		if w.FontSize < opts.MinFontSize || w.FontSize > opts.MaxFontSize {
			t.Errorf("%s font size %d outside [%d, %d]", w.Text, w.FontSize, opts.MinFontSize, opts.MaxFontSize)
		}
		if i > 0 && w.FontSize > l.Words[i-1].FontSize {
			t.Errorf("%s (%d) larger than heavier %s (%d)", w.Text, w.FontSize, l.Words[i-1].Text, l.Words[i-1].FontSize)
		}
	}
}

func TestGenerate_NoOverlapInsideCanvas(t *testing.T) {
	_, l := generate(t, testOptions(t), testFreq)

	canvas := image.Rect(0, 0, l.Width, l.Height)
	owner := make(map[image.Point]string)
	for _, w := range l.Words {
		if !w.Bounds().In(canvas) {
			t.Errorf("%s bounds %v outside canvas %v", w.Text, w.Bounds(), canvas)
		}
		gb := w.glyph.Bounds()
		for y := 0; y < gb.Dy(); y++ {
			for x := 0; x < gb.Dx(); x++ {
				if w.glyph.AlphaAt(x, y).A == 0 {
					continue
				}
				p := w.Position.Add(image.Point{X: x, Y: y})
				if other, ok := owner[p]; ok {
					t.Fatalf("%s overlaps %s at %v", w.Text, other, p)
				}
				owner[p] = w.Text
			}
		}
	}
}

func TestGenerate_MaxWords(t *testing.T) {
	opts := testOptions(t)
	opts.MaxWords = 2
	_, l := generate(t, opts, testFreq)

	if len(l.Words) > 2 {
		t.Errorf("placed %d words, want at most 2", len(l.Words))
	}
}

func TestGenerate_PreferHorizontalOne(t *testing.T) {
	opts := testOptions(t)
	opts.PreferHorizontal = 1
	_, l := generate(t, opts, testFreq)

	for _, w := range l.Words {
		if w.Orientation != Horizontal {
			t.Errorf("%s is %s, want horizontal", w.Text, w.Orientation)
		}
	}
}

func TestGenerate_AutoFontSize(t *testing.T) {
	opts := testOptions(t)
	opts.MaxFontSize = 0
	opts.Width, opts.Height = 160, 80
	_, l := generate(t, opts, testFreq)

	if l.Words[0].FontSize > opts.Height {
		t.Errorf("auto font size %d exceeds canvas height %d", l.Words[0].FontSize, opts.Height)
	}
}

// halfMask excludes the left half of a w×h canvas
func halfMask(w, h int) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				m.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return m
}

func TestGenerate_RespectsMask(t *testing.T) {
	opts := testOptions(t)
	opts.Width, opts.Height = 999, 999 // ignored in favour of the mask size
	opts.Mask = halfMask(300, 200)
	_, l := generate(t, opts, testFreq)

	if l.Width != 300 || l.Height != 200 {
		t.Fatalf("canvas = %dx%d, want mask size 300x200", l.Width, l.Height)
	}
	for _, w := range l.Words {
		gb := w.glyph.Bounds()
		for y := 0; y < gb.Dy(); y++ {
			for x := 0; x < gb.Dx(); x++ {
				if w.glyph.AlphaAt(x, y).A > 0 && w.Position.X+x < 150 {
					t.Fatalf("%s inked excluded pixel (%d,%d)", w.Text, w.Position.X+x, w.Position.Y+y)
				}
			}
		}
	}
}

func TestRender_BackgroundAndContour(t *testing.T) {
	opts := testOptions(t)
	opts.Mask = halfMask(300, 200)
	opts.ContourWidth = 2
	opts.ContourColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	c, l := generate(t, opts, testFreq)

	img := c.Render(l)
	if img.Bounds() != image.Rect(0, 0, 300, 200) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(10, 100); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("excluded pixel = %v, want white background", got)
	}
	// The vertical edge sits between x=149 and x=150
	if got := img.RGBAAt(150, 100); got != opts.ContourColor {
		t.Errorf("edge pixel = %v, want contour colour", got)
	}
	if got := img.RGBAAt(60, 100); got == opts.ContourColor {
		t.Error("contour drawn away from the mask edge")
	}
}

func TestRender_InkUsesWordColour(t *testing.T) {
	opts := testOptions(t)
	opts.PreferHorizontal = 1
	c, l := generate(t, opts, map[string]int{"Baoyu": 1})

	img := c.Render(l)
	w := l.Words[0]
	gb := w.glyph.Bounds()
	found := false
	for y := 0; y < gb.Dy() && !found; y++ {
		for x := 0; x < gb.Dx(); x++ {
			if w.glyph.AlphaAt(x, y).A == 255 {
				if got := img.RGBAAt(w.Position.X+x, w.Position.Y+y); got != w.Color {
					t.Errorf("solid glyph pixel = %v, want %v", got, w.Color)
				}
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("glyph has no fully covered pixel")
	}
}

func TestColorSource(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 30, 20)) // scaled up to the canvas
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 200, 40, 10, 255
	}
	opts := testOptions(t)
	opts.ColorSource = src
	_, l := generate(t, opts, testFreq)

	for _, w := range l.Words {
		if w.Color != (color.RGBA{R: 200, G: 40, B: 10, A: 255}) {
			t.Errorf("%s colour = %v, want source colour", w.Text, w.Color)
		}
	}
}

func TestRankTerms(t *testing.T) {
	terms := rankTerms(map[string]int{"b": 5, "a": 5, "c": 10, "z": 0}, 2)
	if len(terms) != 2 {
		t.Fatalf("len = %d, want 2", len(terms))
	}
	if terms[0].text != "c" || terms[0].weight != 1 {
		t.Errorf("terms[0] = %+v, want {c 1}", terms[0])
	}
	if terms[1].text != "a" || terms[1].weight != 0.5 {
		t.Errorf("terms[1] = %+v, want {a 0.5}", terms[1])
	}
}

func TestRotate90(t *testing.T) {
	src := image.NewAlpha(image.Rect(0, 0, 3, 2))
	src.SetAlpha(2, 0, color.Alpha{A: 255}) // top-right

	dst := rotate90(src)
	if dst.Bounds() != image.Rect(0, 0, 2, 3) {
		t.Fatalf("bounds = %v, want 2x3", dst.Bounds())
	}
	// Counter-clockwise: the top-right corner moves to the top-left
	if dst.AlphaAt(0, 0).A != 255 {
		t.Error("top-right pixel did not move to top-left")
	}
	count := 0
	for _, a := range dst.Pix {
		if a != 0 {
			count++
		}
	}
	if count != 1 {
		t.Errorf("%d inked pixels after rotation, want 1", count)
	}
}
