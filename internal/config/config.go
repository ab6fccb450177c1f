package config

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Input files shared by both pipelines
const (
	TextFile = "红楼梦.txt"
	FontFile = "simhei.ttf" // Must carry CJK glyphs or names render as placeholder boxes
)

// Shape pipeline: cloud constrained to the dark region of a mask image
const (
	ShapeMaskFile   = "new_mask.jpg"
	ShapeOutputFile = "result_cloud.png"

	ShapeWidth        = 1000
	ShapeHeight       = 1000
	ShapeMaxWords     = 2000
	ShapeMinFontSize  = 4
	ShapeMaxFontSize  = 150 // 0 lets the renderer pick a size from the two heaviest terms
	ShapeMargin       = 2
	ShapeContourWidth = 2
	ShapeContourColor = "steelblue"

	// Grayscale values above this are forced to pure white (excluded from placement)
	MaskThreshold = 200
)

// Overlay pipeline: cloud rendered from normalised weights and composited
// onto the centre of a background image
const (
	OverlayBackgroundFile = "background.jpg"
	OverlayOutputFile     = "红楼梦词云图.png"

	CloudScale = 0.6 // Cloud width/height as a fraction of the background

	WeightMin = 1000
	WeightMax = 10000

	OverlayMaxWords    = 200
	OverlayMinFontSize = 150
	OverlayMaxFontSize = 450
	OverlayMargin      = 1

	// A cloud pixel with every channel at or above this value is treated as transparent
	NearWhite = 240
)

// Renderer settings shared by both pipelines
const (
	BackgroundColor  = "white"
	RandomState      = 42
	PreferHorizontal = 0.9
	RelativeScaling  = 0.5
	FontStep         = 1
)

// DefaultNames is the allow-list of character names kept from the token stream.
var DefaultNames = []string{
	"贾宝玉", "林黛玉", "薛宝钗", "王熙凤", "史湘云",
	"贾母", "贾政", "王夫人", "平儿", "袭人",
	"晴雯", "香菱", "贾探春", "贾迎春", "贾惜春",
	"秦可卿", "贾琏", "紫鹃", "妙玉", "刘姥姥",
}

// ParseHexColor parses a six digit hex colour with an optional leading '#'.
func ParseHexColor(s string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: want 6 hex digits", s)
	}
	for _, c := range hex {
		if !isHexDigit(c) {
			return 0, 0, 0, fmt.Errorf("invalid hex colour %q: bad digit %q", s, c)
		}
	}

	c, err := colorful.Hex("#" + strings.ToLower(hex))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}

// ParseColor accepts an SVG colour name ("white", "steelblue") or a hex colour.
func ParseColor(s string) (color.RGBA, error) {
	if c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	r, g, b, err := ParseHexColor(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
