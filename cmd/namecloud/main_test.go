package main

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/linuxmatters/namecloud/internal/cli"
	"github.com/linuxmatters/namecloud/internal/config"
	"github.com/linuxmatters/namecloud/internal/names"
	"github.com/linuxmatters/namecloud/internal/pipeline"
	"github.com/linuxmatters/namecloud/internal/raster"
	"github.com/linuxmatters/namecloud/internal/renderer"
)

func parse(t *testing.T, paths []string, args ...string) (*namecloudCLI, *kong.Context) {
	t.Helper()
	var c namecloudCLI
	parser, err := newParser(&c, paths, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	if err != nil {
		t.Fatalf("newParser() error: %v", err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", args, err)
	}
	return &c, ctx
}

func TestParse_Defaults(t *testing.T) {
	c, ctx := parse(t, nil, "overlay")
	if ctx.Command() != "overlay" {
		t.Fatalf("command = %q, want overlay", ctx.Command())
	}

	o := c.Overlay
	if o.Text != config.TextFile || o.Background != config.OverlayBackgroundFile || o.Output != config.OverlayOutputFile {
		t.Errorf("paths = %q %q %q", o.Text, o.Background, o.Output)
	}
	if o.Scale != config.CloudScale || o.WeightMin != config.WeightMin || o.WeightMax != config.WeightMax {
		t.Errorf("scale %v weights %d..%d", o.Scale, o.WeightMin, o.WeightMax)
	}
	if o.MinFontSize != config.OverlayMinFontSize || o.MaxFontSize != config.OverlayMaxFontSize || o.NearWhite != config.NearWhite {
		t.Errorf("fonts %d..%d near white %d", o.MinFontSize, o.MaxFontSize, o.NearWhite)
	}
	if o.Seed != config.RandomState || o.Tokenizer != "gse" {
		t.Errorf("seed %d tokenizer %q", o.Seed, o.Tokenizer)
	}
}

func TestParse_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "namecloud.json")
	data := `{"mask": "heart.png", "contour_color": "crimson", "tokenizer": "fields", "plain": true}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(t.TempDir(), "absent.json")

	c, _ := parse(t, []string{path, missing}, "shape")
	if c.Shape.Mask != "heart.png" || c.Shape.ContourColor != "crimson" || c.Shape.Tokenizer != "fields" {
		t.Errorf("config not applied: mask %q contour %q tokenizer %q", c.Shape.Mask, c.Shape.ContourColor, c.Shape.Tokenizer)
	}
	if !c.Plain {
		t.Error("global flag not read from config")
	}
	if c.Shape.Output != config.ShapeOutputFile {
		t.Errorf("output = %q, want default %q", c.Shape.Output, config.ShapeOutputFile)
	}

	// The command line wins over the file
	c, _ = parse(t, []string{path}, "shape", "--mask=star.png")
	if c.Shape.Mask != "star.png" {
		t.Errorf("mask = %q, want star.png from the command line", c.Shape.Mask)
	}
}

func TestPrintResult(t *testing.T) {
	var out bytes.Buffer
	prev := cli.Out
	cli.Out = &out
	t.Cleanup(func() { cli.Out = prev })

	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	output := filepath.Join(dir, "cloud.png")
	if err := raster.SavePNG(img, output); err != nil {
		t.Fatal(err)
	}

	res := &pipeline.Result{
		OutputPath:  output,
		Image:       img,
		Frequencies: names.Frequencies{"贾宝玉": 9, "林黛玉": 4},
		Layout:      &renderer.Layout{Width: 40, Height: 30},
		Warnings:    []string{"the cloud is blank"},
	}
	printResult(res, 1500*time.Millisecond)

	got := out.String()
	for _, want := range []string{"Most mentioned", "贾宝玉", "林黛玉", "Warning:", "the cloud is blank", output, "40×30", "0 of 2 terms", "1.5s"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "贾宝玉") > strings.Index(got, "林黛玉") {
		t.Error("ranking not ordered by count")
	}
}
