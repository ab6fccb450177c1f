// Package pipeline runs the two word cloud pipelines stage by stage,
// reporting each stage to an observer.
package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/linuxmatters/namecloud/internal/names"
	"github.com/linuxmatters/namecloud/internal/raster"
	"github.com/linuxmatters/namecloud/internal/renderer"
	"github.com/linuxmatters/namecloud/internal/text"
)

// Stage identifies a pipeline step
type Stage int

const (
	StageLoadText Stage = iota
	StageTokenize
	StageFilter
	StageCount
	StageNormalize
	StageLoadImage
	StageRender
	StageComposite
	StageWrite
)

var stageNames = [...]string{
	StageLoadText:  "Reading text",
	StageTokenize:  "Tokenising",
	StageFilter:    "Filtering names",
	StageCount:     "Counting mentions",
	StageNormalize: "Normalising weights",
	StageLoadImage: "Loading image",
	StageRender:    "Rendering cloud",
	StageComposite: "Compositing",
	StageWrite:     "Writing output",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Event reports the start (Done false) or end (Done true) of a stage
type Event struct {
	Stage   Stage
	Index   int // 1-based position among the run's stages
	Total   int
	Done    bool
	Detail  string
	Elapsed time.Duration
}

// Observer receives stage events. It is called from the goroutine running
// the pipeline.
type Observer func(Event)

// Common holds the inputs shared by both pipelines
type Common struct {
	TextPath   string
	FontPath   string
	OutputPath string

	Allow *names.AllowList

	// Tokenizer, when nil, is built from TokenizerName with the allow-list
	// registered as dictionary words.
	Tokenizer     text.Tokenizer
	TokenizerName string

	// Font, when nil, is loaded from FontPath.
	Font *truetype.Font

	BackgroundColor  color.Color
	RandomState      uint64
	PreferHorizontal float64
	RelativeScaling  float64
	FontStep         int
}

// Result summarises a finished run
type Result struct {
	OutputPath  string
	Encoding    text.Encoding
	Tokens      int
	Mentions    int
	Frequencies names.Frequencies
	Weights     names.Weights // overlay only
	Layout      *renderer.Layout
	Image       *image.RGBA

	CloudSize image.Point // overlay only
	Offset    image.Point // overlay only

	Timings map[Stage]time.Duration

	// Warnings are problems that did not stop the run
	Warnings []string
}

// warnIfBlank records a warning when the layout placed no words
func (r *Result) warnIfBlank(minFontSize int) {
	if r.Layout != nil && len(r.Layout.Words) == 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf(
			"no term fits the %d×%d canvas at font size %d or above; the cloud is blank",
			r.Layout.Width, r.Layout.Height, minFontSize))
	}
}

// tracker times stages and forwards events
type tracker struct {
	obs     Observer
	stages  []Stage
	timings map[Stage]time.Duration
}

func newTracker(obs Observer, stages ...Stage) *tracker {
	return &tracker{obs: obs, stages: stages, timings: make(map[Stage]time.Duration)}
}

// run executes fn as stage s. fn returns a short detail line for the UI.
func (t *tracker) run(s Stage, fn func() (string, error)) error {
	index := 0
	for i, st := range t.stages {
		if st == s {
			index = i + 1
		}
	}

	t.emit(Event{Stage: s, Index: index, Total: len(t.stages)})
	start := time.Now()
	detail, err := fn()
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("%s: %w", strings.ToLower(s.String()), err)
	}
	t.timings[s] = elapsed
	t.emit(Event{Stage: s, Index: index, Total: len(t.stages), Done: true, Detail: detail, Elapsed: elapsed})
	return nil
}

func (t *tracker) emit(e Event) {
	if t.obs != nil {
		t.obs(e)
	}
}

// loadAndFilter runs the text stages shared by both pipelines
func loadAndFilter(c *Common, t *tracker, res *Result) ([]string, error) {
	var raw string
	err := t.run(StageLoadText, func() (string, error) {
		var err error
		raw, res.Encoding, err = text.Load(c.TextPath)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d characters (%s)", len([]rune(raw)), res.Encoding), nil
	})
	if err != nil {
		return nil, err
	}

	var tokens []string
	err = t.run(StageTokenize, func() (string, error) {
		tok := c.Tokenizer
		if tok == nil {
			var err error
			if tok, err = text.NewTokenizer(c.TokenizerName, c.Allow.Names()); err != nil {
				return "", err
			}
		}
		tokens = tok.Cut(raw)
		res.Tokens = len(tokens)
		return fmt.Sprintf("%d tokens", len(tokens)), nil
	})
	if err != nil {
		return nil, err
	}

	var filtered []string
	err = t.run(StageFilter, func() (string, error) {
		filtered = names.Filter(tokens, c.Allow)
		res.Mentions = len(filtered)
		if len(filtered) == 0 {
			return "", names.ErrNoNames
		}
		return fmt.Sprintf("%d mentions of %d names", len(filtered), c.Allow.Len()), nil
	})
	return filtered, err
}

func (c *Common) font() (*truetype.Font, error) {
	if c.Font != nil {
		return c.Font, nil
	}
	return renderer.LoadFont(c.FontPath)
}

func writeOutput(c *Common, t *tracker, res *Result) error {
	return t.run(StageWrite, func() (string, error) {
		if err := raster.SavePNG(res.Image, c.OutputPath); err != nil {
			return "", err
		}
		res.OutputPath = c.OutputPath
		b := res.Image.Bounds()
		return fmt.Sprintf("%s (%d×%d)", c.OutputPath, b.Dx(), b.Dy()), nil
	})
}
