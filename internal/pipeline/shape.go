package pipeline

import (
	"fmt"
	"image"
	"image/color"

	"github.com/linuxmatters/namecloud/internal/names"
	"github.com/linuxmatters/namecloud/internal/raster"
	"github.com/linuxmatters/namecloud/internal/renderer"
)

// ShapeConfig configures the mask-shaped pipeline
type ShapeConfig struct {
	Common

	MaskPath  string
	Threshold uint8

	Width, Height int // canvas size, only used without a mask
	MaxWords      int
	MinFontSize   int
	MaxFontSize   int
	Margin        int

	ContourWidth int
	ContourColor color.Color

	Collocations bool
	ImageColors  bool
}

// ShapeStages lists the stages RunShape reports, in order
var ShapeStages = []Stage{
	StageLoadText, StageTokenize, StageFilter, StageCount,
	StageLoadImage, StageRender, StageWrite,
}

// RunShape renders the filtered names inside the dark region of a mask
// image and writes the cloud as a PNG.
func RunShape(cfg ShapeConfig, obs Observer) (*Result, error) {
	t := newTracker(obs, ShapeStages...)
	res := &Result{Timings: t.timings}

	filtered, err := loadAndFilter(&cfg.Common, t, res)
	if err != nil {
		return nil, err
	}

	err = t.run(StageCount, func() (string, error) {
		if cfg.Collocations {
			res.Frequencies = names.Collocate(filtered, names.CollocationThreshold)
		} else {
			res.Frequencies = names.Count(filtered)
		}
		return fmt.Sprintf("%d distinct terms, %d occurrences", len(res.Frequencies), res.Frequencies.Total()), nil
	})
	if err != nil {
		return nil, err
	}

	var mask *image.Gray
	var source image.Image
	err = t.run(StageLoadImage, func() (string, error) {
		if cfg.MaskPath == "" {
			return "no mask", nil
		}
		img, format, err := raster.LoadImage(cfg.MaskPath)
		if err != nil {
			return "", err
		}
		source = img
		mask = raster.BuildMask(img, cfg.Threshold)
		b := mask.Bounds()
		return fmt.Sprintf("%s %d×%d, threshold %d", format, b.Dx(), b.Dy(), cfg.Threshold), nil
	})
	if err != nil {
		return nil, err
	}

	err = t.run(StageRender, func() (string, error) {
		f, err := cfg.font()
		if err != nil {
			return "", err
		}
		opts := renderer.Options{
			Font:             f,
			BackgroundColor:  cfg.BackgroundColor,
			Mask:             mask,
			Width:            cfg.Width,
			Height:           cfg.Height,
			MaxWords:         cfg.MaxWords,
			MinFontSize:      cfg.MinFontSize,
			MaxFontSize:      cfg.MaxFontSize,
			RandomState:      cfg.RandomState,
			Margin:           cfg.Margin,
			PreferHorizontal: cfg.PreferHorizontal,
			RelativeScaling:  cfg.RelativeScaling,
			FontStep:         cfg.FontStep,
			ContourWidth:     cfg.ContourWidth,
			ContourColor:     cfg.ContourColor,
		}
		if cfg.ImageColors && source != nil {
			opts.ColorSource = raster.Flatten(source)
		}

		cloud, err := renderer.New(opts)
		if err != nil {
			return "", err
		}
		res.Image, res.Layout, err = cloud.Draw(res.Frequencies)
		if err != nil {
			return "", err
		}
		res.warnIfBlank(cfg.MinFontSize)
		return fmt.Sprintf("%d of %d terms placed", len(res.Layout.Words), len(res.Frequencies)), nil
	})
	if err != nil {
		return nil, err
	}

	if err := writeOutput(&cfg.Common, t, res); err != nil {
		return nil, err
	}
	return res, nil
}
