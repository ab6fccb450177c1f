package pipeline

import (
	"fmt"
	"image"

	"github.com/linuxmatters/namecloud/internal/names"
	"github.com/linuxmatters/namecloud/internal/raster"
	"github.com/linuxmatters/namecloud/internal/renderer"
)

// OverlayConfig configures the background composite pipeline
type OverlayConfig struct {
	Common

	BackgroundPath string
	Scale          float64 // cloud size as a fraction of the background

	WeightMin int
	WeightMax int

	MaxWords    int
	MinFontSize int
	MaxFontSize int
	Margin      int

	NearWhite uint8
}

// OverlayStages lists the stages RunOverlay reports, in order
var OverlayStages = []Stage{
	StageLoadText, StageTokenize, StageFilter, StageCount, StageNormalize,
	StageLoadImage, StageRender, StageComposite, StageWrite,
}

// RunOverlay renders names sized by normalised mention counts and
// composites the cloud onto the centre of a background image.
func RunOverlay(cfg OverlayConfig, obs Observer) (*Result, error) {
	t := newTracker(obs, OverlayStages...)
	res := &Result{Timings: t.timings}

	filtered, err := loadAndFilter(&cfg.Common, t, res)
	if err != nil {
		return nil, err
	}

	err = t.run(StageCount, func() (string, error) {
		res.Frequencies = names.Count(filtered)
		lo, hi, _ := res.Frequencies.MinMax()
		return fmt.Sprintf("%d characters, %d–%d mentions", len(res.Frequencies), lo, hi), nil
	})
	if err != nil {
		return nil, err
	}

	err = t.run(StageNormalize, func() (string, error) {
		w, err := names.Normalize(res.Frequencies, cfg.WeightMin, cfg.WeightMax)
		if err != nil {
			return "", err
		}
		res.Weights = w
		return fmt.Sprintf("range %d–%d", cfg.WeightMin, cfg.WeightMax), nil
	})
	if err != nil {
		return nil, err
	}

	var bg *image.RGBA
	err = t.run(StageLoadImage, func() (string, error) {
		img, format, err := raster.LoadImage(cfg.BackgroundPath)
		if err != nil {
			return "", err
		}
		bg = raster.ToRGB(img)
		res.CloudSize = raster.CloudSize(bg.Bounds(), cfg.Scale)
		return fmt.Sprintf("%s %d×%d, cloud %d×%d", format, bg.Bounds().Dx(), bg.Bounds().Dy(),
			res.CloudSize.X, res.CloudSize.Y), nil
	})
	if err != nil {
		return nil, err
	}

	var cloudImg *image.RGBA
	err = t.run(StageRender, func() (string, error) {
		f, err := cfg.font()
		if err != nil {
			return "", err
		}
		cloud, err := renderer.New(renderer.Options{
			Font:             f,
			BackgroundColor:  cfg.BackgroundColor,
			Width:            res.CloudSize.X,
			Height:           res.CloudSize.Y,
			MaxWords:         cfg.MaxWords,
			MinFontSize:      cfg.MinFontSize,
			MaxFontSize:      cfg.MaxFontSize,
			RandomState:      cfg.RandomState,
			Margin:           cfg.Margin,
			PreferHorizontal: cfg.PreferHorizontal,
			RelativeScaling:  cfg.RelativeScaling,
			FontStep:         cfg.FontStep,
		})
		if err != nil {
			return "", err
		}
		cloudImg, res.Layout, err = cloud.Draw(res.Weights.Frequencies())
		if err != nil {
			return "", err
		}
		res.warnIfBlank(cfg.MinFontSize)
		return fmt.Sprintf("%d of %d names placed", len(res.Layout.Words), len(res.Weights)), nil
	})
	if err != nil {
		return nil, err
	}

	err = t.run(StageComposite, func() (string, error) {
		res.Offset = raster.CenterOffset(bg.Bounds(), res.CloudSize)
		res.Image = raster.Composite(bg, cloudImg, res.Offset, cfg.NearWhite)
		return fmt.Sprintf("cloud at (%d, %d)", res.Offset.X, res.Offset.Y), nil
	})
	if err != nil {
		return nil, err
	}

	if err := writeOutput(&cfg.Common, t, res); err != nil {
		return nil, err
	}
	return res, nil
}
