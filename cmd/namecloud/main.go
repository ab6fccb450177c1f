package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/namecloud/internal/cli"
	"github.com/linuxmatters/namecloud/internal/config"
	"github.com/linuxmatters/namecloud/internal/names"
	"github.com/linuxmatters/namecloud/internal/pipeline"
	"github.com/linuxmatters/namecloud/internal/ui"
	"github.com/mattn/go-isatty"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var errInterrupted = errors.New("interrupted")

type versionFlag bool

// BeforeReset prints the version before kong validates required input
func (v versionFlag) BeforeReset(app *kong.Kong, vars kong.Vars) error {
	cli.PrintVersion(vars["version"])
	app.Exit(0)
	return nil
}

// Globals are flags accepted by every command
type Globals struct {
	Plain   bool        `help:"Print plain progress lines instead of the interactive UI"`
	Version versionFlag `help:"Show version information"`
}

// CommonFlags are the inputs shared by both commands
type CommonFlags struct {
	Text             string  `help:"Novel text, UTF-8 or GBK" default:"${text}"`
	Font             string  `help:"TrueType font with CJK glyphs" default:"${font}"`
	Names            string  `help:"Names file, one per line (built-in list when empty)" placeholder:"FILE"`
	Tokenizer        string  `help:"Tokeniser: gse or fields" enum:"gse,fields" default:"gse"`
	Seed             uint64  `help:"Random seed for layout and colours" default:"${seed}"`
	BackgroundColor  string  `help:"Cloud background colour, name or hex" default:"${backgroundColor}"`
	PreferHorizontal float64 `help:"Share of words laid out horizontally" default:"${preferHorizontal}"`
	NoShow           bool    `help:"Do not display the finished image"`
}

// common resolves the shared flags into pipeline inputs
func (f *CommonFlags) common(output string) (pipeline.Common, error) {
	allow := names.NewAllowList(config.DefaultNames)
	if f.Names != "" {
		var err error
		if allow, err = names.LoadAllowList(f.Names); err != nil {
			return pipeline.Common{}, err
		}
	}

	bg, err := config.ParseColor(f.BackgroundColor)
	if err != nil {
		return pipeline.Common{}, fmt.Errorf("background colour: %w", err)
	}

	return pipeline.Common{
		TextPath:         f.Text,
		FontPath:         f.Font,
		OutputPath:       output,
		Allow:            allow,
		TokenizerName:    f.Tokenizer,
		BackgroundColor:  bg,
		RandomState:      f.Seed,
		PreferHorizontal: f.PreferHorizontal,
		RelativeScaling:  config.RelativeScaling,
		FontStep:         config.FontStep,
	}, nil
}

// ShapeCmd renders the cloud inside a mask
type ShapeCmd struct {
	CommonFlags

	Mask         string `help:"Mask image; words fill its dark region" default:"${mask}"`
	Output       string `short:"o" help:"Output PNG" default:"${shapeOutput}"`
	Threshold    uint8  `help:"Grey level above which mask pixels count as background" default:"${threshold}"`
	MaxWords     int    `help:"Maximum number of words" default:"${shapeMaxWords}"`
	MinFontSize  int    `help:"Smallest font size" default:"${shapeMinFontSize}"`
	MaxFontSize  int    `help:"Largest font size (0 picks one automatically)" default:"${shapeMaxFontSize}"`
	Margin       int    `help:"Spacing around each word" default:"${shapeMargin}"`
	ContourWidth int    `help:"Mask outline width (0 for none)" default:"${contourWidth}"`
	ContourColor string `help:"Mask outline colour, name or hex" default:"${contourColor}"`
	Collocations bool   `help:"Join names that appear together into one term" default:"true" negatable:""`
	ImageColors  bool   `help:"Colour words from the mask image"`
}

func (c *ShapeCmd) Run(g *Globals) error {
	common, err := c.common(c.Output)
	if err != nil {
		return err
	}
	contour, err := config.ParseColor(c.ContourColor)
	if err != nil {
		return fmt.Errorf("contour colour: %w", err)
	}

	cfg := pipeline.ShapeConfig{
		Common:       common,
		MaskPath:     c.Mask,
		Threshold:    c.Threshold,
		Width:        config.ShapeWidth,
		Height:       config.ShapeHeight,
		MaxWords:     c.MaxWords,
		MinFontSize:  c.MinFontSize,
		MaxFontSize:  c.MaxFontSize,
		Margin:       c.Margin,
		ContourWidth: c.ContourWidth,
		ContourColor: contour,
		Collocations: c.Collocations,
		ImageColors:  c.ImageColors,
	}

	return execute(g, "Shape: cloud inside "+c.Mask, pipeline.ShapeStages, c.NoShow,
		func(obs pipeline.Observer) (*pipeline.Result, error) {
			return pipeline.RunShape(cfg, obs)
		})
}

// OverlayCmd renders a weighted cloud onto a background image
type OverlayCmd struct {
	CommonFlags

	Background  string  `help:"Background image" default:"${background}"`
	Output      string  `short:"o" help:"Output PNG" default:"${overlayOutput}"`
	Scale       float64 `help:"Cloud size as a fraction of the background" default:"${scale}"`
	WeightMin   int     `help:"Weight given to the least mentioned name" default:"${weightMin}"`
	WeightMax   int     `help:"Weight given to the most mentioned name" default:"${weightMax}"`
	MaxWords    int     `help:"Maximum number of words" default:"${overlayMaxWords}"`
	MinFontSize int     `help:"Smallest font size" default:"${overlayMinFontSize}"`
	MaxFontSize int     `help:"Largest font size" default:"${overlayMaxFontSize}"`
	Margin      int     `help:"Spacing around each word" default:"${overlayMargin}"`
	NearWhite   uint8   `help:"Cloud pixels with every channel at or above this are transparent" default:"${nearWhite}"`
}

func (c *OverlayCmd) Run(g *Globals) error {
	common, err := c.common(c.Output)
	if err != nil {
		return err
	}
	if c.Scale <= 0 || c.Scale > 1 {
		return fmt.Errorf("scale must be in (0, 1], got %g", c.Scale)
	}

	cfg := pipeline.OverlayConfig{
		Common:         common,
		BackgroundPath: c.Background,
		Scale:          c.Scale,
		WeightMin:      c.WeightMin,
		WeightMax:      c.WeightMax,
		MaxWords:       c.MaxWords,
		MinFontSize:    c.MinFontSize,
		MaxFontSize:    c.MaxFontSize,
		Margin:         c.Margin,
		NearWhite:      c.NearWhite,
	}

	return execute(g, "Overlay: cloud on "+c.Background, pipeline.OverlayStages, c.NoShow,
		func(obs pipeline.Observer) (*pipeline.Result, error) {
			return pipeline.RunOverlay(cfg, obs)
		})
}

// namecloudCLI is the kong command tree
type namecloudCLI struct {
	Globals

	Shape   ShapeCmd   `cmd:"" help:"Fill the dark region of a mask image with names."`
	Overlay OverlayCmd `cmd:"" help:"Composite a weighted name cloud onto a background image."`
}

// configPaths are JSON files whose keys (flag names in snake_case) supply
// defaults. Flags on the command line win.
var configPaths = []string{"./namecloud.json", "~/.config/namecloud/config.json"}

func newParser(c *namecloudCLI, paths []string, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("namecloud"),
		kong.Description(cli.AppTagline),
		kong.Vars{
			"version":            version,
			"text":               config.TextFile,
			"font":               config.FontFile,
			"seed":               fmt.Sprint(config.RandomState),
			"backgroundColor":    config.BackgroundColor,
			"preferHorizontal":   fmt.Sprint(config.PreferHorizontal),
			"mask":               config.ShapeMaskFile,
			"shapeOutput":        config.ShapeOutputFile,
			"threshold":          fmt.Sprint(config.MaskThreshold),
			"shapeMaxWords":      fmt.Sprint(config.ShapeMaxWords),
			"shapeMinFontSize":   fmt.Sprint(config.ShapeMinFontSize),
			"shapeMaxFontSize":   fmt.Sprint(config.ShapeMaxFontSize),
			"shapeMargin":        fmt.Sprint(config.ShapeMargin),
			"contourWidth":       fmt.Sprint(config.ShapeContourWidth),
			"contourColor":       config.ShapeContourColor,
			"background":         config.OverlayBackgroundFile,
			"overlayOutput":      config.OverlayOutputFile,
			"scale":              fmt.Sprint(config.CloudScale),
			"weightMin":          fmt.Sprint(config.WeightMin),
			"weightMax":          fmt.Sprint(config.WeightMax),
			"overlayMaxWords":    fmt.Sprint(config.OverlayMaxWords),
			"overlayMinFontSize": fmt.Sprint(config.OverlayMinFontSize),
			"overlayMaxFontSize": fmt.Sprint(config.OverlayMaxFontSize),
			"overlayMargin":      fmt.Sprint(config.OverlayMargin),
			"nearWhite":          fmt.Sprint(config.NearWhite),
		},
		kong.Configuration(kong.JSON, paths...),
		kong.Help(cli.StyledHelpPrinter()),
	}, options...)
	return kong.New(c, options...)
}

func main() {
	var c namecloudCLI
	parser, err := newParser(&c, configPaths, kong.UsageOnError())
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(&c.Globals); err != nil {
		if errors.Is(err, errInterrupted) {
			os.Exit(130)
		}
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

type job func(pipeline.Observer) (*pipeline.Result, error)

// execute runs a pipeline with the interactive UI on a terminal, or with
// plain step lines otherwise, then shows the result.
func execute(g *Globals, title string, stages []pipeline.Stage, noShow bool, run job) error {
	interactive := !g.Plain && isTerminal(os.Stdout)
	start := time.Now()

	var res *pipeline.Result
	var err error

	if !interactive {
		cli.PrintBanner()
		cli.PrintSection(title)
		res, err = run(func(e pipeline.Event) {
			if e.Done {
				cli.PrintStep(e.Index, e.Total, e.Stage.String(), e.Detail, e.Elapsed)
			}
		})
		if err != nil {
			return err
		}
		printResult(res, time.Since(start))
		return nil
	}

	model := ui.NewModel(title, stages)
	p := tea.NewProgram(model)

	// Run the pipeline in a goroutine and send stage updates
	go func() {
		res, err = run(func(e pipeline.Event) { p.Send(e) })
		if err != nil {
			p.Send(ui.Failed{Err: err})
			return
		}
		p.Send(ui.Complete{Result: res, Elapsed: time.Since(start)})
	}()

	if _, uiErr := p.Run(); uiErr != nil {
		return fmt.Errorf("running UI: %w", uiErr)
	}
	if model.Interrupted() {
		return errInterrupted
	}
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		cli.PrintWarning(w)
	}

	if !noShow {
		if err := ui.Show(res.Image, res.OutputPath); err != nil {
			return fmt.Errorf("displaying result: %w", err)
		}
	}
	return nil
}

// printResult writes the plain-mode ranking, warnings and summary box
func printResult(res *pipeline.Result, total time.Duration) {
	if len(res.Frequencies) > 0 {
		cli.PrintSection("Most mentioned")
		fmt.Fprintln(cli.Out, ui.RenderRanking(res.Frequencies.Ranked(), 0, 24))
	}
	for _, w := range res.Warnings {
		cli.PrintWarning(w)
	}

	size := "unknown"
	if info, err := os.Stat(res.OutputPath); err == nil {
		size = cli.FormatBytes(info.Size())
	}
	b := res.Image.Bounds()
	placed := "0"
	if res.Layout != nil {
		placed = fmt.Sprintf("%d of %d terms", len(res.Layout.Words), len(res.Frequencies))
	}
	cli.PrintSummary(res.OutputPath, size, fmt.Sprintf("%d×%d", b.Dx(), b.Dy()), placed, total)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
