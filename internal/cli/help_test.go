package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

type helpTestCLI struct {
	Plain bool `help:"Plain output"`

	Shape struct {
		Mask string `help:"Mask image" default:"mask.jpg"`
	} `cmd:"" help:"Shape the cloud."`
	Overlay struct {
		Scale float64 `help:"Cloud scale" default:"0.6"`
	} `cmd:"" help:"Overlay the cloud."`
}

func renderHelp(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	var cli helpTestCLI
	parser, err := kong.New(&cli,
		kong.Name("namecloud"),
		kong.Writers(&out, &out),
		kong.Exit(func(int) {}),
		kong.Help(StyledHelpPrinter()),
	)
	if err != nil {
		t.Fatalf("kong.New() error: %v", err)
	}
	_, _ = parser.Parse(args)
	return out.String()
}

func TestStyledHelp_Root(t *testing.T) {
	out := renderHelp(t, "--help")
	for _, want := range []string{AppName, "namecloud <command> [flags]", "Commands:", "shape", "overlay", "--plain"} {
		if !strings.Contains(out, want) {
			t.Errorf("root help missing %q:\n%s", want, out)
		}
	}
}

func TestStyledHelp_Subcommand(t *testing.T) {
	out := renderHelp(t, "shape", "--help")
	for _, want := range []string{"Shape the cloud.", "namecloud shape [flags]", "--mask", "mask.jpg", "--plain"} {
		if !strings.Contains(out, want) {
			t.Errorf("shape help missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "--scale") {
		t.Error("shape help lists overlay flags")
	}
}
