package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Out and ErrOut receive everything the Print helpers write
var (
	Out    io.Writer = os.Stdout
	ErrOut io.Writer = os.Stderr
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Vermilion).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Mist).
			Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Gold).
			MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Jade)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Vermilion)

	// Step counters and warnings
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Gold)

	KeyStyle   = lipgloss.NewStyle().Foreground(Mist)
	ValueStyle = lipgloss.NewStyle().Bold(true)

	// Framed run summary
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Jade).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)
)

const (
	AppName    = "namecloud ☁"
	AppTagline = "Turn a novel's character mentions into a word cloud."
)

// PrintBanner writes the name and tagline
func PrintBanner() {
	fmt.Fprintln(Out, TitleStyle.Render(AppName))
	fmt.Fprintln(Out, SubtitleStyle.Render(AppTagline))
	fmt.Fprintln(Out)
}

// PrintVersion writes the name and build version
func PrintVersion(version string) {
	fmt.Fprintln(Out, TitleStyle.Render(AppName))
	PrintInfo("Version", version)
}

// PrintError writes an error line to ErrOut
func PrintError(message string) {
	fmt.Fprintln(ErrOut, ErrorStyle.Render("Error:"), message)
}

func PrintWarning(message string) {
	fmt.Fprintln(Out, HighlightStyle.Render("Warning:"), message)
}

// PrintInfo writes a "key: value" line
func PrintInfo(key, value string) {
	fmt.Fprintln(Out, KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// PrintStep writes one finished pipeline step, e.g.
// "[2/7] Tokenising 5123 tokens (40ms)"
func PrintStep(index, total int, name, detail string, elapsed time.Duration) {
	counter := HighlightStyle.Render(fmt.Sprintf("[%d/%d]", index, total))
	fmt.Fprintln(Out, counter, ValueStyle.Render(name), detail, KeyStyle.Render("("+FormatDuration(elapsed)+")"))
}

func PrintSection(title string) {
	fmt.Fprintln(Out, HeaderStyle.Render(title))
}

// FormatDuration renders sub-second durations in whole milliseconds and
// longer ones in seconds with one decimal
func FormatDuration(d time.Duration) string {
	if d >= time.Second {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dms", d.Round(time.Millisecond).Milliseconds())
}

// FormatBytes renders a byte count with binary units
func FormatBytes(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	units := []string{"KB", "MB", "GB", "TB"}
	value := float64(bytes) / 1024
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", value, units[i])
}

// PrintBox writes content inside the summary frame
func PrintBox(content string) {
	fmt.Fprintln(Out, BoxStyle.Render(content))
}

// PrintSummary writes the framed run summary
func PrintSummary(output, size, dims, placed string, total time.Duration) {
	rows := []struct{ key, value string }{
		{"Output", output},
		{"Size", dims + "  " + size},
		{"Placed", placed},
		{"Total time", FormatDuration(total)},
	}

	lines := []string{SuccessStyle.Render("✓ Cloud Complete!"), ""}
	for _, r := range rows {
		lines = append(lines, KeyStyle.Render(fmt.Sprintf("%-12s", r.key+":"))+ValueStyle.Render(r.value))
	}
	PrintBox(strings.Join(lines, "\n"))
}
