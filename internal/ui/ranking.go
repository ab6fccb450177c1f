package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/namecloud/internal/names"
)

// RenderRanking renders the top entries as a table of gradient bars scaled
// to the first (largest) count. limit <= 0 renders every entry.
func RenderRanking(entries []names.Entry, limit, barWidth int) string {
	if len(entries) == 0 {
		return ""
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	nameWidth := 0
	countWidth := 0
	for _, e := range entries {
		nameWidth = max(nameWidth, lipgloss.Width(e.Name))
		countWidth = max(countWidth, len(fmt.Sprint(e.Count)))
	}

	nameStyle := lipgloss.NewStyle().Width(nameWidth)
	countStyle := lipgloss.NewStyle().Faint(true)
	top := float64(entries[0].Count)

	var s strings.Builder
	for i, e := range entries {
		ratio := 0.0
		if top > 0 {
			ratio = float64(e.Count) / top
		}
		s.WriteString("  ")
		s.WriteString(nameStyle.Render(e.Name))
		s.WriteString("  ")
		s.WriteString(makeGradientBar(ratio, barWidth))
		s.WriteString("  ")
		s.WriteString(countStyle.Render(fmt.Sprintf("%*d", countWidth, e.Count)))
		if i < len(entries)-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}

// makeGradientBar creates a bar that shades from vermilion to gold
func makeGradientBar(ratio float64, width int) string {
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	var result strings.Builder

	gradientColors := []lipgloss.Color{
		lipgloss.Color("#8B1A1A"), // Lacquer
		lipgloss.Color("#B22222"), // Firebrick
		lipgloss.Color("#E34234"), // Vermilion
		lipgloss.Color("#E86A33"), // Persimmon
		lipgloss.Color("#EE9B3A"), // Apricot
		lipgloss.Color("#D4AF37"), // Gilt
	}

	for i := 0; i < width; i++ {
		if i < filled {
			pos := float64(i) / float64(width)
			colorIdx := int(pos * float64(len(gradientColors)-1))
			if colorIdx >= len(gradientColors) {
				colorIdx = len(gradientColors) - 1
			}
			result.WriteString(lipgloss.NewStyle().Foreground(gradientColors[colorIdx]).Render("█"))
		} else {
			result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#2A2A2A")).Render("░"))
		}
	}

	return result.String()
}
