package cli

import "github.com/charmbracelet/lipgloss"

// Ink and jade palette
// Shared colours for consistent branding across CLI and TUI
var (
	// Core colours (dark to bright)
	InkBlack  = lipgloss.Color("#2B2B2B") // Sumi ink
	Vermilion = lipgloss.Color("#E34234") // Seal-paste red
	Jade      = lipgloss.Color("#00A86B") // Jade green
	Gold      = lipgloss.Color("#D4AF37") // Gilt

	// Accent colours
	Mist = lipgloss.Color("#9E9E9E") // Subtle text
)
