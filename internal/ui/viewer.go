package ui

import (
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/namecloud/internal/cli"
)

// Viewer shows a finished image until a key is pressed
type Viewer struct {
	img     image.Image
	title   string
	width   int
	height  int
	preview string
}

// NewViewer creates a viewer for img. The preview is sized to the default
// until the first window size message arrives.
func NewViewer(img image.Image, title string) *Viewer {
	v := &Viewer{img: img, title: title}
	def := DefaultPreviewConfig()
	v.resize(def.Width+6, def.Height+6)
	return v
}

// Init initializes the model
func (v *Viewer) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.resize(msg.Width, msg.Height)
		return v, nil
	case tea.KeyMsg:
		return v, tea.Quit
	}
	return v, nil
}

// resize rebuilds the preview to fit a terminal of the given size, leaving
// room for the frame, title and hint lines
func (v *Viewer) resize(width, height int) {
	v.width, v.height = width, height
	cfg := FitPreview(v.img.Bounds(), width-6, height-6)
	v.preview = RenderPreview(DownsampleImage(v.img, cfg), "")
}

// View renders the UI
func (v *Viewer) View() string {
	var s strings.Builder

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(cli.Vermilion).Render(v.title))
	s.WriteString("\n")
	s.WriteString(v.preview)
	s.WriteString(lipgloss.NewStyle().Faint(true).Italic(true).Render("  press any key to close"))

	return s.String()
}

// Show blocks displaying img in the alternate screen until a key is pressed
func Show(img image.Image, title string) error {
	_, err := tea.NewProgram(NewViewer(img, title), tea.WithAltScreen()).Run()
	return err
}
