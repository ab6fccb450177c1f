// Package ui holds the bubbletea models used while a cloud is generated and
// once it is done.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/namecloud/internal/cli"
	"github.com/linuxmatters/namecloud/internal/pipeline"
)

// Complete signals that the pipeline finished
type Complete struct {
	Result  *pipeline.Result
	Elapsed time.Duration
}

// Failed signals that the pipeline stopped with an error
type Failed struct {
	Err error
}

// progressQuitMsg is sent when it's time to quit after showing completion
type progressQuitMsg struct{}

// rankingLimit caps the frequency table in the completion summary
const rankingLimit = 10

// Model tracks pipeline stages with a progress bar
type Model struct {
	progressBar progress.Model
	summaryBar  progress.Model

	title  string
	stages []pipeline.Stage
	events map[pipeline.Stage]pipeline.Event

	current pipeline.Stage
	started bool

	complete *Complete
	err      error

	startTime       time.Time
	width           int
	completionDelay time.Duration
	interrupted     bool
}

// NewModel creates a progress model for the given stage list
func NewModel(title string, stages []pipeline.Stage) *Model {
	p := progress.New(
		progress.WithGradient(string(cli.Vermilion), string(cli.Gold)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	summaryBar := progress.New(
		progress.WithGradient(string(cli.Jade), string(cli.Gold)),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return &Model{
		progressBar:     p,
		summaryBar:      summaryBar,
		title:           title,
		stages:          stages,
		events:          make(map[pipeline.Stage]pipeline.Event, len(stages)),
		startTime:       time.Now(),
		completionDelay: 750 * time.Millisecond,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = max(10, min(msg.Width-30, 50))
		return m, nil

	case pipeline.Event:
		m.current = msg.Stage
		m.started = true
		if msg.Done {
			m.events[msg.Stage] = msg
		}
		return m, nil

	case Complete:
		m.complete = &msg
		return m, tea.Tick(m.completionDelay, func(time.Time) tea.Msg {
			return progressQuitMsg{}
		})

	case Failed:
		m.err = msg.Err
		return m, tea.Quit

	case progressQuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.complete != nil {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// Interrupted reports whether the user quit before the pipeline finished
func (m *Model) Interrupted() bool {
	return m.interrupted
}

// View renders the UI
func (m *Model) View() string {
	if m.complete != nil {
		return m.CompletionSummary()
	}
	return m.renderProgress(m.percent())
}

// CompletionSummary returns the final summary for printing after the
// program exits. Returns empty string if the pipeline has not completed.
func (m *Model) CompletionSummary() string {
	if m.complete == nil {
		return ""
	}
	return m.renderProgress(1.0) + "\n" + m.renderComplete()
}

func (m *Model) percent() float64 {
	if len(m.stages) == 0 {
		return 0
	}
	return float64(len(m.events)) / float64(len(m.stages))
}

func (m *Model) renderProgress(percent float64) string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.Vermilion).
		Render(cli.AppName)

	s.WriteString(title)
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(cli.Gold).Render(m.title))
	s.WriteString("\n\n")

	s.WriteString("Progress: ")
	s.WriteString(m.progressBar.ViewAs(percent))
	s.WriteString(fmt.Sprintf("  %d%%", int(percent*100)))
	s.WriteString("\n\n")

	doneStyle := lipgloss.NewStyle().Foreground(cli.Jade)
	activeStyle := lipgloss.NewStyle().Foreground(cli.Gold).Bold(true)
	pendingStyle := lipgloss.NewStyle().Faint(true)
	detailStyle := lipgloss.NewStyle().Faint(true).Italic(true)

	for _, stage := range m.stages {
		if e, ok := m.events[stage]; ok {
			s.WriteString(doneStyle.Render("✓ " + fmt.Sprintf("%-20s", stage.String())))
			s.WriteString(detailStyle.Render(fmt.Sprintf("%s  %s", e.Detail, formatDuration(e.Elapsed))))
		} else if m.started && stage == m.current {
			s.WriteString(activeStyle.Render("▸ " + stage.String()))
		} else {
			s.WriteString(pendingStyle.Render("· " + stage.String()))
		}
		s.WriteString("\n")
	}

	elapsed := time.Since(m.startTime)
	if m.complete != nil {
		elapsed = m.complete.Elapsed
	}
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Faint(true).Render("Time: " + formatDuration(elapsed)))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(cli.Vermilion).
		Padding(1, 2).
		Render(s.String())
}

func (m *Model) renderComplete() string {
	var s strings.Builder
	res := m.complete.Result

	s.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.Jade).
		Render("✓ Cloud Complete!"))
	s.WriteString("\n\n")

	dimLabel := lipgloss.NewStyle().Faint(true)
	if res != nil {
		s.WriteString(fmt.Sprintf("%s%s\n", dimLabel.Render("Output:   "), res.OutputPath))
		if res.Image != nil {
			b := res.Image.Bounds()
			s.WriteString(fmt.Sprintf("%s%d×%d\n", dimLabel.Render("Image:    "), b.Dx(), b.Dy()))
		}
		s.WriteString(fmt.Sprintf("%s%d tokens, %d name mentions (%s)\n",
			dimLabel.Render("Text:     "), res.Tokens, res.Mentions, res.Encoding))
		if res.Layout != nil {
			s.WriteString(fmt.Sprintf("%s%d of %d terms\n",
				dimLabel.Render("Placed:   "), len(res.Layout.Words), len(res.Frequencies)))
		}
		for _, w := range res.Warnings {
			s.WriteString(lipgloss.NewStyle().Foreground(cli.Gold).Render("Warning:  "+w) + "\n")
		}
	}
	s.WriteString("\n")

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.Gold)
	labelStyle := lipgloss.NewStyle().Faint(true)
	valueStyle := lipgloss.NewStyle()

	s.WriteString(headerStyle.Render("Stage Timings"))
	s.WriteString("\n")

	total := m.complete.Elapsed
	totalMs := total.Milliseconds()
	if totalMs == 0 {
		totalMs = 1
	}
	for _, stage := range m.stages {
		e, ok := m.events[stage]
		if !ok {
			continue
		}
		ratio := float64(e.Elapsed.Milliseconds()) / float64(totalMs)
		s.WriteString(fmt.Sprintf("  %s%s (~%2d%%)  %s\n",
			labelStyle.Render(fmt.Sprintf("%-22s", stage.String()+":")),
			valueStyle.Render(fmt.Sprintf("~%-6s", formatDuration(e.Elapsed))),
			int(ratio*100),
			m.summaryBar.ViewAs(ratio)))
	}
	s.WriteString(fmt.Sprintf("  %s%s\n",
		labelStyle.Render(fmt.Sprintf("%-22s", "Total time:")),
		lipgloss.NewStyle().Foreground(cli.Gold).Render(formatDuration(total))))

	if res != nil && len(res.Frequencies) > 0 {
		s.WriteString("\n")
		s.WriteString(headerStyle.Render("Most Mentioned"))
		s.WriteString("\n")
		s.WriteString(RenderRanking(res.Frequencies.Ranked(), rankingLimit, 24))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(cli.Jade).
		Padding(1, 1).
		Render(s.String()) + "\n"
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
