package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(Vermilion)
	helpDescStyle    = lipgloss.NewStyle().Foreground(Gold).Italic(true).MarginBottom(1)
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(Gold).MarginTop(1)
	helpNameStyle    = lipgloss.NewStyle().Foreground(Jade).Bold(true)
	helpDefaultStyle = lipgloss.NewStyle().Foreground(Mist).Italic(true)
)

// helpEntry is one line of a help section
type helpEntry struct {
	name       string
	help       string
	defaultVal string
}

// StyledHelpPrinter renders help for the root or the selected command with
// the CLI palette. Flags inherited from parent commands are listed after the
// command's own.
func StyledHelpPrinter() kong.HelpPrinter {
	return func(_ kong.HelpOptions, ctx *kong.Context) error {
		root := ctx.Model.Node
		node := root
		if selected := ctx.Selected(); selected != nil {
			node = selected
		}

		desc, usage := AppTagline, ctx.Model.Name+" <command> [flags]"
		if node != root {
			usage = ctx.Model.Name + " " + node.Name + " [flags]"
			if node.Help != "" {
				desc = node.Help
			}
		}

		var sb strings.Builder
		sb.WriteString(helpTitleStyle.Render(AppName) + "\n")
		sb.WriteString(helpDescStyle.Render(desc) + "\n")
		writeSection(&sb, "Usage:", []helpEntry{{name: usage}}, lipgloss.NewStyle())
		writeSection(&sb, "Commands:", commandEntries(node), helpTitleStyle)
		writeSection(&sb, "Flags:", flagEntries(node), helpNameStyle)
		sb.WriteString("\n")

		_, err := fmt.Fprint(ctx.Stdout, sb.String())
		return err
	}
}

func writeSection(sb *strings.Builder, title string, entries []helpEntry, nameStyle lipgloss.Style) {
	if len(entries) == 0 {
		return
	}
	sb.WriteString(helpSectionStyle.Render(title) + "\n")

	width := 0
	for _, e := range entries {
		width = max(width, len(e.name))
	}
	for _, e := range entries {
		line := "  " + nameStyle.Render(e.name)
		if e.help != "" {
			line += strings.Repeat(" ", width-len(e.name)+2) + e.help
		}
		if e.defaultVal != "" {
			line += " " + helpDefaultStyle.Render("(default: "+e.defaultVal+")")
		}
		sb.WriteString(line + "\n")
	}
}

func commandEntries(node *kong.Node) []helpEntry {
	var entries []helpEntry
	for _, child := range node.Children {
		if child.Type == kong.CommandNode && !child.Hidden {
			entries = append(entries, helpEntry{name: child.Name, help: child.Help})
		}
	}
	return entries
}

func flagEntries(node *kong.Node) []helpEntry {
	entries := []helpEntry{{name: "-h, --help", help: "Show context-sensitive help."}}

	for n := node; n != nil; n = n.Parent {
		for _, f := range n.Flags {
			if f.Name == "help" || f.Hidden {
				continue
			}

			name := "--" + f.Name
			if f.Short != 0 {
				name = fmt.Sprintf("-%c, %s", f.Short, name)
			}
			if !f.IsBool() && f.PlaceHolder != "" {
				name += "=" + strings.ToUpper(f.PlaceHolder)
			}

			e := helpEntry{name: name, help: f.Help}
			if f.HasDefault && !f.IsBool() && f.Default != "" {
				e.defaultVal = f.Default
			}
			entries = append(entries, e)
		}
	}
	return entries
}
