// Package overlay renders the modal popups: errors, prompts, pickers and
// scrollable text panes.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/jig/internal/ui/styles"
)

// ErrorBox renders a failure with recovery suggestions, word-wrapped to fit.
func ErrorBox(theme *styles.Theme, message string, warning bool, suggestions []string, width int) string {
	token := styles.TokenStatusError
	title := "Error"
	if warning {
		token = styles.TokenStatusWarning
		title = "Warning"
	}

	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	var b strings.Builder
	b.WriteString(theme.Style(token).Render(wordwrap.String(message, inner)))
	if len(suggestions) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Style(styles.TokenTextSecondary).Render("Suggestions:"))
		for _, s := range suggestions {
			b.WriteString("\n")
			b.WriteString(theme.Style(styles.TokenTextPrimary).Render(wordwrap.String("• "+s, inner)))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Style(styles.TokenTextMuted).Render("esc to dismiss"))

	content := b.String()
	height := strings.Count(content, "\n") + 3
	return theme.Panel(content, title, width, height, true)
}

// Prompt renders a one-line input box. inputView is the already-rendered
// text input.
func Prompt(theme *styles.Theme, title, inputView string, width int) string {
	return theme.Panel(inputView, title, width, 3, true)
}

// List renders a picker with the selected entry highlighted.
func List(theme *styles.Theme, title string, entries []string, selected, width int) string {
	var b strings.Builder
	for i, entry := range entries {
		line := "  " + entry
		if i == selected {
			line = lipgloss.NewStyle().
				Background(theme.Color(styles.TokenSelectionBg)).
				Foreground(theme.Color(styles.TokenTextPrimary)).
				Render("> " + entry)
		} else {
			line = theme.Style(styles.TokenTextSecondary).Render(line)
		}
		b.WriteString(ansi.Truncate(line, width-2, "…"))
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}
	return theme.Panel(b.String(), title, width, len(entries)+2, true)
}

// PaletteRow is one palette result line.
type PaletteRow struct {
	Name        string
	Description string
}

// Palette renders the command palette: the query input on top, matches
// below.
func Palette(theme *styles.Theme, queryView string, rows []PaletteRow, selected, width, height int) string {
	var b strings.Builder
	b.WriteString(queryView)
	b.WriteString("\n")

	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	top := 0
	if selected >= visible {
		top = selected - visible + 1
	}
	for i := top; i < len(rows) && i < top+visible; i++ {
		name := theme.Style(styles.TokenTextPrimary).Bold(true).Render(rows[i].Name)
		desc := theme.Style(styles.TokenTextMuted).Render(rows[i].Description)
		line := "  " + name + "  " + desc
		if i == selected {
			line = lipgloss.NewStyle().
				Background(theme.Color(styles.TokenSelectionBg)).
				Render("> " + name + "  " + desc)
		}
		b.WriteString(ansi.Truncate(line, width-2, "…"))
		if i < len(rows)-1 && i < top+visible-1 {
			b.WriteString("\n")
		}
	}
	if len(rows) == 0 {
		b.WriteString(theme.Style(styles.TokenTextMuted).Render("  no matching commands"))
	}
	return theme.Panel(b.String(), "Command Palette", width, height, true)
}

// TextPane renders scrollable read-only text with a position indicator.
func TextPane(theme *styles.Theme, title, text string, offset, width, height int) string {
	lines := strings.Split(text, "\n")
	if offset > len(lines)-1 {
		offset = len(lines) - 1
	}
	if offset < 0 {
		offset = 0
	}
	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	end := offset + visible
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for i := offset; i < end; i++ {
		b.WriteString(theme.Style(styles.TokenTextPrimary).Render(ansi.Truncate(lines[i], width-2, "…")))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(lines) {
		title += " ↓"
	}
	return theme.Panel(b.String(), title, width, height, true)
}

// Center positions a popup in the middle of the terminal.
func Center(popup string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup,
		lipgloss.WithWhitespaceChars(" "))
}
