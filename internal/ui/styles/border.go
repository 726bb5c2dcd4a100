package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// Panel renders content in a rounded border with the title embedded in the
// top edge. The border uses the focus color when focused.
func (t *Theme) Panel(content, title string, width, height int, focused bool) string {
	borderColor := t.Color(TokenBorder)
	if focused {
		borderColor = t.Color(TokenBorderFocus)
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(t.Color(TokenTextPrimary)).Bold(true)

	innerWidth := width - 2
	if innerWidth < 1 {
		innerWidth = 1
	}
	contentHeight := height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}

	top := topBorderWithTitle(title, innerWidth, borderStyle, titleStyle)
	bottom := borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight)

	lines := strings.Split(content, "\n")
	body := make([]string, contentHeight)
	for i := 0; i < contentHeight; i++ {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(lines[i], innerWidth, "…")
		}
		if pad := innerWidth - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		body[i] = borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical)
	}

	var b strings.Builder
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(strings.Join(body, "\n"))
	b.WriteString("\n")
	b.WriteString(bottom)
	return b.String()
}

// topBorderWithTitle builds "╭─ Title ────╮"; the title is truncated when it
// does not fit.
func topBorderWithTitle(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	if title == "" {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	// "─ " before and " " after the title
	maxTitle := innerWidth - 4
	if maxTitle < 1 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}
	title = ansi.Truncate(title, maxTitle, "...")

	used := lipgloss.Width(title) + 3 // "─ " + title + " "
	rest := innerWidth - used
	if rest < 0 {
		rest = 0
	}
	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, rest)+borderTopRight)
}
