// Package diff renders unified diff text with syntax coloring and a manual
// scroll window.
package diff

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/jig/internal/ui/styles"
)

// View renders diff text into a fixed-size window.
type View struct {
	Theme  *styles.Theme
	Width  int
	Height int
}

// Render draws the diff starting at the given line offset.
func (v View) Render(text string, offset int) string {
	if text == "" {
		return v.Theme.Style(styles.TokenTextMuted).Render("No diff")
	}
	lines := strings.Split(text, "\n")
	if offset > len(lines)-1 {
		offset = len(lines) - 1
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + v.Height
	if end > len(lines) {
		end = len(lines)
	}

	out := make([]string, 0, end-offset)
	for _, line := range lines[offset:end] {
		out = append(out, ansi.Truncate(v.colorize(line), v.Width, "…"))
	}
	return strings.Join(out, "\n")
}

func (v View) colorize(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return v.Theme.Style(styles.TokenTextSecondary).Render(line)
	case strings.HasPrefix(line, "+"):
		return v.Theme.Style(styles.TokenDiffAdded).Render(line)
	case strings.HasPrefix(line, "-"):
		return v.Theme.Style(styles.TokenDiffRemoved).Render(line)
	case strings.HasPrefix(line, "@@"):
		return v.Theme.Style(styles.TokenDiffHunk).Render(line)
	case strings.HasPrefix(line, "File: "):
		return v.Theme.Style(styles.TokenTextPrimary).Bold(true).Render(line)
	case strings.HasPrefix(line, "Status: "):
		return v.Theme.Style(styles.TokenTextSecondary).Render(line)
	default:
		return v.Theme.Style(styles.TokenTextPrimary).Render(line)
	}
}

// MaxOffset returns the largest useful scroll offset for the text.
func (v View) MaxOffset(text string) int {
	n := strings.Count(text, "\n") + 1 - v.Height
	if n < 0 {
		return 0
	}
	return n
}
