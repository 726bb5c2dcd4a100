package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/jig/internal/log"
)

// helpSections groups keymap action names for the help screen.
var helpSections = []struct {
	title   string
	actions [][2]string // action name, explanation
}{
	{"Navigation", [][2]string{
		{"up", "move selection up"},
		{"down", "move selection down"},
		{"select", "open the diff panel"},
		{"toggle_select", "mark or unmark the commit"},
		{"next_file", "jump to the next changed file"},
		{"prev_file", "jump to the previous changed file"},
		{"close", "dismiss or go back"},
	}},
	{"Working copy", [][2]string{
		{"describe", "edit the description"},
		{"commit", "commit with a message"},
		{"snapshot", "record working copy changes"},
		{"edit", "make the commit the working copy"},
		{"new_child", "create a child commit"},
	}},
	{"History", [][2]string{
		{"abandon", "abandon commits"},
		{"squash", "squash into the parent"},
		{"rebase", "move commits elsewhere"},
		{"revert", "create reverting commits"},
		{"absorb", "absorb changes into ancestors"},
		{"duplicate", "copy commits"},
		{"parallelize", "make commits siblings"},
		{"undo", "undo the last operation"},
		{"redo", "restore the undone operation"},
	}},
	{"Bookmarks and remotes", [][2]string{
		{"bookmark_set", "set a bookmark"},
		{"bookmark_delete", "delete a bookmark"},
		{"fetch", "fetch from the remote"},
		{"push", "push bookmarks"},
	}},
	{"Views", [][2]string{
		{"command_palette", "open the command palette"},
		{"filter", "filter by a revset"},
		{"quick_filter", "preset and recent filters"},
		{"context_menu", "per-commit actions"},
		{"evolog", "commit evolution log"},
		{"op_log", "repository operation log"},
		{"theme", "choose a theme"},
		{"refresh", "reload the repository"},
		{"quit", "quit"},
	}},
}

// helpText renders the keybinding reference as styled markdown, memoized per
// width.
func (m *Model) helpText(width int) string {
	if m.helpRendered != "" && m.helpWidth == width {
		return m.helpRendered
	}

	var b strings.Builder
	b.WriteString("# Keybindings\n")
	for _, sec := range helpSections {
		b.WriteString(fmt.Sprintf("\n## %s\n\n", sec.title))
		for _, a := range sec.actions {
			key, ok := m.keymap[a[0]]
			if !ok {
				continue
			}
			if key == " " {
				key = "space"
			}
			b.WriteString(fmt.Sprintf("- `%s` %s\n", key, a[1]))
		}
	}

	out := b.String()
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if styled, rerr := renderer.Render(out); rerr == nil {
			out = styled
		} else {
			log.Warn(log.CatUI, "help render failed", "error", rerr)
		}
	}
	m.helpRendered = out
	m.helpWidth = width
	return out
}
