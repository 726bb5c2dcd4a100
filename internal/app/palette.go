package app

import "strings"

// PaletteEntry is one runnable command in the palette.
type PaletteEntry struct {
	Name        string
	Description string
	Action      Action
}

// paletteCommands lists every palette entry in display order.
func paletteCommands() []PaletteEntry {
	return []PaletteEntry{
		{"describe", "Edit the description of the selected commit", DescribeIntent{}},
		{"commit", "Finalize the working copy with a message", CommitIntent{}},
		{"snapshot", "Record working copy changes into the current commit", SnapshotIntent{}},
		{"edit", "Make the selected commit the working copy", EditIntent{}},
		{"new", "Create a new child of the selected commit", NewChildIntent{}},
		{"abandon", "Abandon the selected commits", AbandonIntent{}},
		{"squash", "Squash commits into their parent", SquashIntent{}},
		{"rebase", "Move commits onto a new destination", RebaseIntent{}},
		{"revert", "Create commits that undo the selection", RevertIntent{}},
		{"absorb", "Move working copy changes into mutable ancestors", AbsorbIntent{}},
		{"duplicate", "Copy the selected commits", DuplicateIntent{}},
		{"parallelize", "Make the selected commits siblings", ParallelizeIntent{}},
		{"bookmark set", "Point a bookmark at the selected commit", SetBookmarkIntent{}},
		{"bookmark delete", "Remove the selected commit's bookmark", DeleteBookmarkIntent{}},
		{"undo", "Undo the last repository operation", UndoIntent{}},
		{"redo", "Restore the operation undone last", RedoIntent{}},
		{"fetch", "Fetch from the default remote", FetchIntent{}},
		{"push", "Push bookmarks to the default remote", PushIntent{}},
		{"filter", "Filter the graph by a revset", OpenFilterInput{}},
		{"clear filter", "Show the default graph view", ClearFilter{}},
		{"evolog", "Show how the selected commit evolved", OpenEvolog{}},
		{"operation log", "Show the repository operation log", OpenOperationLog{}},
		{"theme", "Choose a color theme", OpenThemeSelection{}},
		{"refresh", "Reload the repository", RefreshIntent{}},
		{"help", "Show keybindings", OpenHelp{}},
	}
}

// SearchPalette returns entries matching the query: name matches first, then
// description matches, each in definition order, without duplicates. An
// empty query returns everything.
func SearchPalette(query string) []PaletteEntry {
	all := paletteCommands()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all
	}
	var out []PaletteEntry
	seen := map[string]bool{}
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
			seen[e.Name] = true
		}
	}
	for _, e := range all {
		if !seen[e.Name] && strings.Contains(strings.ToLower(e.Description), q) {
			out = append(out, e)
		}
	}
	return out
}
