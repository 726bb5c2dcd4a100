package app

import "github.com/zjrosen/jig/internal/domain"

// themePresets lists the selectable theme names.
var themePresets = []string{
	"default",
	"catppuccin-mocha",
	"catppuccin-latte",
	"dracula",
	"nord",
}

// contextMenuEntries are the per-commit actions in the context menu.
var contextMenuEntries = []string{
	"Edit",
	"New Child",
	"Abandon",
	"Duplicate",
	"Squash",
	"Evolog",
}

func (r *Reducer) reduceUI(s *State, a Action) []Command {
	switch a := a.(type) {
	case OpenCommandPalette:
		if s.Mode != ModeNormal && s.Mode != ModeDiff {
			return nil
		}
		s.Mode = ModePalette
		s.Palette = PaletteState{Matches: SearchPalette("")}
		return nil

	case OpenHelp:
		if s.Mode != ModeNormal && s.Mode != ModeDiff {
			return nil
		}
		s.Mode = ModeHelp
		s.TextView = TextOverlay{Title: "Help"}
		return nil

	case OpenFilterInput:
		if s.Mode != ModeNormal && s.Mode != ModeDiff {
			return nil
		}
		s.Mode = ModeInput
		s.InputFor = InputFilter
		s.Input = s.Filter
		return nil

	case OpenQuickFilter:
		if s.Mode != ModeNormal {
			return nil
		}
		s.Mode = ModeQuickFilter
		s.Menu = ListOverlay{Entries: quickFilterEntries(s.RecentFilters)}
		return nil

	case OpenContextMenu:
		if s.Mode != ModeNormal || s.SelectedRow() == nil {
			return nil
		}
		s.Mode = ModeContextMenu
		s.Menu = ListOverlay{Entries: contextMenuEntries}
		return nil

	case OpenThemeSelection:
		if s.Mode != ModeNormal {
			return nil
		}
		s.Mode = ModeThemeSelect
		s.Menu = ListOverlay{Entries: themePresets}
		for i, name := range themePresets {
			if name == s.Theme {
				s.Menu.Selected = i
			}
		}
		return nil

	case OpenEvolog:
		row := s.SelectedRow()
		if row == nil || (s.Mode != ModeNormal && s.Mode != ModeContextMenu) {
			return nil
		}
		s.Mode = ModeEvolog
		s.PendingEvoFor = row.CommitID
		s.TextView = TextOverlay{Title: "Evolog " + row.CommitIDShort, Text: "Loading..."}
		return []Command{LoadEvolog{ID: row.CommitID}}

	case OpenOperationLog:
		if s.Mode != ModeNormal && s.Mode != ModeDiff {
			return nil
		}
		s.Mode = ModeOpLog
		s.TextView = TextOverlay{Title: "Operation Log", Text: "Loading..."}
		return []Command{LoadOperationLog{}}

	case Cancel:
		return r.applyCancel(s)

	case InputChanged:
		if s.Mode == ModeInput {
			s.Input = a.Text
		}
		return nil

	case ConfirmInput:
		return r.applyConfirm(s)

	case PaletteQueryChanged:
		if s.Mode != ModePalette {
			return nil
		}
		s.Palette.Query = a.Query
		s.Palette.Matches = SearchPalette(a.Query)
		s.Palette.Selected = 0
		return nil

	case PaletteMove:
		if s.Mode != ModePalette || len(s.Palette.Matches) == 0 {
			return nil
		}
		s.Palette.Selected += a.Delta
		if s.Palette.Selected < 0 {
			s.Palette.Selected = 0
		}
		if s.Palette.Selected >= len(s.Palette.Matches) {
			s.Palette.Selected = len(s.Palette.Matches) - 1
		}
		return nil

	case PaletteConfirm:
		if s.Mode != ModePalette || len(s.Palette.Matches) == 0 {
			return nil
		}
		entry := s.Palette.Matches[s.Palette.Selected]
		s.Mode = ModeNormal
		s.resetOverlay()
		return r.Reduce(s, entry.Action)

	case MenuMove:
		s.Menu.Move(a.Delta)
		return nil

	case MenuConfirm:
		return r.applyMenuConfirm(s)

	case ScrollText:
		s.TextView.Offset += a.Delta
		if s.TextView.Offset < 0 {
			s.TextView.Offset = 0
		}
		return nil
	}
	return nil
}

func (r *Reducer) applyCancel(s *State) []Command {
	switch s.Mode {
	case ModeNormal:
		s.Marked = nil
		s.LastError = nil
		return nil
	case ModeLoading, ModeNoRepo:
		return nil
	default:
		s.Mode = ModeNormal
		s.resetOverlay()
		return nil
	}
}

func (r *Reducer) applyConfirm(s *State) []Command {
	switch s.Mode {
	case ModeSquashSelect:
		row := s.SelectedRow()
		s.Mode = ModeNormal
		if row == nil {
			return nil
		}
		return []Command{Squash{Sources: []domain.CommitId{row.CommitID}}}

	case ModeRebaseSelect:
		row := s.SelectedRow()
		sources := s.PendingSources
		s.Mode = ModeNormal
		s.PendingSources = nil
		if row == nil || len(sources) == 0 {
			return nil
		}
		for _, src := range sources {
			if src == row.CommitID {
				s.setError("cannot rebase a commit onto itself", SeverityWarning)
				return nil
			}
		}
		return []Command{Rebase{Sources: sources, Destination: row.CommitID}}

	case ModeInput:
		return r.applyInputConfirm(s)

	case ModeNormal:
		// enter toggles diff focus
		if s.DiffText != "" {
			s.Mode = ModeDiff
		}
		return nil

	case ModeDiff:
		s.Mode = ModeNormal
		return nil
	}
	return nil
}

func (r *Reducer) applyInputConfirm(s *State) []Command {
	text := s.Input
	purpose := s.InputFor
	s.Mode = ModeNormal
	s.resetOverlay()

	switch purpose {
	case InputDescribe:
		row := s.SelectedRow()
		if row == nil {
			return nil
		}
		return []Command{Describe{ID: row.CommitID, Message: text}}

	case InputCommitMessage:
		if text == "" {
			s.setError("a commit message is required", SeverityInfo)
			return nil
		}
		return []Command{CommitWorkingCopy{Message: text}}

	case InputBookmark:
		row := s.SelectedRow()
		if row == nil || text == "" {
			return nil
		}
		return []Command{SetBookmark{ID: row.CommitID, Name: text}}

	case InputFilter:
		return r.Reduce(s, ApplyFilter{Revset: text})
	}
	return nil
}

func (r *Reducer) applyMenuConfirm(s *State) []Command {
	entry := s.Menu.Current()
	kind := s.Mode
	op := s.BookmarkOp
	s.Mode = ModeNormal
	s.resetOverlay()
	if entry == "" {
		return nil
	}

	switch kind {
	case ModeQuickFilter:
		return r.Reduce(s, ApplyFilter{Revset: entry})

	case ModeThemeSelect:
		s.Theme = entry
		return nil

	case ModeBookmarkPick:
		if op == "delete" {
			return []Command{DeleteBookmark{Name: entry}}
		}
		if entry == "Push All" {
			return []Command{Push{}}
		}
		return []Command{Push{Bookmark: entry}}

	case ModeContextMenu:
		switch entry {
		case "Edit":
			return r.Reduce(s, EditIntent{})
		case "New Child":
			return r.Reduce(s, NewChildIntent{})
		case "Abandon":
			return r.Reduce(s, AbandonIntent{})
		case "Duplicate":
			return r.Reduce(s, DuplicateIntent{})
		case "Squash":
			return r.Reduce(s, SquashIntent{})
		case "Evolog":
			return r.Reduce(s, OpenEvolog{})
		}
	}
	return nil
}
