package app

import "strings"

func (r *Reducer) reduceNavigation(s *State, a Action) []Command {
	switch a := a.(type) {
	case MoveUp:
		if !selectionActive(s.Mode) || len(s.Rows) == 0 {
			return nil
		}
		s.Selected--
		if s.Selected < 0 {
			s.Selected = len(s.Rows) - 1
		}
		return r.afterSelection(s)

	case MoveDown:
		if !selectionActive(s.Mode) || len(s.Rows) == 0 {
			return nil
		}
		s.Selected++
		if s.Selected >= len(s.Rows) {
			s.Selected = 0
		}
		return r.afterSelection(s)

	case SelectCommit:
		idx := s.indexOf(a.ID)
		if idx < 0 || idx == s.Selected {
			return nil
		}
		s.Selected = idx
		return r.afterSelection(s)

	case ScrollDiff:
		s.DiffOffset += a.Lines
		if s.DiffOffset < 0 {
			s.DiffOffset = 0
		}
		return nil

	case NextHunk:
		if off, ok := nextHunk(s.DiffText, s.DiffOffset); ok {
			s.DiffOffset = off
		}
		return nil

	case PrevHunk:
		if off, ok := prevHunk(s.DiffText, s.DiffOffset); ok {
			s.DiffOffset = off
		}
		return nil

	case NextFile:
		return r.moveFileSel(s, 1)

	case PrevFile:
		return r.moveFileSel(s, -1)

	case ToggleSelect:
		if s.Mode != ModeNormal {
			return nil
		}
		row := s.SelectedRow()
		if row == nil {
			return nil
		}
		if s.IsMarked(row.CommitID) {
			out := s.Marked[:0]
			for _, m := range s.Marked {
				if m != row.CommitID {
					out = append(out, m)
				}
			}
			s.Marked = out
		} else {
			s.Marked = append(s.Marked, row.CommitID)
		}
		return nil
	}
	return nil
}

// selectionActive reports whether graph movement applies in the mode.
func selectionActive(m Mode) bool {
	switch m {
	case ModeNormal, ModeDiff, ModeSquashSelect, ModeRebaseSelect:
		return true
	}
	return false
}

// afterSelection refreshes the diff panel for the newly highlighted commit.
// A cache hit fills the panel directly; a miss requests a load.
func (r *Reducer) afterSelection(s *State) []Command {
	row := s.SelectedRow()
	if row == nil {
		s.DiffFor = ""
		s.DiffText = ""
		return nil
	}
	if row.CommitID == s.DiffFor && s.DiffText != "" {
		return nil
	}
	s.DiffFor = row.CommitID
	s.DiffOffset = 0
	s.FileSel = -1
	if r.Cache != nil {
		if text, ok := r.Cache.Get(row.CommitID); ok {
			s.DiffText = text
			return nil
		}
	}
	s.DiffText = "Loading diff..."
	return []Command{LoadDiff{ID: row.CommitID}}
}

// moveFileSel cycles the file sub-selection over the highlighted commit's
// changed files and scrolls the diff to the chosen file's section.
func (r *Reducer) moveFileSel(s *State, delta int) []Command {
	row := s.SelectedRow()
	if row == nil || len(row.ChangedFiles) == 0 {
		return nil
	}
	n := len(row.ChangedFiles)
	if s.FileSel < 0 {
		if delta > 0 {
			s.FileSel = 0
		} else {
			s.FileSel = n - 1
		}
	} else {
		s.FileSel = ((s.FileSel+delta)%n + n) % n
	}
	if off, ok := fileOffset(s.DiffText, row.ChangedFiles[s.FileSel].Path); ok {
		s.DiffOffset = off
	}
	return nil
}

// fileOffset returns the line offset of a file's section in the diff text.
func fileOffset(text, path string) (int, bool) {
	want := "File: " + path
	for i, line := range strings.Split(text, "\n") {
		if line == want {
			return i, true
		}
	}
	return 0, false
}

// nextHunk returns the line offset of the first hunk header after the
// current offset.
func nextHunk(text string, after int) (int, bool) {
	lines := strings.Split(text, "\n")
	for i := after + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "@@") {
			return i, true
		}
	}
	return 0, false
}

// prevHunk returns the line offset of the last hunk header before the
// current offset.
func prevHunk(text string, before int) (int, bool) {
	lines := strings.Split(text, "\n")
	if before > len(lines) {
		before = len(lines)
	}
	for i := before - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], "@@") {
			return i, true
		}
	}
	return 0, false
}
