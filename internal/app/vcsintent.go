package app

import "github.com/zjrosen/jig/internal/domain"

// workingCopyRow finds the row flagged as the working copy, or nil.
func workingCopyRow(rows []domain.GraphRow) *domain.GraphRow {
	for i := range rows {
		if rows[i].IsWorkingCopy {
			return &rows[i]
		}
	}
	return nil
}

// hasConflictedFile reports whether the row carries unresolved conflicts,
// either as the row-level flag or as a Conflicted file entry.
func hasConflictedFile(row *domain.GraphRow) bool {
	if row.HasConflict {
		return true
	}
	for _, f := range row.ChangedFiles {
		if f.Status == domain.FileConflicted {
			return true
		}
	}
	return false
}

func (r *Reducer) reduceIntent(s *State, a Action) []Command {
	switch a.(type) {
	case RefreshIntent:
		s.Mode = ModeLoading
		s.resetOverlay()
		return []Command{LoadRepo{Revset: s.Filter}}

	case InitRepoIntent:
		if s.Mode != ModeNoRepo {
			return nil
		}
		return []Command{InitRepo{}}
	}

	if s.Mode != ModeNormal && s.Mode != ModeDiff {
		return nil
	}

	switch a.(type) {
	case DescribeIntent:
		row := s.SelectedRow()
		if row == nil {
			return nil
		}
		s.Mode = ModeInput
		s.InputFor = InputDescribe
		s.Input = row.Description
		return nil

	case CommitIntent:
		wc := workingCopyRow(s.Rows)
		if wc != nil && hasConflictedFile(wc) {
			s.setError("cannot commit: the working copy has conflicts", SeverityWarning)
			return nil
		}
		s.Mode = ModeInput
		s.InputFor = InputCommitMessage
		s.Input = ""
		if wc != nil {
			s.Input = wc.Description
		}
		return nil

	case SnapshotIntent:
		return []Command{Snapshot{}}

	case EditIntent:
		row := s.SelectedRow()
		if row == nil {
			return nil
		}
		if row.IsImmutable {
			s.setError("cannot edit an immutable commit", SeverityWarning)
			return nil
		}
		return []Command{Edit{ID: row.CommitID}}

	case NewChildIntent:
		row := s.SelectedRow()
		if row == nil {
			return nil
		}
		s.Marked = nil
		return []Command{NewChild{Parent: row.CommitID}}

	case AbandonIntent:
		ids := s.TargetIDs()
		if len(ids) == 0 {
			return nil
		}
		s.Marked = nil
		return []Command{Abandon{IDs: ids}}

	case SquashIntent:
		if len(s.Marked) > 0 {
			ids := s.TargetIDs()
			s.Marked = nil
			return []Command{Squash{Sources: ids}}
		}
		if s.SelectedRow() == nil {
			return nil
		}
		s.Mode = ModeSquashSelect
		return nil

	case RebaseIntent:
		ids := s.TargetIDs()
		if len(ids) == 0 {
			return nil
		}
		s.PendingSources = ids
		s.Marked = nil
		s.Mode = ModeRebaseSelect
		return nil

	case RevertIntent:
		ids := s.TargetIDs()
		if len(ids) == 0 {
			return nil
		}
		s.Marked = nil
		return []Command{Revert{IDs: ids}}

	case AbsorbIntent:
		return []Command{Absorb{}}

	case DuplicateIntent:
		ids := s.TargetIDs()
		if len(ids) == 0 {
			return nil
		}
		s.Marked = nil
		return []Command{Duplicate{IDs: ids}}

	case ParallelizeIntent:
		ids := s.TargetIDs()
		if len(ids) < 2 {
			s.setError("parallelize needs at least two selected commits", SeverityInfo)
			return nil
		}
		s.Marked = nil
		return []Command{Parallelize{IDs: ids}}

	case SetBookmarkIntent:
		if s.SelectedRow() == nil {
			return nil
		}
		s.Mode = ModeInput
		s.InputFor = InputBookmark
		s.Input = ""
		return nil

	case DeleteBookmarkIntent:
		row := s.SelectedRow()
		if row == nil {
			return nil
		}
		switch len(row.Bookmarks) {
		case 0:
			s.setError("the selected commit has no bookmark", SeverityInfo)
			return nil
		case 1:
			return []Command{DeleteBookmark{Name: row.Bookmarks[0]}}
		default:
			s.Mode = ModeBookmarkPick
			s.BookmarkOp = "delete"
			s.Menu = ListOverlay{Entries: row.Bookmarks}
			return nil
		}

	case UndoIntent:
		return []Command{Undo{}}

	case RedoIntent:
		return []Command{Redo{}}

	case FetchIntent:
		return []Command{Fetch{}}

	case PushIntent:
		row := s.SelectedRow()
		if row == nil || len(row.Bookmarks) == 0 {
			return []Command{Push{}}
		}
		if len(row.Bookmarks) == 1 {
			return []Command{Push{Bookmark: row.Bookmarks[0]}}
		}
		s.Mode = ModeBookmarkPick
		s.BookmarkOp = "push"
		entries := append([]string{}, row.Bookmarks...)
		entries = append(entries, "Push All")
		s.Menu = ListOverlay{Entries: entries}
		return nil
	}
	return nil
}
