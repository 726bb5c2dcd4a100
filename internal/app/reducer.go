package app

import (
	"strings"
	"time"

	"github.com/zjrosen/jig/internal/domain"
	"github.com/zjrosen/jig/internal/log"
)

// DiffCache looks up previously loaded diff text by commit id. The runtime
// owns the backing store; the reducer only reads it.
type DiffCache interface {
	Get(id domain.CommitId) (string, bool)
}

// Reducer applies actions to the state and returns the commands to run.
type Reducer struct {
	Cache DiffCache
	// PageSize is the graph page size; a shorter page marks the graph
	// complete.
	PageSize int
	// Now is stubbed in tests.
	Now func() time.Time
}

// NewReducer returns a Reducer with the given cache and page size.
func NewReducer(cache DiffCache, pageSize int) *Reducer {
	return &Reducer{Cache: cache, PageSize: pageSize, Now: time.Now}
}

// Reduce applies one action. It mutates s and returns the commands the
// runtime should execute, which may be empty.
func (r *Reducer) Reduce(s *State, a Action) []Command {
	switch a := a.(type) {
	// navigation
	case MoveUp, MoveDown, SelectCommit, ScrollDiff, NextHunk, PrevHunk, NextFile, PrevFile, ToggleSelect:
		return r.reduceNavigation(s, a)

	// user intents
	case DescribeIntent, CommitIntent, SnapshotIntent, EditIntent,
		NewChildIntent, AbandonIntent, SquashIntent, RebaseIntent,
		RevertIntent, AbsorbIntent, DuplicateIntent, ParallelizeIntent,
		SetBookmarkIntent, DeleteBookmarkIntent, UndoIntent, RedoIntent,
		FetchIntent, PushIntent, RefreshIntent, InitRepoIntent:
		return r.reduceIntent(s, a)

	// filters
	case ApplyFilter, ClearFilter:
		return r.reduceFilter(s, a)

	// overlays and mode transitions
	case OpenCommandPalette, OpenHelp, OpenFilterInput, OpenQuickFilter,
		OpenContextMenu, OpenThemeSelection, OpenEvolog, OpenOperationLog,
		Cancel, InputChanged, ConfirmInput, PaletteQueryChanged, PaletteMove,
		PaletteConfirm, MenuMove, MenuConfirm, ScrollText:
		return r.reduceUI(s, a)

	// lifecycle and results
	default:
		return r.reduceLifecycle(s, a)
	}
}

func (r *Reducer) reduceLifecycle(s *State, a Action) []Command {
	switch a := a.(type) {
	case RepoLoaded:
		return r.applyRepoLoaded(s, a)

	case GraphBatchLoaded:
		s.BatchPending = false
		if len(a.Rows) == 0 {
			s.GraphComplete = true
			return nil
		}
		have := map[domain.CommitId]bool{}
		for _, row := range s.Rows {
			have[row.CommitID] = true
		}
		added := 0
		for _, row := range a.Rows {
			if !have[row.CommitID] {
				s.Rows = append(s.Rows, row)
				added++
			}
		}
		if added == 0 || len(a.Rows) < r.PageSize {
			s.GraphComplete = true
		}
		domain.CalculateGraphLayout(s.Rows)
		return nil

	case DiffLoaded:
		if a.ID == s.DiffFor {
			s.DiffText = a.Text
			s.DiffOffset = 0
		}
		return nil

	case EvologLoaded:
		if s.Mode == ModeEvolog && a.ID == s.PendingEvoFor {
			s.TextView.Text = a.Text
			s.TextView.Offset = 0
		}
		return nil

	case OperationLogLoaded:
		if s.Mode == ModeOpLog {
			s.TextView.Text = a.Text
			s.TextView.Offset = 0
		}
		return nil

	case OperationStarted:
		s.ActiveTasks[a.TaskID] = a.Message
		s.Mode = ModeLoading
		return nil

	case OperationCompleted:
		return r.applyOperationCompleted(s, a)

	case ErrorOccurred:
		s.setError(a.Message, SeverityError)
		s.BatchPending = false
		if isRevsetError(a.Message) && s.Filter != "" {
			log.Info(log.CatRuntime, "clearing filter after revset error", "filter", s.Filter)
			s.Filter = ""
			s.Mode = ModeLoading
			return []Command{LoadRepo{Revset: s.Filter}}
		}
		return nil

	case ExternalChangeDetected:
		s.setStatus("Syncing in background...", r.Now())
		return []Command{ReloadBackground{Revset: s.Filter}}

	case RepoReloadedBackground:
		var keep domain.CommitId
		if row := s.SelectedRow(); row != nil {
			keep = row.CommitID
		}
		s.Repo = a.Status
		s.Rows = a.Rows
		domain.CalculateGraphLayout(a.Rows)
		s.GraphComplete = len(a.Rows) < r.PageSize
		s.BatchPending = false
		if idx := s.indexOf(keep); idx >= 0 {
			s.Selected = idx
		} else if s.Selected >= len(s.Rows) {
			s.Selected = max(0, len(s.Rows)-1)
		}
		return nil

	case Tick:
		return r.applyTick(s)

	case WindowResized:
		s.Width, s.Height = a.Width, a.Height
		return nil
	}
	return nil
}

func (r *Reducer) applyRepoLoaded(s *State, a RepoLoaded) []Command {
	if a.Err != "" {
		if strings.Contains(strings.ToLower(a.Err), "no jj repo") ||
			strings.Contains(strings.ToLower(a.Err), "no repository") {
			s.Mode = ModeNoRepo
			return nil
		}
		s.setError(a.Err, SeverityError)
		if len(s.Rows) > 0 {
			s.Mode = ModeNormal
		} else {
			s.Mode = ModeNoRepo
		}
		return nil
	}

	s.Repo = a.Status
	s.Rows = a.Rows
	domain.CalculateGraphLayout(a.Rows)
	s.GraphComplete = len(a.Rows) < r.PageSize
	s.BatchPending = false
	s.Mode = ModeNormal
	if s.Selected >= len(s.Rows) {
		s.Selected = max(0, len(s.Rows)-1)
	}
	return r.afterSelection(s)
}

func (r *Reducer) applyOperationCompleted(s *State, a OperationCompleted) []Command {
	delete(s.ActiveTasks, a.TaskID)
	if len(s.ActiveTasks) == 0 {
		if s.Repo.WorkingCopyID != "" {
			s.Mode = ModeNormal
		} else {
			s.Mode = ModeNoRepo
		}
	}

	if a.Err != "" {
		s.setError(a.Err, SeverityError)
		if s.Repo.WorkingCopyID == "" {
			return nil
		}
		return []Command{ReloadBackground{Revset: s.Filter}}
	}

	s.setStatus(a.Message, r.Now())
	s.DiffText = ""
	s.DiffFor = ""
	return []Command{ReloadBackground{Revset: s.Filter}}
}

// loadMoreThreshold is how close to the graph's end the selection may get
// before the next page is requested.
const loadMoreThreshold = 20

func (r *Reducer) applyTick(s *State) []Command {
	s.Spinner++
	if s.Status.Text != "" && r.Now().After(s.Status.Expires) {
		s.Status = StatusMessage{}
	}

	if s.Mode != ModeNormal || s.GraphComplete || s.BatchPending || len(s.Rows) == 0 {
		return nil
	}
	if len(s.Rows)-s.Selected > loadMoreThreshold {
		return nil
	}
	heads := tailParents(s.Rows)
	if len(heads) == 0 {
		s.GraphComplete = true
		return nil
	}
	s.BatchPending = true
	return []Command{LoadGraphBatch{Heads: heads}}
}

// tailParents collects the parents of trailing rows that are not themselves
// in the loaded graph; they head the next page.
func tailParents(rows []domain.GraphRow) []domain.CommitId {
	have := map[domain.CommitId]bool{}
	for _, row := range rows {
		have[row.CommitID] = true
	}
	var out []domain.CommitId
	seen := map[domain.CommitId]bool{}
	for _, row := range rows {
		for _, p := range row.Parents {
			if !have[p] && !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}
