package app

import (
	"time"

	"github.com/zjrosen/jig/internal/domain"
)

// Mode is the interaction state the client is in. Exactly one mode is active
// at a time.
type Mode int

const (
	// ModeNormal is graph navigation.
	ModeNormal Mode = iota
	// ModeLoading blocks input while a full load or mutation runs.
	ModeLoading
	// ModeNoRepo shows the "no repository" screen.
	ModeNoRepo
	// ModeDiff gives scroll focus to the diff panel.
	ModeDiff
	// ModePalette is the command palette.
	ModePalette
	// ModeInput is a text prompt; the purpose field says what for.
	ModeInput
	// ModeSquashSelect picks squash sources in the graph.
	ModeSquashSelect
	// ModeRebaseSelect picks a rebase destination in the graph.
	ModeRebaseSelect
	// ModeContextMenu shows per-commit actions.
	ModeContextMenu
	// ModeQuickFilter shows preset and recent revset filters.
	ModeQuickFilter
	// ModeThemeSelect shows the theme picker.
	ModeThemeSelect
	// ModeHelp shows the keybinding help screen.
	ModeHelp
	// ModeEvolog shows a commit's evolution log.
	ModeEvolog
	// ModeOpLog shows the repository operation log.
	ModeOpLog
	// ModeBookmarkPick chooses among multiple bookmarks on one commit.
	ModeBookmarkPick
)

// InputPurpose says what the text prompt's submission does.
type InputPurpose int

const (
	InputNone InputPurpose = iota
	// InputDescribe edits the highlighted commit's description.
	InputDescribe
	// InputCommitMessage finalizes the working copy.
	InputCommitMessage
	// InputBookmark names a bookmark for the highlighted commit.
	InputBookmark
	// InputFilter enters a revset filter.
	InputFilter
)

// Severity classifies an error record for display.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// ErrorRecord is a user-visible failure with recovery hints.
type ErrorRecord struct {
	Message     string
	Severity    Severity
	Suggestions []string
	At          time.Time
}

// ListOverlay is the shared shape of highlighted list popups (context menu,
// quick filter, theme picker).
type ListOverlay struct {
	Entries  []string
	Selected int
}

// Move shifts the highlight by delta, wrapping at both ends.
func (l *ListOverlay) Move(delta int) {
	if len(l.Entries) == 0 {
		return
	}
	n := len(l.Entries)
	l.Selected = ((l.Selected+delta)%n + n) % n
}

// Current returns the highlighted entry, or "" when the list is empty.
func (l *ListOverlay) Current() string {
	if l.Selected < 0 || l.Selected >= len(l.Entries) {
		return ""
	}
	return l.Entries[l.Selected]
}

// PaletteState is the command palette's query and results.
type PaletteState struct {
	Query    string
	Matches  []PaletteEntry
	Selected int
}

// TextOverlay is scrollable read-only text (help, evolog, op log).
type TextOverlay struct {
	Title  string
	Text   string
	Offset int
}

// StatusMessage is a transient message in the status bar.
type StatusMessage struct {
	Text    string
	Expires time.Time
}

// State is the complete client state. The reducer is the only writer.
type State struct {
	Mode Mode

	// repository
	Repo domain.RepoStatus
	// Rows is the loaded graph; CalculateGraphLayout fills each row's
	// Visual before display.
	Rows []domain.GraphRow
	// Filter is the active revset; empty means the default view.
	Filter        string
	RecentFilters []string
	// GraphComplete is set once a page comes back short.
	GraphComplete bool

	// selection
	Selected int
	// Marked is the multi-select set, in toggle order.
	Marked []domain.CommitId

	// diff panel
	DiffFor    domain.CommitId
	DiffText   string
	DiffOffset int
	// FileSel indexes the highlighted row's changed files, -1 when no file
	// is sub-selected.
	FileSel int

	// overlays
	Input         string
	InputFor      InputPurpose
	Palette       PaletteState
	Menu          ListOverlay
	TextView      TextOverlay
	PendingEvoFor domain.CommitId
	// PendingSources holds squash or rebase sources while picking in the
	// graph.
	PendingSources []domain.CommitId
	// BookmarkOp is "push" or "delete" while ModeBookmarkPick is open.
	BookmarkOp string
	// Theme is the active theme preset name.
	Theme string
	// BatchPending guards against overlapping incremental graph loads.
	BatchPending bool

	// mutation bookkeeping
	// ActiveTasks maps task ids to their progress messages.
	ActiveTasks map[string]string
	LastError   *ErrorRecord
	Status      StatusMessage

	// terminal
	Width   int
	Height  int
	Spinner int
}

// NewState returns the initial state before the first load completes.
func NewState() State {
	return State{
		Mode:        ModeLoading,
		FileSel:     -1,
		ActiveTasks: map[string]string{},
	}
}

// SelectedRow returns the highlighted graph row, or nil when the graph is
// empty.
func (s *State) SelectedRow() *domain.GraphRow {
	if s.Selected < 0 || s.Selected >= len(s.Rows) {
		return nil
	}
	return &s.Rows[s.Selected]
}

// TargetIDs returns the commits an operation applies to: the multi-select
// set when non-empty, otherwise the highlighted commit.
func (s *State) TargetIDs() []domain.CommitId {
	if len(s.Marked) > 0 {
		out := make([]domain.CommitId, len(s.Marked))
		copy(out, s.Marked)
		return out
	}
	if row := s.SelectedRow(); row != nil {
		return []domain.CommitId{row.CommitID}
	}
	return nil
}

// IsMarked reports whether the commit is in the multi-select set.
func (s *State) IsMarked(id domain.CommitId) bool {
	for _, m := range s.Marked {
		if m == id {
			return true
		}
	}
	return false
}

// indexOf returns the row index of a commit, or -1.
func (s *State) indexOf(id domain.CommitId) int {
	for i := range s.Rows {
		if s.Rows[i].CommitID == id {
			return i
		}
	}
	return -1
}

// setError records a failure and attaches recovery suggestions.
func (s *State) setError(msg string, sev Severity) {
	s.LastError = &ErrorRecord{
		Message:     msg,
		Severity:    sev,
		Suggestions: SuggestRecovery(msg),
		At:          time.Now(),
	}
}

// setStatus shows a transient status bar message.
func (s *State) setStatus(text string, now time.Time) {
	s.Status = StatusMessage{Text: text, Expires: now.Add(statusTTL)}
}

// statusTTL is how long transient status messages stay visible.
const statusTTL = 5 * time.Second

// resetOverlay clears overlay state when returning to normal mode.
func (s *State) resetOverlay() {
	s.Input = ""
	s.InputFor = InputNone
	s.Palette = PaletteState{}
	s.Menu = ListOverlay{}
	s.TextView = TextOverlay{}
	s.PendingEvoFor = ""
	s.PendingSources = nil
	s.BookmarkOp = ""
}
