// Package app holds jig's state machine: actions feed a pure reducer that
// produces the next state plus commands for the runtime to execute.
package app

import "github.com/zjrosen/jig/internal/domain"

// Action is a closed set of events the reducer understands. Key presses,
// timer ticks and asynchronous results all arrive as actions.
type Action interface{ isAction() }

// --- navigation ---

// MoveUp moves the selection one row up, wrapping at the top.
type MoveUp struct{}

// MoveDown moves the selection one row down, wrapping at the bottom.
type MoveDown struct{}

// SelectCommit jumps the selection to the given commit if present.
type SelectCommit struct{ ID domain.CommitId }

// ScrollDiff scrolls the diff panel by the given number of lines.
type ScrollDiff struct{ Lines int }

// NextHunk jumps the diff panel to the next hunk header.
type NextHunk struct{}

// PrevHunk jumps the diff panel to the previous hunk header.
type PrevHunk struct{}

// NextFile moves the file sub-selection within the highlighted commit and
// scrolls the diff panel to that file's section.
type NextFile struct{}

// PrevFile moves the file sub-selection backwards.
type PrevFile struct{}

// ToggleSelect adds or removes the highlighted commit from the multi-select
// set.
type ToggleSelect struct{}

// --- mode transitions ---

// OpenCommandPalette enters palette mode with an empty query.
type OpenCommandPalette struct{}

// OpenHelp shows the keybinding help screen.
type OpenHelp struct{}

// OpenFilterInput opens the revset filter prompt.
type OpenFilterInput struct{}

// OpenQuickFilter shows the preset and recent filter picker.
type OpenQuickFilter struct{}

// OpenContextMenu shows per-commit actions for the highlighted row.
type OpenContextMenu struct{}

// OpenThemeSelection shows the theme picker.
type OpenThemeSelection struct{}

// OpenEvolog requests the evolution log of the highlighted commit.
type OpenEvolog struct{}

// OpenOperationLog requests the repository operation log.
type OpenOperationLog struct{}

// Cancel dismisses the current overlay or returns to normal mode.
type Cancel struct{}

// InputChanged carries the current text of the active input prompt.
type InputChanged struct{ Text string }

// ConfirmInput submits the active input prompt.
type ConfirmInput struct{}

// PaletteQueryChanged carries the palette's current search query.
type PaletteQueryChanged struct{ Query string }

// PaletteMove moves the palette highlight by delta, clamped.
type PaletteMove struct{ Delta int }

// PaletteConfirm runs the highlighted palette entry.
type PaletteConfirm struct{}

// MenuMove moves the highlight of a list overlay (context menu, quick
// filter, theme picker) by delta.
type MenuMove struct{ Delta int }

// MenuConfirm activates the highlighted entry of a list overlay.
type MenuConfirm struct{}

// ScrollText scrolls a text overlay (help, evolog, op log) by delta lines.
type ScrollText struct{ Delta int }

// --- filters ---

// ApplyFilter switches the graph to the given revset. An empty revset clears
// the filter.
type ApplyFilter struct{ Revset string }

// ClearFilter removes the active revset and reloads.
type ClearFilter struct{}

// --- user intents ---

// DescribeIntent opens the description editor for the highlighted commit.
type DescribeIntent struct{}

// CommitIntent opens the commit message prompt for the working copy.
type CommitIntent struct{}

// SnapshotIntent captures working copy changes into the current commit.
type SnapshotIntent struct{}

// EditIntent makes the highlighted commit the working copy.
type EditIntent struct{}

// NewChildIntent creates a new empty commit on top of the selection.
type NewChildIntent struct{}

// AbandonIntent abandons the selected commits.
type AbandonIntent struct{}

// SquashIntent starts squash source selection, or squashes the multi-select
// set when one exists.
type SquashIntent struct{}

// RebaseIntent starts rebase destination selection.
type RebaseIntent struct{}

// RevertIntent creates commits reverting the selection onto the working copy.
type RevertIntent struct{}

// AbsorbIntent moves working copy changes into mutable ancestors.
type AbsorbIntent struct{}

// DuplicateIntent duplicates the selected commits.
type DuplicateIntent struct{}

// ParallelizeIntent makes the selected commits siblings.
type ParallelizeIntent struct{}

// SetBookmarkIntent opens the bookmark name prompt for the highlighted commit.
type SetBookmarkIntent struct{}

// DeleteBookmarkIntent deletes the highlighted commit's bookmark.
type DeleteBookmarkIntent struct{}

// UndoIntent undoes the last repository operation.
type UndoIntent struct{}

// RedoIntent restores the operation undone last.
type RedoIntent struct{}

// FetchIntent fetches from the default remote.
type FetchIntent struct{}

// PushIntent pushes bookmarks on the highlighted commit, or everything when
// it carries none.
type PushIntent struct{}

// RefreshIntent reloads the repository immediately.
type RefreshIntent struct{}

// InitRepoIntent initializes a repository in the working directory.
type InitRepoIntent struct{}

// --- asynchronous results ---

// RepoLoaded delivers a full repository load. Err is non-empty on failure.
type RepoLoaded struct {
	Status domain.RepoStatus
	Rows   []domain.GraphRow
	Err    string
}

// GraphBatchLoaded appends a further page of graph rows.
type GraphBatchLoaded struct{ Rows []domain.GraphRow }

// DiffLoaded delivers diff text for a commit. Failures arrive as text
// prefixed with "Error:".
type DiffLoaded struct {
	ID   domain.CommitId
	Text string
}

// EvologLoaded delivers the evolution log text for a commit.
type EvologLoaded struct {
	ID   domain.CommitId
	Text string
}

// OperationLogLoaded delivers the repository operation log text.
type OperationLogLoaded struct{ Text string }

// OperationStarted reports that a mutation began executing.
type OperationStarted struct {
	TaskID  string
	Message string
}

// OperationCompleted reports the outcome of a mutation. Err is empty on
// success.
type OperationCompleted struct {
	TaskID  string
	Message string
	Err     string
}

// ErrorOccurred reports a failure outside the mutation lifecycle.
type ErrorOccurred struct{ Message string }

// ExternalChangeDetected fires when the repository changed on disk.
type ExternalChangeDetected struct{}

// RepoReloadedBackground delivers a silent reload triggered by an external
// change; the selection is preserved by commit id.
type RepoReloadedBackground struct {
	Status domain.RepoStatus
	Rows   []domain.GraphRow
}

// Tick fires periodically; it drives the spinner, status expiry and
// incremental graph loading.
type Tick struct{}

// WindowResized carries the new terminal dimensions.
type WindowResized struct{ Width, Height int }

func (MoveUp) isAction()                 {}
func (MoveDown) isAction()               {}
func (SelectCommit) isAction()           {}
func (ScrollDiff) isAction()             {}
func (NextHunk) isAction()               {}
func (PrevHunk) isAction()               {}
func (NextFile) isAction()               {}
func (PrevFile) isAction()               {}
func (ToggleSelect) isAction()           {}
func (OpenCommandPalette) isAction()     {}
func (OpenHelp) isAction()               {}
func (OpenFilterInput) isAction()        {}
func (OpenQuickFilter) isAction()        {}
func (OpenContextMenu) isAction()        {}
func (OpenThemeSelection) isAction()     {}
func (OpenEvolog) isAction()             {}
func (OpenOperationLog) isAction()       {}
func (Cancel) isAction()                 {}
func (InputChanged) isAction()           {}
func (ConfirmInput) isAction()           {}
func (PaletteQueryChanged) isAction()    {}
func (PaletteMove) isAction()            {}
func (PaletteConfirm) isAction()         {}
func (MenuMove) isAction()               {}
func (MenuConfirm) isAction()            {}
func (ScrollText) isAction()             {}
func (ApplyFilter) isAction()            {}
func (ClearFilter) isAction()            {}
func (DescribeIntent) isAction()         {}
func (CommitIntent) isAction()           {}
func (SnapshotIntent) isAction()         {}
func (EditIntent) isAction()             {}
func (NewChildIntent) isAction()         {}
func (AbandonIntent) isAction()          {}
func (SquashIntent) isAction()           {}
func (RebaseIntent) isAction()           {}
func (RevertIntent) isAction()           {}
func (AbsorbIntent) isAction()           {}
func (DuplicateIntent) isAction()        {}
func (ParallelizeIntent) isAction()      {}
func (SetBookmarkIntent) isAction()      {}
func (DeleteBookmarkIntent) isAction()   {}
func (UndoIntent) isAction()             {}
func (RedoIntent) isAction()             {}
func (FetchIntent) isAction()            {}
func (PushIntent) isAction()             {}
func (RefreshIntent) isAction()          {}
func (InitRepoIntent) isAction()         {}
func (RepoLoaded) isAction()             {}
func (GraphBatchLoaded) isAction()       {}
func (DiffLoaded) isAction()             {}
func (EvologLoaded) isAction()           {}
func (OperationLogLoaded) isAction()     {}
func (OperationStarted) isAction()       {}
func (OperationCompleted) isAction()     {}
func (ErrorOccurred) isAction()          {}
func (ExternalChangeDetected) isAction() {}
func (RepoReloadedBackground) isAction() {}
func (Tick) isAction()                   {}
func (WindowResized) isAction()          {}
