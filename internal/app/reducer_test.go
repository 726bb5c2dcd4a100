package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/jig/internal/domain"
)

type fakeCache map[domain.CommitId]string

func (f fakeCache) Get(id domain.CommitId) (string, bool) {
	text, ok := f[id]
	return text, ok
}

// rowID yields "a0000000", "b0000000", ... unique for any index.
func rowID(i int) domain.CommitId {
	return domain.CommitId(fmt.Sprintf("%c%03d0000", 'a'+i%26, i/26))
}

func testRows(n int) []domain.GraphRow {
	rows := make([]domain.GraphRow, n)
	for i := 0; i < n; i++ {
		id := rowID(i)
		rows[i] = domain.GraphRow{
			CommitID:      id,
			CommitIDShort: string(id)[:4],
			Description:   "change " + string(id),
			Parents:       []domain.CommitId{rowID(i + 1)},
		}
	}
	rows[0].IsWorkingCopy = true
	return rows
}

func loadedState(t *testing.T, r *Reducer, n int) *State {
	t.Helper()
	s := NewState()
	rows := testRows(n)
	cmds := r.Reduce(&s, RepoLoaded{
		Status: domain.RepoStatus{WorkingCopyID: rows[0].CommitID},
		Rows:   rows,
	})
	require.Equal(t, ModeNormal, s.Mode)
	_ = cmds
	return &s
}

func TestSelectionWrapsAround(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 3)

	r.Reduce(s, MoveUp{})
	assert.Equal(t, 2, s.Selected, "moving up from the top wraps to the bottom")

	r.Reduce(s, MoveDown{})
	assert.Equal(t, 0, s.Selected, "moving down from the bottom wraps to the top")
}

func TestSelectionOnEmptyGraph(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := NewState()
	r.Reduce(&s, RepoLoaded{Status: domain.RepoStatus{WorkingCopyID: "x"}})

	assert.Empty(t, r.Reduce(&s, MoveDown{}))
	assert.Empty(t, r.Reduce(&s, MoveUp{}))
	assert.Equal(t, 0, s.Selected)
	assert.Nil(t, s.SelectedRow())
}

func TestSelectionCachedDiffEmitsNoCommand(t *testing.T) {
	cache := fakeCache{"b0000000": "cached diff"}
	r := NewReducer(cache, 100)
	s := loadedState(t, r, 3)

	cmds := r.Reduce(s, MoveDown{})
	assert.Empty(t, cmds)
	assert.Equal(t, "cached diff", s.DiffText)
	assert.Equal(t, domain.CommitId("b0000000"), s.DiffFor)
}

func TestSelectionMissEmitsLoadDiff(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 3)

	cmds := r.Reduce(s, MoveDown{})
	require.Len(t, cmds, 1)
	assert.Equal(t, LoadDiff{ID: "b0000000"}, cmds[0])
	assert.Equal(t, "Loading diff...", s.DiffText)
}

func TestStaleDiffResultIgnored(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 3)
	r.Reduce(s, MoveDown{}) // now waiting on b0000000

	r.Reduce(s, DiffLoaded{ID: "a0000000", Text: "old diff"})
	assert.Equal(t, "Loading diff...", s.DiffText)

	r.Reduce(s, DiffLoaded{ID: "b0000000", Text: "fresh diff"})
	assert.Equal(t, "fresh diff", s.DiffText)
}

func TestCommitGuardedByConflicts(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)

	t.Run("conflicted file entry", func(t *testing.T) {
		s := loadedState(t, r, 2)
		s.Rows[0].ChangedFiles = []domain.FileChange{
			{Path: "a.go", Status: domain.FileConflicted},
		}

		cmds := r.Reduce(s, CommitIntent{})
		assert.Empty(t, cmds)
		assert.Equal(t, ModeNormal, s.Mode)
		require.NotNil(t, s.LastError)
		assert.Contains(t, s.LastError.Message, "conflicts")
	})

	t.Run("row-level conflict flag", func(t *testing.T) {
		s := loadedState(t, r, 2)
		s.Rows[0].HasConflict = true

		assert.Empty(t, r.Reduce(s, CommitIntent{}))
		assert.Equal(t, ModeNormal, s.Mode)
		require.NotNil(t, s.LastError)
	})
}

func TestCommitOpensInputThenRuns(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 2)

	r.Reduce(s, CommitIntent{})
	require.Equal(t, ModeInput, s.Mode)
	assert.Equal(t, InputCommitMessage, s.InputFor)

	r.Reduce(s, InputChanged{Text: "fix the parser"})
	cmds := r.Reduce(s, ConfirmInput{})
	require.Len(t, cmds, 1)
	assert.Equal(t, CommitWorkingCopy{Message: "fix the parser"}, cmds[0])
	assert.Equal(t, ModeNormal, s.Mode)
}

func TestDescribePrefillsCurrentMessage(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 2)

	r.Reduce(s, DescribeIntent{})
	require.Equal(t, ModeInput, s.Mode)
	assert.Equal(t, "change a0000000", s.Input)
}

func TestCommitPrefillsWorkingCopyDescription(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 3)
	r.Reduce(s, MoveDown{}) // highlight a row that is not the working copy

	r.Reduce(s, CommitIntent{})
	require.Equal(t, ModeInput, s.Mode)
	assert.Equal(t, "change a0000000", s.Input,
		"the working copy's description is prefilled, not the selected row's")
}

func TestSquashWithMarkedCommits(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 4)

	r.Reduce(s, ToggleSelect{})
	r.Reduce(s, MoveDown{})
	r.Reduce(s, ToggleSelect{})

	cmds := r.Reduce(s, SquashIntent{})
	require.Len(t, cmds, 1)
	assert.Equal(t, Squash{Sources: []domain.CommitId{"a0000000", "b0000000"}}, cmds[0])
	assert.Empty(t, s.Marked, "multi-select is cleared optimistically")
}

func TestSquashWithoutMarksEntersSelect(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 3)

	assert.Empty(t, r.Reduce(s, SquashIntent{}))
	assert.Equal(t, ModeSquashSelect, s.Mode)

	r.Reduce(s, MoveDown{})
	cmds := r.Reduce(s, ConfirmInput{})
	require.Len(t, cmds, 1)
	assert.Equal(t, Squash{Sources: []domain.CommitId{"b0000000"}}, cmds[0])
	assert.Equal(t, ModeNormal, s.Mode)
}

func TestRebaseSelectFlow(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 3)

	r.Reduce(s, RebaseIntent{})
	require.Equal(t, ModeRebaseSelect, s.Mode)
	assert.Equal(t, []domain.CommitId{"a0000000"}, s.PendingSources)

	r.Reduce(s, MoveDown{})
	r.Reduce(s, MoveDown{})
	cmds := r.Reduce(s, ConfirmInput{})
	require.Len(t, cmds, 1)
	assert.Equal(t, Rebase{
		Sources:     []domain.CommitId{"a0000000"},
		Destination: "c0000000",
	}, cmds[0])
}

func TestRebaseOntoItselfRejected(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 3)

	r.Reduce(s, RebaseIntent{})
	cmds := r.Reduce(s, ConfirmInput{}) // destination still the source row
	assert.Empty(t, cmds)
	require.NotNil(t, s.LastError)
	assert.Contains(t, s.LastError.Message, "itself")
}

func TestApplyFilterRemembersRecent(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 2)

	cmds := r.Reduce(s, ApplyFilter{Revset: "  mine()  "})
	require.Len(t, cmds, 1)
	assert.Equal(t, LoadRepo{Revset: "mine()"}, cmds[0])
	assert.Equal(t, "mine()", s.Filter)
	assert.Equal(t, []string{"mine()"}, s.RecentFilters)
	assert.Equal(t, ModeLoading, s.Mode)
}

func TestClearFilterAlwaysReloads(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 2)
	require.Empty(t, s.Filter)

	cmds := r.Reduce(s, ApplyFilter{Revset: "   "})
	require.Len(t, cmds, 1, "a blank filter still reloads the repository")
	assert.Equal(t, LoadRepo{}, cmds[0])
	assert.Equal(t, ModeLoading, s.Mode)
	assert.Empty(t, s.RecentFilters, "blank filters are not remembered")
}

func TestRecentFiltersCappedWithDupsFirst(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 2)

	filters := []string{
		"f0()", "f1()", "f2()", "f3()", "f4()", "f5()",
		"f6()", "f7()", "f8()", "f9()", "f10()",
	}
	for _, f := range filters {
		r.Reduce(s, ApplyFilter{Revset: f})
		s.Mode = ModeNormal
	}
	assert.Len(t, s.RecentFilters, 10)
	assert.Equal(t, "f10()", s.RecentFilters[0])
	assert.NotContains(t, s.RecentFilters, "f0()")

	r.Reduce(s, ApplyFilter{Revset: "f5()"})
	assert.Equal(t, "f5()", s.RecentFilters[0])
	assert.Len(t, s.RecentFilters, 10)
}

func TestRevsetErrorClearsFilterAndReloads(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 2)
	s.Filter = "bogus(("

	cmds := r.Reduce(s, ErrorOccurred{Message: "failed to parse revset: syntax error"})
	require.Len(t, cmds, 1)
	assert.Equal(t, LoadRepo{}, cmds[0])
	assert.Empty(t, s.Filter)
	require.NotNil(t, s.LastError)
}

func TestOperationLifecycle(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	r.Now = func() time.Time { return time.Unix(1000, 0) }
	s := loadedState(t, r, 2)

	r.Reduce(s, OperationStarted{TaskID: "t1", Message: "Snapshotting..."})
	assert.Equal(t, ModeLoading, s.Mode)
	assert.Equal(t, "Snapshotting...", s.ActiveTasks["t1"])

	cmds := r.Reduce(s, OperationCompleted{TaskID: "t1", Message: "Snapshot recorded"})
	require.Len(t, cmds, 1)
	assert.Equal(t, ReloadBackground{}, cmds[0])
	assert.Equal(t, ModeNormal, s.Mode)
	assert.Empty(t, s.ActiveTasks)
	assert.Equal(t, "Snapshot recorded", s.Status.Text)
	assert.Empty(t, s.DiffText, "diff panel is dropped after a mutation")
}

func TestOperationFailureRecordsError(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 2)

	r.Reduce(s, OperationStarted{TaskID: "t1", Message: "Snapshotting..."})
	cmds := r.Reduce(s, OperationCompleted{TaskID: "t1", Err: "Error: Snapshot failed"})
	require.Len(t, cmds, 1)
	assert.Equal(t, ReloadBackground{}, cmds[0])
	assert.Equal(t, ModeNormal, s.Mode)
	require.NotNil(t, s.LastError)
	assert.Equal(t, "Error: Snapshot failed", s.LastError.Message)
}

func TestOperationFailureWithoutRepo(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := NewState()

	r.Reduce(&s, OperationStarted{TaskID: "t1", Message: "Initializing repository..."})
	cmds := r.Reduce(&s, OperationCompleted{TaskID: "t1", Err: "Error: init failed"})
	assert.Empty(t, cmds, "no reload without a repository")
	assert.Equal(t, ModeNoRepo, s.Mode)
}

func TestOverlappingOperationsWaitForAll(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 2)

	r.Reduce(s, OperationStarted{TaskID: "t1", Message: "Fetching..."})
	r.Reduce(s, OperationStarted{TaskID: "t2", Message: "Pushing..."})
	r.Reduce(s, OperationCompleted{TaskID: "t1", Message: "Fetch complete"})
	assert.Equal(t, ModeLoading, s.Mode, "still one task in flight")

	r.Reduce(s, OperationCompleted{TaskID: "t2", Message: "Push complete"})
	assert.Equal(t, ModeNormal, s.Mode)
}

func TestBackgroundReloadPreservesSelection(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 4)
	s.Selected = 2 // c0000000

	reordered := []domain.GraphRow{
		{CommitID: "z9999999"},
		{CommitID: "c0000000"},
		{CommitID: "a0000000"},
	}
	r.Reduce(s, RepoReloadedBackground{Rows: reordered})
	assert.Equal(t, 1, s.Selected, "selection follows the commit id")
}

func TestBackgroundReloadClampsWhenCommitGone(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 4)
	s.Selected = 3

	r.Reduce(s, RepoReloadedBackground{Rows: testRows(2)})
	assert.Equal(t, 1, s.Selected)
}

func TestTickLoadsMoreNearEnd(t *testing.T) {
	r := NewReducer(fakeCache{}, 30)
	s := loadedState(t, r, 30)
	require.False(t, s.GraphComplete)
	s.Selected = 15 // 15 rows from the end, within the threshold

	cmds := r.Reduce(s, Tick{})
	require.Len(t, cmds, 1)
	batch, ok := cmds[0].(LoadGraphBatch)
	require.True(t, ok)
	assert.NotEmpty(t, batch.Heads)
	assert.True(t, s.BatchPending)

	assert.Empty(t, r.Reduce(s, Tick{}), "no second batch while one is pending")
}

func TestBatchFailureAllowsRetry(t *testing.T) {
	r := NewReducer(fakeCache{}, 30)
	s := loadedState(t, r, 30)
	s.Selected = 15

	require.Len(t, r.Reduce(s, Tick{}), 1)
	require.True(t, s.BatchPending)

	r.Reduce(s, ErrorOccurred{Message: "jj process exited"})
	assert.False(t, s.BatchPending, "a failed batch releases the guard")
	assert.False(t, s.GraphComplete, "a failed batch does not end the graph")

	s.Mode = ModeNormal
	assert.Len(t, r.Reduce(s, Tick{}), 1, "the next tick retries the batch")
}

func TestTickFarFromEndLoadsNothing(t *testing.T) {
	r := NewReducer(fakeCache{}, 30)
	s := loadedState(t, r, 30)
	s.Selected = 0

	assert.Empty(t, r.Reduce(s, Tick{}))
}

func TestGraphBatchAppendsAndDedupes(t *testing.T) {
	r := NewReducer(fakeCache{}, 3)
	s := loadedState(t, r, 3)
	s.GraphComplete = false

	r.Reduce(s, GraphBatchLoaded{Rows: []domain.GraphRow{
		{CommitID: "c0000000"}, // already loaded
		{CommitID: "x1111111"},
	}})
	assert.Len(t, s.Rows, 4)
	assert.True(t, s.GraphComplete, "short batch marks the graph complete")
}

func TestEmptyBatchCompletesGraph(t *testing.T) {
	r := NewReducer(fakeCache{}, 3)
	s := loadedState(t, r, 3)
	s.GraphComplete = false
	s.BatchPending = true

	r.Reduce(s, GraphBatchLoaded{})
	assert.True(t, s.GraphComplete)
	assert.False(t, s.BatchPending)
}

func TestStatusExpiresOnTick(t *testing.T) {
	now := time.Unix(1000, 0)
	r := NewReducer(fakeCache{}, 100)
	r.Now = func() time.Time { return now }
	s := loadedState(t, r, 2)
	s.GraphComplete = true

	s.setStatus("Push complete", now)
	r.Reduce(s, Tick{})
	assert.Equal(t, "Push complete", s.Status.Text)

	now = now.Add(6 * time.Second)
	r.Reduce(s, Tick{})
	assert.Empty(t, s.Status.Text)
}

func TestNoRepoOnLoadFailure(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := NewState()

	r.Reduce(&s, RepoLoaded{Err: "no jj repo found in /tmp"})
	assert.Equal(t, ModeNoRepo, s.Mode)

	cmds := r.Reduce(&s, InitRepoIntent{})
	require.Len(t, cmds, 1)
	assert.Equal(t, InitRepo{}, cmds[0])
}

func TestPushBookmarkLogic(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)

	t.Run("no bookmarks pushes all", func(t *testing.T) {
		s := loadedState(t, r, 2)
		cmds := r.Reduce(s, PushIntent{})
		require.Len(t, cmds, 1)
		assert.Equal(t, Push{}, cmds[0])
	})

	t.Run("one bookmark pushes it", func(t *testing.T) {
		s := loadedState(t, r, 2)
		s.Rows[0].Bookmarks = []string{"main"}
		cmds := r.Reduce(s, PushIntent{})
		require.Len(t, cmds, 1)
		assert.Equal(t, Push{Bookmark: "main"}, cmds[0])
	})

	t.Run("many bookmarks open a picker", func(t *testing.T) {
		s := loadedState(t, r, 2)
		s.Rows[0].Bookmarks = []string{"main", "release"}
		assert.Empty(t, r.Reduce(s, PushIntent{}))
		assert.Equal(t, ModeBookmarkPick, s.Mode)

		r.Reduce(s, MenuMove{Delta: 1})
		cmds := r.Reduce(s, MenuConfirm{})
		require.Len(t, cmds, 1)
		assert.Equal(t, Push{Bookmark: "release"}, cmds[0])
		assert.Equal(t, ModeNormal, s.Mode)
	})

	t.Run("picker offers push all", func(t *testing.T) {
		s := loadedState(t, r, 2)
		s.Rows[0].Bookmarks = []string{"main", "release"}
		r.Reduce(s, PushIntent{})
		require.Equal(t, []string{"main", "release", "Push All"}, s.Menu.Entries)

		r.Reduce(s, MenuMove{Delta: 2})
		cmds := r.Reduce(s, MenuConfirm{})
		require.Len(t, cmds, 1)
		assert.Equal(t, Push{}, cmds[0])
	})
}

func TestEditImmutableRejected(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 2)
	s.Rows[0].IsImmutable = true

	assert.Empty(t, r.Reduce(s, EditIntent{}))
	require.NotNil(t, s.LastError)
	assert.Contains(t, s.LastError.Message, "immutable")
}

func TestCancelClearsMarksAndError(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 3)
	r.Reduce(s, ToggleSelect{})
	s.setError("boom", SeverityError)

	r.Reduce(s, Cancel{})
	assert.Empty(t, s.Marked)
	assert.Nil(t, s.LastError)
}

func TestContextMenuDispatch(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 3)

	r.Reduce(s, OpenContextMenu{})
	require.Equal(t, ModeContextMenu, s.Mode)
	require.Equal(t, contextMenuEntries, s.Menu.Entries)

	r.Reduce(s, MenuMove{Delta: 2}) // "Abandon"
	cmds := r.Reduce(s, MenuConfirm{})
	require.Len(t, cmds, 1)
	assert.Equal(t, Abandon{IDs: []domain.CommitId{"a0000000"}}, cmds[0])
}

func TestMenuSelectionWraps(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 3)

	r.Reduce(s, OpenContextMenu{})
	require.Equal(t, ModeContextMenu, s.Mode)

	r.Reduce(s, MenuMove{Delta: -1})
	assert.Equal(t, len(contextMenuEntries)-1, s.Menu.Selected,
		"moving up from the top wraps to the last entry")

	r.Reduce(s, MenuMove{Delta: 1})
	assert.Equal(t, 0, s.Menu.Selected,
		"moving down from the bottom wraps to the first entry")
}

func TestEvologFlow(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 2)

	cmds := r.Reduce(s, OpenEvolog{})
	require.Len(t, cmds, 1)
	assert.Equal(t, LoadEvolog{ID: "a0000000"}, cmds[0])
	assert.Equal(t, ModeEvolog, s.Mode)

	r.Reduce(s, EvologLoaded{ID: "a0000000", Text: "evolution here"})
	assert.Equal(t, "evolution here", s.TextView.Text)
}

func TestHunkNavigation(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 2)
	s.DiffText = "File: a.go\n@@ -1,2 +1,2 @@\n-x\n+y\n@@ -9,1 +9,1 @@\n-z\n+w"
	s.DiffOffset = 0

	r.Reduce(s, NextHunk{})
	assert.Equal(t, 1, s.DiffOffset)
	r.Reduce(s, NextHunk{})
	assert.Equal(t, 4, s.DiffOffset)
	r.Reduce(s, NextHunk{})
	assert.Equal(t, 4, s.DiffOffset, "stays put past the last hunk")
	r.Reduce(s, PrevHunk{})
	assert.Equal(t, 1, s.DiffOffset)
}

func TestFileNavigationScrollsToSection(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 2)
	s.Rows[0].ChangedFiles = []domain.FileChange{
		{Path: "a.go", Status: domain.FileModified},
		{Path: "b.go", Status: domain.FileAdded},
	}
	s.DiffText = "File: a.go\nStatus: Modified\n@@ -1 +1 @@\n-x\n+y\nFile: b.go\nStatus: Added\n@@ -0,0 +1 @@\n+z"

	r.Reduce(s, NextFile{})
	assert.Equal(t, 0, s.FileSel)
	assert.Equal(t, 0, s.DiffOffset)

	r.Reduce(s, NextFile{})
	assert.Equal(t, 1, s.FileSel)
	assert.Equal(t, 5, s.DiffOffset)

	r.Reduce(s, NextFile{})
	assert.Equal(t, 0, s.FileSel, "wraps past the last file")

	r.Reduce(s, PrevFile{})
	assert.Equal(t, 1, s.FileSel)

	r.Reduce(s, MoveDown{})
	assert.Equal(t, -1, s.FileSel, "moving selection clears the file sub-selection")
}

func TestExternalChangeTriggersBackgroundReload(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 2)
	r.Reduce(s, ApplyFilter{Revset: "mine()"})
	r.Reduce(s, RepoLoaded{Status: domain.RepoStatus{WorkingCopyID: "a0000000"}, Rows: testRows(2)})

	cmds := r.Reduce(s, ExternalChangeDetected{})
	require.Len(t, cmds, 1)
	assert.Equal(t, ReloadBackground{Revset: "mine()"}, cmds[0])
	assert.Contains(t, s.Status.Text, "Syncing")
}
