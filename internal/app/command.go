package app

import "github.com/zjrosen/jig/internal/domain"

// Command is a closed set of side effects the reducer may request. The
// runtime executes each on its own goroutine and reports back with actions.
type Command interface{ isCommand() }

// --- reads ---

// LoadRepo performs a full repository load: status plus the first graph
// page, filtered by the revset when non-empty.
type LoadRepo struct{ Revset string }

// LoadGraphBatch fetches the next page of graph rows below the given heads.
type LoadGraphBatch struct{ Heads []domain.CommitId }

// LoadDiff fetches the diff text for a commit.
type LoadDiff struct{ ID domain.CommitId }

// LoadEvolog fetches the evolution log of a commit.
type LoadEvolog struct{ ID domain.CommitId }

// LoadOperationLog fetches the repository operation log.
type LoadOperationLog struct{}

// ReloadBackground reloads the repository without entering loading mode.
type ReloadBackground struct{ Revset string }

// --- mutations ---

// Describe sets a commit's description.
type Describe struct {
	ID      domain.CommitId
	Message string
}

// CommitWorkingCopy finalizes the working copy with a message.
type CommitWorkingCopy struct{ Message string }

// Snapshot records working copy changes into the current commit.
type Snapshot struct{}

// Edit makes a commit the working copy.
type Edit struct{ ID domain.CommitId }

// NewChild creates an empty commit on top of the given parent.
type NewChild struct{ Parent domain.CommitId }

// Abandon removes commits, rebasing descendants onto their parents.
type Abandon struct{ IDs []domain.CommitId }

// Squash folds the sources into their parent.
type Squash struct{ Sources []domain.CommitId }

// Rebase moves the sources onto the destination.
type Rebase struct {
	Sources     []domain.CommitId
	Destination domain.CommitId
}

// Revert creates commits undoing the given ones on the working copy.
type Revert struct{ IDs []domain.CommitId }

// Absorb distributes working copy hunks into mutable ancestors.
type Absorb struct{}

// Duplicate copies the given commits.
type Duplicate struct{ IDs []domain.CommitId }

// Parallelize makes the given commits siblings of one another.
type Parallelize struct{ IDs []domain.CommitId }

// SetBookmark points a bookmark at a commit, creating it if needed.
type SetBookmark struct {
	ID   domain.CommitId
	Name string
}

// DeleteBookmark removes a bookmark.
type DeleteBookmark struct{ Name string }

// Undo reverts the last repository operation.
type Undo struct{}

// Redo restores the operation undone last.
type Redo struct{}

// Fetch pulls from the default remote.
type Fetch struct{}

// Push publishes a bookmark, or all bookmarks when Bookmark is empty.
type Push struct{ Bookmark string }

// InitRepo initializes a repository in the working directory.
type InitRepo struct{}

func (LoadRepo) isCommand()          {}
func (LoadGraphBatch) isCommand()    {}
func (LoadDiff) isCommand()          {}
func (LoadEvolog) isCommand()        {}
func (LoadOperationLog) isCommand()  {}
func (ReloadBackground) isCommand()  {}
func (Describe) isCommand()          {}
func (CommitWorkingCopy) isCommand() {}
func (Snapshot) isCommand()          {}
func (Edit) isCommand()              {}
func (NewChild) isCommand()          {}
func (Abandon) isCommand()           {}
func (Squash) isCommand()            {}
func (Rebase) isCommand()            {}
func (Revert) isCommand()            {}
func (Absorb) isCommand()            {}
func (Duplicate) isCommand()         {}
func (Parallelize) isCommand()       {}
func (SetBookmark) isCommand()       {}
func (DeleteBookmark) isCommand()    {}
func (Undo) isCommand()              {}
func (Redo) isCommand()              {}
func (Fetch) isCommand()             {}
func (Push) isCommand()              {}
func (InitRepo) isCommand()          {}
