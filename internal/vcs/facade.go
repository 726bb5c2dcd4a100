// Package vcs defines the capability interface the core uses to talk to the
// version control backend, together with the error taxonomy shared by every
// implementation. The core never invokes jj directly; it only sees Facade.
package vcs

import (
	"context"

	"github.com/zjrosen/jig/internal/domain"
)

// LogQuery selects which slice of the graph GetOperationLog returns.
type LogQuery struct {
	// Heads restricts the walk to the given commits and their ancestry.
	// Nil means the default visible heads.
	Heads []domain.CommitId
	// Limit caps the number of returned rows.
	Limit int
	// Revset is an optional filter expression, passed through verbatim.
	Revset string
}

// Facade is the abstract VCS capability set. Implementations must never
// panic; every failure resolves to an error carrying a human-readable
// message. A commit id that no longer exists in the repository index must be
// reported as a StaleRefError so callers can suggest a reload.
type Facade interface {
	// Reads
	GetOperationLog(ctx context.Context, q LogQuery) (*domain.RepoStatus, error)
	GetCommitDiff(ctx context.Context, id domain.CommitId) (string, error)
	Evolog(ctx context.Context, id domain.CommitId) (string, error)
	OperationLog(ctx context.Context) (string, error)

	// Mutations
	DescribeRevision(ctx context.Context, id domain.CommitId, message string) error
	Commit(ctx context.Context, message string) error
	Snapshot(ctx context.Context) (string, error)
	Edit(ctx context.Context, id domain.CommitId) error
	Squash(ctx context.Context, ids []domain.CommitId) error
	NewChild(ctx context.Context, id domain.CommitId) error
	Abandon(ctx context.Context, ids []domain.CommitId) error
	Revert(ctx context.Context, ids []domain.CommitId) error
	Absorb(ctx context.Context) error
	Duplicate(ctx context.Context, ids []domain.CommitId) error
	Parallelize(ctx context.Context, ids []domain.CommitId) error
	Rebase(ctx context.Context, sources []domain.CommitId, destination domain.CommitId) error
	SetBookmark(ctx context.Context, id domain.CommitId, name string) error
	DeleteBookmark(ctx context.Context, name string) error
	Undo(ctx context.Context) error
	Redo(ctx context.Context) error
	Fetch(ctx context.Context) error
	Push(ctx context.Context, bookmark string) error
	InitRepo(ctx context.Context) error

	// Environment
	WorkspaceRoot() string
	IsValid() bool
}
