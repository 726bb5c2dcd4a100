// Package jj implements the vcs.Facade by shelling out to the jj binary.
package jj

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sync/semaphore"

	"github.com/zjrosen/jig/internal/domain"
	"github.com/zjrosen/jig/internal/log"
	"github.com/zjrosen/jig/internal/vcs"
)

// DefaultDiffPermits bounds how many file contents are read concurrently
// while building diffs.
const DefaultDiffPermits = 4

// Adapter runs jj commands rooted at a workspace directory.
type Adapter struct {
	root     string
	bin      string
	diffSem  *semaphore.Weighted
	pageSize int
}

var _ vcs.Facade = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithBinary overrides the jj executable name or path.
func WithBinary(bin string) Option { return func(a *Adapter) { a.bin = bin } }

// WithDiffPermits sets the size of the per-file diff permit pool.
func WithDiffPermits(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.diffSem = semaphore.NewWeighted(int64(n))
		}
	}
}

// New locates the workspace root starting from dir. It returns vcs.ErrNoRepo
// when dir is not inside a jj workspace.
func New(dir string, opts ...Option) (*Adapter, error) {
	a := &Adapter{
		bin:     "jj",
		diffSem: semaphore.NewWeighted(DefaultDiffPermits),
	}
	for _, opt := range opts {
		opt(a)
	}

	out, stderr, err := a.runIn(context.Background(), dir, "workspace", "root")
	if err != nil {
		if strings.Contains(strings.ToLower(stderr), "no jj repo") ||
			strings.Contains(strings.ToLower(stderr), "there is no jj repo") {
			return nil, vcs.ErrNoRepo
		}
		return nil, fmt.Errorf("locating workspace root: %w", vcs.Classify("", stderr, err))
	}
	a.root = strings.TrimSpace(out)
	log.Info(log.CatVCS, "workspace located", "root", a.root)
	return a, nil
}

// NewDetached binds an adapter to a directory without requiring a repository
// there. It serves the no-repo screen, where only InitRepo is useful.
func NewDetached(dir string, opts ...Option) *Adapter {
	a := &Adapter{
		bin:     "jj",
		root:    dir,
		diffSem: semaphore.NewWeighted(DefaultDiffPermits),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WorkspaceRoot returns the absolute path of the workspace.
func (a *Adapter) WorkspaceRoot() string { return a.root }

// IsValid reports whether the workspace still answers basic queries.
func (a *Adapter) IsValid() bool {
	_, _, err := a.run(context.Background(), "workspace", "root")
	return err == nil
}

// run executes jj in the workspace root and returns stdout and stderr.
func (a *Adapter) run(ctx context.Context, args ...string) (string, string, error) {
	return a.runIn(ctx, a.root, args...)
}

func (a *Adapter) runIn(ctx context.Context, dir string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, a.bin, args...) //nolint:gosec // G204: args are built from typed operations, never raw user text
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		log.Debug(log.CatVCS, "jj command failed", "args", args, "stderr", stderr.String())
	}
	return stdout.String(), stderr.String(), err
}

// mutate runs a mutating jj command against a subject revision, classifying
// stale-reference failures.
func (a *Adapter) mutate(ctx context.Context, subject domain.CommitId, args ...string) error {
	_, stderr, err := a.run(ctx, args...)
	if err != nil {
		return vcs.Classify(subject, stderr, err)
	}
	return nil
}

func (a *Adapter) DescribeRevision(ctx context.Context, id domain.CommitId, message string) error {
	return a.mutate(ctx, id, "describe", "-r", id.String(), "-m", message)
}

func (a *Adapter) Commit(ctx context.Context, message string) error {
	return a.mutate(ctx, "", "commit", "-m", message)
}

func (a *Adapter) Snapshot(ctx context.Context) (string, error) {
	// `jj status` forces a working copy snapshot as a side effect.
	out, stderr, err := a.run(ctx, "status")
	if err != nil {
		return "", vcs.Classify("", stderr, err)
	}
	if line, _, ok := strings.Cut(out, "\n"); ok && line != "" {
		return "Snapshot created: " + line, nil
	}
	return "Snapshot created", nil
}

func (a *Adapter) Edit(ctx context.Context, id domain.CommitId) error {
	return a.mutate(ctx, id, "edit", id.String())
}

func (a *Adapter) Squash(ctx context.Context, ids []domain.CommitId) error {
	args := []string{"squash"}
	for _, id := range ids {
		args = append(args, "-r", id.String())
	}
	return a.mutate(ctx, first(ids), args...)
}

func (a *Adapter) NewChild(ctx context.Context, id domain.CommitId) error {
	return a.mutate(ctx, id, "new", id.String())
}

func (a *Adapter) Abandon(ctx context.Context, ids []domain.CommitId) error {
	args := append([]string{"abandon"}, idsToArgs(ids)...)
	return a.mutate(ctx, first(ids), args...)
}

func (a *Adapter) Revert(ctx context.Context, ids []domain.CommitId) error {
	args := []string{"revert", "-d", "@"}
	for _, id := range ids {
		args = append(args, "-r", id.String())
	}
	return a.mutate(ctx, first(ids), args...)
}

func (a *Adapter) Absorb(ctx context.Context) error {
	return a.mutate(ctx, "", "absorb")
}

func (a *Adapter) Duplicate(ctx context.Context, ids []domain.CommitId) error {
	args := append([]string{"duplicate"}, idsToArgs(ids)...)
	return a.mutate(ctx, first(ids), args...)
}

func (a *Adapter) Parallelize(ctx context.Context, ids []domain.CommitId) error {
	args := append([]string{"parallelize"}, idsToArgs(ids)...)
	return a.mutate(ctx, first(ids), args...)
}

func (a *Adapter) Rebase(ctx context.Context, sources []domain.CommitId, destination domain.CommitId) error {
	args := []string{"rebase"}
	for _, id := range sources {
		args = append(args, "-r", id.String())
	}
	args = append(args, "-d", destination.String())
	return a.mutate(ctx, destination, args...)
}

func (a *Adapter) SetBookmark(ctx context.Context, id domain.CommitId, name string) error {
	return a.mutate(ctx, id, "bookmark", "set", name, "-r", id.String())
}

func (a *Adapter) DeleteBookmark(ctx context.Context, name string) error {
	return a.mutate(ctx, "", "bookmark", "delete", name)
}

func (a *Adapter) Undo(ctx context.Context) error {
	return a.mutate(ctx, "", "undo")
}

func (a *Adapter) Redo(ctx context.Context) error {
	return a.mutate(ctx, "", "op", "restore", "@+")
}

func (a *Adapter) Fetch(ctx context.Context) error {
	return a.mutate(ctx, "", "git", "fetch")
}

func (a *Adapter) Push(ctx context.Context, bookmark string) error {
	args := []string{"git", "push"}
	if bookmark != "" {
		args = append(args, "--bookmark", bookmark)
	} else {
		args = append(args, "--all")
	}
	return a.mutate(ctx, "", args...)
}

func (a *Adapter) InitRepo(ctx context.Context) error {
	return a.mutate(ctx, "", "git", "init")
}

func (a *Adapter) Evolog(ctx context.Context, id domain.CommitId) (string, error) {
	out, stderr, err := a.run(ctx, "evolog", "-r", id.String())
	if err != nil {
		return "", vcs.Classify(id, stderr, err)
	}
	return out, nil
}

func (a *Adapter) OperationLog(ctx context.Context) (string, error) {
	out, stderr, err := a.run(ctx, "op", "log")
	if err != nil {
		return "", vcs.Classify("", stderr, err)
	}
	return out, nil
}

func idsToArgs(ids []domain.CommitId) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func first(ids []domain.CommitId) domain.CommitId {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
