package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/jig/internal/domain"
	"github.com/zjrosen/jig/internal/log"
	"github.com/zjrosen/jig/internal/vcs"
)

// Executor runs commands from the reducer, each on its own goroutine, and
// feeds the results back as actions. It owns the diff cache.
type Executor struct {
	facade   vcs.Facade
	actions  chan Action
	diffs    *gocache.Cache
	tracer   trace.Tracer
	pageSize int
}

// NewExecutor wires the runtime to a VCS facade. pageSize controls how many
// rows one graph load fetches.
func NewExecutor(facade vcs.Facade, pageSize int) *Executor {
	return &Executor{
		facade:   facade,
		actions:  make(chan Action, 64),
		diffs:    gocache.New(gocache.NoExpiration, 0),
		tracer:   otel.Tracer("jig/runtime"),
		pageSize: pageSize,
	}
}

// Actions is the channel results arrive on.
func (e *Executor) Actions() <-chan Action { return e.actions }

// DiffCache exposes the cache to the reducer. Entries are keyed by commit id
// so rewritten commits never collide with stale text.
func (e *Executor) DiffCache() DiffCache { return diffCache{e.diffs} }

type diffCache struct{ c *gocache.Cache }

func (d diffCache) Get(id domain.CommitId) (string, bool) {
	if v, ok := d.c.Get(id.String()); ok {
		return v.(string), true
	}
	return "", false
}

// Dispatch starts one goroutine per command. Results arrive on Actions.
func (e *Executor) Dispatch(ctx context.Context, cmds ...Command) {
	for _, cmd := range cmds {
		go e.run(ctx, cmd)
	}
}

func (e *Executor) run(ctx context.Context, cmd Command) {
	name := fmt.Sprintf("%T", cmd)
	ctx, span := e.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("command", name),
	))
	defer span.End()

	switch c := cmd.(type) {
	case LoadRepo:
		e.loadRepo(ctx, c.Revset, false)

	case ReloadBackground:
		e.loadRepo(ctx, c.Revset, true)

	case LoadGraphBatch:
		status, err := e.facade.GetOperationLog(ctx, vcs.LogQuery{
			Heads: c.Heads,
			Limit: e.pageSize,
		})
		if err != nil {
			log.Warn(log.CatRuntime, "graph batch load failed", "error", err)
			e.emit(ErrorOccurred{Message: err.Error()})
			return
		}
		e.emit(GraphBatchLoaded{Rows: status.Graph})

	case LoadDiff:
		text, err := e.facade.GetCommitDiff(ctx, c.ID)
		if err != nil {
			e.emit(DiffLoaded{ID: c.ID, Text: fmt.Sprintf("Error: %s", err)})
			return
		}
		e.diffs.SetDefault(c.ID.String(), text)
		e.emit(DiffLoaded{ID: c.ID, Text: text})

	case LoadEvolog:
		text, err := e.facade.Evolog(ctx, c.ID)
		if err != nil {
			text = fmt.Sprintf("Error: %s", err)
		}
		e.emit(EvologLoaded{ID: c.ID, Text: text})

	case LoadOperationLog:
		text, err := e.facade.OperationLog(ctx)
		if err != nil {
			text = fmt.Sprintf("Error: %s", err)
		}
		e.emit(OperationLogLoaded{Text: text})

	default:
		e.mutate(ctx, cmd)
	}
}

// loadRepo performs a full load. Background reloads report over a different
// action so the reducer can preserve the selection silently.
func (e *Executor) loadRepo(ctx context.Context, revset string, background bool) {
	status, err := e.facade.GetOperationLog(ctx, vcs.LogQuery{
		Limit:  e.pageSize,
		Revset: revset,
	})
	if err != nil {
		if background {
			e.emit(ErrorOccurred{Message: err.Error()})
		} else {
			e.emit(RepoLoaded{Err: err.Error()})
		}
		return
	}
	if background {
		e.emit(RepoReloadedBackground{Status: *status, Rows: status.Graph})
	} else {
		e.emit(RepoLoaded{Status: *status, Rows: status.Graph})
	}
}

// mutate runs a state-changing command inside the Started/Completed
// envelope. A successful mutation invalidates the diff cache because any
// commit may have been rewritten.
func (e *Executor) mutate(ctx context.Context, cmd Command) {
	taskID := uuid.NewString()
	progress, done := mutationMessages(cmd)
	e.emit(OperationStarted{TaskID: taskID, Message: progress})
	log.Info(log.CatRuntime, "mutation started", "task", taskID, "command", fmt.Sprintf("%T", cmd))

	result, err := e.applyMutation(ctx, cmd)
	if err != nil {
		log.Warn(log.CatRuntime, "mutation failed", "task", taskID, "error", err)
		e.emit(OperationCompleted{TaskID: taskID, Err: fmt.Sprintf("Error: %s", err)})
		return
	}
	if result != "" {
		done = result
	}
	e.diffs.Flush()
	e.emit(OperationCompleted{TaskID: taskID, Message: done})
}

func (e *Executor) applyMutation(ctx context.Context, cmd Command) (string, error) {
	switch c := cmd.(type) {
	case Describe:
		return "", e.facade.DescribeRevision(ctx, c.ID, c.Message)
	case CommitWorkingCopy:
		return "", e.facade.Commit(ctx, c.Message)
	case Snapshot:
		return e.facade.Snapshot(ctx)
	case Edit:
		return "", e.facade.Edit(ctx, c.ID)
	case NewChild:
		return "", e.facade.NewChild(ctx, c.Parent)
	case Abandon:
		return "", e.facade.Abandon(ctx, c.IDs)
	case Squash:
		return "", e.facade.Squash(ctx, c.Sources)
	case Rebase:
		return "", e.facade.Rebase(ctx, c.Sources, c.Destination)
	case Revert:
		return "", e.facade.Revert(ctx, c.IDs)
	case Absorb:
		return "", e.facade.Absorb(ctx)
	case Duplicate:
		return "", e.facade.Duplicate(ctx, c.IDs)
	case Parallelize:
		return "", e.facade.Parallelize(ctx, c.IDs)
	case SetBookmark:
		return "", e.facade.SetBookmark(ctx, c.ID, c.Name)
	case DeleteBookmark:
		return "", e.facade.DeleteBookmark(ctx, c.Name)
	case Undo:
		return "", e.facade.Undo(ctx)
	case Redo:
		return "", e.facade.Redo(ctx)
	case Fetch:
		return "", e.facade.Fetch(ctx)
	case Push:
		return "", e.facade.Push(ctx, c.Bookmark)
	case InitRepo:
		return "", e.facade.InitRepo(ctx)
	}
	return "", fmt.Errorf("unknown command %T", cmd)
}

// mutationMessages returns the progress and default success text for a
// mutation.
func mutationMessages(cmd Command) (progress, done string) {
	switch cmd.(type) {
	case Describe:
		return "Describing...", "Description updated"
	case CommitWorkingCopy:
		return "Committing...", "Working copy committed"
	case Snapshot:
		return "Snapshotting...", "Snapshot recorded"
	case Edit:
		return "Editing...", "Working copy moved"
	case NewChild:
		return "Creating child...", "New commit created"
	case Abandon:
		return "Abandoning...", "Commits abandoned"
	case Squash:
		return "Squashing...", "Commits squashed"
	case Rebase:
		return "Rebasing...", "Commits rebased"
	case Revert:
		return "Reverting...", "Revert commits created"
	case Absorb:
		return "Absorbing...", "Changes absorbed"
	case Duplicate:
		return "Duplicating...", "Commits duplicated"
	case Parallelize:
		return "Parallelizing...", "Commits parallelized"
	case SetBookmark:
		return "Setting bookmark...", "Bookmark set"
	case DeleteBookmark:
		return "Deleting bookmark...", "Bookmark deleted"
	case Undo:
		return "Undoing...", "Operation undone"
	case Redo:
		return "Redoing...", "Operation restored"
	case Fetch:
		return "Fetching...", "Fetch complete"
	case Push:
		return "Pushing...", "Push complete"
	case InitRepo:
		return "Initializing repository...", "Repository initialized"
	}
	return "Working...", "Done"
}

func (e *Executor) emit(a Action) {
	e.actions <- a
}
