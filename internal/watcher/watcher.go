// Package watcher observes the repository's .jj directory and reports
// external changes so the graph can refresh itself.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/jig/internal/app"
	"github.com/zjrosen/jig/internal/log"
)

// debounce coalesces the event bursts a single jj operation produces.
const debounce = 500 * time.Millisecond

// Watcher reports repository changes as actions.
type Watcher struct {
	fs      *fsnotify.Watcher
	actions chan app.Action
}

// New watches the .jj directory under the workspace root. The repo layout
// keeps the operation log under .jj/repo/op_heads, which is touched by every
// operation.
func New(workspaceRoot string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	jjDir := filepath.Join(workspaceRoot, ".jj")
	if _, err := os.Stat(jjDir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("repository metadata not found: %w", err)
	}
	watched := []string{jjDir}
	opHeads := filepath.Join(jjDir, "repo", "op_heads", "heads")
	if _, err := os.Stat(opHeads); err == nil {
		watched = append(watched, opHeads)
	}
	for _, dir := range watched {
		if err := fs.Add(dir); err != nil {
			fs.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	return &Watcher{fs: fs, actions: make(chan app.Action, 1)}, nil
}

// Actions is the channel change notifications arrive on.
func (w *Watcher) Actions() <-chan app.Action { return w.actions }

// Run pumps debounced change events until the context is canceled.
func (w *Watcher) Run(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	defer w.fs.Close()
	defer close(w.actions)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug(log.CatWatch, "repository change", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatWatch, "watch error", "error", err)

		case <-fire:
			timer = nil
			fire = nil
			select {
			case w.actions <- app.ExternalChangeDetected{}:
			default:
				// a notification is already pending
			}
		}
	}
}
