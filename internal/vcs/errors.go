package vcs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zjrosen/jig/internal/domain"
)

// ErrNoRepo is returned when no repository can be found at or above the
// working directory.
var ErrNoRepo = errors.New("no repository found")

// StaleRefError reports that a commit id is no longer present in the
// repository index, usually because a concurrent operation rewrote it. It
// implies the in-memory graph is out of date and a reload is advisable.
type StaleRefError struct {
	ID domain.CommitId
}

func (e *StaleRefError) Error() string {
	return fmt.Sprintf("commit %s is no longer valid (rewritten or abandoned); reload the graph", e.ID)
}

// IsStaleRef reports whether err (anywhere in its chain) is a StaleRefError.
func IsStaleRef(err error) bool {
	var stale *StaleRefError
	return errors.As(err, &stale)
}

// staleMarkers are fragments jj prints when a revision id cannot be resolved
// against the current index.
var staleMarkers = []string{
	"doesn't exist",
	"no such revision",
	"is hidden",
	"not found in the repo",
}

// Classify wraps a backend failure, upgrading it to a StaleRefError when the
// message indicates the subject revision has been rewritten out from under us.
func Classify(id domain.CommitId, stderr string, err error) error {
	lower := strings.ToLower(stderr)
	for _, marker := range staleMarkers {
		if strings.Contains(lower, marker) {
			return &StaleRefError{ID: id}
		}
	}
	if stderr != "" {
		return fmt.Errorf("%s: %w", strings.TrimSpace(stderr), err)
	}
	return err
}
