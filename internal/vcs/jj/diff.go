package jj

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/zjrosen/jig/internal/domain"
	"github.com/zjrosen/jig/internal/vcs"
)

// binarySniffLen is how much of a file is inspected for binary content.
const binarySniffLen = 1024

// GetCommitDiff renders the diff of a revision against its first parent in
// the File:/Status:/unified-diff wire format.
//
// Each before/after content read holds one permit from the diff pool, so a
// burst of diff loads cannot read an unbounded number of files at once.
func (a *Adapter) GetCommitDiff(ctx context.Context, id domain.CommitId) (string, error) {
	summary, stderr, err := a.run(ctx, "diff", "--summary", "-r", id.String())
	if err != nil {
		return "", vcs.Classify(id, stderr, err)
	}

	var b strings.Builder
	for _, change := range parseSummary(summary) {
		b.WriteString("File: " + change.Path + "\n")
		b.WriteString("Status: " + change.Status.String() + "\n")

		var before, after string
		var binary bool

		if change.Status != domain.FileAdded {
			before, binary, err = a.readFileAt(ctx, id.String()+"-", change.Path)
			if err != nil {
				return "", err
			}
		}
		if !binary && change.Status != domain.FileDeleted {
			after, binary, err = a.readFileAt(ctx, id.String(), change.Path)
			if err != nil {
				return "", err
			}
		}

		if binary {
			b.WriteString("    (binary file)\n\n")
			continue
		}

		body, err := unifiedBody(before, after, change.Path)
		if err != nil {
			return "", fmt.Errorf("diffing %s: %w", change.Path, err)
		}
		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// readFileAt reads one file's content at a revision, holding a diff permit
// for the duration of the read only.
func (a *Adapter) readFileAt(ctx context.Context, rev, path string) (content string, binary bool, err error) {
	if err := a.diffSem.Acquire(ctx, 1); err != nil {
		return "", false, fmt.Errorf("acquiring diff permit: %w", err)
	}
	defer a.diffSem.Release(1)

	out, stderr, err := a.run(ctx, "file", "show", "-r", rev, path)
	if err != nil {
		// A path absent on one side of the diff reads as empty content.
		if strings.Contains(strings.ToLower(stderr), "no such path") {
			return "", false, nil
		}
		return "", false, vcs.Classify(domain.CommitId(rev), stderr, err)
	}
	if isBinary([]byte(truncate(out, binarySniffLen))) {
		return "", true, nil
	}
	return out, false, nil
}

// unifiedBody renders a unified diff with three lines of context.
func unifiedBody(before, after, path string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
}

// isBinary applies the binary heuristic: a null byte, or more than 10%
// non-whitespace control characters in the sampled prefix.
func isBinary(chunk []byte) bool {
	if len(chunk) == 0 {
		return false
	}
	nonPrintable := 0
	for _, b := range chunk {
		if b == 0 {
			return true
		}
		if (b < 32 && b != '\n' && b != '\r' && b != '\t' && b != '\v' && b != '\f') || b == 127 {
			nonPrintable++
		}
	}
	return nonPrintable*100/len(chunk) > 10
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
