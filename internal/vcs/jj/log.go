package jj

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/zjrosen/jig/internal/domain"
	"github.com/zjrosen/jig/internal/vcs"
)

// Field and record separators used in the log template. Unit/record
// separators cannot appear in descriptions or paths, so parsing stays
// unambiguous without escaping.
const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// logTemplate emits one machine-readable record per revision.
const logTemplate = `commit_id ++ "` + fieldSep + `" ++ commit_id.short(8) ++ "` + fieldSep + `" ++ change_id ++ "` + fieldSep + `" ++ change_id.short(8) ++ "` + fieldSep + `" ++ description ++ "` + fieldSep + `" ++ author.name() ++ "` + fieldSep + `" ++ committer.timestamp().format("%Y-%m-%d %H:%M") ++ "` + fieldSep + `" ++ committer.timestamp().format("%s") ++ "` + fieldSep + `" ++ if(current_working_copy, "1", "0") ++ "` + fieldSep + `" ++ if(immutable, "1", "0") ++ "` + fieldSep + `" ++ if(conflict, "1", "0") ++ "` + fieldSep + `" ++ parents.map(|p| p.commit_id()).join(" ") ++ "` + fieldSep + `" ++ local_bookmarks.join(" ") ++ "` + fieldSep + `" ++ diff.summary() ++ "` + recordSep + `"`

// GetOperationLog loads the graph snapshot for the log view.
func (a *Adapter) GetOperationLog(ctx context.Context, q vcs.LogQuery) (*domain.RepoStatus, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}

	args := []string{"log", "--no-graph", "-n", strconv.Itoa(limit), "-T", logTemplate}
	switch {
	case len(q.Heads) > 0:
		args = append(args, "-r", headsRevset(q.Heads))
	case q.Revset != "":
		args = append(args, "-r", q.Revset)
	}

	out, stderr, err := a.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("loading log: %w", vcs.Classify("", stderr, err))
	}

	rows, err := parseLog(out)
	if err != nil {
		return nil, fmt.Errorf("parsing log output: %w", err)
	}

	status := &domain.RepoStatus{
		RepoName:    repoName(a.root),
		WorkspaceID: a.workspaceID(ctx),
		OperationID: a.currentOperationID(ctx),
		Graph:       rows,
	}
	for i := range rows {
		if rows[i].IsWorkingCopy {
			status.WorkingCopyID = rows[i].CommitID
			break
		}
	}
	return status, nil
}

// headsRevset builds a revset covering the given heads and their ancestry.
func headsRevset(heads []domain.CommitId) string {
	parts := make([]string, len(heads))
	for i, h := range heads {
		parts[i] = "::" + h.String()
	}
	return strings.Join(parts, " | ")
}

func parseLog(out string) ([]domain.GraphRow, error) {
	var rows []domain.GraphRow
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimLeft(record, "\n")
		if record == "" {
			continue
		}
		fields := strings.Split(record, fieldSep)
		if len(fields) != 14 {
			return nil, fmt.Errorf("malformed log record: %d fields", len(fields))
		}

		secs, _ := strconv.ParseInt(fields[7], 10, 64)
		row := domain.GraphRow{
			CommitID:      domain.CommitId(fields[0]),
			CommitIDShort: fields[1],
			ChangeID:      fields[2],
			ChangeIDShort: fields[3],
			Description:   strings.TrimRight(fields[4], "\n"),
			Author:        fields[5],
			Timestamp:     fields[6],
			TimestampSecs: secs,
			IsWorkingCopy: fields[8] == "1",
			IsImmutable:   fields[9] == "1",
			HasConflict:   fields[10] == "1",
			Parents:       parseIds(fields[11]),
			Bookmarks:     splitNonEmpty(fields[12], " "),
			ChangedFiles:  parseSummary(fields[13]),
		}
		if row.HasConflict {
			markConflicts(row.ChangedFiles)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseIds(s string) []domain.CommitId {
	parts := splitNonEmpty(s, " ")
	ids := make([]domain.CommitId, 0, len(parts))
	for _, p := range parts {
		ids = append(ids, domain.CommitId(p))
	}
	return ids
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseSummary converts `jj diff --summary` style lines ("M path") into
// FileChange records.
func parseSummary(s string) []domain.FileChange {
	var changes []domain.FileChange
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 3 {
			continue
		}
		var status domain.FileStatus
		switch line[0] {
		case 'A':
			status = domain.FileAdded
		case 'M':
			status = domain.FileModified
		case 'D':
			status = domain.FileDeleted
		case 'C', 'R':
			// Copies and renames render as modifications here.
			status = domain.FileModified
		default:
			continue
		}
		changes = append(changes, domain.FileChange{
			Path:   strings.TrimSpace(line[1:]),
			Status: status,
		})
	}
	return changes
}

// markConflicts flags every changed file as conflicted. jj's summary output
// does not distinguish conflicted paths, so a conflicted revision marks all
// of them; the resolve flow re-checks per file.
func markConflicts(changes []domain.FileChange) {
	for i := range changes {
		changes[i].Status = domain.FileConflicted
	}
}

func (a *Adapter) workspaceID(ctx context.Context) string {
	out, _, err := a.run(ctx, "log", "--no-graph", "-r", "@", "-T", `working_copies`)
	if err != nil {
		return "default"
	}
	if ws := strings.TrimSpace(out); ws != "" {
		return strings.TrimSuffix(ws, "@")
	}
	return "default"
}

func (a *Adapter) currentOperationID(ctx context.Context) string {
	out, _, err := a.run(ctx, "op", "log", "-n", "1", "--no-graph", "-T", `id.short(12)`)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func repoName(root string) string {
	root = strings.TrimRight(root, "/")
	if idx := strings.LastIndex(root, "/"); idx >= 0 {
		return root[idx+1:]
	}
	return root
}
