// Package domain holds the value types shared by the state machine, the
// effect runtime and the VCS facade, plus the commit graph layout engine.
package domain

// CommitId is an opaque hexadecimal commit identifier. The core never parses
// it; it is only compared, hashed and handed back to the VCS facade.
type CommitId string

func (c CommitId) String() string { return string(c) }

// FileStatus classifies a changed file within a revision.
type FileStatus int

const (
	FileAdded FileStatus = iota
	FileModified
	FileDeleted
	FileConflicted
)

func (s FileStatus) String() string {
	switch s {
	case FileAdded:
		return "Added"
	case FileModified:
		return "Modified"
	case FileDeleted:
		return "Deleted"
	case FileConflicted:
		return "Conflicted"
	default:
		return "Unknown"
	}
}

// FileChange is one changed path in a revision.
type FileChange struct {
	Path   string
	Status FileStatus
}

// RowVisual carries the lane metadata computed by CalculateGraphLayout.
// It is written exclusively by the layout engine.
type RowVisual struct {
	Column         int
	ActiveLanes    []bool
	ConnectorLanes []bool
	ParentColumns  []int
	ParentMin      int
	ParentMax      int
}

// GraphRow is one commit's presentation record in the log view.
type GraphRow struct {
	CommitID      CommitId
	CommitIDShort string
	ChangeID      string
	ChangeIDShort string
	Description   string
	Author        string
	Timestamp     string
	TimestampSecs int64
	IsWorkingCopy bool
	IsImmutable   bool
	HasConflict   bool
	Parents       []CommitId
	Bookmarks     []string
	ChangedFiles  []FileChange
	Visual        RowVisual
}

// RepoStatus is one atomic snapshot of the repository as loaded by the VCS
// facade. Ownership transfers to the state store on arrival.
type RepoStatus struct {
	RepoName      string
	OperationID   string
	WorkspaceID   string
	WorkingCopyID CommitId
	Graph         []GraphRow
}

// WorkingCopyRow returns the row flagged as the working copy, or nil.
func (r *RepoStatus) WorkingCopyRow() *GraphRow {
	for i := range r.Graph {
		if r.Graph[i].IsWorkingCopy {
			return &r.Graph[i]
		}
	}
	return nil
}
