package jj

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/jig/internal/domain"
)

func record(fields ...string) string {
	return strings.Join(fields, fieldSep) + recordSep
}

func TestParseLog(t *testing.T) {
	out := record(
		"abc123def456", "abc123de",
		"zyxwvuts1234", "zyxwvuts",
		"add feature\nwith details", "alice",
		"2026-08-01 12:30", "1754051400",
		"1", "0", "0",
		"p1 p2",
		"main feature-x",
		"M src/main.go\nA docs/readme.md",
	)

	rows, err := parseLog(out)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, domain.CommitId("abc123def456"), row.CommitID)
	assert.Equal(t, "abc123de", row.CommitIDShort)
	assert.Equal(t, "zyxwvuts", row.ChangeIDShort)
	assert.Equal(t, "add feature\nwith details", row.Description)
	assert.Equal(t, "alice", row.Author)
	assert.Equal(t, int64(1754051400), row.TimestampSecs)
	assert.True(t, row.IsWorkingCopy)
	assert.False(t, row.IsImmutable)
	assert.False(t, row.HasConflict)
	assert.Equal(t, []domain.CommitId{"p1", "p2"}, row.Parents)
	assert.Equal(t, []string{"main", "feature-x"}, row.Bookmarks)
	require.Len(t, row.ChangedFiles, 2)
	assert.Equal(t, domain.FileModified, row.ChangedFiles[0].Status)
	assert.Equal(t, "src/main.go", row.ChangedFiles[0].Path)
	assert.Equal(t, domain.FileAdded, row.ChangedFiles[1].Status)
}

func TestParseLog_ConflictMarksFiles(t *testing.T) {
	out := record(
		"c1", "c1", "ch1", "ch1", "desc", "bob",
		"2026-08-01 12:30", "0",
		"0", "0", "1",
		"", "",
		"M conflicted.txt",
	)

	rows, err := parseLog(out)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].ChangedFiles, 1)
	assert.Equal(t, domain.FileConflicted, rows[0].ChangedFiles[0].Status)
}

func TestParseLog_Malformed(t *testing.T) {
	_, err := parseLog("too" + fieldSep + "few" + recordSep)
	assert.Error(t, err)
}

func TestParseLog_Empty(t *testing.T) {
	rows, err := parseLog("")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseSummary(t *testing.T) {
	changes := parseSummary("A new.txt\nM mod.txt\nD gone.txt\nR renamed.txt\n\nweird")
	require.Len(t, changes, 4)
	assert.Equal(t, domain.FileAdded, changes[0].Status)
	assert.Equal(t, domain.FileModified, changes[1].Status)
	assert.Equal(t, domain.FileDeleted, changes[2].Status)
	assert.Equal(t, domain.FileModified, changes[3].Status)
	assert.Equal(t, "renamed.txt", changes[3].Path)
}

func TestIsBinary(t *testing.T) {
	assert.False(t, isBinary([]byte("this is some text")))
	assert.False(t, isBinary([]byte("text with \n newlines and \t tabs")))
	assert.False(t, isBinary([]byte("🦀 unicode is fine")))
	assert.False(t, isBinary(nil))
	assert.True(t, isBinary([]byte{0, 1, 2, 3}), "null byte")
	assert.True(t, isBinary([]byte{1, 2, 3, 4, 5, 6, 7, 8, 11, 12, 14, 15}), "control characters")
}

func TestUnifiedBody(t *testing.T) {
	body, err := unifiedBody("a\nb\nc\n", "a\nB\nc\n", "f.txt")
	require.NoError(t, err)
	assert.Contains(t, body, "--- a/f.txt")
	assert.Contains(t, body, "+++ b/f.txt")
	assert.Contains(t, body, "-b")
	assert.Contains(t, body, "+B")
}

func TestHeadsRevset(t *testing.T) {
	rs := headsRevset([]domain.CommitId{"aaa", "bbb"})
	assert.Equal(t, "::aaa | ::bbb", rs)
}

func TestRepoName(t *testing.T) {
	assert.Equal(t, "myrepo", repoName("/home/user/src/myrepo"))
	assert.Equal(t, "myrepo", repoName("/home/user/src/myrepo/"))
	assert.Equal(t, "plain", repoName("plain"))
}
