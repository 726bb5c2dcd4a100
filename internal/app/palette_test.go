package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(entries []PaletteEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestSearchPaletteEmptyQueryReturnsAll(t *testing.T) {
	all := SearchPalette("")
	assert.Len(t, all, len(paletteCommands()))
}

func TestSearchPaletteNameMatchesRankFirst(t *testing.T) {
	got := names(SearchPalette("commit"))
	// "commit" matches the name directly; entries whose descriptions
	// mention commits follow in definition order.
	require.NotEmpty(t, got)
	assert.Equal(t, "commit", got[0])
	assert.Contains(t, got, "abandon") // "Abandon the selected commits"
	assert.Less(t, indexOfString(got, "commit"), indexOfString(got, "abandon"))
}

func TestSearchPaletteNoDuplicates(t *testing.T) {
	got := names(SearchPalette("bookmark"))
	seen := map[string]bool{}
	for _, n := range got {
		require.False(t, seen[n], "duplicate entry %q", n)
		seen[n] = true
	}
	// both name matches present
	assert.Contains(t, got, "bookmark set")
	assert.Contains(t, got, "bookmark delete")
}

func TestSearchPaletteCaseInsensitive(t *testing.T) {
	assert.Equal(t, names(SearchPalette("SQUASH")), names(SearchPalette("squash")))
}

func TestSearchPaletteNoMatch(t *testing.T) {
	assert.Empty(t, SearchPalette("xyzzy"))
}

func TestPaletteFlowInReducer(t *testing.T) {
	r := NewReducer(fakeCache{}, 100)
	s := loadedState(t, r, 2)

	r.Reduce(s, OpenCommandPalette{})
	require.Equal(t, ModePalette, s.Mode)
	assert.Len(t, s.Palette.Matches, len(paletteCommands()))

	r.Reduce(s, PaletteQueryChanged{Query: "undo"})
	require.NotEmpty(t, s.Palette.Matches)
	assert.Equal(t, "undo", s.Palette.Matches[0].Name)

	cmds := r.Reduce(s, PaletteConfirm{})
	require.Len(t, cmds, 1)
	assert.Equal(t, Undo{}, cmds[0])
	assert.Equal(t, ModeNormal, s.Mode)
}

func indexOfString(items []string, want string) int {
	for i, s := range items {
		if s == want {
			return i
		}
	}
	return -1
}

func TestSuggestRecovery(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"Error: commit abc is immutable", "Duplicate the commit"},
		{"working copy has conflicts", "Resolve conflicts"},
		{"cannot rewrite: dirty working copy", "Snapshot the working copy"},
		{"commit abc12345 is no longer valid (rewritten or abandoned); reload the graph", "Refresh the graph"},
		{"failed to parse revset", "revset syntax"},
		{"bookmark main not found", "Set the bookmark"},
		{"could not reach remote origin", "remote configuration"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := SuggestRecovery(tt.message)
			require.NotEmpty(t, got)
			found := false
			for _, s := range got {
				if strings.Contains(strings.ToLower(s), strings.ToLower(tt.want)) {
					found = true
				}
			}
			assert.True(t, found, "suggestions %v should mention %q", got, tt.want)
		})
	}
}

func TestSuggestRecoveryUnknown(t *testing.T) {
	assert.Empty(t, SuggestRecovery("something inexplicable"))
}
