package app

import "strings"

// recoveryHints maps failure keywords to suggested next steps. The first
// matching rows win; order matters.
var recoveryHints = []struct {
	keyword     string
	suggestions []string
}{
	{"immutable", []string{
		"Immutable commits cannot be modified",
		"Duplicate the commit and edit the copy",
	}},
	{"conflict", []string{
		"Resolve conflicts in the working copy, then snapshot",
		"Abandon the conflicted commit to discard it",
	}},
	{"dirty working copy", []string{
		"Snapshot the working copy to record pending changes",
	}},
	{"no longer valid", []string{
		"The commit was rewritten or abandoned",
		"Refresh the graph and retry",
	}},
	{"revset", []string{
		"Check the revset syntax",
		"Clear the filter to return to the default view",
	}},
	{"bookmark", []string{
		"List bookmarks with the operation log",
		"Set the bookmark before pushing",
	}},
	{"remote", []string{
		"Check the remote configuration and network",
		"Fetch first to sync remote state",
	}},
	{"permission denied", []string{
		"Check file permissions in the repository",
	}},
}

// SuggestRecovery returns next-step hints for an error message, or nil when
// no keyword matches.
func SuggestRecovery(message string) []string {
	lower := strings.ToLower(message)
	for _, h := range recoveryHints {
		if strings.Contains(lower, h.keyword) {
			return h.suggestions
		}
	}
	return nil
}

// isRevsetError reports whether a failure came from a bad revset filter.
func isRevsetError(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "revset") ||
		strings.Contains(lower, "failed to parse revset") ||
		strings.Contains(lower, "syntax error")
}
