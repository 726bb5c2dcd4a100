package app

import (
	"strings"

	"github.com/zjrosen/jig/internal/config"
	"github.com/zjrosen/jig/internal/log"
)

// presetFilters are the built-in revsets offered by the quick filter picker.
var presetFilters = []string{
	"all()",
	"mine()",
	"trunk()",
	"bookmarks()",
	"remote_bookmarks()",
	"ancestors(@)",
	"conflicts()",
	"empty()",
	"merges()",
	"tags()",
	"working_copies()",
	"visible_heads()",
	"immutable()",
	"mutable()",
	"divergent()",
}

// PresetFilters returns a copy of the built-in revsets.
func PresetFilters() []string {
	return append([]string(nil), presetFilters...)
}

func (r *Reducer) reduceFilter(s *State, a Action) []Command {
	switch a := a.(type) {
	case ApplyFilter:
		revset := strings.TrimSpace(a.Revset)
		if revset == "" {
			return r.reduceFilter(s, ClearFilter{})
		}
		log.Info(log.CatUI, "applying filter", "revset", revset)
		s.Filter = revset
		s.RecentFilters = config.RememberFilter(s.RecentFilters, revset)
		s.Mode = ModeLoading
		s.resetOverlay()
		return []Command{LoadRepo{Revset: s.Filter}}

	case ClearFilter:
		s.Filter = ""
		s.Mode = ModeLoading
		s.resetOverlay()
		return []Command{LoadRepo{}}
	}
	return nil
}

// quickFilterEntries lists recent filters first, then the presets not
// already among them.
func quickFilterEntries(recent []string) []string {
	out := make([]string, 0, len(recent)+len(presetFilters))
	seen := map[string]bool{}
	for _, f := range recent {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, f := range presetFilters {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
