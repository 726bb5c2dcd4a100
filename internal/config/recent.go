package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MaxRecentFilters caps how many revset filters are remembered.
const MaxRecentFilters = 10

type recentFile struct {
	Filters []string `yaml:"filters"`
}

// LoadRecentFilters reads the remembered revset filters from disk. A missing
// or unreadable file yields an empty list.
func LoadRecentFilters(dir string) []string {
	data, err := os.ReadFile(filepath.Join(dir, "recent_filters.yaml"))
	if err != nil {
		return nil
	}
	var f recentFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil
	}
	if len(f.Filters) > MaxRecentFilters {
		f.Filters = f.Filters[:MaxRecentFilters]
	}
	return f.Filters
}

// SaveRecentFilters persists the filter list, newest first.
func SaveRecentFilters(dir string, filters []string) error {
	if len(filters) > MaxRecentFilters {
		filters = filters[:MaxRecentFilters]
	}
	data, err := yaml.Marshal(recentFile{Filters: filters})
	if err != nil {
		return fmt.Errorf("encoding recent filters: %w", err)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "recent_filters.yaml"), data, 0o600); err != nil {
		return fmt.Errorf("writing recent filters: %w", err)
	}
	return nil
}

// RememberFilter prepends the filter to the list, dropping duplicates and
// trimming to MaxRecentFilters. Blank filters are ignored.
func RememberFilter(filters []string, filter string) []string {
	if filter == "" {
		return filters
	}
	out := make([]string, 0, len(filters)+1)
	out = append(out, filter)
	for _, f := range filters {
		if f != filter {
			out = append(out, f)
		}
	}
	if len(out) > MaxRecentFilters {
		out = out[:MaxRecentFilters]
	}
	return out
}
