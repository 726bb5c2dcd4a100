package config

// Keymap maps action names to the key that triggers them in normal mode.
// Keys use bubbletea's string form ("q", "ctrl+c", "shift+tab", "enter").
type Keymap map[string]string

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		"quit":            "q",
		"up":              "k",
		"down":            "j",
		"select":          "enter",
		"close":           "esc",
		"command_palette": ":",
		"help":            "?",
		"filter":          "/",
		"quick_filter":    "'",
		"describe":        "d",
		"commit":          "c",
		"snapshot":        "s",
		"edit":            "e",
		"new_child":       "n",
		"abandon":         "a",
		"squash":          "S",
		"rebase":          "r",
		"revert":          "v",
		"absorb":          "A",
		"duplicate":       "D",
		"parallelize":     "z",
		"bookmark_set":    "b",
		"bookmark_delete": "B",
		"undo":            "u",
		"redo":            "U",
		"fetch":           "f",
		"push":            "p",
		"refresh":         "R",
		"toggle_select":   " ",
		"next_file":       "J",
		"prev_file":       "K",
		"context_menu":    "m",
		"evolog":          "o",
		"op_log":          "O",
		"theme":           "t",
	}
}

// BuildKeymap layers user overrides from the config's keys table over the
// defaults. Unknown action names are ignored.
func BuildKeymap(overrides map[string]string) Keymap {
	km := DefaultKeymap()
	for action, key := range overrides {
		if _, ok := km[action]; ok && key != "" {
			km[action] = key
		}
	}
	return km
}

// Lookup returns the action bound to the given key, if any. When two actions
// share a key the result is unspecified; defaults never collide.
func (k Keymap) Lookup(key string) (string, bool) {
	for action, bound := range k {
		if bound == key {
			return action, true
		}
	}
	return "", false
}
