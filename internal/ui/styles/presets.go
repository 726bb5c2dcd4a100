// Package styles contains Lip Gloss style definitions and the theme system.
package styles

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorToken names one themable color slot.
type ColorToken string

const (
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"
	TokenGraphNode     ColorToken = "graph.node"
	TokenGraphWorking  ColorToken = "graph.working_copy"
	TokenGraphLane     ColorToken = "graph.lane"
	TokenGraphConflict ColorToken = "graph.conflict"
	TokenGraphMarked   ColorToken = "graph.marked"
	TokenDiffAdded     ColorToken = "diff.added"
	TokenDiffRemoved   ColorToken = "diff.removed"
	TokenDiffHunk      ColorToken = "diff.hunk"
	TokenBookmark      ColorToken = "bookmark"
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"
	TokenBorder        ColorToken = "border"
	TokenBorderFocus   ColorToken = "border.focus"
	TokenSelectionBg   ColorToken = "selection.bg"
)

// Preset is a named set of token colors.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// DefaultPreset is jig's own palette.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "jig's own palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#E4E4E4",
		TokenTextSecondary: "#A8A8A8",
		TokenTextMuted:     "#6C6C6C",
		TokenGraphNode:     "#87AFFF",
		TokenGraphWorking:  "#5FFF87",
		TokenGraphLane:     "#585858",
		TokenGraphConflict: "#FF5F5F",
		TokenGraphMarked:   "#FFD700",
		TokenDiffAdded:     "#5FAF5F",
		TokenDiffRemoved:   "#D75F5F",
		TokenDiffHunk:      "#5FAFD7",
		TokenBookmark:      "#D787FF",
		TokenStatusSuccess: "#5FAF5F",
		TokenStatusWarning: "#D7AF5F",
		TokenStatusError:   "#D75F5F",
		TokenBorder:        "#444444",
		TokenBorderFocus:   "#87AFFF",
		TokenSelectionBg:   "#303030",
	},
}

// Presets maps preset names to their palettes.
var Presets = map[string]Preset{
	"default": DefaultPreset,
	"catppuccin-mocha": {
		Name:        "catppuccin-mocha",
		Description: "Warm dark theme",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#CDD6F4",
			TokenTextSecondary: "#BAC2DE",
			TokenTextMuted:     "#6C7086",
			TokenGraphNode:     "#89B4FA",
			TokenGraphWorking:  "#A6E3A1",
			TokenGraphLane:     "#45475A",
			TokenGraphConflict: "#F38BA8",
			TokenGraphMarked:   "#F9E2AF",
			TokenDiffAdded:     "#A6E3A1",
			TokenDiffRemoved:   "#F38BA8",
			TokenDiffHunk:      "#89DCEB",
			TokenBookmark:      "#CBA6F7",
			TokenStatusSuccess: "#A6E3A1",
			TokenStatusWarning: "#F9E2AF",
			TokenStatusError:   "#F38BA8",
			TokenBorder:        "#45475A",
			TokenBorderFocus:   "#89B4FA",
			TokenSelectionBg:   "#313244",
		},
	},
	"catppuccin-latte": {
		Name:        "catppuccin-latte",
		Description: "Warm light theme",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#4C4F69",
			TokenTextSecondary: "#5C5F77",
			TokenTextMuted:     "#9CA0B0",
			TokenGraphNode:     "#1E66F5",
			TokenGraphWorking:  "#40A02B",
			TokenGraphLane:     "#BCC0CC",
			TokenGraphConflict: "#D20F39",
			TokenGraphMarked:   "#DF8E1D",
			TokenDiffAdded:     "#40A02B",
			TokenDiffRemoved:   "#D20F39",
			TokenDiffHunk:      "#209FB5",
			TokenBookmark:      "#8839EF",
			TokenStatusSuccess: "#40A02B",
			TokenStatusWarning: "#DF8E1D",
			TokenStatusError:   "#D20F39",
			TokenBorder:        "#BCC0CC",
			TokenBorderFocus:   "#1E66F5",
			TokenSelectionBg:   "#CCD0DA",
		},
	},
	"dracula": {
		Name:        "dracula",
		Description: "Dark theme with vibrant colors",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#F8F8F2",
			TokenTextSecondary: "#BFBFBF",
			TokenTextMuted:     "#6272A4",
			TokenGraphNode:     "#BD93F9",
			TokenGraphWorking:  "#50FA7B",
			TokenGraphLane:     "#44475A",
			TokenGraphConflict: "#FF5555",
			TokenGraphMarked:   "#F1FA8C",
			TokenDiffAdded:     "#50FA7B",
			TokenDiffRemoved:   "#FF5555",
			TokenDiffHunk:      "#8BE9FD",
			TokenBookmark:      "#FF79C6",
			TokenStatusSuccess: "#50FA7B",
			TokenStatusWarning: "#FFB86C",
			TokenStatusError:   "#FF5555",
			TokenBorder:        "#44475A",
			TokenBorderFocus:   "#BD93F9",
			TokenSelectionBg:   "#44475A",
		},
	},
	"nord": {
		Name:        "nord",
		Description: "Arctic, north-bluish palette",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#ECEFF4",
			TokenTextSecondary: "#D8DEE9",
			TokenTextMuted:     "#4C566A",
			TokenGraphNode:     "#81A1C1",
			TokenGraphWorking:  "#A3BE8C",
			TokenGraphLane:     "#434C5E",
			TokenGraphConflict: "#BF616A",
			TokenGraphMarked:   "#EBCB8B",
			TokenDiffAdded:     "#A3BE8C",
			TokenDiffRemoved:   "#BF616A",
			TokenDiffHunk:      "#88C0D0",
			TokenBookmark:      "#B48EAD",
			TokenStatusSuccess: "#A3BE8C",
			TokenStatusWarning: "#EBCB8B",
			TokenStatusError:   "#BF616A",
			TokenBorder:        "#434C5E",
			TokenBorderFocus:   "#81A1C1",
			TokenSelectionBg:   "#3B4252",
		},
	},
}

// PresetNames returns the available preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeConfig selects a preset and optional per-token overrides.
type ThemeConfig struct {
	// Preset names an entry in Presets; empty means "default".
	Preset string
	// Mode forces "light" or "dark"; empty detects the terminal.
	Mode string
	// Colors overrides individual tokens by name.
	Colors map[string]string
}

// Theme is the resolved color set the views render with.
type Theme struct {
	colors map[ColorToken]lipgloss.Color
}

// ApplyTheme resolves a ThemeConfig into a Theme.
func ApplyTheme(cfg ThemeConfig) (*Theme, error) {
	name := cfg.Preset
	if name == "" {
		name = "default"
	}
	preset, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown theme preset %q", name)
	}

	colors := make(map[ColorToken]lipgloss.Color, len(preset.Colors))
	for token, hex := range DefaultPreset.Colors {
		colors[token] = lipgloss.Color(hex)
	}
	for token, hex := range preset.Colors {
		colors[token] = lipgloss.Color(hex)
	}
	for token, hex := range cfg.Colors {
		if _, known := DefaultPreset.Colors[ColorToken(token)]; !known {
			return nil, fmt.Errorf("unknown color token %q", token)
		}
		colors[ColorToken(token)] = lipgloss.Color(hex)
	}

	switch cfg.Mode {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "":
		lipgloss.SetHasDarkBackground(termenv.HasDarkBackground())
	default:
		return nil, fmt.Errorf("unknown theme mode %q", cfg.Mode)
	}

	return &Theme{colors: colors}, nil
}

// Color returns the resolved color for a token.
func (t *Theme) Color(token ColorToken) lipgloss.Color {
	return t.colors[token]
}

// Style returns a foreground style for a token.
func (t *Theme) Style(token ColorToken) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.colors[token])
}
