package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyThemeDefault(t *testing.T) {
	theme, err := ApplyTheme(ThemeConfig{})
	require.NoError(t, err)
	assert.Equal(t, lipgloss.Color(DefaultPreset.Colors[TokenTextPrimary]), theme.Color(TokenTextPrimary))
}

func TestApplyThemePreset(t *testing.T) {
	theme, err := ApplyTheme(ThemeConfig{Preset: "dracula"})
	require.NoError(t, err)
	assert.Equal(t, lipgloss.Color("#BD93F9"), theme.Color(TokenGraphNode))
}

func TestApplyThemeColorOverride(t *testing.T) {
	theme, err := ApplyTheme(ThemeConfig{
		Preset: "nord",
		Colors: map[string]string{"graph.node": "#123456"},
	})
	require.NoError(t, err)
	assert.Equal(t, lipgloss.Color("#123456"), theme.Color(TokenGraphNode))
	// untouched tokens keep the preset value
	assert.Equal(t, lipgloss.Color("#A3BE8C"), theme.Color(TokenGraphWorking))
}

func TestApplyThemeInvalidPreset(t *testing.T) {
	_, err := ApplyTheme(ThemeConfig{Preset: "nonexistent"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme preset")
}

func TestApplyThemeInvalidToken(t *testing.T) {
	_, err := ApplyTheme(ThemeConfig{
		Colors: map[string]string{"invalid.token": "#FF0000"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown color token")
}

func TestPresetsAllDefineEveryToken(t *testing.T) {
	for name, preset := range Presets {
		for token := range DefaultPreset.Colors {
			_, ok := preset.Colors[token]
			assert.True(t, ok, "preset %s missing token %s", name, token)
		}
	}
}

func TestPresetNamesSorted(t *testing.T) {
	names := PresetNames()
	require.Contains(t, names, "default")
	require.Contains(t, names, "catppuccin-mocha")
	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, names[i-1], names[i])
	}
}

func TestPanel(t *testing.T) {
	theme, err := ApplyTheme(ThemeConfig{Mode: "dark"})
	require.NoError(t, err)

	t.Run("basic structure", func(t *testing.T) {
		out := theme.Panel("content", "Title", 20, 5, false)
		require.Contains(t, out, "╭")
		require.Contains(t, out, "╯")
		lines := strings.Split(out, "\n")
		require.Len(t, lines, 5)
		assert.Contains(t, lines[0], "Title")
	})

	t.Run("long title truncated", func(t *testing.T) {
		out := theme.Panel("x", "An Exceedingly Long Panel Title", 20, 4, false)
		lines := strings.Split(out, "\n")
		assert.LessOrEqual(t, lipgloss.Width(lines[0]), 20)
	})

	t.Run("lines padded to width", func(t *testing.T) {
		out := theme.Panel("a\nbb\nccc", "", 12, 5, true)
		for _, line := range strings.Split(out, "\n") {
			assert.Equal(t, 12, lipgloss.Width(line))
		}
	})
}
