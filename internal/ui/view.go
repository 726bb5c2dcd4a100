package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/jig/internal/app"
	"github.com/zjrosen/jig/internal/ui/diff"
	"github.com/zjrosen/jig/internal/ui/graph"
	"github.com/zjrosen/jig/internal/ui/overlay"
	"github.com/zjrosen/jig/internal/ui/styles"
)

func (m *Model) View() string {
	w, h := m.state.Width, m.state.Height
	if w == 0 || h == 0 {
		return "starting..."
	}

	switch m.state.Mode {
	case app.ModeLoading:
		return zone.Scan(m.loadingView(w, h))
	case app.ModeNoRepo:
		return zone.Scan(m.noRepoView(w, h))
	}

	base := m.mainView(w, h)
	if popup := m.popupView(w, h); popup != "" {
		return zone.Scan(overlay.Center(popup, w, h))
	}
	return zone.Scan(base)
}

func (m *Model) loadingView(w, h int) string {
	var b strings.Builder
	b.WriteString(m.spin.View())
	b.WriteString(" ")
	if len(m.state.ActiveTasks) > 0 {
		msgs := make([]string, 0, len(m.state.ActiveTasks))
		for _, msg := range m.state.ActiveTasks {
			msgs = append(msgs, msg)
		}
		sort.Strings(msgs)
		b.WriteString(strings.Join(msgs, ", "))
	} else {
		b.WriteString("Loading repository...")
	}
	return overlay.Center(m.theme.Style(styles.TokenTextPrimary).Render(b.String()), w, h)
}

func (m *Model) noRepoView(w, h int) string {
	lines := []string{
		m.theme.Style(styles.TokenTextPrimary).Bold(true).Render("No repository found"),
		"",
		m.theme.Style(styles.TokenTextSecondary).Render("i  initialize a repository here"),
		m.theme.Style(styles.TokenTextSecondary).Render("q  quit"),
	}
	if m.state.LastError != nil {
		lines = append(lines, "",
			m.theme.Style(styles.TokenStatusError).Render(m.state.LastError.Message))
	}
	return overlay.Center(strings.Join(lines, "\n"), w, h)
}

func (m *Model) mainView(w, h int) string {
	header := m.headerView(w)
	footer := ""
	bodyHeight := h - 1
	if m.cfg.UI.ShowStatusBar {
		footer = m.statusBarView(w)
		bodyHeight--
	}

	diffWidth := w * m.cfg.UI.DiffRatio / 100
	graphWidth := w - diffWidth

	pickMode := m.state.Mode == app.ModeSquashSelect || m.state.Mode == app.ModeRebaseSelect
	gv := graph.View{Theme: m.theme, Width: graphWidth - 2, Height: bodyHeight - 2}
	graphPane := m.theme.Panel(
		gv.Render(m.state.Rows, m.state.Selected, m.markedLookup(), pickMode),
		m.graphTitle(),
		graphWidth, bodyHeight,
		m.state.Mode != app.ModeDiff,
	)

	dv := diff.View{Theme: m.theme, Width: diffWidth - 2, Height: bodyHeight - 2}
	diffPane := m.theme.Panel(
		dv.Render(m.state.DiffText, m.state.DiffOffset),
		"Diff",
		diffWidth, bodyHeight,
		m.state.Mode == app.ModeDiff,
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, graphPane, diffPane)
	parts := []string{header, body}
	if footer != "" {
		parts = append(parts, footer)
	}
	return strings.Join(parts, "\n")
}

func (m *Model) graphTitle() string {
	title := m.state.Repo.RepoName
	if title == "" {
		title = "Log"
	}
	switch m.state.Mode {
	case app.ModeSquashSelect:
		return title + " (pick squash source)"
	case app.ModeRebaseSelect:
		return title + " (pick rebase destination)"
	}
	if m.state.Filter != "" {
		return fmt.Sprintf("%s [%s]", title, m.state.Filter)
	}
	return title
}

func (m *Model) headerView(w int) string {
	left := m.theme.Style(styles.TokenTextPrimary).Bold(true).Render("jig")
	if m.state.Repo.WorkspaceID != "" {
		left += m.theme.Style(styles.TokenTextMuted).Render("  ws:" + m.state.Repo.WorkspaceID)
	}
	if op := m.state.Repo.OperationID; op != "" {
		short := op
		if len(short) > 12 {
			short = short[:12]
		}
		left += m.theme.Style(styles.TokenTextMuted).Render("  op:" + short)
	}

	right := ""
	if m.state.Status.Text != "" {
		right = m.theme.Style(styles.TokenStatusSuccess).Render(m.state.Status.Text)
	} else if len(m.state.Marked) > 0 {
		right = m.theme.Style(styles.TokenGraphMarked).Render(
			fmt.Sprintf("%d selected", len(m.state.Marked)))
	}

	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) statusBarView(w int) string {
	if m.state.LastError != nil && m.state.Mode == app.ModeNormal {
		token := styles.TokenStatusError
		if m.state.LastError.Severity == app.SeverityWarning {
			token = styles.TokenStatusWarning
		}
		msg := m.state.LastError.Message
		if len(m.state.LastError.Suggestions) > 0 {
			msg += "  (" + m.state.LastError.Suggestions[0] + ")"
		}
		return m.theme.Style(token).Render(truncateTo(msg, w))
	}

	hints := "j/k move  enter diff  : palette  / filter  m menu  ? help  q quit"
	return m.theme.Style(styles.TokenTextMuted).Render(truncateTo(hints, w))
}

func (m *Model) popupView(w, h int) string {
	popupWidth := w * 2 / 3
	if popupWidth < 30 {
		popupWidth = w - 2
	}

	switch m.state.Mode {
	case app.ModeInput:
		return overlay.Prompt(m.theme, inputTitle(m.state.InputFor), m.input.View(), popupWidth)

	case app.ModePalette:
		rows := make([]overlay.PaletteRow, len(m.state.Palette.Matches))
		for i, e := range m.state.Palette.Matches {
			rows[i] = overlay.PaletteRow{Name: e.Name, Description: e.Description}
		}
		return overlay.Palette(m.theme, m.input.View(), rows, m.state.Palette.Selected, popupWidth, h*2/3)

	case app.ModeContextMenu:
		return overlay.List(m.theme, "Actions", m.state.Menu.Entries, m.state.Menu.Selected, popupWidth/2)

	case app.ModeQuickFilter:
		return overlay.List(m.theme, "Filters", m.state.Menu.Entries, m.state.Menu.Selected, popupWidth)

	case app.ModeThemeSelect:
		return overlay.List(m.theme, "Theme", m.state.Menu.Entries, m.state.Menu.Selected, popupWidth/2)

	case app.ModeBookmarkPick:
		title := "Push bookmark"
		if m.state.BookmarkOp == "delete" {
			title = "Delete bookmark"
		}
		return overlay.List(m.theme, title, m.state.Menu.Entries, m.state.Menu.Selected, popupWidth/2)

	case app.ModeHelp:
		return overlay.TextPane(m.theme, "Help", m.helpText(popupWidth-4), m.state.TextView.Offset, popupWidth, h-4)

	case app.ModeEvolog, app.ModeOpLog:
		return overlay.TextPane(m.theme, m.state.TextView.Title, m.state.TextView.Text, m.state.TextView.Offset, popupWidth, h-4)
	}

	if m.state.LastError != nil && m.state.LastError.Severity == app.SeverityError {
		return overlay.ErrorBox(m.theme, m.state.LastError.Message,
			false, m.state.LastError.Suggestions, popupWidth)
	}
	return ""
}

func inputTitle(p app.InputPurpose) string {
	switch p {
	case app.InputDescribe:
		return "Description"
	case app.InputCommitMessage:
		return "Commit message"
	case app.InputBookmark:
		return "Bookmark name"
	case app.InputFilter:
		return "Revset filter"
	}
	return "Input"
}

func truncateTo(s string, w int) string {
	if w < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= w {
		return s
	}
	return runewidth.Truncate(s, w, "…")
}
