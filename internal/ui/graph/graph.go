// Package graph renders the commit log with its lane art.
package graph

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/jig/internal/domain"
	"github.com/zjrosen/jig/internal/ui/styles"
)

// ZonePrefix namespaces the clickable row marks for mouse hit-testing.
const ZonePrefix = "jig-row-"

// View renders graph rows into a fixed-size window.
type View struct {
	Theme  *styles.Theme
	Width  int
	Height int
}

// Render draws the rows with the selection kept in view. marked reports
// membership in the multi-select set; pickMode dims rows to signal that a
// target is being chosen.
func (v View) Render(rows []domain.GraphRow, selected int, marked func(domain.CommitId) bool, pickMode bool) string {
	if len(rows) == 0 {
		return v.Theme.Style(styles.TokenTextMuted).Render("No commits to show")
	}
	if v.Height < 1 {
		return ""
	}

	var lines []string
	lineRow := make([]int, 0, len(rows)*2)
	selLine := 0
	for i, row := range rows {
		if i == selected {
			selLine = len(lines)
		}
		lines = append(lines, v.renderRow(row, i == selected, marked(row.CommitID), pickMode))
		lineRow = append(lineRow, i)
		if conn := v.connectorLine(row.Visual); conn != "" {
			lines = append(lines, conn)
			lineRow = append(lineRow, i)
		}
	}

	top := selLine - v.Height/2
	if top > len(lines)-v.Height {
		top = len(lines) - v.Height
	}
	if top < 0 {
		top = 0
	}
	end := top + v.Height
	if end > len(lines) {
		end = len(lines)
	}

	out := make([]string, 0, end-top)
	for i := top; i < end; i++ {
		line := ansi.Truncate(lines[i], v.Width, "…")
		out = append(out, zone.Mark(ZonePrefix+rows[lineRow[i]].CommitID.String(), line))
	}
	return strings.Join(out, "\n")
}

func (v View) renderRow(row domain.GraphRow, selected, marked, pickMode bool) string {
	lanes := v.laneArt(row)

	idStyle := v.Theme.Style(styles.TokenTextSecondary)
	descStyle := v.Theme.Style(styles.TokenTextPrimary)
	if pickMode && !selected {
		descStyle = v.Theme.Style(styles.TokenTextMuted)
	}

	desc := row.Description
	if desc == "" {
		desc = "(no description)"
		descStyle = v.Theme.Style(styles.TokenTextMuted).Italic(true)
	}
	if i := strings.IndexByte(desc, '\n'); i >= 0 {
		desc = desc[:i]
	}

	var b strings.Builder
	b.WriteString(lanes)
	b.WriteString(" ")
	if marked {
		b.WriteString(v.Theme.Style(styles.TokenGraphMarked).Render("✓ "))
	}
	b.WriteString(idStyle.Render(row.ChangeIDShort))
	b.WriteString(" ")
	b.WriteString(descStyle.Render(desc))
	for _, bm := range row.Bookmarks {
		b.WriteString(" ")
		b.WriteString(v.Theme.Style(styles.TokenBookmark).Render(bm))
	}
	if row.HasConflict {
		b.WriteString(" ")
		b.WriteString(v.Theme.Style(styles.TokenGraphConflict).Render("conflict"))
	}
	if row.Author != "" {
		b.WriteString(" ")
		b.WriteString(v.Theme.Style(styles.TokenTextMuted).Render(row.Author))
	}

	line := b.String()
	if selected {
		line = lipgloss.NewStyle().Background(v.Theme.Color(styles.TokenSelectionBg)).Render(line)
	}
	return line
}

// laneArt draws the node and pass-through lanes for one row.
func (v View) laneArt(row domain.GraphRow) string {
	vis := row.Visual
	width := len(vis.ActiveLanes)
	if vis.Column >= width {
		width = vis.Column + 1
	}

	node := "○"
	nodeStyle := v.Theme.Style(styles.TokenGraphNode)
	switch {
	case row.HasConflict:
		node = "×"
		nodeStyle = v.Theme.Style(styles.TokenGraphConflict)
	case row.IsWorkingCopy:
		node = "@"
		nodeStyle = v.Theme.Style(styles.TokenGraphWorking)
	case row.IsImmutable:
		node = "◆"
	}

	laneStyle := v.Theme.Style(styles.TokenGraphLane)
	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == vis.Column:
			b.WriteString(nodeStyle.Render(node))
		case i < len(vis.ActiveLanes) && vis.ActiveLanes[i]:
			b.WriteString(laneStyle.Render("│"))
		default:
			b.WriteString(" ")
		}
		if i < width-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// connectorLine draws the edge row between a commit and its parents. Rows
// whose single parent sits in the same lane need none.
func (v View) connectorLine(vis domain.RowVisual) string {
	if len(vis.ParentColumns) == 0 {
		return ""
	}
	if len(vis.ParentColumns) == 1 && vis.ParentColumns[0] == vis.Column {
		return ""
	}

	width := len(vis.ConnectorLanes)
	if vis.ParentMax >= width {
		width = vis.ParentMax + 1
	}
	if vis.Column >= width {
		width = vis.Column + 1
	}

	isParent := func(i int) bool {
		for _, p := range vis.ParentColumns {
			if p == i {
				return true
			}
		}
		return false
	}

	laneStyle := v.Theme.Style(styles.TokenGraphLane)
	var b strings.Builder
	for i := 0; i < width; i++ {
		inSpan := i >= vis.ParentMin && i <= vis.ParentMax
		var ch string
		switch {
		case i == vis.Column && isParent(i):
			ch = "├"
			if vis.ParentMax <= i {
				ch = "┤"
			}
		case i == vis.Column:
			switch {
			case vis.ParentMin < i && vis.ParentMax > i:
				ch = "┴"
			case vis.ParentMax < i:
				ch = "╯"
			default:
				ch = "╰"
			}
		case isParent(i):
			switch {
			case i < vis.Column:
				ch = "╭"
			case i > vis.Column:
				ch = "╮"
			default:
				ch = "│"
			}
		case inSpan:
			ch = "─"
		case i < len(vis.ConnectorLanes) && vis.ConnectorLanes[i]:
			ch = "│"
		default:
			ch = " "
		}
		b.WriteString(laneStyle.Render(ch))
		if i < width-1 {
			if inSpan && i+1 >= vis.ParentMin && i+1 <= vis.ParentMax {
				b.WriteString(laneStyle.Render("─"))
			} else {
				b.WriteString(" ")
			}
		}
	}
	return b.String()
}
