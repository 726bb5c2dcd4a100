// Package ui hosts the bubbletea program: it translates terminal events into
// actions, runs the reducer, hands commands to the runtime and draws the
// state.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/jig/internal/app"
	"github.com/zjrosen/jig/internal/config"
	"github.com/zjrosen/jig/internal/domain"
	"github.com/zjrosen/jig/internal/log"
	"github.com/zjrosen/jig/internal/ui/graph"
	"github.com/zjrosen/jig/internal/ui/styles"
)

// tickInterval drives the spinner, status expiry and incremental loading.
const tickInterval = 250 * time.Millisecond

type (
	actionMsg struct{ action app.Action }
	tickMsg   struct{}
)

// Model is the bubbletea model wrapping the state machine.
type Model struct {
	state   app.State
	reducer *app.Reducer
	exec    *app.Executor
	keymap  config.Keymap
	cfg     config.Config
	theme   *styles.Theme

	input   textinput.Model
	spin    spinner.Model
	watcher <-chan app.Action
	ctx     context.Context

	helpRendered string
	helpWidth    int
	// filterCycle indexes the active filter source while the filter prompt
	// is open; filterPresets switches that source from recents to presets.
	filterCycle   int
	filterPresets bool
}

// New builds the model. watcher may be nil when auto refresh is disabled.
func New(ctx context.Context, exec *app.Executor, cfg config.Config, theme *styles.Theme, watcher <-chan app.Action, revset string) *Model {
	zone.NewGlobal()

	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 512

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Style(styles.TokenGraphNode)

	st := app.NewState()
	st.Theme = cfg.Theme.Preset
	st.Filter = revset
	st.RecentFilters = config.LoadRecentFilters(config.Dir())

	return &Model{
		state:   st,
		reducer: app.NewReducer(exec.DiffCache(), cfg.GraphPageSize),
		exec:    exec,
		keymap:  config.BuildKeymap(cfg.Keys),
		cfg:     cfg,
		theme:   theme,
		input:   in,
		spin:    sp,
		watcher: watcher,
		ctx:     ctx,
	}
}

func (m *Model) Init() tea.Cmd {
	m.exec.Dispatch(m.ctx, app.LoadRepo{Revset: m.state.Filter})
	cmds := []tea.Cmd{m.listenExec(), m.tick(), m.spin.Tick}
	if m.watcher != nil {
		cmds = append(cmds, m.listenWatcher())
	}
	return tea.Batch(cmds...)
}

func (m *Model) listenExec() tea.Cmd {
	return func() tea.Msg {
		return actionMsg{action: <-m.exec.Actions()}
	}
}

func (m *Model) listenWatcher() tea.Cmd {
	return func() tea.Msg {
		a, ok := <-m.watcher
		if !ok {
			return nil
		}
		return actionMsg{action: a}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

// apply runs one action through the reducer and dispatches the resulting
// commands.
func (m *Model) apply(a app.Action) {
	before := m.state.Mode
	cmds := m.reducer.Reduce(&m.state, a)
	if len(cmds) > 0 {
		m.exec.Dispatch(m.ctx, cmds...)
	}
	m.syncWidgets(before)
}

// syncWidgets keeps the text input in step with mode transitions made by the
// reducer.
func (m *Model) syncWidgets(before app.Mode) {
	now := m.state.Mode
	if before == now {
		return
	}
	switch now {
	case app.ModeInput:
		m.input.SetValue(m.state.Input)
		m.input.CursorEnd()
		m.input.Focus()
		m.filterCycle = -1
		m.filterPresets = false
	case app.ModePalette:
		m.input.SetValue("")
		m.input.Focus()
	default:
		m.input.Blur()
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionMsg:
		m.apply(msg.action)
		if _, fromWatcher := msg.action.(app.ExternalChangeDetected); fromWatcher {
			return m, m.listenWatcher()
		}
		return m, m.listenExec()

	case tickMsg:
		m.apply(app.Tick{})
		return m, m.tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.apply(app.WindowResized{Width: msg.Width, Height: msg.Height})
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseWheelUp:
		if m.state.Mode == app.ModeDiff {
			m.apply(app.ScrollDiff{Lines: -3})
		} else {
			m.apply(app.MoveUp{})
		}
	case tea.MouseWheelDown:
		if m.state.Mode == app.ModeDiff {
			m.apply(app.ScrollDiff{Lines: 3})
		} else {
			m.apply(app.MoveDown{})
		}
	case tea.MouseLeft:
		for _, row := range m.state.Rows {
			if zone.Get(graph.ZonePrefix + row.CommitID.String()).InBounds(msg) {
				m.apply(app.SelectCommit{ID: row.CommitID})
				break
			}
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.saveSession()
		return m, tea.Quit
	}

	switch m.state.Mode {
	case app.ModeInput:
		if m.state.InputFor == app.InputFilter {
			switch key {
			case "up":
				m.cycleFilterChoice(-1)
				return m, nil
			case "down":
				m.cycleFilterChoice(1)
				return m, nil
			case "tab":
				m.toggleFilterSource()
				return m, nil
			}
		}
		return m.handleTextEntry(msg, func(text string) app.Action {
			return app.InputChanged{Text: text}
		})

	case app.ModePalette:
		switch key {
		case "esc":
			m.apply(app.Cancel{})
			return m, nil
		case "enter":
			m.apply(app.PaletteConfirm{})
			return m, nil
		case "up", "ctrl+p":
			m.apply(app.PaletteMove{Delta: -1})
			return m, nil
		case "down", "ctrl+n":
			m.apply(app.PaletteMove{Delta: 1})
			return m, nil
		}
		return m.handleTextEntry(msg, func(text string) app.Action {
			return app.PaletteQueryChanged{Query: text}
		})

	case app.ModeContextMenu, app.ModeQuickFilter, app.ModeThemeSelect, app.ModeBookmarkPick:
		switch key {
		case "esc":
			m.apply(app.Cancel{})
		case "enter":
			m.apply(app.MenuConfirm{})
			m.applyThemeIfChanged()
		case "up", "k":
			m.apply(app.MenuMove{Delta: -1})
		case "down", "j":
			m.apply(app.MenuMove{Delta: 1})
		}
		return m, nil

	case app.ModeHelp, app.ModeEvolog, app.ModeOpLog:
		switch key {
		case "esc", "q":
			m.apply(app.Cancel{})
		case "up", "k":
			m.apply(app.ScrollText{Delta: -1})
		case "down", "j":
			m.apply(app.ScrollText{Delta: 1})
		case "ctrl+d":
			m.apply(app.ScrollText{Delta: 10})
		case "ctrl+u":
			m.apply(app.ScrollText{Delta: -10})
		}
		return m, nil

	case app.ModeSquashSelect, app.ModeRebaseSelect:
		switch key {
		case "esc":
			m.apply(app.Cancel{})
		case "enter":
			m.apply(app.ConfirmInput{})
		case "up", "k":
			m.apply(app.MoveUp{})
		case "down", "j":
			m.apply(app.MoveDown{})
		}
		return m, nil

	case app.ModeDiff:
		switch key {
		case "esc", "enter":
			m.apply(app.Cancel{})
		case "up", "k":
			m.apply(app.ScrollDiff{Lines: -1})
		case "down", "j":
			m.apply(app.ScrollDiff{Lines: 1})
		case "ctrl+d":
			m.apply(app.ScrollDiff{Lines: 15})
		case "ctrl+u":
			m.apply(app.ScrollDiff{Lines: -15})
		case "n":
			m.apply(app.NextHunk{})
		case "N", "p":
			m.apply(app.PrevHunk{})
		case "J":
			m.apply(app.NextFile{})
		case "K":
			m.apply(app.PrevFile{})
		case "q":
			m.saveSession()
			return m, tea.Quit
		}
		return m, nil

	case app.ModeNoRepo:
		switch key {
		case "i":
			m.apply(app.InitRepoIntent{})
		case "q":
			return m, tea.Quit
		}
		return m, nil

	case app.ModeLoading:
		return m, nil
	}

	return m.handleNormalKey(key)
}

func (m *Model) handleTextEntry(msg tea.KeyMsg, changed func(string) app.Action) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.apply(app.Cancel{})
		return m, nil
	case "enter":
		m.apply(app.ConfirmInput{})
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.apply(changed(m.input.Value()))
	return m, cmd
}

func (m *Model) handleNormalKey(key string) (tea.Model, tea.Cmd) {
	// arrows work regardless of the keymap
	switch key {
	case "up":
		m.apply(app.MoveUp{})
		return m, nil
	case "down":
		m.apply(app.MoveDown{})
		return m, nil
	case "esc":
		m.apply(app.Cancel{})
		return m, nil
	}

	name, ok := m.keymap.Lookup(key)
	if !ok {
		return m, nil
	}
	if name == "quit" {
		m.saveSession()
		return m, tea.Quit
	}
	if a, ok := actionFor(name); ok {
		m.apply(a)
	}
	return m, nil
}

// actionFor maps keymap action names to actions.
func actionFor(name string) (app.Action, bool) {
	table := map[string]app.Action{
		"up":              app.MoveUp{},
		"down":            app.MoveDown{},
		"select":          app.ConfirmInput{},
		"close":           app.Cancel{},
		"command_palette": app.OpenCommandPalette{},
		"help":            app.OpenHelp{},
		"filter":          app.OpenFilterInput{},
		"quick_filter":    app.OpenQuickFilter{},
		"describe":        app.DescribeIntent{},
		"commit":          app.CommitIntent{},
		"snapshot":        app.SnapshotIntent{},
		"edit":            app.EditIntent{},
		"new_child":       app.NewChildIntent{},
		"abandon":         app.AbandonIntent{},
		"squash":          app.SquashIntent{},
		"rebase":          app.RebaseIntent{},
		"revert":          app.RevertIntent{},
		"absorb":          app.AbsorbIntent{},
		"duplicate":       app.DuplicateIntent{},
		"parallelize":     app.ParallelizeIntent{},
		"bookmark_set":    app.SetBookmarkIntent{},
		"bookmark_delete": app.DeleteBookmarkIntent{},
		"undo":            app.UndoIntent{},
		"redo":            app.RedoIntent{},
		"fetch":           app.FetchIntent{},
		"push":            app.PushIntent{},
		"refresh":         app.RefreshIntent{},
		"toggle_select":   app.ToggleSelect{},
		"next_file":       app.NextFile{},
		"prev_file":       app.PrevFile{},
		"context_menu":    app.OpenContextMenu{},
		"evolog":          app.OpenEvolog{},
		"op_log":          app.OpenOperationLog{},
		"theme":           app.OpenThemeSelection{},
	}
	a, ok := table[name]
	return a, ok
}

// cycleFilterChoice steps through the active filter source (recents or
// presets) inside the filter prompt, replacing the input text.
func (m *Model) cycleFilterChoice(delta int) {
	choices := m.filterChoices()
	if len(choices) == 0 {
		return
	}
	m.filterCycle += delta
	if m.filterCycle < 0 {
		m.filterCycle = len(choices) - 1
	}
	if m.filterCycle >= len(choices) {
		m.filterCycle = 0
	}
	m.input.SetValue(choices[m.filterCycle])
	m.input.CursorEnd()
	m.apply(app.InputChanged{Text: m.input.Value()})
}

// toggleFilterSource switches the prompt between recent revsets and the
// built-in presets.
func (m *Model) toggleFilterSource() {
	m.filterPresets = !m.filterPresets
	m.filterCycle = -1
}

func (m *Model) filterChoices() []string {
	if m.filterPresets {
		return app.PresetFilters()
	}
	return m.state.RecentFilters
}

// applyThemeIfChanged rebuilds the resolved theme after the picker ran.
func (m *Model) applyThemeIfChanged() {
	if m.state.Theme == "" || m.state.Theme == m.cfg.Theme.Preset {
		return
	}
	theme, err := styles.ApplyTheme(styles.ThemeConfig{Preset: m.state.Theme, Mode: m.cfg.Theme.Mode})
	if err != nil {
		log.Warn(log.CatUI, "theme apply failed", "preset", m.state.Theme, "error", err)
		return
	}
	m.theme = theme
	m.cfg.Theme.Preset = m.state.Theme
	m.spin.Style = theme.Style(styles.TokenGraphNode)
}

// saveSession persists the recent filters on exit.
func (m *Model) saveSession() {
	if err := config.SaveRecentFilters(config.Dir(), m.state.RecentFilters); err != nil {
		log.Warn(log.CatConfig, "saving recent filters failed", "error", err)
	}
}

// markedLookup adapts the multi-select set for the graph view.
func (m *Model) markedLookup() func(domain.CommitId) bool {
	return func(id domain.CommitId) bool { return m.state.IsMarked(id) }
}

var _ tea.Model = (*Model)(nil)
