// Package tui is the interactive beautifier: an input pane, a search bar
// and a collapsible, highlighted output pane.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/mcncl/jsonbeautifier/internal/logging"
	"github.com/mcncl/jsonbeautifier/internal/render"
	"github.com/mcncl/jsonbeautifier/internal/session"
	"github.com/mcncl/jsonbeautifier/internal/state"
	"github.com/mcncl/jsonbeautifier/internal/theme"
	"github.com/mcncl/jsonbeautifier/internal/watch"
)

const (
	title          = "JSON Beautifier"
	copiedMessage  = "Copied!"
	statusDuration = 2 * time.Second
	minPaneWidth   = 10
	minPaneHeight  = 3
)

type focus int

const (
	focusInput focus = iota
	focusSearch
	focusOutput
	focusCount
)

func (f focus) next() focus { return (f + 1) % focusCount }
func (f focus) prev() focus { return (f + focusCount - 1) % focusCount }

// scrollRequest receives scroll requests from the session. It is shared by
// every copy of the model, and the model applies it after each reaction.
type scrollRequest struct {
	anchor  render.Anchor
	pending bool
}

func (r *scrollRequest) ScrollTo(a render.Anchor) {
	r.anchor = a
	r.pending = true
}

func (r *scrollRequest) take() (render.Anchor, bool) {
	if !r.pending {
		return render.Anchor{}, false
	}
	r.pending = false
	return r.anchor, true
}

// clearStatusMsg is sent to clear the status message after a delay.
type clearStatusMsg struct{}

// fileChangedMsg carries a reload of the watched input file.
type fileChangedMsg struct {
	update watch.Update
}

// Options configures the model.
type Options struct {
	// Session is the state to show. A new empty session is used when nil.
	Session *session.Session
	Theme   theme.ID
	// Store persists the theme choice. Nil disables persistence.
	Store  *state.Store
	Logger *log.Logger
	// Updates delivers reloads of a watched input file.
	Updates <-chan watch.Update
}

// Model is the Bubble Tea model of the beautifier.
type Model struct {
	session *session.Session
	scroll  *scrollRequest
	keys    KeyMap
	help    help.Model
	theme   theme.Theme
	store   *state.Store
	logger  *log.Logger
	updates <-chan watch.Update

	input  textarea.Model
	search textinput.Model
	output viewport.Model

	focus   focus
	cursor  int
	// xOffset is the output's horizontal scroll, kept here because the
	// viewport does not expose it.
	xOffset int
	status  string
	width   int
	height  int
	ready   bool
}

// New creates the model. The input pane starts with the session's input
// and has focus.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	sess := opts.Session
	if sess == nil {
		sess = session.New(session.Options{Logger: logger})
	}
	scroll := &scrollRequest{}
	sess.SetScroller(scroll)

	ta := textarea.New()
	ta.Placeholder = "Paste JSON or a JWT here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetValue(sess.Input())
	ta.Focus()

	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "term"
	ti.CharLimit = 200
	ti.SetValue(sess.Search().Term)

	m := Model{
		session: sess,
		scroll:  scroll,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		store:   opts.Store,
		logger:  logger,
		updates: opts.Updates,
		input:   ta,
		search:  ti,
		output:  viewport.New(0, 0),
		focus:   focusInput,
	}
	m.applyTheme(opts.Theme)
	return m
}

// Init initializes the component.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForFile())
}

// Session returns the session behind the model.
func (m Model) Session() *session.Session {
	return m.session
}

// Update handles messages and user input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case fileChangedMsg:
		if msg.update.Err != nil {
			m.logger.Warn("reload failed", logging.FieldPath, msg.update.Path, logging.FieldError, msg.update.Err)
		} else {
			m.input.SetValue(msg.update.Content)
			m.session.SetInput(msg.update.Content)
			m.refresh(false)
		}
		return m, m.waitForFile()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextPane):
		return m, m.setFocus(m.focus.next())

	case key.Matches(msg, m.keys.PrevPane):
		return m, m.setFocus(m.focus.prev())

	case key.Matches(msg, m.keys.ToggleJWT):
		mode := m.session.ToggleMode()
		m.logger.Debug("mode changed", logging.FieldMode, mode)
		m.refresh(false)
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if !m.session.Copy() {
			return m, nil
		}
		m.status = copiedMessage
		return m, m.clearStatusAfter()

	case key.Matches(msg, m.keys.Clear):
		m.session.Clear()
		m.input.Reset()
		m.search.SetValue("")
		m.cursor = 0
		m.output.GotoTop()
		m.refresh(false)
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.cycleTheme()
		return m, nil

	case m.focus != focusInput && key.Matches(msg, m.keys.NextMatch):
		m.session.NextMatch()
		m.refresh(true)
		return m, nil

	case m.focus != focusInput && key.Matches(msg, m.keys.PrevMatch):
		m.session.PrevMatch()
		m.refresh(true)
		return m, nil
	}

	switch m.focus {
	case focusOutput:
		return m.handleOutputKey(msg)
	case focusSearch:
		switch msg.Type {
		case tea.KeyEnter:
			m.session.NextMatch()
			m.refresh(true)
			return m, nil
		case tea.KeyEsc:
			return m, m.setFocus(focusOutput)
		}
	}
	return m.updateFocused(msg)
}

func (m Model) handleOutputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := len(m.session.View().Lines)

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.followCursor()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < lines-1 {
			m.cursor++
		}
		m.followCursor()

	case key.Matches(msg, m.keys.GotoTop):
		m.cursor = 0
		m.followCursor()

	case key.Matches(msg, m.keys.GotoEnd):
		m.cursor = max(lines-1, 0)
		m.followCursor()

	case key.Matches(msg, m.keys.Toggle):
		if p, ok := m.session.View().ToggleAt(m.cursor); ok && m.session.Toggle(p) {
			if line, ok := m.session.View().LineOf(p); ok {
				m.cursor = line
			}
			m.refresh(false)
		}

	case key.Matches(msg, m.keys.ExpandAll):
		m.session.ExpandAll()
		m.refresh(false)

	case key.Matches(msg, m.keys.CollapseAll):
		m.session.CollapseAll()
		m.cursor = 0
		m.refresh(false)
		m.output.GotoTop()

	case key.Matches(msg, m.keys.NextResult):
		m.session.NextMatch()
		m.refresh(true)

	case key.Matches(msg, m.keys.PrevResult):
		m.session.PrevMatch()
		m.refresh(true)

	case key.Matches(msg, m.keys.Search):
		return m, m.setFocus(focusSearch)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()

	default:
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateFocused forwards msg to the focused component and reprocesses when
// the input or the search term changed.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusInput:
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != m.session.Input() {
			m.session.SetInput(v)
			m.refresh(false)
		}
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
		if v := m.search.Value(); v != m.session.Search().Term {
			m.session.SetSearchTerm(v)
			m.refresh(true)
		}
	case focusOutput:
		m.output, cmd = m.output.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.input.Blur()
	m.search.Blur()

	var cmd tea.Cmd
	switch f {
	case focusInput:
		cmd = m.input.Focus()
	case focusSearch:
		cmd = m.search.Focus()
	}
	m.renderOutput()
	return cmd
}

// refresh redraws the output after the session changed and applies any
// pending scroll request. With follow set the cursor moves to the active
// match as well.
func (m *Model) refresh(follow bool) {
	if term := m.session.Search().Term; m.search.Value() != term {
		m.search.SetValue(term)
	}

	lines := len(m.session.View().Lines)
	if m.cursor >= lines {
		m.cursor = max(lines-1, 0)
	}

	anchor, ok := m.scroll.take()
	if ok && follow {
		m.cursor = anchor.Line
	}
	m.renderOutput()
	if ok {
		m.scrollTo(anchor.Line)
		m.scrollToColumn(anchor.Column, anchor.Width)
	}
}

func (m *Model) followCursor() {
	m.renderOutput()
	m.scrollTo(m.cursor)
}

// scrollTo moves the viewport the least distance that shows line.
func (m *Model) scrollTo(line int) {
	height := m.output.Height
	if height <= 0 {
		return
	}
	top := m.output.YOffset
	switch {
	case line < top:
		m.output.SetYOffset(line)
	case line >= top+height:
		m.output.SetYOffset(line - height + 1)
	}
}

// scrollToColumn moves the viewport the least distance sideways that shows
// width cells starting at col of a line.
func (m *Model) scrollToColumn(col, width int) {
	if m.output.Width <= 0 {
		return
	}
	// Rows start with the one-cell cursor gutter.
	start := col + 1
	end := start + max(width, 1)
	switch {
	case start < m.xOffset:
		m.xOffset = start
	case end > m.xOffset+m.output.Width:
		m.xOffset = min(end-m.output.Width, start)
	}
	m.clampXOffset()
}

func (m *Model) contentWidth() int {
	widest := 0
	for _, l := range m.session.View().Lines {
		widest = max(widest, l.Width())
	}
	// Plus the gutter.
	return widest + 1
}

func (m *Model) renderOutput() {
	view := m.session.View()
	gutter := m.theme.CursorLine.Render("▌")

	rows := make([]string, len(view.Lines))
	for i, l := range view.Lines {
		prefix := " "
		if m.focus == focusOutput && i == m.cursor && !view.Placeholder {
			prefix = gutter
		}
		rows[i] = prefix + m.theme.RenderLine(l)
	}
	m.output.SetContent(strings.Join(rows, "\n"))
	m.clampXOffset()
}

func (m *Model) clampXOffset() {
	m.xOffset = max(min(m.xOffset, m.contentWidth()-m.output.Width), 0)
	m.output.SetXOffset(m.xOffset)
}

func (m *Model) cycleTheme() {
	next := m.theme.ID.Next()
	m.applyTheme(next)
	m.logger.Debug("theme changed", logging.FieldTheme, next)
	if m.store == nil {
		return
	}
	if err := m.store.SetString(state.ThemeKey, string(next)); err != nil {
		m.logger.Warn("saving theme failed", logging.FieldPath, m.store.Path(), logging.FieldError, err)
	}
}

func (m *Model) applyTheme(id theme.ID) {
	m.theme = theme.Get(id)
	accent := lipgloss.NewStyle().Foreground(m.theme.Accent.Primary)

	m.input.Cursor.Style = accent
	m.search.Cursor.Style = accent
	m.search.PromptStyle = m.theme.Label
	m.help.Styles.ShortSeparator = m.theme.HelpSeparator
	m.help.Styles.FullSeparator = m.theme.HelpSeparator
	m.help.Styles.ShortKey = m.theme.Title.UnsetBold()
	m.help.Styles.FullKey = m.theme.Title.UnsetBold()
	m.renderOutput()
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true
	m.layout()
}

// layout sizes the panes to fill the window.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	m.help.Width = m.width

	chrome := lipgloss.Height(m.headerView()) + 1 + 1 + lipgloss.Height(m.help.View(m.keys))
	border := m.theme.Pane.GetVerticalFrameSize()
	paneHeight := max(m.height-chrome-border, minPaneHeight)

	hframe := m.theme.Pane.GetHorizontalFrameSize()
	leftWidth := max(m.width/2-hframe, minPaneWidth)
	rightWidth := max(m.width-m.width/2-hframe, minPaneWidth)

	m.input.SetWidth(leftWidth)
	m.input.SetHeight(paneHeight)
	m.output.Width = rightWidth
	m.output.Height = paneHeight
	m.search.Width = max(m.width-lipgloss.Width(m.search.Prompt)-12, minPaneWidth)
	m.renderOutput()
}

func (m *Model) waitForFile() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	updates := m.updates
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return fileChangedMsg{update: u}
	}
}

// clearStatusAfter returns a command that clears the status after 2 seconds.
func (m *Model) clearStatusAfter() tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// View renders the model.
func (m Model) View() string {
	if !m.ready {
		return ""
	}

	inputStyle, outputStyle := m.theme.Pane, m.theme.Pane
	switch m.focus {
	case focusInput:
		inputStyle = m.theme.FocusedPane
	case focusOutput:
		outputStyle = m.theme.FocusedPane
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		inputStyle.Render(m.input.View()),
		outputStyle.Render(m.output.View()),
	)

	errLine := ""
	if msg := m.session.ErrorMessage(); msg != "" {
		errLine = m.theme.Error.Render(msg)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.searchView(),
		panes,
		errLine,
		m.help.View(m.keys),
	)
}

func (m Model) headerView() string {
	parts := []string{m.theme.Title.Render(title)}
	if m.session.Mode() == session.ModeJWT {
		parts = append(parts, m.theme.Badge.Render("JWT"))
	}
	if q := m.session.Query(); q != "" {
		parts = append(parts, m.theme.Label.Render("query: "+q))
	}
	parts = append(parts, m.theme.Label.Render("theme: "+m.theme.Accent.Name))
	if m.status != "" {
		parts = append(parts, m.theme.Status.Render(m.status))
	}
	return m.theme.Header.Width(max(m.width, 1)).Render(strings.Join(parts, "  "))
}

func (m Model) searchView() string {
	st := m.session.Search()
	counter := m.theme.CounterMuted.Render(st.Counter())
	if st.CanNavigate() {
		counter = m.theme.Counter.Render(st.Counter())
	}
	return m.search.View() + "  " + counter
}
