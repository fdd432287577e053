// Package tui is the interactive terminal front end of a shell session.
package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/termblog/internal"
)

const (
	headerHeight = 1
	footerHeight = 2
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)

// submitDoneMsg reports that a submitted line settled or suspended
type submitDoneMsg struct {
	state internal.SessionState
	err   error
}

// logChangedMsg is sent when the conversation log changed
type logChangedMsg struct{}

// RedrawMsg asks the model to repaint and scroll to the bottom. Handlers
// trigger it through the session's redraw hook.
type RedrawMsg struct{}

// Model is the bubbletea model driving one session
type Model struct {
	session  *internal.Session
	renderer *Renderer
	input    textinput.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	busy     bool
}

// New creates a model for s
func New(s *internal.Session) Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 80

	m := Model{
		session:  s,
		renderer: NewRenderer(80, s.Settings().View().Theme),
		input:    ti,
		viewport: viewport.New(80, 20),
	}
	m.input.Prompt = m.prompt()
	return m
}

// Init starts the cursor blink and the log watcher
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.session.Log()))
}

func waitForChange(log *internal.ConversationLog) tea.Cmd {
	return func() tea.Msg {
		<-log.Changed()
		return logChangedMsg{}
	}
}

func submit(s *internal.Session, line string) tea.Cmd {
	return func() tea.Msg {
		state, err := s.Submit(line)
		return submitDoneMsg{state: state, err: err}
	}
}

// Update handles keys and session events
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := msg.Height - headerHeight - footerHeight - 1
		if h < 1 {
			h = 1
		}
		m.viewport.Width, m.viewport.Height = msg.Width, h
		m.input.Width = msg.Width - lipgloss.Width(m.input.Prompt) - 1
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case submitDoneMsg:
		m.busy = false
		if msg.err != nil && !errors.Is(msg.err, internal.ErrBusy) {
			internal.LogDebug("Submit: %v", msg.err)
			if errors.Is(msg.err, internal.ErrSessionClosed) {
				return m, tea.Quit
			}
		}
		m.input.Prompt = m.prompt()
		m.refresh()
		return m, nil

	case logChangedMsg:
		m.refresh()
		return m, waitForChange(m.session.Log())

	case RedrawMsg:
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		return m, tea.Quit

	case tea.KeyEnter:
		if m.busy {
			return m, nil
		}
		line := m.input.Value()
		m.input.Reset()
		m.busy = true
		return m, submit(m.session, line)

	case tea.KeyTab:
		if line, ok := m.session.Complete(m.input.Value()); ok {
			m.setInput(line)
		}
		return m, nil

	case tea.KeyUp:
		if line, ok := m.session.NavigateUp(m.input.Value()); ok {
			m.setInput(line)
		}
		return m, nil

	case tea.KeyDown:
		if line, ok := m.session.NavigateDown(m.input.Value()); ok {
			m.setInput(line)
		}
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetInput(m.input.Value())
	return m, cmd
}

func (m *Model) setInput(line string) {
	m.input.SetValue(line)
	m.input.CursorEnd()
}

func (m Model) prompt() string {
	if m.session.State() == internal.StateSuspended {
		return "> "
	}
	return m.renderer.Prompt(m.session.Settings().View().User, m.session.Cwd())
}

func (m *Model) refresh() {
	view := m.session.Settings().View()
	m.renderer.Configure(m.viewport.Width, view.Theme)

	content := m.renderer.Welcome(view)
	if convs := m.session.Log().All(); len(convs) > 0 {
		content += "\n\n" + m.renderer.Transcript(convs, view.User)
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

// Input returns the current input line
func (m Model) Input() string {
	return m.input.Value()
}

// View renders the screen
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}
	header := headerStyle.Render(m.session.Cwd())
	footer := footerStyle.Render("Tab complete · ↑/↓ history · PgUp/PgDn scroll · Ctrl+C quit")
	if cands, cur := m.session.Completer().Candidates(); len(cands) > 1 {
		footer = m.renderer.Candidates(cands, cur)
	}
	return strings.Join([]string{header, m.viewport.View(), m.input.View(), footer}, "\n")
}
