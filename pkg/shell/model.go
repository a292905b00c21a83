// Package shell composes the Oto desktop: the conversational home screen,
// the window stack, and the launchpad overlay, routed through one Bubble Tea
// model.
package shell

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oto-sh/oto/pkg/api"
	"github.com/oto-sh/oto/pkg/chat"
	"github.com/oto-sh/oto/pkg/chat/engine"
	"github.com/oto-sh/oto/pkg/launchpad"
	"github.com/oto-sh/oto/pkg/persistence/transcript"
	"github.com/oto-sh/oto/pkg/prefs"
	"github.com/oto-sh/oto/pkg/session"
	"github.com/oto-sh/oto/pkg/shell/windows"
	"github.com/oto-sh/oto/pkg/views"
)

// actionSink collects executed action requests during one Update cycle so the
// shell can materialize them (and run the new view's Init) afterwards. Values
// pass through untouched.
type actionSink struct {
	pending []chat.ActionRequest
}

func (s *actionSink) execute(a chat.ActionRequest) {
	s.pending = append(s.pending, a)
}

func (s *actionSink) drain() []chat.ActionRequest {
	out := s.pending
	s.pending = nil
	return out
}

type Model struct {
	win     *windows.Manager
	reg     *views.Registry
	sess    *session.Memory
	store   prefs.Store
	client  *api.Client
	eng     *engine.Engine
	archive *transcript.Store

	tl        timeline
	pad       launchpad.Model
	padOpen   bool
	sink      *actionSink
	sessionID string
	authSeen  bool
	width     int
	height    int
}

// New wires the shell. archive may be nil when transcript recording is off.
func New(store prefs.Store, sess *session.Memory, client *api.Client, eng *engine.Engine, archive *transcript.Store) Model {
	reg := views.NewRegistry()
	views.RegisterBuiltins(reg)

	sink := &actionSink{}
	m := Model{
		win:       windows.NewManager(),
		reg:       reg,
		sess:      sess,
		store:     store,
		client:    client,
		eng:       eng,
		archive:   archive,
		pad:       launchpad.New(),
		sink:      sink,
		sessionID: uuid.NewString(),
	}
	m.tl = newTimeline(store, sink.execute)
	_, m.authSeen = sess.Current()
	return m
}

func (m Model) env() views.Env {
	sess := m.sess
	return views.Env{
		API:          m.client,
		Session:      sess,
		Prefs:        m.store,
		Authenticate: func(s session.Session) { sess.Set(s) },
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tl.Init(), m.tl.spin.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.tl = m.tl.setSize(msg.Width, msg.Height)
		m.pad = m.pad.SetSize(msg.Width, msg.Height)
		inner := tea.WindowSizeMsg{Width: msg.Width - 4, Height: msg.Height - 6}
		cmds = append(cmds, m.broadcastToWindows(inner))
		return m, tea.Batch(cmds...)

	case engine.ReplyMsg:
		var cmd tea.Cmd
		m.tl, cmd = m.tl.appendAgent(msg.Message)
		cmds = append(cmds, cmd)
		m.record(msg.Message)
		cmds = append(cmds, m.drainActions()...)
		return m, tea.Batch(cmds...)

	case chatSubmitMsg:
		// The user turn lands on the timeline before the engine can even
		// schedule its reply.
		var userMsg chat.Message
		m.tl, userMsg = m.tl.appendUser(msg.text)
		m.record(userMsg)
		if _, authed := m.sess.Current(); authed {
			// A signed-in user is past the funnel; their turns never touch
			// the onboarding machine.
			m.eng.SubmitAuthenticated(msg.text)
			return m, nil
		}
		m.backupAnswer(msg.text)
		m.eng.Submit(msg.text)
		return m, nil

	case launchpad.OpenAppMsg:
		m.padOpen = false
		cmds = append(cmds, m.openApp(msg.View))
		return m, tea.Batch(cmds...)

	case launchpad.CloseMsg:
		m.padOpen = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Everything else (spinner ticks, countdown ticks, fetch results) is
	// broadcast: the timeline and each window filter what is theirs.
	var cmd tea.Cmd
	m.tl, cmd = m.tl.update(msg)
	cmds = append(cmds, cmd)
	cmds = append(cmds, m.broadcastToWindows(msg))
	cmds = append(cmds, m.drainActions()...)
	m = m.announceAuth()
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+l":
		// The trigger itself is gated: a guest never sees the launchpad.
		if _, authed := m.sess.Current(); !authed {
			return m, m.openApp(views.Login)
		}
		m.padOpen = !m.padOpen
		return m, nil
	}

	if m.padOpen {
		var cmd tea.Cmd
		m.pad, cmd = m.pad.Update(msg)
		return m, cmd
	}

	if focused, ok := m.win.Focused(); ok {
		switch msg.String() {
		case "tab":
			m.win.CycleFocus()
			return m, nil
		case "esc", "ctrl+w":
			m.win.Close(focused.ID)
			return m, nil
		}
		app, cmd := focused.App.Update(msg)
		m.win.SetApp(focused.ID, app)
		cmds = append(cmds, cmd)
		m = m.announceAuth()
		cmds = append(cmds, m.drainActions()...)
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.tl, cmd = m.tl.update(msg)
	cmds = append(cmds, cmd)
	cmds = append(cmds, m.drainActions()...)
	return m, tea.Batch(cmds...)
}

// broadcastToWindows forwards msg to every open window's view. Views guard
// against messages that are not theirs.
func (m Model) broadcastToWindows(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, w := range m.win.Windows() {
		app, cmd := w.App.Update(msg)
		m.win.SetApp(w.ID, app)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// drainActions materializes windows for every action executed this cycle.
func (m Model) drainActions() []tea.Cmd {
	var cmds []tea.Cmd
	for _, a := range m.sink.drain() {
		if a.Kind != chat.ActionOpenWindow {
			log.Warn().Str("component", "shell").Str("kind", string(a.Kind)).Msg("ignoring unknown action kind")
			continue
		}
		if cmd := m.openWindow(a.Data.ID, a.Data.Title, a.Data.View); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// openApp opens a launchpad/trigger request, applying the auth gate first.
func (m Model) openApp(requested views.ID) tea.Cmd {
	_, authed := m.sess.Current()
	resolved := launchpad.Gate(requested, authed)
	if resolved != requested {
		log.Info().Str("component", "shell").Str("requested", string(requested)).Msg("guest redirected to sign-in")
	}
	return m.openWindow(string(resolved), resolved.Title(), resolved)
}

// openWindow opens (or refocuses) the window id hosting view. The three
// values given here are exactly what the window manager records.
func (m Model) openWindow(id, title string, view views.ID) tea.Cmd {
	if m.win.Focus(id) {
		return nil
	}
	app, err := m.reg.Resolve(view, m.env())
	if err != nil {
		log.Error().Err(err).Str("component", "shell").Str("view", string(view)).Msg("cannot resolve view")
		return nil
	}
	if m.width > 0 {
		app, _ = app.Update(tea.WindowSizeMsg{Width: m.width - 4, Height: m.height - 6})
	}
	if err := m.win.Open(id, title, app); err != nil {
		log.Error().Err(err).Str("component", "shell").Msg("window open rejected")
		return nil
	}
	return app.Init()
}

// announceAuth appends a one-time welcome to the timeline when the session
// flips from guest to signed in (a login/signup form completed).
func (m Model) announceAuth() Model {
	sess, authed := m.sess.Current()
	if !authed || m.authSeen {
		return m
	}
	m.authSeen = true
	welcome := chat.NewMessage(chat.RoleAgent, "You're signed in — your desktop is unlocked. Press ctrl+l to open the launchpad.")
	m.tl, _ = m.tl.appendAgent(welcome)
	m.record(welcome)
	if err := m.store.SetBool(prefs.KeyOnboardingDone, true); err != nil {
		log.Warn().Err(err).Str("component", "shell").Msg("failed to persist onboarding flag")
	}
	log.Info().Str("component", "shell").Str("email", sess.Email).Msg("session promoted")
	return m
}

// backupAnswer appends a guest's funnel answer to the device-local backup so
// a later signup can prefill what the visitor already said. Signed-in turns
// are not funnel answers and are skipped.
func (m Model) backupAnswer(text string) {
	if _, authed := m.sess.Current(); authed {
		return
	}
	prev, err := m.store.GetString(prefs.KeyOnboardingAnswers)
	if err != nil {
		log.Warn().Err(err).Str("component", "shell").Msg("failed to read onboarding answer backup")
		return
	}
	next := text
	if prev != "" {
		next = prev + "\n" + text
	}
	if err := m.store.SetString(prefs.KeyOnboardingAnswers, next); err != nil {
		log.Warn().Err(err).Str("component", "shell").Msg("failed to back up onboarding answer")
	}
}

// record archives a message when transcript recording is enabled. Failures
// are soft: the live session never depends on the archive.
func (m Model) record(msg chat.Message) {
	if m.archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.archive.Append(ctx, m.sessionID, msg); err != nil {
		log.Warn().Err(err).Str("component", "shell").Msg("transcript append failed")
	}
}

var (
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	titleBar     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	taskbarItem  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	taskbarFocus = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true).Padding(0, 1)
	shellHint    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m Model) View() string {
	if m.width == 0 {
		return "starting oto…"
	}
	if m.padOpen {
		return m.pad.View()
	}
	focused, ok := m.win.Focused()
	if !ok {
		return m.tl.View()
	}

	bar := titleBar.Render(focused.Title) + "  " + shellHint.Render("esc: close · tab: next window · ctrl+l: launchpad")
	panel := panelStyle.Width(m.width - 2).Height(m.height - 4).Render(focused.App.View())

	// Taskbar shows the stack in z-order, topmost last.
	var items []string
	for _, w := range m.win.Windows() {
		if w.ID == focused.ID {
			items = append(items, taskbarFocus.Render("["+w.Title+"]"))
		} else {
			items = append(items, taskbarItem.Render(w.Title))
		}
	}
	taskbar := lipgloss.JoinHorizontal(lipgloss.Top, items...)
	return lipgloss.JoinVertical(lipgloss.Left, bar, panel, taskbar)
}
