// Package actioncard renders a deferred action proposal from the chat
// timeline: execute on click, or count down and self-execute when the user
// has auto-approved this kind of action before.
package actioncard

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/oto-sh/oto/pkg/chat"
	"github.com/oto-sh/oto/pkg/prefs"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCounting
	PhaseExecuted
)

const countdownSeconds = 3

// TickMsg is one second of countdown for a specific card. Gen guards against
// ticks scheduled before a cancel: a stale generation can never fire the
// action, even if its timer message is already in flight.
type TickMsg struct {
	CardID string
	Gen    int
}

type Model struct {
	id        string
	action    chat.ActionRequest
	store     prefs.Store
	execute   func(chat.ActionRequest)
	phase     Phase
	remaining int
	gen       int
	approve   bool
}

// New builds a card for action. When the action carries an auto-approve key
// and the persisted preference for it is on, the card mounts counting instead
// of idle.
func New(id string, action chat.ActionRequest, store prefs.Store, execute func(chat.ActionRequest)) Model {
	m := Model{id: id, action: action, store: store, execute: execute, phase: PhaseIdle}
	if action.AutoApproveKey != "" && store != nil {
		on, err := store.GetBool(prefs.AutoApproveKey(action.AutoApproveKey))
		if err != nil {
			log.Warn().Err(err).Str("component", "action_card").Msg("failed to read auto-approve preference")
		}
		m.approve = on
		if on {
			m.phase = PhaseCounting
			m.remaining = countdownSeconds
		}
	}
	return m
}

func (m Model) ID() string          { return m.id }
func (m Model) Phase() Phase        { return m.phase }
func (m Model) Remaining() int      { return m.remaining }
func (m Model) AutoApprove() bool   { return m.approve }
func (m Model) Action() chat.ActionRequest { return m.action }

func (m Model) Init() tea.Cmd {
	if m.phase == PhaseCounting {
		return m.tick()
	}
	return nil
}

func (m Model) tick() tea.Cmd {
	id, gen := m.id, m.gen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{CardID: id, Gen: gen}
	})
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tickMsg, ok := msg.(TickMsg)
	if !ok {
		return m, nil
	}
	if tickMsg.CardID != m.id || tickMsg.Gen != m.gen || m.phase != PhaseCounting {
		return m, nil
	}
	m.remaining--
	if m.remaining > 0 {
		return m, m.tick()
	}
	return m.Execute(), nil
}

// Execute fires the action callback exactly once and moves the card to its
// terminal state.
func (m Model) Execute() Model {
	if m.phase == PhaseExecuted {
		return m
	}
	m.phase = PhaseExecuted
	m.gen++
	if m.execute != nil {
		m.execute(m.action)
	}
	return m
}

// Cancel aborts a running countdown entirely; the card goes back to idle and
// waits for an explicit click.
func (m Model) Cancel() Model {
	if m.phase != PhaseCounting {
		return m
	}
	m.phase = PhaseIdle
	m.remaining = 0
	m.gen++
	return m
}

// ToggleAutoApprove flips the persisted preference. It never changes this
// card's own phase; only future cards with the same key mount differently.
func (m Model) ToggleAutoApprove() Model {
	if m.action.AutoApproveKey == "" || m.store == nil {
		return m
	}
	m.approve = !m.approve
	if err := m.store.SetBool(prefs.AutoApproveKey(m.action.AutoApproveKey), m.approve); err != nil {
		log.Warn().Err(err).Str("component", "action_card").Str("key", m.action.AutoApproveKey).Msg("failed to persist auto-approve preference")
	}
	return m
}

var (
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("63"))
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("118"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	countingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

func (m Model) View() string {
	approveHint := ""
	if m.action.AutoApproveKey != "" {
		state := "off"
		if m.approve {
			state = "on"
		}
		approveHint = hintStyle.Render(fmt.Sprintf("  ctrl+a: auto-approve [%s]", state))
	}
	switch m.phase {
	case PhaseExecuted:
		return cardStyle.Render(doneStyle.Render("✓ ") + m.action.Label + hintStyle.Render("  done"))
	case PhaseCounting:
		return cardStyle.Render(labelStyle.Render(m.action.Label) +
			countingStyle.Render(fmt.Sprintf("  auto in %ds", m.remaining)) +
			hintStyle.Render("  enter: now · esc: cancel") + approveHint)
	default:
		return cardStyle.Render(labelStyle.Render(m.action.Label) + hintStyle.Render("  enter: run") + approveHint)
	}
}
