package shell

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	bspinner "github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/oto-sh/oto/pkg/actioncard"
	"github.com/oto-sh/oto/pkg/chat"
	"github.com/oto-sh/oto/pkg/prefs"
)

// chatSubmitMsg carries one user turn out of the timeline into the shell.
type chatSubmitMsg struct {
	text string
}

var (
	youStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	agentStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	stampStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	optionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	thinkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	hintBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// timeline is the conversational home screen: the append-only message log,
// the input line, and the action cards hanging off assistant messages.
type timeline struct {
	vp       viewport.Model
	input    textinput.Model
	spin     bspinner.Model
	store    prefs.Store
	execute  func(chat.ActionRequest)
	messages []chat.Message
	cards    map[string]actioncard.Model
	renderer *glamour.TermRenderer
	thinking bool
	width    int
	height   int
}

func newTimeline(store prefs.Store, execute func(chat.ActionRequest)) timeline {
	ti := textinput.New()
	ti.Placeholder = "Say something…"
	ti.Focus()
	sp := bspinner.New()
	sp.Spinner = bspinner.Dot
	vp := viewport.New(80, 20)
	return timeline{
		vp:      vp,
		input:   ti,
		spin:    sp,
		store:   store,
		execute: execute,
		cards:   map[string]actioncard.Model{},
	}
}

func (t timeline) Init() tea.Cmd {
	return textinput.Blink
}

func (t timeline) setSize(w, h int) timeline {
	t.width, t.height = w, h
	t.vp.Width = w
	t.vp.Height = h - 3
	t.input.Width = w - 4
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(min(w-4, 100)))
	if err != nil {
		log.Warn().Err(err).Str("component", "timeline").Msg("glamour renderer unavailable, falling back to plain text")
	} else {
		t.renderer = renderer
	}
	t.refresh()
	return t
}

// appendUser records the user's turn synchronously, before any reply can be
// scheduled.
func (t timeline) appendUser(text string) (timeline, chat.Message) {
	m := chat.NewMessage(chat.RoleUser, text)
	t.messages = append(t.messages, m)
	t.thinking = true
	t.refresh()
	return t, m
}

// appendAgent records an assistant reply. When the message proposes an
// action, a card is mounted for it; the returned cmd starts the card's
// countdown when the auto-approve preference is on.
func (t timeline) appendAgent(m chat.Message) (timeline, tea.Cmd) {
	t.messages = append(t.messages, m)
	t.thinking = false
	var cmd tea.Cmd
	if m.Action != nil {
		card := actioncard.New(m.ID, *m.Action, t.store, t.execute)
		t.cards[m.ID] = card
		cmd = card.Init()
	}
	t.refresh()
	return t, cmd
}

// latestCard returns the most recent actionable card that is not yet done.
func (t timeline) latestCard() (string, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		m := t.messages[i]
		if m.Action == nil {
			continue
		}
		card, ok := t.cards[m.ID]
		if !ok || card.Phase() == actioncard.PhaseExecuted {
			return "", false
		}
		return m.ID, true
	}
	return "", false
}

// latestOptions returns quick replies of the newest message, if any.
func (t timeline) latestOptions() []chat.Option {
	if len(t.messages) == 0 {
		return nil
	}
	return t.messages[len(t.messages)-1].Options
}

func (t timeline) update(msg tea.Msg) (timeline, tea.Cmd) {
	switch msg := msg.(type) {
	case actioncard.TickMsg:
		card, ok := t.cards[msg.CardID]
		if !ok {
			return t, nil
		}
		card, cmd := card.Update(msg)
		t.cards[msg.CardID] = card
		t.refresh()
		return t, cmd
	case tea.KeyMsg:
		return t.handleKey(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	t.spin, cmd = t.spin.Update(msg)
	cmds = append(cmds, cmd)
	t.vp, cmd = t.vp.Update(msg)
	cmds = append(cmds, cmd)
	return t, tea.Batch(cmds...)
}

func (t timeline) handleKey(msg tea.KeyMsg) (timeline, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(t.input.Value())
		if text != "" {
			t.input.SetValue("")
			return t, func() tea.Msg { return chatSubmitMsg{text: text} }
		}
		if id, ok := t.latestCard(); ok {
			card := t.cards[id].Execute()
			t.cards[id] = card
			t.refresh()
		}
		return t, nil
	case "esc":
		if id, ok := t.latestCard(); ok {
			t.cards[id] = t.cards[id].Cancel()
			t.refresh()
		}
		return t, nil
	case "ctrl+a":
		if id, ok := t.latestCard(); ok {
			t.cards[id] = t.cards[id].ToggleAutoApprove()
			t.refresh()
		}
		return t, nil
	case "ctrl+y":
		if err := clipboard.WriteAll(t.transcript()); err != nil {
			log.Warn().Err(err).Str("component", "timeline").Msg("clipboard copy failed")
		}
		return t, nil
	}

	// Digits select quick replies when the input line is empty.
	if t.input.Value() == "" && len(msg.String()) == 1 && msg.String() >= "1" && msg.String() <= "9" {
		opts := t.latestOptions()
		idx := int(msg.String()[0] - '1')
		if idx < len(opts) {
			input := opts[idx].Input
			return t, func() tea.Msg { return chatSubmitMsg{text: input} }
		}
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// transcript renders the log as plain text for clipboard export.
func (t timeline) transcript() string {
	var b strings.Builder
	for _, m := range t.messages {
		who := "You"
		if m.Role == chat.RoleAgent {
			who = "Oto"
		}
		fmt.Fprintf(&b, "[%s] %s: %s\n", m.Timestamp, who, m.Content)
	}
	return b.String()
}

func (t *timeline) refresh() {
	var b strings.Builder
	for _, m := range t.messages {
		switch m.Role {
		case chat.RoleUser:
			b.WriteString(youStyle.Render("You") + " " + stampStyle.Render(m.Timestamp) + "\n")
			b.WriteString(m.Content + "\n")
		default:
			b.WriteString(agentStyle.Render("Oto") + " " + stampStyle.Render(m.Timestamp) + "\n")
			b.WriteString(t.renderMarkdown(m.Content))
		}
		for i, opt := range m.Options {
			b.WriteString(optionStyle.Render(fmt.Sprintf("  [%d] %s", i+1, opt.Label)) + "\n")
		}
		if m.Action != nil {
			if card, ok := t.cards[m.ID]; ok {
				b.WriteString(card.View() + "\n")
			}
		}
		b.WriteString("\n")
	}
	t.vp.SetContent(b.String())
	t.vp.GotoBottom()
}

func (t *timeline) renderMarkdown(content string) string {
	if t.renderer == nil {
		return content + "\n"
	}
	out, err := t.renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return strings.TrimLeft(out, "\n")
}

func (t timeline) View() string {
	status := hintBarStyle.Render("enter: send · digits: quick reply · ctrl+l: launchpad · ctrl+y: copy chat")
	if t.thinking {
		status = t.spin.View() + thinkStyle.Render(" Oto is thinking…")
	}
	return t.vp.View() + "\n" + status + "\n" + t.input.View()
}
