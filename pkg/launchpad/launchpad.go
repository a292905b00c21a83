// Package launchpad is the full-screen overlay used to discover and open app
// windows, and the auth gate that decides whether an open request goes
// through or detours to sign-in.
package launchpad

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oto-sh/oto/pkg/views"
)

// protected is the static allow-list of apps that require a session. Adding a
// new protected app means adding it here; anything absent is public. Labs
// sub-apps stay public unless explicitly listed.
var protected = map[views.ID]bool{
	views.Spaces:        true,
	views.Conversations: true,
	views.Contacts:      true,
	views.Agents:        true,
}

// Protected reports whether id requires authentication.
func Protected(id views.ID) bool { return protected[id] }

// Gate resolves which view actually opens for a request. Guests asking for a
// protected app are redirected to the sign-in view; everything else passes
// through unchanged.
func Gate(requested views.ID, authenticated bool) views.ID {
	if !authenticated && Protected(requested) {
		return views.Login
	}
	return requested
}

// OpenAppMsg is emitted when the user activates a card.
type OpenAppMsg struct {
	View views.ID
}

// CloseMsg is emitted when the launchpad is dismissed without opening.
type CloseMsg struct{}

type Card struct {
	View  views.ID
	Label string
	Blurb string
}

func defaultCards() []Card {
	return []Card{
		{View: views.Spaces, Label: "Spaces", Blurb: "Your community rooms"},
		{View: views.Conversations, Label: "Conversations", Blurb: "Every thread in one inbox"},
		{View: views.Contacts, Label: "Contacts", Blurb: "CRM for your audience"},
		{View: views.Articles, Label: "Articles", Blurb: "Your published newsletters"},
		{View: views.Labs, Label: "Labs", Blurb: "Experiments, open to all"},
		{View: views.Agents, Label: "Agents", Blurb: "Configure your assistants"},
		{View: views.Settings, Label: "Settings", Blurb: "Theme and preferences"},
		{View: views.Billing, Label: "Billing", Blurb: "Plan and invoices"},
	}
}

const columns = 3

// Model is the overlay grid. It owns only its cursor; the decision of what
// a selection opens belongs to Gate and the shell.
type Model struct {
	cards  []Card
	cursor int
	width  int
	height int
}

func New() Model {
	return Model{cards: defaultCards()}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(w, h int) Model {
	m.width, m.height = w, h
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "esc", "ctrl+l":
		return m, func() tea.Msg { return CloseMsg{} }
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor-columns >= 0 {
			m.cursor -= columns
		}
	case "down", "j":
		if m.cursor+columns < len(m.cards) {
			m.cursor += columns
		}
	case "enter":
		view := m.cards[m.cursor].View
		return m, func() tea.Msg { return OpenAppMsg{View: view} }
	}
	return m, nil
}

// Selected is exposed for tests.
func (m Model) Selected() Card { return m.cards[m.cursor] }

var (
	padTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	padHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(24).Height(3)
	cardFocus     = cardStyle.BorderForeground(lipgloss.Color("213"))
	lockStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	blurbStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
)

func (m Model) View() string {
	header := padTitleStyle.Render("Launchpad") + "  " + padHintStyle.Render("enter: open · esc: close")
	var rows []string
	for start := 0; start < len(m.cards); start += columns {
		end := start + columns
		if end > len(m.cards) {
			end = len(m.cards)
		}
		var cells []string
		for i := start; i < end; i++ {
			c := m.cards[i]
			label := c.Label
			if Protected(c.View) {
				label += " " + lockStyle.Render("◆")
			}
			body := label + "\n" + blurbStyle.Render(c.Blurb)
			if i == m.cursor {
				cells = append(cells, cardFocus.Render(body))
			} else {
				cells = append(cells, cardStyle.Render(body))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	content := header + "\n\n" + grid
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
