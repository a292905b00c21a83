package launchpad

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/oto-sh/oto/pkg/views"
)

func TestGateRedirectsGuestsForEveryProtectedApp(t *testing.T) {
	for _, id := range []views.ID{views.Spaces, views.Conversations, views.Contacts, views.Agents} {
		require.Equal(t, views.Login, Gate(id, false), "view %s", id)
	}
}

func TestGatePassesThroughForAuthenticatedUsers(t *testing.T) {
	for _, id := range []views.ID{views.Spaces, views.Conversations, views.Contacts, views.Agents, views.Settings} {
		require.Equal(t, id, Gate(id, true), "view %s", id)
	}
}

func TestGateLeavesPublicAppsOpenToGuests(t *testing.T) {
	for _, id := range []views.ID{views.Labs, views.Articles, views.Settings, views.Billing, views.Login, views.Signup} {
		require.Equal(t, id, Gate(id, false), "view %s", id)
	}
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEnterEmitsOpenAppForSelectedCard(t *testing.T) {
	m := New()
	m, _ = m.Update(keyMsg("l")) // move to Conversations
	require.Equal(t, views.Conversations, m.Selected().View)

	m, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	msg := cmd()
	open, ok := msg.(OpenAppMsg)
	require.True(t, ok)
	require.Equal(t, views.Conversations, open.View)
}

func TestEscEmitsClose(t *testing.T) {
	m := New()
	_, cmd := m.Update(keyMsg("esc"))
	require.NotNil(t, cmd)
	_, ok := cmd().(CloseMsg)
	require.True(t, ok)
}

func TestCursorStaysInBounds(t *testing.T) {
	m := New()
	for i := 0; i < 20; i++ {
		m, _ = m.Update(keyMsg("l"))
	}
	require.Equal(t, len(defaultCards())-1, m.cursor)
	for i := 0; i < 20; i++ {
		m, _ = m.Update(keyMsg("h"))
	}
	require.Equal(t, 0, m.cursor)
}

func TestGridVerticalMovement(t *testing.T) {
	m := New()
	m, _ = m.Update(keyMsg("j"))
	require.Equal(t, views.Articles, m.Selected().View) // one row down from Spaces
	m, _ = m.Update(keyMsg("k"))
	require.Equal(t, views.Spaces, m.Selected().View)
}
