package windows

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

type stubApp struct{ name string }

func (s stubApp) Init() tea.Cmd                           { return nil }
func (s stubApp) Update(tea.Msg) (tea.Model, tea.Cmd)     { return s, nil }
func (s stubApp) View() string                            { return s.name }

func ids(m *Manager) []string {
	var out []string
	for _, w := range m.Windows() {
		out = append(out, w.ID)
	}
	return out
}

func TestOpenIsIdempotent(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Open("settings", "Settings", stubApp{"settings"}))
	require.NoError(t, m.Open("settings", "Settings", stubApp{"settings"}))
	require.Equal(t, 1, m.Len())
}

func TestReopenFocusesInsteadOfDuplicating(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Open("a", "A", stubApp{"a"}))
	require.NoError(t, m.Open("b", "B", stubApp{"b"}))
	require.Equal(t, []string{"a", "b"}, ids(m))

	require.NoError(t, m.Open("a", "A", stubApp{"a2"}))
	require.Equal(t, []string{"b", "a"}, ids(m))

	top, ok := m.Focused()
	require.True(t, ok)
	require.Equal(t, "a", top.ID)
	// The original instance is kept; reopening never remounts the view.
	require.Equal(t, "a", top.App.View())
}

func TestOpenRejectsEmptyID(t *testing.T) {
	m := NewManager()
	require.Error(t, m.Open("", "Broken", stubApp{}))
	require.Zero(t, m.Len())
}

func TestCloseIsNoOpWhenAbsent(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Open("a", "A", stubApp{"a"}))
	m.Close("missing")
	require.Equal(t, 1, m.Len())

	m.Close("a")
	require.Zero(t, m.Len())
	_, ok := m.Focused()
	require.False(t, ok)
}

func TestFocusReordersStack(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Open("a", "A", stubApp{"a"}))
	require.NoError(t, m.Open("b", "B", stubApp{"b"}))
	require.NoError(t, m.Open("c", "C", stubApp{"c"}))

	require.True(t, m.Focus("a"))
	require.Equal(t, []string{"b", "c", "a"}, ids(m))
	require.False(t, m.Focus("missing"))
}

func TestCycleFocus(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Open("a", "A", stubApp{"a"}))
	require.NoError(t, m.Open("b", "B", stubApp{"b"}))
	require.NoError(t, m.Open("c", "C", stubApp{"c"}))

	m.CycleFocus()
	require.Equal(t, []string{"c", "a", "b"}, ids(m))
	top, _ := m.Focused()
	require.Equal(t, "b", top.ID)
}

func TestSetAppKeepsPosition(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Open("a", "A", stubApp{"a"}))
	require.NoError(t, m.Open("b", "B", stubApp{"b"}))

	m.SetApp("a", stubApp{"a-next"})
	require.Equal(t, []string{"a", "b"}, ids(m))
	require.Equal(t, "a-next", m.Windows()[0].App.View())
}
