package views

import (
	"context"
	"fmt"
	"time"

	bspinner "github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// listItem is one row of a simple selectable list view.
type listItem struct {
	title string
	desc  string
}

// listModel is the shared shape of the Spaces, Conversations and Agents
// views: spinner while loading, cursor list when data arrives, empty state
// with a call to action otherwise.
type listModel struct {
	name      string
	component string
	cta       string
	fetch     func(context.Context) ([]listItem, error)

	spin    bspinner.Model
	items   []listItem
	cursor  int
	loading bool
}

type listLoadedMsg struct {
	component string
	items     []listItem
	err       error
}

func newListModel(name, component, cta string, fetch func(context.Context) ([]listItem, error)) listModel {
	sp := bspinner.New()
	sp.Spinner = bspinner.Dot
	return listModel{name: name, component: component, cta: cta, fetch: fetch, spin: sp, loading: true}
}

func (m listModel) Init() tea.Cmd {
	fetch := m.fetch
	component := m.component
	load := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		items, err := fetch(ctx)
		return listLoadedMsg{component: component, items: items, err: err}
	}
	return tea.Batch(m.spin.Tick, load)
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		if msg.component != m.component {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			log.Warn().Err(msg.err).Str("component", m.component).Msg("list fetch failed, showing empty state")
			return m, nil
		}
		m.items = msg.items
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m listModel) View() string {
	out := titleStyle.Render(m.name) + "\n"
	if m.loading {
		return out + m.spin.View() + dimStyle.Render(" loading…")
	}
	if len(m.items) == 0 {
		return out + emptyState(m.name, m.cta)
	}
	for i, it := range m.items {
		line := it.title
		if it.desc != "" {
			line += "  " + dimStyle.Render(it.desc)
		}
		if i == m.cursor {
			out += selectedStyle.Render("› "+line) + "\n"
		} else {
			out += itemStyle.Render(line) + "\n"
		}
	}
	return out
}

// NewSpaces lists community spaces.
func NewSpaces(env Env) tea.Model {
	return newListModel("Spaces", "spaces_view", "Create a space to gather your community.", func(ctx context.Context) ([]listItem, error) {
		spaces, err := env.API.ListSpaces(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]listItem, 0, len(spaces))
		for _, s := range spaces {
			items = append(items, listItem{title: s.Name, desc: fmt.Sprintf("%d members", s.Members)})
		}
		return items, nil
	})
}

// NewConversations lists recent conversations.
func NewConversations(env Env) tea.Model {
	return newListModel("Conversations", "conversations_view", "Start a conversation from the home screen.", func(ctx context.Context) ([]listItem, error) {
		convs, err := env.API.ListConversations(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]listItem, 0, len(convs))
		for _, c := range convs {
			items = append(items, listItem{title: c.Title, desc: c.LastMessage})
		}
		return items, nil
	})
}

// NewAgents lists configured agents with their status.
func NewAgents(env Env) tea.Model {
	return newListModel("Agents", "agents_view", "Configure your first agent to automate replies.", func(ctx context.Context) ([]listItem, error) {
		agents, err := env.API.ListAgents(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]listItem, 0, len(agents))
		for _, a := range agents {
			status := badgeOffStyle.Render("○ " + a.Status)
			if a.Status == "active" {
				status = badgeOnStyle.Render("● active")
			}
			items = append(items, listItem{title: a.Name, desc: status + " " + a.Model})
		}
		return items, nil
	})
}
