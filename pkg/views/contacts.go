package views

import (
	"context"
	"time"

	bspinner "github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

type contactsLoadedMsg struct {
	contacts []contactRow
	err      error
}

type contactRow struct {
	ID      string
	Name    string
	Email   string
	Company string
}

// ContactsModel lists CRM contacts in a table. Data is fetched once on mount;
// fetch failures degrade to the empty state.
type ContactsModel struct {
	env     Env
	table   table.Model
	spin    bspinner.Model
	loading bool
	failed  bool
	count   int
}

func NewContacts(env Env) ContactsModel {
	sp := bspinner.New()
	sp.Spinner = bspinner.Line
	cols := []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Email", Width: 28},
		{Title: "Company", Width: 20},
	}
	tbl := table.New(table.WithColumns(cols), table.WithHeight(12), table.WithFocused(true))
	return ContactsModel{env: env, table: tbl, spin: sp, loading: true}
}

func (m ContactsModel) fetch() tea.Cmd {
	env := m.env
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		contacts, err := env.API.ListContacts(ctx)
		if err != nil {
			return contactsLoadedMsg{err: err}
		}
		rows := make([]contactRow, 0, len(contacts))
		for _, c := range contacts {
			rows = append(rows, contactRow{ID: c.ID, Name: c.Name, Email: c.Email, Company: c.Company})
		}
		return contactsLoadedMsg{contacts: rows}
	}
}

func (m ContactsModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetch())
}

func (m ContactsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case contactsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			log.Warn().Err(msg.err).Str("component", "contacts_view").Msg("contact fetch failed, showing empty state")
			m.failed = true
			return m, nil
		}
		rows := make([]table.Row, 0, len(msg.contacts))
		for _, c := range msg.contacts {
			rows = append(rows, table.Row{c.Name, c.Email, c.Company})
		}
		m.table.SetRows(rows)
		m.count = len(rows)
		return m, nil
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(4, msg.Height-4))
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	cmds = append(cmds, cmd)
	m.table, cmd = m.table.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m ContactsModel) View() string {
	header := titleStyle.Render("Contacts")
	if m.loading {
		return header + "\n" + m.spin.View() + dimStyle.Render(" loading contacts…")
	}
	if m.failed {
		return header + "\n" + errorStyle.Render("Couldn't reach the server.") + "\n" + emptyState("contacts", "Check your connection and reopen this window.")
	}
	if m.count == 0 {
		return header + "\n" + emptyState("contacts", "Import your audience or add a contact from the dashboard.")
	}
	return header + "\n" + m.table.View()
}
