package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/oto-sh/oto/pkg/session"
)

// AuthModel hosts the login and signup forms. The real credential exchange is
// the backend's business; the form completing promotes the local session so
// the rest of the shell unlocks.
type AuthModel struct {
	env    Env
	signup bool
	form   *huh.Form
	// Pointer targets so the form keeps writing to the same storage across
	// the value copies Bubble Tea makes of this model.
	email *string
	name  *string
	pass  *string
	done  bool
}

func NewLogin(env Env) AuthModel {
	m := AuthModel{env: env, email: new(string), name: new(string), pass: new(string)}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Email").Placeholder("you@studio.com").Value(m.email),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(m.pass),
	))
	return m
}

func NewSignup(env Env) AuthModel {
	m := AuthModel{env: env, signup: true, email: new(string), name: new(string), pass: new(string)}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Placeholder("Ada Lovelace").Value(m.name),
		huh.NewInput().Title("Email").Placeholder("you@studio.com").Value(m.email),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(m.pass),
	))
	return m
}

func (m AuthModel) Init() tea.Cmd { return m.form.Init() }

func (m AuthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	fm, cmd := m.form.Update(msg)
	if f, ok := fm.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.done = true
		if m.env.Authenticate != nil {
			m.env.Authenticate(session.Session{
				UserID: uuid.NewString(),
				Email:  *m.email,
				Name:   *m.name,
				Token:  "", // issued by the backend once real credentials land
			})
		}
	}
	return m, cmd
}

func (m AuthModel) View() string {
	header := titleStyle.Render("Sign in to Oto")
	if m.signup {
		header = titleStyle.Render("Create your Oto account")
	}
	if m.done {
		return header + "\n\n" + badgeOnStyle.Render("✓ You're in.") + "\n" + dimStyle.Render("Close this window to get back to your desktop.")
	}
	return header + "\n\n" + m.form.View()
}
