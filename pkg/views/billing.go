package views

import (
	"context"
	"time"

	bspinner "github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/oto-sh/oto/pkg/api"
)

type profileLoadedMsg struct {
	profile api.Profile
	err     error
}

// BillingModel shows the current plan from the profile endpoint.
type BillingModel struct {
	env     Env
	spin    bspinner.Model
	profile api.Profile
	loading bool
	failed  bool
}

func NewBilling(env Env) BillingModel {
	sp := bspinner.New()
	sp.Spinner = bspinner.Dot
	return BillingModel{env: env, spin: sp, loading: true}
}

func (m BillingModel) Init() tea.Cmd {
	env := m.env
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		p, err := env.API.Profile(ctx)
		return profileLoadedMsg{profile: p, err: err}
	})
}

func (m BillingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		m.loading = false
		if msg.err != nil {
			log.Warn().Err(msg.err).Str("component", "billing_view").Msg("profile fetch failed")
			m.failed = true
			return m, nil
		}
		m.profile = msg.profile
		return m, nil
	}
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m BillingModel) View() string {
	out := titleStyle.Render("Billing") + "\n"
	if m.loading {
		return out + m.spin.View() + dimStyle.Render(" loading plan…")
	}
	if m.failed {
		return out + errorStyle.Render("Couldn't load your plan.") + "\n" + emptyState("billing details", "Sign in to manage your plan.")
	}
	if m.profile.Plan == "" {
		return out + emptyState("billing details", "Sign in to manage your plan.")
	}
	out += "\nPlan: " + accentStyle.Render(m.profile.Plan)
	out += "\nAccount: " + m.profile.Email
	out += "\n\n" + dimStyle.Render("Manage invoices and payment methods from the web dashboard.")
	return out
}
