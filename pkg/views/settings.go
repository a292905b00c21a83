package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/oto-sh/oto/pkg/prefs"
)

type settingsRow struct {
	label string
	key   string
	kind  string // "bool" or "theme"
}

// SettingsModel edits device-local preferences through the injected prefs
// store. Changes are written immediately on toggle.
type SettingsModel struct {
	env    Env
	rows   []settingsRow
	cursor int
}

func NewSettings(env Env) SettingsModel {
	return SettingsModel{
		env: env,
		rows: []settingsRow{
			{label: "Dark theme", key: prefs.KeyTheme, kind: "theme"},
			{label: "Auto-approve sign-in prompts", key: prefs.AutoApproveKey("auth_window"), kind: "bool"},
			{label: "Onboarding completed", key: prefs.KeyOnboardingDone, kind: "bool"},
		},
	}
}

func (m SettingsModel) Init() tea.Cmd { return nil }

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.toggle(m.rows[m.cursor])
	}
	return m, nil
}

func (m SettingsModel) toggle(row settingsRow) {
	switch row.kind {
	case "theme":
		cur, _ := m.env.Prefs.GetString(row.key)
		next := "dark"
		if cur == "dark" {
			next = "light"
		}
		if err := m.env.Prefs.SetString(row.key, next); err != nil {
			log.Warn().Err(err).Str("component", "settings_view").Msg("failed to persist theme")
		}
	default:
		cur, _ := m.env.Prefs.GetBool(row.key)
		if err := m.env.Prefs.SetBool(row.key, !cur); err != nil {
			log.Warn().Err(err).Str("component", "settings_view").Str("key", row.key).Msg("failed to persist preference")
		}
	}
}

func (m SettingsModel) View() string {
	out := titleStyle.Render("Settings") + "\n\n"
	for i, row := range m.rows {
		var state string
		switch row.kind {
		case "theme":
			cur, _ := m.env.Prefs.GetString(row.key)
			if cur == "" {
				cur = "light"
			}
			state = accentStyle.Render(cur)
		default:
			on, _ := m.env.Prefs.GetBool(row.key)
			if on {
				state = badgeOnStyle.Render("on")
			} else {
				state = badgeOffStyle.Render("off")
			}
		}
		line := row.label + "  " + state
		if i == m.cursor {
			out += selectedStyle.Render("› "+line) + "\n"
		} else {
			out += itemStyle.Render(line) + "\n"
		}
	}
	out += "\n" + dimStyle.Render("enter/space toggles · preferences are stored on this device only")
	return out
}
