package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type labCard struct {
	name  string
	blurb string
}

// LabsModel is the public experiments gallery. It is intentionally static:
// labs ship with the binary, not from the API.
type LabsModel struct {
	cards  []labCard
	cursor int
}

func NewLabs(_ Env) LabsModel {
	return LabsModel{
		cards: []labCard{
			{name: "Voice Notes", blurb: "Dictate a newsletter draft and let your agent clean it up."},
			{name: "Smart Digest", blurb: "Weekly digest of your spaces, summarized."},
			{name: "Link-in-bio", blurb: "A tiny public page generated from your profile."},
		},
	}
}

func (m LabsModel) Init() tea.Cmd { return nil }

func (m LabsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.cards)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m LabsModel) View() string {
	out := titleStyle.Render("Labs") + " " + dimStyle.Render("experimental, may change without notice") + "\n\n"
	cardStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(46)
	focused := cardStyle.BorderForeground(lipgloss.Color("213"))
	for i, c := range m.cards {
		body := accentStyle.Render(c.name) + "\n" + c.blurb
		if i == m.cursor {
			out += focused.Render(body) + "\n"
		} else {
			out += cardStyle.Render(body) + "\n"
		}
	}
	return out
}
