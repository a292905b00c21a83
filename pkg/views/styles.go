package views

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	accentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	itemStyle      = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle  = lipgloss.NewStyle().PaddingLeft(0).Foreground(lipgloss.Color("213")).Bold(true)
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Italic(true).Padding(1, 2)
	badgeOnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("118")).Bold(true)
	badgeOffStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// emptyState renders the repo-wide "no data + call to action" pattern.
func emptyState(what, cta string) string {
	return emptyStyle.Render("No " + what + " yet.\n" + cta)
}
