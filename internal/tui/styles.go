package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/recipsum/internal/ui"
)

// Styles of the dashboard, rebuilt from the ui theme by initTUIStyles.
var (
	panelStyle       lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	dimStyle         lipgloss.Style
	accentStyle      lipgloss.Style
	successStyle     lipgloss.Style
	warningStyle     lipgloss.Style
	errorStyle       lipgloss.Style
	labelStyle       lipgloss.Style
	valueStyle       lipgloss.Style
	tableHeaderStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds the styles from the active ui theme. Run calls it
// again because the theme is chosen after package init.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	accentStyle = lipgloss.NewStyle().Foreground(t.Accent)
	successStyle = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(t.Dim)
	valueStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	tableHeaderStyle = lipgloss.NewStyle().Foreground(t.Dim).Underline(true)
}
