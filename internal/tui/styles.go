package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Static styles for the scoreboard and log panes
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1D7A46")).
			Bold(true).
			Padding(0, 2)

	ScoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64B5F6")).
			Bold(true)

	TargetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB74D")).
			Bold(true)

	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	OutStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	RunsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4"))

	LogStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	BarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Background(lipgloss.Color("#303030")).
			Padding(0, 1)
)

// instructionColor softens the help bar on light terminals
func instructionColor() lipgloss.Color {
	if termenv.HasDarkBackground() {
		return lipgloss.Color("#96CEB4")
	}
	return lipgloss.Color("#1D7A46")
}
