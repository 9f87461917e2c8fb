package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			MarginRight(1)

	cardValueStyle = lipgloss.NewStyle().Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			MarginTop(1)

	completedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	incompleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	barStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
