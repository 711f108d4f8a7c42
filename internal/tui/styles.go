package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("99")
	errorColor   = lipgloss.Color("196")
	mutedColor   = lipgloss.Color("245")
	accentColor  = lipgloss.Color("212")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			PaddingRight(2)

	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	itemStyle = lipgloss.NewStyle().PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderForeground(accentColor)

	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle  = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	keyStyle    = lipgloss.NewStyle().Foreground(accentColor)
	helpStyle   = lipgloss.NewStyle().PaddingLeft(2)
	footerStyle = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)

	emptyStateStyle = lipgloss.NewStyle().Foreground(mutedColor).Padding(1, 2)

	spinnerStyle = lipgloss.NewStyle().Foreground(primaryColor)
)
