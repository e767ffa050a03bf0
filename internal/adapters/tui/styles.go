package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	todayBadgeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("237"))
	completedStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	noteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	eventStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	taskStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	projectedStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	calEventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Faint(true)

	tagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	stripStyle     = lipgloss.NewStyle().Faint(true)
	stripMarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Faint(true)

	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
	hintSelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)
