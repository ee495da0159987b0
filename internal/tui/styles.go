package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	incomeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	expenseStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	selectedStyle   = lipgloss.NewStyle().Bold(true)
	deletingStyle   = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	cardStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(22)
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)
