package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))

	cueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666"))

	bookmarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	wordCursorStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("#FF0000"))

	savedWordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true).
			Padding(0, 1)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)

	completeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)
)
