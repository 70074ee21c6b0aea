package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#2563EB")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Width(20).
			Foreground(lipgloss.Color("#A1A1AA"))

	labelFocusedStyle = labelStyle.
				Foreground(lipgloss.Color("#60A5FA")).
				Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#27272A")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")).
			Bold(true)

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A1A1AA"))

	errorPanelStyle = panelStyle.
			BorderForeground(lipgloss.Color("#EF4444"))

	errorTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FCA5A5"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A1A1AA")).
			Italic(true)
)
