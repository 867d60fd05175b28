package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorOK     = lipgloss.Color("#00FF00")
	colorWarn   = lipgloss.Color("#FFFF00")
	colorError  = lipgloss.Color("#FF0000")
	colorMuted  = lipgloss.Color("#888888")
	colorAccent = lipgloss.Color("#7B68EE")
	colorBorder = lipgloss.Color("#444444")
)

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	styleBody = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(colorBorder)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	stylePrompt = lipgloss.NewStyle().
			Foreground(colorAccent).Bold(true)

	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
)

// statusStyle colors the API key indicator.
func statusStyle(keySet bool) lipgloss.Style {
	if keySet {
		return lipgloss.NewStyle().Foreground(colorOK)
	}
	return lipgloss.NewStyle().Foreground(colorError)
}
