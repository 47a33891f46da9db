// Package tui is the terminal front end: a first-run capture wizard and a
// status view. It subscribes to session transitions like any other
// downstream consumer; the state machines never depend on it.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette follows the original client's dark theme.
var (
	colorAccent  = lipgloss.Color("#5865F2")
	colorSuccess = lipgloss.Color("#43B581")
	colorDanger  = lipgloss.Color("#F04747")
	colorWarning = lipgloss.Color("#FAA61A")
	colorText    = lipgloss.Color("#DCDDDE")
	colorDimmed  = lipgloss.Color("#6b7280")
	colorBorder  = lipgloss.Color("#4b5563")
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			MarginBottom(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	bindingStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	dangerStyle  = lipgloss.NewStyle().Foreground(colorDanger)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	textStyle    = lipgloss.NewStyle().Foreground(colorText)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDimmed)
)
