// Package themes holds the color themes of the live view.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Status   lipgloss.Style
	Pinned   lipgloss.Style
	Idle     lipgloss.Style
	Quitting lipgloss.Style
	Help     lipgloss.Style
}

// Default is the default theme.
var Default = Theme{
	Status: lipgloss.NewStyle().
		PaddingLeft(1),
	Pinned: lipgloss.NewStyle().
		PaddingLeft(1).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("#f59e0b")),
	Idle: lipgloss.NewStyle().
		PaddingLeft(1).
		Foreground(lipgloss.Color("#737373")).
		Italic(true),
	Quitting: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")),
	Help: lipgloss.NewStyle().
		PaddingLeft(1).
		MarginTop(1),
}
