package tui

import (
	"github.com/Veraticus/what-have-i-done/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
)

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Options  []tea.ProgramOption
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		ShowHelp: true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithHelp toggles the key help line.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}

// WithProgramOptions passes options to the bubbletea program, for example its input
// and output in tests.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(c *Config) {
		c.Options = append(c.Options, opts...)
	}
}
