package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	Summary        key.Binding
	Details        key.Binding
	ManualAdd      key.Binding
	ManualSubtract key.Binding
	Pin            key.Binding
	Unpin          key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Summary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "summary"),
		),
		Details: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "detailed summary"),
		),
		ManualAdd: key.NewBinding(
			key.WithKeys("m", "+"),
			key.WithHelp("m", "add manual work"),
		),
		ManualSubtract: key.NewBinding(
			key.WithKeys("n", "-"),
			key.WithHelp("n", "remove manual work"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin previous window"),
		),
		Unpin: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unpin"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Summary, k.Pin, k.Unpin, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Summary, k.Details},
		{k.ManualAdd, k.ManualSubtract},
		{k.Pin, k.Unpin},
		{k.Help, k.Quit},
	}
}
