package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the TUI's own terminal bindings. These are unrelated to the
// global hotkey; they only drive the terminal views.
type KeyMap struct {
	Accept key.Binding
	Quit   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
