package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap contains all key bindings of the task view.
type KeyMap struct {
	NextTasklist     key.Binding
	PreviousTasklist key.Binding
	NextTask         key.Binding
	PreviousTask     key.Binding
	Toggle           key.Binding
	Copy             key.Binding
	Quit             key.Binding
}

// DefaultKeyMap returns the default Vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTasklist: key.NewBinding(
			key.WithKeys("l", "right", "tab"),
			key.WithHelp("l", "next list"),
		),
		PreviousTasklist: key.NewBinding(
			key.WithKeys("h", "left", "shift+tab"),
			key.WithHelp("h", "prev list"),
		),
		NextTask: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "down"),
		),
		PreviousTask: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "up"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "done/undo"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy title"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTask, k.PreviousTask, k.NextTasklist, k.PreviousTasklist, k.Toggle, k.Copy, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTask, k.PreviousTask},
		{k.NextTasklist, k.PreviousTasklist},
		{k.Toggle, k.Copy, k.Quit},
	}
}
