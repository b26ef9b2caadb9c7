package chat

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Send       key.Binding
	Quit       key.Binding
	CopyAnswer key.Binding
	ScrollUp   key.Binding
	ScrollDn   key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
}

var keys = keyMap{
	Send: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
	CopyAnswer: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("C-y", "copy last answer"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("C-u", "scroll up"),
	),
	ScrollDn: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-d", "scroll down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
}
