package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Help     key.Binding
	Refresh  key.Binding
	Generate key.Binding
	Adjust   key.Binding
	Done     key.Binding
	Missed   key.Binding
	Pending  key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Quit, k.Help, k.Refresh},
		{k.Up, k.Down, k.Generate, k.Adjust, k.Done, k.Missed, k.Pending},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate plan"),
		),
		Adjust: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "adjust missed"),
		),
		Done: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "mark done"),
		),
		Missed: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark missed"),
		),
		Pending: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "mark pending"),
		),
	}
}
