package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard bindings of the analyzer screen
type KeyMap struct {
	Analyze     key.Binding
	Clear       key.Binding
	SwitchFocus key.Binding
	Up          key.Binding
	Down        key.Binding
	LoadSample  key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings. Terminals cannot tell ctrl+enter from enter,
// so alt+enter and ctrl+s trigger analysis instead.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Analyze: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+s"),
			key.WithHelp("alt+enter/C-s", "analyze"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "input/samples"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous sample"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next sample"),
		),
		LoadSample: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load sample"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc/C-c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Analyze, k.Clear, k.SwitchFocus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Analyze, k.Clear},
		{k.SwitchFocus, k.Up, k.Down, k.LoadSample},
		{k.Help, k.Quit},
	}
}
