package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle        key.Binding
	Reset         key.Binding
	Stop          key.Binding
	Notifications key.Binding
	Sound         key.Binding
	Confirm       key.Binding
	Cancel        key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle:        key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "start/pause")),
		Reset:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Stop:          key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Notifications: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notifications")),
		Sound:         key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "sound")),
		Confirm:       key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
		Cancel:        key.NewBinding(key.WithKeys("esc", "n"), key.WithHelp("esc", "cancel")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:          key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Stop, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Stop},
		{k.Notifications, k.Sound},
		{k.Help, k.Quit},
	}
}
