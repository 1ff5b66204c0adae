package model

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the TUI key bindings. It satisfies help.KeyMap so the
// status bar can render itself from the same source of truth.
type keyMap struct {
	Log      key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	NextPane key.Binding
	Open     key.Binding
	Week     key.Binding
	Month    key.Binding
	All      key.Binding
	Copy     key.Binding
	Clear    key.Binding
	Install  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var defaultKeys = keyMap{
	Log: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "log event"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev day"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next day"),
	),
	NextPane: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "pane"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open day"),
	),
	Week: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "week"),
	),
	Month: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "month"),
	),
	All: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "all time"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Clear: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "clear all"),
	),
	Install: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "install"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns the bindings for the one-line help bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Log, k.NextPane, k.Copy, k.Clear, k.Help, k.Quit}
}

// FullHelp returns the bindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Log, k.Copy, k.Clear, k.Install, k.Quit},
		{k.Up, k.Down, k.NextPane, k.Open},
		{k.Week, k.Month, k.All, k.Left, k.Right},
	}
}
