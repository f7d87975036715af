package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines global key bindings used across the TUI.
type keyMap struct {
	Quit  key.Binding
	Help  key.Binding
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding

	HourUp     key.Binding
	HourDown   key.Binding
	MinuteUp   key.Binding
	MinuteDown key.Binding
	SecondUp   key.Binding
	SecondDown key.Binding

	Set   key.Binding
	Start key.Binding
	Pause key.Binding
	Reset key.Binding
	Theme key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("←", "prev field"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "tab"),
			key.WithHelp("→", "next field"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "increase"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "decrease"),
		),
		HourUp: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h/H", "hours ±"),
		),
		HourDown: key.NewBinding(
			key.WithKeys("H"),
		),
		MinuteUp: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m/M", "minutes ±"),
		),
		MinuteDown: key.NewBinding(
			key.WithKeys("M"),
		),
		SecondUp: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s/S", "seconds ±"),
		),
		SecondDown: key.NewBinding(
			key.WithKeys("S"),
		),
		Set: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "set timer"),
		),
		Start: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Set, k.Start, k.Pause, k.Reset, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.HourUp, k.MinuteUp, k.SecondUp},
		{k.Set, k.Start, k.Pause, k.Reset},
		{k.Theme, k.Help, k.Quit},
	}
}
