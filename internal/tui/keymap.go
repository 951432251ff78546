package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	NextTool  key.Binding
	PrevTool  key.Binding
	Activate  key.Binding
	Pin       key.Binding
	Close     key.Binding
	UpDown    key.Binding
	LeftRight key.Binding
	Toggle    key.Binding
	Layers    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTool:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tool")),
		PrevTool:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tool")),
		Activate:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
		Pin:       key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "pin panel")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		UpDown:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "navigate")),
		LeftRight: key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "change value")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Layers:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "layers")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTool, k.Activate, k.Pin, k.Close, k.Layers, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTool, k.PrevTool, k.Activate},
		{k.Pin, k.Close, k.Layers},
		{k.UpDown, k.LeftRight, k.Toggle},
		{k.Quit},
	}
}
