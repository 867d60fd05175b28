package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit             key.Binding
	Submit           key.Binding
	ToggleGuidelines key.Binding
	Clear            key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "analyze"),
	),
	ToggleGuidelines: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "toggle guidelines"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
}

func helpLine() string {
	bindings := []key.Binding{keys.Submit, keys.ToggleGuidelines, keys.Clear, keys.Quit}
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
