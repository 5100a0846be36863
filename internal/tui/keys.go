package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mmcdole/reel/internal/tui/components"
)

// KeyMap defines the application-level key bindings. Transport bindings
// live on the player controller.
type KeyMap struct {
	Player components.PlayerKeyMap

	Quit    key.Binding
	Help    key.Binding
	SignOut key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Player: components.DefaultPlayerKeyMap(),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "sign out"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return append(k.Player.ShortHelp(), k.Help, k.Quit)
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return append(k.Player.FullHelp(), []key.Binding{k.SignOut, k.Help, k.Quit})
}
