package components

import "github.com/charmbracelet/bubbles/key"

// PlayerKeyMap defines key bindings for the transport controls
type PlayerKeyMap struct {
	PlayPause   key.Binding
	Mute        key.Binding
	SeekBack    key.Binding
	SeekForward key.Binding
	SeekStart   key.Binding
	SeekEnd     key.Binding
}

// DefaultPlayerKeyMap returns the default transport control bindings
func DefaultPlayerKeyMap() PlayerKeyMap {
	return PlayerKeyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "play/pause"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "back"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "forward"),
		),
		SeekStart: key.NewBinding(
			key.WithKeys("home", "0"),
			key.WithHelp("0", "start"),
		),
		SeekEnd: key.NewBinding(
			key.WithKeys("end", "$"),
			key.WithHelp("$", "end"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k PlayerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Mute, k.SeekBack, k.SeekForward}
}

// FullHelp implements help.KeyMap
func (k PlayerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Mute},
		{k.SeekBack, k.SeekForward, k.SeekStart, k.SeekEnd},
	}
}
