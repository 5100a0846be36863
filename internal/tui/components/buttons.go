package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// PlayPauseButton toggles playback and shows the elapsed/total readout
type PlayPauseButton struct {
	region   hoverable
	onToggle func()
}

// NewPlayPauseButton creates the button; onToggle is the playback toggle
func NewPlayPauseButton(onToggle func()) PlayPauseButton {
	return PlayPauseButton{onToggle: onToggle}
}

// Label is the accessible name for the current state
func (b PlayPauseButton) Label(playing bool) string {
	if playing {
		return "Pause"
	}
	return "Play"
}

func (b PlayPauseButton) icon(playing bool) string {
	if playing {
		return styles.PauseIcon
	}
	return styles.PlayIcon
}

// Width is the clickable width of the button
func (b PlayPauseButton) Width(playing bool) int {
	return lipgloss.Width(styles.ButtonStyle.Render(b.icon(playing)))
}

// SetBounds places the clickable region on screen
func (b *PlayPauseButton) SetBounds(x, y, width int) {
	b.region.setBounds(x, y, width)
}

// Update toggles playback on click
func (b PlayPauseButton) Update(msg tea.MouseMsg) PlayPauseButton {
	if b.region.handleMouse(msg) && b.onToggle != nil {
		b.onToggle()
	}
	return b
}

// View renders the button and readout
func (b PlayPauseButton) View(playing bool, currentTime, duration float64) string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		b.region.style().Render(b.icon(playing)),
		styles.TimeStyle.Render(FormatProgress(currentTime, duration)),
	)
}

// MuteButton toggles audio
type MuteButton struct {
	region   hoverable
	onToggle func()
}

// NewMuteButton creates the button; onToggle is the mute toggle
func NewMuteButton(onToggle func()) MuteButton {
	return MuteButton{onToggle: onToggle}
}

// Label is the accessible name for the current state
func (b MuteButton) Label(muted bool) string {
	if muted {
		return "Unmute"
	}
	return "Mute"
}

func (b MuteButton) icon(muted bool) string {
	if muted {
		return styles.MutedIcon
	}
	return styles.VolumeIcon
}

// Width is the clickable width of the button
func (b MuteButton) Width(muted bool) int {
	return lipgloss.Width(styles.ButtonStyle.Render(b.icon(muted)))
}

// SetBounds places the clickable region on screen
func (b *MuteButton) SetBounds(x, y, width int) {
	b.region.setBounds(x, y, width)
}

// Update toggles mute on click
func (b MuteButton) Update(msg tea.MouseMsg) MuteButton {
	if b.region.handleMouse(msg) && b.onToggle != nil {
		b.onToggle()
	}
	return b
}

// View renders the button
func (b MuteButton) View(muted bool) string {
	return b.region.style().Render(b.icon(muted))
}
