package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// ControllerHeight is the number of rows the controller occupies: the
// thumbnail area, the scrubber and the button row
const ControllerHeight = thumbnailHeight + 2

const defaultSeekStep = 5.0

// SeekFailedMsg reports a seek the playback state refused
type SeekFailedMsg struct {
	Err error
}

// PlayerController composes the transport controls over an externally owned
// playback state. It holds no playback state of its own.
type PlayerController struct {
	state   domain.PlaybackState
	episode domain.Episode
	keys    PlayerKeyMap

	scrubber  Scrubber
	thumbnail SeekThumbnail
	playPause PlayPauseButton
	mute      MuteButton

	seekStep float64
	width    int
	x, y     int
}

// NewPlayerController wires the controls to state
func NewPlayerController(state domain.PlaybackState, episode domain.Episode) PlayerController {
	return PlayerController{
		state:     state,
		episode:   episode,
		keys:      DefaultPlayerKeyMap(),
		scrubber:  NewScrubber(state.UpdateCurrentTime),
		thumbnail: NewSeekThumbnail(episode),
		playPause: NewPlayPauseButton(state.TogglePlaying),
		mute:      NewMuteButton(state.ToggleMuted),
		seekStep:  defaultSeekStep,
	}
}

// Keys returns the controller's key bindings
func (c PlayerController) Keys() PlayerKeyMap {
	return c.keys
}

// SetSeekStep sets how far one arrow key press seeks, in seconds
func (c *PlayerController) SetSeekStep(step float64) {
	if step > 0 {
		c.seekStep = step
	}
}

// SetLayout places the controller with its top-left corner at (x, y)
func (c *PlayerController) SetLayout(x, y, width int) {
	c.x, c.y, c.width = x, y, width
	c.layout()
}

// innerWidth is the width inside the horizontal padding
func (c PlayerController) innerWidth() int {
	return max(c.width-2, 0)
}

// layout recomputes hit regions from the current state
func (c *PlayerController) layout() {
	inner := c.innerWidth()
	c.scrubber.SetRange(0, c.state.Duration())
	c.scrubber.SetValue(c.state.CurrentTime())
	c.scrubber.SetBounds(c.x+1, c.y+thumbnailHeight, inner)

	buttonRow := c.y + thumbnailHeight + 1
	c.playPause.SetBounds(c.x+1, buttonRow, c.playPause.Width(c.state.Playing()))
	muteWidth := c.mute.Width(c.state.Muted())
	c.mute.SetBounds(c.x+1+inner-muteWidth, buttonRow, muteWidth)
}

// Update routes keys and pointer events to the controls
func (c PlayerController) Update(msg tea.Msg) (PlayerController, tea.Cmd) {
	c.layout()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return c, c.handleKey(msg)

	case tea.MouseMsg:
		var err error
		c.scrubber, err = c.scrubber.Update(msg)
		c.playPause = c.playPause.Update(msg)
		c.mute = c.mute.Update(msg)
		c.layout()
		return c, seekFailed(err)
	}

	return c, nil
}

func (c PlayerController) handleKey(msg tea.KeyMsg) tea.Cmd {
	cur, dur := c.state.CurrentTime(), c.state.Duration()

	switch {
	case key.Matches(msg, c.keys.PlayPause):
		c.state.TogglePlaying()
	case key.Matches(msg, c.keys.Mute):
		c.state.ToggleMuted()
	case key.Matches(msg, c.keys.SeekBack):
		return seekFailed(c.scrubber.Seek(math.Max(math.Min(cur, dur)-c.seekStep, 0)))
	case key.Matches(msg, c.keys.SeekForward):
		return seekFailed(c.scrubber.Seek(math.Min(cur+c.seekStep, dur)))
	case key.Matches(msg, c.keys.SeekStart):
		return seekFailed(c.scrubber.Seek(0))
	case key.Matches(msg, c.keys.SeekEnd):
		return seekFailed(c.scrubber.Seek(dur))
	}
	return nil
}

func seekFailed(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg { return SeekFailedMsg{Err: err} }
}

// Labels returns the accessible names of the two buttons for the current state
func (c PlayerController) Labels() (playPause, mute string) {
	return c.playPause.Label(c.state.Playing()), c.mute.Label(c.state.Muted())
}

// View renders the controller
func (c PlayerController) View() string {
	if c.width <= 0 {
		return ""
	}
	c.layout()
	inner := c.innerWidth()

	thumb := strings.Repeat("\n", thumbnailHeight-1)
	if c.scrubber.Hovered() {
		thumb = c.thumbnail.View(c.scrubber.HoverValue(), c.scrubber.HoverColumn(), inner)
	}
	thumb = lipgloss.NewStyle().Height(thumbnailHeight).Render(thumb)

	playing, muted := c.state.Playing(), c.state.Muted()
	left := c.playPause.View(playing, c.state.CurrentTime(), c.state.Duration())
	right := c.mute.View(muted)
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	buttons := left + strings.Repeat(" ", gap) + right

	content := lipgloss.JoinVertical(lipgloss.Left,
		thumb,
		c.scrubber.View(),
		buttons,
	)
	return styles.ControllerStyle.Width(c.width).Render(content)
}
