package components

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeState records intents without applying any policy of its own
type fakeState struct {
	duration    float64
	currentTime float64
	playing     bool
	muted       bool
	seeks       []float64
}

func (f *fakeState) Duration() float64    { return f.duration }
func (f *fakeState) CurrentTime() float64 { return f.currentTime }
func (f *fakeState) Playing() bool        { return f.playing }
func (f *fakeState) Muted() bool          { return f.muted }
func (f *fakeState) TogglePlaying()       { f.playing = !f.playing }
func (f *fakeState) ToggleMuted()         { f.muted = !f.muted }

func (f *fakeState) UpdateCurrentTime(t float64) error {
	f.seeks = append(f.seeks, t)
	f.currentTime = t
	return nil
}

var testEpisode = domain.Episode{ID: "ep-1", Title: "Pilot", SeriesTitle: "The Show"}

func newTestController(state *fakeState) PlayerController {
	c := NewPlayerController(state, testEpisode)
	c.SetLayout(0, 0, 42)
	return c
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{65, "01:05"},
		{65.9, "01:05"},
		{125, "02:05"},
		{3725, "62:05"},
		{-3, "00:00"},
		{math.NaN(), "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.seconds), "seconds=%v", tt.seconds)
	}
	assert.Equal(t, "01:05 / 02:05", FormatProgress(65, 125))
}

func TestScrubberSeekCallsMutatorOnce(t *testing.T) {
	const duration = 125.0
	for _, target := range []float64{0, 0.5, 1, 42, 65, 124.99, duration} {
		var calls []float64
		s := NewScrubber(func(v float64) error {
			calls = append(calls, v)
			return nil
		})
		s.SetRange(0, duration)

		require.NoError(t, s.Seek(target))
		assert.Equal(t, []float64{target}, calls)
	}
}

func TestScrubberRejectsOutOfRange(t *testing.T) {
	called := false
	s := NewScrubber(func(float64) error {
		called = true
		return nil
	})
	s.SetRange(0, 100)

	for _, bad := range []float64{-0.1, 100.1, math.NaN()} {
		assert.ErrorIs(t, s.Seek(bad), domain.ErrSeekOutOfRange)
	}
	assert.False(t, called)
}

func TestScrubberClampsDisplayValue(t *testing.T) {
	s := NewScrubber(nil)
	s.SetRange(0, 100)

	s.SetValue(150)
	assert.Equal(t, 100.0, s.DisplayValue())
	s.SetValue(-5)
	assert.Equal(t, 0.0, s.DisplayValue())
	s.SetValue(math.NaN())
	assert.Equal(t, 0.0, s.DisplayValue())

	s.SetRange(10, 5)
	s.SetValue(7)
	assert.Equal(t, 10.0, s.DisplayValue(), "inverted range collapses to min")
}

func TestScrubberPointerDrag(t *testing.T) {
	var calls []float64
	s := NewScrubber(func(v float64) error {
		calls = append(calls, v)
		return nil
	})
	s.SetRange(0, 100)
	s.SetBounds(10, 3, 101) // one column per second

	s, err := s.Update(tea.MouseMsg{X: 30, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.NoError(t, err)
	assert.Equal(t, []float64{20}, calls)
	assert.True(t, s.Hovered())

	// Dragging off the track clamps to its end
	s, err = s.Update(tea.MouseMsg{X: 500, Y: 9, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 100}, calls)

	s, _ = s.Update(tea.MouseMsg{X: 500, Y: 9, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.False(t, s.Hovered())

	// Motion without a drag only hovers
	s, _ = s.Update(tea.MouseMsg{X: 60, Y: 3, Action: tea.MouseActionMotion})
	assert.True(t, s.Hovered())
	assert.Equal(t, 50.0, s.HoverValue())
	assert.Len(t, calls, 2)
}

func TestScrubberIgnoresClicksOffTrack(t *testing.T) {
	called := false
	s := NewScrubber(func(float64) error {
		called = true
		return nil
	})
	s.SetRange(0, 100)
	s.SetBounds(0, 0, 50)

	s, err := s.Update(tea.MouseMsg{X: 10, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.NoError(t, err)
	assert.False(t, called)
	assert.False(t, s.Hovered())
}

func TestControllerPlayPauseKeyTogglesOnlyPlaying(t *testing.T) {
	state := &fakeState{duration: 125, currentTime: 65}
	c := newTestController(state)

	c, cmd := c.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.Nil(t, cmd)
	assert.True(t, state.playing)
	assert.False(t, state.muted)
	assert.Equal(t, 65.0, state.currentTime)
	assert.Equal(t, 125.0, state.duration)
	assert.Empty(t, state.seeks)

	playLabel, _ := c.Labels()
	assert.Equal(t, "Pause", playLabel)
}

func TestControllerMuteKeyTogglesOnlyMuted(t *testing.T) {
	state := &fakeState{duration: 125, currentTime: 65}
	c := newTestController(state)

	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	assert.True(t, state.muted)
	assert.False(t, state.playing)
	assert.Equal(t, 65.0, state.currentTime)
	assert.Empty(t, state.seeks)

	_, muteLabel := c.Labels()
	assert.Equal(t, "Unmute", muteLabel)
}

func TestControllerButtonClicks(t *testing.T) {
	state := &fakeState{duration: 125, currentTime: 65}
	c := newTestController(state)
	buttonRow := ControllerHeight - 1

	// Play/pause sits at the left edge, inside the padding
	c, _ = c.Update(tea.MouseMsg{X: 1, Y: buttonRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, state.playing)
	assert.False(t, state.muted)

	// Mute sits at the right edge
	c, _ = c.Update(tea.MouseMsg{X: 40, Y: buttonRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, state.muted)
	assert.True(t, state.playing)

	assert.Equal(t, 65.0, state.currentTime)
	assert.Empty(t, state.seeks)
}

func TestControllerArrowKeysSeek(t *testing.T) {
	state := &fakeState{duration: 125, currentTime: 3}
	c := newTestController(state)
	c.SetSeekStep(10)

	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyLeft})
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyRight})
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyEnd})
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, _ = c.Update(tea.KeyMsg{Type: tea.KeyHome})

	assert.Equal(t, []float64{0, 10, 125, 125, 0}, state.seeks)
}

func TestControllerReportsRejectedSeek(t *testing.T) {
	state := &fakeState{duration: 125}
	c := NewPlayerController(state, testEpisode)
	c.SetLayout(0, 0, 42)
	c.scrubber.onSeek = func(float64) error { return domain.ErrSeekOutOfRange }

	_, cmd := c.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)
	msg, ok := cmd().(SeekFailedMsg)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, domain.ErrSeekOutOfRange)
}

func TestControllerViewShowsReadoutAndThumbnail(t *testing.T) {
	state := &fakeState{duration: 125, currentTime: 65}
	c := newTestController(state)

	view := c.View()
	assert.Contains(t, view, "01:05 / 02:05")
	assert.NotContains(t, view, "Pilot")
	assert.Equal(t, ControllerHeight, strings.Count(view, "\n")+1)

	scrubberRow := ControllerHeight - 2
	c, _ = c.Update(tea.MouseMsg{X: 20, Y: scrubberRow, Action: tea.MouseActionMotion})
	view = c.View()
	assert.Contains(t, view, "Pilot")
	assert.Empty(t, state.seeks, "hovering never seeks")
}
