package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// SeekFunc moves the playback position. It is owned by the playback state.
type SeekFunc func(t float64) error

// Scrubber is a horizontal seek slider over [min, max]. It renders the value
// it is given and reports seeks through onSeek; it never moves the position
// itself.
type Scrubber struct {
	min, max float64
	value    float64

	region     hoverable
	hoverValue float64
	dragging   bool

	onSeek SeekFunc
	bar    progress.Model
}

// NewScrubber creates a scrubber over [0, 0] reporting seeks to onSeek
func NewScrubber(onSeek SeekFunc) Scrubber {
	bar := progress.New(
		progress.WithSolidFill(string(styles.AccentBlue)),
		progress.WithoutPercentage(),
	)
	bar.Full = '━'
	bar.Empty = '─'
	bar.EmptyColor = string(styles.TrackGray)

	return Scrubber{
		onSeek: onSeek,
		bar:    bar,
	}
}

// SetRange sets the slider bounds. A max below min collapses to min.
func (s *Scrubber) SetRange(min, max float64) {
	if max < min {
		max = min
	}
	s.min, s.max = min, max
}

// SetValue sets the position to display
func (s *Scrubber) SetValue(v float64) {
	s.value = v
}

// SetBounds places the track on screen
func (s *Scrubber) SetBounds(x, y, width int) {
	s.region.setBounds(x, y, width)
	s.bar.Width = width
}

// DisplayValue is the value clamped into [min, max]
func (s Scrubber) DisplayValue() float64 {
	if math.IsNaN(s.value) {
		return s.min
	}
	return math.Min(math.Max(s.value, s.min), s.max)
}

// Hovered reports whether the pointer is over the track or dragging it
func (s Scrubber) Hovered() bool {
	return s.region.hovered || s.dragging
}

// HoverValue is the position under the pointer
func (s Scrubber) HoverValue() float64 {
	return s.hoverValue
}

// HoverColumn is the screen column under the pointer, relative to the track
func (s Scrubber) HoverColumn() int {
	return s.columnOf(s.hoverValue)
}

// Seek reports a seek to t. Values outside [min, max] and NaN are rejected
// with domain.ErrSeekOutOfRange and nothing is reported.
func (s Scrubber) Seek(t float64) error {
	if math.IsNaN(t) || t < s.min || t > s.max {
		return fmt.Errorf("%w: %v not in [%v, %v]", domain.ErrSeekOutOfRange, t, s.min, s.max)
	}
	if s.onSeek == nil {
		return nil
	}
	return s.onSeek(t)
}

// ValueAt maps a screen column to a slider value, clamping to the track
func (s Scrubber) ValueAt(x int) float64 {
	w := s.region.width
	if w <= 1 {
		return s.min
	}
	col := min(max(x-s.region.x, 0), w-1)
	return s.min + float64(col)/float64(w-1)*(s.max-s.min)
}

func (s Scrubber) columnOf(v float64) int {
	w := s.region.width
	if w <= 1 || s.max <= s.min {
		return 0
	}
	return int(math.Round((v - s.min) / (s.max - s.min) * float64(w-1)))
}

// Update handles pointer input: hover, press to seek, drag to keep seeking
func (s Scrubber) Update(msg tea.MouseMsg) (Scrubber, error) {
	inside := s.region.contains(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return s, nil
		}
		s.dragging = true
		s.region.hovered = true
		s.hoverValue = s.ValueAt(msg.X)
		return s, s.Seek(s.hoverValue)

	case tea.MouseActionMotion:
		if s.dragging {
			s.hoverValue = s.ValueAt(msg.X)
			return s, s.Seek(s.hoverValue)
		}
		s.region.hovered = inside
		if inside {
			s.hoverValue = s.ValueAt(msg.X)
		}

	case tea.MouseActionRelease:
		s.dragging = false
		s.region.hovered = inside
	}

	return s, nil
}

// View renders the track. The thumb and a heavier track appear on hover.
func (s Scrubber) View() string {
	w := s.region.width
	if w <= 0 {
		return ""
	}

	frac := 0.0
	if s.max > s.min {
		frac = (s.DisplayValue() - s.min) / (s.max - s.min)
	}

	if !s.Hovered() {
		return s.bar.ViewAs(frac)
	}

	thumb := s.columnOf(s.DisplayValue())
	filled := lipgloss.NewStyle().Foreground(styles.AccentBlue)
	empty := lipgloss.NewStyle().Foreground(styles.TrackGray)

	var b strings.Builder
	b.WriteString(filled.Render(strings.Repeat("━", thumb)))
	b.WriteString(filled.Render(styles.ThumbChar))
	b.WriteString(empty.Render(strings.Repeat("━", max(w-thumb-1, 0))))
	return b.String()
}
