package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// thumbnailHeight is the rendered height including the border
const thumbnailHeight = 4

// SeekThumbnail previews the episode at a seek position
type SeekThumbnail struct {
	episode domain.Episode
}

// NewSeekThumbnail creates a preview for episode
func NewSeekThumbnail(episode domain.Episode) SeekThumbnail {
	return SeekThumbnail{episode: episode}
}

// View renders the preview card for position, left edge near column and
// kept inside maxWidth
func (t SeekThumbnail) View(position float64, column, maxWidth int) string {
	const cardWidth = 24
	inner := cardWidth - 4 // border + padding

	card := styles.ThumbnailStyle.Width(cardWidth - 2).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.Truncate(t.episode.DisplayTitle(), inner),
		styles.DimStyle.Render(FormatClock(position)),
	))

	offset := column - cardWidth/2
	offset = min(offset, maxWidth-lipgloss.Width(card))
	offset = max(offset, 0)

	return lipgloss.NewStyle().MarginLeft(offset).Render(card)
}
