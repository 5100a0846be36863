package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// hoverable is a one-row screen region that tracks whether the pointer is
// over it and reports left clicks
type hoverable struct {
	x, y, width int
	hovered     bool
}

func (h *hoverable) setBounds(x, y, width int) {
	h.x, h.y, h.width = x, y, width
}

func (h hoverable) contains(x, y int) bool {
	return y == h.y && x >= h.x && x < h.x+h.width
}

// handleMouse updates hover state and returns true on a left click inside
func (h *hoverable) handleMouse(msg tea.MouseMsg) bool {
	h.hovered = h.contains(msg.X, msg.Y)
	return h.hovered && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}

func (h hoverable) style() lipgloss.Style {
	if h.hovered {
		return styles.ButtonHoveredStyle
	}
	return styles.ButtonStyle
}
