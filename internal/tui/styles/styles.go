package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	AccentBlue = lipgloss.Color("#1C43D1")
	Charcoal   = lipgloss.Color("#212121")
	TrackGray  = lipgloss.Color("#999999")
	DimGray    = lipgloss.Color("#6B7280")
	HoverWhite = lipgloss.Color("#3A3A3A") // #FFFFFF1F over Charcoal
	White      = lipgloss.Color("#FFFFFF")
	Red        = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	// TimeStyle renders the "mm:ss / mm:ss" readout
	TimeStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginLeft(1)
)

// Button styles
var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(White).
			Padding(0, 1)

	ButtonHoveredStyle = ButtonStyle.
				Background(HoverWhite)
)

// Player icons
const (
	PlayIcon   = "▶"
	PauseIcon  = "⏸"
	VolumeIcon = "🔊"
	MutedIcon  = "🔇"
	ThumbChar  = "●"
)

// Panel styles
var (
	ControllerStyle = lipgloss.NewStyle().
			Background(Charcoal).
			Padding(0, 1)

	ThumbnailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AccentBlue).
			Foreground(White).
			Padding(0, 1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(AccentBlue).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(TrackGray)
)

// Spinner frames for loading states
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Truncate truncates a string to the given display width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
