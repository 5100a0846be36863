package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateLoading ApplicationState = iota
	StatePlaying
	StateHelp
	StateConfirmSignOut
	StateError // Episode could not be loaded
)

const (
	tickInterval = 250 * time.Millisecond

	// Vertical layout: single footer line
	ChromeHeight = 1

	loadEpisodeContext = "loading episode"
)

// Options holds player preferences from config
type Options struct {
	SeekStep float64
	Resume   bool
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	PlaybackSvc *service.PlaybackService
	SessionSvc  *service.SessionService
	Episodes    domain.EpisodeRepository
	Positions   domain.PositionStore

	BaseURL   string
	EpisodeID string
	Options   Options

	// Data
	Episode *domain.Episode
	User    *domain.User

	// UI Components
	Controller components.PlayerController
	Help       help.Model
	Keys       KeyMap

	// Dimensions
	Width  int
	Height int

	// Footer status
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int

	lastTick time.Time
	logger   *slog.Logger
}

// NewModel creates a new application model
func NewModel(
	playbackSvc *service.PlaybackService,
	sessionSvc *service.SessionService,
	episodes domain.EpisodeRepository,
	positions domain.PositionStore,
	baseURL, episodeID string,
	opts Options,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	return Model{
		State:       StateLoading,
		PlaybackSvc: playbackSvc,
		SessionSvc:  sessionSvc,
		Episodes:    episodes,
		Positions:   positions,
		BaseURL:     baseURL,
		EpisodeID:   episodeID,
		Options:     opts,
		Help:        h,
		Keys:        DefaultKeyMap(),
		logger:      logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		LoadEpisodeCmd(m.Episodes, m.EpisodeID),
		TickCmd(tickInterval),
	}
	if m.SessionSvc != nil {
		cmds = append(cmds, FetchUserCmd(m.SessionSvc))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.Help.Width = msg.Width
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if m.State != StatePlaying {
			return m, nil
		}
		var cmd tea.Cmd
		m.Controller, cmd = m.Controller.Update(msg)
		return m, cmd

	case TickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() && m.Episode != nil {
			m.PlaybackSvc.Tick(now.Sub(m.lastTick))
		}
		m.lastTick = now
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case EpisodeLoadedMsg:
		m.episodeLoaded(msg.Episode)
		return m, nil

	case UserLoadedMsg:
		m.User = msg.User
		return m, nil

	case SignedOutMsg:
		m.savePosition()
		return m, tea.Quit

	case components.SeekFailedMsg:
		m.setStatus(msg.Err.Error(), true)
		return m, nil

	case ErrMsg:
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		m.setStatus(msg.Error(), true)
		if msg.Context == loadEpisodeContext && m.Episode == nil {
			m.State = StateError
		}
		if m.State == StateConfirmSignOut {
			m.State = StatePlaying
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) episodeLoaded(ep *domain.Episode) {
	m.Episode = ep
	m.PlaybackSvc.SetDuration(ep.Duration)

	if m.Options.Resume && m.Positions != nil {
		if pos, ok := m.Positions.LoadPosition(m.BaseURL, ep.ID); ok {
			if err := m.PlaybackSvc.UpdateCurrentTime(pos); err != nil {
				m.logger.Warn("ignoring saved position", "episodeID", ep.ID, "error", err)
			} else {
				m.setStatus("Resumed at "+components.FormatClock(pos), false)
			}
		}
	}

	m.Controller = components.NewPlayerController(m.PlaybackSvc, *ep)
	m.Controller.SetSeekStep(m.Options.SeekStep)
	m.Keys.Player = m.Controller.Keys()
	m.State = StatePlaying
	m.updateLayout()
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateHelp:
		m.State = StatePlaying
		return m, nil

	case StateConfirmSignOut:
		switch {
		case key.Matches(msg, m.Keys.Confirm):
			return m, SignOutCmd(m.SessionSvc)
		case key.Matches(msg, m.Keys.Deny):
			m.State = StatePlaying
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.savePosition()
		return m, tea.Quit
	case m.State == StateLoading, m.State == StateError:
		return m, nil
	case key.Matches(msg, m.Keys.Help):
		m.State = StateHelp
		return m, nil
	case key.Matches(msg, m.Keys.SignOut):
		if m.SessionSvc != nil {
			m.State = StateConfirmSignOut
		}
		return m, nil
	}

	m.StatusMsg = ""
	var cmd tea.Cmd
	m.Controller, cmd = m.Controller.Update(msg)
	return m, cmd
}

// savePosition remembers where playback stopped
func (m Model) savePosition() {
	if m.Episode == nil || m.Positions == nil {
		return
	}
	pos := m.PlaybackSvc.CurrentTime()
	if err := m.Positions.SavePosition(m.BaseURL, m.Episode.ID, pos); err != nil {
		m.logger.Warn("failed to save position", "episodeID", m.Episode.ID, "error", err)
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
}

// updateLayout docks the controller above the footer
func (m *Model) updateLayout() {
	if m.Episode == nil || m.Width == 0 {
		return
	}
	y := max(m.Height-ChromeHeight-components.ControllerHeight, 0)
	m.Controller.SetLayout(0, y, m.Width)
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return ""
	}

	switch m.State {
	case StateLoading:
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
			styles.SpinnerFrames[m.SpinnerFrame%len(styles.SpinnerFrames)]+" Loading episode...")
	case StateError:
		body := styles.ErrorStyle.Render(m.StatusMsg) + "\n\n" +
			styles.DimStyle.Render("Press "+m.Keys.Quit.Help().Key+" to quit")
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, body)
	case StateHelp:
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
			styles.ThumbnailStyle.Render(m.Help.FullHelpView(m.Keys.FullHelp())))
	case StateConfirmSignOut:
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
			styles.ThumbnailStyle.Render("Sign out?\n\n[Y] Yes      [N] No"))
	}

	header := m.renderHeader()
	controller := m.Controller.View()
	footer := m.renderFooter()

	fill := max(m.Height-lipgloss.Height(header)-lipgloss.Height(controller)-ChromeHeight, 0)
	return header + strings.Repeat("\n", fill+1) + controller + "\n" + footer
}

func (m Model) renderHeader() string {
	ep := m.Episode
	lines := []string{styles.TitleStyle.Render(styles.Truncate(ep.DisplayTitle(), m.Width))}
	if ep.Description != "" {
		lines = append(lines, styles.DimStyle.Width(m.Width).Render(ep.Description))
	}
	if m.User != nil {
		name := m.User.Name
		if name == "" {
			name = m.User.Email
		}
		lines = append(lines, styles.DimStyle.Render("Signed in as "+name))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	} else {
		playLabel, muteLabel := m.Controller.Labels()
		left = styles.DimStyle.Render(fmt.Sprintf("%s · %s", playLabel, muteLabel))
	}

	right := m.Help.ShortHelpView(m.Keys.ShortHelp())
	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
