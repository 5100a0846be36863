package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
)

// Command factories for async operations

// TickCmd schedules the next playback tick
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// LoadEpisodeCmd fetches the episode to play
func LoadEpisodeCmd(repo domain.EpisodeRepository, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		ep, err := repo.FetchEpisode(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: loadEpisodeContext}
		}
		return EpisodeLoadedMsg{Episode: ep}
	}
}

// FetchUserCmd asks the server who is signed in
func FetchUserCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		user, err := svc.CurrentUser(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "checking session"}
		}
		return UserLoadedMsg{User: user}
	}
}

// SignOutCmd ends the session
func SignOutCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := svc.SignOut(ctx); err != nil {
			return ErrMsg{Err: err, Context: "signing out"}
		}
		return SignedOutMsg{}
	}
}
