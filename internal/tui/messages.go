package tui

import (
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// TickMsg drives playback and the spinner
type TickMsg time.Time

// EpisodeLoadedMsg signals that the episode descriptor arrived
type EpisodeLoadedMsg struct {
	Episode *domain.Episode
}

// UserLoadedMsg signals who is signed in
type UserLoadedMsg struct {
	User *domain.User
}

// SignedOutMsg signals that the session ended
type SignedOutMsg struct{}
