package service

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// PlaybackService owns the playback state the player view renders. It is the
// single writer; the view only reads it and emits intents.
type PlaybackService struct {
	mu          sync.RWMutex
	duration    float64
	currentTime float64
	playing     bool
	muted       bool

	// clamp keeps currentTime <= duration on seek. With clamp off, seeks
	// past the known duration are kept as given.
	clamp bool

	logger *slog.Logger
}

// NewPlaybackService creates a paused, unmuted playback state at position 0
func NewPlaybackService(duration time.Duration, clamp bool, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		duration: math.Max(duration.Seconds(), 0),
		clamp:    clamp,
		logger:   logger,
	}
}

// Duration implements domain.PlaybackState
func (s *PlaybackService) Duration() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.duration
}

// SetDuration updates the total length once it is known
func (s *PlaybackService) SetDuration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duration = math.Max(d.Seconds(), 0)
	if s.clamp && s.currentTime > s.duration {
		s.currentTime = s.duration
	}
}

// CurrentTime implements domain.PlaybackState
func (s *PlaybackService) CurrentTime() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentTime
}

// UpdateCurrentTime implements domain.PlaybackState. Negative and NaN
// positions are rejected.
func (s *PlaybackService) UpdateCurrentTime(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return fmt.Errorf("%w: %v", domain.ErrSeekOutOfRange, t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clamp && t > s.duration {
		t = s.duration
	}
	s.currentTime = t
	s.logger.Debug("seek", "position", t)
	return nil
}

// Playing implements domain.PlaybackState
func (s *PlaybackService) Playing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playing
}

// TogglePlaying implements domain.PlaybackState. Playing from the end
// starts over.
func (s *PlaybackService) TogglePlaying() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playing && s.duration > 0 && s.currentTime >= s.duration {
		s.currentTime = 0
	}
	s.playing = !s.playing
	s.logger.Debug("toggle playing", "playing", s.playing)
}

// Muted implements domain.PlaybackState
func (s *PlaybackService) Muted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.muted
}

// ToggleMuted implements domain.PlaybackState
func (s *PlaybackService) ToggleMuted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = !s.muted
	s.logger.Debug("toggle muted", "muted", s.muted)
}

// Tick advances the position by elapsed while playing. Playback pauses when
// it reaches the end.
func (s *PlaybackService) Tick(elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playing || elapsed <= 0 {
		return
	}
	s.currentTime += elapsed.Seconds()
	if s.currentTime >= s.duration {
		s.currentTime = s.duration
		s.playing = false
	}
}
