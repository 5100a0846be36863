package api

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Plugin is consulted before every outbound request. Acquire blocks until the
// request may be sent and returns a release func to call once the response
// body has been consumed.
type Plugin interface {
	Name() string
	Acquire(ctx context.Context, req *http.Request) (release func(), err error)
}

// ScheduleConfig bounds outbound request throughput
type ScheduleConfig struct {
	RatePerSecond float64 // 0 disables rate limiting
	Burst         int
	MaxInFlight   int64 // 0 disables the concurrency bound
}

// Scheduler orders outbound requests: a token bucket paces them and a
// weighted semaphore bounds how many are in flight at once.
type Scheduler struct {
	limiter  *rate.Limiter
	inFlight *semaphore.Weighted
}

// NewScheduler creates a request scheduler plugin
func NewScheduler(cfg ScheduleConfig) *Scheduler {
	s := &Scheduler{}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	if cfg.MaxInFlight > 0 {
		s.inFlight = semaphore.NewWeighted(cfg.MaxInFlight)
	}
	return s
}

// Name implements Plugin
func (s *Scheduler) Name() string {
	return "schedule"
}

// Acquire implements Plugin
func (s *Scheduler) Acquire(ctx context.Context, req *http.Request) (func(), error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limit: %w", err)
		}
	}
	if s.inFlight == nil {
		return func() {}, nil
	}
	if err := s.inFlight.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for request slot: %w", err)
	}
	return func() { s.inFlight.Release(1) }, nil
}
