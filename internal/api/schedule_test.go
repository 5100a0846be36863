package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerBoundsInFlight(t *testing.T) {
	s := NewScheduler(ScheduleConfig{MaxInFlight: 1})
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)

	release, err := s.Acquire(context.Background(), req)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = s.Acquire(ctx, req)
	assert.Error(t, err, "second request should wait for the slot")

	release()
	release2, err := s.Acquire(context.Background(), req)
	require.NoError(t, err)
	release2()
}

func TestSchedulerDisabled(t *testing.T) {
	s := NewScheduler(ScheduleConfig{})
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)

	for i := 0; i < 100; i++ {
		release, err := s.Acquire(context.Background(), req)
		require.NoError(t, err)
		release()
	}
	assert.Equal(t, "schedule", s.Name())
}

func TestSchedulerRateLimit(t *testing.T) {
	s := NewScheduler(ScheduleConfig{RatePerSecond: 1, Burst: 1})
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)

	release, err := s.Acquire(context.Background(), req)
	require.NoError(t, err)
	release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = s.Acquire(ctx, req)
	assert.Error(t, err, "burst exhausted, next token is a second away")
}
