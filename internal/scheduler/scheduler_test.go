package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/dialdesk/dialdesk/internal/scheduler"
)

func noopDispatch(context.Context) error { return nil }

func TestScheduler_Start(t *testing.T) {
	tests := []struct {
		name          string
		setup         func() *scheduler.Scheduler
		expectedError error
	}{
		{
			name: "success",
			setup: func() *scheduler.Scheduler {
				return scheduler.New(zap.NewNop(), 100*time.Millisecond, noopDispatch)
			},
			expectedError: nil,
		},
		{
			name: "already running",
			setup: func() *scheduler.Scheduler {
				s := scheduler.New(zap.NewNop(), 100*time.Millisecond, noopDispatch)
				err := s.Start(context.Background())
				assert.NoError(t, err)
				return s
			},
			expectedError: scheduler.ErrAlreadyRunning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.setup()
			defer func() {
				if s.IsRunning() {
					_ = s.Stop()
				}
			}()

			err := s.Start(context.Background())
			assert.Equal(t, tt.expectedError, err)
		})
	}
}

func TestScheduler_Stop(t *testing.T) {
	tests := []struct {
		name          string
		setup         func() *scheduler.Scheduler
		expectedError error
	}{
		{
			name: "success",
			setup: func() *scheduler.Scheduler {
				s := scheduler.New(zap.NewNop(), 100*time.Millisecond, noopDispatch)
				err := s.Start(context.Background())
				assert.NoError(t, err)
				return s
			},
			expectedError: nil,
		},
		{
			name: "not running",
			setup: func() *scheduler.Scheduler {
				return scheduler.New(zap.NewNop(), 100*time.Millisecond, noopDispatch)
			},
			expectedError: scheduler.ErrNotRunning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.setup()
			err := s.Stop()
			assert.Equal(t, tt.expectedError, err)
		})
	}
}

func TestScheduler_DispatchRuns(t *testing.T) {
	var calls atomic.Int32
	dispatch := func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}

	s := scheduler.New(zap.NewNop(), 50*time.Millisecond, dispatch)
	assert.NoError(t, s.Start(context.Background()))

	time.Sleep(180 * time.Millisecond)
	assert.NoError(t, s.Stop())

	// Immediate tick on start plus at least two interval ticks.
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestScheduler_DispatchErrorKeepsTicking(t *testing.T) {
	var calls atomic.Int32
	dispatch := func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("dispatch failed")
	}

	s := scheduler.New(zap.NewNop(), 50*time.Millisecond, dispatch)
	assert.NoError(t, s.Start(context.Background()))

	time.Sleep(180 * time.Millisecond)
	assert.NoError(t, s.Stop())

	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestScheduler_ContextCancellation(t *testing.T) {
	var calls atomic.Int32
	dispatch := func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := scheduler.New(zap.NewNop(), 50*time.Millisecond, dispatch)

	assert.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())

	time.Sleep(120 * time.Millisecond)
	before := calls.Load()
	assert.GreaterOrEqual(t, before, int32(2))

	cancel()
	time.Sleep(100 * time.Millisecond)

	assert.False(t, s.IsRunning())
	assert.LessOrEqual(t, calls.Load()-before, int32(1))
}

func TestScheduler_ConcurrentStart(t *testing.T) {
	s := scheduler.New(zap.NewNop(), 50*time.Millisecond, noopDispatch)

	var wg sync.WaitGroup
	unexpected := make(chan error, 5)

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Start(context.Background()); err != nil && !errors.Is(err, scheduler.ErrAlreadyRunning) {
				unexpected <- err
			}
		}()
	}
	wg.Wait()

	assert.True(t, s.IsRunning())
	assert.Len(t, unexpected, 0)
	assert.NoError(t, s.Stop())
}
