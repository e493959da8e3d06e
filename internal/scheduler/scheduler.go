package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DispatchFunc is the unit of work the scheduler fires on every tick.
type DispatchFunc func(context.Context) error

// Scheduler drives a DispatchFunc on a fixed interval. It fires once
// immediately on Start so a freshly booted process does not sit on overdue
// work for a full interval.
type Scheduler struct {
	logger   *zap.Logger
	interval time.Duration
	dispatch DispatchFunc

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func New(logger *zap.Logger, interval time.Duration, dispatch DispatchFunc) *Scheduler {
	return &Scheduler{
		logger:   logger,
		interval: interval,
		dispatch: dispatch,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the dispatch loop. Calling Start on a running scheduler
// is an error; Stop then Start is fine.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	go s.run(ctx)

	s.logger.Info("Scheduler started", zap.Duration("interval", s.interval))
	return nil
}

// Stop signals the loop and blocks until the in-flight tick finishes.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.mu.Unlock()

	close(s.stopCh)
	<-s.doneCh

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Scheduler stopped")
	return nil
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.doneCh)
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler context canceled")
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one dispatch bounded to the interval, so a slow run cannot
// overlap the next one.
func (s *Scheduler) tick(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	if err := s.dispatch(tickCtx); err != nil {
		s.logger.Error("Scheduled dispatch failed", zap.Error(err))
	}
}
