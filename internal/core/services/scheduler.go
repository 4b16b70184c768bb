package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/jobradar-cli/internal/logger"
)

// Scheduler repeats pipeline runs on a fixed interval. An interrupt (via
// context cancellation) exits the loop cleanly between cycles; an in-flight
// run is not interrupted mid-call beyond what its own context observes.
type Scheduler struct {
	runner   driving.RunOrchestrator
	interval time.Duration
	filters  domain.SearchFilters

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewScheduler creates a scheduler that invokes the runner every interval.
func NewScheduler(runner driving.RunOrchestrator, interval time.Duration, filters domain.SearchFilters) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		filters:  filters,
	}
}

// Start runs immediately, then on every interval tick. It blocks until the
// context is cancelled or Stop is called. Configuration errors abort the
// loop; any other run failure is logged and the next cycle proceeds.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	if err := s.runCycle(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("scheduler: interrupted, exiting cleanly")
			return nil
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			if err := s.runCycle(ctx); err != nil {
				return err
			}
		}
	}
}

// Stop signals the scheduler loop to exit before the next cycle.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stopCh)
}

func (s *Scheduler) runCycle(ctx context.Context) error {
	_, err := s.runner.RunOnce(ctx, s.filters)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInvalidConfig):
		// Misconfiguration will not fix itself between cycles.
		return err
	case errors.Is(err, context.Canceled):
		return nil
	default:
		logger.Error("run failed: %v", err)
		return nil
	}
}
