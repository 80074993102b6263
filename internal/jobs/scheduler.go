// Package jobs runs the API's periodic background work on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler wraps robfig/cron with named job registration. A slow run is
// skipped rather than stacked, and panics inside a job never take the
// process down.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DefaultLogger),
			cron.Recover(cron.DefaultLogger),
		)),
		logger:  logger,
		entries: make(map[string]cron.EntryID),
	}
}

// AddJob registers a job under a unique name. The expression accepts
// standard five-field cron plus descriptors like "@daily" and "@every 1h".
func (s *Scheduler) AddJob(name, cronExpr string, run func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	id, err := s.cron.AddFunc(cronExpr, func() {
		s.logger.Info("scheduled job started", zap.String("job", name))
		run()
		s.logger.Info("scheduled job finished", zap.String("job", name))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %q: %w", name, err)
	}

	s.entries[name] = id
	s.logger.Info("scheduled job registered",
		zap.String("job", name),
		zap.String("cron", cronExpr),
	)
	return nil
}

// RemoveJob unregisters a job by name.
func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.entries[name]
	if !exists {
		return fmt.Errorf("job %q not registered", name)
	}
	s.cron.Remove(id)
	delete(s.entries, name)
	return nil
}

// Start begins running registered jobs on their schedules.
func (s *Scheduler) Start() {
	s.logger.Info("job scheduler started")
	s.cron.Start()
}

// Stop halts scheduling. The returned context is done once any in-flight
// job has completed.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("job scheduler stopping")
	return s.cron.Stop()
}
