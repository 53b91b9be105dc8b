// Package scheduler runs a job on a cron schedule until the context is
// cancelled.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps a cron runner around a single job.
type Scheduler struct {
	logger *slog.Logger
}

// New creates a scheduler.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		panic("scheduler requires logger")
	}
	return &Scheduler{logger: logger}
}

// Run schedules job according to spec (standard five-field cron syntax)
// and blocks until ctx is cancelled. Overlapping runs are prevented by
// skipping a tick while the previous job is still executing.
func (s *Scheduler) Run(ctx context.Context, spec string, job func()) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	id, err := c.AddFunc(spec, func() {
		s.logger.Info("scheduled run starting", slog.String("spec", spec))
		job()
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	c.Start()
	s.logger.Info("scheduler started",
		slog.String("spec", spec),
		slog.Time("next", c.Entry(id).Next))

	<-ctx.Done()
	stopCtx := c.Stop()
	<-stopCtx.Done()
	s.logger.Info("scheduler stopped")
	return nil
}
