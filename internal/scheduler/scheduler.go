// Package scheduler runs periodic maintenance tasks with cron expressions.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// JobExpirer deactivates postings whose closing date passed long enough ago.
type JobExpirer interface {
	ExpireStaleJobs(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron *cron.Cron
}

// New registers the expiry sweep on spec (standard five-field cron or a
// descriptor such as "@hourly").
func New(expirer JobExpirer, spec string) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, func() { runExpiry(expirer) }); err != nil {
		return nil, fmt.Errorf("invalid expire_jobs_cron %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

func runExpiry(expirer JobExpirer) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := expirer.ExpireStaleJobs(ctx, time.Now())
	if err != nil {
		slog.Error("scheduled job expiry failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("scheduled job expiry deactivated jobs", "count", n)
	}
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "entries", len(s.cron.Entries()))
}

// Stop stops scheduling and waits for a running task until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		slog.Warn("scheduler stop timed out")
	}
}
