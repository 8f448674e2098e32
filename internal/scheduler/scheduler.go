package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a scheduled task.
type Job func(ctx context.Context) error

// Scheduler runs jobs on cron schedules. It implements the worker
// interface so it can be supervised alongside the other workers.
type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Add registers a job under a cron expression such as "*/30 * * * *".
func (s *Scheduler) Add(name, schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		start := time.Now()
		if err := job(ctx); err != nil {
			slog.Error("scheduler: job failed", "job", name, "error", err)
			return
		}
		slog.Info("scheduler: job completed", "job", name, "took", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("schedule job %s: %w", name, err)
	}
	return nil
}

// Start runs the scheduler until the context is cancelled, then waits for
// any in-flight job.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	stop := s.cron.Stop()
	<-stop.Done()
	return nil
}
