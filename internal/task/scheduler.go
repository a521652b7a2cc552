package task

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled unit of work. Run returns a report of what was
// processed; it returns an error only when the run could not do its work
// at all.
type Job interface {
	Name() string
	Run(ctx context.Context) (*RunReport, error)
}

// Scheduler drives jobs on cron schedules. Each job carries a
// non-reentrant guard: while an invocation is still running, further
// triggers are skipped with a warning rather than racing the first one.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewScheduler creates a stopped scheduler using standard 5-field cron
// specs.
func NewScheduler(log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		cron:   cron.New(),
		logger: log.With(slog.String("component", "scheduler")),
	}
}

// Register adds a job on the given cron spec.
func (s *Scheduler) Register(spec string, job Job) error {
	var running atomic.Bool

	_, err := s.cron.AddFunc(spec, func() {
		if !running.CompareAndSwap(false, true) {
			s.logger.Warn("previous run still in progress, skipping trigger",
				slog.String("job", job.Name()))
			return
		}
		defer running.Store(false)

		s.runJob(job)
	})
	if err != nil {
		return err
	}

	s.logger.Info("job registered",
		slog.String("job", job.Name()),
		slog.String("spec", spec))
	return nil
}

func (s *Scheduler) runJob(job Job) {
	ctx := context.Background()

	s.logger.Info("job starting", slog.String("job", job.Name()))
	report, err := job.Run(ctx)
	if err != nil {
		s.logger.Error("job failed",
			slog.String("job", job.Name()),
			slog.String("error", err.Error()))
		return
	}

	s.logger.Info("job finished",
		slog.String("job", job.Name()),
		slog.Int("succeeded", report.Succeeded()),
		slog.Int("failed", report.Failed()),
		slog.Duration("duration", report.Duration()))
}

// Start begins triggering jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts triggering and waits for any in-flight job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}
