// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a unit of background work. The context is cancelled when the
// scheduler stops or the job exceeds its timeout.
type Job func(ctx context.Context) error

// Config holds scheduler configuration.
type Config struct {
	// JobTimeout bounds a single run. Zero means no timeout.
	JobTimeout time.Duration
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() Config {
	return Config{
		JobTimeout: 10 * time.Minute,
	}
}

type registeredJob struct {
	name     string
	schedule string
	run      Job
}

// Scheduler wraps a cron runner and executes registered jobs with slog logging.
type Scheduler struct {
	cron       *cron.Cron
	jobTimeout time.Duration

	mu   sync.Mutex
	jobs map[string]registeredJob
	ctx  context.Context
}

// New creates a scheduler. Overlapping runs of the same job are skipped
// and panics inside a job are recovered and logged.
func New(config Config) *Scheduler {
	logger := cronLogger{logger: slog.Default().With("component", "scheduler")}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		jobTimeout: config.JobTimeout,
		jobs:       make(map[string]registeredJob),
		ctx:        context.Background(),
	}
}

// Register adds a job under a unique name using a standard five-field cron
// expression or a descriptor such as "@every 10m".
func (s *Scheduler) Register(name, schedule string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	if _, err := s.cron.AddFunc(schedule, func() { s.execute(s.baseContext(), name, job) }); err != nil {
		return fmt.Errorf("invalid schedule %q for job %q: %w", schedule, name, err)
	}

	s.jobs[name] = registeredJob{name: name, schedule: schedule, run: job}
	return nil
}

// RunNow executes a registered job synchronously, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %q not registered", name)
	}
	return s.execute(ctx, job.name, job.run)
}

// Start runs the scheduler until ctx is cancelled, then waits for running jobs to finish.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	count := len(s.jobs)
	s.mu.Unlock()

	slog.Info("Scheduler started", "jobs", count)
	s.cron.Start()

	<-ctx.Done()

	slog.Info("Scheduler shutting down")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) baseContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func (s *Scheduler) execute(ctx context.Context, name string, job Job) error {
	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.jobTimeout)
		defer cancel()
	}

	started := time.Now()
	err := job(ctx)
	if err != nil {
		slog.Error("Scheduled job failed",
			"job", name,
			"duration", time.Since(started),
			"error", err,
		)
		return err
	}

	slog.Debug("Scheduled job finished",
		"job", name,
		"duration", time.Since(started),
	)
	return nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
