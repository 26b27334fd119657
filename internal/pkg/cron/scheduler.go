package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	robfig "github.com/robfig/cron/v3"
)

var (
	ErrJobNotFound = errors.New("cron job not found")
	ErrJobRunning  = errors.New("cron job is already running")
	ErrJobLocked   = errors.New("cron job is running on another instance")
)

// Job represents a scheduled job
type Job struct {
	Name string
	Spec string // standard 5-field cron expression
	Fn   func(ctx context.Context) error
}

// Locker guards a job across API instances. cache.Cache satisfies it.
type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	cron    *robfig.Cron
	jobs    map[string]Job
	running map[string]*sync.Mutex
	locker  Locker
	lockTTL time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
}

// NewScheduler creates a scheduler firing in loc. locker may be nil.
func NewScheduler(loc *time.Location, locker Locker) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	ctx, cancel := context.WithCancel(context.Background())
	logger := slogAdapter{}
	return &Scheduler{
		cron:    robfig.New(robfig.WithLocation(loc), robfig.WithChain(robfig.Recover(logger)), robfig.WithLogger(logger)),
		jobs:    make(map[string]Job),
		running: make(map[string]*sync.Mutex),
		locker:  locker,
		lockTTL: 10 * time.Minute,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// AddJob adds a job to the scheduler
func (s *Scheduler) AddJob(name string, spec string, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("cron job %s already registered", name)
	}

	job := Job{Name: name, Spec: spec, Fn: fn}
	if _, err := s.cron.AddFunc(spec, func() {
		_ = s.execute(s.ctx, job)
	}); err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}

	s.jobs[name] = job
	s.running[name] = &sync.Mutex{}
	slog.Info("Cron job registered", "name", name, "spec", spec)
	return nil
}

// Jobs lists registered jobs by name
func (s *Scheduler) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Name < out[k].Name })
	return out
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Cron scheduler started", "job_count", len(s.Jobs()))
}

// Stop gracefully stops all scheduled jobs and waits for running ones
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	<-s.cron.Stop().Done()
	slog.Info("Cron scheduler stopped")
}

// RunNow executes one job synchronously, honouring the same overlap guards as scheduled runs
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return ErrJobNotFound
	}
	return s.execute(ctx, job)
}

// RunOnce runs all jobs once (useful for testing)
func (s *Scheduler) RunOnce(ctx context.Context) {
	for _, job := range s.Jobs() {
		_ = s.execute(ctx, job)
	}
}

// execute runs a job and logs results
func (s *Scheduler) execute(ctx context.Context, job Job) error {
	s.mu.Lock()
	guard := s.running[job.Name]
	s.mu.Unlock()

	if !guard.TryLock() {
		slog.Warn("Cron job skipped, previous run still executing", "name", job.Name)
		return ErrJobRunning
	}
	defer guard.Unlock()

	if s.locker != nil {
		key := "cron:lock:" + job.Name
		acquired, err := s.locker.AcquireLock(ctx, key, s.lockTTL)
		if err != nil {
			slog.Warn("Cron lock unavailable, running without it", "name", job.Name, "error", err)
		} else if !acquired {
			slog.Info("Cron job skipped, locked by another instance", "name", job.Name)
			return ErrJobLocked
		} else {
			defer func() {
				if err := s.locker.ReleaseLock(context.Background(), key); err != nil {
					slog.Warn("Failed to release cron lock", "name", job.Name, "error", err)
				}
			}()
		}
	}

	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	if err := job.Fn(ctx); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
		return err
	}
	slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	return nil
}

// slogAdapter routes robfig/cron's internal logging to slog
type slogAdapter struct{}

func (slogAdapter) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
