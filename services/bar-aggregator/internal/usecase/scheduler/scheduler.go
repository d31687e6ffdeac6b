// Package scheduler runs bar-close and market-session jobs in process. Each job is armed on a
// runtime timer and its payload is posted back to the job's receiver on every fire.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/componentry"
	schedulerv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/scheduler/v1"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/metrics"
)

// Options tunes the scheduler.
type Options struct {
	// MisfireThreshold is how late a fire may be before a MisfireSkip job drops it.
	MisfireThreshold time.Duration
}

// DefaultSchedulerOptions returns the options used when none are given.
func DefaultSchedulerOptions() *Options {
	return &Options{
		MisfireThreshold: time.Second,
	}
}

type job struct {
	def        schedulerv1.CreateJob
	next       time.Time
	paused     bool
	timer      *time.Timer
	generation uint64
}

// Scheduler implements schedulerv1.Scheduler on time.AfterFunc.
type Scheduler struct {
	cctx    componentry.Context
	logger  logger.Interface
	metrics *metrics.Metrics
	options *Options

	mu      sync.Mutex
	jobs    map[schedulerv1.JobKey]*job
	stopped bool
}

var _ schedulerv1.Scheduler = (*Scheduler)(nil)

// NewScheduler creates a scheduler with the default options.
func NewScheduler(cctx componentry.Context, m *metrics.Metrics) *Scheduler {
	return NewSchedulerWithOptions(cctx, m, DefaultSchedulerOptions())
}

// NewSchedulerWithOptions creates a scheduler with custom options.
func NewSchedulerWithOptions(cctx componentry.Context, m *metrics.Metrics, options *Options) *Scheduler {
	return &Scheduler{
		cctx:    cctx,
		logger:  cctx.Logger,
		metrics: m,
		options: options,
		jobs:    make(map[schedulerv1.JobKey]*job),
	}
}

// CreateJob schedules job. A key can only be used once until it is removed.
func (s *Scheduler) CreateJob(ctx context.Context, def schedulerv1.CreateJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return errors.Newf(errors.SchedulerStoppedError, "key", "scheduler stopped, cannot create %s", def.Key)
	}
	if _, ok := s.jobs[def.Key]; ok {
		return errors.Newf(errors.SchedulerJobExistsError, "key", "job %s already exists", def.Key)
	}

	now := s.cctx.Now()
	j := &job{
		def:  def,
		next: def.Trigger.Next(now),
	}
	if j.next.IsZero() {
		s.logger.WarnContext(ctx, "Job will never fire", logger.NewField("job", def.Key.String()))
		return nil
	}

	s.jobs[def.Key] = j
	s.arm(j)

	s.logger.InfoContext(ctx, "Job created",
		logger.NewField("job", def.Key.String()),
		logger.NewField("trigger", def.Trigger.String()),
		logger.NewField("misfire", def.Misfire.String()),
		logger.NewField("next_fire", j.next),
	)
	return nil
}

// PauseJob stops the job from firing until it is resumed. Pausing a paused job is a no-op.
func (s *Scheduler) PauseJob(ctx context.Context, key schedulerv1.JobKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, err := s.lookup(key)
	if err != nil {
		return err
	}
	if j.paused {
		return nil
	}

	j.paused = true
	s.disarm(j)

	s.logger.InfoContext(ctx, "Job paused", logger.NewField("job", key.String()))
	return nil
}

// ResumeJob re-arms a paused job. Fire times missed while paused are handled by the job's
// misfire policy.
func (s *Scheduler) ResumeJob(ctx context.Context, key schedulerv1.JobKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, err := s.lookup(key)
	if err != nil {
		return err
	}
	if !j.paused {
		return nil
	}

	j.paused = false
	now := s.cctx.Now()
	missed := !j.next.After(now)
	if missed {
		switch j.def.Misfire {
		case schedulerv1.MisfireFireNow:
			j.next = now
		default:
			j.next = j.def.Trigger.Next(now)
		}
	}
	s.arm(j)

	s.logger.InfoContext(ctx, "Job resumed",
		logger.NewField("job", key.String()),
		logger.NewField("missed", missed),
		logger.NewField("next_fire", j.next),
	)
	return nil
}

// RemoveJob deletes the job.
func (s *Scheduler) RemoveJob(ctx context.Context, key schedulerv1.JobKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, err := s.lookup(key)
	if err != nil {
		return err
	}

	s.disarm(j)
	delete(s.jobs, key)

	s.logger.InfoContext(ctx, "Job removed", logger.NewField("job", key.String()))
	return nil
}

// Stop disarms every job. Further requests fail with scheduler_stopped.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.disarm(j)
	}
	s.stopped = true

	s.logger.InfoContext(ctx, "Scheduler stopped", logger.NewField("jobs", len(s.jobs)))
	return nil
}

// Jobs returns the keys of every scheduled job.
func (s *Scheduler) Jobs() []schedulerv1.JobKey {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]schedulerv1.JobKey, 0, len(s.jobs))
	for k := range s.jobs {
		keys = append(keys, k)
	}
	return keys
}

// lookup must be called with mu held.
func (s *Scheduler) lookup(key schedulerv1.JobKey) (*job, error) {
	if s.stopped {
		return nil, errors.Newf(errors.SchedulerStoppedError, "key", "scheduler stopped, cannot update %s", key)
	}
	j, ok := s.jobs[key]
	if !ok {
		return nil, errors.Newf(errors.SchedulerJobNotFoundError, "key", "job %s not found", key)
	}
	return j, nil
}

// arm must be called with mu held. Timers of earlier generations become no-ops.
func (s *Scheduler) arm(j *job) {
	s.disarm(j)

	gen := j.generation
	key := j.def.Key
	delay := j.next.Sub(s.cctx.Now())
	if delay < 0 {
		delay = 0
	}
	j.timer = time.AfterFunc(delay, func() { s.fire(key, gen) })
}

// disarm must be called with mu held.
func (s *Scheduler) disarm(j *job) {
	j.generation++
	if j.timer != nil {
		j.timer.Stop()
		j.timer = nil
	}
}

func (s *Scheduler) fire(key schedulerv1.JobKey, gen uint64) {
	s.mu.Lock()
	j, ok := s.jobs[key]
	if !ok || s.stopped || j.paused || j.generation != gen {
		s.mu.Unlock()
		return
	}

	now := s.cctx.Now()
	scheduled := j.next
	deliver := j.def.Misfire != schedulerv1.MisfireSkip || now.Sub(scheduled) <= s.options.MisfireThreshold

	// the wall clock can read slightly behind the timer
	from := now
	if from.Before(scheduled) {
		from = scheduled
	}
	j.next = j.def.Trigger.Next(from)
	if j.next.IsZero() {
		delete(s.jobs, key)
	} else {
		s.arm(j)
	}

	payload, receiver, next := j.def.Payload, j.def.Receiver, j.next
	s.mu.Unlock()

	if !deliver {
		s.logger.Warn("Misfire skipped",
			logger.NewField("job", key.String()),
			logger.NewField("scheduled", scheduled),
		)
		return
	}

	s.metrics.SchedulerFires.WithLabelValues(key.String()).Inc()
	if !receiver.Send(payload) {
		s.logger.Warn("Job receiver stopped", logger.NewField("job", key.String()))
		return
	}
	s.logger.Debug("Job fired",
		logger.NewField("job", key.String()),
		logger.NewField("scheduled", scheduled),
		logger.NewField("next_fire", next),
	)
}
