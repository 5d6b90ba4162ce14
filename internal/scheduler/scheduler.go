// Package scheduler runs a single job on a fixed interval.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// OverlapPolicy decides what happens when a tick arrives while the
// previous run is still in progress.
type OverlapPolicy string

const (
	OverlapSkip  OverlapPolicy = "skip"
	OverlapAllow OverlapPolicy = "allow"
)

func ParseOverlapPolicy(value string) (OverlapPolicy, error) {
	switch OverlapPolicy(value) {
	case OverlapSkip, OverlapAllow:
		return OverlapPolicy(value), nil
	default:
		return "", fmt.Errorf("unknown overlap policy %q", value)
	}
}

type Job struct {
	Name     string
	Interval time.Duration
	Overlap  OverlapPolicy
	RunFirst bool
	Handler  func(ctx context.Context) error
}

type Scheduler struct {
	job     Job
	logger  *zap.Logger
	running atomic.Int32
	wg      sync.WaitGroup
	runs    atomic.Int64
	skipped atomic.Int64
}

func New(job Job, logger *zap.Logger) *Scheduler {
	return &Scheduler{job: job, logger: logger.With(zap.String("job", job.Name))}
}

// Run blocks until ctx is done. Ticks start once ready is closed; a nil
// ready channel starts immediately. Runs still in flight at shutdown are
// not waited for.
func (s *Scheduler) Run(ctx context.Context, ready <-chan struct{}) {
	if ready != nil {
		select {
		case <-ctx.Done():
			return
		case <-ready:
		}
	}

	s.logger.Info("scheduler started", zap.Duration("interval", s.job.Interval), zap.String("overlap", string(s.job.Overlap)))
	if s.job.RunFirst {
		s.trigger(ctx)
	}

	ticker := time.NewTicker(s.job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped", zap.Int64("runs", s.runs.Load()), zap.Int64("skipped", s.skipped.Load()))
			return
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

func (s *Scheduler) trigger(ctx context.Context) {
	if s.job.Overlap != OverlapAllow && s.running.Load() > 0 {
		s.skipped.Add(1)
		s.logger.Warn("previous run still in progress, skipping tick")
		return
	}

	s.running.Add(1)
	s.runs.Add(1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.running.Add(-1)

		start := time.Now()
		if err := s.job.Handler(ctx); err != nil {
			s.logger.Warn("job run failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
			return
		}
		s.logger.Debug("job run complete", zap.Duration("duration", time.Since(start)))
	}()
}

// Wait blocks until every started run has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) Runs() int64 {
	return s.runs.Load()
}

func (s *Scheduler) Skipped() int64 {
	return s.skipped.Load()
}
