// Package scheduler runs the weekly industry insight refresh.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"career-coach-backend/internal/domain"
	"career-coach-backend/pkg/logger"

	"github.com/robfig/cron/v3"
)

// ErrAlreadyRunning is returned when a refresh is triggered while one is in flight.
var ErrAlreadyRunning = errors.New("insight refresh already running")

// Scheduler wraps robfig/cron and guarantees at most one refresh at a time,
// whether it was fired by cron or triggered manually.
type Scheduler struct {
	cron    *cron.Cron
	insight domain.InsightUsecase
	spec    string
	running atomic.Bool
	log     *slog.Logger

	// wg tracks the refresh started by Start outside of cron.
	wg sync.WaitGroup
}

// New creates a Scheduler for the standard five-field cron spec. An empty spec
// disables the periodic trigger; RunNow keeps working.
func New(insight domain.InsightUsecase, spec string) *Scheduler {
	l := logger.Log.With("component", "scheduler")
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cronLogger{l})),
		insight: insight,
		spec:    spec,
		log:     l,
	}
}

// Start registers the refresh job and starts the cron loop. With runOnStart the
// first refresh begins immediately in the background.
func (s *Scheduler) Start(ctx context.Context, runOnStart bool) error {
	if s.spec != "" {
		if _, err := s.cron.AddFunc(s.spec, func() { s.runLogged(ctx) }); err != nil {
			return fmt.Errorf("cron.AddFunc %q: %w", s.spec, err)
		}
		s.cron.Start()
		s.log.Info("Cron started", "spec", s.spec)
	} else {
		s.log.Info("Periodic insight refresh disabled")
	}

	if runOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runLogged(ctx)
		}()
	}
	return nil
}

// Stop halts the cron loop and waits up to timeout for running refreshes,
// including the one started by runOnStart.
func (s *Scheduler) Stop(timeout time.Duration) {
	cronDone := s.cron.Stop().Done()
	done := make(chan struct{})
	go func() {
		<-cronDone
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		s.log.Warn("Insight refresh still running at shutdown")
	}
	s.log.Info("Cron stopped")
}

// RunNow performs one refresh synchronously.
func (s *Scheduler) RunNow(ctx context.Context) ([]domain.RefreshResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer s.running.Store(false)

	return s.insight.RefreshAll(ctx)
}

func (s *Scheduler) runLogged(ctx context.Context) {
	results, err := s.RunNow(ctx)
	switch {
	case errors.Is(err, ErrAlreadyRunning):
		s.log.Warn("Skipping insight refresh, previous run still in progress")
	case err != nil:
		s.log.Error("Insight refresh aborted", "error", err)
	default:
		s.log.Info("Insight refresh cycle complete", "industries", len(results), "failed", len(Failed(results)))
	}
}

// Failed returns the industries whose refresh did not succeed.
func Failed(results []domain.RefreshResult) []string {
	var failed []string
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r.Industry)
		}
	}
	return failed
}

// cronLogger routes robfig/cron's own logging through slog.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, append(keysAndValues, "error", err)...)
}
