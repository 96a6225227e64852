// Package scheduler runs the daily membership sweeps. The cron runner is an
// explicitly owned component: it is constructed with its dependencies and an
// injected clock, started and stopped by the process lifecycle.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SweepEngine is the slice of the lifecycle engine the scheduler drives.
type SweepEngine interface {
	ApplyRenewals(asOf time.Time) error
	ApplyDeactivations(asOf time.Time) error
}

// Scheduler triggers the membership renewal and deactivation sweeps on a
// fixed daily cadence.
type Scheduler struct {
	cron     *cron.Cron
	engine   SweepEngine
	schedule string
	now      func() time.Time
}

// New creates the sweep scheduler. schedule is a standard cron expression
// (e.g. "0 0 * * *" for midnight). Runs recover from panics and are skipped
// while a previous run is still in progress.
func New(engine SweepEngine, schedule string) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cronLogger),
		cron.Recover(cronLogger),
	))

	return &Scheduler{
		cron:     c,
		engine:   engine,
		schedule: schedule,
		now:      time.Now,
	}
}

// WithClock overrides the clock used as the sweep reference time.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Start registers the daily sweep and starts the cron runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.RunSweep); err != nil {
		return err
	}
	s.cron.Start()
	slog.Info("membership sweep scheduled", "schedule", s.schedule)
	return nil
}

// Stop stops the cron runner. The returned context is done once any
// in-flight sweep has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunSweep executes one full sweep: renewals first, then deactivations.
// Renewal must run first so the ordering of the two transitions on a given
// day is deterministic. Each sweep isolates per-record failures internally;
// a failed renewal query still lets the deactivation sweep run.
func (s *Scheduler) RunSweep() {
	asOf := s.now()
	slog.Info("membership sweep started", "as_of", asOf.Format(time.RFC3339))

	if err := s.engine.ApplyRenewals(asOf); err != nil {
		slog.Error("renewal sweep failed", "error", err.Error())
	}
	if err := s.engine.ApplyDeactivations(asOf); err != nil {
		slog.Error("deactivation sweep failed", "error", err.Error())
	}

	slog.Info("membership sweep completed")
}
