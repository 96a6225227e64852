package scheduler

import (
	"errors"
	"testing"
	"time"
)

type sweepEngineStub struct {
	calls       []string
	renewErr    error
	renewAsOf   time.Time
	deactivated bool
}

func (s *sweepEngineStub) ApplyRenewals(asOf time.Time) error {
	s.calls = append(s.calls, "renewals")
	s.renewAsOf = asOf
	return s.renewErr
}

func (s *sweepEngineStub) ApplyDeactivations(asOf time.Time) error {
	s.calls = append(s.calls, "deactivations")
	s.deactivated = true
	return nil
}

func TestRunSweepOrdersRenewalsBeforeDeactivations(t *testing.T) {
	engine := &sweepEngineStub{}
	s := New(engine, "0 0 * * *")

	s.RunSweep()

	if len(engine.calls) != 2 || engine.calls[0] != "renewals" || engine.calls[1] != "deactivations" {
		t.Fatalf("unexpected sweep order: %v", engine.calls)
	}
}

func TestRunSweepUsesInjectedClock(t *testing.T) {
	engine := &sweepEngineStub{}
	fixed := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	s := New(engine, "0 0 * * *").WithClock(func() time.Time { return fixed })

	s.RunSweep()

	if !engine.renewAsOf.Equal(fixed) {
		t.Fatalf("sweep reference time = %v, want %v", engine.renewAsOf, fixed)
	}
}

func TestRunSweepContinuesAfterRenewalFailure(t *testing.T) {
	engine := &sweepEngineStub{renewErr: errors.New("db unavailable")}
	s := New(engine, "0 0 * * *")

	s.RunSweep()

	if !engine.deactivated {
		t.Fatal("expected deactivation sweep to run despite renewal sweep failure")
	}
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s := New(&sweepEngineStub{}, "not a cron expression")

	if err := s.Start(); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}
