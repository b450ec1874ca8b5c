// Package schedule implements the low-power wake scheduling for the duty
// cycle. Two strategies share one contract: the tick-counting scheduler
// models a free-running wake timer that is the only time source while the
// processor is powered down; the delay scheduler is the degraded fallback
// for targets without a power-down mode and compensates for the time the
// active phase already consumed.
package schedule

import (
	"context"
	"time"
)

// Scheduler decides when the next duty cycle begins.
type Scheduler interface {
	// CycleStart marks the beginning of the active phase (sensor warm-up).
	CycleStart()
	// WaitForInterval blocks until the configured wake-to-wake interval has
	// elapsed, or the context is cancelled.
	WaitForInterval(ctx context.Context, interval time.Duration) error
}

// Ensure both strategies implement Scheduler.
var (
	_ Scheduler = (*TickScheduler)(nil)
	_ Scheduler = (*DelayScheduler)(nil)
)

// TickScheduler counts wake-timer ticks. The counter runs continuously, so
// an interval measured in ticks spans wake-to-wake without any drift
// compensation: ticks accumulated during warm-up and sampling already count
// toward the next deadline.
type TickScheduler struct {
	counter WakeCounter
	period  time.Duration
	wake    chan struct{}
}

// NewTickScheduler creates a scheduler for a wake timer with the given tick
// period.
func NewTickScheduler(period time.Duration) *TickScheduler {
	if period <= 0 {
		period = time.Second
	}
	return &TickScheduler{
		period: period,
		wake:   make(chan struct{}, 1),
	}
}

// OnTick is the wake-timer callback. It bumps the counter and nudges any
// in-progress wait, never blocking.
func (s *TickScheduler) OnTick() {
	s.counter.Tick()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Counter exposes the tick counter for inspection.
func (s *TickScheduler) Counter() *WakeCounter {
	return &s.counter
}

// Run drives OnTick from a host timer until the context is cancelled. On
// hardware the timer interrupt takes this role and Run is not used.
func (s *TickScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.OnTick()
		}
	}
}

// CycleStart is a no-op: the free-running counter needs no compensation.
func (s *TickScheduler) CycleStart() {}

// WaitForInterval blocks until the counter reaches the interval's tick
// target, then clears it exactly once.
func (s *TickScheduler) WaitForInterval(ctx context.Context, interval time.Duration) error {
	target := uint32(interval / s.period)
	if target == 0 {
		target = 1
	}

	for {
		if s.counter.ConsumeIfAtLeast(target) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
		}
	}
}

// DelayScheduler is the fallback for targets without a power-down mode. It
// sleeps wall-clock time, subtracting the measured duration of the active
// phase so the wake-to-wake period stays at the configured interval instead
// of drifting by one active phase per cycle.
type DelayScheduler struct {
	started time.Time
	now     func() time.Time
}

// NewDelayScheduler creates the busy-wait fallback scheduler.
func NewDelayScheduler() *DelayScheduler {
	return &DelayScheduler{now: time.Now}
}

// CycleStart records when the active phase began.
func (s *DelayScheduler) CycleStart() {
	s.started = s.now()
}

// WaitForInterval sleeps for the remainder of the interval.
func (s *DelayScheduler) WaitForInterval(ctx context.Context, interval time.Duration) error {
	d := s.remaining(interval)
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// remaining computes max(0, interval - elapsed active time).
func (s *DelayScheduler) remaining(interval time.Duration) time.Duration {
	if s.started.IsZero() {
		return interval
	}
	d := interval - s.now().Sub(s.started)
	if d < 0 {
		return 0
	}
	return d
}
