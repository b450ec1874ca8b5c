// Package node implements the duty-cycle controller: the state machine that
// sequences sensor warm-up, sampling, median aggregation, fixed-point
// encoding, transmission and low-power sleep. One pass through the machine
// is one duty cycle; the machine has no terminal state.
package node

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/chewxy/math32"
	"github.com/itohio/godust/pkg/ambient"
	"github.com/itohio/godust/pkg/config"
	"github.com/itohio/godust/pkg/payload"
	"github.com/itohio/godust/pkg/sample"
	"github.com/itohio/godust/pkg/schedule"
	"github.com/itohio/godust/pkg/sds011"
	"github.com/itohio/godust/pkg/uplink"
)

// State identifies the current duty-cycle phase. Transitions are strictly
// sequential; the only loop edge is Sleeping back to WakingSensor.
type State int

const (
	Sleeping State = iota
	WakingSensor
	Sampling
	Aggregating
	Encoding
	Transmitting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Sleeping:
		return "SLEEPING"
	case WakingSensor:
		return "WAKING_SENSOR"
	case Sampling:
		return "SAMPLING"
	case Aggregating:
		return "AGGREGATING"
	case Encoding:
		return "ENCODING"
	case Transmitting:
		return "TRANSMITTING"
	default:
		return "UNKNOWN"
	}
}

// errCycleAborted marks a cycle that skipped transmission (all samples for a
// channel failed). Reportable, non-fatal: the node goes straight to sleep.
var errCycleAborted = errors.New("cycle aborted, transmission skipped")

// Node owns one sensor pair, one uplink and one scheduler, and runs the duty
// cycle over them. All fields are single-owner; only the scheduler's tick
// counter is touched concurrently.
type Node struct {
	cfg   *config.Config
	pm    sds011.Device
	amb   ambient.Sensor
	up    uplink.Uplink
	sched schedule.Scheduler

	state State
}

// New creates a node from its collaborators. Drivers must already be
// connected.
func New(cfg *config.Config, pm sds011.Device, amb ambient.Sensor, up uplink.Uplink, sched schedule.Scheduler) *Node {
	return &Node{
		cfg:   cfg,
		pm:    pm,
		amb:   amb,
		up:    up,
		sched: sched,
		state: Sleeping,
	}
}

// State returns the current duty-cycle phase.
func (n *Node) State() State {
	return n.state
}

// Run executes duty cycles until the context is cancelled. The first cycle
// starts unconditionally; every later cycle waits out the configured sleep
// interval first. Cycle failures never propagate: each cycle is independent
// and the node always returns to Sleeping.
func (n *Node) Run(ctx context.Context) error {
	for {
		if err := n.RunCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("node: %v", err)
		}

		n.state = Sleeping
		if n.cfg.Sleep.Enabled {
			if err := n.sched.WaitForInterval(ctx, n.cfg.Sleep.Interval); err != nil {
				return err
			}
		} else if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// RunCycle performs a single wake-sample-transmit-sleep pass. The sensor is
// always commanded back to sleep, whether or not the cycle transmitted.
func (n *Node) RunCycle(ctx context.Context) error {
	n.sched.CycleStart()

	n.state = WakingSensor
	if err := n.pm.Wake(); err != nil {
		// Treated as transient: the reads below will fail and the empty
		// aggregation path takes over.
		log.Printf("node: wake command failed: %v", err)
	}
	defer func() {
		if err := n.pm.Sleep(); err != nil {
			log.Printf("node: sleep command failed: %v", err)
		}
	}()

	// The sensor has no readiness handshake; the fan spin-up delay is the
	// only synchronization.
	if err := sleepCtx(ctx, n.cfg.Sampling.WarmUp); err != nil {
		return err
	}

	n.state = Sampling
	temp := n.amb.Temperature()
	hum := n.amb.Humidity()
	if temp == ambient.Missing {
		log.Printf("node: ambient temperature read failed, sending sentinel")
	}
	if hum == ambient.Missing {
		log.Printf("node: ambient humidity read failed, sending sentinel")
	}

	set25 := sample.NewSet(n.cfg.Sampling.Count)
	set10 := sample.NewSet(n.cfg.Sampling.Count)

	for i := 0; i < n.cfg.Sampling.Count; i++ {
		if i > 0 {
			if err := sleepCtx(ctx, n.cfg.Sampling.Delay); err != nil {
				return err
			}
		}

		pm25, pm10, err := n.pm.Read()
		if err != nil {
			// Transient: the slot stays empty, no retry, the cycle goes on.
			log.Printf("node: read %d/%d failed: %v", i+1, n.cfg.Sampling.Count, err)
			continue
		}
		if finite(pm25) {
			set25.Add(pm25)
		}
		if finite(pm10) {
			set10.Add(pm10)
		}
	}

	n.state = Aggregating
	m25, err := set25.Median()
	if err != nil {
		log.Printf("node: no valid PM2.5 samples this cycle")
		return errCycleAborted
	}
	m10, err := set10.Median()
	if err != nil {
		log.Printf("node: no valid PM10 samples this cycle")
		return errCycleAborted
	}

	if n.cfg.Compensate.Humidity && hum != ambient.Missing {
		h := float32(hum) / 10
		m25 = sample.NormalizePM25(m25, h)
		m10 = sample.NormalizePM10(m10, h)
	}

	n.state = Encoding
	p := payload.Encode(m10, m25, hum, temp)

	n.state = Transmitting
	log.Printf("node: PM2.5=%.1f PM10=%.1f (%d/%d samples)", m25, m10, set25.Count(), set25.Capacity())
	if err := n.up.Send(p[:]); err != nil {
		// Fire-and-forget: delivery belongs to the transport.
		log.Printf("node: uplink send failed: %v", err)
	}

	return nil
}

// finite rejects NaN and infinite readings so a glitched value can never
// occupy a sample slot.
func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// sleepCtx sleeps for d unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
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
