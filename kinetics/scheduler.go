package kinetics

import (
	"context"
	"time"
)

// State is the scheduler state.
type State uint8

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// FrameClock delivers frame callbacks at the host's refresh cadence.
type FrameClock interface {
	C() <-chan time.Time
	Stop()
}

// TickerClock is a FrameClock backed by a time.Ticker.
type TickerClock struct {
	t *time.Ticker
}

// NewTickerClock returns a clock firing fps times per second.
// Non-positive fps falls back to 60.
func NewTickerClock(fps int) *TickerClock {
	if fps <= 0 {
		fps = 60
	}
	return &TickerClock{t: time.NewTicker(time.Second / time.Duration(fps))}
}

func (c *TickerClock) C() <-chan time.Time { return c.t.C }
func (c *TickerClock) Stop()               { c.t.Stop() }

// Run drives Frame from clock until ctx is done or a tick fails.
// Frames arriving while the simulation is stopped are dropped, so a
// callback already queued on the clock never ticks after Stop returns.
// The clock is stopped on return.
func (s *Simulation) Run(ctx context.Context, clock FrameClock) error {
	defer clock.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-clock.C():
			if _, _, err := s.Frame(); err != nil {
				return err
			}
		}
	}
}
