// Package telemetry collects windowed reaction statistics and timing data
// and writes them as CSV.
package telemetry

import "github.com/pthm-cable/kinetics/kinetics"

// Collector accumulates tick results into windows of a fixed number of
// ticks. It implements kinetics.TickObserver.
type Collector struct {
	windowTicks int
	flush       func(WindowStats)

	// Current window tracking
	started         bool
	windowStartTick uint64
	ticksInWindow   int
	lastGeneration  uint64

	// Event counters for current window
	collisions int
	resets     int
}

// NewCollector creates a stats collector that calls flush at the end of
// each window. flush runs on the simulation's tick path and must not call
// back into the simulation.
func NewCollector(windowTicks int, flush func(WindowStats)) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks, flush: flush}
}

// ObserveTick records one tick and flushes when the window is full.
func (c *Collector) ObserveTick(r kinetics.TickResult) {
	if !c.started {
		c.started = true
		c.windowStartTick = r.Tick - 1
		c.lastGeneration = r.Generation
	}
	if r.Generation > c.lastGeneration {
		c.resets += int(r.Generation - c.lastGeneration)
		c.lastGeneration = r.Generation
	}
	c.collisions += r.Collisions
	c.ticksInWindow++

	if c.ticksInWindow >= c.windowTicks {
		stats := c.Flush(r)
		if c.flush != nil {
			c.flush(stats)
		}
	}
}

// Flush produces a WindowStats ending at r and resets counters for the
// next window.
func (c *Collector) Flush(r kinetics.TickResult) WindowStats {
	mean, std, p50, p90 := ComputeSpeedStats(Speeds(r.Population))

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   r.Tick,
		Temperature:     r.Temperature,
		Concentration:   r.Concentration,
		Reacted:         r.ReactedCount,
		ReactedFraction: r.ReactedFraction(),
		Collisions:      c.collisions,
		Resets:          c.resets,
		SpeedMean:       mean,
		SpeedStd:        std,
		SpeedP50:        p50,
		SpeedP90:        p90,
	}

	c.windowStartTick = r.Tick
	c.ticksInWindow = 0
	c.collisions = 0
	c.resets = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}
