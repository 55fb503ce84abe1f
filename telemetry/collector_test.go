package telemetry

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kinetics/kinetics"
)

func result(tick, gen uint64, reacted, collisions int) kinetics.TickResult {
	return kinetics.TickResult{
		Tick:          tick,
		Generation:    gen,
		ReactedCount:  reacted,
		Concentration: 10,
		Temperature:   70,
		Collisions:    collisions,
		Population: kinetics.Population{
			{Vel: r2.Vec{X: 1}},
			{Vel: r2.Vec{X: 3}},
		},
	}
}

func TestCollectorFlushesEveryWindow(t *testing.T) {
	var flushed []WindowStats
	c := NewCollector(3, func(s WindowStats) { flushed = append(flushed, s) })

	for tick := uint64(1); tick <= 7; tick++ {
		c.ObserveTick(result(tick, 1, int(tick), 2))
	}

	if len(flushed) != 2 {
		t.Fatalf("flushed %d windows, want 2", len(flushed))
	}
	first := flushed[0]
	if first.WindowStartTick != 0 || first.WindowEndTick != 3 {
		t.Errorf("first window = [%d, %d], want [0, 3]", first.WindowStartTick, first.WindowEndTick)
	}
	if first.Collisions != 6 {
		t.Errorf("collisions = %d, want 6", first.Collisions)
	}
	if first.Reacted != 3 || first.ReactedFraction != 0.3 {
		t.Errorf("reacted = %d (%v), want 3 (0.3)", first.Reacted, first.ReactedFraction)
	}
	if first.SpeedMean != 2 {
		t.Errorf("speed mean = %v, want 2", first.SpeedMean)
	}
	if flushed[1].WindowStartTick != 3 || flushed[1].WindowEndTick != 6 {
		t.Errorf("second window = [%d, %d], want [3, 6]", flushed[1].WindowStartTick, flushed[1].WindowEndTick)
	}
}

func TestCollectorCountsResets(t *testing.T) {
	var flushed []WindowStats
	c := NewCollector(4, func(s WindowStats) { flushed = append(flushed, s) })

	c.ObserveTick(result(11, 2, 0, 0))
	c.ObserveTick(result(12, 2, 0, 0))
	c.ObserveTick(result(13, 4, 0, 0)) // two resets between ticks
	c.ObserveTick(result(14, 4, 0, 0))

	if len(flushed) != 1 {
		t.Fatalf("flushed %d windows, want 1", len(flushed))
	}
	if flushed[0].Resets != 2 {
		t.Errorf("resets = %d, want 2", flushed[0].Resets)
	}
	if flushed[0].WindowStartTick != 10 {
		t.Errorf("window start = %d, want 10", flushed[0].WindowStartTick)
	}
}

func TestCollectorObservesSimulation(t *testing.T) {
	var flushed []WindowStats
	c := NewCollector(5, func(s WindowStats) { flushed = append(flushed, s) })
	sim, err := kinetics.New(400, 300, 10, 50, kinetics.Options{
		Observers: []kinetics.TickObserver{c},
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		if _, err := sim.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if len(flushed) != 2 {
		t.Fatalf("flushed %d windows, want 2", len(flushed))
	}
	if flushed[1].WindowEndTick != 10 || flushed[1].Concentration != 10 {
		t.Errorf("last window = %+v", flushed[1])
	}
}
