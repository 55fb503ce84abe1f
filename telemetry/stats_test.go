package telemetry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kinetics/kinetics"
)

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, std, p50, p90 := ComputeSpeedStats(values)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Sample standard deviation of 1..10
	if math.Abs(std-3.02765) > 1e-4 {
		t.Errorf("std = %v, want ~3.02765", std)
	}
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p90 != 9 {
		t.Errorf("p90 = %v, want 9", p90)
	}
}

func TestComputeSpeedStatsSmall(t *testing.T) {
	mean, std, p50, p90 := ComputeSpeedStats(nil)
	if mean != 0 || std != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}

	mean, std, p50, p90 = ComputeSpeedStats([]float64{2.5})
	if mean != 2.5 || std != 0 || p50 != 2.5 || p90 != 2.5 {
		t.Errorf("single value stats = %v %v %v %v", mean, std, p50, p90)
	}
}

func TestSpeeds(t *testing.T) {
	pop := kinetics.Population{
		{Vel: r2.Vec{X: 3, Y: 4}},
		{Vel: r2.Vec{X: 0, Y: -1}},
		{Vel: r2.Vec{}},
	}
	got := Speeds(pop)
	want := []float64{0, 1, 5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Speeds()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
