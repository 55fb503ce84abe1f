package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/kinetics/kinetics"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick uint64 `csv:"-"`
	WindowEndTick   uint64 `csv:"window_end"`

	// Parameters and population at window end
	Temperature     int     `csv:"temperature"`
	Concentration   int     `csv:"concentration"`
	Reacted         int     `csv:"reacted"`
	ReactedFraction float64 `csv:"reacted_fraction"`

	// Events during window
	Collisions int `csv:"collisions"`
	Resets     int `csv:"resets"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// Speeds returns the velocity magnitude of every particle, sorted ascending.
func Speeds(pop kinetics.Population) []float64 {
	speeds := make([]float64, len(pop))
	for i := range pop {
		speeds[i] = r2.Norm(pop[i].Vel)
	}
	sort.Float64s(speeds)
	return speeds
}

// ComputeSpeedStats calculates mean, standard deviation and percentiles of
// sorted speed values. Returns zeros for an empty slice.
func ComputeSpeedStats(sorted []float64) (mean, std, p50, p90 float64) {
	switch len(sorted) {
	case 0:
		return 0, 0, 0, 0
	case 1:
		return sorted[0], 0, sorted[0], sorted[0]
	}
	mean, std = stat.MeanStdDev(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Int("temperature", s.Temperature),
		slog.Int("concentration", s.Concentration),
		slog.Int("reacted", s.Reacted),
		slog.Float64("reacted_fraction", s.ReactedFraction),
		slog.Int("collisions", s.Collisions),
		slog.Int("resets", s.Resets),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
