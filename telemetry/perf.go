package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one frame.
const (
	PhaseSimulation = "simulation"
	PhaseScene      = "scene"
	PhaseRender     = "render"
)

var phases = []string{PhaseSimulation, PhaseScene, PhaseRender}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameWork time.Duration
	Phases    map[string]time.Duration
}

// PerfCollector tracks frame timing over a rolling window.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    map[string]time.Duration
	frameStart time.Time
	phaseStart time.Time
	lastPhase  string

	// Wall-clock spacing between frames
	lastFrameEnd time.Time
	frameGap     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
		current:    make(map[string]time.Duration),
	}
}

// StartFrame begins timing a frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.current = make(map[string]time.Duration, len(phases))
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and begins timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes the frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	if !p.lastFrameEnd.IsZero() {
		p.frameGap = now.Sub(p.lastFrameEnd)
	}
	p.lastFrameEnd = now

	p.samples[p.writeIndex] = PerfSample{
		FrameWork: now.Sub(p.frameStart),
		Phases:    p.current,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgFrameWork time.Duration
	MaxFrameWork time.Duration
	PhaseAvg     map[string]time.Duration
	PhasePct     map[string]float64
	FPS          float64 // from spacing between frames
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.frameGap > 0 {
		out.FPS = float64(time.Second) / float64(p.frameGap)
	}
	if p.sampleCount == 0 {
		return out
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameWork
		if s.FrameWork > out.MaxFrameWork {
			out.MaxFrameWork = s.FrameWork
		}
		for phase, d := range s.Phases {
			sums[phase] += d
		}
	}

	n := time.Duration(p.sampleCount)
	out.AvgFrameWork = total / n
	for phase, sum := range sums {
		out.PhaseAvg[phase] = sum / n
		if out.AvgFrameWork > 0 {
			out.PhasePct[phase] = float64(out.PhaseAvg[phase]) / float64(out.AvgFrameWork) * 100
		}
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameWork.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameWork.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the perf stats using slog.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     uint64  `csv:"window_end"`
	AvgFrameUS    int64   `csv:"avg_frame_us"`
	MaxFrameUS    int64   `csv:"max_frame_us"`
	FPS           float64 `csv:"fps"`
	SimulationPct float64 `csv:"simulation_pct"`
	ScenePct      float64 `csv:"scene_pct"`
	RenderPct     float64 `csv:"render_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgFrameUS:    s.AvgFrameWork.Microseconds(),
		MaxFrameUS:    s.MaxFrameWork.Microseconds(),
		FPS:           s.FPS,
		SimulationPct: s.PhasePct[PhaseSimulation],
		ScenePct:      s.PhasePct[PhaseScene],
		RenderPct:     s.PhasePct[PhaseRender],
	}
}
