package kinetics

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// TickObserver receives each tick result. It is called with the simulation
// locked and must not call back into it. The result's Population is shared
// between observers and must be treated as read-only.
type TickObserver interface {
	ObserveTick(TickResult)
}

// Options configures a Simulation. The zero value is usable.
type Options struct {
	Radius    float64 // 0 = DefaultRadius
	Rand      Source  // nil = time-seeded source
	Logger    *slog.Logger
	Observers []TickObserver
	Running   bool // start in the Running state
}

// Params is the current parameter set.
type Params struct {
	Temperature   int
	Concentration int
	Running       bool
}

// TickResult is emitted after every tick, for rendering and telemetry.
type TickResult struct {
	Tick          uint64
	Generation    uint64 // incremented by every re-initialization
	ReactedCount  int
	Concentration int
	Temperature   int
	Collisions    int
	Population    Population
}

// ReactedFraction returns ReactedCount / Concentration.
func (r TickResult) ReactedFraction() float64 {
	if r.Concentration == 0 {
		return 0
	}
	return float64(r.ReactedCount) / float64(r.Concentration)
}

// Simulation is the exclusive owner of a population and its parameters.
// All methods are safe for concurrent use; ticks are strictly sequential.
type Simulation struct {
	mu sync.Mutex

	bounds    Bounds
	radius    float64
	rng       Source
	log       *slog.Logger
	observers []TickObserver

	pop   Population
	pairs []Pair

	temperature   int
	concentration int
	state         State

	tick       uint64
	generation uint64
	last       TickResult
	err        error // sticky invariant failure
}

// New creates a simulation over a width x height viewport.
func New(width, height float64, concentration, temperature int, opts Options) (*Simulation, error) {
	if err := ValidateTemperature(temperature); err != nil {
		return nil, err
	}
	if err := ValidateConcentration(concentration); err != nil {
		return nil, err
	}
	radius := opts.Radius
	if radius == 0 {
		radius = DefaultRadius
	}
	if err := validateGeometry(width, height, radius); err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Simulation{
		bounds:        Bounds{Width: width, Height: height},
		radius:        radius,
		rng:           rng,
		log:           logger,
		observers:     opts.Observers,
		temperature:   temperature,
		concentration: concentration,
	}
	if opts.Running {
		s.state = Running
	}
	s.reinit()
	return s, nil
}

// AddObserver registers o for subsequent ticks.
func (s *Simulation) AddObserver(o TickObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Bounds returns the viewport.
func (s *Simulation) Bounds() Bounds {
	return s.bounds
}

// Start begins ticking on subsequent frames.
func (s *Simulation) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Running {
		return
	}
	s.state = Running
	s.log.Debug("simulation started", "tick", s.tick)
}

// Stop halts ticking. The population stays as of the last completed tick.
func (s *Simulation) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Stopped {
		return
	}
	s.state = Stopped
	s.log.Debug("simulation stopped", "tick", s.tick)
}

// Reset re-initializes the population from the current parameters and
// clears any invariant failure. The running state is unchanged.
func (s *Simulation) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reinit()
	s.log.Debug("simulation reset", "generation", s.generation)
}

// SetTemperature rescales velocities without touching positions.
// Setting the current value is a no-op.
func (s *Simulation) SetTemperature(v int) error {
	if err := ValidateTemperature(v); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v == s.temperature {
		return nil
	}
	s.log.Debug("temperature changed", "from", s.temperature, "to", v)
	s.temperature = v
	Rescale(s.pop, v, s.rng)
	s.last.Temperature = v
	return nil
}

// SetConcentration replaces the population with one of size v.
// Setting the current value is a no-op.
func (s *Simulation) SetConcentration(v int) error {
	if err := ValidateConcentration(v); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v == s.concentration {
		return nil
	}
	s.log.Debug("concentration changed", "from", s.concentration, "to", v)
	s.concentration = v
	s.reinit()
	return nil
}

// State returns the scheduler state.
func (s *Simulation) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Params returns the current parameters.
func (s *Simulation) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Params{
		Temperature:   s.temperature,
		Concentration: s.concentration,
		Running:       s.state == Running,
	}
}

// Snapshot returns a copy of the current population.
func (s *Simulation) Snapshot() Population {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pop.Clone()
}

// Last returns the most recent tick result. After a re-initialization it
// reflects the fresh population at the current tick number.
func (s *Simulation) Last() TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.last
	r.Population = r.Population.Clone()
	return r
}

// Frame is the per-display-refresh callback. It ticks only while Running
// and reports whether a tick happened. The returned Population is shared
// with observers and must not be modified.
func (s *Simulation) Frame() (TickResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running {
		return s.last, false, s.err
	}
	r, err := s.stepLocked()
	return r, err == nil, err
}

// Step runs exactly one tick regardless of the running state.
func (s *Simulation) Step() (TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepLocked()
}

func (s *Simulation) stepLocked() (TickResult, error) {
	if s.err != nil {
		return s.last, s.err
	}
	if len(s.pop) != s.concentration {
		return s.fail(fmt.Errorf("%w: population has %d particles, want %d",
			ErrStateInvariant, len(s.pop), s.concentration))
	}

	s.pairs = DetectInto(s.pairs, s.pop)
	reacted := step(s.pop, s.pairs, s.temperature, s.bounds)
	s.tick++

	if err := s.checkLocked(reacted); err != nil {
		return s.fail(err)
	}

	s.last = TickResult{
		Tick:          s.tick,
		Generation:    s.generation,
		ReactedCount:  reacted,
		Concentration: s.concentration,
		Temperature:   s.temperature,
		Collisions:    len(s.pairs),
		Population:    s.pop.Clone(),
	}
	for _, o := range s.observers {
		o.ObserveTick(s.last)
	}
	return s.last, nil
}

// checkLocked verifies the post-tick invariants: every particle inside the
// viewport and the reacted count never decreasing within a generation.
func (s *Simulation) checkLocked(reacted int) error {
	for i := range s.pop {
		p := &s.pop[i]
		if !(p.Pos.X >= p.Radius && p.Pos.X <= s.bounds.Width-p.Radius &&
			p.Pos.Y >= p.Radius && p.Pos.Y <= s.bounds.Height-p.Radius) {
			return fmt.Errorf("%w: particle %d at (%g, %g) outside viewport",
				ErrStateInvariant, i, p.Pos.X, p.Pos.Y)
		}
	}
	if s.last.Generation == s.generation && reacted < s.last.ReactedCount {
		return fmt.Errorf("%w: reacted count fell from %d to %d",
			ErrStateInvariant, s.last.ReactedCount, reacted)
	}
	return nil
}

func (s *Simulation) fail(err error) (TickResult, error) {
	s.err = err
	s.state = Stopped
	s.log.Error("simulation halted", "tick", s.tick, "error", err)
	return s.last, err
}

// reinit replaces the population wholesale.
func (s *Simulation) reinit() {
	s.pop = Initialize(s.bounds, s.concentration, s.temperature, s.radius, s.rng)
	s.generation++
	s.err = nil
	s.last = TickResult{
		Tick:          s.tick,
		Generation:    s.generation,
		Concentration: s.concentration,
		Temperature:   s.temperature,
		Population:    s.pop.Clone(),
	}
}
