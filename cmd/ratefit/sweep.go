package main

import (
	"math/rand"
	"sync"

	"github.com/pthm-cable/kinetics/config"
	"github.com/pthm-cable/kinetics/kinetics"
)

// Result is one row of the sweep output.
type Result struct {
	Temperature   int     `csv:"temperature"`
	Concentration int     `csv:"concentration"`
	Seeds         int     `csv:"seeds"`
	Ticks         int     `csv:"ticks"`
	FinalFraction float64 `csv:"final_fraction"`
	RateK         float64 `csv:"rate_k"`
	HalfLife      float64 `csv:"half_life_ticks"`
	SSE           float64 `csv:"sse"`
}

// Sweep runs headless simulations for parameter combinations.
type Sweep struct {
	cfg   *config.Config
	ticks int
	seeds []int64
}

// NewSweep creates a sweep over the given seeds.
func NewSweep(cfg *config.Config, ticks int, seeds []int64) *Sweep {
	return &Sweep{cfg: cfg, ticks: ticks, seeds: seeds}
}

// Evaluate runs every seed for one combination in parallel and fits the
// seed-averaged curve.
func (s *Sweep) Evaluate(temperature, concentration int) (Result, error) {
	curves := make([]curve, len(s.seeds))
	errs := make([]error, len(s.seeds))
	var wg sync.WaitGroup

	for i, seed := range s.seeds {
		wg.Add(1)
		go func(idx int, seed int64) {
			defer wg.Done()
			curves[idx], errs[idx] = s.run(temperature, concentration, seed)
		}(i, seed)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Result{}, err
		}
	}

	avg := make(curve, s.ticks)
	for _, c := range curves {
		for i, f := range c {
			avg[i] += f / float64(len(curves))
		}
	}

	k, sse, err := fitRate(avg)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Temperature:   temperature,
		Concentration: concentration,
		Seeds:         len(s.seeds),
		Ticks:         s.ticks,
		FinalFraction: avg[len(avg)-1],
		RateK:         k,
		HalfLife:      halfLife(k),
		SSE:           sse,
	}, nil
}

// run executes a single simulation and records the reacted fraction per tick.
func (s *Sweep) run(temperature, concentration int, seed int64) (curve, error) {
	sim, err := kinetics.New(
		s.cfg.Viewport.Width, s.cfg.Viewport.Height,
		concentration, temperature,
		kinetics.Options{
			Radius:  s.cfg.Particle.Radius,
			Rand:    rand.New(rand.NewSource(seed)),
			Running: true,
		},
	)
	if err != nil {
		return nil, err
	}

	c := make(curve, s.ticks)
	for i := range c {
		res, err := sim.Step()
		if err != nil {
			return nil, err
		}
		c[i] = res.ReactedFraction()
	}
	return c, nil
}
