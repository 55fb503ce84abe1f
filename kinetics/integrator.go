package kinetics

import "gonum.org/v1/gonum/spatial/r2"

// Aggregate is the per-tick summary of a population.
type Aggregate struct {
	ReactedCount int
	Collisions   int
}

// Exchange swaps the full velocity vectors of two particles. This is a
// stand-in for an elastic response and ignores angle of incidence and mass.
func Exchange(a, b *Particle) {
	a.Vel, b.Vel = b.Vel, a.Vel
}

// Integrate advances every particle by its velocity and reflects it off the
// viewport walls, each axis independently. It returns the reacted count.
func Integrate(pop Population, bounds Bounds) int {
	reacted := 0
	for i := range pop {
		p := &pop[i]
		p.Pos = r2.Add(p.Pos, p.Vel)

		reflectAxis(&p.Pos.X, &p.Vel.X, p.Radius, bounds.Width-p.Radius)
		reflectAxis(&p.Pos.Y, &p.Vel.Y, p.Radius, bounds.Height-p.Radius)

		if p.Reacted {
			reacted++
		}
	}
	return reacted
}

// reflectAxis mirrors an out-of-range position back inside [lo, hi] and
// inverts the velocity component. The clamp handles overshoots wider than
// the range itself.
func reflectAxis(pos, vel *float64, lo, hi float64) {
	switch {
	case *pos < lo:
		*pos = 2*lo - *pos
		*vel = -*vel
	case *pos > hi:
		*pos = 2*hi - *pos
		*vel = -*vel
	default:
		return
	}
	if *pos < lo {
		*pos = lo
	}
	if *pos > hi {
		*pos = hi
	}
}

// Tick runs one simulation step on a copy of pop: every colliding pair
// exchanges velocities and is classified, then all particles are advanced.
// The input population is not modified.
func Tick(pop Population, temperature int, bounds Bounds) (Population, Aggregate) {
	next := pop.Clone()
	pairs := Detect(next)
	reacted := step(next, pairs, temperature, bounds)
	return next, Aggregate{
		ReactedCount: reacted,
		Collisions:   len(pairs),
	}
}

// step applies collision responses for pairs and integrates pop in place.
func step(pop Population, pairs []Pair, temperature int, bounds Bounds) int {
	for _, pr := range pairs {
		a, b := &pop[pr.I], &pop[pr.J]
		Exchange(a, b)
		Classify(a, b, temperature)
	}
	return Integrate(pop, bounds)
}
