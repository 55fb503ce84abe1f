// Package kinetics simulates a bounded 2D population of particles that
// collide, exchange velocities and react above a temperature threshold.
package kinetics

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultRadius is the particle radius used when Options.Radius is unset.
const DefaultRadius = 6.0

// Source is the pseudorandom source used for spawning and jitter.
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Particle is one simulated particle.
type Particle struct {
	Pos     r2.Vec
	Vel     r2.Vec
	Radius  float64
	Reacted bool // never reverts within a run
}

// Population is the ordered particle set. Its length only changes on
// re-initialization.
type Population []Particle

// Bounds is the simulation viewport.
type Bounds struct {
	Width, Height float64
}

// Clone returns a copy that shares no memory with p.
func (p Population) Clone() Population {
	if p == nil {
		return nil
	}
	out := make(Population, len(p))
	copy(out, p)
	return out
}

// ReactedCount returns the number of reacted particles.
func (p Population) ReactedCount() int {
	n := 0
	for i := range p {
		if p[i].Reacted {
			n++
		}
	}
	return n
}

// SpeedBase converts a temperature into the speed scale.
func SpeedBase(temperature int) float64 {
	return float64(temperature)/20 + 0.5
}

// Initialize creates a fresh population of concentration particles.
// Positions are uniform over the area where a particle fits inside bounds;
// each velocity component is drawn from (u - 0.5) * speedBase * 2.
// Overlap at spawn is allowed.
func Initialize(bounds Bounds, concentration, temperature int, radius float64, rng Source) Population {
	speed := SpeedBase(temperature)
	spanX := bounds.Width - 2*radius
	spanY := bounds.Height - 2*radius

	pop := make(Population, concentration)
	for i := range pop {
		pop[i] = Particle{
			Pos: r2.Vec{
				X: radius + rng.Float64()*spanX,
				Y: radius + rng.Float64()*spanY,
			},
			Vel: r2.Vec{
				X: (rng.Float64() - 0.5) * speed * 2,
				Y: (rng.Float64() - 0.5) * speed * 2,
			},
			Radius: radius,
		}
	}
	return pop
}
