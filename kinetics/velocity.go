package kinetics

import "gonum.org/v1/gonum/spatial/r2"

// Rescale renormalizes every velocity to the speed scale of temperature,
// applying an independent jitter in [0.5, 1.5) per component. Positions and
// reaction flags are untouched. A zero velocity is treated as magnitude 1.
func Rescale(pop Population, temperature int, rng Source) {
	speed := SpeedBase(temperature)
	for i := range pop {
		v := pop[i].Vel
		mag := r2.Norm(v)
		if mag == 0 {
			mag = 1
		}
		pop[i].Vel = r2.Vec{
			X: (v.X / mag) * speed * (rng.Float64() + 0.5),
			Y: (v.Y / mag) * speed * (rng.Float64() + 0.5),
		}
	}
}
