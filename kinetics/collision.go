package kinetics

import "gonum.org/v1/gonum/spatial/r2"

// Pair identifies two colliding particles by index, with I < J.
type Pair struct {
	I, J int
}

// Colliding reports whether two particles overlap: the distance between
// centers is strictly less than the sum of radii.
func Colliding(a, b *Particle) bool {
	return r2.Norm(r2.Sub(b.Pos, a.Pos)) < a.Radius+b.Radius
}

// Detect returns every overlapping pair in the population.
// All pairs are checked; populations are small enough that no spatial
// index is needed. A particle may appear in more than one pair.
func Detect(pop Population) []Pair {
	return DetectInto(nil, pop)
}

// DetectInto appends overlapping pairs to dst and returns it.
// Reuse dst across ticks to avoid allocations.
func DetectInto(dst []Pair, pop Population) []Pair {
	dst = dst[:0]
	for i := 0; i < len(pop); i++ {
		for j := i + 1; j < len(pop); j++ {
			if Colliding(&pop[i], &pop[j]) {
				dst = append(dst, Pair{I: i, J: j})
			}
		}
	}
	return dst
}
