package kinetics

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

// fixedSource returns vals in order, cycling.
type fixedSource struct {
	vals []float64
	i    int
}

func (f *fixedSource) Float64() float64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

func TestSpeedBase(t *testing.T) {
	tests := []struct {
		temperature int
		want        float64
	}{
		{10, 1.0},
		{20, 1.5},
		{50, 3.0},
		{60, 3.5},
		{100, 5.5},
	}

	for _, tt := range tests {
		if got := SpeedBase(tt.temperature); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("SpeedBase(%d) = %v, want %v", tt.temperature, got, tt.want)
		}
	}
}

func TestInitialize(t *testing.T) {
	bounds := Bounds{Width: 400, Height: 300}
	rng := rand.New(rand.NewSource(42))

	pop := Initialize(bounds, 20, 50, DefaultRadius, rng)

	if len(pop) != 20 {
		t.Fatalf("len = %d, want 20", len(pop))
	}
	speed := SpeedBase(50)
	for i, p := range pop {
		if p.Reacted {
			t.Errorf("particle %d starts reacted", i)
		}
		if p.Radius != DefaultRadius {
			t.Errorf("particle %d radius = %v, want %v", i, p.Radius, DefaultRadius)
		}
		if p.Pos.X < p.Radius || p.Pos.X > bounds.Width-p.Radius ||
			p.Pos.Y < p.Radius || p.Pos.Y > bounds.Height-p.Radius {
			t.Errorf("particle %d spawned outside viewport at %v", i, p.Pos)
		}
		if math.Abs(p.Vel.X) > speed || math.Abs(p.Vel.Y) > speed {
			t.Errorf("particle %d velocity %v exceeds speed base %v", i, p.Vel, speed)
		}
	}
}

func TestInitializeVelocityFormula(t *testing.T) {
	// Draw order per particle: x, y, vx, vy.
	rng := &fixedSource{vals: []float64{0, 1, 0.75, 0.25}}
	pop := Initialize(Bounds{Width: 100, Height: 100}, 1, 20, 5, rng)

	p := pop[0]
	if p.Pos != (r2.Vec{X: 5, Y: 95}) {
		t.Errorf("Pos = %v, want {5 95}", p.Pos)
	}
	// speed base 1.5: (0.75-0.5)*1.5*2 = 0.75, (0.25-0.5)*1.5*2 = -0.75
	if math.Abs(p.Vel.X-0.75) > 1e-12 || math.Abs(p.Vel.Y+0.75) > 1e-12 {
		t.Errorf("Vel = %v, want {0.75 -0.75}", p.Vel)
	}
}

func TestInitializeSeededIsReproducible(t *testing.T) {
	bounds := Bounds{Width: 400, Height: 300}
	a := Initialize(bounds, 30, 70, DefaultRadius, rand.New(rand.NewSource(7)))
	b := Initialize(bounds, 30, 70, DefaultRadius, rand.New(rand.NewSource(7)))

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPopulationClone(t *testing.T) {
	pop := Population{{Pos: r2.Vec{X: 1, Y: 2}, Radius: 1}}
	c := pop.Clone()
	c[0].Pos.X = 99
	c[0].Reacted = true

	if pop[0].Pos.X != 1 || pop[0].Reacted {
		t.Error("mutating the clone changed the original")
	}
	if Population(nil).Clone() != nil {
		t.Error("clone of nil should be nil")
	}
}

func TestPopulationReactedCount(t *testing.T) {
	pop := Population{{Reacted: true}, {}, {Reacted: true}}
	if got := pop.ReactedCount(); got != 2 {
		t.Errorf("ReactedCount = %d, want 2", got)
	}
}
