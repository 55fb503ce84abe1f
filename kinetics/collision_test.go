package kinetics

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func at(x, y float64) Particle {
	return Particle{Pos: r2.Vec{X: x, Y: y}, Radius: 6}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		pop  Population
		want []Pair
	}{
		{
			name: "empty",
			pop:  nil,
			want: nil,
		},
		{
			name: "far apart",
			pop:  Population{at(10, 10), at(100, 100)},
			want: nil,
		},
		{
			name: "exactly touching is not a collision",
			pop:  Population{at(10, 10), at(22, 10)},
			want: nil,
		},
		{
			name: "overlapping",
			pop:  Population{at(10, 10), at(21.9, 10)},
			want: []Pair{{0, 1}},
		},
		{
			name: "diagonal overlap",
			pop:  Population{at(10, 10), at(18, 18)},
			want: []Pair{{0, 1}},
		},
		{
			name: "particle in two pairs",
			pop:  Population{at(10, 10), at(20, 10), at(30, 10)},
			want: []Pair{{0, 1}, {1, 2}},
		},
		{
			name: "cluster",
			pop:  Population{at(50, 50), at(52, 50), at(51, 52), at(200, 200)},
			want: []Pair{{0, 1}, {0, 2}, {1, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.pop)
			if len(got) != len(tt.want) {
				t.Fatalf("Detect = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("pair %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDetectIntoReusesBuffer(t *testing.T) {
	pop := Population{at(10, 10), at(12, 10)}
	buf := make([]Pair, 0, 8)
	buf = DetectInto(buf, pop)
	if len(buf) != 1 {
		t.Fatalf("len = %d, want 1", len(buf))
	}

	pop[1].Pos.X = 200
	buf = DetectInto(buf, pop)
	if len(buf) != 0 {
		t.Errorf("stale pairs kept: %v", buf)
	}
}

func TestColliding_MixedRadii(t *testing.T) {
	a := Particle{Pos: r2.Vec{X: 0, Y: 0}, Radius: 2}
	b := Particle{Pos: r2.Vec{X: 9, Y: 0}, Radius: 8}
	if !Colliding(&a, &b) {
		t.Error("distance 9 < 10 should collide")
	}
	b.Radius = 7
	if Colliding(&a, &b) {
		t.Error("distance 9 == 9 should not collide")
	}
}
