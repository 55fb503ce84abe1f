package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kinetics/kinetics"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the population and parameters at one tick.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Tick          uint64 `json:"tick"`
	Generation    uint64 `json:"generation"`
	Temperature   int    `json:"temperature"`
	Concentration int    `json:"concentration"`

	Particles []ParticleState `json:"particles"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// ParticleState holds one particle's complete state.
type ParticleState struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Radius  float64 `json:"radius"`
	Reacted bool    `json:"reacted"`
}

// NewSnapshot captures a tick result.
func NewSnapshot(r kinetics.TickResult, bounds kinetics.Bounds, seed int64) *Snapshot {
	s := &Snapshot{
		Version:       SnapshotVersion,
		RNGSeed:       seed,
		Width:         bounds.Width,
		Height:        bounds.Height,
		Tick:          r.Tick,
		Generation:    r.Generation,
		Temperature:   r.Temperature,
		Concentration: r.Concentration,
		Particles:     make([]ParticleState, len(r.Population)),
	}
	for i, p := range r.Population {
		s.Particles[i] = ParticleState{
			X: p.Pos.X, Y: p.Pos.Y,
			VX: p.Vel.X, VY: p.Vel.Y,
			Radius:  p.Radius,
			Reacted: p.Reacted,
		}
	}
	return s
}

// Population rebuilds the particles.
func (s *Snapshot) Population() kinetics.Population {
	pop := make(kinetics.Population, len(s.Particles))
	for i, p := range s.Particles {
		pop[i] = kinetics.Particle{
			Pos:     r2.Vec{X: p.X, Y: p.Y},
			Vel:     r2.Vec{X: p.VX, Y: p.VY},
			Radius:  p.Radius,
			Reacted: p.Reacted,
		}
	}
	return pop
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	return &snapshot, nil
}
