package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kinetics/kinetics"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	res := kinetics.TickResult{
		Tick:          90,
		Generation:    2,
		Temperature:   75,
		Concentration: 2,
		Population: kinetics.Population{
			{Pos: r2.Vec{X: 10, Y: 20}, Vel: r2.Vec{X: 1, Y: -2}, Radius: 6, Reacted: true},
			{Pos: r2.Vec{X: 50, Y: 60}, Vel: r2.Vec{X: -3, Y: 4}, Radius: 6},
		},
	}
	snap := NewSnapshot(res, kinetics.Bounds{Width: 400, Height: 300}, 42)
	snap.Bookmark = &Bookmark{Type: BookmarkHalfReacted, Tick: 90}

	path, err := SaveSnapshot(snap, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if !strings.HasSuffix(path, "snapshot_90_half_reacted.json") {
		t.Errorf("path = %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded.RNGSeed != 42 || loaded.Width != 400 || loaded.Generation != 2 || loaded.Temperature != 75 {
		t.Errorf("loaded = %+v", loaded)
	}
	pop := loaded.Population()
	if len(pop) != 2 {
		t.Fatalf("got %d particles, want 2", len(pop))
	}
	for i := range pop {
		if pop[i] != res.Population[i] {
			t.Errorf("particle %d = %+v, want %+v", i, pop[i], res.Population[i])
		}
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version error")
	}
}
