package game

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/kinetics/config"
	"github.com/pthm-cable/kinetics/kinetics"
	"github.com/pthm-cable/kinetics/stream"
	"github.com/pthm-cable/kinetics/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Telemetry.WindowTicks = 10
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHeadless(t *testing.T, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	opts.Logger = quietLogger()
	if opts.Config == nil {
		opts.Config = testConfig(t)
	}
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestHeadlessTicks(t *testing.T) {
	var windows []telemetry.WindowStats
	g := newHeadless(t, Options{
		Seed:          7,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	for i := 0; i < 35; i++ {
		if err := g.UpdateHeadless(); err != nil {
			t.Fatal(err)
		}
	}
	if g.Tick() != 35 {
		t.Errorf("Tick = %d, want 35", g.Tick())
	}
	if len(windows) != 3 {
		t.Fatalf("got %d windows, want 3", len(windows))
	}
	if windows[2].WindowEndTick != 30 || windows[2].Concentration != 20 {
		t.Errorf("window = %+v", windows[2])
	}
}

func TestHeadlessStoppedDoesNotTick(t *testing.T) {
	cfg := testConfig(t)
	cfg.Simulation.Running = false
	g := newHeadless(t, Options{Config: cfg})

	for i := 0; i < 5; i++ {
		if err := g.UpdateHeadless(); err != nil {
			t.Fatal(err)
		}
	}
	if g.Tick() != 0 {
		t.Errorf("Tick = %d while stopped", g.Tick())
	}
}

func TestSeedReproducible(t *testing.T) {
	run := func() kinetics.Population {
		g := newHeadless(t, Options{Seed: 99})
		for i := 0; i < 20; i++ {
			if err := g.UpdateHeadless(); err != nil {
				t.Fatal(err)
			}
		}
		return g.Sim().Snapshot()
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs between runs with the same seed", i)
		}
	}
}

func TestOutputFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)
	cfg.Simulation.Temperature = 100
	cfg.Simulation.Concentration = 50
	g, err := NewGameWithOptions(Options{
		Seed:        3,
		Headless:    true,
		OutputDir:   dir,
		SnapshotDir: filepath.Join(dir, "snapshots"),
		Config:      cfg,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 600; i++ {
		if err := g.UpdateHeadless(); err != nil {
			t.Fatal(err)
		}
	}
	g.Unload()

	for _, name := range []string{"telemetry.csv", "perf.csv", "bookmarks.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 61 {
		t.Errorf("telemetry.csv has %d lines, want header + 60 windows", lines)
	}
}

func TestRunPacedStopsAtMaxTicks(t *testing.T) {
	cfg := testConfig(t)
	cfg.Screen.TargetFPS = 500
	g := newHeadless(t, Options{Config: cfg})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.RunPaced(ctx, 15); err != nil {
		t.Fatal(err)
	}
	if ctx.Err() != nil {
		t.Fatal("timed out before reaching max ticks")
	}
	if g.Tick() < 15 {
		t.Errorf("Tick = %d, want >= 15", g.Tick())
	}
}

func TestStreamServesTicks(t *testing.T) {
	g := newHeadless(t, Options{StreamAddr: "127.0.0.1:0"})
	if g.StreamAddr() == "" {
		t.Fatal("stream not started")
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+g.StreamAddr()+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for g.hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := conn.WriteJSON(stream.Command{Op: stream.OpSetTemperature, Value: 90}); err != nil {
		t.Fatal(err)
	}
	deadline = time.Now().Add(2 * time.Second)
	for g.Sim().Params().Temperature != 90 {
		if time.Now().After(deadline) {
			t.Fatal("temperature command never applied")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := g.UpdateHeadless(); err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var msg stream.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Tick != 1 || msg.Temperature != 90 || len(msg.Particles) != 20 {
		t.Errorf("message tick=%d temp=%d particles=%d", msg.Tick, msg.Temperature, len(msg.Particles))
	}
}
