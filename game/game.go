// Package game wires the simulation to its renderer, control panel,
// telemetry and websocket stream.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"

	"github.com/pthm-cable/kinetics/camera"
	"github.com/pthm-cable/kinetics/config"
	"github.com/pthm-cable/kinetics/inspector"
	"github.com/pthm-cable/kinetics/kinetics"
	"github.com/pthm-cable/kinetics/renderer"
	"github.com/pthm-cable/kinetics/scene"
	"github.com/pthm-cable/kinetics/stream"
	"github.com/pthm-cable/kinetics/telemetry"
	"github.com/pthm-cable/kinetics/ui"
)

// Options configures a Game.
type Options struct {
	Seed        int64
	LogStats    bool
	OutputDir   string
	SnapshotDir string
	Headless    bool

	// StreamAddr overrides stream.addr from the config.
	StreamAddr string

	// Config overrides the global config.
	Config *config.Config

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)

	Logger *slog.Logger
}

// Game holds the complete application state.
type Game struct {
	cfg *config.Config
	log *slog.Logger
	sim *kinetics.Simulation

	seed     int64
	headless bool

	// last is the most recent tick result seen by the observer chain
	last kinetics.TickResult

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	bookmarks     *telemetry.BookmarkDetector
	logStats      bool
	snapshotDir   string
	statsCallback func(telemetry.WindowStats)

	// Stream
	hub    *stream.Hub
	server *http.Server
	addr   string

	// Rendering, nil when headless
	scene     *scene.Scene
	camera    *camera.Camera
	inspector *inspector.Inspector
	particles *renderer.ParticleRenderer
	hud       *renderer.HUD
	panel     *ui.ControlPanel
	overlays  *ui.OverlayRegistry
	uiRender  *ui.Renderer
}

// NewGameWithOptions creates a game. With Headless set no raylib resources
// are touched.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := &Game{
		cfg:           cfg,
		log:           logger,
		seed:          opts.Seed,
		headless:      opts.Headless,
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		bookmarks:     telemetry.NewBookmarkDetector(10),
		logStats:      opts.LogStats || cfg.Telemetry.LogStats,
		snapshotDir:   opts.SnapshotDir,
		statsCallback: opts.StatsCallback,
	}
	g.collector = telemetry.NewCollector(cfg.Telemetry.WindowTicks, g.flushTelemetry)

	sim, err := kinetics.New(
		cfg.Viewport.Width, cfg.Viewport.Height,
		cfg.Simulation.Concentration, cfg.Simulation.Temperature,
		kinetics.Options{
			Radius:    cfg.Particle.Radius,
			Rand:      rand.New(rand.NewSource(opts.Seed)),
			Logger:    logger,
			Running:   cfg.Simulation.Running,
			Observers: []kinetics.TickObserver{g},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}
	g.sim = sim
	g.last = sim.Last()

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	addr := cfg.Stream.Addr
	if opts.StreamAddr != "" {
		addr = opts.StreamAddr
	}
	if addr != "" {
		if err := g.startStream(addr); err != nil {
			om.Close()
			return nil, err
		}
	}

	if !opts.Headless {
		g.initRendering()
	}

	logger.Info("game created",
		"seed", opts.Seed,
		"headless", opts.Headless,
		"concentration", cfg.Simulation.Concentration,
		"temperature", cfg.Simulation.Temperature,
		"output_dir", om.Dir(),
		"stream", g.addr,
	)
	return g, nil
}

// ObserveTick records the result and feeds the stats collector.
// It runs inside the simulation's observer chain.
func (g *Game) ObserveTick(r kinetics.TickResult) {
	g.last = r
	g.collector.ObserveTick(r)
}

// Sim returns the simulation handle.
func (g *Game) Sim() *kinetics.Simulation {
	return g.sim
}

// Tick returns the current simulation tick.
func (g *Game) Tick() uint64 {
	return g.sim.Last().Tick
}

// StreamAddr returns the address the stream server listens on, or "".
func (g *Game) StreamAddr() string {
	return g.addr
}

// Unload stops the stream and closes output files.
func (g *Game) Unload() {
	g.stopStream()
	if err := g.outputManager.Close(); err != nil {
		g.log.Error("closing output", "error", err)
	}
}
