package game

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pthm-cable/kinetics/kinetics"
	"github.com/pthm-cable/kinetics/stream"
)

// startStream serves the websocket hub on addr and registers it as a
// tick observer.
func (g *Game) startStream(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	sc := g.cfg.Stream
	g.hub = stream.NewHub(g.sim, sc.QueueSize, sc.WriteTimeout, g.log)
	g.sim.AddObserver(g.hub)

	mux := http.NewServeMux()
	mux.Handle(sc.Path, g.hub)
	g.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	g.addr = ln.Addr().String()

	go func() {
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.log.Error("stream server stopped", "error", err)
		}
	}()
	g.log.Info("stream listening", "addr", g.addr, "path", sc.Path)
	return nil
}

func (g *Game) stopStream() {
	if g.server == nil {
		return
	}
	g.hub.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := g.server.Shutdown(ctx); err != nil {
		g.log.Warn("stream shutdown", "error", err)
	}
	g.log.Info("stream stopped", "dropped", g.hub.Dropped())
	g.server = nil
}

// tickLimit cancels a context once the simulation reaches max ticks.
type tickLimit struct {
	max    uint64
	cancel context.CancelFunc
}

func (l tickLimit) ObserveTick(r kinetics.TickResult) {
	if r.Tick >= l.max {
		l.cancel()
	}
}

// RunPaced drives the simulation from a ticker at the configured frame rate
// until ctx is done, maxTicks is reached (0 = unlimited) or an invariant
// fails.
func (g *Game) RunPaced(ctx context.Context, maxTicks uint64) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if maxTicks > 0 {
		g.sim.AddObserver(tickLimit{max: maxTicks, cancel: cancel})
	}
	return g.sim.Run(ctx, kinetics.NewTickerClock(g.cfg.Screen.TargetFPS))
}
