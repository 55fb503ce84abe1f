package game

import (
	"github.com/pthm-cable/kinetics/telemetry"
)

// flushTelemetry handles a completed stats window. It runs inside the
// simulation's observer chain and must not call back into the simulation.
func (g *Game) flushTelemetry(stats telemetry.WindowStats) {
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		g.log.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		g.log.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			g.log.Error("failed to write bookmark", "error", err)
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(bm)
		}
	}
}

func (g *Game) saveSnapshot(bm telemetry.Bookmark) {
	snap := telemetry.NewSnapshot(g.last, g.sim.Bounds(), g.seed)
	snap.Bookmark = &bm
	path, err := telemetry.SaveSnapshot(snap, g.snapshotDir)
	if err != nil {
		g.log.Error("failed to save snapshot", "error", err)
		return
	}
	g.log.Info("snapshot saved", "path", path, "bookmark", string(bm.Type))
}
