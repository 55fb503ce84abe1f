package game

import (
	"github.com/pthm-cable/kinetics/telemetry"
)

// Update advances the simulation by one display frame and syncs the scene.
// Draw must follow in the same frame; it ends the perf frame.
func (g *Game) Update() {
	g.perfCollector.StartFrame()

	g.perfCollector.StartPhase(telemetry.PhaseSimulation)
	res, _, err := g.sim.Frame()
	if err != nil {
		// the simulation stopped itself; keep drawing the last good frame
		res = g.sim.Last()
	}

	g.perfCollector.StartPhase(telemetry.PhaseScene)
	g.scene.Sync(res)
	g.overlays.PollKeys()
	g.handleInput()
}

// UpdateHeadless advances the simulation by one frame without rendering.
func (g *Game) UpdateHeadless() error {
	g.perfCollector.StartFrame()
	g.perfCollector.StartPhase(telemetry.PhaseSimulation)
	_, _, err := g.sim.Frame()
	g.perfCollector.EndFrame()
	return err
}
