package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kinetics/camera"
	"github.com/pthm-cable/kinetics/inspector"
	"github.com/pthm-cable/kinetics/renderer"
	"github.com/pthm-cable/kinetics/scene"
	"github.com/pthm-cable/kinetics/telemetry"
	"github.com/pthm-cable/kinetics/ui"
)

const (
	margin     = 20
	panelWidth = 260
)

func (g *Game) initRendering() {
	d := g.cfg.Derived
	g.scene = scene.New()
	g.scene.Sync(g.sim.Last())
	g.camera = camera.New(d.ViewportW32, d.ViewportH32, d.ViewportW32, d.ViewportH32)
	g.particles = renderer.NewParticleRenderer(margin, margin, g.camera)
	g.hud = renderer.NewHUD(g.particles.Bounds())
	g.inspector = inspector.NewInspector(margin, int32(margin+d.ViewportH32)+40)
	g.overlays = ui.NewOverlayRegistry()
	g.uiRender = ui.NewRenderer()

	lim := g.cfg.Limits
	g.panel = ui.NewControlPanel(
		int32(margin*2+d.ViewportW32), margin, panelWidth,
		ui.Range{Min: lim.TemperatureMin, Max: lim.TemperatureMax},
		ui.Range{Min: lim.ConcentrationMin, Max: lim.ConcentrationMax},
	)
}

// Draw renders the frame and applies control panel actions.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 226, G: 232, B: 240, A: 255})

	st := g.scene.Status()
	g.particles.Draw(g.scene, g.overlays.IsEnabled(ui.OverlayBounds))
	if g.overlays.IsEnabled(ui.OverlayProducts) {
		g.hud.DrawProducts(st)
	}
	if g.overlays.IsEnabled(ui.OverlayHint) {
		g.hud.DrawHint(st)
	}
	g.hud.DrawTick(st)
	g.inspector.DrawHighlight(g.scene, g.viewportToScreen, g.camera.Zoom)
	g.inspector.Draw(g.scene)

	params := g.sim.Params()
	actions := g.panel.Draw(ui.ControlState{
		Temperature:   params.Temperature,
		Concentration: params.Concentration,
		Running:       params.Running,
	})

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.drawPerf()
	}

	rl.EndDrawing()
	g.perfCollector.EndFrame()

	if actions.Any() {
		if err := actions.Apply(g.sim, params.Running); err != nil {
			g.log.Warn("control rejected", "error", err)
		}
	}
}

// viewportToScreen maps world coordinates to absolute screen coordinates.
func (g *Game) viewportToScreen(wx, wy float32) (float32, float32) {
	sx, sy := g.camera.WorldToScreen(wx, wy)
	b := g.particles.Bounds()
	return b.X + sx, b.Y + sy
}

func (g *Game) drawPerf() {
	ps := g.perfCollector.Stats()
	x := int32(margin*2 + g.cfg.Derived.ViewportW32)
	y := int32(margin) + g.panel.Height() + 10
	r := g.uiRender
	r.DrawPanel(x, y, panelWidth, 80)
	y = r.DrawSectionHeader(x+8, y+6, "Perf")
	y = r.DrawLabelValue(x+8, y, "FPS", fmt.Sprintf("%.0f", ps.FPS))
	y = r.DrawLabelValue(x+8, y, "Frame", fmt.Sprintf("%dus", ps.AvgFrameWork.Microseconds()))
	r.DrawLabelValue(x+8, y, "Sim", fmt.Sprintf("%.0f%%", ps.PhasePct[telemetry.PhaseSimulation]))
}
