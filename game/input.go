package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput zooms with the mouse wheel over the viewport, pans with a
// right-button drag, selects particles with a left click and resets the
// camera on C. X clears the selection.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyC) {
		g.camera.Reset()
	}
	if rl.IsKeyPressed(rl.KeyX) {
		g.inspector.Deselect()
	}

	mouse := rl.GetMousePosition()
	if !g.particles.Contains(mouse) {
		return
	}
	sx, sy := g.particles.ToViewport(mouse)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		wx, wy := g.camera.ScreenToWorld(sx, sy)
		g.inspector.Select(g.scene, wx, wy)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := float32(1.1)
		if wheel < 0 {
			factor = 1 / factor
		}
		g.camera.ZoomAt(sx, sy, factor)
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		g.camera.Pan(-delta.X, -delta.Y)
	}
}
