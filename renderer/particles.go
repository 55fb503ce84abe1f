// Package renderer draws the particle viewport and its status text.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kinetics/camera"
	"github.com/pthm-cable/kinetics/components"
	"github.com/pthm-cable/kinetics/scene"
)

// Particle colours.
var (
	UnreactedColor  = rl.Color{R: 0x3b, G: 0x82, B: 0xf6, A: 255}
	ReactedColor    = rl.Color{R: 0xef, G: 0x44, B: 0x44, A: 255}
	BackgroundColor = rl.Color{R: 248, G: 250, B: 252, A: 255}
	BorderColor     = rl.Color{R: 148, G: 163, B: 184, A: 255}
)

// ParticleColor returns the fill for a particle.
func ParticleColor(reacted bool) rl.Color {
	if reacted {
		return ReactedColor
	}
	return UnreactedColor
}

// ParticleRenderer draws the scene inside a viewport rectangle through a
// camera.
type ParticleRenderer struct {
	x, y          float32
	width, height float32
	cam           *camera.Camera
}

// NewParticleRenderer creates a renderer for a viewport placed at x, y.
func NewParticleRenderer(x, y float32, cam *camera.Camera) *ParticleRenderer {
	return &ParticleRenderer{x: x, y: y, width: cam.ViewportW, height: cam.ViewportH, cam: cam}
}

// Contains reports whether a screen point lies inside the viewport.
func (r *ParticleRenderer) Contains(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, r.Bounds())
}

// ToViewport converts a screen point to viewport-relative coordinates.
func (r *ParticleRenderer) ToViewport(p rl.Vector2) (float32, float32) {
	return p.X - r.x, p.Y - r.y
}

// Bounds returns the viewport rectangle in screen coordinates.
func (r *ParticleRenderer) Bounds() rl.Rectangle {
	return rl.Rectangle{X: r.x, Y: r.y, Width: r.width, Height: r.height}
}

// Draw renders the viewport background and every particle.
func (r *ParticleRenderer) Draw(s *scene.Scene, border bool) {
	rl.DrawRectangleRec(r.Bounds(), BackgroundColor)

	// particles are clipped to the viewport
	rl.BeginScissorMode(int32(r.x), int32(r.y), int32(r.width), int32(r.height))
	s.Each(func(pos *components.Position, body *components.Body, re *components.Reaction) {
		if !r.cam.IsVisible(pos.X, pos.Y, body.Radius) {
			return
		}
		sx, sy := r.cam.WorldToScreen(pos.X, pos.Y)
		rl.DrawCircleV(rl.Vector2{X: r.x + sx, Y: r.y + sy}, body.Radius*r.cam.Zoom, ParticleColor(re.Reacted))
	})
	rl.EndScissorMode()

	if border {
		rl.DrawRectangleLinesEx(r.Bounds(), 1, BorderColor)
	}
}
