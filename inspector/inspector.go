// Package inspector shows the components of a selected particle.
package inspector

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kinetics/scene"
)

// Panel dimensions
const (
	PanelWidth   = 260
	PanelPadding = 10
	HeaderHeight = 24
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorHighlight   = rl.Color{R: 250, G: 204, B: 21, A: 255}
)

// Derived holds values computed from a particle's components.
type Derived struct {
	Speed float32 `inspect:"bar,max:10"`
}

// Inspector tracks the selected particle. A selection is dropped when the
// population is re-initialized.
type Inspector struct {
	selected    int
	hasSelected bool
	generation  uint64
	panelX      int32
	panelY      int32
}

// NewInspector creates an inspector drawing its panel at x, y.
func NewInspector(x, y int32) *Inspector {
	return &Inspector{panelX: x, panelY: y}
}

// Select picks the particle under the world point (wx, wy), or clears the
// selection on a miss.
func (ins *Inspector) Select(s *scene.Scene, wx, wy float32) bool {
	i, ok := s.Pick(wx, wy)
	ins.selected, ins.hasSelected = i, ok
	ins.generation = s.Generation()
	return ok
}

// Deselect clears the selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the selected particle index for the scene's current
// generation.
func (ins *Inspector) Selected(s *scene.Scene) (int, bool) {
	if !ins.hasSelected || ins.generation != s.Generation() || ins.selected >= s.Len() {
		ins.hasSelected = false
		return 0, false
	}
	return ins.selected, true
}

// Fields lists the displayed fields for particle i.
func Fields(s *scene.Scene, i int) []Field {
	pos, vel, body, re := s.Particle(i)
	speed := float32(math.Hypot(float64(vel.X), float64(vel.Y)))

	var fields []Field
	fields = append(fields, ExtractFields(pos, "")...)
	fields = append(fields, ExtractFields(vel, "V")...)
	fields = append(fields, ExtractFields(&Derived{Speed: speed}, "")...)
	fields = append(fields, ExtractFields(body, "")...)
	fields = append(fields, ExtractFields(re, "")...)
	return fields
}

// Draw renders the panel for the selected particle, if any.
func (ins *Inspector) Draw(s *scene.Scene) {
	i, ok := ins.Selected(s)
	if !ok {
		return
	}
	fields := Fields(s, i)
	height := int32(HeaderHeight + PanelPadding*2 + 18*len(fields))

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLines(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBorder)
	rl.DrawText("Particle", ins.panelX+PanelPadding, ins.panelY+6, 16, ColorHeaderText)

	y := ins.panelY + HeaderHeight + PanelPadding
	for _, f := range fields {
		y += DrawField(ins.panelX+PanelPadding, y, f)
	}
}

// DrawHighlight outlines the selected particle. toScreen maps world to
// screen coordinates; scale is the camera zoom.
func (ins *Inspector) DrawHighlight(s *scene.Scene, toScreen func(x, y float32) (float32, float32), scale float32) {
	i, ok := ins.Selected(s)
	if !ok {
		return
	}
	pos, _, body, _ := s.Particle(i)
	sx, sy := toScreen(pos.X, pos.Y)
	rl.DrawCircleLines(int32(sx), int32(sy), (body.Radius+3)*scale, ColorHighlight)
}
