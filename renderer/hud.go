package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kinetics/kinetics"
	"github.com/pthm-cable/kinetics/scene"
)

// HintText is shown while collisions have enough energy to react.
const HintText = "Enough energy for reaction!"

var (
	productsColor = rl.Color{R: 30, G: 41, B: 59, A: 255}
	hintColor     = rl.Color{R: 0xef, G: 0x44, B: 0x44, A: 255}
)

// ProductsText formats the reaction product counter.
func ProductsText(st scene.Status) string {
	return fmt.Sprintf("Products: %d / %d", st.Reacted, st.Concentration)
}

// ShowHint reports whether the reaction hint applies at temperature t.
func ShowHint(t int) bool {
	return kinetics.CanReact(t)
}

// HUD draws text overlays anchored to the particle viewport.
type HUD struct {
	viewport rl.Rectangle
	fontSize int32
}

// NewHUD creates a HUD for the given viewport rectangle.
func NewHUD(viewport rl.Rectangle) *HUD {
	return &HUD{viewport: viewport, fontSize: 16}
}

// DrawProducts draws the product counter in the viewport's top-left corner.
func (h *HUD) DrawProducts(st scene.Status) {
	rl.DrawText(ProductsText(st), int32(h.viewport.X)+8, int32(h.viewport.Y)+8, h.fontSize, productsColor)
}

// DrawHint draws the reaction hint below the viewport when it applies.
func (h *HUD) DrawHint(st scene.Status) {
	if !ShowHint(st.Temperature) {
		return
	}
	y := int32(h.viewport.Y+h.viewport.Height) + 8
	rl.DrawText(HintText, int32(h.viewport.X), y, h.fontSize, hintColor)
}

// DrawTick draws the tick counter below the viewport, right aligned.
func (h *HUD) DrawTick(st scene.Status) {
	text := fmt.Sprintf("Tick %d", st.Tick)
	w := rl.MeasureText(text, 12)
	x := int32(h.viewport.X+h.viewport.Width) - w
	rl.DrawText(text, x, int32(h.viewport.Y+h.viewport.Height)+10, 12, rl.Gray)
}
