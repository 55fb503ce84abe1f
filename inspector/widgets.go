package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg   = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill = rl.Color{R: 100, G: 150, B: 220, A: 255}
	ColorText    = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorBoolOn  = rl.Color{R: 0xef, G: 0x44, B: 0x44, A: 255}
	ColorBoolOff = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// DrawField renders one field and returns the height used.
func DrawField(x, y int32, f Field) int32 {
	switch f.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(f.Value); ok {
			return DrawBar(x, y, f.Name, v, f.Options)
		}
	case WidgetBool:
		if v, ok := f.Value.(bool); ok {
			return DrawBool(x, y, f.Name, v)
		}
	}
	return DrawLabel(x, y, f.Name, f.Value, f.Options)
}

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	rl.DrawText(fmt.Sprintf("%s: %s", name, FormatValue(value, options["fmt"])), x, y, 14, ColorText)
	return 18
}

// DrawBar renders a horizontal bar scaled by the max option.
func DrawBar(x, y int32, name string, value float32, options map[string]string) int32 {
	ratio := value / GetMax(options)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	const barWidth, barHeight = int32(100), int32(12)
	rl.DrawText(name, x, y, 14, ColorTextDim)
	barX := x + 70
	rl.DrawRectangle(barX, y+1, barWidth, barHeight, ColorBarBg)
	rl.DrawRectangle(barX, y+1, int32(float32(barWidth)*ratio), barHeight, ColorBarFill)
	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, 14, ColorTextDim)
	return 18
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	c := ColorBoolOff
	if value {
		c = ColorBoolOn
	}
	rl.DrawRectangle(x, y+3, 8, 8, c)
	rl.DrawText(name, x+14, y, 14, ColorText)
	return 18
}
