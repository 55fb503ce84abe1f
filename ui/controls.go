package ui

import (
	"errors"
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Controller is what panel actions are applied to.
type Controller interface {
	Start()
	Stop()
	Reset()
	SetTemperature(v int) error
	SetConcentration(v int) error
}

// Range is an inclusive integer slider range.
type Range struct {
	Min, Max int
}

// snap rounds a slider value to the nearest integer inside the range.
func (r Range) snap(v float32) int {
	n := int(math.Round(float64(v)))
	if n < r.Min {
		return r.Min
	}
	if n > r.Max {
		return r.Max
	}
	return n
}

// ControlState is the parameter state the panel displays.
type ControlState struct {
	Temperature   int
	Concentration int
	Running       bool
}

// Actions are the user's requests from one frame of the panel.
type Actions struct {
	SetTemperature   bool
	Temperature      int
	SetConcentration bool
	Concentration    int
	ToggleRunning    bool
	Reset            bool
}

// Any reports whether any action was requested.
func (a Actions) Any() bool {
	return a.SetTemperature || a.SetConcentration || a.ToggleRunning || a.Reset
}

// Apply forwards the actions to ctrl. running is the state before the frame.
// Temperature is applied before concentration so a re-initialized
// population gets the new speed.
func (a Actions) Apply(ctrl Controller, running bool) error {
	var errs []error
	if a.SetTemperature {
		if err := ctrl.SetTemperature(a.Temperature); err != nil {
			errs = append(errs, fmt.Errorf("temperature: %w", err))
		}
	}
	if a.SetConcentration {
		if err := ctrl.SetConcentration(a.Concentration); err != nil {
			errs = append(errs, fmt.Errorf("concentration: %w", err))
		}
	}
	if a.Reset {
		ctrl.Reset()
	}
	if a.ToggleRunning {
		if running {
			ctrl.Stop()
		} else {
			ctrl.Start()
		}
	}
	return errors.Join(errs...)
}

// ControlPanel renders the parameter sliders and run buttons.
type ControlPanel struct {
	renderer      *Renderer
	x, y          int32
	width         int32
	temperature   Range
	concentration Range
}

// NewControlPanel creates a panel at x, y.
func NewControlPanel(x, y, width int32, temperature, concentration Range) *ControlPanel {
	return &ControlPanel{
		renderer:      NewRenderer(),
		x:             x,
		y:             y,
		width:         width,
		temperature:   temperature,
		concentration: concentration,
	}
}

// RunLabel is the text of the start/pause button.
func RunLabel(running bool) string {
	if running {
		return "Pause"
	}
	return "Start"
}

// Height returns the panel height in pixels.
func (c *ControlPanel) Height() int32 {
	t := c.renderer.Theme
	return t.Padding*3 + t.LineHeight*4 + 4 + int32(t.SliderHeight)*2 + 30 + int32(t.ButtonHeight)
}

// Draw renders the panel and returns the actions taken this frame.
// Must be called between rl.BeginDrawing and rl.EndDrawing.
func (c *ControlPanel) Draw(state ControlState) Actions {
	r := c.renderer
	t := r.Theme
	r.DrawPanel(c.x, c.y, c.width, c.Height())

	var a Actions
	x := c.x + t.Padding
	y := r.DrawSectionHeader(x, c.y+t.Padding, "Reaction Kinetics")
	innerW := float32(c.width - t.Padding*2)
	sliderW := innerW - 50

	y = r.DrawLabelValue(x, y, "Temperature", fmt.Sprintf("%d", state.Temperature))
	temp := c.temperature.snap(gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: sliderW, Height: t.SliderHeight},
		fmt.Sprintf("%d", c.temperature.Min), fmt.Sprintf("%d", c.temperature.Max),
		float32(state.Temperature), float32(c.temperature.Min), float32(c.temperature.Max),
	))
	if temp != state.Temperature {
		a.SetTemperature, a.Temperature = true, temp
	}
	y += int32(t.SliderHeight) + 15

	y = r.DrawLabelValue(x, y, "Concentration", fmt.Sprintf("%d", state.Concentration))
	conc := c.concentration.snap(gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: sliderW, Height: t.SliderHeight},
		fmt.Sprintf("%d", c.concentration.Min), fmt.Sprintf("%d", c.concentration.Max),
		float32(state.Concentration), float32(c.concentration.Min), float32(c.concentration.Max),
	))
	if conc != state.Concentration {
		a.SetConcentration, a.Concentration = true, conc
	}
	y += int32(t.SliderHeight) + 15

	btnW := (innerW - float32(t.Padding)) / 2
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: btnW, Height: t.ButtonHeight}, RunLabel(state.Running)) {
		a.ToggleRunning = true
	}
	if gui.Button(rl.Rectangle{X: float32(x) + btnW + float32(t.Padding), Y: float32(y), Width: btnW, Height: t.ButtonHeight}, "Reset") {
		a.Reset = true
	}
	y += int32(t.ButtonHeight) + t.Padding

	r.DrawLabelValue(x, y, "State", stateLabel(state.Running))
	return a
}

func stateLabel(running bool) string {
	if running {
		return "running"
	}
	return "paused"
}
