package inspector

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kinetics/components"
	"github.com/pthm-cable/kinetics/kinetics"
	"github.com/pthm-cable/kinetics/scene"
)

func sceneWith(gen uint64, pop kinetics.Population) *scene.Scene {
	s := scene.New()
	s.Sync(kinetics.TickResult{Generation: gen, Population: pop, Concentration: len(pop)})
	return s
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag    string
		widget Widget
		opt    string
	}{
		{"", WidgetAuto, ""},
		{"bar,max:10", WidgetBar, "10"},
		{"label,fmt:%.1f", WidgetLabel, ""},
		{"skip", WidgetSkip, ""},
		{"mystery", WidgetAuto, ""},
	}
	for _, tt := range tests {
		w, opts := ParseTag(tt.tag)
		if w != tt.widget {
			t.Errorf("ParseTag(%q) widget = %v, want %v", tt.tag, w, tt.widget)
		}
		if opts["max"] != tt.opt {
			t.Errorf("ParseTag(%q) max = %q, want %q", tt.tag, opts["max"], tt.opt)
		}
	}
}

func TestExtractFields(t *testing.T) {
	fields := ExtractFields(&components.Velocity{X: 1.5, Y: -2}, "V")
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields[0].Name != "VX" || fields[0].Widget != WidgetLabel || fields[0].Options["fmt"] != "%+.2f" {
		t.Errorf("field 0 = %+v", fields[0])
	}
	if got := FormatValue(fields[1].Value, fields[1].Options["fmt"]); got != "-2.00" {
		t.Errorf("formatted VY = %q", got)
	}

	re := ExtractFields(components.Reaction{Reacted: true}, "")
	if len(re) != 1 || re[0].Widget != WidgetBool {
		t.Errorf("reaction fields = %+v", re)
	}
	if ExtractFields(42, "") != nil {
		t.Error("non-struct should yield no fields")
	}
}

func TestGetMax(t *testing.T) {
	if GetMax(map[string]string{"max": "10"}) != 10 {
		t.Error("max option ignored")
	}
	if GetMax(map[string]string{"max": "lots"}) != 1 || GetMax(nil) != 1 {
		t.Error("invalid max should default to 1")
	}
}

func TestSelection(t *testing.T) {
	pop := kinetics.Population{
		{Pos: r2.Vec{X: 50, Y: 50}, Vel: r2.Vec{X: 3, Y: 4}, Radius: 6},
		{Pos: r2.Vec{X: 200, Y: 100}, Radius: 6, Reacted: true},
	}
	s := sceneWith(1, pop)
	ins := NewInspector(0, 0)

	if !ins.Select(s, 52, 49) {
		t.Fatal("expected a hit on particle 0")
	}
	i, ok := ins.Selected(s)
	if !ok || i != 0 {
		t.Fatalf("Selected = %d, %v", i, ok)
	}

	var speed float32
	for _, f := range Fields(s, i) {
		if f.Name == "Speed" {
			speed, _ = GetFloatValue(f.Value)
		}
	}
	if speed != 5 {
		t.Errorf("speed = %v, want 5", speed)
	}

	if ins.Select(s, 300, 250) {
		t.Error("click on empty space should miss")
	}
	if _, ok := ins.Selected(s); ok {
		t.Error("miss should clear the selection")
	}
}

func TestSelectionDroppedOnNewGeneration(t *testing.T) {
	pop := kinetics.Population{{Pos: r2.Vec{X: 50, Y: 50}, Radius: 6}}
	s := sceneWith(1, pop)
	ins := NewInspector(0, 0)
	ins.Select(s, 50, 50)

	s.Sync(kinetics.TickResult{Generation: 2, Population: pop})
	if _, ok := ins.Selected(s); ok {
		t.Error("selection survived re-initialization")
	}
}
