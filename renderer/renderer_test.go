package renderer

import (
	"testing"

	"github.com/pthm-cable/kinetics/scene"
)

func TestProductsText(t *testing.T) {
	got := ProductsText(scene.Status{Reacted: 7, Concentration: 20})
	if got != "Products: 7 / 20" {
		t.Errorf("ProductsText = %q", got)
	}
}

func TestShowHint(t *testing.T) {
	tests := []struct {
		temp int
		want bool
	}{
		{10, false},
		{60, false},
		{61, true},
		{100, true},
	}
	for _, tt := range tests {
		if got := ShowHint(tt.temp); got != tt.want {
			t.Errorf("ShowHint(%d) = %v, want %v", tt.temp, got, tt.want)
		}
	}
}

func TestParticleColor(t *testing.T) {
	if ParticleColor(false) != UnreactedColor || ParticleColor(true) != ReactedColor {
		t.Error("particle colours swapped")
	}
	if UnreactedColor.B != 0xf6 || ReactedColor.R != 0xef {
		t.Errorf("colours = %v, %v", UnreactedColor, ReactedColor)
	}
}
