package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(400, 300, 400, 300)

	if cam.X != 200 || cam.Y != 150 {
		t.Errorf("expected camera at (200, 150), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 || cam.MinZoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f (min %f)", cam.Zoom, cam.MinZoom)
	}
}

func TestWorldToScreenIdentityAtFit(t *testing.T) {
	cam := New(400, 300, 400, 300)

	sx, sy := cam.WorldToScreen(10, 290)
	if !near(sx, 10) || !near(sy, 290) {
		t.Errorf("expected (10, 290), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(400, 300, 400, 300)
	cam.ZoomAt(100, 100, 2)

	testCases := []struct{ sx, sy float32 }{
		{200, 150},
		{0, 0},
		{399, 299},
	}
	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(400, 300, 400, 300)

	cam.SetZoom(10)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(400, 300, 400, 300)
	before, _ := cam.ScreenToWorld(200, 150)

	cam.ZoomAt(200, 150, 2)
	after, _ := cam.ScreenToWorld(200, 150)
	if !near(before, after) {
		t.Errorf("point under cursor moved: %f -> %f", before, after)
	}
}

func TestPanStaysInsideWorld(t *testing.T) {
	cam := New(400, 300, 400, 300)

	// fully zoomed out: panning has no effect
	cam.Pan(500, 500)
	if cam.X != 200 || cam.Y != 150 {
		t.Errorf("pan at fit zoom moved camera to (%f, %f)", cam.X, cam.Y)
	}

	cam.SetZoom(2)
	cam.Pan(10000, -10000)
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if !near(maxX, 400) || !near(minY, 0) {
		t.Errorf("visible bounds = (%f,%f)-(%f,%f), want clamped to world", minX, minY, maxX, maxY)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(400, 300, 400, 300)
	cam.SetZoom(4)

	if !cam.IsVisible(200, 150, 6) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(10, 10, 6) {
		t.Error("corner should be culled at 4x zoom")
	}
}

func TestReset(t *testing.T) {
	cam := New(400, 300, 400, 300)
	cam.ZoomAt(50, 50, 3)
	cam.Reset()
	if cam.X != 200 || cam.Y != 150 || cam.Zoom != 1 {
		t.Errorf("after reset: (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}
