package alienkitty

import (
	"math"
	"testing"
)

func TestCameraIdentityMapping(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	sx, sy := cam.WorldToScreen(0, 0)
	if !approxEqual(sx, 0, epsilon) || !approxEqual(sy, 0, epsilon) {
		t.Errorf("WorldToScreen(0,0) = (%f,%f), want (0,0)", sx, sy)
	}
	sx, sy = cam.WorldToScreen(800, 600)
	if !approxEqual(sx, 800, epsilon) || !approxEqual(sy, 600, epsilon) {
		t.Errorf("WorldToScreen(800,600) = (%f,%f), want (800,600)", sx, sy)
	}
}

func TestCameraProjectionScale(t *testing.T) {
	// Half the world span on the same viewport doubles the scale.
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.SetProjection(-200, 200, -150, 150)
	sx1, _ := cam.WorldToScreen(401, 300)
	sx0, _ := cam.WorldToScreen(400, 300)
	if !approxEqual(sx1-sx0, 2, epsilon) {
		t.Errorf("1 world unit = %f pixels, want 2", sx1-sx0)
	}
	sx, sy := cam.WorldToScreen(400, 300)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("camera center maps to (%f,%f), want viewport center", sx, sy)
	}
}

func TestCameraFlippedBoundsMirrorY(t *testing.T) {
	cam := NewCamera(Rect{Width: 100, Height: 100})
	cam.SetProjection(-50, 50, 50, -50) // GL-style, Y up
	_, syTop := cam.WorldToScreen(50, 0)
	_, syBottom := cam.WorldToScreen(50, 100)
	if syTop <= syBottom {
		t.Errorf("Y-up bounds should map world y=0 below y=100, got %v and %v", syTop, syBottom)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := NewCamera(Rect{X: 10, Y: 20, Width: 640, Height: 480})
	cam.SetProjection(-160, 160, -120, 120)
	cam.X, cam.Y = 37, -12
	cam.MarkDirty()

	points := [][2]float64{{0, 0}, {100, -50}, {-333, 77}, {1e4, 1e4}}
	for _, p := range points {
		sx, sy := cam.WorldToScreen(p[0], p[1])
		wx, wy := cam.ScreenToWorld(sx, sy)
		if !approxEqual(wx, p[0], 1e-6) || !approxEqual(wy, p[1], 1e-6) {
			t.Errorf("roundtrip %v -> (%v,%v)", p, wx, wy)
		}
	}
}

func TestCameraVisibleBounds(t *testing.T) {
	cam := NewCamera(Rect{Width: 200, Height: 100})
	b := cam.VisibleBounds()
	if b != (Rect{0, 0, 200, 100}) {
		t.Errorf("VisibleBounds = %v, want {0 0 200 100}", b)
	}
	cam.SetProjection(-100, 100, 50, -50)
	if got := cam.VisibleBounds(); got != b {
		t.Errorf("flipped VisibleBounds = %v, want %v", got, b)
	}
}

func TestCameraDegenerateProjection(t *testing.T) {
	cam := NewCamera(Rect{Width: 100, Height: 100})
	cam.SetProjection(0, 0, 0, 0)
	sx, sy := cam.WorldToScreen(1, 1)
	if math.IsNaN(sx) || math.IsNaN(sy) {
		t.Fatal("degenerate projection produced NaN")
	}
}
