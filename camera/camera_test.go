package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	tests := []struct {
		name             string
		vw, vh, ww, wh   float32
		wantZoom, wantMin float32
	}{
		{"world larger than view", 1280, 720, 2560, 1440, 1, 0.5},
		{"world smaller than view", 1280, 800, 640, 640, 1.25, 1.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.vw, tt.vh, tt.ww, tt.wh)
			if c.X != tt.ww/2 || c.Y != tt.wh/2 {
				t.Errorf("center = (%v, %v), want (%v, %v)", c.X, c.Y, tt.ww/2, tt.wh/2)
			}
			if c.Zoom != tt.wantZoom {
				t.Errorf("Zoom = %v, want %v", c.Zoom, tt.wantZoom)
			}
			if c.MinZoom != tt.wantMin {
				t.Errorf("MinZoom = %v, want %v", c.MinZoom, tt.wantMin)
			}
		})
	}
}

func TestScreenWorldInverse(t *testing.T) {
	c := New(1280, 720, 2560, 1440)
	c.SetZoom(1.7)
	c.Pan(-300, 120)

	if sx, sy := c.WorldToScreen(c.X, c.Y); !near(sx, 640) || !near(sy, 360) {
		t.Errorf("view center on screen = (%v, %v), want (640, 360)", sx, sy)
	}
	for _, p := range [][2]float32{{640, 360}, {100, 100}, {1200, 600}} {
		wx, wy := c.ScreenToWorld(p[0], p[1])
		if sx, sy := c.WorldToScreen(wx, wy); !near(sx, p[0]) || !near(sy, p[1]) {
			t.Errorf("screen %v -> world (%v, %v) -> screen (%v, %v)", p, wx, wy, sx, sy)
		}
	}
}

func TestPanStopsAtWorldEdge(t *testing.T) {
	c := New(1280, 720, 2560, 1440)
	c.Pan(-5000, 5000)

	if c.X != 640 || c.Y != 1080 {
		t.Errorf("center = (%v, %v), want (640, 1080)", c.X, c.Y)
	}
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	if minX != 0 || minY != 720 || maxX != 1280 || maxY != 1440 {
		t.Errorf("bounds = (%v, %v)-(%v, %v), want (0, 720)-(1280, 1440)", minX, minY, maxX, maxY)
	}
}

func TestZoomLimits(t *testing.T) {
	c := New(800, 600, 1600, 800)

	tests := []struct {
		set, want float32
	}{
		{0.1, 0.5},
		{2, 2},
		{10, 4},
	}
	for _, tt := range tests {
		c.SetZoom(tt.set)
		if c.Zoom != tt.want {
			t.Errorf("SetZoom(%v): Zoom = %v, want %v", tt.set, c.Zoom, tt.want)
		}
	}

	// At minimum zoom the view is taller than the world, so Y stays centered.
	c.SetZoom(0)
	c.Pan(0, 300)
	if c.Y != 400 {
		t.Errorf("Y = %v, want 400", c.Y)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	c := New(1280, 720, 2560, 1440)
	wx, wy := c.ScreenToWorld(900, 400)
	c.ZoomAt(900, 400, 2)

	if c.Zoom != 2 {
		t.Errorf("Zoom = %v, want 2", c.Zoom)
	}
	if sx, sy := c.WorldToScreen(wx, wy); !near(sx, 900) || !near(sy, 400) {
		t.Errorf("cursor point drifted to (%v, %v)", sx, sy)
	}
}

func TestResizeRefitsMinZoom(t *testing.T) {
	c := New(1280, 720, 2560, 1440)
	c.Resize(640, 360)
	if c.MinZoom != 0.25 {
		t.Errorf("MinZoom = %v, want 0.25", c.MinZoom)
	}
	c.Reset()
	if c.Zoom != 1 || c.X != 1280 || c.Y != 720 {
		t.Errorf("after Reset zoom %v center (%v, %v)", c.Zoom, c.X, c.Y)
	}
}

func TestIsVisible(t *testing.T) {
	c := New(1280, 720, 2560, 1440)
	// View covers (640, 360)-(1920, 1080).
	tests := []struct {
		x, y, r float32
		want    bool
	}{
		{1280, 720, 10, true},
		{2400, 1300, 10, false},
		{600, 720, 100, true},
		{600, 720, 10, false},
	}
	for _, tt := range tests {
		if got := c.IsVisible(tt.x, tt.y, tt.r); got != tt.want {
			t.Errorf("IsVisible(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.r, got, tt.want)
		}
	}
}
