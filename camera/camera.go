// Package camera maps between world and screen space for a bounded world.
package camera

// Camera is a pan/zoom view onto a WorldW x WorldH rectangle. The view never
// leaves the world; on an axis where the view is wider than the world, the
// world is centered instead.
type Camera struct {
	X, Y float32 // view center, world units
	Zoom float32 // screen pixels per world unit

	ViewportW, ViewportH float32
	WorldW, WorldH       float32

	// MinZoom fits the whole world on screen and follows viewport resizes.
	MinZoom, MaxZoom float32
}

// New returns a camera centered on the world at 1:1, or zoomed in when the
// world is too small to fill the viewport at 1:1.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		X: worldW / 2, Y: worldH / 2,
		ViewportW: viewportW, ViewportH: viewportH,
		WorldW: worldW, WorldH: worldH,
		MaxZoom: 4,
	}
	c.MinZoom = min(viewportW/worldW, viewportH/worldH)
	c.Zoom = max(1, c.MinZoom)
	return c
}

// halfView is half the visible extent in world units.
func (c *Camera) halfView() (float32, float32) {
	return c.ViewportW / (2 * c.Zoom), c.ViewportH / (2 * c.Zoom)
}

func (c *Camera) WorldToScreen(wx, wy float32) (float32, float32) {
	return c.ViewportW/2 + (wx-c.X)*c.Zoom, c.ViewportH/2 + (wy-c.Y)*c.Zoom
}

// ScreenToWorld is the inverse of WorldToScreen. The point may lie outside
// the world.
func (c *Camera) ScreenToWorld(sx, sy float32) (float32, float32) {
	return c.X + (sx-c.ViewportW/2)/c.Zoom, c.Y + (sy-c.ViewportH/2)/c.Zoom
}

// IsVisible reports whether a circle could touch the screen. It tests the
// circle's bounding box, so corners give false positives.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	hw, hh := c.halfView()
	return abs(wx-c.X) <= hw+radius && abs(wy-c.Y) <= hh+radius
}

// VisibleWorldBounds is the world rectangle under the viewport.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	hw, hh := c.halfView()
	return c.X - hw, c.Y - hh, c.X + hw, c.Y + hh
}

// Resize adopts a new viewport size, refitting MinZoom.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW, c.ViewportH = viewportW, viewportH
	c.MinZoom = min(viewportW/c.WorldW, viewportH/c.WorldH)
	c.SetZoom(c.Zoom)
}

// Pan shifts the view by (dx, dy) world units.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx
	c.Y += dy
	c.bound()
}

func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.bound()
}

func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt scales by factor around the screen point (sx, sy): the world point
// under it stays put unless bounds push the view.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = clamp(c.Zoom*factor, c.MinZoom, c.MaxZoom)
	c.X = wx - (sx-c.ViewportW/2)/c.Zoom
	c.Y = wy - (sy-c.ViewportH/2)/c.Zoom
	c.bound()
}

// Reset recenters at 1:1, within zoom limits.
func (c *Camera) Reset() {
	c.X, c.Y = c.WorldW/2, c.WorldH/2
	c.SetZoom(1)
}

func (c *Camera) bound() {
	hw, hh := c.halfView()
	c.X = boundAxis(c.X, hw, c.WorldW)
	c.Y = boundAxis(c.Y, hh, c.WorldH)
}

func boundAxis(center, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(center, half, size-half)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float32) float32 {
	return max(lo, min(x, hi))
}
