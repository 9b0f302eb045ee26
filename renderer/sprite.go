// Package renderer provides rendering utilities.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwell/camera"
	"github.com/pthm-cable/gravwell/components"
)

// Sprite is the drawable body of one entity. It implements
// components.VisualHandle; the engine moves it and the Scene draws it.
type Sprite struct {
	Kind   components.Kind
	X, Y   float64
	Angle  float64
	Radius float32 // world units

	scene *Scene
	index int // position in scene.sprites, -1 when detached
}

// SetPosition places the sprite in world coordinates.
func (s *Sprite) SetPosition(x, y, angle float64) {
	s.X = x
	s.Y = y
	s.Angle = angle
}

// Attach adds the sprite to its scene. Attaching twice is a no-op.
func (s *Sprite) Attach() {
	if s.scene == nil || s.index >= 0 {
		return
	}
	s.index = len(s.scene.sprites)
	s.scene.sprites = append(s.scene.sprites, s)
}

// Detach removes the sprite from its scene. Detaching twice is a no-op.
func (s *Sprite) Detach() {
	if s.scene == nil || s.index < 0 {
		return
	}
	sprites := s.scene.sprites
	last := len(sprites) - 1
	sprites[s.index] = sprites[last]
	sprites[s.index].index = s.index
	sprites[last] = nil
	s.scene.sprites = sprites[:last]
	s.index = -1
}

// Attached reports whether the sprite is currently drawn.
func (s *Sprite) Attached() bool {
	return s.index >= 0
}

// Scene holds the attached sprites.
type Scene struct {
	sprites  []*Sprite
	tileSize float32
}

// NewScene creates an empty scene for a grid with the given tile size.
func NewScene(tileSize float64) *Scene {
	return &Scene{tileSize: float32(tileSize)}
}

// NewSprite creates a detached sprite sized to a footprint of radiusTiles.
func (sc *Scene) NewSprite(kind components.Kind, radiusTiles int) *Sprite {
	return &Sprite{
		Kind:   kind,
		Radius: (float32(radiusTiles) + 0.5) * sc.tileSize,
		scene:  sc,
		index:  -1,
	}
}

// Len returns the number of attached sprites.
func (sc *Scene) Len() int {
	return len(sc.sprites)
}

// Clear detaches every sprite.
func (sc *Scene) Clear() {
	for _, s := range sc.sprites {
		s.index = -1
	}
	sc.sprites = sc.sprites[:0]
}

// Draw renders all visible sprites.
func (sc *Scene) Draw(cam *camera.Camera, tick int32) {
	for _, s := range sc.sprites {
		wx, wy := float32(s.X), float32(s.Y)
		if !cam.IsVisible(wx, wy, s.Radius*2) {
			continue
		}
		sx, sy := cam.WorldToScreen(wx, wy)
		r := s.Radius * cam.Zoom
		drawBody(s.Kind, sx, sy, r, float32(s.Angle), tick)
	}
}

// KindColor returns the base color for a kind.
func KindColor(kind components.Kind) rl.Color {
	switch kind {
	case components.KindPlanet:
		return rl.Color{R: 70, G: 140, B: 210, A: 255}
	case components.KindAsteroid:
		return rl.Color{R: 150, G: 130, B: 110, A: 255}
	case components.KindBlackHole:
		return rl.Color{R: 170, G: 90, B: 230, A: 255}
	case components.KindTurret:
		return rl.Color{R: 200, G: 200, B: 90, A: 255}
	case components.KindProjectile:
		return rl.Color{R: 240, G: 110, B: 80, A: 255}
	}
	return rl.Gray
}

// drawBody draws one entity at screen position (x, y) with screen radius r.
func drawBody(kind components.Kind, x, y, r, angle float32, tick int32) {
	color := KindColor(kind)
	center := rl.Vector2{X: x, Y: y}

	switch kind {
	case components.KindPlanet:
		rl.DrawCircleV(center, r*0.8, color)
		rl.DrawCircleV(rl.Vector2{X: x - r*0.2, Y: y - r*0.2}, r*0.35, rl.Fade(rl.White, 0.15))
		rl.DrawRing(center, r*0.85, r*0.92, angle*rl.Rad2deg, angle*rl.Rad2deg+300, 24, rl.Fade(color, 0.5))

	case components.KindAsteroid:
		rl.DrawPoly(center, 7, r*0.75, angle*rl.Rad2deg, color)
		rl.DrawPolyLines(center, 7, r*0.75, angle*rl.Rad2deg, rl.Fade(rl.Black, 0.4))

	case components.KindBlackHole:
		pulse := float32(math.Sin(float64(tick)*0.08)*0.5 + 0.5)
		rl.BeginBlendMode(rl.BlendAdditive)
		rl.DrawCircleV(center, r*(1.1+0.15*pulse), rl.Fade(color, 0.15))
		rl.DrawRing(center, r*0.55, r*0.8, angle*rl.Rad2deg, angle*rl.Rad2deg+360, 32, rl.Fade(color, 0.6))
		rl.EndBlendMode()
		rl.DrawCircleV(center, r*0.5, rl.Black)

	case components.KindTurret:
		rl.DrawRectanglePro(
			rl.Rectangle{X: x, Y: y, Width: r * 1.2, Height: r * 1.2},
			rl.Vector2{X: r * 0.6, Y: r * 0.6},
			angle*rl.Rad2deg,
			color,
		)
		dx := float32(math.Cos(float64(angle))) * r
		dy := float32(math.Sin(float64(angle))) * r
		rl.DrawLineEx(center, rl.Vector2{X: x + dx, Y: y + dy}, r*0.3, rl.DarkGray)

	case components.KindProjectile:
		drawOrientedTriangle(x, y, angle, r*0.7, color)

	default:
		rl.DrawCircleV(center, r, color)
	}
}

// drawOrientedTriangle draws a triangle pointing along heading.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	front := rl.Vector2{
		X: x + float32(math.Cos(float64(heading)))*radius*1.5,
		Y: y + float32(math.Sin(float64(heading)))*radius*1.5,
	}
	backAngle := float64(heading) + math.Pi*0.8
	backLeft := rl.Vector2{
		X: x + float32(math.Cos(backAngle))*radius,
		Y: y + float32(math.Sin(backAngle))*radius,
	}
	backAngle = float64(heading) - math.Pi*0.8
	backRight := rl.Vector2{
		X: x + float32(math.Cos(backAngle))*radius,
		Y: y + float32(math.Sin(backAngle))*radius,
	}

	// DrawTriangle requires counter-clockwise winding
	rl.DrawTriangle(front, backRight, backLeft, color)
	rl.DrawTriangleLines(front, backLeft, backRight, rl.White)
}
