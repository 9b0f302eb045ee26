package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/camera"
	"github.com/pthm-cable/gravwell/systems"
)

// FieldRenderer draws the grid and its gravity field.
type FieldRenderer struct {
	GridColor     rl.Color
	OccupiedColor rl.Color
	VectorColor   rl.Color
	PathColor     rl.Color
}

// NewFieldRenderer creates a field renderer with the default palette.
func NewFieldRenderer() *FieldRenderer {
	return &FieldRenderer{
		GridColor:     rl.Color{R: 60, G: 70, B: 90, A: 70},
		OccupiedColor: rl.Color{R: 200, G: 80, B: 80, A: 40},
		VectorColor:   rl.Color{R: 90, G: 200, B: 230, A: 255},
		PathColor:     rl.Color{R: 255, G: 230, B: 120, A: 255},
	}
}

// visibleCells returns the inclusive cell range under the camera.
func visibleCells(grid *systems.Grid, cam *camera.Camera) (x0, y0, x1, y1 int) {
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	ts := float32(grid.TileSize())
	x0 = clampInt(int(minX/ts), 0, grid.Width()-1)
	y0 = clampInt(int(minY/ts), 0, grid.Height()-1)
	x1 = clampInt(int(maxX/ts), 0, grid.Width()-1)
	y1 = clampInt(int(maxY/ts), 0, grid.Height()-1)
	return
}

// DrawGrid draws cell borders.
func (r *FieldRenderer) DrawGrid(grid *systems.Grid, cam *camera.Camera) {
	ts := float32(grid.TileSize())
	worldW := ts * float32(grid.Width())
	worldH := ts * float32(grid.Height())

	for x := 0; x <= grid.Width(); x++ {
		sx, sy := cam.WorldToScreen(float32(x)*ts, 0)
		_, ey := cam.WorldToScreen(0, worldH)
		rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: sx, Y: ey}, r.GridColor)
	}
	for y := 0; y <= grid.Height(); y++ {
		sx, sy := cam.WorldToScreen(0, float32(y)*ts)
		ex, _ := cam.WorldToScreen(worldW, 0)
		rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: ex, Y: sy}, r.GridColor)
	}
}

// DrawOccupancy tints occupied cells.
func (r *FieldRenderer) DrawOccupancy(grid *systems.Grid, cam *camera.Camera) {
	ts := float32(grid.TileSize())
	size := ts * cam.Zoom
	x0, y0, x1, y1 := visibleCells(grid, cam)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cell, err := grid.CellAt(x, y)
			if err != nil || !cell.Occupied {
				continue
			}
			sx, sy := cam.WorldToScreen(float32(x)*ts, float32(y)*ts)
			rl.DrawRectangleV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: size, Y: size}, r.OccupiedColor)
		}
	}
}

// DrawVectors draws one arrow per cell along its gravity vector.
// Arrow length and opacity scale with magnitude relative to the field max.
func (r *FieldRenderer) DrawVectors(grid *systems.Grid, cam *camera.Camera) {
	maxMag := grid.MaxGravity()
	if maxMag <= 0 {
		return
	}

	ts := float32(grid.TileSize())
	x0, y0, x1, y1 := visibleCells(grid, cam)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g := grid.GravityAt(x, y)
			mag := r2.Norm(g)
			if mag == 0 {
				continue
			}
			t := float32(mag / maxMag)

			cx, cy := grid.CellCenter(x, y)
			sx, sy := cam.WorldToScreen(float32(cx), float32(cy))
			length := ts * 0.45 * cam.Zoom * (0.3 + 0.7*t)
			dx := float32(g.X/mag) * length
			dy := float32(g.Y/mag) * length

			color := r.VectorColor
			color.A = uint8(40 + t*200)
			tip := rl.Vector2{X: sx + dx, Y: sy + dy}
			rl.DrawLineEx(rl.Vector2{X: sx, Y: sy}, tip, 1.5, color)
			drawArrowHead(tip, dx, dy, length*0.35, color)
		}
	}
}

// DrawTrajectory draws a predicted path as fading dots.
func (r *FieldRenderer) DrawTrajectory(path []r2.Vec, cam *camera.Camera) {
	n := len(path)
	for i, p := range path {
		if i%2 != 0 {
			continue
		}
		fade := 1 - float32(i)/float32(n)
		color := r.PathColor
		color.A = uint8(40 + fade*200)
		sx, sy := cam.WorldToScreen(float32(p.X), float32(p.Y))
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, 1.5+fade*1.5, color)
	}
}

// DrawFootprint outlines the cells of a footprint centered at (gx, gy).
// valid selects the outline color.
func (r *FieldRenderer) DrawFootprint(grid *systems.Grid, gx, gy, radius int, valid bool, cam *camera.Camera) {
	color := rl.Color{R: 120, G: 230, B: 120, A: 160}
	if !valid {
		color = rl.Color{R: 230, G: 90, B: 90, A: 160}
	}
	ts := float32(grid.TileSize())
	size := ts * cam.Zoom
	for _, c := range systems.CellsInRadius(gx, gy, radius) {
		sx, sy := cam.WorldToScreen(float32(c.X)*ts, float32(c.Y)*ts)
		rl.DrawRectangleLinesEx(rl.Rectangle{X: sx, Y: sy, Width: size, Height: size}, 1.5, color)
	}
}

// drawArrowHead draws two short barbs at tip pointing back along (dx, dy).
func drawArrowHead(tip rl.Vector2, dx, dy, size float32, color rl.Color) {
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	const spread = 0.5
	left := rl.Vector2{X: tip.X - (ux-uy*spread)*size, Y: tip.Y - (uy+ux*spread)*size}
	right := rl.Vector2{X: tip.X - (ux+uy*spread)*size, Y: tip.Y - (uy-ux*spread)*size}
	rl.DrawLineV(tip, left, color)
	rl.DrawLineV(tip, right, color)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
