// Package systems provides the grid, gravity field and ECS systems for the sandbox.
package systems

import (
	"errors"
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Grid errors. All are local and recoverable; a failed operation leaves
// the grid unchanged.
var (
	ErrOutOfBounds     = errors.New("coordinate outside grid")
	ErrCellOccupied    = errors.New("cell occupied")
	ErrNoEntityAtCell  = errors.New("no entity at cell")
	ErrInvalidRadius   = errors.New("invalid radius")
	ErrInvalidStrength = errors.New("invalid field strength")
)

// GridCoord is an integer tile coordinate.
type GridCoord struct {
	X, Y int
}

// Cell is one tile of the grid.
// Entity is only set on the center cell of a footprint; every occupied
// cell's Owner is that center.
type Cell struct {
	Gravity   r2.Vec
	Occupied  bool
	Entity    ecs.Entity
	HasEntity bool
	Owner     GridCoord
}

// GridConfig fixes the grid's size at construction.
type GridConfig struct {
	Width, Height int
	TileSize      float64
}

// Grid is a fixed-size tile grid holding per-cell gravity and occupancy.
type Grid struct {
	width    int
	height   int
	tileSize float64
	cells    []Cell // row-major
}

// NewGrid creates an empty grid.
func NewGrid(cfg GridConfig) *Grid {
	if cfg.Width < 0 || cfg.Height < 0 {
		panic(fmt.Sprintf("systems: negative grid size %dx%d", cfg.Width, cfg.Height))
	}
	return &Grid{
		width:    cfg.Width,
		height:   cfg.Height,
		tileSize: cfg.TileSize,
		cells:    make([]Cell, cfg.Width*cfg.Height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// TileSize returns the world size of one tile side.
func (g *Grid) TileSize() float64 { return g.tileSize }

// InBounds reports whether (x, y) lies in [0,width)x[0,height).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// CellAt returns the cell at (x, y).
func (g *Grid) CellAt(x, y int) (*Cell, error) {
	if !g.InBounds(x, y) {
		return nil, fmt.Errorf("cell (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	return &g.cells[y*g.width+x], nil
}

// cell returns the cell at (x, y) without a bounds check.
func (g *Grid) cell(x, y int) *Cell {
	return &g.cells[y*g.width+x]
}

// CellsInRadius returns the disk of coordinates with dx*dx + dy*dy <= r*r
// around (cx, cy), row by row. Bounds are not checked. This is the single
// footprint rule shared by placement, removal and field application.
func CellsInRadius(cx, cy, r int) []GridCoord {
	if r < 0 {
		return nil
	}
	rSq := r * r
	out := make([]GridCoord, 0, (2*r+1)*(2*r+1))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= rSq {
				out = append(out, GridCoord{X: cx + dx, Y: cy + dy})
			}
		}
	}
	return out
}

// CellCenter returns the world coordinate of a tile's center.
func (g *Grid) CellCenter(x, y int) (wx, wy float64) {
	return (float64(x) + 0.5) * g.tileSize, (float64(y) + 0.5) * g.tileSize
}

// WorldToCell returns the tile containing a world coordinate.
// The result may be out of bounds.
func (g *Grid) WorldToCell(wx, wy float64) (x, y int) {
	return int(math.Floor(wx / g.tileSize)), int(math.Floor(wy / g.tileSize))
}

// GravityAt returns the accumulated gravity of a cell, or zero out of bounds.
func (g *Grid) GravityAt(x, y int) r2.Vec {
	if !g.InBounds(x, y) {
		return r2.Vec{}
	}
	return g.cell(x, y).Gravity
}

// SampleGravity returns the gravity of the cell containing a world coordinate.
func (g *Grid) SampleGravity(wx, wy float64) r2.Vec {
	x, y := g.WorldToCell(wx, wy)
	return g.GravityAt(x, y)
}

// EntityAt returns the entity whose footprint center is (x, y).
func (g *Grid) EntityAt(x, y int) (ecs.Entity, bool) {
	if !g.InBounds(x, y) {
		return ecs.Entity{}, false
	}
	c := g.cell(x, y)
	return c.Entity, c.HasEntity
}

// MaxGravity returns the largest gravity magnitude on the grid.
func (g *Grid) MaxGravity() float64 {
	var m float64
	for i := range g.cells {
		if n := r2.Norm(g.cells[i].Gravity); n > m {
			m = n
		}
	}
	return m
}

// GravityMagnitudes returns the gravity magnitude of every cell, row-major.
func (g *Grid) GravityMagnitudes() []float64 {
	out := make([]float64, len(g.cells))
	for i := range g.cells {
		out[i] = r2.Norm(g.cells[i].Gravity)
	}
	return out
}

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Occupied {
			n++
		}
	}
	return n
}

// Reset clears occupancy and gravity from every cell.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
}
