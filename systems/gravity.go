package systems

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ApplyField adds a radial source to the grid's gravity.
//
// Every in-bounds cell within radius of (cx, cy) gains a vector of
// magnitude strength pointing from the cell's center toward the source's
// center. Magnitude does not fall off with distance. Contributions add to
// whatever the cell already holds, so applying the same source twice
// doubles it; callers apply once per placement.
func ApplyField(g *Grid, cx, cy, radius int, strength float64) error {
	if radius < 0 {
		return fmt.Errorf("field radius %d: %w", radius, ErrInvalidRadius)
	}
	if math.IsNaN(strength) || math.IsInf(strength, 0) {
		return fmt.Errorf("field strength %v: %w", strength, ErrInvalidStrength)
	}

	sx, sy := g.CellCenter(cx, cy)
	src := r2.Vec{X: sx, Y: sy}

	for _, c := range CellsInRadius(cx, cy, radius) {
		if !g.InBounds(c.X, c.Y) {
			continue
		}
		wx, wy := g.CellCenter(c.X, c.Y)
		cell := g.cell(c.X, c.Y)
		cell.Gravity = r2.Add(cell.Gravity, fieldContribution(src, r2.Vec{X: wx, Y: wy}, strength))
	}
	return nil
}

// fieldContribution returns the pull toward src felt at p.
// The source's own cell has no direction and contributes zero.
func fieldContribution(src, p r2.Vec, strength float64) r2.Vec {
	d := r2.Sub(src, p)
	n := r2.Norm(d)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(strength/n, d)
}
