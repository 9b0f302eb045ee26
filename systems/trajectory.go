package systems

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// TrajectoryParams controls a trajectory prediction.
type TrajectoryParams struct {
	Steps    int     // maximum number of points
	MaxSpeed float64 // speed clamp per step, <= 0 disables
	DT       float64 // step size
}

// PredictTrajectory simulates a massless projectile from start with initial
// velocity v0 through the grid's current field and returns its positions
// after each step. The start point is not included.
//
// The same integration rule as live motion is used: velocity takes the
// gravity of the cell the point is in, is clamped, then the point advances.
// Prediction stops before the first point outside the grid. The grid is
// only read.
func PredictTrajectory(g *Grid, start, v0 r2.Vec, params TrajectoryParams) []r2.Vec {
	if params.Steps <= 0 {
		return nil
	}
	dt := params.DT
	if dt <= 0 {
		dt = 1
	}

	points := make([]r2.Vec, 0, params.Steps)
	p, v := start, v0
	for i := 0; i < params.Steps; i++ {
		a := g.SampleGravity(p.X, p.Y)
		v = r2.Add(v, r2.Scale(dt, a))
		v = clampVec(v, params.MaxSpeed)
		p = r2.Add(p, r2.Scale(dt, v))

		cx, cy := g.WorldToCell(p.X, p.Y)
		if !g.InBounds(cx, cy) {
			break
		}
		points = append(points, p)
	}
	return points
}

// LaunchVelocity returns the slingshot velocity for a drag from start to
// pointer: the projectile flies away from the pointer.
func LaunchVelocity(startX, startY, pointerX, pointerY, scale float64) r2.Vec {
	return r2.Vec{X: (startX - pointerX) * scale, Y: (startY - pointerY) * scale}
}
