package systems

import "gonum.org/v1/gonum/spatial/r2"

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// clampVec limits the magnitude of v to maxLen. maxLen <= 0 disables the clamp.
func clampVec(v r2.Vec, maxLen float64) r2.Vec {
	if maxLen <= 0 {
		return v
	}
	n := r2.Norm(v)
	if n <= maxLen {
		return v
	}
	return r2.Scale(maxLen/n, v)
}
