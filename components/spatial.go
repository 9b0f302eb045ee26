package components

import "math"

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's velocity in world units per unit dt.
type Velocity struct {
	X, Y float64
}

// Moving reports whether the velocity is nonzero.
func (v Velocity) Moving() bool {
	return v.X != 0 || v.Y != 0
}

// Speed returns the velocity magnitude.
func (v Velocity) Speed() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rotation is visual-only orientation state.
type Rotation struct {
	Angle float64 // radians
	Spin  float64 // radians per unit dt
}

// Integrate advances an entity by one tick using semi-implicit Euler.
// Movable entities take the acceleration into their velocity first, then
// the position advances by the new velocity. maxSpeed <= 0 disables the clamp.
func Integrate(pos *Position, vel *Velocity, rot *Rotation, movable bool, dt, ax, ay, maxSpeed float64) {
	if movable {
		vel.X += ax * dt
		vel.Y += ay * dt
		clampSpeed(vel, maxSpeed)
	}

	pos.X += vel.X * dt
	pos.Y += vel.Y * dt

	if rot == nil {
		return
	}
	if movable && vel.Moving() {
		rot.Angle = math.Atan2(vel.Y, vel.X)
	} else {
		rot.Angle = normalizeAngle(rot.Angle + rot.Spin*dt)
	}
}

func clampSpeed(vel *Velocity, maxSpeed float64) {
	if maxSpeed <= 0 {
		return
	}
	speed := vel.Speed()
	if speed > maxSpeed {
		scale := maxSpeed / speed
		vel.X *= scale
		vel.Y *= scale
	}
}

// normalizeAngle wraps an angle to [-Pi, Pi].
func normalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}
