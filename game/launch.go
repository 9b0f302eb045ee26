package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/systems"
	"github.com/pthm-cable/gravwell/telemetry"
)

var (
	// ErrNotLaunchable is returned when a drag starts on an entity that cannot be launched.
	ErrNotLaunchable = errors.New("entity is not launchable")
	// ErrNoLaunch is returned when no drag is in progress.
	ErrNoLaunch = errors.New("no launch in progress")
)

// launchState is the drag gesture between BeginLaunch and EndLaunch.
type launchState struct {
	active         bool
	target         ecs.Entity
	startX, startY float64 // screen position where the drag began
}

// BeginLaunch starts a drag on the entity covering cell (gx, gy).
// (sx, sy) is the screen position of the pointer.
func (g *Game) BeginLaunch(gx, gy int, sx, sy float64) error {
	e, err := g.entityCovering(gx, gy)
	if err != nil {
		return fmt.Errorf("begin launch: %w", err)
	}
	if body := g.bodyMap.Get(e); !body.Launchable {
		return fmt.Errorf("begin launch on %s: %w", body.Kind, ErrNotLaunchable)
	}

	g.launch = launchState{active: true, target: e, startX: sx, startY: sy}
	return nil
}

// Launching reports whether a drag is in progress.
func (g *Game) Launching() bool {
	return g.launch.active && g.world.Alive(g.launch.target)
}

// LaunchStart returns the screen position where the active drag began.
func (g *Game) LaunchStart() (sx, sy float64, ok bool) {
	if !g.Launching() {
		return 0, 0, false
	}
	return g.launch.startX, g.launch.startY, true
}

// PredictTrajectory previews the path the drag target would fly if released
// with the pointer at screen position (px, py). It returns nil when no drag
// is in progress. The engine state is not modified.
func (g *Game) PredictTrajectory(px, py float64) []r2.Vec {
	if !g.Launching() {
		return nil
	}
	pos := g.posMap.Get(g.launch.target)
	v0 := g.launchVelocity(px, py)
	return systems.PredictTrajectory(g.grid, r2.Vec{X: pos.X, Y: pos.Y}, v0, systems.TrajectoryParams{
		Steps:    g.cfg.Trajectory.Steps,
		MaxSpeed: g.cfg.Trajectory.MaxSpeed,
		DT:       1,
	})
}

// EndLaunch releases the drag with the pointer at screen position (px, py),
// giving the target its launch velocity.
func (g *Game) EndLaunch(px, py float64) error {
	if !g.Launching() {
		g.launch = launchState{}
		return ErrNoLaunch
	}
	e := g.launch.target
	v := g.launchVelocity(px, py)
	g.launch = launchState{}
	g.launchEntity(e, v)
	return nil
}

// launchEntity gives e velocity v and reports the launch.
func (g *Game) launchEntity(e ecs.Entity, v r2.Vec) {
	vel := g.velMap.Get(e)
	vel.X, vel.Y = v.X, v.Y
	if !vel.Moving() {
		return
	}

	pos := g.posMap.Get(e)
	kind := g.bodyMap.Get(e).Kind
	g.pending = append(g.pending, telemetry.NewLaunchedEvent(e, kind, pos.X, pos.Y, vel.Speed()))
	slog.Debug("launched", "kind", kind.String(), "vx", v.X, "vy", v.Y)
}

// CancelLaunch abandons the active drag, if any.
func (g *Game) CancelLaunch() {
	g.launch = launchState{}
}

func (g *Game) launchVelocity(px, py float64) r2.Vec {
	return systems.LaunchVelocity(g.launch.startX, g.launch.startY, px, py, g.cfg.Launch.VelocityScale)
}

// entityCovering returns the entity whose footprint covers (gx, gy).
func (g *Game) entityCovering(gx, gy int) (ecs.Entity, error) {
	cell, err := g.grid.CellAt(gx, gy)
	if err != nil {
		return ecs.Entity{}, err
	}
	if !cell.Occupied {
		return ecs.Entity{}, fmt.Errorf("cell (%d,%d): %w", gx, gy, systems.ErrNoEntityAtCell)
	}
	e, ok := g.grid.EntityAt(cell.Owner.X, cell.Owner.Y)
	if !ok {
		return ecs.Entity{}, fmt.Errorf("cell (%d,%d): %w", gx, gy, systems.ErrNoEntityAtCell)
	}
	return e, nil
}
