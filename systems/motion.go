package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/telemetry"
)

// MotionSystem advances entities through the gravity field and resolves
// collisions of moving entities with immutable bodies.
type MotionSystem struct {
	world  *ecs.World
	grid   *Grid
	occ    *Occupancy
	filter ecs.Filter3[components.Velocity, components.Body, components.Tile]

	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	rotMap    *ecs.Map1[components.Rotation]
	bodyMap   *ecs.Map1[components.Body]
	healthMap *ecs.Map1[components.Health]
	tileMap   *ecs.Map1[components.Tile]
	visMap    *ecs.Map1[components.Visual]

	damage       int
	impactScale  float64
	destroyScale float64
	maxSpeed     float64
	despawnOOB   bool

	// Snapshots, reused across ticks
	moving  []ecs.Entity
	static  []ecs.Entity
	targets []ecs.Entity
}

// NewMotionSystem creates a motion system.
func NewMotionSystem(w *ecs.World, occ *Occupancy, cfg *config.Config) *MotionSystem {
	return &MotionSystem{
		world:        w,
		grid:         occ.Grid(),
		occ:          occ,
		filter:       *ecs.NewFilter3[components.Velocity, components.Body, components.Tile](w),
		posMap:       ecs.NewMap1[components.Position](w),
		velMap:       ecs.NewMap1[components.Velocity](w),
		rotMap:       ecs.NewMap1[components.Rotation](w),
		bodyMap:      ecs.NewMap1[components.Body](w),
		healthMap:    ecs.NewMap1[components.Health](w),
		tileMap:      ecs.NewMap1[components.Tile](w),
		visMap:       ecs.NewMap1[components.Visual](w),
		damage:       cfg.Collision.Damage,
		impactScale:  cfg.Collision.ImpactExplosionScale,
		destroyScale: cfg.Collision.DestroyExplosionScale,
		maxSpeed:     cfg.Physics.MaxSpeed,
		despawnOOB:   cfg.Physics.DespawnOutOfBounds,
	}
}

// Update runs one tick and returns the side effects it produced.
//
// Entities are snapshotted first so that removals during resolution never
// happen inside an open query. Static entities only receive their visual
// update; gravity never perturbs a body at rest.
func (s *MotionSystem) Update(dt float64) []telemetry.Event {
	s.snapshot()

	for _, e := range s.static {
		if !s.world.Alive(e) {
			continue
		}
		pos, vel, rot := s.posMap.Get(e), s.velMap.Get(e), s.rotMap.Get(e)
		components.Integrate(pos, vel, rot, false, dt, 0, 0, 0)
		s.visMap.Get(e).Move(pos.X, pos.Y, rot.Angle)
	}

	var events []telemetry.Event
	for _, e := range s.moving {
		// An earlier entity this tick may have removed this one
		if !s.world.Alive(e) {
			continue
		}
		events = s.advance(e, dt, events)
	}
	return events
}

// snapshot partitions live entities into moving, static and collision targets.
func (s *MotionSystem) snapshot() {
	s.moving = s.moving[:0]
	s.static = s.static[:0]
	s.targets = s.targets[:0]

	query := s.filter.Query()
	for query.Next() {
		vel, body, _ := query.Get()
		e := query.Entity()
		if vel.Moving() {
			s.moving = append(s.moving, e)
		} else {
			s.static = append(s.static, e)
		}
		if body.Immutable {
			s.targets = append(s.targets, e)
		}
	}
}

// advance integrates one moving entity, then resolves a collision or re-indexes it.
func (s *MotionSystem) advance(e ecs.Entity, dt float64, events []telemetry.Event) []telemetry.Event {
	pos := s.posMap.Get(e)
	vel := s.velMap.Get(e)
	rot := s.rotMap.Get(e)
	body := s.bodyMap.Get(e)

	// Sample the field where the entity is now, before it moves
	a := s.grid.SampleGravity(pos.X, pos.Y)
	components.Integrate(pos, vel, rot, !body.Immutable, dt, a.X, a.Y, s.maxSpeed)
	s.visMap.Get(e).Move(pos.X, pos.Y, rot.Angle)

	if target, ok := s.findCollision(e, pos.X, pos.Y); ok {
		return s.resolveCollision(e, target, events)
	}
	return s.reindex(e, events)
}

// findCollision returns the first immutable body whose world radius
// contains (x, y).
func (s *MotionSystem) findCollision(e ecs.Entity, x, y float64) (ecs.Entity, bool) {
	tileSize := s.grid.TileSize()
	for _, t := range s.targets {
		if t == e || !s.world.Alive(t) {
			continue
		}
		tpos := s.posMap.Get(t)
		radius := float64(s.bodyMap.Get(t).RadiusTiles) * tileSize
		if distanceSq(x, y, tpos.X, tpos.Y) < radius*radius {
			return t, true
		}
	}
	return ecs.Entity{}, false
}

// resolveCollision applies damage to target and consumes the mover.
// The mover is removed whether or not the target survives.
func (s *MotionSystem) resolveCollision(e, target ecs.Entity, events []telemetry.Event) []telemetry.Event {
	pos := s.posMap.Get(e)
	kind := s.bodyMap.Get(e).Kind
	speed := s.velMap.Get(e).Speed()
	tbody := s.bodyMap.Get(target)

	events = append(events,
		telemetry.NewExplosionEvent(pos.X, pos.Y, s.impactScale),
		telemetry.NewImpactEvent(target, tbody.Kind, pos.X, pos.Y, speed),
	)

	// Every hit reports the target exactly once: destroyed, or damaged with
	// its remaining health. Invulnerable kinds report unchanged health.
	health := s.healthMap.Get(target)
	switch {
	case tbody.Kind.Invulnerable():
		events = append(events, telemetry.NewDamagedEvent(target, tbody.Kind, health.Value))
	case health.TakeDamage(s.damage):
		tpos := s.posMap.Get(target)
		tx, ty, tkind := tpos.X, tpos.Y, tbody.Kind
		s.occ.Release(target)
		s.world.RemoveEntity(target)
		events = append(events,
			telemetry.NewExplosionEvent(tx, ty, s.destroyScale),
			telemetry.NewDestroyedEvent(target, tkind, tx, ty),
		)
		slog.Info("body destroyed", "kind", tkind.String(), "x", tx, "y", ty)
	default:
		events = append(events, telemetry.NewDamagedEvent(target, tbody.Kind, health.Value))
	}

	x, y := pos.X, pos.Y
	s.occ.Release(e)
	s.world.RemoveEntity(e)
	return append(events, telemetry.NewConsumedEvent(e, kind, x, y))
}

// reindex updates grid occupancy after a move without collision.
func (s *MotionSystem) reindex(e ecs.Entity, events []telemetry.Event) []telemetry.Event {
	pos := s.posMap.Get(e)
	tile := s.tileMap.Get(e)
	cx, cy := s.grid.WorldToCell(pos.X, pos.Y)

	if tile.Indexed && cx == tile.X && cy == tile.Y {
		return events
	}

	if !s.grid.InBounds(cx, cy) {
		wasInside := s.grid.InBounds(tile.X, tile.Y)
		s.occ.Unindex(e)
		tile.X, tile.Y = cx, cy

		if !wasInside {
			return events
		}
		kind := s.bodyMap.Get(e).Kind
		events = append(events, telemetry.NewOutOfBoundsEvent(e, kind, pos.X, pos.Y))
		if s.despawnOOB {
			s.visMap.Get(e).Detach()
			s.world.RemoveEntity(e)
			events = append(events, telemetry.NewRemovedEvent(e, kind, pos.X, pos.Y))
		}
		return events
	}

	if !tile.Indexed && cx == tile.X && cy == tile.Y {
		// Still blocked in the same cell
		return events
	}
	if err := s.occ.Relocate(e, cx, cy); err != nil {
		slog.Debug("mover unindexed", "x", cx, "y", cy, "error", err)
	}
	return events
}
