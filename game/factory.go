package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/systems"
	"github.com/pthm-cable/gravwell/telemetry"
)

var (
	// ErrUnknownKind is returned for a kind with no config entry.
	ErrUnknownKind = errors.New("unknown entity kind")
	// ErrImmutable is returned when relocating an immutable body.
	ErrImmutable = errors.New("entity is immutable")
)

// EntitySpec describes an entity to place.
type EntitySpec struct {
	Kind   components.Kind
	Visual components.VisualHandle // optional, attached once placed
}

// PlaceEntity creates an entity of spec.Kind with its footprint centered on
// (gx, gy). On failure nothing is created and the grid is unchanged.
// Without spec.Visual the game's VisualFactory, if any, supplies one.
func (g *Game) PlaceEntity(gx, gy int, spec EntitySpec) (ecs.Entity, error) {
	e, err := g.spawn(spec)
	if err != nil {
		g.collector.RecordFailedPlacement()
		return ecs.Entity{}, err
	}

	if err := g.occ.Place(gx, gy, e); err != nil {
		g.world.RemoveEntity(e)
		g.collector.RecordFailedPlacement()
		slog.Debug("placement rejected", "kind", spec.Kind.String(), "x", gx, "y", gy, "error", err)
		return ecs.Entity{}, err
	}

	if vis := g.visMap.Get(e); vis.Handle != nil {
		vis.Handle.Attach()
	}
	pos := g.posMap.Get(e)
	g.pending = append(g.pending, telemetry.NewPlacedEvent(e, spec.Kind, pos.X, pos.Y))
	return e, nil
}

// RemoveEntity removes the entity centered on (gx, gy).
// An explosion is reported at its position.
func (g *Game) RemoveEntity(gx, gy int) error {
	e, err := g.occ.Remove(gx, gy)
	if err != nil {
		return err
	}

	pos := g.posMap.Get(e)
	kind := g.bodyMap.Get(e).Kind
	x, y := pos.X, pos.Y
	if g.launch.active && g.launch.target == e {
		g.CancelLaunch()
	}
	g.world.RemoveEntity(e)

	g.pending = append(g.pending,
		telemetry.NewExplosionEvent(x, y, g.cfg.Collision.DestroyExplosionScale),
		telemetry.NewRemovedEvent(e, kind, x, y),
	)
	slog.Debug("entity removed", "kind", kind.String(), "x", gx, "y", gy)
	return nil
}

// MoveEntity relocates the entity centered on (fromX, fromY) to (toX, toY).
// Immutable bodies refuse with ErrImmutable.
func (g *Game) MoveEntity(fromX, fromY, toX, toY int) error {
	e, ok := g.grid.EntityAt(fromX, fromY)
	if !ok {
		if !g.grid.InBounds(fromX, fromY) {
			return fmt.Errorf("move from (%d,%d): %w", fromX, fromY, systems.ErrOutOfBounds)
		}
		return fmt.Errorf("move from (%d,%d): %w", fromX, fromY, systems.ErrNoEntityAtCell)
	}
	if body := g.bodyMap.Get(e); body.Immutable {
		return fmt.Errorf("move %s from (%d,%d): %w", body.Kind, fromX, fromY, ErrImmutable)
	}
	return g.occ.Move(fromX, fromY, toX, toY)
}

// spawn creates an unplaced entity from its kind's config.
func (g *Game) spawn(spec EntitySpec) (ecs.Entity, error) {
	kc, ok := g.cfg.Kind(spec.Kind.String())
	if !ok {
		return ecs.Entity{}, fmt.Errorf("%s: %w", spec.Kind, ErrUnknownKind)
	}
	body, _ := components.BodyFromConfig(spec.Kind, g.cfg)
	if spec.Visual == nil && g.visuals != nil {
		spec.Visual = g.visuals(spec.Kind, kc.RadiusTiles)
	}

	pos := components.Position{}
	vel := components.Velocity{}
	rot := components.Rotation{Spin: kc.Spin}
	health := components.Health{Value: kc.MaxHealth, Max: kc.MaxHealth}
	tile := components.Tile{}
	vis := components.Visual{Handle: spec.Visual}

	return g.entityMapper.NewEntity(&pos, &vel, &rot, &body, &health, &tile, &vis), nil
}
