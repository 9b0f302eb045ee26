package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/systems"
)

// CellInfo describes one grid cell for tooltips and tools.
type CellInfo struct {
	X, Y     int
	Gravity  r2.Vec
	Occupied bool
	Owner    systems.GridCoord // footprint center, valid when Occupied
	Entity   *EntitySummary    // entity covering the cell, nil when empty
}

// EntitySummary is a read-only view of an entity.
type EntitySummary struct {
	Entity      ecs.Entity
	Kind        components.Kind
	Center      systems.GridCoord
	Indexed     bool
	X, Y        float64
	VelX, VelY  float64
	RadiusTiles int
	Immutable   bool
	Health      int
	MaxHealth   int
}

// Moving reports whether the entity has velocity.
func (s EntitySummary) Moving() bool {
	return s.VelX != 0 || s.VelY != 0
}

// QueryCell returns the state of cell (gx, gy). For any cell of a
// footprint, Entity summarizes the entity centered on the footprint.
func (g *Game) QueryCell(gx, gy int) (CellInfo, error) {
	cell, err := g.grid.CellAt(gx, gy)
	if err != nil {
		return CellInfo{}, err
	}

	info := CellInfo{
		X:        gx,
		Y:        gy,
		Gravity:  cell.Gravity,
		Occupied: cell.Occupied,
	}
	if !cell.Occupied {
		return info, nil
	}
	info.Owner = cell.Owner

	if e, ok := g.grid.EntityAt(cell.Owner.X, cell.Owner.Y); ok && g.world.Alive(e) {
		s := g.summary(e)
		info.Entity = &s
	}
	return info, nil
}

func (g *Game) summary(e ecs.Entity) EntitySummary {
	return summarize(e, g.posMap.Get(e), g.velMap.Get(e), g.bodyMap.Get(e), g.healthMap.Get(e), g.tileMap.Get(e))
}

func summarize(e ecs.Entity, pos *components.Position, vel *components.Velocity, body *components.Body, health *components.Health, tile *components.Tile) EntitySummary {
	return EntitySummary{
		Entity:      e,
		Kind:        body.Kind,
		Center:      systems.GridCoord{X: tile.X, Y: tile.Y},
		Indexed:     tile.Indexed,
		X:           pos.X,
		Y:           pos.Y,
		VelX:        vel.X,
		VelY:        vel.Y,
		RadiusTiles: body.RadiusTiles,
		Immutable:   body.Immutable,
		Health:      health.Value,
		MaxHealth:   health.Max,
	}
}
