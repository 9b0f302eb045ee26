package systems

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/config"
)

// Occupancy places, moves and removes multi-tile entities on the grid.
//
// A placed entity covers CellsInRadius(center, Body.RadiusTiles). Every
// covered cell is marked occupied with Owner = center; only the center
// cell references the entity.
type Occupancy struct {
	world *ecs.World
	grid  *Grid
	cfg   *config.Config

	posMap  *ecs.Map1[components.Position]
	rotMap  *ecs.Map1[components.Rotation]
	bodyMap *ecs.Map1[components.Body]
	tileMap *ecs.Map1[components.Tile]
	visMap  *ecs.Map1[components.Visual]
}

// NewOccupancy creates an occupancy manager for the grid.
func NewOccupancy(w *ecs.World, grid *Grid, cfg *config.Config) *Occupancy {
	return &Occupancy{
		world:   w,
		grid:    grid,
		cfg:     cfg,
		posMap:  ecs.NewMap1[components.Position](w),
		rotMap:  ecs.NewMap1[components.Rotation](w),
		bodyMap: ecs.NewMap1[components.Body](w),
		tileMap: ecs.NewMap1[components.Tile](w),
		visMap:  ecs.NewMap1[components.Visual](w),
	}
}

// Grid returns the managed grid.
func (o *Occupancy) Grid() *Grid { return o.grid }

// Place puts e's footprint centered on (x, y).
// It fails without mutation if any covered cell is out of bounds or occupied.
// On success the entity is moved to the tile center and, if its kind is a
// gravity source, the source's field is applied once.
func (o *Occupancy) Place(x, y int, e ecs.Entity) error {
	if !o.world.Alive(e) {
		return fmt.Errorf("place at (%d,%d): %w", x, y, ErrNoEntityAtCell)
	}
	body := o.bodyMap.Get(e)
	if err := o.available(x, y, body.RadiusTiles); err != nil {
		return fmt.Errorf("place %s at (%d,%d): %w", body.Kind, x, y, err)
	}

	// Field validation happens before any cell is touched
	if src, ok := o.cfg.Source(body.Kind.String()); ok {
		if err := ApplyField(o.grid, x, y, src.Radius, src.Strength); err != nil {
			return fmt.Errorf("place %s at (%d,%d): %w", body.Kind, x, y, err)
		}
	}

	o.occupy(x, y, body.RadiusTiles, e)
	tile := o.tileMap.Get(e)
	*tile = components.Tile{X: x, Y: y, Indexed: true}
	o.snapToTile(e, x, y)
	return nil
}

// Remove clears the footprint centered on (x, y) and detaches its visual.
// The entity stays alive in the world; the caller disposes of it.
func (o *Occupancy) Remove(x, y int) (ecs.Entity, error) {
	cell, err := o.grid.CellAt(x, y)
	if err != nil {
		return ecs.Entity{}, err
	}
	if !cell.HasEntity {
		return ecs.Entity{}, fmt.Errorf("remove at (%d,%d): %w", x, y, ErrNoEntityAtCell)
	}
	e := cell.Entity
	o.Release(e)
	return e, nil
}

// Release clears e's footprint if it is indexed and detaches its visual.
// With gravity.retract_on_remove set, a source's field is subtracted again.
func (o *Occupancy) Release(e ecs.Entity) {
	if !o.world.Alive(e) {
		return
	}
	body := o.bodyMap.Get(e)
	tile := o.tileMap.Get(e)
	if tile.Indexed && o.cfg.Gravity.RetractOnRemove {
		if src, ok := o.cfg.Source(body.Kind.String()); ok {
			// Sources edited since placement can fail validation; the footprint is still cleared
			if err := ApplyField(o.grid, tile.X, tile.Y, src.Radius, -src.Strength); err != nil {
				slog.Debug("field retraction skipped", "kind", body.Kind.String(), "x", tile.X, "y", tile.Y, "error", err)
			}
		}
	}
	o.Unindex(e)
	o.visMap.Get(e).Detach()
}

// Unindex clears e's footprint and marks it untracked.
// The visual stays attached.
func (o *Occupancy) Unindex(e ecs.Entity) {
	tile := o.tileMap.Get(e)
	if !tile.Indexed {
		return
	}
	o.vacate(tile.X, tile.Y, o.bodyMap.Get(e).RadiusTiles)
	tile.Indexed = false
}

// Move relocates the entity centered on (fromX, fromY) to (toX, toY).
// The source footprint is vacated while the destination is checked so an
// entity may move into cells it already covers; on failure it is restored.
func (o *Occupancy) Move(fromX, fromY, toX, toY int) error {
	cell, err := o.grid.CellAt(fromX, fromY)
	if err != nil {
		return err
	}
	if !cell.HasEntity {
		return fmt.Errorf("move from (%d,%d): %w", fromX, fromY, ErrNoEntityAtCell)
	}
	e := cell.Entity
	r := o.bodyMap.Get(e).RadiusTiles

	o.vacate(fromX, fromY, r)
	if err := o.available(toX, toY, r); err != nil {
		o.occupy(fromX, fromY, r, e)
		return fmt.Errorf("move to (%d,%d): %w", toX, toY, err)
	}
	o.occupy(toX, toY, r, e)

	tile := o.tileMap.Get(e)
	*tile = components.Tile{X: toX, Y: toY, Indexed: true}
	o.snapToTile(e, toX, toY)
	return nil
}

// Relocate re-indexes a moving entity whose position crossed into (toX, toY).
// The old footprint is always cleared. If the new footprint is unavailable
// the entity is left unindexed and the error is returned.
// The entity's world position is not touched.
func (o *Occupancy) Relocate(e ecs.Entity, toX, toY int) error {
	r := o.bodyMap.Get(e).RadiusTiles
	tile := o.tileMap.Get(e)
	if tile.Indexed {
		o.vacate(tile.X, tile.Y, r)
	}
	tile.X, tile.Y = toX, toY
	tile.Indexed = false

	if err := o.available(toX, toY, r); err != nil {
		return err
	}
	o.occupy(toX, toY, r, e)
	tile.Indexed = true
	return nil
}

// available checks that every footprint cell is in bounds and free.
func (o *Occupancy) available(x, y, r int) error {
	if r < 0 {
		return fmt.Errorf("footprint radius %d: %w", r, ErrInvalidRadius)
	}
	for _, c := range CellsInRadius(x, y, r) {
		if !o.grid.InBounds(c.X, c.Y) {
			return fmt.Errorf("cell (%d,%d): %w", c.X, c.Y, ErrOutOfBounds)
		}
		if o.grid.cell(c.X, c.Y).Occupied {
			return fmt.Errorf("cell (%d,%d): %w", c.X, c.Y, ErrCellOccupied)
		}
	}
	return nil
}

// occupy marks a footprint. Callers have checked availability.
func (o *Occupancy) occupy(x, y, r int, e ecs.Entity) {
	owner := GridCoord{X: x, Y: y}
	for _, c := range CellsInRadius(x, y, r) {
		cell := o.grid.cell(c.X, c.Y)
		cell.Occupied = true
		cell.Owner = owner
	}
	center := o.grid.cell(x, y)
	center.Entity = e
	center.HasEntity = true
}

// vacate clears the cells of a footprint that still belong to its center.
func (o *Occupancy) vacate(x, y, r int) {
	owner := GridCoord{X: x, Y: y}
	for _, c := range CellsInRadius(x, y, r) {
		if !o.grid.InBounds(c.X, c.Y) {
			continue
		}
		cell := o.grid.cell(c.X, c.Y)
		if !cell.Occupied || cell.Owner != owner {
			continue
		}
		cell.Occupied = false
		cell.Owner = GridCoord{}
		cell.Entity = ecs.Entity{}
		cell.HasEntity = false
	}
}

// snapToTile moves the entity and its visual to a tile center.
func (o *Occupancy) snapToTile(e ecs.Entity, x, y int) {
	wx, wy := o.grid.CellCenter(x, y)
	pos := o.posMap.Get(e)
	pos.X, pos.Y = wx, wy
	o.visMap.Get(e).Move(wx, wy, o.rotMap.Get(e).Angle)
}
