package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/config"
)

const epsilon = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// fakeVisual records what the engine does with a visual handle.
type fakeVisual struct {
	x, y, angle float64
	moves       int
	attached    bool
	detaches    int
}

func (v *fakeVisual) SetPosition(x, y, angle float64) {
	v.x, v.y, v.angle = x, y, angle
	v.moves++
}

func (v *fakeVisual) Attach() { v.attached = true }

func (v *fakeVisual) Detach() {
	v.attached = false
	v.detaches++
}

// fixture wires a world, grid and occupancy manager for tests.
type fixture struct {
	cfg    *config.Config
	world  *ecs.World
	grid   *Grid
	occ    *Occupancy
	mapper *ecs.Map7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Health,
		components.Tile,
		components.Visual,
	]
	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	healthMap *ecs.Map1[components.Health]
	tileMap   *ecs.Map1[components.Tile]
}

// newFixture creates a w x h grid with the given tile size.
// Gravity sources are disabled unless withGravity is set.
func newFixture(t *testing.T, w, h int, tileSize float64, withGravity bool) *fixture {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if !withGravity {
		cfg.Gravity.Sources = map[string]config.SourceConfig{}
	}

	world := ecs.NewWorld()
	grid := NewGrid(GridConfig{Width: w, Height: h, TileSize: tileSize})
	return &fixture{
		cfg:   cfg,
		world: world,
		grid:  grid,
		occ:   NewOccupancy(world, grid, cfg),
		mapper: ecs.NewMap7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Health,
			components.Tile,
			components.Visual,
		](world),
		posMap:    ecs.NewMap1[components.Position](world),
		velMap:    ecs.NewMap1[components.Velocity](world),
		healthMap: ecs.NewMap1[components.Health](world),
		tileMap:   ecs.NewMap1[components.Tile](world),
	}
}

// spawn creates an unplaced entity of the given kind.
func (f *fixture) spawn(t *testing.T, kind components.Kind) (ecs.Entity, *fakeVisual) {
	t.Helper()
	body, ok := components.BodyFromConfig(kind, f.cfg)
	if !ok {
		t.Fatalf("no config for kind %s", kind)
	}
	kc, _ := f.cfg.Kind(kind.String())

	vis := &fakeVisual{attached: true}
	pos := components.Position{}
	vel := components.Velocity{}
	rot := components.Rotation{Spin: kc.Spin}
	health := components.Health{Value: kc.MaxHealth, Max: kc.MaxHealth}
	tile := components.Tile{}
	visual := components.Visual{Handle: vis}
	e := f.mapper.NewEntity(&pos, &vel, &rot, &body, &health, &tile, &visual)
	return e, vis
}

// place spawns and places an entity, failing the test on error.
func (f *fixture) place(t *testing.T, kind components.Kind, x, y int) ecs.Entity {
	t.Helper()
	e, _ := f.spawn(t, kind)
	if err := f.occ.Place(x, y, e); err != nil {
		t.Fatalf("placing %s at (%d,%d): %v", kind, x, y, err)
	}
	return e
}

// gravitySnapshot copies every cell's gravity vector.
func (f *fixture) gravitySnapshot() []Cell {
	out := make([]Cell, len(f.grid.cells))
	copy(out, f.grid.cells)
	return out
}
