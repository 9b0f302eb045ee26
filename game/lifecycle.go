package game

import (
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/components"
)

// Populate places the configured scenario bodies at random free cells.
// Returns the number placed; a body that finds no free cell is skipped.
func (g *Game) Populate(rng *rand.Rand) int {
	sc := g.cfg.Scenario
	plan := []struct {
		kind  components.Kind
		count int
	}{
		{components.KindPlanet, sc.Planets},
		{components.KindBlackHole, sc.BlackHoles},
		{components.KindAsteroid, sc.Asteroids},
	}

	placed := 0
	for _, p := range plan {
		for i := 0; i < p.count; i++ {
			if g.placeRandom(rng, p.kind) {
				placed++
			}
		}
	}

	slog.Info("scenario populated", "placed", placed, "entities", g.EntityCount())
	return placed
}

// SpawnVolley places launchers on random edge cells and fires them toward
// the grid center with some spread. Returns the number launched.
func (g *Game) SpawnVolley(rng *rand.Rand) int {
	sc := g.cfg.Scenario
	cx := float64(g.grid.Width()) * g.grid.TileSize() / 2
	cy := float64(g.grid.Height()) * g.grid.TileSize() / 2

	launched := 0
	for i := 0; i < sc.VolleySize; i++ {
		gx, gy, ok := g.freeEdgeCell(rng, components.KindProjectile)
		if !ok {
			continue
		}
		e, err := g.PlaceEntity(gx, gy, EntitySpec{Kind: components.KindProjectile})
		if err != nil {
			continue
		}

		pos := g.posMap.Get(e)
		angle := math.Atan2(cy-pos.Y, cx-pos.X) + (rng.Float64()*2-1)*sc.LaunchSpread
		v := r2.Vec{X: math.Cos(angle) * sc.LaunchSpeed, Y: math.Sin(angle) * sc.LaunchSpeed}
		g.launchEntity(e, v)
		launched++
	}
	return launched
}

// VolleyDue reports whether a volley should be spawned this tick.
func (g *Game) VolleyDue() bool {
	every := g.cfg.Scenario.VolleyEvery
	return every > 0 && g.tick%int32(every) == 0
}

// placeRandom tries random cells until kind is placed. Candidates are
// inset by the footprint radius so they never cross the grid edge.
func (g *Game) placeRandom(rng *rand.Rand, kind components.Kind) bool {
	kc, ok := g.cfg.Kind(kind.String())
	if !ok {
		return false
	}
	margin := kc.RadiusTiles
	w, h := g.grid.Width()-2*margin, g.grid.Height()-2*margin
	if w <= 0 || h <= 0 {
		return false
	}
	for attempt := 0; attempt < g.placeAttempts(); attempt++ {
		gx := margin + rng.Intn(w)
		gy := margin + rng.Intn(h)
		if _, err := g.PlaceEntity(gx, gy, EntitySpec{Kind: kind}); err == nil {
			return true
		}
	}
	return false
}

// freeEdgeCell picks a random cell on the grid border that can hold kind.
func (g *Game) freeEdgeCell(rng *rand.Rand, kind components.Kind) (int, int, bool) {
	kc, ok := g.cfg.Kind(kind.String())
	if !ok {
		return 0, 0, false
	}
	// Inset so the whole footprint stays in bounds
	inset := kc.RadiusTiles
	w, h := g.grid.Width(), g.grid.Height()
	if w <= 2*inset || h <= 2*inset {
		return 0, 0, false
	}

	for attempt := 0; attempt < g.placeAttempts(); attempt++ {
		var gx, gy int
		switch rng.Intn(4) {
		case 0:
			gx, gy = inset+rng.Intn(w-2*inset), inset
		case 1:
			gx, gy = inset+rng.Intn(w-2*inset), h-1-inset
		case 2:
			gx, gy = inset, inset+rng.Intn(h-2*inset)
		default:
			gx, gy = w-1-inset, inset+rng.Intn(h-2*inset)
		}
		if cell, err := g.grid.CellAt(gx, gy); err == nil && !cell.Occupied {
			return gx, gy, true
		}
	}
	return 0, 0, false
}

func (g *Game) placeAttempts() int {
	if n := g.cfg.Scenario.PlaceAttempts; n > 0 {
		return n
	}
	return 1
}
