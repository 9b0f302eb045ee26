package game

import (
	"log/slog"

	"github.com/pthm-cable/gravwell/components"
)

// LogWorldState logs entity counts per kind and the state of the field.
func (g *Game) LogWorldState() {
	counts := make([]int, components.KindCount())
	var movers, unindexed int

	query := g.entityFilter.Query()
	for query.Next() {
		_, vel, _, body, _, tile, _ := query.Get()
		if int(body.Kind) < len(counts) {
			counts[body.Kind]++
		}
		if vel.Moving() {
			movers++
			if !tile.Indexed {
				unindexed++
			}
		}
	}

	attrs := make([]any, 0, 2*len(counts)+10)
	attrs = append(attrs, "tick", g.tick)
	for i, n := range counts {
		attrs = append(attrs, components.Kind(i).String(), n)
	}
	attrs = append(attrs,
		"movers", movers,
		"unindexed", unindexed,
		"occupied_cells", g.grid.OccupiedCount(),
		"field_max", g.grid.MaxGravity(),
	)
	slog.Info("world", attrs...)
}
