package game

import (
	"log/slog"

	"github.com/pthm-cable/gravwell/telemetry"
)

// flushTelemetry closes the stats window when it is due: window and perf
// rows go to the stats callback, the log and the output files, and every
// bookmark the window raises is recorded with an optional scene dump.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}
	window := g.collector.Flush(g.tick, g.sampleField())
	perf := g.perfCollector.Stats()
	g.publishWindow(window, perf)

	for _, bm := range g.bookmarkDetector.Check(window) {
		g.recordBookmark(bm)
	}
}

func (g *Game) publishWindow(window telemetry.WindowStats, perf telemetry.PerfStats) {
	if g.statsCallback != nil {
		g.statsCallback(window)
	}
	if g.logStats {
		window.LogStats()
		perf.LogStats()
	}
	if err := g.outputManager.WriteTelemetry(window); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perf, window.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

func (g *Game) recordBookmark(bm telemetry.Bookmark) {
	if g.logStats {
		bm.LogBookmark()
	}
	if err := g.outputManager.WriteBookmark(bm); err != nil {
		slog.Error("failed to write bookmark", "error", err)
	}
	if g.snapshotDir == "" {
		return
	}
	path, err := telemetry.SaveSnapshot(g.createSnapshot(&bm), g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick, "bookmark", string(bm.Type))
}

// sampleField gathers the end-of-window world state.
func (g *Game) sampleField() telemetry.FieldSample {
	sample := telemetry.FieldSample{
		OccupiedCells: g.grid.OccupiedCount(),
		Magnitudes:    g.grid.GravityMagnitudes(),
	}
	g.ForEachEntity(func(s EntitySummary) {
		sample.Entities++
		if s.Moving() {
			sample.Movers++
		}
	})
	return sample
}

// createSnapshot dumps the grid shape and every live entity.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	s := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		Tick:       g.tick,
		GridWidth:  g.grid.Width(),
		GridHeight: g.grid.Height(),
		TileSize:   g.grid.TileSize(),
		Bookmark:   bookmark,
	}

	query := g.entityFilter.Query()
	for query.Next() {
		pos, vel, rot, body, health, tile, _ := query.Get()
		s.Entities = append(s.Entities, telemetry.EntityState{
			Kind:    body.Kind.String(),
			TileX:   tile.X,
			TileY:   tile.Y,
			Indexed: tile.Indexed,
			X:       pos.X,
			Y:       pos.Y,
			VelX:    vel.X,
			VelY:    vel.Y,
			Angle:   rot.Angle,
			Health:  health.Value,
		})
	}
	return s
}
