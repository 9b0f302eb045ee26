// Package game orchestrates the sandbox engine: placement, launch gestures,
// per-tick motion and telemetry. It has no rendering dependency; front-ends
// drive it through commands and direct calls.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/systems"
	"github.com/pthm-cable/gravwell/telemetry"
)

// Options configures game creation.
type Options struct {
	Config         *config.Config // nil = embedded defaults
	LogStats       bool           // Output stats via slog
	StatsWindowSec float64        // Stats window size in simulated time (0 = use config)
	SnapshotDir    string         // Directory for bookmark scene dumps (empty = disabled)
	OutputDir      string         // Directory for CSV output (empty = disabled)
	Visuals        VisualFactory  // Creates handles for entities placed without one (nil = none)
}

// VisualFactory creates the rendering handle for a new entity.
type VisualFactory func(kind components.Kind, radiusTiles int) components.VisualHandle

// Game holds the complete engine state.
type Game struct {
	cfg   *config.Config
	world *ecs.World

	grid   *systems.Grid
	occ    *systems.Occupancy
	motion *systems.MotionSystem

	// Entity mapper and filter over the full component set
	entityMapper *ecs.Map7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Health,
		components.Tile,
		components.Visual,
	]
	entityFilter *ecs.Filter7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Health,
		components.Tile,
		components.Visual,
	]

	// Individual component mappers for lookups
	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	bodyMap   *ecs.Map1[components.Body]
	healthMap *ecs.Map1[components.Health]
	tileMap   *ecs.Map1[components.Tile]
	visMap    *ecs.Map1[components.Visual]

	// Queued commands, drained at the start of each tick
	commands []Command
	// Events produced by direct calls, returned by the next tick
	pending []telemetry.Event

	launch  launchState
	visuals VisualFactory

	tick int32

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	snapshotDir      string
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
}

// NewGame creates a game with default options.
func NewGame() (*Game, error) {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a game with the given options.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load("")
		if err != nil {
			return nil, err
		}
	}
	if cfg.Derived.GridW <= 0 || cfg.Derived.GridH <= 0 {
		return nil, fmt.Errorf("grid size %dx%d must be positive", cfg.Derived.GridW, cfg.Derived.GridH)
	}

	world := ecs.NewWorld()

	g := &Game{
		cfg:   cfg,
		world: world,
		entityMapper: ecs.NewMap7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Health,
			components.Tile,
			components.Visual,
		](world),
		entityFilter: ecs.NewFilter7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Health,
			components.Tile,
			components.Visual,
		](world),
		posMap:      ecs.NewMap1[components.Position](world),
		velMap:      ecs.NewMap1[components.Velocity](world),
		bodyMap:     ecs.NewMap1[components.Body](world),
		healthMap:   ecs.NewMap1[components.Health](world),
		tileMap:     ecs.NewMap1[components.Tile](world),
		visMap:      ecs.NewMap1[components.Visual](world),
		visuals:     opts.Visuals,
		snapshotDir: opts.SnapshotDir,
		logStats:    opts.LogStats,
	}

	g.grid = systems.NewGrid(systems.GridConfig{
		Width:    cfg.Derived.GridW,
		Height:   cfg.Derived.GridH,
		TileSize: cfg.Grid.TileSize,
	})
	g.occ = systems.NewOccupancy(world, g.grid, cfg)
	g.motion = systems.NewMotionSystem(world, g.occ, cfg)

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Physics.DT)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	slog.Info("game created",
		"grid_w", cfg.Derived.GridW,
		"grid_h", cfg.Derived.GridH,
		"tile_size", cfg.Grid.TileSize,
	)

	return g, nil
}

// Tick advances the simulation by dt and returns the side effects produced
// since the previous tick: those of queued commands and direct calls first,
// then those of motion and collision resolution.
func (g *Game) Tick(dt float64) []telemetry.Event {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseCommands)
	g.drainCommands()

	g.perfCollector.StartPhase(telemetry.PhaseMotion)
	events := append(g.pending, g.motion.Update(dt)...)
	g.pending = nil

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	for i := range events {
		events[i].Tick = g.tick
	}
	g.collector.RecordAll(events)
	if err := g.outputManager.WriteEvents(events); err != nil {
		slog.Error("failed to write events", "error", err)
	}
	g.flushTelemetry()

	g.perfCollector.EndTick()
	return events
}

// maxFrameScale caps how many nominal steps one slow frame may cover, so a
// stall cannot carry a mover through a body in one integration.
const maxFrameScale = 3

// FrameDT scales the nominal step dt by how long the last frame took
// relative to a frame at targetFPS. A non-positive frame time or target
// falls back to dt.
func FrameDT(dt, frameSeconds float64, targetFPS int) float64 {
	if frameSeconds <= 0 || targetFPS <= 0 {
		return dt
	}
	return dt * min(frameSeconds*float64(targetFPS), maxFrameScale)
}

// Reset removes every entity and clears the grid, including its field.
func (g *Game) Reset() {
	var all []ecs.Entity
	query := g.entityFilter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}

	for _, e := range all {
		g.visMap.Get(e).Detach()
		g.world.RemoveEntity(e)
	}
	g.grid.Reset()
	g.commands = nil
	g.pending = nil
	g.launch = launchState{}
	g.collector.Reset(g.tick)

	slog.Info("game reset", "tick", g.tick, "removed", len(all))
}

// Unload flushes and closes telemetry output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// CurrentTick returns the number of ticks run.
func (g *Game) CurrentTick() int32 {
	return g.tick
}

// Config returns the game configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Grid returns the tile grid. Callers must treat it as read-only.
func (g *Game) Grid() *systems.Grid {
	return g.grid
}

// PerfStats returns the rolling performance statistics.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// RecordFrame marks a rendered frame for FPS tracking.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// SetStatsCallback registers fn to receive every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// EntityCount returns the number of live entities.
func (g *Game) EntityCount() int {
	n := 0
	query := g.entityFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// ForEachEntity calls fn with the summary of every live entity.
// fn must not call back into the game.
func (g *Game) ForEachEntity(fn func(EntitySummary)) {
	query := g.entityFilter.Query()
	for query.Next() {
		pos, vel, _, body, health, tile, _ := query.Get()
		fn(summarize(query.Entity(), pos, vel, body, health, tile))
	}
}
