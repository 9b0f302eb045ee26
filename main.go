package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/game"
	"github.com/pthm-cable/gravwell/sandbox"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in simulated time (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for bookmark scene dumps")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call")
	populate := flag.Bool("populate", true, "Place the configured scenario at startup")
	autoVolley := flag.Bool("auto-volley", false, "Spawn launcher volleys in graphical mode (always on headless)")
	mute := flag.Bool("mute", false, "Start with audio cues silenced")
	logEvery := flag.Int("log-every", 600, "Headless ticks between world state logs (0 = never)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Config:         cfg,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
	}

	if *headless {
		runHeadless(opts, rngSeed, *maxTicks, *populate, *logEvery)
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Gravwell")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	app, err := sandbox.New(sandbox.Options{
		Game:           opts,
		Seed:           rngSeed,
		StepsPerUpdate: *stepsPerUpdate,
		Populate:       *populate,
		AutoVolley:     *autoVolley,
		Mute:           *mute,
	})
	if err != nil {
		slog.Error("failed to start sandbox", "error", err)
		return
	}
	defer app.Unload()

	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()

		if *maxTicks > 0 && int(app.Game().CurrentTick()) >= *maxTicks {
			break
		}
	}
}

// runHeadless drives the engine without raylib: scenario bodies, periodic
// launcher volleys and fixed-dt ticks.
func runHeadless(opts game.Options, seed int64, maxTicks int, populate bool, logEvery int) {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	rng := rand.New(rand.NewSource(seed))
	if populate {
		g.Populate(rng)
	}

	slog.Info("starting headless simulation",
		"seed", seed,
		"max_ticks", maxTicks,
		"dt", opts.Config.Physics.DT,
	)

	for {
		if g.VolleyDue() {
			g.SpawnVolley(rng)
		}
		g.Tick(opts.Config.Physics.DT)

		tick := int(g.CurrentTick())
		if logEvery > 0 && tick%logEvery == 0 {
			g.LogWorldState()
		}
		if maxTicks > 0 && tick >= maxTicks {
			slog.Info("max ticks reached", "tick", tick)
			g.LogWorldState()
			return
		}
	}
}
