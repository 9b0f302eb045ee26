// Package sandbox is the interactive raylib front-end: it turns mouse and
// keyboard input into game commands and draws the grid, bodies and HUD.
package sandbox

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwell/audio"
	"github.com/pthm-cable/gravwell/camera"
	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/game"
	"github.com/pthm-cable/gravwell/renderer"
	"github.com/pthm-cable/gravwell/systems"
	"github.com/pthm-cable/gravwell/telemetry"
	"github.com/pthm-cable/gravwell/ui"
)

// statusFrames is how long a command failure stays in the HUD.
const statusFrames = 150

// Options configures the sandbox.
type Options struct {
	Game           game.Options
	Seed           int64
	StepsPerUpdate int
	Populate       bool // Place the configured scenario at startup
	AutoVolley     bool // Spawn launcher volleys on the configured cadence
	Mute           bool // Start with audio cues silenced
}

// App is the interactive sandbox. Create it after the raylib window.
type App struct {
	game   *game.Game
	cfg    *config.Config
	camera *camera.Camera
	rng    *rand.Rand

	// Rendering
	scene            *renderer.Scene
	background       *renderer.BackgroundRenderer
	field            *renderer.FieldRenderer
	particles        *systems.ParticleSystem
	particleRenderer *renderer.ParticleRenderer
	cues             *audio.Cues

	// UI
	overlays   *ui.OverlayRegistry
	hud        *ui.HUD
	perfPanel  *ui.PerfPanel
	fieldStats *ui.FieldStatsPanel
	inspector  *ui.Inspector
	controls   *ui.ControlsPanel
	toolbar    *ui.Toolbar

	paused         bool
	stepsPerUpdate int
	autoVolley     bool

	screenWidth  float32
	screenHeight float32

	// Pointer state
	hoverX, hoverY int
	hoverValid     bool
	dragging       bool // launch gesture in progress
	moving         bool // relocation gesture in progress
	moveFrom       systems.GridCoord

	frame frameStats

	status      string
	statusTimer int
}

// frameStats is gathered once per frame from the entity summaries.
type frameStats struct {
	counts    []int
	movers    int
	unindexed int
	damaged   []game.EntitySummary
}

// New creates the sandbox and its game.
func New(opts Options) (*App, error) {
	cfg := opts.Game.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(""); err != nil {
			return nil, err
		}
		opts.Game.Config = cfg
	}

	scene := renderer.NewScene(cfg.Grid.TileSize)
	opts.Game.Visuals = func(kind components.Kind, radiusTiles int) components.VisualHandle {
		return scene.NewSprite(kind, radiusTiles)
	}

	g, err := game.NewGameWithOptions(opts.Game)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())

	a := &App{
		game:             g,
		cfg:              cfg,
		camera:           camera.New(screenW, screenH, float32(cfg.Derived.WorldW), float32(cfg.Derived.WorldH)),
		rng:              rand.New(rand.NewSource(opts.Seed)),
		scene:            scene,
		background:       renderer.NewBackgroundRenderer(cfg.Derived.WorldW, cfg.Derived.WorldH, opts.Seed),
		field:            renderer.NewFieldRenderer(),
		particles:        systems.NewParticleSystem(opts.Seed),
		particleRenderer: renderer.NewParticleRenderer(),
		cues:             audio.NewCues(),
		overlays:         ui.NewOverlayRegistry(),
		hud:              ui.NewHUD(),
		perfPanel:        ui.NewPerfPanel(0, 0),
		fieldStats:       ui.NewFieldStatsPanel(0, 0, 230),
		inspector:        ui.NewInspector(0, 0, 220),
		controls:         ui.NewControlsPanel(10, 110, 220),
		toolbar:          ui.NewToolbar(),
		stepsPerUpdate:   steps,
		autoVolley:       opts.AutoVolley,
		screenWidth:      screenW,
		screenHeight:     screenH,
		frame:            frameStats{counts: make([]int, components.KindCount())},
	}

	if err := a.cues.Initialize(); err != nil {
		slog.Warn("audio unavailable", "error", err)
	}
	a.cues.SetMuted(opts.Mute)

	if opts.Populate {
		g.Populate(a.rng)
	}

	slog.Info("sandbox started",
		"seed", opts.Seed,
		"screen_w", screenW,
		"screen_h", screenH,
		"entities", g.EntityCount(),
	)
	return a, nil
}

// Game returns the underlying game.
func (a *App) Game() *game.Game {
	return a.game
}

// Update processes input and advances the simulation.
func (a *App) Update() {
	a.handleInput()

	if !a.paused {
		dt := game.FrameDT(a.cfg.Physics.DT, float64(rl.GetFrameTime()), a.cfg.Screen.TargetFPS)
		for i := 0; i < a.stepsPerUpdate; i++ {
			a.step(dt)
		}
	}

	a.particles.Update()
	a.cues.EndFrame()
	if a.statusTimer > 0 {
		a.statusTimer--
	}
}

// step runs one simulation tick of dt.
func (a *App) step(dt float64) {
	if a.autoVolley && a.game.VolleyDue() {
		a.game.SpawnVolley(a.rng)
	}
	a.handleEvents(a.game.Tick(dt))
}

// handleEvents forwards tick side effects to the effects and audio layers.
func (a *App) handleEvents(events []telemetry.Event) {
	for _, ev := range events {
		switch ev.Type {
		case telemetry.EventExplosion:
			a.particles.EmitExplosion(float32(ev.X), float32(ev.Y), float32(ev.Scale))
			a.cues.Explosion(ev.Scale)
		case telemetry.EventImpact:
			a.cues.Impact(ev.Speed / a.impactSpeed())
		case telemetry.EventLaunched:
			a.cues.Launch()
		case telemetry.EventDestroyed:
			slog.Debug("body destroyed", "kind", ev.Kind.String(), "tick", ev.Tick)
		}
	}
}

// impactSpeed is the impactor speed that plays the loudest thud.
func (a *App) impactSpeed() float64 {
	if a.cfg.Physics.MaxSpeed > 0 {
		return a.cfg.Physics.MaxSpeed
	}
	return 8
}

// Reset clears the world and all effects.
func (a *App) Reset() {
	a.game.Reset()
	a.particles.Clear()
	a.scene.Clear()
	a.dragging = false
	a.moving = false
}

// Unload frees rendering resources and closes game output.
func (a *App) Unload() {
	a.cues.Cleanup()
	a.background.Unload()
	a.game.Unload()
}

// issue applies a command now when paused, or queues it for the next
// tick. Failures are shown in the HUD either way.
func (a *App) issue(cmd game.Command) {
	if a.paused {
		if err := cmd.Apply(a.game); err != nil {
			a.setStatus(err)
		}
		return
	}
	a.game.Submit(reportedCommand{cmd: cmd, app: a})
}

// reportedCommand surfaces the failure of a queued command.
type reportedCommand struct {
	cmd game.Command
	app *App
}

// Apply implements game.Command.
func (c reportedCommand) Apply(g *game.Game) error {
	err := c.cmd.Apply(g)
	if err != nil {
		c.app.setStatus(err)
	}
	return err
}

func (a *App) setStatus(err error) {
	a.status = err.Error()
	a.statusTimer = statusFrames
}

// collectFrame gathers per-kind counts and damaged bodies.
func (a *App) collectFrame() {
	f := &a.frame
	for i := range f.counts {
		f.counts[i] = 0
	}
	f.movers = 0
	f.unindexed = 0
	f.damaged = f.damaged[:0]

	a.game.ForEachEntity(func(s game.EntitySummary) {
		if int(s.Kind) < len(f.counts) {
			f.counts[s.Kind]++
		}
		if s.Moving() {
			f.movers++
			if !s.Indexed {
				f.unindexed++
			}
		}
		if !s.Kind.Invulnerable() && s.Health < s.MaxHealth {
			f.damaged = append(f.damaged, s)
		}
	})
}
