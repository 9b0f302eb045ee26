// Package config provides configuration loading and access for the sandbox.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Kind names used as keys in the kinds and gravity.sources maps.
const (
	KindPlanet     = "planet"
	KindAsteroid   = "asteroid"
	KindBlackHole  = "black_hole"
	KindTurret     = "turret"
	KindProjectile = "projectile"
)

// Config holds all sandbox configuration parameters.
type Config struct {
	Screen     ScreenConfig          `yaml:"screen"`
	Grid       GridConfig            `yaml:"grid"`
	Physics    PhysicsConfig         `yaml:"physics"`
	Gravity    GravityConfig         `yaml:"gravity"`
	Kinds      map[string]KindConfig `yaml:"kinds"`
	Collision  CollisionConfig       `yaml:"collision"`
	Launch     LaunchConfig          `yaml:"launch"`
	Trajectory TrajectoryConfig      `yaml:"trajectory"`
	Telemetry  TelemetryConfig       `yaml:"telemetry"`
	Scenario   ScenarioConfig        `yaml:"scenario"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds tile grid dimensions.
// Zero width or height is derived from the screen size and tile size.
type GridConfig struct {
	Width    int     `yaml:"width"`     // Tiles across (0 = screen width / tile size)
	Height   int     `yaml:"height"`    // Tiles down (0 = screen height / tile size)
	TileSize float64 `yaml:"tile_size"` // World units per tile side
}

// PhysicsConfig holds motion integration parameters.
type PhysicsConfig struct {
	DT                 float64 `yaml:"dt"`                    // Nominal step delta, scaled by frame time in the sandbox
	MaxSpeed           float64 `yaml:"max_speed"`             // Speed clamp for moving entities (0 = none)
	DespawnOutOfBounds bool    `yaml:"despawn_out_of_bounds"` // Remove entities that leave the grid
}

// GravityConfig holds gravity source parameters keyed by kind name.
type GravityConfig struct {
	RetractOnRemove bool                    `yaml:"retract_on_remove"` // Subtract a source's field when it is removed
	Sources         map[string]SourceConfig `yaml:"sources"`
}

// SourceConfig is the radial field a kind projects when placed.
type SourceConfig struct {
	Radius   int     `yaml:"radius"`   // Field radius in tiles
	Strength float64 `yaml:"strength"` // Constant acceleration magnitude inside the radius
}

// KindConfig holds per-kind entity parameters.
type KindConfig struct {
	RadiusTiles int     `yaml:"radius_tiles"` // Footprint radius in tiles
	MaxHealth   int     `yaml:"max_health"`
	Immutable   bool    `yaml:"immutable"`  // Valid collision target, cannot be relocated by the player
	Launchable  bool    `yaml:"launchable"` // Can be given velocity by a drag gesture
	Spin        float64 `yaml:"spin"`       // Visual rotation speed (radians per unit dt)
}

// CollisionConfig holds impact resolution parameters.
type CollisionConfig struct {
	Damage                int     `yaml:"damage"`                  // Damage applied to the struck body
	ImpactExplosionScale  float64 `yaml:"impact_explosion_scale"`  // Explosion scale at the impact point
	DestroyExplosionScale float64 `yaml:"destroy_explosion_scale"` // Explosion scale when a body is destroyed or removed
}

// LaunchConfig holds drag-to-launch parameters.
type LaunchConfig struct {
	VelocityScale float64 `yaml:"velocity_scale"` // World velocity per screen unit of drag
}

// TrajectoryConfig holds aim preview parameters.
type TrajectoryConfig struct {
	Steps    int     `yaml:"steps"`     // Maximum simulated steps
	MaxSpeed float64 `yaml:"max_speed"` // Speed clamp per step
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds of simulated time per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Ticks averaged by the perf collector
}

// ScenarioConfig holds the seeded setup used by headless runs.
type ScenarioConfig struct {
	Planets       int     `yaml:"planets"`
	Asteroids     int     `yaml:"asteroids"`
	BlackHoles    int     `yaml:"black_holes"`
	VolleyEvery   int     `yaml:"volley_every"`   // Ticks between launcher volleys (0 = none)
	VolleySize    int     `yaml:"volley_size"`    // Launchers per volley
	LaunchSpeed   float64 `yaml:"launch_speed"`   // Initial speed of volley launchers
	LaunchSpread  float64 `yaml:"launch_spread"`  // Max aim deviation from the grid center (radians)
	PlaceAttempts int     `yaml:"place_attempts"` // Random cells tried per entity before giving up
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	GridW, GridH int     // Effective grid dimensions in tiles
	WorldW       float64 // GridW * TileSize
	WorldH       float64 // GridH * TileSize
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// validate rejects values the engine cannot run with.
func (c *Config) validate() error {
	if c.Grid.TileSize <= 0 {
		return fmt.Errorf("grid.tile_size must be positive, got %v", c.Grid.TileSize)
	}
	for name, src := range c.Gravity.Sources {
		if src.Radius < 0 {
			return fmt.Errorf("gravity.sources.%s: negative radius %d", name, src.Radius)
		}
		if math.IsNaN(src.Strength) || math.IsInf(src.Strength, 0) {
			return fmt.Errorf("gravity.sources.%s: non-finite strength", name)
		}
	}
	if c.Scenario.VolleyEvery < 0 || c.Scenario.VolleySize < 0 {
		return fmt.Errorf("scenario: negative volley settings")
	}
	for name, k := range c.Kinds {
		if k.RadiusTiles < 0 {
			return fmt.Errorf("kinds.%s: negative radius_tiles %d", name, k.RadiusTiles)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// Grid dimensions default to whatever fits on screen
	gw := c.Grid.Width
	if gw == 0 {
		gw = int(float64(c.Screen.Width) / c.Grid.TileSize)
	}
	gh := c.Grid.Height
	if gh == 0 {
		gh = int(float64(c.Screen.Height) / c.Grid.TileSize)
	}
	c.Derived.GridW = gw
	c.Derived.GridH = gh
	c.Derived.WorldW = float64(gw) * c.Grid.TileSize
	c.Derived.WorldH = float64(gh) * c.Grid.TileSize

	if c.Kinds == nil {
		c.Kinds = make(map[string]KindConfig)
	}
	if c.Gravity.Sources == nil {
		c.Gravity.Sources = make(map[string]SourceConfig)
	}
}

// Kind returns the parameters for a kind name.
func (c *Config) Kind(name string) (KindConfig, bool) {
	k, ok := c.Kinds[name]
	return k, ok
}

// Source returns the gravity source parameters for a kind name.
// ok is false for kinds that project no field.
func (c *Config) Source(name string) (SourceConfig, bool) {
	s, ok := c.Gravity.Sources[name]
	return s, ok
}

// Clone returns a deep copy, so per-run edits never leak into c.
func (c *Config) Clone() *Config {
	out := *c
	out.Kinds = make(map[string]KindConfig, len(c.Kinds))
	for k, v := range c.Kinds {
		out.Kinds[k] = v
	}
	out.Gravity.Sources = make(map[string]SourceConfig, len(c.Gravity.Sources))
	for k, v := range c.Gravity.Sources {
		out.Gravity.Sources[k] = v
	}
	return &out
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
