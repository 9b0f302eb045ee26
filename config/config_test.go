package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Grid.TileSize != 32 {
		t.Errorf("tile size = %v, want 32", cfg.Grid.TileSize)
	}
	// 1280x800 screen at 32 units per tile
	if cfg.Derived.GridW != 40 || cfg.Derived.GridH != 25 {
		t.Errorf("derived grid = %dx%d, want 40x25", cfg.Derived.GridW, cfg.Derived.GridH)
	}

	tests := []struct {
		kind     string
		radius   int
		strength float64
	}{
		{KindPlanet, 35, 0.5},
		{KindBlackHole, 30, 1.0},
		{KindAsteroid, 10, 0.1},
	}
	for _, tt := range tests {
		src, ok := cfg.Source(tt.kind)
		if !ok {
			t.Errorf("no gravity source for %s", tt.kind)
			continue
		}
		if src.Radius != tt.radius || src.Strength != tt.strength {
			t.Errorf("%s source = (%d, %v), want (%d, %v)", tt.kind, src.Radius, src.Strength, tt.radius, tt.strength)
		}
	}

	if _, ok := cfg.Source(KindProjectile); ok {
		t.Error("projectiles should not project gravity")
	}
	if cfg.Collision.Damage != 100 {
		t.Errorf("collision damage = %d, want 100", cfg.Collision.Damage)
	}
	if cfg.Trajectory.Steps != 200 || cfg.Trajectory.MaxSpeed != 8 {
		t.Errorf("trajectory = (%d, %v), want (200, 8)", cfg.Trajectory.Steps, cfg.Trajectory.MaxSpeed)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("grid:\n  width: 10\n  height: 12\n  tile_size: 64\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Derived.GridW != 10 || cfg.Derived.GridH != 12 {
		t.Errorf("derived grid = %dx%d, want 10x12", cfg.Derived.GridW, cfg.Derived.GridH)
	}
	if cfg.Derived.WorldW != 640 {
		t.Errorf("world width = %v, want 640", cfg.Derived.WorldW)
	}
	// Untouched sections keep defaults
	if cfg.Collision.Damage != 100 {
		t.Errorf("collision damage = %d, want default 100", cfg.Collision.Damage)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero tile size", "grid:\n  tile_size: 0\n"},
		{"negative source radius", "gravity:\n  sources:\n    planet:\n      radius: -1\n      strength: 0.5\n"},
		{"negative footprint", "kinds:\n  asteroid:\n    radius_tiles: -2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := MustLoad("")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if again.Derived != cfg.Derived {
		t.Errorf("derived config changed: %+v vs %+v", again.Derived, cfg.Derived)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	c := cfg.Clone()

	src := c.Gravity.Sources["planet"]
	src.Strength = 9
	c.Gravity.Sources["planet"] = src
	kind := c.Kinds["planet"]
	kind.MaxHealth = 1
	c.Kinds["planet"] = kind
	c.Scenario.LaunchSpeed = 99

	if got := cfg.Gravity.Sources["planet"].Strength; got == 9 {
		t.Error("clone shares gravity sources with the original")
	}
	if got := cfg.Kinds["planet"].MaxHealth; got == 1 {
		t.Error("clone shares kinds with the original")
	}
	if cfg.Scenario.LaunchSpeed == 99 {
		t.Error("clone shares scenario with the original")
	}
	if c.Derived != cfg.Derived {
		t.Errorf("clone derived = %+v, want %+v", c.Derived, cfg.Derived)
	}
}
