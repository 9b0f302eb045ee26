package main

import (
	"testing"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/game"
)

func newTestGame(t *testing.T, w, h int) *game.Game {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Derived.GridW, cfg.Derived.GridH = w, h
	cfg.Derived.WorldW = float64(w) * cfg.Grid.TileSize
	cfg.Derived.WorldH = float64(h) * cfg.Grid.TileSize
	g, err := game.NewGameWithOptions(game.Options{Config: cfg})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestViewRender(t *testing.T) {
	g := newTestGame(t, 40, 20)
	if _, err := g.PlaceEntity(20, 10, game.EntitySpec{Kind: components.KindPlanet}); err != nil {
		t.Fatalf("place planet: %v", err)
	}
	if _, err := g.PlaceEntity(2, 2, game.EntitySpec{Kind: components.KindProjectile}); err != nil {
		t.Fatalf("place projectile: %v", err)
	}

	v := newView(20, 10)
	v.render(g)

	if got := v.at(10, 5); !got.body || got.r != 'O' {
		t.Errorf("planet cell = %+v, want body 'O'", got)
	}
	if got := v.at(1, 1); !got.body || got.r != '\'' {
		t.Errorf("projectile cell = %+v, want body '\\''", got)
	}
	if got := v.at(0, 9); got.body || got.r == ' ' {
		t.Errorf("corner cell = %+v, want a field shade", got)
	}
}

func TestViewRenderEmpty(t *testing.T) {
	g := newTestGame(t, 10, 10)
	v := newView(5, 5)
	v.render(g)
	for y := 0; y < v.h; y++ {
		for x := 0; x < v.w; x++ {
			if got := v.at(x, y); got.r != ' ' || got.body {
				t.Fatalf("cell (%d,%d) = %+v, want blank", x, y, got)
			}
		}
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		i, size, n int
		lo, hi     int
	}{
		{0, 10, 40, 0, 4},
		{9, 10, 40, 36, 40},
		{3, 10, 5, 1, 2}, // more slots than cells
		{9, 10, 5, 4, 5},
	}
	for _, tt := range tests {
		lo, hi := span(tt.i, tt.size, tt.n)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("span(%d, %d, %d) = %d, %d; want %d, %d", tt.i, tt.size, tt.n, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestShade(t *testing.T) {
	if got := shade(0, 1); got != ' ' {
		t.Errorf("shade(0) = %q, want ' '", got)
	}
	if got := shade(1, 1); got != shades[len(shades)-1] {
		t.Errorf("shade(max) = %q, want %q", got, shades[len(shades)-1])
	}
	if got := shade(0.01, 1); got != '.' {
		t.Errorf("shade(weak) = %q, want '.'", got)
	}
	if got := shade(1, 0); got != ' ' {
		t.Errorf("shade with empty field = %q, want ' '", got)
	}
}
