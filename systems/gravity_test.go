package systems

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestApplyFieldPlanetScenario(t *testing.T) {
	g := NewGrid(GridConfig{Width: 10, Height: 10, TileSize: 32})
	if err := ApplyField(g, 5, 5, 35, 0.5); err != nil {
		t.Fatalf("ApplyField: %v", err)
	}

	if v := g.GravityAt(5, 5); v.X != 0 || v.Y != 0 {
		t.Errorf("source cell gravity = %v, want zero", v)
	}

	v := g.GravityAt(0, 0)
	if !approxEqual(r2.Norm(v), 0.5, 1e-9) {
		t.Errorf("|g(0,0)| = %v, want 0.5", r2.Norm(v))
	}
	want := 0.5 / math.Sqrt2
	if !approxEqual(v.X, want, 1e-4) || !approxEqual(v.Y, want, 1e-4) {
		t.Errorf("g(0,0) = %v, want (%.4f, %.4f)", v, want, want)
	}

	// Every other cell has the same magnitude since there is no falloff
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if x == 5 && y == 5 {
				continue
			}
			if n := r2.Norm(g.GravityAt(x, y)); !approxEqual(n, 0.5, 1e-9) {
				t.Fatalf("|g(%d,%d)| = %v, want 0.5", x, y, n)
			}
		}
	}
}

func TestApplyFieldIsAdditive(t *testing.T) {
	a := NewGrid(GridConfig{Width: 12, Height: 12, TileSize: 16})
	b := NewGrid(GridConfig{Width: 12, Height: 12, TileSize: 16})

	// a: two sources; b: each applied to its own grid and summed by hand
	_ = ApplyField(a, 3, 3, 6, 0.4)
	_ = ApplyField(a, 8, 7, 4, 1.0)

	first := NewGrid(GridConfig{Width: 12, Height: 12, TileSize: 16})
	second := NewGrid(GridConfig{Width: 12, Height: 12, TileSize: 16})
	_ = ApplyField(first, 3, 3, 6, 0.4)
	_ = ApplyField(second, 8, 7, 4, 1.0)
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			c, _ := b.CellAt(x, y)
			c.Gravity = r2.Add(first.GravityAt(x, y), second.GravityAt(x, y))
		}
	}

	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			ga, gb := a.GravityAt(x, y), b.GravityAt(x, y)
			if !approxEqual(ga.X, gb.X, epsilon) || !approxEqual(ga.Y, gb.Y, epsilon) {
				t.Fatalf("cell (%d,%d): got %v, want %v", x, y, ga, gb)
			}
		}
	}
}

func TestApplyFieldTwiceDoubles(t *testing.T) {
	g := NewGrid(GridConfig{Width: 8, Height: 8, TileSize: 10})
	_ = ApplyField(g, 4, 4, 3, 0.25)
	_ = ApplyField(g, 4, 4, 3, 0.25)

	if n := r2.Norm(g.GravityAt(4, 2)); !approxEqual(n, 0.5, epsilon) {
		t.Errorf("|g| after two applications = %v, want 0.5", n)
	}

	// A negative source retracts it exactly
	_ = ApplyField(g, 4, 4, 3, -0.5)
	if n := g.MaxGravity(); !approxEqual(n, 0, epsilon) {
		t.Errorf("max gravity after retraction = %v, want 0", n)
	}
}

func TestApplyFieldRadiusLimits(t *testing.T) {
	g := NewGrid(GridConfig{Width: 10, Height: 10, TileSize: 10})
	_ = ApplyField(g, 5, 5, 2, 1)

	if n := r2.Norm(g.GravityAt(5, 3)); !approxEqual(n, 1, epsilon) {
		t.Errorf("|g(5,3)| = %v, want 1", n)
	}
	// (7,7) is at distance sqrt(8) > 2
	if n := r2.Norm(g.GravityAt(7, 7)); n != 0 {
		t.Errorf("|g(7,7)| = %v, want 0 outside radius", n)
	}
}

func TestApplyFieldRejectsInvalidInput(t *testing.T) {
	g := NewGrid(GridConfig{Width: 6, Height: 6, TileSize: 10})

	if err := ApplyField(g, 3, 3, -1, 1); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("negative radius: got %v, want ErrInvalidRadius", err)
	}
	if err := ApplyField(g, 3, 3, 2, math.NaN()); !errors.Is(err, ErrInvalidStrength) {
		t.Errorf("NaN strength: got %v, want ErrInvalidStrength", err)
	}
	if err := ApplyField(g, 3, 3, 2, math.Inf(1)); !errors.Is(err, ErrInvalidStrength) {
		t.Errorf("Inf strength: got %v, want ErrInvalidStrength", err)
	}
	if g.MaxGravity() != 0 {
		t.Error("rejected field modified the grid")
	}
}

func TestApplyFieldSourceOutsideGrid(t *testing.T) {
	g := NewGrid(GridConfig{Width: 4, Height: 4, TileSize: 10})
	if err := ApplyField(g, -2, 1, 3, 1); err != nil {
		t.Fatalf("ApplyField: %v", err)
	}
	// (0,1) is two tiles right of the source and pulls left
	v := g.GravityAt(0, 1)
	if !approxEqual(v.X, -1, epsilon) || !approxEqual(v.Y, 0, epsilon) {
		t.Errorf("g(0,1) = %v, want (-1, 0)", v)
	}
}
