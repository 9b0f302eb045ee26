package main

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/game"
)

// shades maps field strength to background glyphs, weakest first.
var shades = []rune{' ', '.', ':', '-', '=', '+'}

// glyph is one terminal cell of the map.
type glyph struct {
	r      rune
	kind   components.Kind
	body   bool // r is an entity, not a field shade
	radius int
}

// view downsamples the grid onto a terminal-sized glyph buffer.
type view struct {
	w, h  int
	cells []glyph
}

func newView(w, h int) *view {
	v := &view{}
	v.resize(w, h)
	return v
}

func (v *view) resize(w, h int) {
	v.w, v.h = max(w, 1), max(h, 1)
	v.cells = make([]glyph, v.w*v.h)
}

func (v *view) at(x, y int) glyph {
	return v.cells[y*v.w+x]
}

// render fills the buffer from the game's field and bodies.
func (v *view) render(g *game.Game) {
	grid := g.Grid()
	maxMag := grid.MaxGravity()

	// Each terminal cell covers a block of grid cells; shade by its strongest pull
	for ty := 0; ty < v.h; ty++ {
		y0, y1 := span(ty, v.h, grid.Height())
		for tx := 0; tx < v.w; tx++ {
			x0, x1 := span(tx, v.w, grid.Width())
			peak := 0.0
			for gy := y0; gy < y1; gy++ {
				for gx := x0; gx < x1; gx++ {
					peak = max(peak, r2.Norm(grid.GravityAt(gx, gy)))
				}
			}
			v.cells[ty*v.w+tx] = glyph{r: shade(peak, maxMag)}
		}
	}

	worldW := float64(grid.Width()) * grid.TileSize()
	worldH := float64(grid.Height()) * grid.TileSize()
	g.ForEachEntity(func(s game.EntitySummary) {
		tx := int(s.X / worldW * float64(v.w))
		ty := int(s.Y / worldH * float64(v.h))
		if tx < 0 || ty < 0 || tx >= v.w || ty >= v.h {
			return
		}
		cur := &v.cells[ty*v.w+tx]
		// Larger bodies win a shared terminal cell
		if cur.body && cur.radius >= s.RadiusTiles {
			return
		}
		*cur = glyph{r: kindRune(s.Kind), kind: s.Kind, body: true, radius: s.RadiusTiles}
	})
}

// span returns the half-open range of n source cells covered by slot i of
// size slots. Every slot covers at least one cell when n > 0.
func span(i, size, n int) (int, int) {
	lo := i * n / size
	hi := (i + 1) * n / size
	if hi <= lo {
		hi = lo + 1
	}
	if hi > n {
		hi = n
	}
	return lo, hi
}

func shade(mag, maxMag float64) rune {
	if maxMag <= 0 || mag <= 0 {
		return shades[0]
	}
	i := 1 + int(mag/maxMag*float64(len(shades)-2)+0.5)
	return shades[min(i, len(shades)-1)]
}

func kindRune(k components.Kind) rune {
	switch k {
	case components.KindPlanet:
		return 'O'
	case components.KindAsteroid:
		return '*'
	case components.KindBlackHole:
		return '@'
	case components.KindTurret:
		return 'T'
	case components.KindProjectile:
		return '\''
	}
	return '?'
}
