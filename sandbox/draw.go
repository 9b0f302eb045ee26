package sandbox

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/renderer"
	"github.com/pthm-cable/gravwell/systems"
	"github.com/pthm-cable/gravwell/telemetry"
	"github.com/pthm-cable/gravwell/ui"
)

const controlsLegend = "[1-5] kind  [LMB] place/launch  [Shift+LMB] move  [RMB] remove  [X] cancel  [Space] pause  [N] step  [V] volley  [M] mute  [Tab] overlays"

// Draw renders the sandbox.
func (a *App) Draw() {
	a.game.RecordFrame()
	a.collectFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	a.background.Draw(a.camera)
	a.drawField()

	a.scene.Draw(a.camera, a.game.CurrentTick())
	if a.overlays.IsEnabled(ui.OverlayHealth) {
		a.drawHealthBars()
	}

	a.drawGesture()
	a.particleRenderer.Draw(a.particles.Particles, a.camera)

	a.drawUI()

	rl.EndDrawing()
}

// drawField draws the enabled grid overlays.
func (a *App) drawField() {
	grid := a.game.Grid()
	if a.overlays.IsEnabled(ui.OverlayOccupancy) {
		a.field.DrawOccupancy(grid, a.camera)
	}
	if a.overlays.IsEnabled(ui.OverlayGrid) {
		a.field.DrawGrid(grid, a.camera)
	}
	if a.overlays.IsEnabled(ui.OverlayField) {
		a.field.DrawVectors(grid, a.camera)
	}
}

// drawGesture draws the launch preview, the move target or the placement
// footprint under the pointer.
func (a *App) drawGesture() {
	mouse := rl.GetMousePosition()
	grid := a.game.Grid()

	switch {
	case a.dragging:
		sx, sy, ok := a.game.LaunchStart()
		if !ok {
			return
		}
		rl.DrawLineEx(rl.Vector2{X: float32(sx), Y: float32(sy)}, mouse, 2, rl.Fade(rl.White, 0.5))
		if a.overlays.IsEnabled(ui.OverlayTrajectory) {
			path := a.game.PredictTrajectory(float64(mouse.X), float64(mouse.Y))
			a.field.DrawTrajectory(path, a.camera)
		}

	case a.moving:
		if !a.hoverValid {
			return
		}
		info, err := a.game.QueryCell(a.moveFrom.X, a.moveFrom.Y)
		if err != nil || info.Entity == nil {
			return
		}
		a.field.DrawFootprint(grid, a.hoverX, a.hoverY, info.Entity.RadiusTiles, !info.Entity.Immutable, a.camera)

	case a.hoverValid && !a.toolbar.Contains(mouse.Y, a.screenHeight):
		kind := a.toolbar.Selected()
		kc, ok := a.cfg.Kind(kind.String())
		if !ok {
			return
		}
		a.field.DrawFootprint(grid, a.hoverX, a.hoverY, kc.RadiusTiles, a.fits(a.hoverX, a.hoverY, kc.RadiusTiles), a.camera)
	}
}

// fits reports whether a footprint of radius centered at (gx, gy) lies on
// free in-bounds cells.
func (a *App) fits(gx, gy, radius int) bool {
	grid := a.game.Grid()
	for _, c := range systems.CellsInRadius(gx, gy, radius) {
		cell, err := grid.CellAt(c.X, c.Y)
		if err != nil || cell.Occupied {
			return false
		}
	}
	return true
}

// drawHealthBars draws a bar above every damaged body.
func (a *App) drawHealthBars() {
	ts := float32(a.game.Grid().TileSize())
	for _, s := range a.frame.damaged {
		radius := (float32(s.RadiusTiles) + 0.5) * ts
		if !a.camera.IsVisible(float32(s.X), float32(s.Y), radius) {
			continue
		}
		sx, sy := a.camera.WorldToScreen(float32(s.X), float32(s.Y)-radius)
		width := radius * 1.6 * a.camera.Zoom
		ratio := float32(0)
		if s.MaxHealth > 0 && s.Health > 0 {
			ratio = float32(s.Health) / float32(s.MaxHealth)
		}

		color := rl.Color{R: 100, G: 200, B: 100, A: 220}
		if ratio < 0.3 {
			color = rl.Color{R: 200, G: 100, B: 100, A: 220}
		} else if ratio < 0.6 {
			color = rl.Color{R: 200, G: 180, B: 100, A: 220}
		}
		rl.DrawRectangleV(rl.Vector2{X: sx - width/2, Y: sy - 8}, rl.Vector2{X: width, Y: 4}, rl.Fade(rl.Black, 0.6))
		rl.DrawRectangleV(rl.Vector2{X: sx - width/2, Y: sy - 8}, rl.Vector2{X: width * ratio, Y: 4}, color)
	}
}

// drawUI renders panels, the toolbar and handles toolbar actions.
func (a *App) drawUI() {
	screenW := int32(a.screenWidth)
	screenH := int32(a.screenHeight)

	counts := make([]ui.KindCount, len(a.frame.counts))
	for i, n := range a.frame.counts {
		kind := components.Kind(i)
		counts[i] = ui.KindCount{Label: kind.Label(), Count: n, Color: renderer.KindColor(kind)}
	}
	status := ""
	if a.statusTimer > 0 {
		status = a.status
	}
	perf := a.game.PerfStats()
	a.hud.Draw(10, 10, ui.HUDData{
		Title:    "Gravwell",
		Counts:   counts,
		Tick:     a.game.CurrentTick(),
		Speed:    a.stepsPerUpdate,
		FPS:      int32(perf.FPS),
		Paused:   a.paused,
		Selected: a.toolbar.Selected().Label(),
		Status:   status,
	})

	// Left column: overlay toggles, then the hovered cell
	y := a.controls.Draw(a.overlays)
	if a.overlays.IsEnabled(ui.OverlayInspector) && a.hoverValid {
		if info, err := a.game.QueryCell(a.hoverX, a.hoverY); err == nil {
			a.inspector.SetPosition(10, y+10)
			a.inspector.Draw(info)
		}
	}

	// Right column: field stats, then perf
	grid := a.game.Grid()
	a.fieldStats.SetPosition(screenW-240, 10)
	y = a.fieldStats.Draw(ui.FieldStatsData{
		OccupiedCells: grid.OccupiedCount(),
		TotalCells:    grid.Width() * grid.Height(),
		MaxGravity:    grid.MaxGravity(),
		Movers:        a.frame.movers,
		Unindexed:     a.frame.unindexed,
		Particles:     a.particles.Count(),
	})
	if a.overlays.IsEnabled(ui.OverlayPerf) {
		a.perfPanel.SetPosition(screenW-240, y+20)
		a.perfPanel.Draw(ui.PerfPanelData{
			PhaseAvg:       perf.PhaseAvg,
			Total:          perf.AvgTickDuration,
			P90:            perf.P90TickDuration,
			TicksPerSecond: perf.TicksPerSecond,
		}, telemetry.Phases)
	}

	a.hud.DrawControls(screenW, screenH-a.toolbar.Height(), controlsLegend)

	switch a.toolbar.Draw(screenW, screenH, a.paused) {
	case ui.ActionPause:
		a.paused = !a.paused
	case ui.ActionPopulate:
		a.game.Populate(a.rng)
	case ui.ActionVolley:
		a.game.SpawnVolley(a.rng)
	case ui.ActionReset:
		a.Reset()
	}
}
