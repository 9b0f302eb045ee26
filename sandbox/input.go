package sandbox

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/game"
)

// handleInput processes keyboard and mouse input.
func (a *App) handleInput() {
	// Window resize propagation
	a.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && a.stepsPerUpdate > 1 {
		a.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && a.stepsPerUpdate < 10 {
		a.stepsPerUpdate++
	}

	// Single nominal step while paused
	if a.paused && rl.IsKeyPressed(rl.KeyN) {
		a.step(a.cfg.Physics.DT)
	}

	if rl.IsKeyPressed(rl.KeyV) {
		a.game.SpawnVolley(a.rng)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		a.controls.Toggle()
	}

	if rl.IsKeyPressed(rl.KeyM) {
		a.cues.SetMuted(!a.cues.Muted())
	}

	// Kind selection with number keys
	for i := 0; i < components.KindCount(); i++ {
		if rl.IsKeyPressed(int32(rl.KeyOne) + int32(i)) {
			a.toolbar.Select(i)
		}
	}

	// Overlay toggles
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		a.overlays.HandleKeyPress(key)
	}

	a.handleCameraInput()
	a.handleMouse()
}

// handleResize checks for window resize and propagates new dimensions.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == a.screenWidth && h == a.screenHeight {
		return
	}
	a.screenWidth = w
	a.screenHeight = h
	a.camera.Resize(w, h)
}

// handleCameraInput processes camera pan/zoom controls.
func (a *App) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / a.camera.Zoom

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		a.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.camera.Pan(0, -panSpeed)
	}

	// Middle-button drag pans by the pointer delta
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		a.camera.Pan(-d.X/a.camera.Zoom, -d.Y/a.camera.Zoom)
	}

	// Zoom toward the cursor with the mouse wheel
	wheelMove := rl.GetMouseWheelMove()
	if wheelMove != 0 {
		mouse := rl.GetMousePosition()
		a.camera.ZoomAt(mouse.X, mouse.Y, 1+wheelMove*0.1)
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		a.camera.Reset()
	}
}

// handleMouse turns pointer gestures into commands.
//
//	left click on an empty cell      place the selected kind
//	left drag from a launchable body launch it on release
//	shift + left drag from a body    relocate it on release
//	right click on a body            remove it
func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()
	overToolbar := a.toolbar.Contains(mouse.Y, a.screenHeight)
	a.hoverX, a.hoverY, a.hoverValid = a.cellAt(mouse)

	if rl.IsKeyPressed(rl.KeyX) && a.dragging {
		a.issue(game.CancelLaunchCommand{})
		a.dragging = false
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overToolbar && a.hoverValid {
		a.pressLeft(mouse)
	}

	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		a.releaseLeft(mouse)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) && !overToolbar && a.hoverValid {
		info, err := a.game.QueryCell(a.hoverX, a.hoverY)
		if err == nil && info.Entity != nil {
			a.issue(game.RemoveCommand{X: info.Entity.Center.X, Y: info.Entity.Center.Y})
		}
	}
}

func (a *App) pressLeft(mouse rl.Vector2) {
	info, err := a.game.QueryCell(a.hoverX, a.hoverY)
	if err != nil {
		a.setStatus(err)
		return
	}

	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	switch {
	case info.Entity == nil:
		a.issue(game.PlaceCommand{
			X:    a.hoverX,
			Y:    a.hoverY,
			Spec: game.EntitySpec{Kind: a.toolbar.Selected()},
		})

	case shift:
		a.moving = true
		a.moveFrom = info.Entity.Center

	case a.launchable(info.Entity.Kind):
		a.issue(game.BeginLaunchCommand{
			X:       a.hoverX,
			Y:       a.hoverY,
			ScreenX: float64(mouse.X),
			ScreenY: float64(mouse.Y),
		})
		a.dragging = true
	}
}

func (a *App) releaseLeft(mouse rl.Vector2) {
	switch {
	case a.moving:
		a.moving = false
		if a.hoverValid && (a.hoverX != a.moveFrom.X || a.hoverY != a.moveFrom.Y) {
			a.issue(game.MoveCommand{
				FromX: a.moveFrom.X,
				FromY: a.moveFrom.Y,
				ToX:   a.hoverX,
				ToY:   a.hoverY,
			})
		}

	case a.dragging:
		a.dragging = false
		a.issue(game.EndLaunchCommand{ScreenX: float64(mouse.X), ScreenY: float64(mouse.Y)})
	}
}

// cellAt returns the grid cell under a screen point.
func (a *App) cellAt(p rl.Vector2) (int, int, bool) {
	wx, wy := a.camera.ScreenToWorld(p.X, p.Y)
	grid := a.game.Grid()
	gx, gy := grid.WorldToCell(float64(wx), float64(wy))
	return gx, gy, grid.InBounds(gx, gy)
}

func (a *App) launchable(kind components.Kind) bool {
	kc, ok := a.cfg.Kind(kind.String())
	return ok && kc.Launchable
}
