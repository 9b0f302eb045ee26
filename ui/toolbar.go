package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwell/components"
)

// ToolbarAction is a one-shot action requested from the toolbar.
type ToolbarAction int

const (
	ActionNone ToolbarAction = iota
	ActionPause
	ActionReset
	ActionPopulate
	ActionVolley
)

const (
	toolbarButtonW = 96
	toolbarButtonH = 28
	toolbarGap     = 6
)

// Toolbar selects the kind placed by a click and offers sandbox actions.
type Toolbar struct {
	renderer *Renderer
	kinds    []components.Kind
	selected int
}

// NewToolbar creates a toolbar listing every kind, with the first selected.
func NewToolbar() *Toolbar {
	kinds := make([]components.Kind, components.KindCount())
	for i := range kinds {
		kinds[i] = components.Kind(i)
	}
	return &Toolbar{
		renderer: NewRenderer(),
		kinds:    kinds,
	}
}

// Selected returns the kind currently selected for placement.
func (t *Toolbar) Selected() components.Kind {
	return t.kinds[t.selected]
}

// Select chooses the kind at index i; out-of-range indices are ignored.
func (t *Toolbar) Select(i int) {
	if i >= 0 && i < len(t.kinds) {
		t.selected = i
	}
}

// Height returns the toolbar height including padding.
func (t *Toolbar) Height() int32 {
	return toolbarButtonH + 2*t.renderer.Theme.Padding
}

// Contains reports whether screen row y lies over the toolbar strip.
func (t *Toolbar) Contains(y, screenH float32) bool {
	return y >= screenH-float32(t.Height())
}

// Draw renders the toolbar along the bottom edge and returns the action
// clicked this frame.
func (t *Toolbar) Draw(screenW, screenH int32, paused bool) ToolbarAction {
	r := t.renderer
	top := screenH - t.Height()
	r.DrawPanel(0, top, screenW, t.Height())

	x := float32(r.Theme.Padding)
	y := float32(top + r.Theme.Padding)

	for i, kind := range t.kinds {
		bounds := rl.Rectangle{X: x, Y: y, Width: toolbarButtonW, Height: toolbarButtonH}
		if gui.Button(bounds, kind.Label()) {
			t.selected = i
		}
		if i == t.selected {
			rl.DrawRectangleLinesEx(bounds, 2, r.Theme.Selected)
		}
		x += toolbarButtonW + toolbarGap
	}

	x += toolbarGap * 3
	action := ActionNone
	pauseLabel := "Pause"
	if paused {
		pauseLabel = "Resume"
	}
	buttons := []struct {
		label  string
		action ToolbarAction
	}{
		{pauseLabel, ActionPause},
		{"Populate", ActionPopulate},
		{"Volley", ActionVolley},
		{"Reset", ActionReset},
	}
	for _, b := range buttons {
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: toolbarButtonW, Height: toolbarButtonH}, b.label) {
			action = b.action
		}
		x += toolbarButtonW + toolbarGap
	}

	return action
}
