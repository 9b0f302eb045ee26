package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	toggleOff = rl.Color{R: 80, G: 80, B: 80, A: 255}
	toggleOn  = rl.Color{R: 100, G: 200, B: 100, A: 255}
	keyHint   = rl.Color{R: 150, G: 150, B: 150, A: 255}
)

// ControlsPanel lists the overlays and their keys. Hidden until toggled.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the y below it, or the panel's top
// when hidden.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}
	t := c.renderer.Theme
	groups := overlays.Groups()
	rows := int32(overlays.Len() + len(groups) + 1)
	c.renderer.DrawPanel(c.x, c.y, c.width, rows*t.LineHeight+int32(len(groups))*4+t.Padding*2+4)

	x := c.x + t.Padding
	y := c.y + t.Padding
	rl.DrawText("Overlays", x, y, 16, rl.White)
	y += t.LineHeight + 4

	for _, g := range groups {
		y = c.renderer.DrawSectionHeader(x, y, string(g))
		for _, o := range overlays.InGroup(g) {
			c.drawToggle(x, y, o, overlays.IsEnabled(o.ID))
			y += t.LineHeight
		}
		y += 4
	}
	return y
}

func (c *ControlsPanel) drawToggle(x, y int32, o Overlay, on bool) {
	t := c.renderer.Theme
	swatch, text := toggleOff, t.LabelColor
	if on {
		swatch, text = toggleOn, rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, swatch)
	rl.DrawText(o.Name, x+14, y, t.FontSize, text)

	if o.KeyLabel != "" {
		hint := fmt.Sprintf("[%s]", o.KeyLabel)
		right := x + c.width - t.Padding*2
		rl.DrawText(hint, right-rl.MeasureText(hint, t.FontSize), y, t.FontSize, keyHint)
	}
}
