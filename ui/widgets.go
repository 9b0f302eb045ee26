package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme is the shared panel palette and metrics.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	Selected      rl.Color

	BarBg rl.Color
	// Bar fill below 0.3, below 0.6 and above.
	BarLow, BarMid, BarHigh rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme is a dark blue panel style.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 12, G: 16, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 55, G: 70, B: 100, A: 255},
		SectionHeader:  rl.Color{R: 130, G: 200, B: 255, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		Selected:       rl.Color{R: 255, G: 220, B: 120, A: 255},
		BarBg:          rl.Color{R: 40, G: 40, B: 48, A: 255},
		BarLow:         rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarMid:         rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarHigh:        rl.Color{R: 100, G: 200, B: 100, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// barFill picks the fill color for a ratio.
func (t Theme) barFill(ratio float32) rl.Color {
	switch {
	case ratio < 0.3:
		return t.BarLow
	case ratio < 0.6:
		return t.BarMid
	default:
		return t.BarHigh
	}
}

// Renderer draws panels and descriptor-driven fields in one theme.
// Every Draw method returns the y below what it drew.
type Renderer struct {
	Theme Theme
}

func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	t := r.Theme
	rl.DrawText(label+":", x, y, t.FontSize, t.LabelColor)
	rl.DrawText(value, x+t.LabelWidth, y, t.FontSize, t.ValueColor)
	return y + t.LineHeight
}

// DrawBar draws label, bar and percentage across width.
func (r *Renderer) DrawBar(x, y int32, label string, ratio float32, width int32) int32 {
	t := r.Theme
	ratio = min(max(ratio, 0), 1)
	barX := x + t.LabelWidth
	barW := width - t.LabelWidth - 40

	rl.DrawText(label+":", x, y, t.FontSize, t.LabelColor)
	rl.DrawRectangle(barX, y+2, barW, t.BarHeight, t.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barW)*ratio), t.BarHeight, t.barFill(ratio))
	rl.DrawText(fmt.Sprintf("%.0f%%", ratio*100), barX+barW+5, y, t.FontSize, t.ValueColor)
	return y + t.LineHeight + 2
}

func (r *Renderer) fieldText(fd FieldDescriptor, data any) string {
	switch {
	case fd.TextGetter != nil:
		return fd.TextGetter(data)
	case fd.Getter != nil:
		return fmt.Sprintf(fd.Format, fd.Getter(data))
	}
	return ""
}

func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	switch fd.Widget {
	case WidgetText:
		return r.DrawLabelValue(x, y, fd.Label, r.fieldText(fd, data))
	case WidgetBar:
		var v float32
		if fd.Getter != nil {
			v = fd.Getter(data)
		}
		return r.DrawBar(x, y, fd.Label, v, width)
	case WidgetSection:
		return r.DrawSectionHeader(x, y, fd.Label)
	case WidgetSpacer:
		return y + 6
	}
	return y
}

func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if !shown(sd.Visible, data) {
		return y
	}
	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}
	for _, fd := range sd.Fields {
		if shown(fd.Visible, data) {
			y = r.DrawField(x, y, fd, data, width)
		}
	}
	return y + 4
}

// SectionHeight is the height DrawSection would use for data.
func (r *Renderer) SectionHeight(sd SectionDescriptor, data any) int32 {
	if !shown(sd.Visible, data) {
		return 0
	}
	h := int32(4)
	if sd.Title != "" {
		h += r.Theme.LineHeight
	}
	for _, fd := range sd.Fields {
		if !shown(fd.Visible, data) {
			continue
		}
		switch fd.Widget {
		case WidgetBar:
			h += r.Theme.LineHeight + 2
		case WidgetSpacer:
			h += 6
		default:
			h += r.Theme.LineHeight
		}
	}
	return h
}
