package ui

import (
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwell/telemetry"
)

// KindCount is the population of one entity kind.
type KindCount struct {
	Label string
	Count int
	Color rl.Color
}

// HUDData is everything the top-left readout shows.
type HUDData struct {
	Title    string
	Counts   []KindCount
	Tick     int32
	Speed    int
	FPS      int32
	Paused   bool
	Selected string
	Status   string // last command failure, empty when none
}

// HUD draws the top-left readout and the bottom key legend.
type HUD struct{}

func NewHUD() *HUD {
	return &HUD{}
}

const hudFont = 16

// Draw renders the readout with its top-left corner at (x, y).
func (h *HUD) Draw(x, y int32, data HUDData) {
	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 25

	cx := x
	for _, kc := range data.Counts {
		rl.DrawRectangle(cx, y+3, 10, 10, kc.Color)
		text := fmt.Sprintf("%s: %d", kc.Label, kc.Count)
		rl.DrawText(text, cx+14, y, hudFont, rl.LightGray)
		cx += 30 + rl.MeasureText(text, hudFont)
	}
	y += 20

	var line strings.Builder
	fmt.Fprintf(&line, "Tick %d  x%d  %d fps", data.Tick, data.Speed, data.FPS)
	if data.Selected != "" {
		fmt.Fprintf(&line, "  placing %s", data.Selected)
	}
	rl.DrawText(line.String(), x, y, hudFont, rl.LightGray)
	y += 20

	state, stateColor := "Running", rl.Green
	if data.Paused {
		state, stateColor = "PAUSED", rl.Yellow
	}
	rl.DrawText(state, x, y, hudFont, stateColor)
	if data.Status != "" {
		rl.DrawText(data.Status, x+rl.MeasureText(state, hudFont)+16, y, hudFont, rl.Orange)
	}
}

// DrawControls draws the key legend along the bottom edge.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData is the tick timing shown by PerfPanel.
type PerfPanelData struct {
	PhaseAvg       map[string]time.Duration
	Total          time.Duration
	P90            time.Duration
	TicksPerSecond float64
}

// PerfPanel lists average time per tick phase.
type PerfPanel struct {
	x, y int32
}

func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

func (p *PerfPanel) SetPosition(x, y int32) {
	p.x, p.y = x, y
}

// Draw lists the phases in the given order, coloring the ones that
// dominate the tick.
func (p *PerfPanel) Draw(data PerfPanelData, phases []string) {
	x, y := p.x, p.y

	rl.DrawText("Tick Phases", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("avg %s  p90 %s  (%.0f/s)",
		data.Total.Round(time.Microsecond), data.P90.Round(time.Microsecond), data.TicksPerSecond),
		x, y, 14, rl.Yellow)
	y += 16

	for _, name := range phases {
		avg := data.PhaseAvg[name]
		var pct float64
		if data.Total > 0 {
			pct = 100 * float64(avg) / float64(data.Total)
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", telemetry.PhaseLabel(name), avg.Round(time.Microsecond), pct),
			x, y, 12, loadColor(pct),
		)
		y += 14
	}
}

func loadColor(pct float64) rl.Color {
	switch {
	case pct > 70:
		return rl.Red
	case pct > 40:
		return rl.Orange
	default:
		return rl.LightGray
	}
}
