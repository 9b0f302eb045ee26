// Gravity field preview tool - interactive tuning of source radius and
// strength with sliders.
//
// Usage: go run ./cmd/fieldpreview [-config path] [-scene scene.yaml]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"sort"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/camera"
	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/renderer"
	"github.com/pthm-cable/gravwell/systems"
	"github.com/pthm-cable/gravwell/telemetry"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	panelWidth   = 320
	previewW     = windowWidth - panelWidth
)

// source is one placed field source.
type source struct {
	kind string
	x, y int
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	scenePath := flag.String("scene", "", "Scene dump to replay sources from")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	gridW, gridH, tileSize := cfg.Derived.GridW, cfg.Derived.GridH, cfg.Grid.TileSize
	var sources []source
	if *scenePath != "" {
		scene, err := telemetry.LoadSnapshot(*scenePath)
		if err != nil {
			slog.Error("failed to load scene", "error", err)
			os.Exit(1)
		}
		gridW, gridH, tileSize = scene.GridWidth, scene.GridHeight, scene.TileSize
		for _, e := range scene.Entities {
			if _, ok := cfg.Source(e.Kind); ok && e.Indexed {
				sources = append(sources, source{kind: e.Kind, x: e.TileX, y: e.TileY})
			}
		}
		slog.Info("scene loaded", "path", *scenePath, "tick", scene.Tick, "sources", len(sources))
	}

	kinds := make([]string, 0, len(cfg.Gravity.Sources))
	for name := range cfg.Gravity.Sources {
		kinds = append(kinds, name)
	}
	sort.Strings(kinds)
	if len(kinds) == 0 {
		slog.Error("config has no gravity sources")
		os.Exit(1)
	}
	if len(sources) == 0 {
		sources = append(sources, source{kind: kinds[0], x: gridW / 2, y: gridH / 2})
	}

	rl.InitWindow(windowWidth, windowHeight, "Gravity Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	grid := systems.NewGrid(systems.GridConfig{Width: gridW, Height: gridH, TileSize: tileSize})
	worldW := float32(float64(gridW) * tileSize)
	worldH := float32(float64(gridH) * tileSize)
	cam := camera.New(previewW, windowHeight, worldW, worldH)
	cam.SetZoom(cam.MinZoom)
	field := renderer.NewFieldRenderer()

	// Heatmap texture, one texel per cell
	img := rl.GenImageColor(gridW, gridH, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	selected := 0
	needsRebuild := true
	showVectors := true

	for !rl.WindowShouldClose() {
		if needsRebuild {
			rebuild(grid, cfg, sources)
			updateTexture(texture, grid)
			needsRebuild = false
		}

		// Left click adds a source of the selected kind, right click clears the cell
		mouse := rl.GetMousePosition()
		if mouse.X < previewW {
			wx, wy := cam.ScreenToWorld(mouse.X, mouse.Y)
			gx, gy := grid.WorldToCell(float64(wx), float64(wy))
			if grid.InBounds(gx, gy) {
				if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
					sources = append(sources, source{kind: kinds[selected], x: gx, y: gy})
					needsRebuild = true
				}
				if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
					sources = removeAt(sources, gx, gy)
					needsRebuild = true
				}
			}
		}
		if rl.IsKeyPressed(rl.KeyV) {
			showVectors = !showVectors
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		// Draw preview
		sx, sy := cam.WorldToScreen(0, 0)
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridW), Height: float32(gridH)},
			rl.Rectangle{X: sx, Y: sy, Width: worldW * cam.Zoom, Height: worldH * cam.Zoom},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		field.DrawGrid(grid, cam)
		if showVectors {
			field.DrawVectors(grid, cam)
		}
		for _, s := range sources {
			cx, cy := grid.CellCenter(s.x, s.y)
			px, py := cam.WorldToScreen(float32(cx), float32(cy))
			rl.DrawCircleV(rl.Vector2{X: px, Y: py}, 4, rl.White)
		}

		// Control panel
		panelX := float32(previewW + 15)
		panelY := float32(10)
		rl.DrawRectangle(previewW, 0, panelWidth, windowHeight, rl.RayWhite)

		rl.DrawText("Gravity Sources", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for i, name := range kinds {
			bounds := rl.Rectangle{X: panelX, Y: panelY, Width: 140, Height: 26}
			if gui.Button(bounds, name) {
				selected = i
			}
			if i == selected {
				rl.DrawRectangleLinesEx(bounds, 2, rl.Orange)
			}
			panelY += 32
		}
		panelY += 10

		src := cfg.Gravity.Sources[kinds[selected]]

		rl.DrawText("Radius (tiles)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRadius := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: 200, Height: 20},
			"", fmt.Sprintf("%d", src.Radius),
			float32(src.Radius), 0, 60,
		)
		if int(newRadius) != src.Radius {
			src.Radius = int(newRadius)
			needsRebuild = true
		}
		panelY += 35

		rl.DrawText("Strength (accel per dt)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newStrength := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: 200, Height: 20},
			"", fmt.Sprintf("%.3f", src.Strength),
			float32(src.Strength), 0, 2,
		)
		if float64(newStrength) != src.Strength {
			src.Strength = float64(newStrength)
			needsRebuild = true
		}
		panelY += 40
		cfg.Gravity.Sources[kinds[selected]] = src

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Clear") {
			sources = sources[:0]
			needsRebuild = true
		}
		panelY += 45

		rl.DrawText(fmt.Sprintf("Sources: %d  Max pull: %.3f", len(sources), grid.MaxGravity()), int32(panelX), int32(panelY), 14, rl.DarkGray)
		panelY += 30

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yaml := sourcesYAML(cfg, kinds)
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("LMB add  RMB remove  V vectors  C copy YAML", int32(panelX), int32(windowHeight-30), 12, rl.Gray)

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// rebuild clears the field and reapplies every source with current settings.
func rebuild(grid *systems.Grid, cfg *config.Config, sources []source) {
	grid.Reset()
	for _, s := range sources {
		sc, ok := cfg.Source(s.kind)
		if !ok {
			continue
		}
		if err := systems.ApplyField(grid, s.x, s.y, sc.Radius, sc.Strength); err != nil {
			slog.Warn("source skipped", "kind", s.kind, "error", err)
		}
	}
}

// removeAt drops every source centered on (x, y).
func removeAt(sources []source, x, y int) []source {
	out := sources[:0]
	for _, s := range sources {
		if s.x != x || s.y != y {
			out = append(out, s)
		}
	}
	return out
}

// sourcesYAML renders the gravity sources block for defaults.yaml.
func sourcesYAML(cfg *config.Config, kinds []string) string {
	out := "gravity:\n  sources:\n"
	for _, name := range kinds {
		s := cfg.Gravity.Sources[name]
		out += fmt.Sprintf("    %s:\n      radius: %d\n      strength: %.3f\n", name, s.Radius, s.Strength)
	}
	return out
}

// updateTexture colors each cell by its pull relative to the strongest cell.
func updateTexture(texture rl.Texture2D, grid *systems.Grid) {
	maxMag := grid.MaxGravity()
	pixels := make([]color.RGBA, grid.Width()*grid.Height())
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			v := float32(0)
			if maxMag > 0 {
				v = float32(r2.Norm(grid.GravityAt(x, y)) / maxMag)
			}
			// Dark blue -> cyan -> white
			var r, g, b uint8
			if v < 0.5 {
				t := v / 0.5
				r = uint8(10 + t*30)
				g = uint8(15 + t*150)
				b = uint8(40 + t*160)
			} else {
				t := (v - 0.5) / 0.5
				r = uint8(40 + t*215)
				g = uint8(165 + t*90)
				b = uint8(200 + t*55)
			}
			pixels[y*grid.Width()+x] = color.RGBA{R: r, G: g, B: b, A: 255}
		}
	}
	rl.UpdateTexture(texture, pixels)
}
