// Terminal viewer - runs the engine without raylib and draws the field and
// bodies as characters.
//
// Usage: go run ./cmd/gravterm [-config path] [-seed n] [-log file]
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/game"
	"github.com/pthm-cable/gravwell/telemetry"
)

const frameInterval = time.Second / 30

// term owns the screen and the engine it is showing.
type term struct {
	screen tcell.Screen
	game   *game.Game
	rng    *rand.Rand
	view   *view
	dt     float64

	paused bool
	steps  int
	impact int // frames left to flash the status line
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logPath := flag.String("log", "", "Write logs to this file (empty = discard)")
	flag.Parse()

	// The terminal is the display, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open log:", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	g, err := game.NewGameWithOptions(game.Options{Config: cfg})
	if err != nil {
		fmt.Fprintln(os.Stderr, "create game:", err)
		os.Exit(1)
	}
	defer g.Unload()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "open terminal:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "init terminal:", err)
		os.Exit(1)
	}
	defer screen.Fini()

	w, h := screen.Size()
	t := &term{
		screen: screen,
		game:   g,
		rng:    rand.New(rand.NewSource(*seed)),
		view:   newView(w, h-1),
		dt:     cfg.Physics.DT,
		steps:  1,
	}
	t.game.Populate(t.rng)
	t.run()
}

func (t *term) run() {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !t.handle(ev) {
				return
			}
		case <-ticker.C:
			if !t.paused {
				for i := 0; i < t.steps; i++ {
					t.step()
				}
			}
			t.draw()
		}
	}
}

func (t *term) step() {
	if t.game.VolleyDue() {
		t.game.SpawnVolley(t.rng)
	}
	for _, ev := range t.game.Tick(t.dt) {
		if ev.Type == telemetry.EventImpact {
			t.impact = 3
		}
	}
}

// handle processes one terminal event; false means quit.
func (t *term) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				t.paused = !t.paused
			case 'n':
				if t.paused {
					t.step()
				}
			case 'v':
				t.game.SpawnVolley(t.rng)
			case 'p':
				t.game.Populate(t.rng)
			case 'r':
				t.game.Reset()
			case '+', '=':
				t.steps = min(t.steps+1, 10)
			case '-':
				t.steps = max(t.steps-1, 1)
			}
		}
	case *tcell.EventResize:
		w, h := t.screen.Size()
		t.view.resize(w, h-1)
		t.screen.Sync()
	}
	return true
}

func (t *term) draw() {
	t.screen.Clear()
	t.view.render(t.game)

	shadeStyle := tcell.StyleDefault.Foreground(tcell.ColorTeal)
	for y := 0; y < t.view.h; y++ {
		for x := 0; x < t.view.w; x++ {
			gl := t.view.at(x, y)
			style := shadeStyle
			if gl.body {
				style = tcell.StyleDefault.Foreground(kindColor(gl.kind)).Bold(true)
			}
			t.screen.SetContent(x, y, gl.r, nil, style)
		}
	}

	status := fmt.Sprintf(" tick %d  bodies %d  x%d", t.game.CurrentTick(), t.game.EntityCount(), t.steps)
	if t.paused {
		status += "  PAUSED"
	}
	status += "  [space] pause [n] step [v] volley [p] populate [r] reset [+/-] speed [q] quit"
	statusStyle := tcell.StyleDefault.Reverse(true)
	if t.impact > 0 {
		statusStyle = statusStyle.Foreground(tcell.ColorRed)
		t.impact--
	}
	drawText(t.screen, 0, t.view.h, status, statusStyle)

	t.screen.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func kindColor(k components.Kind) tcell.Color {
	switch k {
	case components.KindPlanet:
		return tcell.ColorDodgerBlue
	case components.KindAsteroid:
		return tcell.ColorTan
	case components.KindBlackHole:
		return tcell.ColorPurple
	case components.KindTurret:
		return tcell.ColorGreen
	case components.KindProjectile:
		return tcell.ColorYellow
	}
	return tcell.ColorWhite
}
