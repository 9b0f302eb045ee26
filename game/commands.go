package game

import "log/slog"

// Command is a queued request applied at the start of the next tick.
type Command interface {
	Apply(g *Game) error
}

// PlaceCommand places an entity.
type PlaceCommand struct {
	X, Y int
	Spec EntitySpec
}

// Apply implements Command.
func (c PlaceCommand) Apply(g *Game) error {
	_, err := g.PlaceEntity(c.X, c.Y, c.Spec)
	return err
}

// RemoveCommand removes the entity centered on a cell.
type RemoveCommand struct {
	X, Y int
}

// Apply implements Command.
func (c RemoveCommand) Apply(g *Game) error {
	return g.RemoveEntity(c.X, c.Y)
}

// MoveCommand relocates a placed entity.
type MoveCommand struct {
	FromX, FromY int
	ToX, ToY     int
}

// Apply implements Command.
func (c MoveCommand) Apply(g *Game) error {
	return g.MoveEntity(c.FromX, c.FromY, c.ToX, c.ToY)
}

// BeginLaunchCommand starts a drag on the entity covering a cell.
type BeginLaunchCommand struct {
	X, Y             int
	ScreenX, ScreenY float64
}

// Apply implements Command.
func (c BeginLaunchCommand) Apply(g *Game) error {
	return g.BeginLaunch(c.X, c.Y, c.ScreenX, c.ScreenY)
}

// EndLaunchCommand releases the active drag at a pointer position.
type EndLaunchCommand struct {
	ScreenX, ScreenY float64
}

// Apply implements Command.
func (c EndLaunchCommand) Apply(g *Game) error {
	return g.EndLaunch(c.ScreenX, c.ScreenY)
}

// CancelLaunchCommand abandons the active drag.
type CancelLaunchCommand struct{}

// Apply implements Command.
func (CancelLaunchCommand) Apply(g *Game) error {
	g.CancelLaunch()
	return nil
}

// Submit queues a command for the next tick.
func (g *Game) Submit(cmd Command) {
	g.commands = append(g.commands, cmd)
}

// drainCommands applies queued commands in submission order.
// A failed command leaves state unchanged and does not stop the rest.
func (g *Game) drainCommands() {
	if len(g.commands) == 0 {
		return
	}
	cmds := g.commands
	g.commands = nil
	for _, cmd := range cmds {
		if err := cmd.Apply(g); err != nil {
			slog.Debug("command failed", "command", cmd, "error", err)
		}
	}
}
