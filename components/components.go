// Package components defines ECS components for the sandbox.
package components

// Tile records the grid cell an entity's footprint is centered on.
// Indexed is false while the entity is not tracked by the grid
// (drifted out of bounds or blocked from re-entering).
type Tile struct {
	X, Y    int
	Indexed bool
}

// VisualHandle is the opaque rendering attachment of an entity.
// The engine only moves, attaches and detaches it.
type VisualHandle interface {
	SetPosition(x, y, angle float64)
	Attach()
	Detach()
}

// Visual holds an entity's rendering attachment.
type Visual struct {
	Handle VisualHandle
}

// Move positions the handle if one is attached.
func (v *Visual) Move(x, y, angle float64) {
	if v != nil && v.Handle != nil {
		v.Handle.SetPosition(x, y, angle)
	}
}

// Detach detaches the handle if one is attached.
func (v *Visual) Detach() {
	if v != nil && v.Handle != nil {
		v.Handle.Detach()
	}
}
