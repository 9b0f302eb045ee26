package ui

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a toggleable layer.
type OverlayID string

const (
	OverlayGrid       OverlayID = "grid"
	OverlayField      OverlayID = "field"
	OverlayOccupancy  OverlayID = "occupancy"
	OverlayTrajectory OverlayID = "trajectory"
	OverlayHealth     OverlayID = "health"
	OverlayInspector  OverlayID = "inspector"
	OverlayPerf       OverlayID = "perf"
)

// OverlayGroup is the heading an overlay is listed under.
type OverlayGroup string

const (
	GroupView  OverlayGroup = "View"
	GroupDebug OverlayGroup = "Debug"
)

// Overlay describes one layer and the key that toggles it.
type Overlay struct {
	ID       OverlayID
	Name     string
	Key      int32
	KeyLabel string
	Group    OverlayGroup
	Default  bool
}

var defaultOverlays = []Overlay{
	{OverlayGrid, "Grid Lines", rl.KeyG, "G", GroupView, true},
	{OverlayField, "Gravity Field", rl.KeyF, "F", GroupView, false},
	{OverlayTrajectory, "Trajectory", rl.KeyT, "T", GroupView, true},
	{OverlayHealth, "Health Bars", rl.KeyH, "H", GroupView, true},
	{OverlayOccupancy, "Occupancy", rl.KeyO, "O", GroupDebug, false},
	{OverlayInspector, "Cell Inspector", rl.KeyI, "I", GroupDebug, false},
	{OverlayPerf, "Tick Phases", rl.KeyP, "P", GroupDebug, false},
}

// OverlayRegistry tracks which overlays are on.
type OverlayRegistry struct {
	overlays []Overlay
	on       map[OverlayID]bool
}

// NewOverlayRegistry returns the standard overlays in their default state.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{on: make(map[OverlayID]bool, len(defaultOverlays))}
	for _, o := range defaultOverlays {
		r.Register(o)
	}
	return r
}

// Register adds o, replacing any overlay with the same ID.
func (r *OverlayRegistry) Register(o Overlay) {
	if i := slices.IndexFunc(r.overlays, func(x Overlay) bool { return x.ID == o.ID }); i >= 0 {
		r.overlays[i] = o
	} else {
		r.overlays = append(r.overlays, o)
	}
	r.on[o.ID] = o.Default
}

func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.on[id]
}

// Toggle flips id and returns its new state. Unknown IDs stay off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, known := r.on[id]; !known {
		return false
	}
	r.on[id] = !r.on[id]
	return r.on[id]
}

// HandleKeyPress toggles the overlay bound to key and reports whether one
// was.
func (r *OverlayRegistry) HandleKeyPress(key int32) bool {
	for _, o := range r.overlays {
		if o.Key == key {
			r.Toggle(o.ID)
			return true
		}
	}
	return false
}

// Groups returns the overlay groups in first-seen order.
func (r *OverlayRegistry) Groups() []OverlayGroup {
	var groups []OverlayGroup
	for _, o := range r.overlays {
		if !slices.Contains(groups, o.Group) {
			groups = append(groups, o.Group)
		}
	}
	return groups
}

// InGroup returns the overlays listed under g.
func (r *OverlayRegistry) InGroup(g OverlayGroup) []Overlay {
	var out []Overlay
	for _, o := range r.overlays {
		if o.Group == g {
			out = append(out, o)
		}
	}
	return out
}

// Len is the number of registered overlays.
func (r *OverlayRegistry) Len() int {
	return len(r.overlays)
}
