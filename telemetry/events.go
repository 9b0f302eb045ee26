// Package telemetry provides side-effect events, window stats, perf tracking and CSV output.
package telemetry

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gravwell/components"
)

// EventType identifies side-effect events reported by a tick.
type EventType uint8

const (
	EventExplosion   EventType = iota // visual effect at (X, Y) with Scale
	EventImpact                       // audio cue for a collision
	EventDamaged                      // target survived with Health remaining
	EventDestroyed                    // target health reached zero and it was removed
	EventConsumed                     // moving entity removed after a collision
	EventRemoved                      // entity removed by request
	EventOutOfBounds                  // moving entity left the grid and is no longer indexed
	EventLaunched                     // entity was given launch velocity
	EventPlaced                       // entity was placed on the grid
)

// String returns a short name for logs and CSV.
func (t EventType) String() string {
	switch t {
	case EventExplosion:
		return "explosion"
	case EventImpact:
		return "impact"
	case EventDamaged:
		return "damaged"
	case EventDestroyed:
		return "destroyed"
	case EventConsumed:
		return "consumed"
	case EventRemoved:
		return "removed"
	case EventOutOfBounds:
		return "out_of_bounds"
	case EventLaunched:
		return "launched"
	case EventPlaced:
		return "placed"
	}
	return "unknown"
}

// Event is a single side effect for collaborators (rendering, audio, UI).
type Event struct {
	Type   EventType
	Tick   int32
	Entity ecs.Entity
	Kind   components.Kind

	// Optional fields depending on event type
	X, Y   float64 // world position (explosion, impact, destroyed)
	Scale  float64 // explosion scale
	Health int     // remaining health (damaged)
	Speed  float64 // impactor speed (impact) or launch speed (launched)
}

// NewExplosionEvent creates an explosion effect event.
func NewExplosionEvent(x, y, scale float64) Event {
	return Event{Type: EventExplosion, X: x, Y: y, Scale: scale}
}

// NewImpactEvent creates an impact cue for a collision with target.
func NewImpactEvent(target ecs.Entity, kind components.Kind, x, y, speed float64) Event {
	return Event{Type: EventImpact, Entity: target, Kind: kind, X: x, Y: y, Speed: speed}
}

// NewDamagedEvent creates a damage event for a surviving target.
func NewDamagedEvent(target ecs.Entity, kind components.Kind, health int) Event {
	return Event{Type: EventDamaged, Entity: target, Kind: kind, Health: health}
}

// NewDestroyedEvent creates a destruction event.
func NewDestroyedEvent(target ecs.Entity, kind components.Kind, x, y float64) Event {
	return Event{Type: EventDestroyed, Entity: target, Kind: kind, X: x, Y: y}
}

// NewConsumedEvent creates an event for a moving entity spent on impact.
func NewConsumedEvent(e ecs.Entity, kind components.Kind, x, y float64) Event {
	return Event{Type: EventConsumed, Entity: e, Kind: kind, X: x, Y: y}
}

// NewRemovedEvent creates an event for an entity removed by request.
func NewRemovedEvent(e ecs.Entity, kind components.Kind, x, y float64) Event {
	return Event{Type: EventRemoved, Entity: e, Kind: kind, X: x, Y: y}
}

// NewOutOfBoundsEvent creates an event for an entity leaving the grid.
func NewOutOfBoundsEvent(e ecs.Entity, kind components.Kind, x, y float64) Event {
	return Event{Type: EventOutOfBounds, Entity: e, Kind: kind, X: x, Y: y}
}

// NewLaunchedEvent creates a launch event.
func NewLaunchedEvent(e ecs.Entity, kind components.Kind, x, y, speed float64) Event {
	return Event{Type: EventLaunched, Entity: e, Kind: kind, X: x, Y: y, Speed: speed}
}

// NewPlacedEvent creates a placement event.
func NewPlacedEvent(e ecs.Entity, kind components.Kind, x, y float64) Event {
	return Event{Type: EventPlaced, Entity: e, Kind: kind, X: x, Y: y}
}

// EventRecord is a flat row for events.csv and events.msgpack.
type EventRecord struct {
	Tick   int32   `csv:"tick" msgpack:"t"`
	Type   string  `csv:"type" msgpack:"ty"`
	Entity uint32  `csv:"entity" msgpack:"e,omitempty"`
	Kind   string  `csv:"kind" msgpack:"k,omitempty"`
	X      float64 `csv:"x" msgpack:"x"`
	Y      float64 `csv:"y" msgpack:"y"`
	Scale  float64 `csv:"scale" msgpack:"s,omitempty"`
	Health int     `csv:"health" msgpack:"h,omitempty"`
	Speed  float64 `csv:"speed" msgpack:"v,omitempty"`
}

// Record converts the event to its CSV row.
func (e Event) Record() EventRecord {
	rec := EventRecord{
		Tick:   e.Tick,
		Type:   e.Type.String(),
		X:      e.X,
		Y:      e.Y,
		Scale:  e.Scale,
		Health: e.Health,
		Speed:  e.Speed,
	}
	// Explosions carry no entity
	if e.Type != EventExplosion {
		rec.Entity = e.Entity.ID()
		rec.Kind = e.Kind.String()
	}
	return rec
}
