package telemetry

// FieldSample is the world state sampled when a window is flushed.
type FieldSample struct {
	Entities      int
	Movers        int
	OccupiedCells int
	Magnitudes    []float64 // gravity magnitude per cell
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	placements       int
	failedPlacements int
	removals         int
	launches         int
	impacts          int
	damaged          int
	destroyed        int
	consumed         int
	outOfBounds      int
	impactSpeeds     []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulated time
// dt: simulated time per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	if dt <= 0 {
		dt = 1
	}
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record counts an event into the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventPlaced:
		c.placements++
	case EventRemoved:
		c.removals++
	case EventLaunched:
		c.launches++
	case EventImpact:
		c.impacts++
		c.impactSpeeds = append(c.impactSpeeds, ev.Speed)
	case EventDamaged:
		c.damaged++
	case EventDestroyed:
		c.destroyed++
	case EventConsumed:
		c.consumed++
	case EventOutOfBounds:
		c.outOfBounds++
	}
}

// RecordAll counts a batch of events.
func (c *Collector) RecordAll(events []Event) {
	for _, ev := range events {
		c.Record(ev)
	}
}

// RecordFailedPlacement records a rejected placement request.
func (c *Collector) RecordFailedPlacement() {
	c.failedPlacements++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample FieldSample) WindowStats {
	impact := ComputeDistribution(c.impactSpeeds)
	field := ComputeDistribution(sample.Magnitudes)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTime:         float64(currentTick) * c.dt,

		Entities:      sample.Entities,
		Movers:        sample.Movers,
		OccupiedCells: sample.OccupiedCells,

		Placements:       c.placements,
		FailedPlacements: c.failedPlacements,
		Removals:         c.removals,
		Launches:         c.launches,
		Impacts:          c.impacts,
		Damaged:          c.damaged,
		Destroyed:        c.destroyed,
		Consumed:         c.consumed,
		OutOfBounds:      c.outOfBounds,

		ImpactSpeedMean: impact.Mean,
		ImpactSpeedP50:  impact.P50,
		ImpactSpeedP90:  impact.P90,

		FieldMean: field.Mean,
		FieldStd:  field.Std,
		FieldP90:  field.P90,
		FieldMax:  field.Max,
	}

	c.Reset(currentTick)
	return stats
}

// Reset clears counters and starts a new window at tick.
func (c *Collector) Reset(tick int32) {
	c.windowStartTick = tick
	c.placements = 0
	c.failedPlacements = 0
	c.removals = 0
	c.launches = 0
	c.impacts = 0
	c.damaged = 0
	c.destroyed = 0
	c.consumed = 0
	c.outOfBounds = 0
	c.impactSpeeds = c.impactSpeeds[:0]
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
