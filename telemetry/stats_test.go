package telemetry

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gravwell/components"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	d := ComputeDistribution([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	if math.Abs(d.Mean-5) > 1e-9 {
		t.Errorf("mean = %v, want 5", d.Mean)
	}
	// Population standard deviation of this sample is exactly 2
	if math.Abs(d.Std-2) > 1e-9 {
		t.Errorf("std = %v, want 2", d.Std)
	}
	if d.Max != 9 {
		t.Errorf("max = %v, want 9", d.Max)
	}
	if math.Abs(d.P50-4.5) > 1e-9 {
		t.Errorf("p50 = %v, want 4.5", d.P50)
	}

	if (ComputeDistribution(nil) != Distribution{}) {
		t.Error("empty sample should return all zeros")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10, 1)
	if c.WindowDurationTicks() != 10 {
		t.Fatalf("window ticks = %d, want 10", c.WindowDurationTicks())
	}

	target := ecs.Entity{}
	c.RecordAll([]Event{
		NewPlacedEvent(target, components.KindPlanet, 0, 0),
		NewLaunchedEvent(target, components.KindProjectile, 0, 0, 3),
		NewImpactEvent(target, components.KindPlanet, 0, 0, 4),
		NewImpactEvent(target, components.KindPlanet, 0, 0, 8),
		NewDamagedEvent(target, components.KindPlanet, 200),
		NewDestroyedEvent(target, components.KindPlanet, 0, 0),
		NewConsumedEvent(target, components.KindProjectile, 0, 0),
		NewConsumedEvent(target, components.KindProjectile, 0, 0),
		NewExplosionEvent(0, 0, 1),
	})
	c.RecordFailedPlacement()

	if c.ShouldFlush(9) {
		t.Error("flush requested before window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Error("flush not requested at window end")
	}

	stats := c.Flush(10, FieldSample{Entities: 3, Movers: 1, OccupiedCells: 14, Magnitudes: []float64{0, 0.5, 1}})

	if stats.Placements != 1 || stats.FailedPlacements != 1 || stats.Launches != 1 {
		t.Errorf("placement/launch counts = %d/%d/%d, want 1/1/1", stats.Placements, stats.FailedPlacements, stats.Launches)
	}
	if stats.Impacts != 2 || stats.Damaged != 1 || stats.Destroyed != 1 || stats.Consumed != 2 {
		t.Errorf("collision counts = %+v", stats)
	}
	if stats.ImpactSpeedMean != 6 {
		t.Errorf("impact speed mean = %v, want 6", stats.ImpactSpeedMean)
	}
	if stats.FieldMax != 1 || math.Abs(stats.FieldMean-0.5) > 1e-9 {
		t.Errorf("field max/mean = %v/%v, want 1/0.5", stats.FieldMax, stats.FieldMean)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 10 || stats.SimTime != 10 {
		t.Errorf("window = %d..%d @ %v", stats.WindowStartTick, stats.WindowEndTick, stats.SimTime)
	}

	// Counters reset for the next window
	next := c.Flush(20, FieldSample{})
	if next.Impacts != 0 || next.Placements != 0 || next.WindowStartTick != 10 {
		t.Errorf("second window not reset: %+v", next)
	}
}
