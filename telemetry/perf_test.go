package telemetry

import (
	"testing"
	"time"
)

// stepClock is a manual clock for PerfCollector.
type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time          { return c.t }
func (c *stepClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClockedCollector(window int) (*PerfCollector, *stepClock) {
	clk := &stepClock{t: time.Unix(0, 0)}
	pc := NewPerfCollector(window)
	pc.now = clk.now
	return pc, clk
}

func TestPerfCollector_TracksPhases(t *testing.T) {
	pc, clk := newClockedCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseCommands)
		clk.advance(100 * time.Microsecond)
		pc.StartPhase(PhaseMotion)
		clk.advance(300 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration != 400*time.Microsecond {
		t.Errorf("AvgTickDuration = %v, want 400µs", stats.AvgTickDuration)
	}
	tests := []struct {
		phase   string
		wantAvg time.Duration
		wantPct float64
	}{
		{PhaseCommands, 100 * time.Microsecond, 25},
		{PhaseMotion, 300 * time.Microsecond, 75},
		{PhaseTelemetry, 0, 0},
	}
	for _, tt := range tests {
		if got := stats.PhaseAvg[tt.phase]; got != tt.wantAvg {
			t.Errorf("PhaseAvg[%s] = %v, want %v", tt.phase, got, tt.wantAvg)
		}
		if got := stats.PhasePct[tt.phase]; got != tt.wantPct {
			t.Errorf("PhasePct[%s] = %v, want %v", tt.phase, got, tt.wantPct)
		}
	}
	if stats.TicksPerSecond != 2500 {
		t.Errorf("TicksPerSecond = %v, want 2500", stats.TicksPerSecond)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clk := newClockedCollector(5)

	// Ticks of 1..12 ms overfill the window; only 8..12 remain.
	for i := 1; i <= 12; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseMotion)
		clk.advance(time.Duration(i) * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration != 10*time.Millisecond {
		t.Errorf("AvgTickDuration = %v, want 10ms", stats.AvgTickDuration)
	}
	if stats.MinTickDuration != 8*time.Millisecond || stats.MaxTickDuration != 12*time.Millisecond {
		t.Errorf("min/max = %v/%v, want 8ms/12ms", stats.MinTickDuration, stats.MaxTickDuration)
	}
	if stats.TicksPerSecond != 100 {
		t.Errorf("TicksPerSecond = %v, want 100", stats.TicksPerSecond)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(0).Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		MinTickDuration: time.Millisecond,
		MaxTickDuration: 2 * time.Millisecond,
		PhasePct: map[string]float64{
			PhaseCommands:  5,
			PhaseMotion:    90,
			PhaseTelemetry: 5,
		},
		TicksPerSecond: 666,
	}

	rec := stats.ToCSV(120)
	if rec.WindowEnd != 120 {
		t.Errorf("WindowEnd = %d, want 120", rec.WindowEnd)
	}
	if rec.AvgTickUS != 1500 || rec.MinTickUS != 1000 || rec.MaxTickUS != 2000 {
		t.Errorf("tick us = %d/%d/%d, want 1500/1000/2000", rec.AvgTickUS, rec.MinTickUS, rec.MaxTickUS)
	}
	if rec.MotionPct != 90 || rec.CommandsPct != 5 || rec.TelemetryPct != 5 {
		t.Errorf("phase pct = %+v", rec)
	}
}

func TestPerfCollector_UnknownPhaseCountsTowardTick(t *testing.T) {
	pc, clk := newClockedCollector(4)
	pc.StartTick()
	pc.StartPhase("warmup")
	clk.advance(100 * time.Microsecond)
	pc.EndTick()

	stats := pc.Stats()
	if stats.AvgTickDuration != 100*time.Microsecond {
		t.Errorf("AvgTickDuration = %v, want 100µs", stats.AvgTickDuration)
	}
	for _, phase := range Phases {
		if got := stats.PhaseAvg[phase]; got != 0 {
			t.Errorf("PhaseAvg[%s] = %v, want 0", phase, got)
		}
	}
}

func TestPerfStats_MinMaxP90(t *testing.T) {
	pc, clk := newClockedCollector(10)
	// Ticks of 1..10 ms.
	for i := 1; i <= 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseMotion)
		clk.advance(time.Duration(i) * time.Millisecond)
		pc.EndTick()
	}

	s := pc.Stats()
	if s.MinTickDuration != time.Millisecond || s.MaxTickDuration != 10*time.Millisecond {
		t.Errorf("min/max = %v/%v, want 1ms/10ms", s.MinTickDuration, s.MaxTickDuration)
	}
	if s.P90TickDuration != 9*time.Millisecond {
		t.Errorf("P90TickDuration = %v, want 9ms", s.P90TickDuration)
	}
	if got := s.ToCSV(1).P90TickUS; got != 9000 {
		t.Errorf("P90TickUS = %d, want 9000", got)
	}
}

func TestPerfCollector_FPS(t *testing.T) {
	pc, clk := newClockedCollector(4)
	pc.RecordFrame()
	clk.advance(20 * time.Millisecond)
	pc.RecordFrame()

	if got := pc.Stats().FPS; got != 50 {
		t.Errorf("FPS = %v, want 50", got)
	}
}

func TestPhaseLabel(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{PhaseCommands, "Commands"},
		{PhaseMotion, "Motion"},
		{PhaseTelemetry, "Telemetry"},
		{"unknown", "unknown"},
	}
	for _, tt := range tests {
		if got := PhaseLabel(tt.name); got != tt.want {
			t.Errorf("PhaseLabel(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
