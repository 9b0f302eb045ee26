package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTime         float64 `csv:"sim_time"`

	// Population at window end
	Entities      int `csv:"entities"`
	Movers        int `csv:"movers"`
	OccupiedCells int `csv:"occupied_cells"`

	// Events during window
	Placements       int `csv:"placements"`
	FailedPlacements int `csv:"failed_placements"`
	Removals         int `csv:"removals"`
	Launches         int `csv:"launches"`
	Impacts          int `csv:"impacts"`
	Damaged          int `csv:"damaged"`
	Destroyed        int `csv:"destroyed"`
	Consumed         int `csv:"consumed"`
	OutOfBounds      int `csv:"out_of_bounds"`

	// Impact speed distribution over the window
	ImpactSpeedMean float64 `csv:"impact_speed_mean"`
	ImpactSpeedP50  float64 `csv:"impact_speed_p50"`
	ImpactSpeedP90  float64 `csv:"impact_speed_p90"`

	// Field magnitude distribution (sampled at window end)
	FieldMean float64 `csv:"field_mean"`
	FieldStd  float64 `csv:"field_std"`
	FieldP90  float64 `csv:"field_p90"`
	FieldMax  float64 `csv:"field_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputeDistribution calculates population mean and std plus percentiles.
// An empty sample yields all zeros.
func ComputeDistribution(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		Max:  sorted[n-1],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTime),
		slog.Int("entities", s.Entities),
		slog.Int("movers", s.Movers),
		slog.Int("occupied_cells", s.OccupiedCells),
		slog.Int("placements", s.Placements),
		slog.Int("failed_placements", s.FailedPlacements),
		slog.Int("removals", s.Removals),
		slog.Int("launches", s.Launches),
		slog.Int("impacts", s.Impacts),
		slog.Int("damaged", s.Damaged),
		slog.Int("destroyed", s.Destroyed),
		slog.Int("consumed", s.Consumed),
		slog.Int("out_of_bounds", s.OutOfBounds),
		slog.Float64("impact_speed_mean", s.ImpactSpeedMean),
		slog.Float64("impact_speed_p50", s.ImpactSpeedP50),
		slog.Float64("impact_speed_p90", s.ImpactSpeedP90),
		slog.Float64("field_mean", s.FieldMean),
		slog.Float64("field_std", s.FieldStd),
		slog.Float64("field_p90", s.FieldP90),
		slog.Float64("field_max", s.FieldMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
