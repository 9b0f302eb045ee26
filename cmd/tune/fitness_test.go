package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/telemetry"
)

func TestComputeScore(t *testing.T) {
	targets := Targets{HitRatio: 0.5, ImpactSpeed: 0.5}
	tests := []struct {
		name   string
		totals Totals
		bodies int
		want   Score
	}{
		{
			name: "no launches",
			want: Score{},
		},
		{
			name:   "on target",
			totals: Totals{Launches: 10, Impacts: 5, speedSum: 5 * 4},
			bodies: 4,
			want:   Score{HitRatio: 1, ImpactSpeed: 1, Survival: 1, Total: 1},
		},
		{
			name:   "every body destroyed",
			totals: Totals{Launches: 10, Impacts: 5, Destroyed: 4, speedSum: 5 * 4},
			bodies: 4,
			want:   Score{HitRatio: 1, ImpactSpeed: 1, Survival: 0, Total: 0.8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeScore(tt.totals, tt.bodies, 8, targets)
			if math.Abs(got.Total-tt.want.Total) > 1e-9 ||
				math.Abs(got.HitRatio-tt.want.HitRatio) > 1e-9 ||
				math.Abs(got.Survival-tt.want.Survival) > 1e-9 {
				t.Errorf("computeScore = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeScorePenalizesMisses(t *testing.T) {
	targets := Targets{HitRatio: 0.6, ImpactSpeed: 0.5}
	good := computeScore(Totals{Launches: 10, Impacts: 6, speedSum: 6 * 4}, 3, 8, targets)
	bad := computeScore(Totals{Launches: 10, Impacts: 1, speedSum: 4}, 3, 8, targets)
	if bad.Total >= good.Total {
		t.Errorf("mostly missing score %.3f, want below on-target %.3f", bad.Total, good.Total)
	}
}

func TestTotalsAdd(t *testing.T) {
	var tot Totals
	tot.Add(telemetry.WindowStats{Launches: 3, Impacts: 2, ImpactSpeedP50: 2})
	tot.Add(telemetry.WindowStats{Launches: 3, Impacts: 2, ImpactSpeedP50: 4, Destroyed: 1})
	if tot.Launches != 6 || tot.Impacts != 4 || tot.Destroyed != 1 {
		t.Errorf("totals = %+v", tot)
	}
	if got := tot.MedianImpactSpeed(); got != 3 {
		t.Errorf("MedianImpactSpeed = %v, want 3", got)
	}
}

func TestParamVectorApply(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector(cfg)

	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: normalize round trip = %v, want %v", pv.Specs[i].Name, back[i], def[i])
		}
	}

	c := cfg.Clone()
	vals := pv.DefaultVector()
	vals[0] = 100  // planet strength above bound
	vals[1] = 20.4 // planet radius rounds down
	pv.ApplyToConfig(c, vals)
	if got := c.Gravity.Sources["planet"].Strength; got != pv.Specs[0].Max {
		t.Errorf("planet strength = %v, want clamp to %v", got, pv.Specs[0].Max)
	}
	if got := c.Gravity.Sources["planet"].Radius; got != 20 {
		t.Errorf("planet radius = %d, want 20", got)
	}
	if cfg.Gravity.Sources["planet"].Strength == c.Gravity.Sources["planet"].Strength {
		t.Error("ApplyToConfig on a clone changed the base config")
	}
}

func TestEvaluateRuns(t *testing.T) {
	if testing.Short() {
		t.Skip("runs headless simulations")
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector(cfg)
	fe := NewFitnessEvaluator(pv, 300, []int64{1, 2}, cfg, Targets{HitRatio: 0.6, ImpactSpeed: 0.5})
	fitness := fe.Evaluate(pv.DefaultVector())
	if fitness > 0 || fitness < -1 {
		t.Errorf("fitness = %v, want in [-1, 0]", fitness)
	}
	if got := fe.LastScore().Total; math.Abs(got+fitness) > 1e-9 {
		t.Errorf("last score total = %v, want %v", got, -fitness)
	}
}
