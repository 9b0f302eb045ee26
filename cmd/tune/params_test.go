package main

import (
	"testing"

	"github.com/pthm-cable/gravwell/config"
)

func TestParamSpecsReadBackWhatTheyWrite(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector(cfg)

	seen := make(map[string]bool)
	for _, s := range pv.Specs {
		if seen[s.Name] {
			t.Errorf("duplicate param %s", s.Name)
		}
		seen[s.Name] = true
		if s.Default < s.Min || s.Default > s.Max {
			t.Errorf("%s default %v outside [%v, %v]", s.Name, s.Default, s.Min, s.Max)
		}
	}

	// Midpoint of every range, written then re-read through a fresh vector.
	mid := make([]float64, pv.Dim())
	for i := range mid {
		mid[i] = (pv.Specs[i].Min + pv.Specs[i].Max) / 2
	}
	c := cfg.Clone()
	pv.ApplyToConfig(c, mid)
	got := NewParamVector(c).DefaultVector()
	for i, s := range pv.Specs {
		want := mid[i]
		if s.Integer {
			want = float64(int(want + 0.5))
		}
		if got[i] != want {
			t.Errorf("%s = %v, want %v", s.Name, got[i], want)
		}
	}
}
