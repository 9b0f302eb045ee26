package main

import (
	"math"

	"github.com/pthm-cable/gravwell/config"
)

// ParamSpec is one tunable value and where it lives in the config.
type ParamSpec struct {
	Name     string // tune_log.csv column
	Path     string // config key, for humans
	Min, Max float64
	Default  float64
	Integer  bool // rounded before it is written

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector is the search space, in Specs order.
type ParamVector struct {
	Specs []ParamSpec
}

// sourceParam tunes a field of one gravity source.
func sourceParam(kind, field string, lo, hi float64) ParamSpec {
	p := ParamSpec{Name: kind + "_" + field, Path: "gravity.sources." + kind + "." + field, Min: lo, Max: hi}
	switch field {
	case "strength":
		p.get = func(c *config.Config) float64 { return c.Gravity.Sources[kind].Strength }
		p.set = func(c *config.Config, v float64) {
			s := c.Gravity.Sources[kind]
			s.Strength = v
			c.Gravity.Sources[kind] = s
		}
	case "radius":
		p.Integer = true
		p.get = func(c *config.Config) float64 { return float64(c.Gravity.Sources[kind].Radius) }
		p.set = func(c *config.Config, v float64) {
			s := c.Gravity.Sources[kind]
			s.Radius = int(v)
			c.Gravity.Sources[kind] = s
		}
	default:
		panic("tune: unknown source field " + field)
	}
	return p
}

// NewParamVector lists the tuned parameters with defaults taken from base,
// pulled inside their bounds.
func NewParamVector(base *config.Config) *ParamVector {
	pv := &ParamVector{Specs: []ParamSpec{
		sourceParam("planet", "strength", 0.05, 1.5),
		sourceParam("planet", "radius", 5, 60),
		sourceParam("black_hole", "strength", 0.1, 2.5),
		sourceParam("black_hole", "radius", 5, 60),
		sourceParam("asteroid", "strength", 0, 0.5),
		{
			Name: "launch_speed", Path: "scenario.launch_speed", Min: 1, Max: 8,
			get: func(c *config.Config) float64 { return c.Scenario.LaunchSpeed },
			set: func(c *config.Config, v float64) { c.Scenario.LaunchSpeed = v },
		},
		{
			Name: "launch_spread", Path: "scenario.launch_spread", Min: 0, Max: 1,
			get: func(c *config.Config) float64 { return c.Scenario.LaunchSpread },
			set: func(c *config.Config, v float64) { c.Scenario.LaunchSpread = v },
		},
	}}
	for i := range pv.Specs {
		s := &pv.Specs[i]
		s.Default = s.clamp(s.get(base))
	}
	return pv
}

func (s ParamSpec) clamp(v float64) float64 {
	return math.Max(s.Min, math.Min(s.Max, v))
}

func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

func (pv *ParamVector) DefaultVector() []float64 {
	return pv.each(nil, func(s ParamSpec, _ float64) float64 { return s.Default })
}

// Normalize maps raw values onto [0, 1] per parameter.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	return pv.each(raw, func(s ParamSpec, v float64) float64 { return (v - s.Min) / (s.Max - s.Min) })
}

// Denormalize inverts Normalize. Results may fall outside the bounds.
func (pv *ParamVector) Denormalize(unit []float64) []float64 {
	return pv.each(unit, func(s ParamSpec, v float64) float64 { return s.Min + v*(s.Max-s.Min) })
}

func (pv *ParamVector) Clamp(v []float64) []float64 {
	return pv.each(v, ParamSpec.clamp)
}

// ApplyToConfig writes values into cfg, clamped and rounded where needed.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, s := range pv.Specs {
		v := s.clamp(values[i])
		if s.Integer {
			v = math.Round(v)
		}
		s.set(cfg, v)
	}
}

// each maps fn over the specs, paired with in[i] when in is non-nil.
func (pv *ParamVector) each(in []float64, fn func(ParamSpec, float64) float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		var v float64
		if in != nil {
			v = in[i]
		}
		out[i] = fn(s, v)
	}
	return out
}
