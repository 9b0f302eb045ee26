package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/game"
	"github.com/pthm-cable/gravwell/telemetry"
)

// Score component weights.
const (
	weightHitRatio    = 0.5
	weightImpactSpeed = 0.3
	weightSurvival    = 0.2

	hitRatioWidth    = 0.2
	impactSpeedWidth = 0.25
)

// Targets are the volley outcomes a tuned field aims for.
type Targets struct {
	HitRatio    float64 // Fraction of launches that strike a body
	ImpactSpeed float64 // Median impact speed as a fraction of the speed clamp
}

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	targets     Targets
	statsWindow float64

	mu        sync.Mutex
	lastScore Score
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		targets:     targets,
		statsWindow: 10.0,
	}
}

// LastScore returns the averaged score from the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() Score {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore
}

// Totals accumulates window stats over one run.
type Totals struct {
	Launches    int
	Impacts     int
	Destroyed   int
	OutOfBounds int
	speedSum    float64 // Sum of per-window median impact speeds, weighted by impacts
}

// Add folds one window into the totals.
func (t *Totals) Add(w telemetry.WindowStats) {
	t.Launches += w.Launches
	t.Impacts += w.Impacts
	t.Destroyed += w.Destroyed
	t.OutOfBounds += w.OutOfBounds
	t.speedSum += w.ImpactSpeedP50 * float64(w.Impacts)
}

// MedianImpactSpeed approximates the run's median impact speed.
func (t *Totals) MedianImpactSpeed() float64 {
	if t.Impacts == 0 {
		return 0
	}
	return t.speedSum / float64(t.Impacts)
}

// Score is the per-component breakdown of a run, each in [0, 1].
type Score struct {
	HitRatio    float64
	ImpactSpeed float64
	Survival    float64
	Total       float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	scores := make([]Score, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			cfg := fe.baseConfig.Clone()
			fe.params.ApplyToConfig(cfg, x)
			totals, bodies := fe.runSimulation(cfg, s)
			scores[idx] = computeScore(totals, bodies, cfg.Physics.MaxSpeed, fe.targets)
		}(i, seed)
	}
	wg.Wait()

	var avg Score
	for _, s := range scores {
		avg.HitRatio += s.HitRatio
		avg.ImpactSpeed += s.ImpactSpeed
		avg.Survival += s.Survival
		avg.Total += s.Total
	}
	n := float64(len(scores))
	avg.HitRatio /= n
	avg.ImpactSpeed /= n
	avg.Survival /= n
	avg.Total /= n

	fe.mu.Lock()
	fe.lastScore = avg
	fe.mu.Unlock()

	return -avg.Total
}

// runSimulation executes one headless run and returns its totals and the
// number of scenario bodies placed.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (Totals, int) {
	g, err := game.NewGameWithOptions(game.Options{Config: cfg, StatsWindowSec: fe.statsWindow})
	if err != nil {
		return Totals{}, 0
	}
	defer g.Unload()

	var totals Totals
	g.SetStatsCallback(totals.Add)

	rng := rand.New(rand.NewSource(seed))
	bodies := g.Populate(rng)
	for g.CurrentTick() < fe.maxTicks {
		if g.VolleyDue() {
			g.SpawnVolley(rng)
		}
		g.Tick(cfg.Physics.DT)
	}
	return totals, bodies
}

// computeScore rates a run against the targets.
func computeScore(t Totals, bodies int, maxSpeed float64, targets Targets) Score {
	var s Score
	if t.Launches == 0 {
		return s
	}

	ratio := math.Min(float64(t.Impacts)/float64(t.Launches), 1)
	s.HitRatio = gaussian(ratio, targets.HitRatio, hitRatioWidth)

	if maxSpeed > 0 && t.Impacts > 0 {
		s.ImpactSpeed = gaussian(t.MedianImpactSpeed()/maxSpeed, targets.ImpactSpeed, impactSpeedWidth)
	}

	// Scenario bodies should mostly outlive the run
	s.Survival = 1
	if bodies > 0 {
		s.Survival = clamp01(1 - float64(t.Destroyed)/float64(bodies))
	}

	s.Total = weightHitRatio*s.HitRatio + weightImpactSpeed*s.ImpactSpeed + weightSurvival*s.Survival
	return s
}

func gaussian(x, mean, width float64) float64 {
	d := (x - mean) / width
	return math.Exp(-d * d)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
