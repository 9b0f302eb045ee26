// Command tune searches gravity source and volley settings with CMA-ES so
// that launcher volleys strike bodies at a target rate and speed.
//
// Usage: go run ./cmd/tune -output out/ [-config base.yaml] [-max-evals 200]
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/gravwell/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 3000, "Simulation ticks per run")
	seeds := flag.Int("seeds", 3, "Seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Evaluation budget")
	population := flag.Int("population", 0, "CMA-ES population size (0 = 4 + 3*dim/2)")
	hitRatio := flag.Float64("hit-ratio", 0.6, "Target fraction of launches that strike a body")
	impactSpeed := flag.Float64("impact-speed", 0.5, "Target median impact speed as a fraction of physics.max_speed")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(*configPath, *outputDir, *maxTicks, *seeds, *maxEvals, *population, Targets{
		HitRatio:    *hitRatio,
		ImpactSpeed: *impactSpeed,
	}); err != nil {
		slog.Error("tune failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outputDir string, maxTicks, seeds, maxEvals, population int, targets Targets) error {
	if outputDir == "" {
		return fmt.Errorf("-output is required")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	base, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if base.Scenario.VolleyEvery <= 0 || base.Scenario.VolleySize <= 0 {
		return fmt.Errorf("scenario.volley_every and scenario.volley_size must be positive to tune")
	}

	params := NewParamVector(base)
	evalSeeds := make([]int64, seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(42 + 1000*i)
	}

	t, err := newTuning(params, NewFitnessEvaluator(params, int32(maxTicks), evalSeeds, base, targets),
		filepath.Join(outputDir, "tune_log.csv"), maxEvals)
	if err != nil {
		return err
	}
	defer t.close()

	if population == 0 {
		population = 4 + 3*params.Dim()/2
	}
	slog.Info("tuning",
		"params", params.Dim(),
		"population", population,
		"max_evals", maxEvals,
		"seeds", seeds,
		"ticks", maxTicks,
	)

	// Seeds already run in parallel inside each evaluation.
	result, err := optimize.Minimize(
		optimize.Problem{Func: t.objective},
		params.Normalize(params.DefaultVector()),
		&optimize.Settings{FuncEvaluations: maxEvals},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: population},
	)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if t.best == nil && result != nil {
		t.best = params.Clamp(params.Denormalize(result.X))
	}

	slog.Info("tuning complete",
		"evals", t.evals,
		"elapsed", shortDuration(time.Since(t.start)),
		"best_score", -t.bestFitness,
	)
	if t.best == nil {
		return nil
	}
	for i, spec := range params.Specs {
		slog.Info("best", "param", spec.Path, "value", t.best[i])
	}

	cfg := base.Clone()
	params.ApplyToConfig(cfg, t.best)
	out := filepath.Join(outputDir, "best_config.yaml")
	if err := cfg.WriteYAML(out); err != nil {
		return fmt.Errorf("write best config: %w", err)
	}
	slog.Info("best config saved", "path", out)
	return nil
}

// tuning is the state shared by every objective call.
type tuning struct {
	params    *ParamVector
	evaluator *FitnessEvaluator
	maxEvals  int

	file *os.File
	log  *csv.Writer

	evals       int
	bestFitness float64
	best        []float64 // clamped values of the best evaluation
	start       time.Time
}

func newTuning(params *ParamVector, ev *FitnessEvaluator, logPath string, maxEvals int) (*tuning, error) {
	f, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("create tune log: %w", err)
	}
	t := &tuning{
		params:      params,
		evaluator:   ev,
		maxEvals:    maxEvals,
		file:        f,
		log:         csv.NewWriter(f),
		bestFitness: 1,
		start:       time.Now(),
	}

	header := []string{"eval", "fitness", "hit_ratio", "impact_speed", "survival"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := t.log.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write tune log header: %w", err)
	}
	return t, nil
}

// objective evaluates one normalized candidate. Lower is better.
func (t *tuning) objective(x []float64) float64 {
	raw := t.params.Denormalize(x)
	fitness := t.evaluator.Evaluate(raw)
	used := t.params.Clamp(raw)
	t.evals++
	if fitness < t.bestFitness {
		t.bestFitness = fitness
		t.best = used
	}

	score := t.evaluator.LastScore()
	t.record(fitness, score, used)

	elapsed := time.Since(t.start)
	eta := time.Duration(t.maxEvals-t.evals) * (elapsed / time.Duration(t.evals))
	slog.Info("eval",
		"n", t.evals,
		"score", -fitness,
		"hit", score.HitRatio,
		"speed", score.ImpactSpeed,
		"survival", score.Survival,
		"best", -t.bestFitness,
		"elapsed", shortDuration(elapsed),
		"eta", shortDuration(eta),
	)
	return fitness
}

func (t *tuning) record(fitness float64, s Score, values []float64) {
	row := []string{
		strconv.Itoa(t.evals),
		strconv.FormatFloat(fitness, 'f', 6, 64),
		strconv.FormatFloat(s.HitRatio, 'f', 4, 64),
		strconv.FormatFloat(s.ImpactSpeed, 'f', 4, 64),
		strconv.FormatFloat(s.Survival, 'f', 4, 64),
	}
	for _, v := range values {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := t.log.Write(row); err != nil {
		slog.Warn("tune log write failed", "error", err)
	}
	t.log.Flush()
}

func (t *tuning) close() {
	t.log.Flush()
	t.file.Close()
}

// shortDuration renders d as 1h02m03s, or 2m03s under an hour.
func shortDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h, m, s := int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
