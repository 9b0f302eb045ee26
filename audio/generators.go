package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Thud is a decaying low sine with a noisy attack.
type Thud struct {
	sr        beep.SampleRate
	intensity float64
	pos       int
	seed      uint32
}

// NewThud creates a thud generator. Higher intensity is louder and lower.
func NewThud(sr beep.SampleRate, intensity float64, seed uint32) *Thud {
	return &Thud{sr: sr, intensity: intensity, seed: seed}
}

func (g *Thud) Stream(samples [][2]float64) (n int, ok bool) {
	freq := 140 - 70*g.intensity
	gain := 0.15 + 0.35*g.intensity
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 22)
		click := math.Exp(-t*200) * noise(&g.seed)

		sample := gain * envelope * (0.8*math.Sin(2*math.Pi*freq*t) + 0.2*click)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *Thud) Err() error {
	return nil
}

// Burst is filtered noise over a rumble with a slow decay.
type Burst struct {
	sr   beep.SampleRate
	pos  int
	seed uint32
	prev float64
}

// NewBurst creates an explosion generator.
func NewBurst(sr beep.SampleRate, seed uint32) *Burst {
	return &Burst{sr: sr, seed: seed}
}

func (g *Burst) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 6)

		// One-pole low-pass keeps the noise from hissing
		g.prev += 0.2 * (noise(&g.seed) - g.prev)
		rumble := 0.3 * math.Sin(2*math.Pi*55*t)

		sample := envelope * (0.5*g.prev + rumble)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *Burst) Err() error {
	return nil
}

// Chirp sweeps linearly from one frequency to another.
type Chirp struct {
	sr       beep.SampleRate
	from, to float64
	length   int
	pos      int
	phase    float64
}

// NewChirp creates a sweep lasting d.
func NewChirp(sr beep.SampleRate, from, to float64, d time.Duration) *Chirp {
	return &Chirp{sr: sr, from: from, to: to, length: max(sr.N(d), 1)}
}

func (g *Chirp) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		p := math.Min(float64(g.pos)/float64(g.length), 1)
		freq := g.from + (g.to-g.from)*p
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		// Short fade at both ends avoids clicks
		envelope := math.Min(p*10, 1) * math.Min((1-p)*10, 1)

		sample := 0.2 * envelope * math.Sin(g.phase)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *Chirp) Err() error {
	return nil
}

// noise returns a value in [-1, 1) from a linear congruential state.
func noise(seed *uint32) float64 {
	*seed = *seed*1103515245 + 12345
	return float64(*seed>>8)/float64(1<<23) - 1
}
