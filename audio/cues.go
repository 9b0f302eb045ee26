// Package audio synthesizes short collision and launch cues with beep.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// maxCuesPerFrame caps how many cues a single frame may start, so a
	// volley hitting a planet does not stack dozens of identical thuds.
	maxCuesPerFrame = 4
)

// Cues plays impact, explosion and launch sounds through a shared mixer.
// The zero value is not usable; create with NewCues.
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	started     int
	seed        uint32
}

// NewCues creates a cue player. Nothing is played until Initialize succeeds.
func NewCues() *Cues {
	return &Cues{mixer: &beep.Mixer{}, seed: 1}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (c *Cues) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup silences every playing cue.
func (c *Cues) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// SetMuted toggles output without closing the speaker.
func (c *Cues) SetMuted(m bool) {
	c.mu.Lock()
	c.muted = m
	c.mu.Unlock()
}

// Muted reports whether cues are suppressed.
func (c *Cues) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// EndFrame resets the per-frame cue budget.
func (c *Cues) EndFrame() {
	c.mu.Lock()
	c.started = 0
	c.mu.Unlock()
}

// Impact plays a thud whose loudness follows intensity in [0, 1].
func (c *Cues) Impact(intensity float64) {
	c.play(func(seed uint32) beep.Streamer {
		return beep.Take(sampleRate.N(time.Millisecond*180), NewThud(sampleRate, clamp01(intensity), seed))
	})
}

// Explosion plays a noise burst that lasts longer for larger scales.
func (c *Cues) Explosion(scale float64) {
	d := time.Duration(250+int(math.Min(scale, 4)*100)) * time.Millisecond
	c.play(func(seed uint32) beep.Streamer {
		return beep.Take(sampleRate.N(d), NewBurst(sampleRate, seed))
	})
}

// Launch plays a short rising chirp.
func (c *Cues) Launch() {
	c.play(func(uint32) beep.Streamer {
		return beep.Take(sampleRate.N(time.Millisecond*120), NewChirp(sampleRate, 220, 660, 120*time.Millisecond))
	})
}

func (c *Cues) play(build func(seed uint32) beep.Streamer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.muted || c.started >= maxCuesPerFrame {
		return
	}
	c.started++
	c.seed = c.seed*1664525 + 1013904223
	s := build(c.seed)

	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
