package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwell/camera"
	"github.com/pthm-cable/gravwell/systems"
)

// ParticleRenderer renders explosion particles.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders all particles in world space under the camera.
func (r *ParticleRenderer) Draw(particles []systems.EffectParticle, cam *camera.Camera) {
	// Smoke and debris first, sparks glow on top
	for i := range particles {
		p := &particles[i]
		if p.Type == systems.ParticleSpark {
			continue
		}
		r.drawParticle(p, cam)
	}

	rl.BeginBlendMode(rl.BlendAdditive)
	for i := range particles {
		p := &particles[i]
		if p.Type != systems.ParticleSpark {
			continue
		}
		r.drawParticle(p, cam)
	}
	rl.EndBlendMode()
}

func (r *ParticleRenderer) drawParticle(p *systems.EffectParticle, cam *camera.Camera) {
	if !cam.IsVisible(p.X, p.Y, p.Size) {
		return
	}

	// Calculate life ratio for fade
	lifeRatio := float32(p.Life) / float32(p.MaxLife)

	var color rl.Color
	switch p.Type {
	case systems.ParticleSpark:
		// Yellow-white
		color = rl.Color{
			R: 255,
			G: uint8(180 + lifeRatio*70),
			B: uint8(80 + lifeRatio*120),
			A: uint8(lifeRatio * 230),
		}
	case systems.ParticleDebris:
		// Grey/brown
		color = rl.Color{
			R: 120,
			G: 100,
			B: 80,
			A: uint8(lifeRatio * 200),
		}
	case systems.ParticleSmoke:
		color = rl.Color{
			R: 90,
			G: 90,
			B: 100,
			A: uint8(lifeRatio * 90),
		}
	}

	size := p.Size * cam.Zoom
	if p.Type == systems.ParticleSpark {
		size *= lifeRatio
	}
	if size < 0.5 {
		size = 0.5
	}
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, size, color)
}
