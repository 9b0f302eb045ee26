package systems

import (
	"math"
	"math/rand"
)

// ParticleType identifies the type of effect particle.
type ParticleType uint8

const (
	ParticleSpark ParticleType = iota
	ParticleDebris
	ParticleSmoke
)

// EffectParticle represents a visual feedback particle.
type EffectParticle struct {
	X, Y       float32
	VelX, VelY float32
	Life       int32
	MaxLife    int32
	Type       ParticleType
	Size       float32
}

// ParticleSystem manages explosion particles for visual feedback.
type ParticleSystem struct {
	Particles    []EffectParticle
	maxParticles int
	rng          *rand.Rand
}

// NewParticleSystem creates a new particle system.
func NewParticleSystem(seed int64) *ParticleSystem {
	return &ParticleSystem{
		Particles:    make([]EffectParticle, 0, 1000),
		maxParticles: 1000,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Update processes all particles.
func (s *ParticleSystem) Update() {
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life--
		if p.Life <= 0 {
			continue
		}

		switch p.Type {
		case ParticleSmoke:
			// Expand and slow quickly
			p.Size += 0.05
			p.VelX *= 0.9
			p.VelY *= 0.9
		default:
			p.VelX *= 0.96
			p.VelY *= 0.96
		}

		p.X += p.VelX
		p.Y += p.VelY

		s.Particles[alive] = s.Particles[i]
		alive++
	}
	s.Particles = s.Particles[:alive]
}

// EmitExplosion emits a radial burst at (x, y). Scale multiplies particle
// count, speed and size; impacts use ~1, destroyed bodies more.
func (s *ParticleSystem) EmitExplosion(x, y, scale float32) {
	if scale <= 0 {
		return
	}
	sparks := int(float32(12+s.rng.Intn(8)) * scale)
	for i := 0; i < sparks; i++ {
		s.emitRadial(x, y, scale, ParticleSpark)
	}
	debris := int(float32(4+s.rng.Intn(4)) * scale)
	for i := 0; i < debris; i++ {
		s.emitRadial(x, y, scale, ParticleDebris)
	}
	smoke := int(3 * scale)
	for i := 0; i < smoke; i++ {
		s.emitRadial(x, y, scale, ParticleSmoke)
	}
}

func (s *ParticleSystem) emitRadial(x, y, scale float32, ptype ParticleType) {
	if len(s.Particles) >= s.maxParticles {
		return
	}

	var speed, size float32
	var life int32
	switch ptype {
	case ParticleSpark:
		speed = (1.0 + s.rng.Float32()*2.0) * scale
		size = 1 + s.rng.Float32()
		life = 15 + s.rng.Int31n(15)
	case ParticleDebris:
		speed = (0.4 + s.rng.Float32()*0.8) * scale
		size = (2 + s.rng.Float32()*2) * scale
		life = 40 + s.rng.Int31n(30)
	default:
		speed = 0.2 + s.rng.Float32()*0.3
		size = (4 + s.rng.Float32()*3) * scale
		life = 50 + s.rng.Int31n(40)
	}

	angle := s.rng.Float64() * 2 * math.Pi
	s.Particles = append(s.Particles, EffectParticle{
		X:       x + (s.rng.Float32()-0.5)*4,
		Y:       y + (s.rng.Float32()-0.5)*4,
		VelX:    float32(math.Cos(angle)) * speed,
		VelY:    float32(math.Sin(angle)) * speed,
		Life:    life,
		MaxLife: life,
		Type:    ptype,
		Size:    size,
	})
}

// Count returns the current number of active particles.
func (s *ParticleSystem) Count() int {
	return len(s.Particles)
}

// Clear removes all particles.
func (s *ParticleSystem) Clear() {
	s.Particles = s.Particles[:0]
}
