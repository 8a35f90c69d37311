package game

import (
	"image/color"
	"math/rand"
)

// particleDamping is the fraction of velocity shed per second.
const particleDamping = 3.0

// Particle is a cosmetic dot that drifts, slows and fades out.
type Particle struct {
	Pos     Vec2
	Vel     Vec2
	Color   color.RGBA
	Radius  float64
	Life    float64
	MaxLife float64
}

// Alpha is the remaining life fraction used for fading.
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return clamp01(p.Life / p.MaxLife)
}

// Effects owns every live particle. Nothing in it feeds back into the
// simulation.
type Effects struct {
	Particles []*Particle
	rng       *rand.Rand
}

func NewEffects(rng *rand.Rand) *Effects {
	return &Effects{rng: rng}
}

// burst describes one particle explosion.
type burst struct {
	count    int
	speed    float64
	radius   float64
	lifetime float64
}

var (
	impactBurst = burst{count: 18, speed: projectileSpeed * 0.45, radius: 1, lifetime: 0.45}
	expiryBurst = burst{count: 6, speed: projectileSpeed * 0.25, radius: 1, lifetime: 0.25}
	deathBurst  = burst{count: 40, speed: 160, radius: 2, lifetime: 0.9}
)

// Spawn emits a burst of particles at pos in random directions.
func (fx *Effects) Spawn(pos Vec2, c color.RGBA, b burst) {
	for i := 0; i < b.count; i++ {
		dir := Vec2{fx.rng.Float64()*2 - 1, fx.rng.Float64()*2 - 1}.Norm()
		speed := b.speed * (0.1 + 0.4*fx.rng.Float64())
		fx.Particles = append(fx.Particles, &Particle{
			Pos:     pos,
			Vel:     dir.Scale(speed),
			Color:   c,
			Radius:  b.radius,
			Life:    b.lifetime,
			MaxLife: b.lifetime,
		})
	}
}

// Update moves, damps and expires particles.
func (fx *Effects) Update(dt float64) {
	keep := fx.Particles[:0]
	damp := 1 - particleDamping*dt
	if damp < 0 {
		damp = 0
	}
	for _, p := range fx.Particles {
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Vel = p.Vel.Scale(damp)
		p.Life -= dt
		if p.Life > 0 {
			keep = append(keep, p)
		}
	}
	for i := len(keep); i < len(fx.Particles); i++ {
		fx.Particles[i] = nil
	}
	fx.Particles = keep
}

// Clear drops every particle.
func (fx *Effects) Clear() { fx.Particles = fx.Particles[:0] }
