package physics

import "math/rand"

const (
	// Spawn velocity ranges for a bounce burst, in units per tick.
	burstSpreadX = 4.0 // vx ~ U[-4, 4]
	burstVYMin   = -8.0
	burstVYMax   = -3.0 // vy ~ U[-8, -3], upward

	DefaultBurst           = 8
	DefaultParticleGravity = 0.5
	DefaultParticleLife    = 20
	DefaultParticleRadius  = 3.0
)

// Particle is a short-lived fragment thrown up by a ground bounce.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Life   int
}

// ParticleSystem spawns a fixed burst of particles on each ground bounce and
// ages them until expiry. All randomness comes from the injected rng so that
// bursts are reproducible under a fixed seed.
type ParticleSystem struct {
	Burst   int
	Gravity float64
	Life    int
	Radius  float64

	particles []Particle
	rng       *rand.Rand
}

func NewParticleSystem(burst int, gravity float64, life int, radius float64, rng *rand.Rand) *ParticleSystem {
	if burst < 0 {
		burst = 0
	}
	return &ParticleSystem{
		Burst:     burst,
		Gravity:   gravity,
		Life:      life,
		Radius:    radius,
		particles: make([]Particle, 0, burst*4),
		rng:       rng,
	}
}

// Spawn emits one burst at the given bounce point.
func (ps *ParticleSystem) Spawn(x, y float64) {
	for i := 0; i < ps.Burst; i++ {
		ps.particles = append(ps.particles, Particle{
			X:      x,
			Y:      y,
			VX:     -burstSpreadX + ps.rng.Float64()*2*burstSpreadX,
			VY:     burstVYMin + ps.rng.Float64()*(burstVYMax-burstVYMin),
			Radius: ps.Radius,
			Life:   ps.Life,
		})
	}
}

// Update advances every live particle one tick and compacts out the expired
// ones in place. A particle is removed exactly once and never touched again.
func (ps *ParticleSystem) Update() {
	live := ps.particles[:0]
	for i := range ps.particles {
		p := ps.particles[i]
		p.VY += ps.Gravity
		p.X += p.VX
		p.Y += p.VY
		p.Life--
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	// Zero the tail so expired particles don't linger in the backing array.
	for i := len(live); i < len(ps.particles); i++ {
		ps.particles[i] = Particle{}
	}
	ps.particles = live
}

// Particles exposes the live particles for snapshotting. Callers must copy
// before retaining.
func (ps *ParticleSystem) Particles() []Particle { return ps.particles }

func (ps *ParticleSystem) Len() int { return len(ps.particles) }

// Clear drops all live particles.
func (ps *ParticleSystem) Clear() { ps.particles = ps.particles[:0] }
