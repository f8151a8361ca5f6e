package scene

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/tomz197/mergebox/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity, units per second
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 1/60 s (1.0 = no drag)
	Rise        float64 // Upward acceleration, units per second squared
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X:           x,
		Y:           y,
		VX:          vx,
		VY:          vy,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        0.95,
	}
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Update moves the particle. Returns true once it has expired.
func (p *Particle) Update(delta time.Duration) bool {
	dt := delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	dragFactor := math.Pow(p.Drag, dt*60)
	p.VX *= dragFactor
	p.VY *= dragFactor
	p.VY -= p.Rise * dt

	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}

// Draw sets the particle pixel; faded particles (< 25% lifetime) are skipped.
func (p *Particle) Draw(c *draw.Canvas) {
	if p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return
	}
	c.SetFloat(p.X, p.Y)
}

// SpawnBurst creates particles in a circular burst pattern.
func (s *Scene) SpawnBurst(x, y float64, count int, speed, lifetime float64) {
	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		// Speed varies 50% to 150%, lifetime 50% to 100%.
		spd := speed * (0.5 + rand.Float64())
		life := lifetime * (0.5 + rand.Float64()*0.5)
		s.Spawn(NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life))
	}
}

// SpawnRising creates slow particles drifting upwards from a circle outline.
func (s *Scene) SpawnRising(x, y, radius float64, count int, lifetime float64) {
	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		p := NewParticle(
			x+math.Cos(angle)*radius,
			y+math.Sin(angle)*radius,
			(rand.Float64()-0.5)*20,
			-20-rand.Float64()*40,
			lifetime*(0.6+rand.Float64()*0.4),
		)
		p.Drag = 1
		p.Rise = 60
		s.Spawn(p)
	}
}
