package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/gdamore/tcell/v2"
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
	VX, VY      float64 // Velocity
	Gravity     float64 // Downward acceleration (logical units/sec²)
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Symbol      rune
	Color       tcell.Color
}

// Burst describes a radial particle spray.
type Burst struct {
	Count    int
	Speed    float64
	Lifetime float64
	Gravity  float64
	Symbols  []rune
	Colors   []tcell.Color
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64, symbol rune, color tcell.Color) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X:           x,
		Y:           y,
		VX:          vx,
		VY:          vy,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        0.92,
		Symbol:      symbol,
		Color:       color,
	}
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst creates b.Count particles around (x, y) and appends them to dst.
func SpawnBurst(dst []*Particle, rng *rand.Rand, x, y float64, b Burst) []*Particle {
	if len(b.Symbols) == 0 || len(b.Colors) == 0 {
		return dst
	}
	for i := 0; i < b.Count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		// 50% to 150% speed, 50% to 100% lifetime
		spd := b.Speed * (0.5 + rng.Float64())
		life := b.Lifetime * (0.5 + rng.Float64()*0.5)

		p := NewParticle(x, y,
			math.Cos(angle)*spd, math.Sin(angle)*spd,
			life,
			b.Symbols[rng.Intn(len(b.Symbols))],
			b.Colors[rng.Intn(len(b.Colors))],
		)
		p.Gravity = b.Gravity
		dst = append(dst, p)
	}
	return dst
}

// Update advances the particle by dt seconds. Returns true once it expired.
func (p *Particle) Update(dt float64) bool {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	dragFactor := math.Pow(p.Drag, dt*60) // normalized to ~60fps
	p.VX *= dragFactor
	p.VY = p.VY*dragFactor + p.Gravity*dt

	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}

// Visible reports whether the particle should still be drawn.
// Particles in the last quarter of their life are skipped to fake a fade.
func (p *Particle) Visible() bool {
	if p.MaxLifetime <= 0 {
		return p.Lifetime > 0
	}
	return p.Lifetime/p.MaxLifetime >= 0.25
}
