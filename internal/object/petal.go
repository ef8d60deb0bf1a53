package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/valentine-dash/internal/draw"
)

// Petal motion tuning.
const (
	PetalMaxLife  = 1.6
	petalGravity  = 120.0 // Units per second squared
	petalSway     = 8.0   // Horizontal acceleration amplitude
	petalWrapEdge = 10.0
	petalFloor    = 40.0 // Distance below the arena at which petals are dropped
)

// petalPool is a sync.Pool for reusing Petal objects to reduce allocations.
var petalPool = sync.Pool{
	New: func() any {
		return &Petal{}
	},
}

// Petal is one falling particle of the win celebration.
type Petal struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // Seconds remaining
	R      float64
	Rot    float64 // Rotation in radians
	VR     float64 // Angular velocity
	Wob    float64 // Sway phase
	Hue    float64 // Degrees, pink to red
}

// NewPetal takes a petal from the pool and scatters it above the arena.
func NewPetal(rng *rand.Rand, arena Arena) *Petal {
	p := petalPool.Get().(*Petal)
	*p = Petal{
		X:    uniform(rng, 20, arena.Width-20),
		Y:    uniform(rng, -arena.Height*0.6, -20),
		VX:   uniform(rng, -35, 35),
		VY:   uniform(rng, 60, 160),
		Life: uniform(rng, 0.9, PetalMaxLife),
		R:    uniform(rng, 4, 9),
		Rot:  uniform(rng, 0, 2*math.Pi),
		VR:   uniform(rng, -4, 4),
		Wob:  uniform(rng, 0, 2*math.Pi),
		Hue:  uniform(rng, 325, 355),
	}
	return p
}

// Release returns the petal to the pool for reuse.
// Should be called when the petal is removed from the effect.
func (p *Petal) Release() {
	petalPool.Put(p)
}

// Update ages, sways, and drops the petal, wrapping it horizontally.
// Returns true once it has expired or fallen past the arena.
func (p *Petal) Update(ctx UpdateContext) bool {
	dt := ctx.Delta
	p.Life -= dt
	p.Wob += dt * uniform(ctx.Rand, 2.0, 3.2)
	p.VX += math.Sin(p.Wob) * petalSway * dt
	p.VY += petalGravity * dt
	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.Rot += p.VR * dt

	if p.X < -petalWrapEdge {
		p.X = ctx.Arena.Width + petalWrapEdge
	} else if p.X > ctx.Arena.Width+petalWrapEdge {
		p.X = -petalWrapEdge
	}

	return p.Life <= 0 || p.Y >= ctx.Arena.Height+petalFloor
}

// Alpha is the petal's opacity, fading with remaining life.
func (p *Petal) Alpha() float64 {
	a := p.Life / PetalMaxLife
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return a * 0.9
}

// Draw renders the petal as a small two-lobed blob turned by Rot.
// Nearly transparent petals are skipped.
func (p *Petal) Draw(ctx DrawContext) {
	if p.Alpha() < 0.15 {
		return
	}
	c := ctx.Canvas
	switch {
	case p.Hue < 335:
		c.SetColor(draw.Magenta)
	case p.Hue < 345:
		c.SetColor(draw.Pink)
	default:
		c.SetColor(draw.Rose)
	}
	c.FillCircle(p.X, p.Y, p.R)
	c.FillCircle(p.X+math.Cos(p.Rot)*p.R*0.8, p.Y+math.Sin(p.Rot)*p.R*0.8, p.R*0.6)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
