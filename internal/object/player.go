package object

import (
	"github.com/tomz197/valentine-dash/internal/draw"
	"github.com/tomz197/valentine-dash/internal/physics"
)

// Player tuning.
const (
	PlayerRadius         = 18.0
	PlayerBlinkFrequency = 12.0 // Hz while invulnerable
)

// Player is the avatar steered by the directional intent.
type Player struct {
	X, Y     float64 // Centre
	VX, VY   float64 // Velocity of the last update
	R        float64
	Speed    float64 // Units per second at full intent
	HitTimer float64 // Invulnerability seconds remaining
}

// NewPlayer places a player at the arena's start position.
func NewPlayer(arena Arena, speed float64) *Player {
	p := &Player{R: PlayerRadius}
	p.Reset(arena, speed)
	return p
}

// Reset moves the player back to the start position and clears its state.
func (p *Player) Reset(arena Arena, speed float64) {
	p.X = arena.Width * 0.2
	p.Y = arena.Height * 0.55
	p.VX, p.VY = 0, 0
	p.Speed = speed
	p.HitTimer = 0
}

// Update sets velocity from the intent, integrates, and clamps to the arena.
func (p *Player) Update(ctx UpdateContext) bool {
	ix, iy := ctx.Intent.Vector()
	p.VX = ix * p.Speed
	p.VY = iy * p.Speed

	p.X += p.VX * ctx.Delta
	p.Y += p.VY * ctx.Delta

	minX, maxX, minY, maxY := ctx.Arena.Limits(p.R)
	p.X = physics.Clamp(p.X, minX, maxX)
	p.Y = physics.Clamp(p.Y, minY, maxY)
	return false
}

// CoolDown counts the invulnerability window down by dt.
func (p *Player) CoolDown(dt float64) {
	if p.HitTimer > 0 {
		p.HitTimer -= dt
	}
}

// Invulnerable reports whether thorn hits are currently ignored.
func (p *Player) Invulnerable() bool {
	return p.HitTimer > 0
}

// Circle returns the player's collision circle.
func (p *Player) Circle() Circle {
	return Circle{X: p.X, Y: p.Y, R: p.R}
}

// Draw renders the player, blinking while invulnerable.
func (p *Player) Draw(ctx DrawContext) {
	if !ShouldRenderBlink(p.HitTimer, PlayerBlinkFrequency) {
		return
	}
	c := ctx.Canvas
	c.SetColor(draw.Blush)
	c.FillCircle(p.X, p.Y, p.R)
	c.SetColor(draw.Pink)
	c.FillCircle(p.X, p.Y+p.R*0.2, p.R*0.7)
	c.SetColor(draw.Night)
	c.FillCircle(p.X-p.R*0.35, p.Y-p.R*0.25, p.R*0.14)
	c.FillCircle(p.X+p.R*0.35, p.Y-p.R*0.25, p.R*0.14)
}
