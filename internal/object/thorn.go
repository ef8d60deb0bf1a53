package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/valentine-dash/internal/draw"
	"github.com/tomz197/valentine-dash/internal/physics"
)

// Thorn tuning.
const (
	ThornRadius      = 18.0
	ThornAvoidRadius = 28.0 // Footprint reserved while spawning
	thornSpikes      = 8
	thornSpinRate    = 0.25 // Radians per second, visual only
)

// Thorn is a hazard moving in a straight line and bouncing off the walls.
type Thorn struct {
	X, Y   float64
	VX, VY float64
	R      float64
}

// NewThorn creates a thorn at c heading in a random direction with a speed
// between 0.7 and 1.2 times speed.
func NewThorn(rng *rand.Rand, c Circle, speed float64) *Thorn {
	angle := rng.Float64() * 2 * math.Pi
	mag := speed * (0.7 + rng.Float64()*0.5)
	return &Thorn{
		X:  c.X,
		Y:  c.Y,
		VX: math.Cos(angle) * mag,
		VY: math.Sin(angle) * mag,
		R:  ThornRadius,
	}
}

// Update integrates the thorn and reflects it off the walls.
func (t *Thorn) Update(ctx UpdateContext) bool {
	t.X += t.VX * ctx.Delta
	t.Y += t.VY * ctx.Delta

	minX, maxX, minY, maxY := ctx.Arena.Limits(t.R)
	physics.Bounce(&t.X, &t.VX, minX, maxX)
	physics.Bounce(&t.Y, &t.VY, minY, maxY)
	return false
}

// Circle returns the thorn's collision circle.
func (t *Thorn) Circle() Circle {
	return Circle{X: t.X, Y: t.Y, R: t.R}
}

// Draw renders a spiked ring around a rose bud.
func (t *Thorn) Draw(ctx DrawContext) {
	c := ctx.Canvas
	spin := ctx.Time * thornSpinRate

	points := c.BorrowPoints(thornSpikes * 2)
	for i := range points {
		r := t.R
		if i%2 == 1 {
			r *= 0.6
		}
		a := spin + float64(i)*math.Pi/thornSpikes
		points[i] = draw.Point{X: t.X + math.Cos(a)*r, Y: t.Y + math.Sin(a)*r}
	}
	c.SetColor(draw.Green)
	c.DrawPolygon(points, true)

	c.SetColor(draw.Crimson)
	c.FillCircle(t.X, t.Y, t.R*0.45)
}
