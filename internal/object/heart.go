package object

import (
	"math"

	"github.com/tomz197/valentine-dash/internal/draw"
)

// Heart tuning.
const (
	HeartRadius       = 14.0
	HeartAvoidRadius  = 18.0 // Footprint reserved while spawning
	heartBobRate      = 2.2  // Radians per second
	heartBobAmplitude = 4.0
)

// Heart is a pickup. Collected flips to true exactly once and the heart
// stays in the round afterwards.
type Heart struct {
	X, Y      float64
	R         float64
	Collected bool
	Bob       float64 // Phase of the idle float animation
}

// NewHeart creates an uncollected heart at c with the given bob phase.
func NewHeart(c Circle, bob float64) *Heart {
	return &Heart{X: c.X, Y: c.Y, R: HeartRadius, Bob: bob}
}

// Update advances the bob animation of an uncollected heart.
func (h *Heart) Update(ctx UpdateContext) bool {
	if !h.Collected {
		h.Bob += ctx.Delta * heartBobRate
	}
	return false
}

// Circle returns the heart's collision circle.
func (h *Heart) Circle() Circle {
	return Circle{X: h.X, Y: h.Y, R: h.R}
}

// Draw renders an uncollected heart as two lobes over a point.
func (h *Heart) Draw(ctx DrawContext) {
	if h.Collected {
		return
	}
	c := ctx.Canvas
	x := h.X
	y := h.Y + math.Sin(h.Bob)*heartBobAmplitude
	r := h.R

	c.SetColor(draw.Red)
	c.FillCircle(x-r*0.48, y-r*0.25, r*0.55)
	c.FillCircle(x+r*0.48, y-r*0.25, r*0.55)

	points := c.BorrowPoints(3)
	points[0] = draw.Point{X: x - r*1.02, Y: y - r*0.1}
	points[1] = draw.Point{X: x + r*1.02, Y: y - r*0.1}
	points[2] = draw.Point{X: x, Y: y + r*1.05}
	c.DrawPolygon(points, true)
}
