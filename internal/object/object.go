package object

import (
	"math/rand"

	"github.com/tomz197/valentine-dash/internal/draw"
	"github.com/tomz197/valentine-dash/internal/input"
)

// WallMargin is the gap kept between an entity's edge and the arena wall.
const WallMargin = 10.0

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta  float64 // Seconds since the previous update
	Arena  Arena
	Intent input.Directions
	Rand   *rand.Rand
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
	Time   float64 // Seconds since the frontend started, for idle animation
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw draws the object onto ctx.Canvas.
	Draw(ctx DrawContext)
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Arena is the fixed-size play field in logical units.
type Arena struct {
	Width, Height float64
}

// Limits returns the range an entity of radius r may occupy on each axis.
func (a Arena) Limits(r float64) (minX, maxX, minY, maxY float64) {
	return r + WallMargin, a.Width - r - WallMargin, r + WallMargin, a.Height - r - WallMargin
}

// Contains reports whether a circle lies fully within its limits.
func (a Arena) Contains(c Circle) bool {
	minX, maxX, minY, maxY := a.Limits(c.R)
	return c.X >= minX && c.X <= maxX && c.Y >= minY && c.Y <= maxY
}

// ShouldRenderBlink returns true if an object with remaining protection/invincibility
// time should be rendered this frame (for blinking effect).
// Returns true always if remainingTime <= 0 (no protection).
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	// Blink based on frequency (e.g., 5.0 = 5Hz, 10.0 = 10Hz)
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
