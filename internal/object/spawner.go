package object

import (
	"math/rand"

	"github.com/tomz197/valentine-dash/internal/physics"
)

// Spawn placement parameters.
const (
	SpawnPadding         = 10.0
	DefaultSpawnAttempts = 500
)

// Circle is a position with a radius, used for placement and collision.
type Circle struct {
	X, Y, R float64
}

// Rect is an axis-aligned area candidates are drawn from.
type Rect struct {
	MinX, MaxX, MinY, MaxY float64
}

// SpawnArea is where new hearts and thorns may appear. The top band is
// larger to leave room for the HUD.
func (a Arena) SpawnArea() Rect {
	return Rect{MinX: 40, MaxX: a.Width - 40, MinY: 60, MaxY: a.Height - 40}
}

// SpawnNonOverlapping picks a uniformly random point in area whose circle of
// the given radius keeps SpawnPadding clearance from every avoided circle.
// When no such point is found within maxAttempts, the last candidate is
// returned anyway.
func SpawnNonOverlapping(rng *rand.Rand, area Rect, radius float64, avoid []Circle, maxAttempts int) Circle {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var c Circle
	for i := 0; i < maxAttempts; i++ {
		c = Circle{
			X: area.MinX + rng.Float64()*(area.MaxX-area.MinX),
			Y: area.MinY + rng.Float64()*(area.MaxY-area.MinY),
			R: radius,
		}
		if hasClearance(c, avoid) {
			return c
		}
	}
	return c
}

// hasClearance reports whether c keeps the padding distance from every circle.
func hasClearance(c Circle, avoid []Circle) bool {
	for _, a := range avoid {
		minDist := a.R + c.R + SpawnPadding
		if physics.DistanceSquared(c.X, c.Y, a.X, a.Y) < minDist*minDist {
			return false
		}
	}
	return true
}
