// Package physics provides collision detection and distance utilities.
package physics

import "math"

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap checks if two circles overlap. Touching circles do not.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Normalize scales (x, y) to unit length. The zero vector is returned as is.
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// Bounce keeps a coordinate inside [lo, hi] and reflects its velocity when it
// crossed a wall. Returns true when a reflection happened.
func Bounce(pos, vel *float64, lo, hi float64) bool {
	if *pos < lo {
		*pos = lo
		*vel = -*vel
		return true
	}
	if *pos > hi {
		*pos = hi
		*vel = -*vel
		return true
	}
	return false
}
