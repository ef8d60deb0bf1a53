// Package input turns terminal bytes and other device state into movement
// intent and one-shot game actions.
package input

import "math"

// Directions is the raw directional intent of one frame. Several devices
// (keyboard, on-screen pad) are combined with Or.
type Directions struct {
	Up, Down, Left, Right bool
}

// Or merges two intents; a direction is held if either source holds it.
func (d Directions) Or(o Directions) Directions {
	return Directions{
		Up:    d.Up || o.Up,
		Down:  d.Down || o.Down,
		Left:  d.Left || o.Left,
		Right: d.Right || o.Right,
	}
}

// Any reports whether any direction is held.
func (d Directions) Any() bool {
	return d.Up || d.Down || d.Left || d.Right
}

// Vector returns the intent as a vector of length 1, or zero when opposite
// keys cancel or nothing is held. Screen coordinates: +y is down.
func (d Directions) Vector() (x, y float64) {
	if d.Left {
		x--
	}
	if d.Right {
		x++
	}
	if d.Up {
		y--
	}
	if d.Down {
		y++
	}
	if x != 0 && y != 0 {
		return x / math.Sqrt2, y / math.Sqrt2
	}
	return x, y
}
