package input

// Pointer is a touch or mouse position in screen coordinates.
type Pointer struct {
	X, Y float64
}

// Pad is an on-screen directional pad: four square buttons arranged in a
// cross around (CX, CY), each Size wide, with a dead centre of the same size.
type Pad struct {
	CX, CY float64
	Size   float64
}

// Button returns the top-left corner of the button for one direction.
func (p Pad) Button(dir Directions) (x, y float64) {
	half := p.Size / 2
	x, y = p.CX-half, p.CY-half
	switch {
	case dir.Up:
		y -= p.Size
	case dir.Down:
		y += p.Size
	case dir.Left:
		x -= p.Size
	case dir.Right:
		x += p.Size
	}
	return x, y
}

// Directions returns the buttons held by any of the pointers.
func (p Pad) Directions(pointers []Pointer) Directions {
	var d Directions
	for _, pt := range pointers {
		d = d.Or(p.at(pt))
	}
	return d
}

func (p Pad) at(pt Pointer) Directions {
	for _, dir := range padButtons {
		x, y := p.Button(dir)
		if pt.X >= x && pt.X < x+p.Size && pt.Y >= y && pt.Y < y+p.Size {
			return dir
		}
	}
	return Directions{}
}

// padButtons lists the four pad directions in drawing order.
var padButtons = [...]Directions{{Up: true}, {Down: true}, {Left: true}, {Right: true}}

// PadButtons returns the four pad directions, one button each.
func PadButtons() []Directions {
	return padButtons[:]
}
