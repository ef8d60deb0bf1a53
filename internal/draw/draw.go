// Package draw renders to ANSI terminals using colored half-block cells.
package draw

import "strconv"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is an index into the 256-color terminal palette used by the game.
// The zero value is "nothing drawn".
type Color uint8

const (
	None Color = iota
	White
	Pink
	Rose
	Red
	Crimson
	Magenta
	Green
	Gold
	Dim
	Blush
	Night
	numColors
)

// ColorReset restores the terminal's default attributes.
const ColorReset = "\033[0m"

// xterm-256 codes for each Color.
var palette = [numColors]int{
	None:    0,
	White:   255,
	Pink:    218,
	Rose:    204,
	Red:     197,
	Crimson: 161,
	Magenta: 213,
	Green:   84,
	Gold:    222,
	Dim:     240,
	Blush:   225,
	Night:   53,
}

var (
	fgCodes [numColors]string
	bgCodes [numColors]string
)

func init() {
	for i := Color(1); i < numColors; i++ {
		fgCodes[i] = "\033[38;5;" + strconv.Itoa(palette[i]) + "m"
		bgCodes[i] = "\033[48;5;" + strconv.Itoa(palette[i]) + "m"
	}
	fgCodes[None] = "\033[39m"
	bgCodes[None] = "\033[49m"
}

// FG returns the escape sequence selecting c as foreground.
func (c Color) FG() string {
	if c >= numColors {
		return fgCodes[None]
	}
	return fgCodes[c]
}

// BG returns the escape sequence selecting c as background.
func (c Color) BG() string {
	if c >= numColors {
		return bgCodes[None]
	}
	return bgCodes[c]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
