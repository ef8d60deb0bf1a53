package audio

import (
	"math"
	"math/rand"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// String returns the wave name.
func (w Wave) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveSaw:
		return "sawtooth"
	case WaveTriangle:
		return "triangle"
	case WaveNoise:
		return "noise"
	}
	return "unknown"
}

// sample returns the wave value in [-1, 1] at phase in [0, 1).
func (w Wave) sample(phase float64, rng *rand.Rand) float64 {
	switch w {
	case WaveSine:
		return math.Sin(2 * math.Pi * phase)
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveTriangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	case WaveNoise:
		return rng.Float64()*2 - 1
	}
	return 0
}
