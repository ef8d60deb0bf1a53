package object

import (
	"math"

	"github.com/tomz197/valentine-dash/internal/draw"
)

// BackgroundSparkles is how many sparkles drift behind the play field.
const BackgroundSparkles = 18

// Sparkle is a faint background dot. It has no gameplay effect.
type Sparkle struct {
	X, Y  float64
	Alpha float64
}

// SparkleAt places sparkle i at time t. Sparkles drift diagonally and wrap
// 60 units outside the arena, so every frontend draws the same field.
func SparkleAt(i int, t float64, arena Arena) Sparkle {
	fi := float64(i)
	return Sparkle{
		X:     math.Mod(fi*97+t*40, arena.Width+120) - 60,
		Y:     math.Mod(fi*53+t*28, arena.Height+120) - 60,
		Alpha: 0.1 + 0.08*math.Sin(t*1.5+fi),
	}
}

// Sparkles returns the whole background field at time t.
func Sparkles(t float64, arena Arena) []Sparkle {
	out := make([]Sparkle, BackgroundSparkles)
	for i := range out {
		out[i] = SparkleAt(i, t, arena)
	}
	return out
}

// Draw renders the sparkle as a single dot in the brighter half of its
// twinkle. Terminal cells have no alpha.
func (s Sparkle) Draw(ctx DrawContext) {
	if s.Alpha < 0.1 {
		return
	}
	ctx.Canvas.SetColor(draw.Dim)
	ctx.Canvas.SetFloat(s.X, s.Y)
}
