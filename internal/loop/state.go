// Package loop runs the game: the per-frame simulation step, the win
// celebration, and the controller that moves between overlay screens and
// play.
package loop

import (
	"math"
	"math/rand"

	"github.com/tomz197/valentine-dash/internal/level"
	"github.com/tomz197/valentine-dash/internal/object"
)

// RoundState is the bookkeeping of one attempt at a level.
type RoundState struct {
	Level           int
	Elapsed         float64 // Seconds, including thorn penalties
	HeartsCollected int
	Running         bool
}

// Session holds the level being played and every entity in it.
// It is owned by a single goroutine.
type Session struct {
	Config level.Config
	Arena  object.Arena
	Player *object.Player
	Hearts []*object.Heart
	Thorns []*object.Thorn
	Round  RoundState

	rng    *rand.Rand
	avoid  []object.Circle // Reused spawn avoid list
	events []Event         // Reused step output
}

// NewSession creates an empty session for arena.
func NewSession(arena object.Arena, rng *rand.Rand) *Session {
	return &Session{
		Arena:  arena,
		Player: object.NewPlayer(arena, 0),
		rng:    rng,
	}
}

// Reset prepares a fresh round of cfg: the clock and counters are zeroed,
// the player returns to the start, and hearts then thorns are placed so that
// nothing overlaps. The round is not running until the caller starts it.
func (s *Session) Reset(cfg level.Config) {
	s.Config = cfg
	s.Round = RoundState{Level: cfg.Number}
	s.Player.Reset(s.Arena, cfg.PlayerSpeed)

	area := s.Arena.SpawnArea()
	s.avoid = append(s.avoid[:0], object.Circle{X: s.Player.X, Y: s.Player.Y, R: object.PlayerRadius})

	s.Hearts = s.Hearts[:0]
	for i := 0; i < cfg.HeartsTarget; i++ {
		c := object.SpawnNonOverlapping(s.rng, area, object.HeartRadius, s.avoid, object.DefaultSpawnAttempts)
		s.Hearts = append(s.Hearts, object.NewHeart(c, s.rng.Float64()*2*math.Pi))
		s.avoid = append(s.avoid, object.Circle{X: c.X, Y: c.Y, R: object.HeartAvoidRadius})
	}

	s.Thorns = s.Thorns[:0]
	for i := 0; i < cfg.ThornsCount; i++ {
		c := object.SpawnNonOverlapping(s.rng, area, object.ThornRadius, s.avoid, object.DefaultSpawnAttempts)
		s.Thorns = append(s.Thorns, object.NewThorn(s.rng, c, cfg.ThornSpeed))
		s.avoid = append(s.avoid, object.Circle{X: c.X, Y: c.Y, R: object.ThornAvoidRadius})
	}
}

// TimeLeft returns the seconds remaining on the clock, never negative.
func (s *Session) TimeLeft() float64 {
	return math.Max(0, s.Config.TimeLimit-s.Round.Elapsed)
}

// TimeRatio is TimeLeft as a fraction of the limit.
func (s *Session) TimeRatio() float64 {
	if s.Config.TimeLimit <= 0 {
		return 0
	}
	return s.TimeLeft() / s.Config.TimeLimit
}

// Objects lists everything drawable in paint order: hearts, thorns, player.
func (s *Session) Objects() []object.Object {
	out := make([]object.Object, 0, len(s.Hearts)+len(s.Thorns)+1)
	for _, h := range s.Hearts {
		out = append(out, h)
	}
	for _, t := range s.Thorns {
		out = append(out, t)
	}
	return append(out, s.Player)
}
