package loop

import (
	"github.com/tomz197/valentine-dash/internal/loop/config"
	"github.com/tomz197/valentine-dash/internal/object"
	"github.com/tomz197/valentine-dash/internal/physics"
)

// collectHearts animates and picks up every uncollected heart the player
// touches. Returns true, with the round stopped, once the target is met.
func (s *Session) collectHearts(ctx object.UpdateContext) bool {
	p := s.Player
	for _, h := range s.Hearts {
		if h.Collected {
			continue
		}
		h.Update(ctx)
		if !physics.CirclesOverlap(p.X, p.Y, p.R, h.X, h.Y, h.R) {
			continue
		}

		h.Collected = true
		s.Round.HeartsCollected++
		s.events = append(s.events, EventHeartCollected)

		if s.Round.HeartsCollected >= s.Config.HeartsTarget {
			s.Round.Running = false
			s.events = append(s.events, EventLevelCleared)
			return true
		}
	}
	return false
}

// checkThornHit applies at most one thorn hit per step, and none while the
// player is invulnerable.
func (s *Session) checkThornHit() {
	p := s.Player
	if p.Invulnerable() {
		return
	}
	for _, t := range s.Thorns {
		if physics.CirclesOverlap(p.X, p.Y, p.R, t.X, t.Y, t.R) {
			p.HitTimer = s.Config.Invulnerability
			s.Round.Elapsed += config.ThornPenalty
			s.events = append(s.events, EventThornHit)
			return
		}
	}
}
