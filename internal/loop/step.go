package loop

import (
	"github.com/tomz197/valentine-dash/internal/input"
	"github.com/tomz197/valentine-dash/internal/object"
)

// Event is something a step reports to the controller.
type Event int

const (
	EventHeartCollected Event = iota
	EventLevelCleared
	EventThornHit
	EventTimeExpired
)

func (e Event) String() string {
	switch e {
	case EventHeartCollected:
		return "heart-collected"
	case EventLevelCleared:
		return "level-cleared"
	case EventThornHit:
		return "thorn-hit"
	case EventTimeExpired:
		return "time-expired"
	}
	return "unknown"
}

// Step advances a running round by dt seconds. The caller clamps dt. The
// returned slice is reused and only valid until the next call. A round that
// is not running is left untouched.
func (s *Session) Step(dt float64, dir input.Directions) []Event {
	s.events = s.events[:0]
	r := &s.Round
	if !r.Running {
		return s.events
	}

	r.Elapsed += dt
	if r.Elapsed >= s.Config.TimeLimit {
		r.Running = false
		return append(s.events, EventTimeExpired)
	}

	ctx := object.UpdateContext{
		Delta:  dt,
		Arena:  s.Arena,
		Intent: dir,
		Rand:   s.rng,
	}
	s.Player.Update(ctx)
	for _, t := range s.Thorns {
		t.Update(ctx)
	}
	s.Player.CoolDown(dt)

	if s.collectHearts(ctx) {
		return s.events
	}
	s.checkThornHit()
	return s.events
}
