// Package audio synthesizes the game's sound cues with beep and plays them
// through an optional backend. Playback problems never reach the caller.
package audio

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// Service is the controller-facing audio facade.
type Service struct {
	open     Opener
	enabled  atomic.Bool
	disabled atomic.Bool // set once the backend failed to open

	mu      sync.Mutex
	backend Backend
	rng     *rand.Rand
}

// NewService returns a service that opens its backend on the first cue.
// A nil rng is seeded from the clock.
func NewService(open Opener, enabled bool, rng *rand.Rand) *Service {
	if open == nil {
		open = NoBackend
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Service{open: open, rng: rng}
	s.enabled.Store(enabled)
	return s
}

// Play renders a single voice.
func (s *Service) Play(fx SoundEffect) {
	s.PlayCue(Cue{Voices: []SoundEffect{fx}})
}

// PlayCue renders c when sound is on and a backend is available.
func (s *Service) PlayCue(c Cue) {
	if !s.enabled.Load() || s.disabled.Load() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.ensureBackend()
	if b == nil {
		return
	}
	_ = b.Play(c.Streamer(b.SampleRate(), s.cueRand()))
}

// Fanfare plays the celebration arrangement with applause lasting d.
func (s *Service) Fanfare(d time.Duration) {
	if !s.enabled.Load() || s.disabled.Load() {
		return
	}
	s.mu.Lock()
	c := Fanfare(d, s.rng)
	s.mu.Unlock()
	s.PlayCue(c)
}

// Clap plays one hand clap.
func (s *Service) Clap() {
	s.PlayCue(Clap())
}

// Toggle flips the sound flag and returns the new state.
func (s *Service) Toggle() bool {
	on := !s.enabled.Load()
	s.enabled.Store(on)
	return on
}

// Enabled reports the sound flag.
func (s *Service) Enabled() bool {
	return s.enabled.Load()
}

// SetEnabled sets the sound flag.
func (s *Service) SetEnabled(on bool) {
	s.enabled.Store(on)
}

// Available reports whether a backend could still be used. It is true
// until an open attempt fails.
func (s *Service) Available() bool {
	return !s.disabled.Load()
}

// Close releases the backend if one was opened.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backend == nil {
		return nil
	}
	err := s.backend.Close()
	s.backend = nil
	return err
}

// ensureBackend must be called with mu held.
func (s *Service) ensureBackend() Backend {
	if s.backend != nil {
		return s.backend
	}
	b, err := s.open()
	if err != nil || b == nil {
		s.disabled.Store(true)
		return nil
	}
	s.backend = b
	return b
}

// cueRand gives each cue its own generator so noise rendering on the
// speaker goroutine never touches s.rng. Must be called with mu held.
func (s *Service) cueRand() *rand.Rand {
	return rand.New(rand.NewSource(s.rng.Int63()))
}
