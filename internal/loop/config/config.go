// Package config centralizes all tunable game parameters.
package config

import "time"

// Arena dimensions in logical units. Every frontend scales this to fit.
const (
	ArenaWidth  = 900
	ArenaHeight = 560
)

// Simulation
const (
	MaxDelta     = 0.033 // Longest step in seconds; slower frames run in slow motion
	ThornPenalty = 3.0   // Seconds added to the clock on a thorn hit
	PetalCount   = 60
)

// FanfareApplause is how long the applause under the win fanfare lasts.
const FanfareApplause = 1200 * time.Millisecond

// Terminal rendering limits. Larger terminals get a centred, bordered area.
const (
	MaxTermWidth  = 180
	MaxTermHeight = 56
)

// HUD
const (
	TimeBarWarnRatio = 0.35 // Time bar turns red below this fraction
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Window title after beating the final level.
const WinnerTitle = "Valentine Dash 💘 (Winner!)"

// DefaultTitle is the window title while playing.
const DefaultTitle = "Valentine Dash 💘"
