package client

import (
	"time"

	"github.com/tomz197/valentine-dash/internal/draw"
	"github.com/tomz197/valentine-dash/internal/input"
	"github.com/tomz197/valentine-dash/internal/loop"
)

// ScreenState is what the terminal is showing, on top of the game itself.
type ScreenState int

const (
	ScreenGame     ScreenState = iota // Arena, HUD and the controller's overlay
	ScreenShutdown                    // Server is shutting down
)

// ClientState holds per-connection state (input, timers, screen).
// Each client has their own instance, managed by the Client.
type ClientState struct {
	Input         input.Input
	Screen        ScreenState
	Running       bool              // Client loop running
	started       time.Time         // Drives sparkles and spin animation
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	delta         time.Duration     // Frame delta time
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state
	titleSet      bool              // Window title already switched to the winner title

	// Previous-frame values, to detect transitions needing a full clear
	prevScreen  ScreenState
	wasInactive bool
	wasCard     bool
}

// NewClientState creates a new initialized client state.
func NewClientState(now time.Time) *ClientState {
	return &ClientState{
		Screen:  ScreenGame,
		Running: true,
		started: now,
	}
}

// overlay is the terminal rendition of the controller's modal message.
// Every Show bumps the version so the frame is cleared before redrawing.
type overlay struct {
	title, body, button string
	visible             bool
	version             int
	drawn               int
}

var _ loop.Overlay = (*overlay)(nil)

func (o *overlay) Show(title, body, button string) {
	o.title, o.body, o.button = title, body, button
	o.visible = true
	o.version++
}

func (o *overlay) Hide() {
	if o.visible {
		o.version++
	}
	o.visible = false
}

// changed reports whether the overlay differs from the last drawn frame.
func (o *overlay) changed() bool {
	return o.version != o.drawn
}

func (o *overlay) markDrawn() {
	o.drawn = o.version
}
