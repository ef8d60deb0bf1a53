package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/valentine-dash/internal/audio"
	"github.com/tomz197/valentine-dash/internal/input"
	"github.com/tomz197/valentine-dash/internal/level"
	"github.com/tomz197/valentine-dash/internal/loop/config"
	"github.com/tomz197/valentine-dash/internal/object"
	"github.com/tomz197/valentine-dash/internal/physics"
	"github.com/tomz197/valentine-dash/internal/store"
)

// Phase is the controller's top-level state.
type Phase int

const (
	PhaseIdle    Phase = iota // Overlay shown, nothing simulated
	PhaseRunning              // Stepping the round every tick
	PhaseWon                  // Level cleared: delay, celebration, then overlay
	PhaseLost                 // Out of time, retry overlay shown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	}
	return "unknown"
}

// winStage sub-divides PhaseWon.
type winStage int

const (
	winPending     winStage = iota // Waiting out the short delay
	winCelebrating                 // Petals falling
	winFinal                       // Overlay shown
)

// Action is what the overlay's primary button does.
type Action int

const (
	ActionStart Action = iota
	ActionNextLevel
	ActionPlayAgain
	ActionTryAgain
)

// Overlay is the modal message surface of a frontend.
type Overlay interface {
	Show(title, body, button string)
	Hide()
}

// LevelSource supplies the current level table. It may change between
// rounds when levels are hot reloaded.
type LevelSource interface {
	Table() *level.Table
}

// BestTimeStore persists the lowest winning time; 0 means none.
type BestTimeStore interface {
	Load() float64
	Save(seconds float64) error
}

// Sound plays cues without ever reporting failure.
type Sound interface {
	Play(fx audio.SoundEffect)
	PlayCue(c audio.Cue)
	Fanfare(applause time.Duration)
	Toggle() bool
}

// Options configures a Controller.
type Options struct {
	Levels    LevelSource
	Overlay   Overlay
	Sound     Sound         // Nil plays nothing
	Best      BestTimeStore // Nil keeps the best time in memory
	Rand      *rand.Rand    // Nil seeds from the clock
	Arena     object.Arena  // Zero uses the configured arena size
	HelpBody  string        // Overrides the how-to-play text
	ShareHint string        // Overrides the share hint of the final message
	Logger    *log.Logger
	Now       time.Time
}

// Controller drives one player's game: it owns the session, reacts to the
// overlay button, and turns step events into sounds and screens.
// It is not safe for concurrent use.
type Controller struct {
	levels  LevelSource
	overlay Overlay
	sound   Sound
	best    BestTimeStore
	rng     *rand.Rand
	logger  *log.Logger

	helpBody  string
	shareHint string

	session     *Session
	phase       Phase
	stage       winStage
	action      Action
	button      string
	lastTick    time.Time
	wonAt       time.Time
	celebration *Celebration
	bestTime    float64
	winner      bool
}

// NewController prepares the first level and shows its title overlay.
func NewController(opts Options) *Controller {
	c := &Controller{
		levels:    opts.Levels,
		overlay:   opts.Overlay,
		sound:     opts.Sound,
		best:      opts.Best,
		rng:       opts.Rand,
		logger:    opts.Logger,
		helpBody:  opts.HelpBody,
		shareHint: opts.ShareHint,
		lastTick:  opts.Now,
	}
	if c.best == nil {
		c.best = &store.Memory{}
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.helpBody == "" {
		c.helpBody = HelpBody
	}
	arena := opts.Arena
	if arena.Width <= 0 || arena.Height <= 0 {
		arena = object.Arena{Width: config.ArenaWidth, Height: config.ArenaHeight}
	}

	c.session = NewSession(arena, c.rng)
	c.bestTime = c.best.Load()

	t := c.levels.Table()
	cfg, _ := t.Get(t.First())
	c.session.Reset(cfg)
	c.show(cfg.Title, introBody, LabelStart, ActionStart)
	return c
}

// Tick is the per-frame entry point. dir is the held direction intent.
func (c *Controller) Tick(now time.Time, dir input.Directions) {
	dt := c.advance(now)

	switch c.phase {
	case PhaseRunning:
		for _, ev := range c.session.Step(dt, dir) {
			c.dispatch(ev, now)
		}
	case PhaseWon:
		switch c.stage {
		case winPending:
			if now.Sub(c.wonAt) >= c.levels.Table().Celebration.Delay() {
				c.startCelebration()
			}
		case winCelebrating:
			if c.celebration.Update(dt) {
				c.finalizeWin()
			}
		}
	}
}

// advance moves the frame clock to now and returns the clamped step.
func (c *Controller) advance(now time.Time) float64 {
	dt := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	return physics.Clamp(dt, 0, config.MaxDelta)
}

func (c *Controller) dispatch(ev Event, now time.Time) {
	switch ev {
	case EventHeartCollected:
		c.play(audio.CuePickup)
	case EventThornHit:
		c.play(audio.CueHit)
	case EventLevelCleared:
		c.phase = PhaseWon
		c.stage = winPending
		c.wonAt = now
		c.logger.Debug("level cleared", "level", c.session.Round.Level, "elapsed", c.session.Round.Elapsed)
	case EventTimeExpired:
		c.phase = PhaseLost
		c.play(audio.CueLose)
		c.show(loseTitle, loseBody, LabelTryAgain, ActionTryAgain)
		c.logger.Debug("time expired", "level", c.session.Round.Level, "hearts", c.session.Round.HeartsCollected)
	}
}

// Primary presses the overlay's primary button. It does nothing while a
// round or its celebration is in progress.
func (c *Controller) Primary(now time.Time) {
	if !c.overlayUp() {
		return
	}
	t := c.levels.Table()
	switch c.action {
	case ActionStart, ActionPlayAgain:
		c.start(t.First(), now)
	case ActionNextLevel:
		if t.HasNext(c.session.Round.Level) {
			c.start(c.session.Round.Level+1, now)
		} else {
			c.start(t.First(), now)
		}
	case ActionTryAgain:
		c.start(c.session.Round.Level, now)
	}
}

// Restart begins the current level again from any screen except the win
// celebration.
func (c *Controller) Restart(now time.Time) {
	if c.phase == PhaseWon && c.stage != winFinal {
		return
	}
	c.start(c.session.Round.Level, now)
}

// ShowHelp swaps the overlay text for the how-to-play instructions. The
// button keeps its action.
func (c *Controller) ShowHelp() {
	if !c.overlayUp() {
		return
	}
	c.overlay.Show(helpTitle, c.helpBody, c.button)
}

// ToggleSound flips the sound flag, confirming with a tone when it turns on.
func (c *Controller) ToggleSound() bool {
	if c.sound == nil {
		return false
	}
	on := c.sound.Toggle()
	if on {
		c.sound.Play(audio.CueSoundOn)
	}
	return on
}

// start resets the world for level n and runs it. Unknown levels fall back
// to the first one.
func (c *Controller) start(n int, now time.Time) {
	t := c.levels.Table()
	cfg, ok := t.Get(n)
	if !ok {
		cfg, _ = t.Get(t.First())
	}

	c.releaseCelebration()
	c.session.Reset(cfg)
	c.session.Round.Running = true
	c.phase = PhaseRunning
	c.lastTick = now

	c.overlay.Hide()
	c.play(audio.CueStart)
	c.logger.Debug("round started", "level", cfg.Number, "hearts", cfg.HeartsTarget, "thorns", cfg.ThornsCount)
}

func (c *Controller) startCelebration() {
	fx := c.levels.Table().Celebration
	c.celebration = NewCelebration(c.rng, c.session.Arena, config.PetalCount, fx.Duration())
	c.stage = winCelebrating
	if c.sound != nil {
		c.sound.Fanfare(config.FanfareApplause)
	}
}

// finalizeWin records the time, plays the chime and shows the next-level or
// final message.
func (c *Controller) finalizeWin() {
	c.stage = winFinal
	c.releaseCelebration()

	elapsed := c.session.Round.Elapsed
	if c.bestTime == 0 || elapsed < c.bestTime {
		c.bestTime = elapsed
		if err := c.best.Save(elapsed); err != nil {
			c.logger.Warn("could not save best time", "err", err)
		}
	}
	if c.sound != nil {
		c.sound.PlayCue(audio.WinChime())
	}

	t := c.levels.Table()
	if t.HasNext(c.session.Round.Level) {
		c.show(winTitle, levelClearedBody(c.session.Config.Title), LabelNextLevel, ActionNextLevel)
		return
	}

	c.winner = true
	hint := c.shareHint
	if hint == "" {
		hint = t.Messages.ShareHint
	}
	c.show(winTitle, finalWinBody(t.Messages, hint), LabelPlayAgain, ActionPlayAgain)
}

func (c *Controller) releaseCelebration() {
	if c.celebration != nil {
		c.celebration.Release()
		c.celebration = nil
	}
}

func (c *Controller) show(title, body, button string, action Action) {
	c.action = action
	c.button = button
	c.overlay.Show(title, body, button)
}

func (c *Controller) play(fx audio.SoundEffect) {
	if c.sound != nil {
		c.sound.Play(fx)
	}
}

// overlayUp reports whether the overlay is on screen.
func (c *Controller) overlayUp() bool {
	switch c.phase {
	case PhaseRunning:
		return false
	case PhaseWon:
		return c.stage == winFinal
	}
	return true
}

// Session returns the round being played or last played.
func (c *Controller) Session() *Session { return c.session }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Celebration returns the running celebration, or nil.
func (c *Controller) Celebration() *Celebration { return c.celebration }

// Celebrating reports whether the win delay or petals are in progress.
func (c *Controller) Celebrating() bool {
	return c.phase == PhaseWon && c.stage != winFinal
}

// OverlayVisible reports whether the frontend should draw the overlay.
func (c *Controller) OverlayVisible() bool { return c.overlayUp() }

// BestTime returns the best winning time in seconds, 0 when none.
func (c *Controller) BestTime() float64 { return c.bestTime }

// TimeLeft returns the clock of the current round.
func (c *Controller) TimeLeft() float64 { return c.session.TimeLeft() }

// Winner reports whether the final level has been beaten.
func (c *Controller) Winner() bool { return c.winner }

// LastTick returns the time of the previous frame.
func (c *Controller) LastTick() time.Time { return c.lastTick }

// ShareText is the message players can send after winning.
func (c *Controller) ShareText() string { return c.levels.Table().Messages.ShareText }
