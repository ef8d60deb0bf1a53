package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/valentine-dash/internal/input"
	"github.com/tomz197/valentine-dash/internal/loop"
	"github.com/tomz197/valentine-dash/internal/loop/config"
)

const (
	screenW = config.ArenaWidth
	screenH = config.ArenaHeight

	// How long the "copied" note stays on screen.
	copiedNote = 2 * time.Second
)

// overlay mirrors the controller's modal message for drawing.
type overlay struct {
	title, body, button string
	visible             bool
}

func (o *overlay) Show(title, body, button string) {
	o.title, o.body, o.button = title, body, button
	o.visible = true
}

func (o *overlay) Hide() { o.visible = false }

// rect is a clickable screen area in logical pixels.
type rect struct {
	x, y, w, h float64
}

func (r rect) contains(p input.Pointer) bool {
	return p.X >= r.x && p.X < r.x+r.w && p.Y >= r.y && p.Y < r.y+r.h
}

// Toolbar and pad placement.
var (
	restartButton = rect{screenW - 290, screenH - 52, 84, 32}
	helpButton    = rect{screenW - 198, screenH - 52, 84, 32}
	soundButton   = rect{screenW - 106, screenH - 52, 84, 32}

	dpad = input.Pad{CX: 96, CY: screenH - 96, Size: 44}
)

// Game implements ebiten.Game on top of a loop.Controller.
type Game struct {
	controller *loop.Controller
	overlay    *overlay
	logger     *log.Logger
	copy       func(string) error
	soundOn    bool
	started    time.Time
	copiedAt   time.Time
	titleSet   bool
	fonts      *fonts
	debug      bool
}

// Update reads devices, forwards one-shot actions and ticks the controller.
func (g *Game) Update() error {
	now := time.Now()

	dir := keyboardDirections().Or(dpad.Directions(heldPointers()))

	taps := justTapped()
	_, primary, _ := overlayLayout(g.overlay)
	if justPressed(ebiten.KeySpace, ebiten.KeyEnter, ebiten.KeyNumpadEnter) || g.overlay.visible && tapped(taps, primary) {
		g.controller.Primary(now)
	}
	if justPressed(ebiten.KeyR) || tapped(taps, restartButton) {
		g.controller.Restart(now)
	}
	if justPressed(ebiten.KeyH) || tapped(taps, helpButton) {
		g.controller.ShowHelp()
	}
	if justPressed(ebiten.KeyM) || tapped(taps, soundButton) {
		g.soundOn = g.controller.ToggleSound()
	}
	if justPressed(ebiten.KeyC) && g.controller.Winner() {
		g.copyShareText(now)
	}
	if justPressed(ebiten.KeyEscape, ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.controller.Tick(now, dir)

	if g.controller.Winner() && !g.titleSet {
		ebiten.SetWindowTitle(config.WinnerTitle)
		g.titleSet = true
	}
	return nil
}

// Layout keeps the arena's logical size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func (g *Game) copyShareText(now time.Time) {
	if err := g.copy(g.controller.ShareText()); err != nil {
		g.logger.Warn("could not copy share text", "err", err)
		return
	}
	g.copiedAt = now
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func keyboardDirections() input.Directions {
	return input.Directions{
		Up:    anyPressed(ebiten.KeyArrowUp, ebiten.KeyW),
		Down:  anyPressed(ebiten.KeyArrowDown, ebiten.KeyS),
		Left:  anyPressed(ebiten.KeyArrowLeft, ebiten.KeyA),
		Right: anyPressed(ebiten.KeyArrowRight, ebiten.KeyD),
	}
}

// heldPointers returns every touch and the held mouse cursor.
func heldPointers() []input.Pointer {
	var ps []input.Pointer
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		ps = append(ps, input.Pointer{X: float64(x), Y: float64(y)})
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		ps = append(ps, input.Pointer{X: float64(x), Y: float64(y)})
	}
	return ps
}

// justTapped returns touches and clicks that began this frame.
func justTapped() []input.Pointer {
	var ps []input.Pointer
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		ps = append(ps, input.Pointer{X: float64(x), Y: float64(y)})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		ps = append(ps, input.Pointer{X: float64(x), Y: float64(y)})
	}
	return ps
}

func tapped(taps []input.Pointer, r rect) bool {
	for _, p := range taps {
		if r.contains(p) {
			return true
		}
	}
	return false
}
