// Package client runs one player's game in a terminal: it reads keys, ticks
// the controller and paints the arena, HUD and overlay with ANSI output.
package client

import (
	"bufio"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/valentine-dash/internal/draw"
	"github.com/tomz197/valentine-dash/internal/input"
	"github.com/tomz197/valentine-dash/internal/loop"
	"github.com/tomz197/valentine-dash/internal/loop/config"
	"github.com/tomz197/valentine-dash/internal/loop/server"
	"github.com/tomz197/valentine-dash/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	lobby        server.Lobby
	handle       *server.ClientHandle
	state        *ClientState
	overlay      *overlay
	controller   *loop.Controller
	arena        object.Arena
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Levels       loop.LevelSource
	Sound        loop.Sound         // Nil plays nothing
	Best         loop.BestTimeStore // Nil keeps the best time for this connection only
	Rand         *rand.Rand
	ShareHint    string
	Logger       *log.Logger
}

// NewClient creates a new client registered with the given lobby.
func NewClient(lobby server.Lobby, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	now := time.Now()
	handle := lobby.RegisterClient(opts.Username)
	state := NewClientState(now)
	state.termSizeFunc = termSizeFunc

	arena := object.Arena{Width: config.ArenaWidth, Height: config.ArenaHeight}
	ov := &overlay{}
	ctrl := loop.NewController(loop.Options{
		Levels:    opts.Levels,
		Overlay:   ov,
		Sound:     opts.Sound,
		Best:      opts.Best,
		Rand:      opts.Rand,
		Arena:     arena,
		ShareHint: opts.ShareHint,
		Logger:    logger.With("user", opts.Username),
		Now:       now,
	})

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, arena.Width, arena.Height)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		lobby:        lobby,
		handle:       handle,
		state:        state,
		overlay:      ov,
		controller:   ctrl,
		arena:        arena,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		reader:       r,
		writer:       w,
		lastInput:    now,
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		logger:       logger,
	}
}

// Run starts the client loop. Blocks until the client quits, goes idle for
// too long, or the server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	draw.SetTitle(c.writer, config.DefaultTitle)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput(frameStart)

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		switch c.state.Screen {
		case ScreenGame:
			c.controller.Tick(frameStart, c.state.Input.Directions)
			c.updateTitle()
		case ScreenShutdown:
			c.updateShutdownState()
		}

		// Draw frame
		if err := c.drawFrame(frameStart); err != nil {
			c.lobby.UnregisterClient(c.handle.ID)
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// Unregister from server
	c.lobby.UnregisterClient(c.handle.ID)

	draw.SetTitle(c.writer, "")
	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and forwards one-shot actions to the controller.
func (c *Client) processInput(now time.Time) {
	c.state.Input = input.ReadInput(c.inputStream)
	in := c.state.Input

	if len(in.Pressed) > 0 {
		c.lastInput = now
		c.state.isInactive = false
	} else if now.Sub(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting idle client", "user", c.username)
		c.state.Running = false
	} else if now.Sub(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
		return
	}
	if c.state.Screen != ScreenGame {
		return
	}

	if in.Primary {
		c.controller.Primary(now)
	}
	if in.Restart {
		c.controller.Restart(now)
	}
	if in.Help {
		c.controller.ShowHelp()
	}
	if in.Mute {
		on := c.controller.ToggleSound()
		c.logger.Debug("sound toggled", "user", c.username, "on", on)
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.Screen = ScreenShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateTitle switches the window title once the final level is beaten.
func (c *Client) updateTitle() {
	if c.controller.Winner() && !c.state.titleSet {
		draw.SetTitle(c.chunkWriter, config.WinnerTitle)
		c.state.titleSet = true
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
