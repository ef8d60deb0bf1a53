package client

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomz197/valentine-dash/internal/draw"
	"github.com/tomz197/valentine-dash/internal/loop"
	"github.com/tomz197/valentine-dash/internal/loop/config"
	"github.com/tomz197/valentine-dash/internal/object"
)

// Layout of the play field in logical units.
const (
	frameInset = 10.0
	barX       = 22.0
	barY       = 26.0
	barHeight  = 10.0

	overlayMaxWidth = 60
	cardWidth       = 30
)

const controlsHint = "WASD/arrows move · Space start · R restart · H help · M sound · Q quit"

// drawFrame draws the current frame.
func (c *Client) drawFrame(now time.Time) error {
	// On screen, overlay or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	card := c.controller.Celebration() != nil
	stateChanged := c.state.Screen != c.state.prevScreen
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged || c.overlay.changed() || card != c.state.wasCard {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevScreen = c.state.Screen
		c.state.wasInactive = c.state.isInactive
		c.state.wasCard = card
		c.overlay.markDrawn()
	}

	c.canvas.Clear()

	session := c.controller.Session()
	ctx := object.DrawContext{
		Canvas: c.canvas,
		Time:   now.Sub(c.state.started).Seconds(),
	}

	c.drawBackdrop(ctx)
	c.drawTimeBar(session)
	for _, obj := range session.Objects() {
		obj.Draw(ctx)
	}
	if cel := c.controller.Celebration(); cel != nil {
		cel.Draw(ctx)
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	// Draw UI overlay
	c.drawUI(now, session)

	return c.chunkWriter.Flush()
}

// drawBackdrop paints the drifting sparkles and the arena frame.
func (c *Client) drawBackdrop(ctx object.DrawContext) {
	for _, s := range object.Sparkles(ctx.Time, c.arena) {
		s.Draw(ctx)
	}

	x0, y0 := frameInset, frameInset
	x1, y1 := c.arena.Width-frameInset, c.arena.Height-frameInset
	c.canvas.SetColor(draw.Night)
	c.canvas.DrawLine(draw.Point{X: x0, Y: y0}, draw.Point{X: x1, Y: y0})
	c.canvas.DrawLine(draw.Point{X: x1, Y: y0}, draw.Point{X: x1, Y: y1})
	c.canvas.DrawLine(draw.Point{X: x1, Y: y1}, draw.Point{X: x0, Y: y1})
	c.canvas.DrawLine(draw.Point{X: x0, Y: y1}, draw.Point{X: x0, Y: y0})
}

// drawTimeBar paints the remaining-time bar across the top of the arena.
func (c *Client) drawTimeBar(s *loop.Session) {
	width := c.arena.Width - 2*barX
	c.canvas.SetColor(draw.Dim)
	c.canvas.FillRect(barX, barY, width, barHeight)

	ratio := s.TimeRatio()
	if ratio <= 0 {
		return
	}
	c.canvas.SetColor(timeBarColor(ratio))
	c.canvas.FillRect(barX, barY, width*ratio, barHeight)
}

// timeBarColor is green while plenty of time is left and red after.
func timeBarColor(ratio float64) draw.Color {
	if ratio > config.TimeBarWarnRatio {
		return draw.Green
	}
	return draw.Red
}

// drawUI draws the text layers above the canvas.
func (c *Client) drawUI(now time.Time, s *loop.Session) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerY := termHeight / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(termWidth, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(now, termWidth, centerY)
		return
	}

	c.drawHUD(termWidth, termHeight, s)
	switch {
	case c.overlay.visible:
		c.drawOverlay(now, termWidth, termHeight)
	case c.controller.Celebration() != nil:
		c.drawWinCard(termWidth, termHeight)
	}
}

// hudLine formats the status row. Fields are fixed width so shrinking
// values don't leave residual characters on screen.
func hudLine(s *loop.Session, best float64) string {
	bestText := "—"
	if best > 0 {
		bestText = fmt.Sprintf("%.1fs", best)
	}
	return fmt.Sprintf("Level %-2d  ♥ %2d/%-2d  Time %3ds  Best %-7s",
		s.Round.Level, s.Round.HeartsCollected, s.Config.HeartsTarget,
		int(math.Ceil(s.TimeLeft())), bestText)
}

// drawHUD draws the status row, player count and key hints.
func (c *Client) drawHUD(termWidth, termHeight int, s *loop.Session) {
	cw := c.chunkWriter

	status := draw.Truncate(hudLine(s, c.controller.BestTime()), termWidth-2)
	cw.WriteAt(2, 1, status)
	c.canvas.MarkTextDirty(2, 1, draw.TextWidth(status))

	// Live players (bottom right)
	players := fmt.Sprintf("Players: %-4d", c.lobby.Players())
	pcol := termWidth - len(players)
	hint := ""
	if pcol > 12 {
		hint = draw.Truncate(controlsHint, pcol-4)
	}
	if pcol > 1 {
		cw.WriteAt(pcol, termHeight, players)
		c.canvas.MarkTextDirty(pcol, termHeight, len(players))
	}
	if hint != "" {
		cw.WriteColored(2, termHeight, draw.Dim, hint)
		c.canvas.MarkTextDirty(2, termHeight, draw.TextWidth(hint))
	}
}

// drawOverlay draws the controller's modal message in a centred box.
func (c *Client) drawOverlay(now time.Time, termWidth, termHeight int) {
	width := min(overlayMaxWidth, termWidth-2)
	inner := width - 4
	if inner < 8 {
		return
	}

	type line struct {
		text string
		fg   draw.Color
	}
	lines := []line{{c.overlay.title, draw.Pink}, {"", draw.None}}
	for _, l := range draw.Wrap(c.overlay.body, inner) {
		lines = append(lines, line{l, draw.White})
	}
	prompt := ""
	if now.UnixMilli()/600%2 == 0 {
		prompt = "press Space"
	}
	lines = append(lines,
		line{"", draw.None},
		line{"[ " + c.overlay.button + " ]", draw.Gold},
		line{prompt, draw.Dim},
	)

	// Keep the button visible on short terminals by dropping body lines.
	if maxLines := termHeight - 4; len(lines) > maxLines && maxLines >= 3 {
		tail := lines[len(lines)-3:]
		lines = append(lines[:maxLines-3], tail...)
	}

	col := (termWidth-width)/2 + 1
	row := (termHeight-len(lines)-2)/2 + 1
	c.boxEdge(col, row, inner, "╭", "╮")
	for i, l := range lines {
		c.boxLine(col, row+1+i, inner, l.text, l.fg)
	}
	c.boxEdge(col, row+1+len(lines), inner, "╰", "╯")
}

// drawWinCard draws the "YOU WIN!" title card shown while petals fall.
func (c *Client) drawWinCard(termWidth, termHeight int) {
	width := min(cardWidth, termWidth-2)
	inner := width - 4
	if inner < 8 {
		return
	}
	col := (termWidth-width)/2 + 1
	row := termHeight/2 - 2
	c.boxEdge(col, row, inner, "╭", "╮")
	c.boxLine(col, row+1, inner, "YOU WIN!", draw.Gold)
	c.boxLine(col, row+2, inner, "🌸 petals for you 🌸", draw.Pink)
	c.boxEdge(col, row+3, inner, "╰", "╯")
}

// boxEdge writes a horizontal box border.
func (c *Client) boxEdge(col, row, inner int, left, right string) {
	s := left + strings.Repeat("─", inner+2) + right
	c.chunkWriter.WriteColored(col, row, draw.Rose, s)
	c.canvas.MarkTextDirty(col, row, inner+4)
}

// boxLine writes one padded, centred row of a box.
func (c *Client) boxLine(col, row, inner int, text string, fg draw.Color) {
	text = draw.Truncate(text, inner)
	pad := inner - draw.TextWidth(text)
	left := pad / 2

	var b strings.Builder
	b.WriteString(draw.Rose.FG())
	b.WriteString("│ ")
	b.WriteString(draw.ColorReset)
	b.WriteString(strings.Repeat(" ", left))
	b.WriteString(fg.FG())
	b.WriteString(text)
	b.WriteString(draw.ColorReset)
	b.WriteString(strings.Repeat(" ", pad-left))
	b.WriteString(draw.Rose.FG())
	b.WriteString(" │")
	b.WriteString(draw.ColorReset)

	c.chunkWriter.WriteAt(col, row, b.String())
	c.canvas.MarkTextDirty(col, row, inner+4)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(now time.Time, termWidth, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteColored(draw.CenterCol(termWidth, title), centerY-2, draw.Rose, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-now.Sub(c.lastInput).Seconds()),
	)
	msg = draw.Truncate(msg, termWidth)
	cw.WriteAt(draw.CenterCol(termWidth, msg), centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(draw.CenterCol(termWidth, hint), centerY+2, hint)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(termWidth, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteColored(draw.CenterCol(termWidth, title), centerY-3, draw.Rose, title)

	msg1 := "The server is restarting. Your hearts will wait for you 💘"
	cw.WriteAt(draw.CenterCol(termWidth, msg1), centerY-1, msg1)

	msg2 := "Please reconnect in a moment."
	cw.WriteAt(draw.CenterCol(termWidth, msg2), centerY, msg2)

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %2d seconds...", remaining)
	cw.WriteAt(draw.CenterCol(termWidth, countdown), centerY+2, countdown)

	hint := "Press Q to disconnect now"
	cw.WriteAt(draw.CenterCol(termWidth, hint), centerY+4, hint)
}
