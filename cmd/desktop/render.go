package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/tomz197/valentine-dash/internal/draw"
	"github.com/tomz197/valentine-dash/internal/input"
	"github.com/tomz197/valentine-dash/internal/loop/config"
	"github.com/tomz197/valentine-dash/internal/object"
)

// Palette.
var (
	colBackground = color.RGBA{18, 4, 14, 255}
	colHeart      = color.RGBA{0xff, 0x4d, 0x9a, 0xff}
	colBarOK      = color.RGBA{86, 255, 154, 255}
	colBarLow     = color.RGBA{255, 55, 95, 255}
	colBarTrack   = color.RGBA{255, 255, 255, 30}
	colFrame      = color.NRGBA{255, 77, 154, 90}
	colPanel      = color.NRGBA{24, 6, 20, 235}
	colPetalCore  = color.RGBA{255, 244, 180, 255}
	colText       = colornames.Mistyrose
	colDim        = color.NRGBA{255, 230, 241, 140}
	colGold       = colornames.Gold
	colThorn      = colornames.Forestgreen
	colThornBud   = colornames.Crimson
	colPlayer     = colornames.Mistyrose
	colCheeks     = colornames.Lightpink
	colEyes       = colornames.Indigo
	colPadButton  = color.NRGBA{255, 255, 255, 40}
	colPadArrow   = color.NRGBA{255, 230, 241, 160}
)

// Text sizes and layout.
const (
	hudY          = 42
	barX          = 22
	barY          = 26
	barH          = 10
	overlayWidth  = 560
	overlayWrap   = 58
	bodyLineH     = 22
	cardW, cardH  = 380, 156
	playerBlinkHz = 18.0
)

// fonts holds the faces used for every label.
type fonts struct {
	small, normal, title, huge text.Face
}

func loadFonts() (*fonts, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &fonts{
		small:  &text.GoTextFace{Source: src, Size: 13},
		normal: &text.GoTextFace{Source: src, Size: 16},
		title:  &text.GoTextFace{Source: src, Size: 24},
		huge:   &text.GoTextFace{Source: src, Size: 44},
	}, nil
}

// whitePixel is the source image of every filled polygon.
var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// Draw paints one frame.
func (g *Game) Draw(screen *ebiten.Image) {
	t := time.Since(g.started).Seconds()
	arena := g.controller.Session().Arena

	screen.Fill(colBackground)
	for _, s := range object.Sparkles(t, arena) {
		if s.Alpha <= 0 {
			continue
		}
		vector.FillCircle(screen, float32(s.X), float32(s.Y), 1.5, withAlpha(color.White, s.Alpha), true)
	}
	vector.StrokeRect(screen, 10, 10, screenW-20, screenH-20, 2, colFrame, true)

	g.drawTimeBar(screen)

	session := g.controller.Session()
	for _, h := range session.Hearts {
		if !h.Collected {
			drawHeart(screen, h.X, h.Y+math.Sin(h.Bob)*4, h.R, colHeart)
		}
	}
	for _, th := range session.Thorns {
		drawThorn(screen, th, t)
	}
	drawPlayer(screen, session.Player, t)

	if cel := g.controller.Celebration(); cel != nil {
		for _, p := range cel.Petals {
			drawPetal(screen, p)
		}
	}

	g.drawHUD(screen)
	g.drawToolbar(screen)
	drawPad(screen)

	switch {
	case g.controller.OverlayVisible():
		g.drawOverlay(screen)
	case g.controller.Celebrating():
		g.drawWinCard(screen)
	}

	if !g.copiedAt.IsZero() && time.Since(g.copiedAt) < copiedNote {
		g.label(screen, "Copied to clipboard", g.fonts.normal, screenW/2, screenH-40, colGold, text.AlignCenter)
	}
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()), screenW-150, 14)
	}
}

func (g *Game) drawTimeBar(screen *ebiten.Image) {
	w := float32(screenW - 2*barX)
	ratio := g.controller.Session().TimeRatio()
	clr := colBarOK
	if ratio <= config.TimeBarWarnRatio {
		clr = colBarLow
	}
	vector.FillRect(screen, barX, barY, w, barH, colBarTrack, false)
	vector.FillRect(screen, barX, barY, w*float32(ratio), barH, clr, false)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.controller.Session()
	best := "-"
	if b := g.controller.BestTime(); b > 0 {
		best = fmt.Sprintf("%.1fs", b)
	}
	hud := fmt.Sprintf("Level %d    ♥ %d/%d    Time %ds    Best %s",
		s.Round.Level, s.Round.HeartsCollected, s.Config.HeartsTarget,
		int(math.Ceil(s.TimeLeft())), best)
	g.label(screen, hud, g.fonts.normal, barX, hudY, colText, text.AlignStart)
}

func (g *Game) drawToolbar(screen *ebiten.Image) {
	sound := "Sound: off"
	if g.soundOn {
		sound = "Sound: on"
	}
	g.button(screen, restartButton, "Restart", colDim)
	g.button(screen, helpButton, "Help", colDim)
	g.button(screen, soundButton, sound, colDim)
}

// overlayLayout places the overlay box, its button and its wrapped body.
func overlayLayout(o *overlay) (box, button rect, lines []string) {
	lines = draw.Wrap(o.body, overlayWrap)
	h := 70 + float64(len(lines))*bodyLineH + 24 + 40 + 24
	box = rect{(screenW - overlayWidth) / 2, (screenH - h) / 2, overlayWidth, h}
	button = rect{screenW/2 - 90, box.y + h - 24 - 40, 180, 40}
	return box, button, lines
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	box, btn, lines := overlayLayout(g.overlay)
	vector.FillRect(screen, 0, 0, screenW, screenH, color.NRGBA{0, 0, 0, 110}, false)
	g.panel(screen, box)

	g.label(screen, g.overlay.title, g.fonts.title, screenW/2, box.y+24, colHeart, text.AlignCenter)
	for i, line := range lines {
		g.label(screen, line, g.fonts.normal, box.x+28, box.y+70+float64(i)*bodyLineH, colText, text.AlignStart)
	}
	g.button(screen, btn, g.overlay.button, colGold)
}

func (g *Game) drawWinCard(screen *ebiten.Image) {
	box := rect{(screenW - cardW) / 2, (screenH - cardH) / 2, cardW, cardH}
	g.panel(screen, box)
	g.label(screen, "YOU WIN!", g.fonts.huge, screenW/2, box.y+30, colGold, text.AlignCenter)
	g.label(screen, "petals for you", g.fonts.normal, screenW/2, box.y+104, colText, text.AlignCenter)
}

func (g *Game) panel(screen *ebiten.Image, r rect) {
	vector.FillRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), colPanel, false)
	vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 2, colHeart, true)
}

func (g *Game) button(screen *ebiten.Image, r rect, label string, clr color.Color) {
	vector.FillRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), color.NRGBA{255, 77, 154, 50}, false)
	vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 1.5, clr, true)
	face := g.fonts.normal
	if r.h < 36 {
		face = g.fonts.small
	}
	_, th := text.Measure(printable(label), face, 0)
	g.label(screen, label, face, r.x+r.w/2, r.y+(r.h-th)/2, clr, text.AlignCenter)
}

// label draws s with its top edge at y, aligned on x.
func (g *Game) label(screen *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(screen, printable(s), face, op)
}

// printable drops emoji, which the bundled font has no glyphs for.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x1F000 || r == 0xFE0F || r == 0x200D {
			return -1
		}
		return r
	}, s)
}

func drawHeart(screen *ebiten.Image, x, y, r float64, clr color.Color) {
	vector.FillCircle(screen, float32(x-r*0.48), float32(y-r*0.25), float32(r*0.55), clr, true)
	vector.FillCircle(screen, float32(x+r*0.48), float32(y-r*0.25), float32(r*0.55), clr, true)
	fillPolygon(screen, []float64{
		x - r*1.02, y - r*0.1,
		x + r*1.02, y - r*0.1,
		x, y + r*1.05,
	}, clr)
}

func drawThorn(screen *ebiten.Image, th *object.Thorn, t float64) {
	const spikes = 8
	spin := t * 0.25
	pts := make([]float64, 0, spikes*4)
	for i := 0; i < spikes*2; i++ {
		r := th.R
		if i%2 == 1 {
			r *= 0.6
		}
		a := spin + float64(i)*math.Pi/spikes
		pts = append(pts, th.X+math.Cos(a)*r, th.Y+math.Sin(a)*r)
	}
	fillPolygon(screen, pts, colThorn)
	vector.FillCircle(screen, float32(th.X), float32(th.Y), float32(th.R*0.45), colThornBud, true)
}

func drawPlayer(screen *ebiten.Image, p *object.Player, t float64) {
	alpha := 1.0
	if p.Invulnerable() {
		alpha = 0.45 + 0.35*math.Sin(t*playerBlinkHz)
	}
	x, y, r := float32(p.X), float32(p.Y), float32(p.R)
	vector.FillCircle(screen, x, y, r, withAlpha(colPlayer, alpha), true)
	vector.FillCircle(screen, x, y+r*0.2, r*0.7, withAlpha(colCheeks, alpha), true)
	vector.FillCircle(screen, x-r*0.35, y-r*0.25, r*0.14, withAlpha(colEyes, alpha), true)
	vector.FillCircle(screen, x+r*0.35, y-r*0.25, r*0.14, withAlpha(colEyes, alpha), true)
}

// drawPetal renders a five-lobed flower turned by the petal's rotation.
func drawPetal(screen *ebiten.Image, p *object.Petal) {
	a := p.Alpha()
	if a <= 0 {
		return
	}
	clr := withAlpha(hsl(p.Hue, 0.85, 0.70), a)
	for i := 0; i < 5; i++ {
		angle := p.Rot + float64(i)*2*math.Pi/5
		px := p.X + math.Cos(angle)*p.R*0.8
		py := p.Y + math.Sin(angle)*p.R*0.8
		vector.FillCircle(screen, float32(px), float32(py), float32(p.R*0.6), clr, true)
	}
	vector.FillCircle(screen, float32(p.X), float32(p.Y), float32(p.R*0.55), withAlpha(colPetalCore, a), true)
}

func drawPad(screen *ebiten.Image) {
	s := float32(dpad.Size)
	for _, dir := range input.PadButtons() {
		x, y := dpad.Button(dir)
		fx, fy := float32(x), float32(y)
		vector.FillRect(screen, fx+2, fy+2, s-4, s-4, colPadButton, false)

		cx, cy := fx+s/2, fy+s/2
		dx, dy := dir.Vector()
		tipX, tipY := cx+float32(dx)*s*0.25, cy+float32(dy)*s*0.25
		// Arrow head: two strokes back from the tip.
		for _, side := range []float32{-1, 1} {
			bx := cx - float32(dx)*s*0.05 + float32(-dy)*side*s*0.2
			by := cy - float32(dy)*s*0.05 + float32(dx)*side*s*0.2
			vector.StrokeLine(screen, tipX, tipY, bx, by, 3, colPadArrow, true)
		}
	}
}

// fillPolygon fills a convex polygon given as x, y pairs.
func fillPolygon(screen *ebiten.Image, pts []float64, clr color.Color) {
	var path vector.Path
	path.MoveTo(float32(pts[0]), float32(pts[1]))
	for i := 2; i < len(pts); i += 2 {
		path.LineTo(float32(pts[i]), float32(pts[i+1]))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha}
	screen.DrawTriangles(vs, is, whitePixel, op)
}

// withAlpha scales c's opacity by a in [0, 1].
func withAlpha(c color.Color, a float64) color.Color {
	r, g, b, ca := c.RGBA()
	a = math.Max(0, math.Min(1, a))
	return color.RGBA64{
		R: uint16(float64(r) * a),
		G: uint16(float64(g) * a),
		B: uint16(float64(b) * a),
		A: uint16(float64(ca) * a),
	}
}

// hsl converts hue in degrees, saturation and lightness in [0, 1] to RGB.
func hsl(h, s, l float64) color.RGBA {
	c := (1 - math.Abs(2*l-1)) * s
	hp := math.Mod(h, 360) / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := l - c/2
	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}
