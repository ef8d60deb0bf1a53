package object

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/valentine-dash/internal/input"
	"github.com/tomz197/valentine-dash/internal/physics"
)

var testArena = Arena{Width: 900, Height: 560}

func TestSpawnKeepsClearance(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	area := testArena.SpawnArea()
	avoid := []Circle{{X: 180, Y: 308, R: PlayerRadius}}

	for i := 0; i < 20; i++ {
		c := SpawnNonOverlapping(rng, area, HeartRadius, avoid, DefaultSpawnAttempts)
		if c.X < area.MinX || c.X > area.MaxX || c.Y < area.MinY || c.Y > area.MaxY {
			t.Fatalf("candidate %+v outside spawn area", c)
		}
		for _, a := range avoid {
			minDist := a.R + HeartRadius + SpawnPadding
			if d2 := physics.DistanceSquared(c.X, c.Y, a.X, a.Y); d2 < minDist*minDist {
				t.Fatalf("candidate %+v too close to %+v", c, a)
			}
		}
		avoid = append(avoid, Circle{X: c.X, Y: c.Y, R: HeartAvoidRadius})
	}
}

func TestSpawnFallsBackToLastCandidate(t *testing.T) {
	area := testArena.SpawnArea()
	// One circle covering the whole arena makes every candidate invalid.
	avoid := []Circle{{X: 450, Y: 280, R: 5000}}

	got := SpawnNonOverlapping(rand.New(rand.NewSource(7)), area, 14, avoid, 3)

	replay := rand.New(rand.NewSource(7))
	var want Circle
	for i := 0; i < 3; i++ {
		want = Circle{
			X: area.MinX + replay.Float64()*(area.MaxX-area.MinX),
			Y: area.MinY + replay.Float64()*(area.MaxY-area.MinY),
			R: 14,
		}
	}
	if got != want {
		t.Errorf("fallback = %+v, want last candidate %+v", got, want)
	}
}

func TestThornBouncesOffWalls(t *testing.T) {
	th := &Thorn{X: ThornRadius + WallMargin + 1, Y: 200, VX: -300, VY: 0, R: ThornRadius}
	th.Update(UpdateContext{Delta: 0.033, Arena: testArena})

	if th.X != ThornRadius+WallMargin {
		t.Errorf("X = %v, want clamped to %v", th.X, ThornRadius+WallMargin)
	}
	if th.VX != 300 {
		t.Errorf("VX = %v, want 300 after reflection", th.VX)
	}
	if th.VY != 0 {
		t.Errorf("VY changed to %v", th.VY)
	}

	th = &Thorn{X: 400, Y: testArena.Height - ThornRadius - WallMargin - 1, VX: 10, VY: 200, R: ThornRadius}
	th.Update(UpdateContext{Delta: 0.033, Arena: testArena})
	if th.VY != -200 || th.VX != 10 {
		t.Errorf("bottom bounce velocity = (%v, %v), want (10, -200)", th.VX, th.VY)
	}
}

func TestNewThornSpeedRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		th := NewThorn(rng, Circle{X: 100, Y: 100}, 130)
		speed := math.Hypot(th.VX, th.VY)
		if speed < 0.7*130-1e-9 || speed > 1.2*130+1e-9 {
			t.Fatalf("speed %v outside [91, 156]", speed)
		}
	}
}

func TestPlayerClampsToArena(t *testing.T) {
	p := NewPlayer(testArena, 285)
	if p.X != 180 || p.Y != 308 {
		t.Errorf("start = (%v, %v), want (180, 308)", p.X, p.Y)
	}

	ctx := UpdateContext{Delta: 0.033, Arena: testArena, Intent: input.Directions{Left: true, Up: true}}
	for i := 0; i < 200; i++ {
		p.Update(ctx)
	}
	if p.X != PlayerRadius+WallMargin || p.Y != PlayerRadius+WallMargin {
		t.Errorf("corner = (%v, %v), want (%v, %v)", p.X, p.Y, PlayerRadius+WallMargin, PlayerRadius+WallMargin)
	}
	if !testArena.Contains(p.Circle()) {
		t.Error("player left the arena")
	}
}

func TestPlayerDiagonalSpeed(t *testing.T) {
	p := NewPlayer(testArena, 285)
	x0, y0 := p.X, p.Y
	p.Update(UpdateContext{Delta: 0.01, Arena: testArena, Intent: input.Directions{Right: true, Down: true}})
	moved := math.Hypot(p.X-x0, p.Y-y0)
	if math.Abs(moved-2.85) > 1e-9 {
		t.Errorf("diagonal moved %v, want 2.85", moved)
	}
}

func TestHeartBobsOnlyWhileUncollected(t *testing.T) {
	h := NewHeart(Circle{X: 10, Y: 10}, 0)
	h.Update(UpdateContext{Delta: 0.5})
	if math.Abs(h.Bob-1.1) > 1e-12 {
		t.Errorf("Bob = %v, want 1.1", h.Bob)
	}
	h.Collected = true
	h.Update(UpdateContext{Delta: 0.5})
	if math.Abs(h.Bob-1.1) > 1e-12 {
		t.Errorf("collected heart kept bobbing: %v", h.Bob)
	}
}

func TestPetalWrapsAndExpires(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	p := &Petal{X: -10.5, Y: 100, Life: 1, R: 5}
	ctx := UpdateContext{Delta: 0.001, Arena: testArena, Rand: rng}
	if p.Update(ctx) {
		t.Fatal("petal should still be alive")
	}
	if p.X != testArena.Width+10 {
		t.Errorf("X = %v, want wrapped to %v", p.X, testArena.Width+10)
	}

	p = &Petal{X: 100, Y: testArena.Height + 39.99, VY: 100, Life: 1}
	if !p.Update(ctx) {
		t.Error("petal below the floor should be removed")
	}

	p = &Petal{X: 100, Y: 0, Life: 0.0005}
	if !p.Update(ctx) {
		t.Error("expired petal should be removed")
	}
}

func TestNewPetalRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		p := NewPetal(rng, testArena)
		if p.X < 20 || p.X > testArena.Width-20 || p.Y < -0.6*testArena.Height || p.Y > -20 {
			t.Fatalf("position out of range: %+v", p)
		}
		if p.Life < 0.9 || p.Life > PetalMaxLife || p.R < 4 || p.R > 9 || p.Hue < 325 || p.Hue > 355 {
			t.Fatalf("attributes out of range: %+v", p)
		}
		if p.Alpha() > 0.9 {
			t.Fatalf("alpha %v above 0.9", p.Alpha())
		}
		p.Release()
	}
}

func TestShouldRenderBlink(t *testing.T) {
	if !ShouldRenderBlink(0, 10) {
		t.Error("unprotected objects always render")
	}
	// 0.15s at 10Hz -> phase 1 (visible), 0.25s -> phase 2 (hidden)
	if !ShouldRenderBlink(0.15, 10) || ShouldRenderBlink(0.25, 10) {
		t.Error("blink phase mismatch")
	}
}

func TestSparkleFieldWraps(t *testing.T) {
	for _, tm := range []float64{0, 3.3, 120} {
		for i, s := range Sparkles(tm, testArena) {
			if s.X < -60 || s.X >= testArena.Width+60 || s.Y < -60 || s.Y >= testArena.Height+60 {
				t.Errorf("sparkle %d at t=%v outside its wrap band: (%v, %v)", i, tm, s.X, s.Y)
			}
			if s.Alpha < 0.02-1e-9 || s.Alpha > 0.18+1e-9 {
				t.Errorf("sparkle %d alpha %v out of range", i, s.Alpha)
			}
		}
	}
	a, b := SparkleAt(5, 2, testArena), SparkleAt(5, 2, testArena)
	if a != b {
		t.Error("sparkle position is not a function of index and time")
	}
}
