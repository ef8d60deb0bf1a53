package loop

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/valentine-dash/internal/audio"
	"github.com/tomz197/valentine-dash/internal/input"
	"github.com/tomz197/valentine-dash/internal/level"
)

type fakeOverlay struct {
	title, body, button string
	visible             bool
}

func (o *fakeOverlay) Show(title, body, button string) {
	o.title, o.body, o.button = title, body, button
	o.visible = true
}

func (o *fakeOverlay) Hide() { o.visible = false }

type fakeSound struct {
	tones     []float64
	cues      []audio.Cue
	fanfares  []time.Duration
	toggledOn bool
}

func (f *fakeSound) Play(fx audio.SoundEffect)      { f.tones = append(f.tones, fx.Freq) }
func (f *fakeSound) PlayCue(c audio.Cue)            { f.cues = append(f.cues, c) }
func (f *fakeSound) Fanfare(applause time.Duration) { f.fanfares = append(f.fanfares, applause) }
func (f *fakeSound) last() float64                  { return f.tones[len(f.tones)-1] }

func (f *fakeSound) Toggle() bool {
	f.toggledOn = !f.toggledOn
	return f.toggledOn
}

type fakeBest struct {
	value float64
	saves []float64
	err   error
}

func (b *fakeBest) Load() float64 { return b.value }

func (b *fakeBest) Save(v float64) error {
	b.saves = append(b.saves, v)
	if b.err != nil {
		return b.err
	}
	b.value = v
	return nil
}

type harness struct {
	c       *Controller
	overlay *fakeOverlay
	sound   *fakeSound
	best    *fakeBest
	levels  *level.Source
	now     time.Time
}

func newHarness(t *testing.T, table *level.Table) *harness {
	t.Helper()
	h := &harness{
		overlay: &fakeOverlay{},
		sound:   &fakeSound{toggledOn: true},
		best:    &fakeBest{},
		levels:  level.NewSource(table),
		now:     time.Unix(1000, 0),
	}
	h.c = NewController(Options{
		Levels:  h.levels,
		Overlay: h.overlay,
		Sound:   h.sound,
		Best:    h.best,
		Rand:    rand.New(rand.NewSource(11)),
		Now:     h.now,
	})
	return h
}

func (h *harness) tick(d time.Duration) {
	h.now = h.now.Add(d)
	h.c.Tick(h.now, input.Directions{})
}

func (h *harness) primary() {
	h.c.Primary(h.now)
}

// clearLevel collects every heart but the last, then steps onto it.
func (h *harness) clearLevel(t *testing.T) {
	t.Helper()
	s := h.c.Session()
	for _, heart := range s.Hearts[:len(s.Hearts)-1] {
		heart.Collected = true
	}
	s.Round.HeartsCollected = len(s.Hearts) - 1
	last := s.Hearts[len(s.Hearts)-1]
	s.Player.X, s.Player.Y = last.X, last.Y

	h.tick(10 * time.Millisecond)
	if h.c.Phase() != PhaseWon {
		t.Fatalf("phase after last heart = %v, want won", h.c.Phase())
	}
}

// celebrate ticks until the win overlay is shown.
func (h *harness) celebrate(t *testing.T) {
	t.Helper()
	for i := 0; i < 200 && h.c.Celebrating(); i++ {
		h.tick(30 * time.Millisecond)
	}
	if h.c.Celebrating() {
		t.Fatal("celebration never finished")
	}
}

func singleLevel(t *testing.T) *level.Table {
	t.Helper()
	cfg := levelOne
	cfg.HeartsTarget = 3
	cfg.ThornsCount = 0
	tbl, err := level.NewTable([]level.Config{cfg}, level.Messages{
		Win:       "Happy day!",
		Signature: "— Me",
		ShareText: "I won",
		ShareHint: "Tip: tell a friend.",
	}, level.Celebration{Seconds: 1.4, DelayMs: 30})
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestControllerShowsTitleOverlay(t *testing.T) {
	h := newHarness(t, level.Default())

	if h.c.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", h.c.Phase())
	}
	if !h.overlay.visible || h.overlay.title != "Level 1: Getting Started" || h.overlay.button != LabelStart {
		t.Errorf("overlay = %+v", h.overlay)
	}
	if h.overlay.body != introBody {
		t.Errorf("intro body = %q", h.overlay.body)
	}
	if h.c.TimeLeft() != 40 {
		t.Errorf("TimeLeft before start = %v, want 40", h.c.TimeLeft())
	}

	h.tick(time.Second)
	if h.c.Session().Round.Elapsed != 0 {
		t.Error("idle controller simulated the round")
	}
}

func TestControllerLoadsBestTime(t *testing.T) {
	best := &fakeBest{value: 21.5}
	c := NewController(Options{
		Levels:  level.NewSource(level.Default()),
		Overlay: &fakeOverlay{},
		Best:    best,
	})
	if c.BestTime() != 21.5 {
		t.Errorf("BestTime = %v, want 21.5", c.BestTime())
	}
}

func TestPrimaryStartsRound(t *testing.T) {
	h := newHarness(t, level.Default())
	h.primary()

	if h.c.Phase() != PhaseRunning || !h.c.Session().Round.Running {
		t.Fatalf("phase = %v after Start", h.c.Phase())
	}
	if h.overlay.visible {
		t.Error("overlay still visible")
	}
	if h.sound.last() != 523.25 {
		t.Errorf("start tone = %v, want 523.25", h.sound.last())
	}

	h.primary()
	if h.c.Session().Round.Level != 1 || h.c.Phase() != PhaseRunning {
		t.Error("Primary during a round changed it")
	}
}

func TestTickClampsDelta(t *testing.T) {
	h := newHarness(t, level.Default())
	h.primary()

	h.tick(time.Second)
	if got := h.c.Session().Round.Elapsed; got != 0.033 {
		t.Errorf("elapsed after a one second stall = %v, want 0.033", got)
	}

	h.now = h.now.Add(-time.Second)
	h.c.Tick(h.now, input.Directions{})
	if got := h.c.Session().Round.Elapsed; got != 0.033 {
		t.Errorf("a backwards clock advanced the round to %v", got)
	}
	if !h.c.LastTick().Equal(h.now) {
		t.Errorf("last tick = %v, want %v", h.c.LastTick(), h.now)
	}
}

func TestWinAdvancesToNextLevel(t *testing.T) {
	h := newHarness(t, level.Default())
	h.primary()
	h.clearLevel(t)

	if h.sound.last() != 880 {
		t.Errorf("pickup tone = %v, want 880", h.sound.last())
	}
	if h.overlay.visible {
		t.Error("overlay shown before the celebration")
	}

	// The celebration waits out the short delay first.
	h.tick(10 * time.Millisecond)
	if h.c.Celebration() != nil {
		t.Error("celebration started before the delay")
	}
	h.tick(25 * time.Millisecond)
	cel := h.c.Celebration()
	if cel == nil || len(cel.Petals) != 60 {
		t.Fatal("celebration did not start with 60 petals")
	}
	if len(h.sound.fanfares) != 1 || h.sound.fanfares[0] != 1200*time.Millisecond {
		t.Errorf("fanfares = %v, want one of 1.2s", h.sound.fanfares)
	}

	// Buttons are ignored while petals fall.
	h.primary()
	h.c.Restart(h.now)
	h.c.ShowHelp()
	if h.c.Phase() != PhaseWon || h.overlay.visible {
		t.Fatal("input interrupted the celebration")
	}

	h.celebrate(t)
	if h.c.Celebration() != nil {
		t.Error("celebration kept after finishing")
	}
	if !h.overlay.visible || h.overlay.title != "You did it! 💘" || h.overlay.button != LabelNextLevel {
		t.Errorf("win overlay = %+v", h.overlay)
	}
	if h.overlay.body != "Level 1: Getting Started Complete! 💘\n\nReady for the next challenge?" {
		t.Errorf("win body = %q", h.overlay.body)
	}
	if len(h.sound.cues) != 1 || len(h.sound.cues[0].Voices) != 2 {
		t.Error("win chime not played")
	}
	if h.c.Winner() {
		t.Error("Winner set before the final level")
	}

	h.primary()
	s := h.c.Session()
	if s.Round.Level != 2 || len(s.Hearts) != 16 || len(s.Thorns) != 12 {
		t.Errorf("next level = %d with %d hearts, %d thorns", s.Round.Level, len(s.Hearts), len(s.Thorns))
	}
}

func TestFinalWin(t *testing.T) {
	h := newHarness(t, singleLevel(t))
	h.primary()
	h.clearLevel(t)
	h.celebrate(t)

	if !h.c.Winner() {
		t.Error("Winner not set after the final level")
	}
	if h.overlay.button != LabelPlayAgain {
		t.Errorf("button = %q, want %q", h.overlay.button, LabelPlayAgain)
	}
	if want := "Happy day!\n\n— Me\n\nTip: tell a friend."; h.overlay.body != want {
		t.Errorf("final body = %q, want %q", h.overlay.body, want)
	}
	if h.c.ShareText() != "I won" {
		t.Errorf("ShareText = %q", h.c.ShareText())
	}

	h.primary()
	if h.c.Phase() != PhaseRunning || h.c.Session().Round.Level != 1 {
		t.Error("Play again did not restart from the first level")
	}
}

func TestShareHintOverride(t *testing.T) {
	overlay := &fakeOverlay{}
	c := NewController(Options{
		Levels:    level.NewSource(singleLevel(t)),
		Overlay:   overlay,
		Rand:      rand.New(rand.NewSource(2)),
		ShareHint: "Tip: press C to copy.",
	})
	now := time.Unix(0, 0)
	c.Primary(now)
	s := c.Session()
	for _, heart := range s.Hearts {
		s.Player.X, s.Player.Y = heart.X, heart.Y
		now = now.Add(10 * time.Millisecond)
		c.Tick(now, input.Directions{})
	}
	for i := 0; i < 100 && c.Phase() == PhaseWon && c.Celebrating(); i++ {
		now = now.Add(30 * time.Millisecond)
		c.Tick(now, input.Directions{})
	}
	if !strings.HasSuffix(overlay.body, "Tip: press C to copy.") {
		t.Errorf("final body = %q", overlay.body)
	}
}

func TestBestTimeOnlyImproves(t *testing.T) {
	h := newHarness(t, singleLevel(t))

	// The winning tick adds 10ms to the preset clock.
	win := func(elapsed float64) {
		h.primary()
		h.c.Session().Round.Elapsed = elapsed
		h.clearLevel(t)
		h.celebrate(t)
	}
	near := func(got, want float64) bool { return math.Abs(got-want) < 1e-9 }

	win(20)
	if !near(h.c.BestTime(), 20.01) || len(h.best.saves) != 1 {
		t.Fatalf("first win: best %v, saves %v", h.c.BestTime(), h.best.saves)
	}

	win(25)
	if !near(h.c.BestTime(), 20.01) || len(h.best.saves) != 1 {
		t.Errorf("slower win changed best to %v (saves %v)", h.c.BestTime(), h.best.saves)
	}

	win(12)
	if !near(h.c.BestTime(), 12.01) || len(h.best.saves) != 2 {
		t.Errorf("faster win: best %v, saves %v", h.c.BestTime(), h.best.saves)
	}
	if !near(h.best.value, 12.01) {
		t.Errorf("stored best = %v", h.best.value)
	}
}

func TestBestTimeSaveFailureKeepsPlaying(t *testing.T) {
	h := newHarness(t, singleLevel(t))
	h.best.err = errors.New("disk full")

	h.primary()
	h.clearLevel(t)
	h.celebrate(t)

	if h.c.BestTime() == 0 {
		t.Error("in-memory best time not updated")
	}
	if h.c.Phase() != PhaseWon || !h.overlay.visible {
		t.Error("save failure interrupted the win overlay")
	}
}

func TestLoseRetriesSameLevel(t *testing.T) {
	h := newHarness(t, level.Default())
	h.primary()
	h.clearLevel(t)
	h.celebrate(t)
	h.primary() // level 2

	s := h.c.Session()
	s.Round.Elapsed = s.Config.TimeLimit - 0.01
	h.tick(20 * time.Millisecond)

	if h.c.Phase() != PhaseLost {
		t.Fatalf("phase = %v, want lost", h.c.Phase())
	}
	if h.sound.last() != 220 {
		t.Errorf("lose tone = %v, want 220", h.sound.last())
	}
	if h.overlay.title != "Time's up 💔" || h.overlay.body != loseBody || h.overlay.button != LabelTryAgain {
		t.Errorf("lose overlay = %+v", h.overlay)
	}
	if h.c.TimeLeft() != 0 {
		t.Errorf("TimeLeft = %v, want 0", h.c.TimeLeft())
	}

	h.primary()
	if h.c.Session().Round.Level != 2 || h.c.Phase() != PhaseRunning {
		t.Errorf("Try again started level %d", h.c.Session().Round.Level)
	}
	if h.c.Session().Round.Elapsed != 0 {
		t.Error("retry kept the old clock")
	}
}

func TestRestartResetsRound(t *testing.T) {
	h := newHarness(t, level.Default())
	h.primary()
	for i := 0; i < 10; i++ {
		h.tick(20 * time.Millisecond)
	}
	h.c.Restart(h.now)

	s := h.c.Session()
	if s.Round.Elapsed != 0 || s.Round.Level != 1 || h.c.Phase() != PhaseRunning {
		t.Errorf("after restart: elapsed %v, level %d, phase %v", s.Round.Elapsed, s.Round.Level, h.c.Phase())
	}
}

func TestShowHelpKeepsButton(t *testing.T) {
	h := newHarness(t, level.Default())
	h.c.ShowHelp()
	if h.overlay.title != "How to play" || h.overlay.body != HelpBody || h.overlay.button != LabelStart {
		t.Errorf("help overlay = %+v", h.overlay)
	}

	h.primary()
	if h.c.Phase() != PhaseRunning {
		t.Error("Start did not work from the help screen")
	}

	h.c.ShowHelp()
	if h.overlay.visible {
		t.Error("help shown during play")
	}
}

func TestToggleSoundConfirms(t *testing.T) {
	h := newHarness(t, level.Default())

	if h.c.ToggleSound() {
		t.Fatal("first toggle should turn sound off")
	}
	if len(h.sound.tones) != 0 {
		t.Error("tone played when turning sound off")
	}
	if !h.c.ToggleSound() {
		t.Fatal("second toggle should turn sound on")
	}
	if h.sound.last() != 660 {
		t.Errorf("confirmation tone = %v, want 660", h.sound.last())
	}
}

func TestReloadedTableWithoutNextLevel(t *testing.T) {
	h := newHarness(t, level.Default())
	h.primary()
	h.levels.Store(singleLevel(t))

	h.clearLevel(t)
	h.celebrate(t)
	if h.overlay.button != LabelPlayAgain || !h.c.Winner() {
		t.Errorf("shrunk table still offers %q", h.overlay.button)
	}
}
