package client

import (
	"bufio"
	"bytes"
	"io"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomz197/valentine-dash/internal/draw"
	"github.com/tomz197/valentine-dash/internal/level"
	"github.com/tomz197/valentine-dash/internal/loop"
	"github.com/tomz197/valentine-dash/internal/loop/config"
	"github.com/tomz197/valentine-dash/internal/loop/server"
	"github.com/tomz197/valentine-dash/internal/object"
)

type fakeLobby struct {
	mu         sync.Mutex
	registered []string
	left       []int
}

func (l *fakeLobby) RegisterClient(username string) *server.ClientHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.registered = append(l.registered, username)
	return &server.ClientHandle{ID: len(l.registered), Username: username, EventsCh: make(chan server.ClientEvent, 1)}
}

func (l *fakeLobby) UnregisterClient(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.left = append(l.left, id)
}

func (l *fakeLobby) Players() int { return 1 }

func testArena() object.Arena {
	return object.Arena{Width: config.ArenaWidth, Height: config.ArenaHeight}
}

func fixedSize(w, h int) draw.TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{80, 24, 80, 24, 0, 0},
		{200, 60, config.MaxTermWidth, config.MaxTermHeight, 10, 2},
		{181, 56, config.MaxTermWidth, 56, 0, 0},
	}
	for _, tt := range tests {
		rw, rh, oc, or := clampTermSize(tt.w, tt.h)
		if rw != tt.rw || rh != tt.rh || oc != tt.offCol || or != tt.offRow {
			t.Errorf("clampTermSize(%d, %d) = %d %d %d %d, want %d %d %d %d",
				tt.w, tt.h, rw, rh, oc, or, tt.rw, tt.rh, tt.offCol, tt.offRow)
		}
	}
}

func TestTimeBarColor(t *testing.T) {
	if timeBarColor(0.36) != draw.Green {
		t.Error("bar not green above the warning ratio")
	}
	if timeBarColor(0.35) != draw.Red || timeBarColor(0.1) != draw.Red {
		t.Error("bar not red at or below the warning ratio")
	}
}

func TestHUDLine(t *testing.T) {
	s := loop.NewSession(testArena(), rand.New(rand.NewSource(1)))
	cfg, _ := level.Default().Get(1)
	s.Reset(cfg)
	s.Round.HeartsCollected = 3
	s.Round.Elapsed = 12.2

	line := hudLine(s, 0)
	for _, want := range []string{"Level 1", "3/12", "Time  28s", "Best —"} {
		if !strings.Contains(line, want) {
			t.Errorf("hud %q lacks %q", line, want)
		}
	}
	if line := hudLine(s, 23.456); !strings.Contains(line, "Best 23.5s") {
		t.Errorf("hud %q does not show the best time", line)
	}
}

func TestOverlayVersions(t *testing.T) {
	var o overlay
	if o.changed() {
		t.Error("fresh overlay reports a change")
	}
	o.Show("t", "b", "Start")
	if !o.changed() || !o.visible {
		t.Fatal("Show not recorded")
	}
	o.markDrawn()
	o.Hide()
	o.Hide()
	if o.version != 2 {
		t.Errorf("version = %d, want one bump per visible change", o.version)
	}
}

func TestClientShowsTitleAndQuits(t *testing.T) {
	lobby := &fakeLobby{}
	pr, pw := io.Pipe()
	var out bytes.Buffer

	c := NewClient(lobby, bufio.NewReader(pr), &out, ClientOptions{
		TermSizeFunc: fixedSize(100, 30),
		Username:     "ada",
		Levels:       level.NewSource(level.Default()),
		Rand:         rand.New(rand.NewSource(2)),
	})

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	time.Sleep(100 * time.Millisecond)
	pw.Write([]byte("q"))

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("client did not quit")
	}
	pw.Close()

	screen := out.String()
	for _, want := range []string{"Level 1: Getting Started", "[ Start ]", "Players: 1", config.DefaultTitle} {
		if !strings.Contains(screen, want) {
			t.Errorf("output lacks %q", want)
		}
	}
	if len(lobby.registered) != 1 || lobby.registered[0] != "ada" {
		t.Errorf("registered %v", lobby.registered)
	}
	if len(lobby.left) != 1 || lobby.left[0] != 1 {
		t.Errorf("unregistered %v, want [1]", lobby.left)
	}
}

func TestClientLeavesOnShutdown(t *testing.T) {
	lobby := &fakeLobby{}
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer

	c := NewClient(lobby, bufio.NewReader(pr), &out, ClientOptions{
		TermSizeFunc: fixedSize(100, 30),
		Levels:       level.NewSource(level.Default()),
	})
	c.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	time.Sleep(100 * time.Millisecond)
	pw.Write([]byte("q"))
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("client did not leave")
	}
	if !strings.Contains(out.String(), "SERVER SHUTTING DOWN") {
		t.Error("shutdown screen not drawn")
	}
}
