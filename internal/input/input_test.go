package input

import (
	"bufio"
	"math"
	"strings"
	"testing"
	"time"
)

func TestVectorIsUnitLength(t *testing.T) {
	tests := []struct {
		name  string
		d     Directions
		wantX float64
		wantY float64
	}{
		{"none", Directions{}, 0, 0},
		{"right", Directions{Right: true}, 1, 0},
		{"up", Directions{Up: true}, 0, -1},
		{"opposites cancel", Directions{Left: true, Right: true}, 0, 0},
		{"diagonal", Directions{Down: true, Right: true}, 1 / math.Sqrt2, 1 / math.Sqrt2},
		{"three keys", Directions{Up: true, Down: true, Left: true}, -1, 0},
	}
	for _, tt := range tests {
		x, y := tt.d.Vector()
		if math.Abs(x-tt.wantX) > 1e-12 || math.Abs(y-tt.wantY) > 1e-12 {
			t.Errorf("%s: Vector() = (%v, %v), want (%v, %v)", tt.name, x, y, tt.wantX, tt.wantY)
		}
		if l := math.Hypot(x, y); l != 0 && math.Abs(l-1) > 1e-12 {
			t.Errorf("%s: length %v, want 1", tt.name, l)
		}
	}
}

func TestOrCombinesSources(t *testing.T) {
	keys := Directions{Up: true}
	pad := Directions{Left: true}
	got := keys.Or(pad)
	if !got.Up || !got.Left || got.Down || got.Right {
		t.Errorf("Or = %+v", got)
	}
	if !got.Any() || (Directions{}).Any() {
		t.Error("Any() misreports held state")
	}
}

func TestParseKeysAndArrows(t *testing.T) {
	s := &Stream{}
	now := time.Now()

	in := s.parse([]byte("w\x1b[C"), now)
	if !in.Up || !in.Right || in.Left || in.Down {
		t.Errorf("directions = %+v", in.Directions)
	}
	if in.Primary || in.Quit {
		t.Error("no one-shot action expected")
	}

	// Held keys persist briefly without new bytes.
	in = s.parse(nil, now.Add(keyHoldDuration/2))
	if !in.Up || !in.Right {
		t.Error("keys should still be held within the hold window")
	}
	in = s.parse(nil, now.Add(keyHoldDuration*2))
	if in.Any() {
		t.Error("keys should be released after the hold window")
	}
}

func TestParseOpposingPressReleases(t *testing.T) {
	s := &Stream{}
	now := time.Now()
	s.parse([]byte("a"), now)
	in := s.parse([]byte("d"), now.Add(10*time.Millisecond))
	if in.Left || !in.Right {
		t.Errorf("pressing right should release left, got %+v", in.Directions)
	}
}

func TestParseOneShotActions(t *testing.T) {
	s := &Stream{}
	now := time.Now()
	in := s.parse([]byte(" rhm"), now)
	if !in.Primary || !in.Restart || !in.Help || !in.Mute {
		t.Errorf("actions = %+v", in)
	}
	in = s.parse(nil, now.Add(time.Millisecond))
	if in.Primary || in.Restart || in.Help || in.Mute {
		t.Error("one-shot actions must not persist to the next frame")
	}
	if !s.parse([]byte("q"), now).Quit {
		t.Error("q should quit")
	}
}

func TestClosedStreamQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("")))
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ReadInput(s).Quit {
			if !s.Closed() {
				t.Error("Closed() should report true after EOF")
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("closed stream never reported Quit")
}
