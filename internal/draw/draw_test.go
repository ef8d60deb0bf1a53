package draw

import (
	"strings"
	"testing"
)

func TestWrapKeepsParagraphs(t *testing.T) {
	lines := Wrap("Happy day! 💘\n\nYou collected every heart today", 13)
	want := []string{"Happy day! 💘", "", "You collected", "every heart", "today"}
	if len(lines) != len(want) {
		t.Fatalf("Wrap = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	for _, l := range lines {
		if TextWidth(l) > 13 {
			t.Errorf("line %q exceeds width", l)
		}
	}
}

func TestTextWidthCountsWideRunes(t *testing.T) {
	if got := TextWidth("💘"); got != 2 {
		t.Errorf("TextWidth(heart emoji) = %d, want 2", got)
	}
	if got := CenterCol(10, "abcd"); got != 4 {
		t.Errorf("CenterCol = %d, want 4", got)
	}
	if got := CenterCol(2, "too wide"); got != 1 {
		t.Errorf("CenterCol clamps to 1, got %d", got)
	}
}

func TestCanvasFillCircleAndRender(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.SetColor(Pink)
	c.FillCircle(50, 50, 20)

	if got := c.At(50, 50); got != Pink {
		t.Fatalf("centre pixel = %v, want Pink", got)
	}
	if got := c.At(5, 5); got != None {
		t.Errorf("corner pixel = %v, want None", got)
	}

	var sb strings.Builder
	c.Render(&sb)
	out := sb.String()
	if !strings.Contains(out, Pink.FG()) {
		t.Error("render output does not select the pen color")
	}
	if !strings.HasSuffix(out, ColorReset) {
		t.Error("render output should end with a color reset")
	}

	// Nothing changed: second render writes nothing.
	sb.Reset()
	c.Render(&sb)
	if sb.Len() != 0 {
		t.Errorf("unchanged frame wrote %d bytes", sb.Len())
	}

	// Stale cells are rewritten even when unchanged.
	c.MarkTextDirty(1, 1, 3)
	sb.Reset()
	c.Render(&sb)
	if sb.Len() == 0 {
		t.Error("dirty cells were not repainted")
	}
}

func TestCanvasTinyCircleStillVisible(t *testing.T) {
	c := NewScaledCanvas(10, 5, 1000, 1000)
	c.SetColor(Gold)
	c.FillCircle(500, 500, 1)
	if c.At(500, 500) != Gold {
		t.Error("sub-pixel circle should set the pixel under its centre")
	}
}
