package physics

import (
	"math"
	"testing"
)

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name                   string
		x1, y1, r1, x2, y2, r2 float64
		want                   bool
	}{
		{"same centre", 0, 0, 1, 0, 0, 1, true},
		{"overlapping", 0, 0, 18, 30, 0, 14, true},
		{"touching", 0, 0, 18, 32, 0, 14, false},
		{"apart", 0, 0, 18, 100, 100, 14, false},
	}
	for _, tt := range tests {
		if got := CirclesOverlap(tt.x1, tt.y1, tt.r1, tt.x2, tt.y2, tt.r2); got != tt.want {
			t.Errorf("%s: CirclesOverlap = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	x, y := Normalize(1, 1)
	if math.Abs(math.Hypot(x, y)-1) > 1e-12 {
		t.Errorf("diagonal not unit length: (%v, %v)", x, y)
	}
	if math.Abs(x-1/math.Sqrt2) > 1e-12 {
		t.Errorf("x = %v, want %v", x, 1/math.Sqrt2)
	}
	if x, y := Normalize(0, 0); x != 0 || y != 0 {
		t.Errorf("zero vector = (%v, %v), want (0, 0)", x, y)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 || Clamp(15, 0, 10) != 10 || Clamp(3, 0, 10) != 3 {
		t.Error("Clamp returned a value outside its range")
	}
}

func TestBounce(t *testing.T) {
	pos, vel := 5.0, -100.0
	if !Bounce(&pos, &vel, 28, 872) {
		t.Fatal("expected a reflection below the lower wall")
	}
	if pos != 28 || vel != 100 {
		t.Errorf("after lower bounce pos=%v vel=%v, want 28 and 100", pos, vel)
	}

	pos, vel = 900, 50
	if !Bounce(&pos, &vel, 28, 872) {
		t.Fatal("expected a reflection above the upper wall")
	}
	if pos != 872 || vel != -50 {
		t.Errorf("after upper bounce pos=%v vel=%v, want 872 and -50", pos, vel)
	}

	pos, vel = 400, 50
	if Bounce(&pos, &vel, 28, 872) {
		t.Error("no reflection expected inside bounds")
	}
}
