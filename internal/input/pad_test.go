package input

import "testing"

func TestPadDirections(t *testing.T) {
	p := Pad{CX: 100, CY: 100, Size: 40}

	tests := []struct {
		name     string
		pointers []Pointer
		want     Directions
	}{
		{"nothing", nil, Directions{}},
		{"centre is dead", []Pointer{{100, 100}}, Directions{}},
		{"up", []Pointer{{100, 50}}, Directions{Up: true}},
		{"down", []Pointer{{100, 150}}, Directions{Down: true}},
		{"left", []Pointer{{50, 100}}, Directions{Left: true}},
		{"right edge is exclusive", []Pointer{{160, 100}}, Directions{}},
		{"right", []Pointer{{159, 119}}, Directions{Right: true}},
		{"diagonal corner misses", []Pointer{{50, 50}}, Directions{}},
		{"two fingers", []Pointer{{100, 50}, {140, 100}}, Directions{Up: true, Right: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Directions(tt.pointers); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPadButtonLayout(t *testing.T) {
	p := Pad{CX: 0, CY: 0, Size: 10}
	if x, y := p.Button(Directions{Up: true}); x != -5 || y != -15 {
		t.Errorf("up button at (%v, %v), want (-5, -15)", x, y)
	}
	if len(PadButtons()) != 4 {
		t.Errorf("pad has %d buttons", len(PadButtons()))
	}
}
