package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report presses, so movement keys stay active for this long
// after each auto-repeat.
const keyHoldDuration = 120 * time.Millisecond

// Input represents the current frame's input state.
// Directions are held state; the remaining flags are set only on the frame
// their key arrived.
type Input struct {
	Directions
	Quit    bool
	Primary bool // Space or Enter: the overlay button
	Restart bool
	Help    bool
	Mute    bool
	Pressed []byte
}

// keyState tracks the last time each movement key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
// A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.parse(buf, now)
}

// parse applies buf to the key state and builds the frame's Input.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	in := Input{Pressed: buf, Quit: s.closed}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.pressUp(now)
				i += 2
				continue
			case 'B':
				s.state.pressDown(now)
				i += 2
				continue
			case 'C':
				s.state.pressRight(now)
				i += 2
				continue
			case 'D':
				s.state.pressLeft(now)
				i += 2
				continue
			}
		}

		applyByte(&s.state, &in, b, now)
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Up = now.Sub(s.state.up) < keyHoldDuration
	in.Down = now.Sub(s.state.down) < keyHoldDuration
	return in
}

// applyByte updates key state and one-shot actions for a single byte.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C arrives as a byte in raw mode
		in.Quit = true
	case 'a', 'A':
		state.pressLeft(now)
	case 'd', 'D':
		state.pressRight(now)
	case 'w', 'W':
		state.pressUp(now)
	case 's', 'S':
		state.pressDown(now)
	case ' ', '\n', '\r':
		in.Primary = true
	case 'r', 'R':
		in.Restart = true
	case 'h', 'H', '?':
		in.Help = true
	case 'm', 'M':
		in.Mute = true
	}
}

// Pressing a direction releases its opposite so reversing is immediate.

func (k *keyState) pressLeft(now time.Time) {
	k.left = now
	k.right = time.Time{}
}

func (k *keyState) pressRight(now time.Time) {
	k.right = now
	k.left = time.Time{}
}

func (k *keyState) pressUp(now time.Time) {
	k.up = now
	k.down = time.Time{}
}

func (k *keyState) pressDown(now time.Time) {
	k.down = now
	k.up = time.Time{}
}
