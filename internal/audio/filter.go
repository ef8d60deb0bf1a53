package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// FilterKind selects a biquad response.
type FilterKind int

const (
	BandPass FilterKind = iota
	HighPass
)

// Filter is a second-order filter stage applied to a whole Cue.
type Filter struct {
	Kind FilterKind
	Freq float64 // Centre or cutoff in Hz
	Q    float64
}

// biquad is a direct-form I filter over both channels.
type biquad struct {
	streamer           beep.Streamer
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     [2]float64
}

// newBiquad builds the filter from the RBJ audio EQ cookbook formulas.
func newBiquad(s beep.Streamer, f Filter, rate beep.SampleRate) beep.Streamer {
	q := f.Q
	if q <= 0 {
		q = math.Sqrt2 / 2
	}
	w0 := 2 * math.Pi * f.Freq / float64(rate)
	cosW := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha

	bq := &biquad{streamer: s, a1: -2 * cosW / a0, a2: (1 - alpha) / a0}
	switch f.Kind {
	case BandPass:
		bq.b0 = alpha / a0
		bq.b1 = 0
		bq.b2 = -alpha / a0
	case HighPass:
		bq.b0 = (1 + cosW) / 2 / a0
		bq.b1 = -(1 + cosW) / a0
		bq.b2 = (1 + cosW) / 2 / a0
	}
	return bq
}

func (f *biquad) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for ch := 0; ch < 2; ch++ {
			x := samples[i][ch]
			y := f.b0*x + f.b1*f.x1[ch] + f.b2*f.x2[ch] - f.a1*f.y1[ch] - f.a2*f.y2[ch]
			f.x2[ch], f.x1[ch] = f.x1[ch], x
			f.y2[ch], f.y1[ch] = f.y1[ch], y
			samples[i][ch] = y
		}
	}
	return n, ok
}

func (f *biquad) Err() error { return f.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
