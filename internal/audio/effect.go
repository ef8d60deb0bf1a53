package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// EnvelopePoint is a gain target reached At after the voice starts.
type EnvelopePoint struct {
	At   time.Duration
	Gain float64
}

// Decay shapes a voice per sample, independent of its envelope.
// Used for the noise bursts of claps.
type Decay int

const (
	DecayNone   Decay = iota
	DecayExp          // exp(-i / (n * 0.12))
	DecayLinear       // 0.9 * (1 - i/n) + 0.1
)

// SoundEffect describes one synthesized voice.
type SoundEffect struct {
	Wave     Wave
	Freq     float64       // Hz; ignored for WaveNoise
	FreqEnd  float64       // When > 0, pitch glides exponentially to this Hz
	SweepFor time.Duration // Glide length
	Start    time.Duration // Offset within the enclosing Cue
	Duration time.Duration
	Gain     float64         // Constant gain, used when Envelope is empty
	Envelope []EnvelopePoint // Gain automation, At ascending
	Decay    Decay
}

// Tone is a constant-gain beep.
func Tone(freq float64, d time.Duration, w Wave, gain float64) SoundEffect {
	return SoundEffect{Wave: w, Freq: freq, Duration: d, Gain: gain}
}

// End returns when the voice stops, relative to the cue start.
func (fx SoundEffect) End() time.Duration {
	return fx.Start + fx.Duration
}

// GainAt returns the envelope gain t seconds into the voice. Segments ramp
// exponentially when both ends are positive, linearly otherwise.
func (fx SoundEffect) GainAt(t float64) float64 {
	env := fx.Envelope
	if len(env) == 0 {
		return fx.Gain
	}
	if t <= env[0].At.Seconds() {
		return env[0].Gain
	}
	for i := 1; i < len(env); i++ {
		t1 := env[i].At.Seconds()
		if t > t1 {
			continue
		}
		t0 := env[i-1].At.Seconds()
		g0, g1 := env[i-1].Gain, env[i].Gain
		if t1 <= t0 {
			return g1
		}
		f := (t - t0) / (t1 - t0)
		if g0 > 0 && g1 > 0 {
			return g0 * math.Pow(g1/g0, f)
		}
		return g0 + (g1-g0)*f
	}
	return env[len(env)-1].Gain
}

// FreqAt returns the pitch t seconds into the voice.
func (fx SoundEffect) FreqAt(t float64) float64 {
	if fx.FreqEnd <= 0 || fx.Freq <= 0 || fx.SweepFor <= 0 {
		return fx.Freq
	}
	f := t / fx.SweepFor.Seconds()
	if f > 1 {
		f = 1
	}
	return fx.Freq * math.Pow(fx.FreqEnd/fx.Freq, f)
}

func (fx SoundEffect) decayAt(i, n int) float64 {
	switch fx.Decay {
	case DecayExp:
		return math.Exp(-float64(i) / (float64(n) * 0.12))
	case DecayLinear:
		return 0.9*(1-float64(i)/float64(n)) + 0.1
	}
	return 1
}

// voice streams one SoundEffect.
type voice struct {
	fx       SoundEffect
	rate     beep.SampleRate
	rng      *rand.Rand
	phase    float64
	position int
	total    int
}

func newVoice(fx SoundEffect, rate beep.SampleRate, rng *rand.Rand) *voice {
	return &voice{fx: fx, rate: rate, rng: rng, total: rate.N(fx.Duration)}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.position >= v.total {
		return 0, false
	}
	for n < len(samples) && v.position < v.total {
		t := float64(v.position) / float64(v.rate)
		val := v.fx.Wave.sample(v.phase, v.rng) * v.fx.GainAt(t) * v.fx.decayAt(v.position, v.total)
		samples[n][0] = val
		samples[n][1] = val

		v.phase += v.fx.FreqAt(t) / float64(v.rate)
		v.phase -= math.Floor(v.phase)
		v.position++
		n++
	}
	return n, true
}

func (v *voice) Err() error { return nil }

// Cue is a group of voices rendered together, optionally filtered.
type Cue struct {
	Voices  []SoundEffect
	Filters []Filter
	Gain    float64 // Master gain; 0 is treated as 1
}

// Length returns when the last voice of the cue ends.
func (c Cue) Length() time.Duration {
	var end time.Duration
	for _, v := range c.Voices {
		if e := v.End(); e > end {
			end = e
		}
	}
	return end
}

// Streamer renders the cue at rate. rng drives noise and must not be
// shared with other goroutines while the stream plays.
func (c Cue) Streamer(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	streams := make([]beep.Streamer, 0, len(c.Voices))
	for _, fx := range c.Voices {
		streams = append(streams, beep.Seq(beep.Silence(rate.N(fx.Start)), newVoice(fx, rate, rng)))
	}
	s := beep.Mix(streams...)
	for _, f := range c.Filters {
		s = newBiquad(s, f, rate)
	}
	if c.Gain > 0 && c.Gain != 1 {
		s = newVolume(s, c.Gain)
	}
	return s
}
