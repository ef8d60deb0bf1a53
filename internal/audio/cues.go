package audio

import (
	"math/rand"
	"time"
)

// Game cues.
var (
	CueStart   = Tone(523.25, 50*time.Millisecond, WaveTriangle, 0.05)
	CuePickup  = Tone(880, 50*time.Millisecond, WaveTriangle, 0.05)
	CueHit     = Tone(180, 80*time.Millisecond, WaveSquare, 0.06)
	CueLose    = Tone(220, 100*time.Millisecond, WaveSaw, 0.05)
	CueSoundOn = Tone(660, 60*time.Millisecond, WaveSine, 0.04)
)

// WinChime is the two-note flourish played when a level is won.
func WinChime() Cue {
	return Cue{Voices: []SoundEffect{
		Tone(784, 60*time.Millisecond, WaveSine, 0.06),
		Tone(988, 80*time.Millisecond, WaveSine, 0.06),
	}}
}

type note struct {
	freq float64
	dur  time.Duration
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// fanfareMelody rises over an octave and falls back.
var fanfareMelody = []note{
	{261.63, ms(150)}, // C4
	{293.66, ms(150)}, // D4
	{329.63, ms(150)}, // E4
	{392.00, ms(150)}, // G4
	{440.00, ms(200)}, // A4
	{523.25, ms(200)}, // C5
	{587.33, ms(250)}, // D5
	{659.25, ms(300)}, // E5
	{740.00, ms(300)}, // F#5
	{659.25, ms(250)}, // E5
	{587.33, ms(200)}, // D5
	{523.25, ms(200)}, // C5
	{440.00, ms(150)}, // A4
	{392.00, ms(150)}, // G4
	{329.63, ms(150)}, // E4
	{293.66, ms(150)}, // D4
	{261.63, ms(200)}, // C4
}

// Applause tuning.
const (
	clapSpacing   = 200 * time.Millisecond
	bassThreshold = 150 * time.Millisecond
)

var cheerNotes = [...]float64{523.25, 587.33, 659.25}

// Fanfare is the celebration arrangement: a melody with harmony a major
// third up and a bass octave below on the longer notes, over applause
// lasting applause. Hits grow louder towards the end.
func Fanfare(applause time.Duration, rng *rand.Rand) Cue {
	var voices []SoundEffect

	var at time.Duration
	for _, n := range fanfareMelody {
		voices = append(voices,
			SoundEffect{
				Wave: WaveSine, Freq: n.freq, Start: at, Duration: n.dur,
				Envelope: []EnvelopePoint{{0, 0}, {ms(40), 0.35}, {n.dur, 0.15}},
			},
			SoundEffect{
				Wave: WaveSine, Freq: n.freq * 1.25, Start: at, Duration: n.dur,
				Envelope: []EnvelopePoint{{0, 0}, {ms(40), 0.18}, {n.dur, 0.08}},
			},
		)
		if n.dur > bassThreshold {
			voices = append(voices, SoundEffect{
				Wave: WaveSine, Freq: n.freq * 0.5, Start: at, Duration: n.dur,
				Envelope: []EnvelopePoint{{0, 0}, {ms(50), 0.15}, {n.dur, 0.05}},
			})
		}
		at += n.dur
	}

	claps := int(applause / clapSpacing)
	for i := 0; i < claps; i++ {
		start := applause * time.Duration(i) / time.Duration(claps)
		intensity := 0.3 + float64(i)/float64(claps)*0.4
		voices = append(voices, applauseHit(start, intensity, rng)...)
	}

	return Cue{Voices: voices}
}

// applauseHit is one clap: a falling body tone, a noise transient and a
// short rising cheer chord.
func applauseHit(start time.Duration, intensity float64, rng *rand.Rand) []SoundEffect {
	hit := []SoundEffect{
		{
			Wave: WaveSine, Freq: 280 + rng.Float64()*120, FreqEnd: 110, SweepFor: ms(60),
			Start: start, Duration: ms(80),
			Envelope: []EnvelopePoint{{0, 0}, {ms(2), 0.35 * intensity}, {ms(60), 0.08}},
		},
		{
			Wave: WaveNoise, Start: start, Duration: ms(60), Decay: DecayExp,
			Envelope: []EnvelopePoint{{0, 0.3 * intensity}, {ms(60), 0.03}},
		},
	}
	for _, f := range cheerNotes {
		hit = append(hit, SoundEffect{
			Wave: WaveSine, Freq: f, FreqEnd: f * 1.08, SweepFor: ms(50),
			Start: start + ms(50), Duration: ms(90),
			Envelope: []EnvelopePoint{{0, 0}, {ms(20), 0.18 * intensity}, {ms(90), 0.1}},
		})
	}
	return hit
}

// clapBursts are the layered noise transients of a hand clap: start, length, peak.
var clapBursts = []struct {
	start, dur time.Duration
	peak       float64
}{
	{0, ms(30), 0.85},
	{ms(18), ms(40), 0.7},
	{ms(38), ms(55), 0.55},
	{ms(75), ms(90), 0.18},
}

// Clap is a single filtered hand clap.
func Clap() Cue {
	voices := make([]SoundEffect, 0, len(clapBursts))
	for _, b := range clapBursts {
		voices = append(voices, SoundEffect{
			Wave: WaveNoise, Start: b.start, Duration: b.dur, Decay: DecayLinear,
			Envelope: []EnvelopePoint{{0, 0.0001}, {ms(3), b.peak}, {b.dur, 0.0001}},
		})
	}
	return Cue{
		Voices: voices,
		Filters: []Filter{
			{Kind: BandPass, Freq: 1800, Q: 0.8},
			{Kind: HighPass, Freq: 700},
		},
		Gain: 0.9,
	}
}
