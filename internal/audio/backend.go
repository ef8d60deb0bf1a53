package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// ErrNoAudioBackend is returned by openers when no output device exists.
var ErrNoAudioBackend = errors.New("audio: no audio backend")

// Backend plays finished streamers.
type Backend interface {
	SampleRate() beep.SampleRate
	Play(s beep.Streamer) error
	Close() error
}

// Opener lazily creates a Backend on first use.
type Opener func() (Backend, error)

// NoBackend is the Opener for sessions without a sound device, such as SSH.
func NoBackend() (Backend, error) {
	return nil, ErrNoAudioBackend
}

// speakerBackend feeds a single mixer attached to the process speaker.
type speakerBackend struct {
	mixer *beep.Mixer
}

var (
	speakerOnce sync.Once
	speakerOut  *speakerBackend
	speakerErr  error
)

// OpenSpeaker initializes the process-wide speaker. Later calls return the
// same backend.
func OpenSpeaker() (Backend, error) {
	speakerOnce.Do(func() {
		if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
			speakerErr = errors.Join(ErrNoAudioBackend, err)
			return
		}
		speakerOut = &speakerBackend{mixer: &beep.Mixer{}}
		speaker.Play(speakerOut.mixer)
	})
	if speakerErr != nil {
		return nil, speakerErr
	}
	return speakerOut, nil
}

func (b *speakerBackend) SampleRate() beep.SampleRate { return sampleRate }

func (b *speakerBackend) Play(s beep.Streamer) error {
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// Close silences everything still playing. The speaker itself stays open
// for the life of the process.
func (b *speakerBackend) Close() error {
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	return nil
}
