// Package cues turns navigation events into short audio cues.
package cues

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type (
	// Tone is a fixed-length rendered sine wave. It has the same streamer
	// shape as a sampled clip, implementing beep.StreamSeeker.
	Tone struct {
		pos     int
		samples []float64
	}

	// Player owns the speaker. A Player whose speaker failed to initialize
	// plays nothing, so the TUI still works on machines without an audio
	// device.
	Player struct {
		enabled bool
	}
)

// NewTone renders a sine wave at freq Hz for the given duration. A linear
// fade-out keeps the cue from clicking at the cut.
func NewTone(freq float64, d time.Duration) *Tone {
	n := sampleRate.N(d)
	samples := make([]float64, n)
	for i := range samples {
		t := float64(i) / float64(sampleRate)
		env := 1 - float64(i)/float64(n)
		samples[i] = 0.2 * env * math.Sin(2*math.Pi*freq*t)
	}
	return &Tone{samples: samples}
}

// SelectCue is the blip played when the cursor moves to a marker.
func SelectCue() *Tone {
	return NewTone(660, time.Millisecond*60)
}

// ActivateCue is played when a marker is opened.
func ActivateCue() *Tone {
	return NewTone(880, time.Millisecond*120)
}

// Stream implements beep.Streamer.
func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= len(t.samples) {
		return 0, false
	}
	for i := range samples {
		if t.pos >= len(t.samples) {
			break
		}
		v := t.samples[t.pos]
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
		n++
	}
	return n, true
}

func (t *Tone) Err() error {
	return nil
}

// Len returns the total number of samples of the Streamer.
func (t Tone) Len() int {
	return len(t.samples)
}

// Position returns the current position of the Streamer.
func (t Tone) Position() int {
	return t.pos
}

// Seek sets the position of the Streamer to the provided value.
func (t *Tone) Seek(p int) error {
	if p < 0 || p > len(t.samples) {
		return fmt.Errorf("p is out of range: %d", p)
	}
	t.pos = p
	return nil
}

// NewPlayer initializes the speaker unless muted. Speaker errors disable the
// player rather than failing the program.
func NewPlayer(mute bool) Player {
	if mute {
		return Player{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*20)); err != nil {
		return Player{}
	}
	return Player{enabled: true}
}

// Play queues the tone on the speaker and returns immediately.
func (p Player) Play(t *Tone) {
	if !p.enabled {
		return
	}
	speaker.Play(t)
}
