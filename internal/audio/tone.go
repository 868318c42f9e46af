// Package audio synthesizes the game's sound effects with beep.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// tone is a single oscillator note that glides from one frequency to
// another and fades out linearly over its duration.
type tone struct {
	from, to float64 // Hz
	wave     WaveType
	rate     beep.SampleRate
	phase    float64
	position int
	duration int
}

// NewTone creates a fading note gliding from one frequency to another.
// Pass the same frequency twice for a steady pitch.
func NewTone(from, to float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &tone{
		from:     from,
		to:       to,
		wave:     wave,
		rate:     rate,
		duration: max(rate.N(d), 1),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}
		progress := float64(t.position) / float64(t.duration)

		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			val = 1
			if t.phase >= 0.5 {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(t.phase-0.5) - 1
		}
		val *= 1 - progress

		samples[i][0] = val
		samples[i][1] = val

		freq := t.from + (t.to-t.from)*progress
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales a streamer linearly; vol is in (0, 1].
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
