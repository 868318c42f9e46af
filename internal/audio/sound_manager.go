package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

const (
	sampleRate = beep.SampleRate(44100)

	// effectVolume keeps overlapping effects from clipping in the mixer.
	effectVolume = 0.3
)

// SoundManager plays synthesized game sounds through the speaker.
// It implements breakout.SoundPlayer and is safe for concurrent use.
// Until Initialize succeeds every Play is a no-op, so the game runs fine on
// machines without an audio device.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted silences or restores new sounds.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// Play starts the sound for key on top of whatever is already playing.
func (sm *SoundManager) Play(key breakout.SoundKey) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	v := Voice(key, sampleRate)
	if v == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(withVolume(v, effectVolume))
	speaker.Unlock()
}

// Voice builds the finite streamer for a sound key, or nil for an unknown
// key.
func Voice(key breakout.SoundKey, rate beep.SampleRate) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	switch key {
	case breakout.SoundMusic:
		// Rising arpeggio when a level loop starts
		return beep.Seq(
			NewTone(523.25, 523.25, ms(120), WaveTriangle, rate),
			NewTone(659.25, 659.25, ms(120), WaveTriangle, rate),
			NewTone(783.99, 783.99, ms(120), WaveTriangle, rate),
			NewTone(1046.5, 1046.5, ms(240), WaveTriangle, rate),
		)
	case breakout.SoundBrickBreak:
		return NewTone(660, 990, ms(60), WaveSquare, rate)
	case breakout.SoundSolidHit:
		return NewTone(110, 80, ms(90), WaveSquare, rate)
	case breakout.SoundPowerUp:
		return NewTone(440, 1320, ms(220), WaveSine, rate)
	case breakout.SoundPaddleHit:
		return NewTone(330, 330, ms(50), WaveSine, rate)
	default:
		return nil
	}
}
