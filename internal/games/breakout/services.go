package breakout

import (
	"io"

	"github.com/charmbracelet/log"
)

// SoundKey names a sound the game asks its host to play.
type SoundKey int

const (
	SoundMusic      SoundKey = iota // Level loop start
	SoundBrickBreak                 // Destructible brick destroyed
	SoundSolidHit                   // Ball hit a solid brick
	SoundPowerUp                    // Power-up caught by the paddle
	SoundPaddleHit                  // Ball bounced off the paddle
	SoundCount                      // Sentinel for counting keys
)

// String returns the sound name.
func (k SoundKey) String() string {
	switch k {
	case SoundMusic:
		return "music"
	case SoundBrickBreak:
		return "brick"
	case SoundSolidHit:
		return "solid"
	case SoundPowerUp:
		return "powerup"
	case SoundPaddleHit:
		return "paddle"
	default:
		return "unknown"
	}
}

// SoundPlayer plays sounds by key. Calls are fire-and-forget.
type SoundPlayer interface {
	Play(key SoundKey)
}

// Services bundles the collaborators a Game talks to.
// A zero Services is valid: sound is muted and logs are discarded.
type Services struct {
	Sound  SoundPlayer
	Logger *log.Logger
	Seed   int64 // Power-up spawn RNG seed
}

type nopSound struct{}

func (nopSound) Play(SoundKey) {}

func (s Services) withDefaults() Services {
	if s.Sound == nil {
		s.Sound = nopSound{}
	}
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	return s
}
