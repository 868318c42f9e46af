package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// Paddle is the player-controlled rectangle at the bottom of the field.
type Paddle struct {
	core.Rect
	Color core.Color
}

// Ball is the circular body bouncing around the field.
type Ball struct {
	core.Circle
	Velocity    core.Vec2
	Stuck       bool // Rides on the paddle until launched
	Sticky      bool // Re-attaches to the paddle on contact
	PassThrough bool // Flies through destructible bricks
	Color       core.Color
}

// Move advances the ball by dt and bounces it off the left, right and top
// walls of a field fieldW wide. The bottom is open.
func (b *Ball) Move(dt, fieldW float64) {
	if b.Stuck {
		return
	}
	b.Pos = b.Pos.Add(b.Velocity.Scale(dt))

	size := b.Radius * 2
	if b.Pos.X <= 0 {
		b.Velocity.X = -b.Velocity.X
		b.Pos.X = 0
	} else if b.Pos.X+size >= fieldW {
		b.Velocity.X = -b.Velocity.X
		b.Pos.X = fieldW - size
	}
	if b.Pos.Y <= 0 {
		b.Velocity.Y = -b.Velocity.Y
		b.Pos.Y = 0
	}
}

// Reset parks the ball at pos with the given velocity, stuck and with no
// power-up flags.
func (b *Ball) Reset(pos, vel core.Vec2) {
	b.Pos = pos
	b.Velocity = vel
	b.Stuck = true
	b.Sticky = false
	b.PassThrough = false
}

// PowerUp is a falling collectible, and once caught, a timed effect.
//
// Destroyed means it is no longer falling or visible. Activated means its
// effect is in force. A caught power-up is both until its duration runs out.
type PowerUp struct {
	core.Rect
	Type      PowerUpType
	Velocity  core.Vec2
	Duration  float64 // Seconds left once activated; 0 means instant
	Activated bool
	Destroyed bool
	Color     core.Color
}
