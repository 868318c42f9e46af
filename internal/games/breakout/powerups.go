package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// PowerUpType is the closed set of power-up kinds.
type PowerUpType int

const (
	PowerUpSpeed       PowerUpType = iota // Ball speed x1.2
	PowerUpSticky                         // Ball sticks to the paddle
	PowerUpPassThrough                    // Ball passes through bricks
	PowerUpPadSize                        // Paddle grows
	PowerUpConfuse                        // Screen is flipped
	PowerUpChaos                          // Screen tints cycle
	PowerUpCount                          // Sentinel for counting types
)

// String returns the name of the power-up type.
func (t PowerUpType) String() string {
	switch t {
	case PowerUpSpeed:
		return "speed"
	case PowerUpSticky:
		return "sticky"
	case PowerUpPassThrough:
		return "pass-through"
	case PowerUpPadSize:
		return "pad-size-increase"
	case PowerUpConfuse:
		return "confuse"
	case PowerUpChaos:
		return "chaos"
	default:
		return fmt.Sprintf("PowerUpType(%d)", int(t))
	}
}

// Glyph returns the display character for a falling power-up.
func (t PowerUpType) Glyph() rune {
	switch t {
	case PowerUpSpeed:
		return 'S'
	case PowerUpSticky:
		return 'T'
	case PowerUpPassThrough:
		return 'P'
	case PowerUpPadSize:
		return 'W'
	case PowerUpConfuse:
		return 'C'
	case PowerUpChaos:
		return 'X'
	default:
		return '?'
	}
}

// powerUpSpec holds the fixed per-type properties.
type powerUpSpec struct {
	color    core.Color
	duration float64
	negative bool // Rolled with the negative (more frequent) chance
}

var powerUpSpecs = [PowerUpCount]powerUpSpec{
	PowerUpSpeed:       {color: core.RGB(0.5, 0.5, 1.0), duration: 0},
	PowerUpSticky:      {color: core.RGB(1.0, 0.5, 1.0), duration: 20},
	PowerUpPassThrough: {color: core.RGB(0.5, 1.0, 0.5), duration: 10},
	PowerUpPadSize:     {color: core.RGB(1.0, 0.6, 0.4), duration: 0},
	PowerUpConfuse:     {color: core.RGB(1.0, 0.3, 0.3), duration: 15, negative: true},
	PowerUpChaos:       {color: core.RGB(0.9, 0.25, 0.25), duration: 15, negative: true},
}

// Tints applied while an effect is on.
var (
	stickyPaddleColor    = core.RGB(1.0, 0.5, 1.0)
	passThroughBallColor = core.RGB(1.0, 0.5, 0.5)
)

func (t PowerUpType) spec() powerUpSpec {
	if t < 0 || t >= PowerUpCount {
		panic(fmt.Sprintf("breakout: unknown power-up type %d", int(t)))
	}
	return powerUpSpecs[t]
}

// Color returns the tint of the power-up type.
func (t PowerUpType) Color() core.Color { return t.spec().color }

// Duration returns how long the effect lasts once caught, in seconds.
func (t PowerUpType) Duration() float64 { return t.spec().duration }

// spawnPowerUps rolls every power-up type independently for a destroyed
// brick and appends the winners at the brick position.
func (g *Game) spawnPowerUps(b *Brick) {
	for t := range PowerUpCount {
		spec := t.spec()
		chance := g.cfg.PowerUps.PositiveChance
		if spec.negative {
			chance = g.cfg.PowerUps.NegativeChance
		}
		if !g.rng.OneIn(chance) {
			continue
		}
		g.powerUps = append(g.powerUps, PowerUp{
			Rect:     core.NewRect(b.Pos.X, b.Pos.Y, g.cfg.PowerUps.Width, g.cfg.PowerUps.Height),
			Type:     t,
			Velocity: core.V(0, g.cfg.PowerUps.FallSpeed),
			Duration: spec.duration,
			Color:    spec.color,
		})
	}
}

// activatePowerUp applies the effect of a caught power-up.
func (g *Game) activatePowerUp(p *PowerUp) {
	switch p.Type {
	case PowerUpSpeed:
		g.ball.Velocity = g.ball.Velocity.Scale(g.cfg.PowerUps.SpeedMultiplier)
	case PowerUpSticky:
		g.ball.Sticky = true
		g.paddle.Color = stickyPaddleColor
	case PowerUpPassThrough:
		g.ball.PassThrough = true
		g.ball.Color = passThroughBallColor
	case PowerUpPadSize:
		g.paddle.Size.X += g.cfg.Paddle.SizeIncrease
	case PowerUpConfuse:
		if !g.chaos {
			g.confuse = true
		}
	case PowerUpChaos:
		if !g.confuse {
			g.chaos = true
		}
	default:
		panic(fmt.Sprintf("breakout: activate unknown power-up type %d", int(p.Type)))
	}
	g.log.Debug("power-up caught", "type", p.Type)
}

// deactivatePowerUp reverts the effect of an expired power-up, unless
// another power-up of the same type is still in force.
func (g *Game) deactivatePowerUp(t PowerUpType) {
	if g.IsOtherPowerUpActive(t) {
		return
	}
	switch t {
	case PowerUpSpeed, PowerUpPadSize:
		// Instant effects are never reverted.
	case PowerUpSticky:
		g.ball.Sticky = false
		g.paddle.Color = core.ColorWhite
	case PowerUpPassThrough:
		g.ball.PassThrough = false
		g.ball.Color = core.ColorWhite
	case PowerUpConfuse:
		g.confuse = false
	case PowerUpChaos:
		g.chaos = false
	default:
		panic(fmt.Sprintf("breakout: deactivate unknown power-up type %d", int(t)))
	}
	g.log.Debug("power-up expired", "type", t)
}

// IsOtherPowerUpActive reports whether any power-up of type t is still
// activated. Call it after clearing the expiring entry's Activated flag.
func (g *Game) IsOtherPowerUpActive(t PowerUpType) bool {
	for i := range g.powerUps {
		if g.powerUps[i].Activated && g.powerUps[i].Type == t {
			return true
		}
	}
	return false
}

// updatePowerUps moves every power-up and runs down active timers.
func (g *Game) updatePowerUps(dt float64) {
	for i := range g.powerUps {
		p := &g.powerUps[i]
		p.Pos = p.Pos.Add(p.Velocity.Scale(dt))
		if !p.Activated {
			continue
		}
		p.Duration -= dt
		if p.Duration <= 0 {
			p.Activated = false
			g.deactivatePowerUp(p.Type)
		}
	}
}

// compactPowerUps drops power-ups that are both destroyed and inactive,
// keeping the order of the rest.
func (g *Game) compactPowerUps() {
	kept := g.powerUps[:0]
	for _, p := range g.powerUps {
		if p.Destroyed && !p.Activated {
			continue
		}
		kept = append(kept, p)
	}
	clear(g.powerUps[len(kept):])
	g.powerUps = kept
}
