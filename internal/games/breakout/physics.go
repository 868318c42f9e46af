package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// resolveBricks tests the ball against every standing brick.
//
// Each hit is resolved against the ball state left by the previous one, and
// bricks are not re-tested after a push-out. Two bricks hit in the same frame
// can therefore both flip the same velocity component.
func (g *Game) resolveBricks() {
	for i := range g.current().Bricks {
		b := &g.current().Bricks[i]
		if b.Destroyed {
			continue
		}
		hit, ok := core.CircleRectCollide(g.ball.Circle, b.Rect)
		if !ok {
			continue
		}

		if b.Solid {
			g.shakeTime = g.cfg.Gameplay.ShakeDuration
			g.shake = true
			g.svc.Sound.Play(SoundSolidHit)
		} else {
			b.Destroyed = true
			g.stats.BricksBroken++
			g.spawnPowerUps(b)
			g.svc.Sound.Play(SoundBrickBreak)
		}

		if g.ball.PassThrough && !b.Solid {
			continue
		}
		g.pushOut(hit)
	}
}

// pushOut reflects the ball off a brick and moves it out of overlap.
func (g *Game) pushOut(hit core.Collision) {
	switch hit.Direction {
	case core.Left, core.Right:
		g.ball.Velocity.X = -g.ball.Velocity.X
		depth := g.ball.Radius - math.Abs(hit.Penetration.X)
		if hit.Direction == core.Left {
			g.ball.Pos.X += depth
		} else {
			g.ball.Pos.X -= depth
		}
	default:
		g.ball.Velocity.Y = -g.ball.Velocity.Y
		depth := g.ball.Radius - math.Abs(hit.Penetration.Y)
		if hit.Direction == core.Up {
			g.ball.Pos.Y -= depth
		} else {
			g.ball.Pos.Y += depth
		}
	}
}

// catchPowerUps retires power-ups that fell off the field and activates the
// ones touching the paddle.
func (g *Game) catchPowerUps() {
	for i := range g.powerUps {
		p := &g.powerUps[i]
		if p.Destroyed {
			continue
		}
		if p.Pos.Y >= g.cfg.Field.Height {
			p.Destroyed = true
			continue
		}
		if !core.RectOverlap(g.paddle.Rect, p.Rect) {
			continue
		}
		g.activatePowerUp(p)
		p.Destroyed = true
		p.Activated = true
		g.stats.PowerUpsCaught++
		g.svc.Sound.Play(SoundPowerUp)
	}
}

// resolvePaddle bounces the ball off the paddle. Where the ball lands on the
// paddle steers the outgoing angle; the speed is kept.
func (g *Game) resolvePaddle() {
	if g.ball.Stuck {
		return
	}
	if _, ok := core.CircleRectCollide(g.ball.Circle, g.paddle.Rect); !ok {
		return
	}

	halfW := g.paddle.Size.X / 2
	distance := g.ball.Center().X - (g.paddle.Pos.X + halfW)
	percentage := distance / halfW // Not clamped: edge hits go past 1

	speed := g.ball.Velocity.Len()
	g.ball.Velocity.X = g.cfg.Ball.VelocityX * percentage * g.cfg.Ball.Strength
	g.ball.Velocity = g.ball.Velocity.Normalize().Scale(speed)
	g.ball.Velocity.Y = -math.Abs(g.ball.Velocity.Y)
	g.ball.Stuck = g.ball.Sticky

	g.svc.Sound.Play(SoundPaddleHit)
}
