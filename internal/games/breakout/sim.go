package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// Update advances the simulation by dt seconds.
//
// The order of the steps below is part of the game's behavior: power-up
// timers run after catches, compaction after timers, and the loss check
// before the win check.
func (g *Game) Update(dt float64) core.StepResult {
	g.clock += dt
	if g.state == StateActive {
		g.stats.Elapsed += dt
	}

	g.ball.Move(dt, g.cfg.Field.Width)

	g.resolveBricks()
	g.catchPowerUps()
	g.resolvePaddle()

	g.updatePowerUps(dt)
	g.compactPowerUps()

	if g.shakeTime > 0 {
		g.shakeTime -= dt
		if g.shakeTime <= 0 {
			g.shakeTime = 0
			g.shake = false
		}
	}

	var result core.StepResult

	if g.ball.Pos.Y >= g.cfg.Field.Height {
		g.lives--
		g.stats.LivesLost++
		g.log.Debug("life lost", "lives", g.lives, "level", g.level)
		if g.lives <= 0 {
			g.resetLevel()
			g.setState(StateMenu)
			result.Outcome = core.OutcomeLost
		}
		g.resetPlayer()
	}

	if g.state == StateActive && g.current().IsCompleted() {
		g.resetLevel()
		g.resetPlayer()
		g.chaos = true
		g.setState(StateWin)
		g.log.Debug("level won", "level", g.level, "elapsed", g.stats.Elapsed)
		result.Outcome = core.OutcomeWon
	}

	return result
}
