package breakout

import (
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// dropOnPaddle appends a falling power-up of type t right on the paddle.
func dropOnPaddle(g *Game, t PowerUpType) {
	g.powerUps = append(g.powerUps, PowerUp{
		Rect:     core.NewRect(g.paddle.Pos.X, g.paddle.Pos.Y, 60, 20),
		Type:     t,
		Velocity: core.V(0, 150),
		Duration: t.Duration(),
		Color:    t.Color(),
	})
}

func TestPowerUpTypeProperties(t *testing.T) {
	tests := []struct {
		typ      PowerUpType
		duration float64
		color    core.Color
	}{
		{PowerUpSpeed, 0, core.RGB(0.5, 0.5, 1.0)},
		{PowerUpSticky, 20, core.RGB(1.0, 0.5, 1.0)},
		{PowerUpPassThrough, 10, core.RGB(0.5, 1.0, 0.5)},
		{PowerUpPadSize, 0, core.RGB(1.0, 0.6, 0.4)},
		{PowerUpConfuse, 15, core.RGB(1.0, 0.3, 0.3)},
		{PowerUpChaos, 15, core.RGB(0.9, 0.25, 0.25)},
	}
	for _, tc := range tests {
		t.Run(tc.typ.String(), func(t *testing.T) {
			if tc.typ.Duration() != tc.duration {
				t.Errorf("duration = %g, expected %g", tc.typ.Duration(), tc.duration)
			}
			if tc.typ.Color() != tc.color {
				t.Errorf("color = %v, expected %v", tc.typ.Color(), tc.color)
			}
		})
	}
}

func TestUnknownPowerUpPanics(t *testing.T) {
	g, _ := newTestGame(t)
	defer func() {
		if recover() == nil {
			t.Error("unknown power-up type should panic")
		}
	}()
	g.activatePowerUp(&PowerUp{Type: PowerUpCount})
}

func TestSpawnPowerUps(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.PowerUps.PositiveChance = 1
	cfg.PowerUps.NegativeChance = 1
	g, _ := newTestGameWithConfig(t, cfg)

	brick := g.current().Bricks[2]
	g.spawnPowerUps(&brick)

	if len(g.powerUps) != int(PowerUpCount) {
		t.Fatalf("certain chances should spawn every type, got %d", len(g.powerUps))
	}
	for i, p := range g.powerUps {
		if p.Type != PowerUpType(i) {
			t.Errorf("power-up %d has type %s, spawn order should follow the enum", i, p.Type)
		}
		if p.Pos != brick.Pos {
			t.Errorf("%s spawned at %v, expected brick position %v", p.Type, p.Pos, brick.Pos)
		}
		if p.Size != core.V(60, 20) || p.Velocity != core.V(0, 150) {
			t.Errorf("%s has size %v velocity %v", p.Type, p.Size, p.Velocity)
		}
		if p.Activated || p.Destroyed {
			t.Errorf("%s should spawn falling", p.Type)
		}
	}
}

func TestSpawnRates(t *testing.T) {
	g, _ := newTestGame(t)
	brick := g.current().Bricks[2]

	const rolls = 30000
	for range rolls {
		g.spawnPowerUps(&brick)
	}

	var counts [PowerUpCount]int
	for _, p := range g.powerUps {
		counts[p.Type]++
	}
	// Expected 400 per positive type and 2000 per negative type.
	for typ := range PowerUpCount {
		want := rolls / 75
		if typ == PowerUpConfuse || typ == PowerUpChaos {
			want = rolls / 15
		}
		if counts[typ] < want*3/4 || counts[typ] > want*5/4 {
			t.Errorf("%s spawned %d times, expected about %d", typ, counts[typ], want)
		}
	}
}

func TestCatchPowerUp(t *testing.T) {
	g, sound := newTestGame(t)
	g.ball.Velocity = core.V(100, -350)
	dropOnPaddle(g, PowerUpSpeed)
	dropOnPaddle(g, PowerUpPadSize)

	g.catchPowerUps()

	if !approx(g.ball.Velocity.X, 120) || !approx(g.ball.Velocity.Y, -420) {
		t.Errorf("speed should scale velocity by 1.2, got %v", g.ball.Velocity)
	}
	if g.paddle.Size.X != 150 {
		t.Errorf("pad size should add 50, width = %g", g.paddle.Size.X)
	}
	for _, p := range g.powerUps {
		if !p.Destroyed || !p.Activated {
			t.Errorf("caught %s should be destroyed and activated", p.Type)
		}
	}
	if g.Stats().PowerUpsCaught != 2 || sound.count(SoundPowerUp) != 2 {
		t.Error("catches should be counted and heard")
	}

	// Instant power-ups expire on the next timer pass and are dropped.
	g.updatePowerUps(0.016)
	g.compactPowerUps()
	if len(g.powerUps) != 0 {
		t.Errorf("instant power-ups should be removed, %d left", len(g.powerUps))
	}
	if g.paddle.Size.X != 150 {
		t.Error("pad size is never reverted by expiry")
	}
}

func TestPowerUpFallsOffField(t *testing.T) {
	g, _ := newTestGame(t)
	g.powerUps = append(g.powerUps, PowerUp{
		Rect: core.NewRect(0, 600, 60, 20),
		Type: PowerUpSticky,
	})
	g.catchPowerUps()

	if !g.powerUps[0].Destroyed || g.powerUps[0].Activated {
		t.Error("power-up below the field should be destroyed without activating")
	}
	if g.ball.Sticky {
		t.Error("missed power-up must not apply")
	}
}

func TestStickyCaughtTwice(t *testing.T) {
	g, _ := newTestGame(t)

	dropOnPaddle(g, PowerUpSticky)
	g.Update(0.1) // First catch: 19.9s left
	g.Update(5)   // 14.9s left
	dropOnPaddle(g, PowerUpSticky)
	g.Update(0.1) // First 14.8s, second caught with 19.9s

	if !g.ball.Sticky || g.paddle.Color != stickyPaddleColor {
		t.Fatal("sticky should be on after the catches")
	}
	if len(g.powerUps) != 2 {
		t.Fatalf("expected two active sticky power-ups, got %d", len(g.powerUps))
	}

	g.Update(15) // First expires, second still has 4.9s
	if !g.IsOtherPowerUpActive(PowerUpSticky) {
		t.Error("second sticky should still be active")
	}
	if !g.ball.Sticky || g.paddle.Color != stickyPaddleColor {
		t.Error("first expiry must not turn sticky off while another is active")
	}
	if len(g.powerUps) != 1 {
		t.Errorf("expired power-up should be removed, %d left", len(g.powerUps))
	}

	g.Update(5) // Second expires
	if g.ball.Sticky {
		t.Error("last expiry should turn sticky off")
	}
	if g.paddle.Color != core.ColorWhite {
		t.Error("paddle tint should be restored")
	}
	if len(g.powerUps) != 0 {
		t.Errorf("all power-ups should be gone, %d left", len(g.powerUps))
	}
}

func TestPassThroughExpiry(t *testing.T) {
	g, _ := newTestGame(t)
	dropOnPaddle(g, PowerUpPassThrough)
	g.Update(0.1)
	if !g.ball.PassThrough || g.ball.Color != passThroughBallColor {
		t.Fatal("pass-through should be on")
	}
	g.Update(10)
	if g.ball.PassThrough || g.ball.Color != core.ColorWhite {
		t.Error("pass-through should expire after 10s")
	}
}

func TestConfuseChaosExclusive(t *testing.T) {
	t.Run("confuse yields to chaos", func(t *testing.T) {
		g, _ := newTestGame(t)
		g.chaos = true
		g.activatePowerUp(&PowerUp{Type: PowerUpConfuse})
		if _, confuse, chaos := g.Effects(); confuse || !chaos {
			t.Errorf("confuse=%v chaos=%v, expected only chaos", confuse, chaos)
		}
	})

	t.Run("chaos yields to confuse", func(t *testing.T) {
		g, _ := newTestGame(t)
		g.confuse = true
		g.activatePowerUp(&PowerUp{Type: PowerUpChaos})
		if _, confuse, chaos := g.Effects(); !confuse || chaos {
			t.Errorf("confuse=%v chaos=%v, expected only confuse", confuse, chaos)
		}
	})

	t.Run("both caught in one frame", func(t *testing.T) {
		g, _ := newTestGame(t)
		dropOnPaddle(g, PowerUpChaos)
		dropOnPaddle(g, PowerUpConfuse)
		g.catchPowerUps()
		if _, confuse, chaos := g.Effects(); confuse || !chaos {
			t.Errorf("confuse=%v chaos=%v, expected the first catch to win", confuse, chaos)
		}
	})
}

func TestCompactPowerUps(t *testing.T) {
	g, _ := newTestGame(t)
	g.powerUps = []PowerUp{
		{Type: PowerUpSpeed},                                     // Falling: kept
		{Type: PowerUpSticky, Destroyed: true},                   // Missed: removed
		{Type: PowerUpConfuse, Destroyed: true, Activated: true}, // In force: kept
		{Type: PowerUpChaos, Destroyed: true},                    // Expired: removed
		{Type: PowerUpPadSize, Activated: true},                  // Kept
	}

	g.compactPowerUps()

	want := []PowerUpType{PowerUpSpeed, PowerUpConfuse, PowerUpPadSize}
	if len(g.powerUps) != len(want) {
		t.Fatalf("got %d power-ups, expected %d", len(g.powerUps), len(want))
	}
	for i, typ := range want {
		if g.powerUps[i].Type != typ {
			t.Errorf("power-up %d = %s, expected %s (order must be kept)", i, g.powerUps[i].Type, typ)
		}
	}
}

func TestResetPlayerKeepsPowerUps(t *testing.T) {
	g, _ := newTestGame(t)
	g.state = StateActive
	dropOnPaddle(g, PowerUpSticky)
	g.Update(0.1)

	g.resetPlayer()
	if g.ball.Sticky {
		t.Error("reset should clear sticky")
	}
	if len(g.powerUps) != 1 || !g.powerUps[0].Activated {
		t.Error("reset leaves active power-ups to run out their timers")
	}
}
