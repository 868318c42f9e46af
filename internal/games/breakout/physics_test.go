package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// placeBall moves the ball so its center sits at (cx, cy).
func placeBall(g *Game, cx, cy float64) {
	g.ball.Stuck = false
	g.ball.Pos = core.V(cx-g.ball.Radius, cy-g.ball.Radius)
}

func TestBrickHitFromBelow(t *testing.T) {
	g, sound := newTestGame(t)
	// Yellow brick at (600,0)-(800,150) has nothing below it.
	placeBall(g, 700, 160)
	g.ball.Velocity = core.V(0, -300)

	g.resolveBricks()

	b := g.current().Bricks[3]
	if !b.Destroyed {
		t.Fatal("brick should be destroyed")
	}
	if g.ball.Velocity.Y != 300 {
		t.Errorf("ball should bounce down, vy = %g", g.ball.Velocity.Y)
	}
	// Pushed out by radius - |penetration.y| = 12.5 - 10
	if !approx(g.ball.Pos.Y, 150) {
		t.Errorf("ball y = %g, expected 150", g.ball.Pos.Y)
	}
	if g.Stats().BricksBroken != 1 || sound.count(SoundBrickBreak) != 1 {
		t.Error("brick break should be counted and heard once")
	}

	// Already destroyed: a second pass must not touch it again.
	g.ball.Velocity = core.V(0, -300)
	placeBall(g, 700, 160)
	g.resolveBricks()
	if g.Stats().BricksBroken != 1 {
		t.Errorf("brick destroyed twice, count = %d", g.Stats().BricksBroken)
	}
	if g.ball.Velocity.Y != -300 {
		t.Error("destroyed bricks should not deflect the ball")
	}
}

func TestBrickHitFromSide(t *testing.T) {
	g, _ := newTestGame(t, [][]int{{0, 2}})
	// Brick spans x 400..800; approach from the left.
	placeBall(g, 390, 100)
	g.ball.Velocity = core.V(200, 0)

	g.resolveBricks()

	if g.ball.Velocity.X != -200 {
		t.Errorf("ball should bounce left, vx = %g", g.ball.Velocity.X)
	}
	// Penetration points right (closest x 400 - center 390 = 10): push left by 2.5
	if !approx(g.ball.Pos.X, 390-12.5-2.5) {
		t.Errorf("ball x = %g", g.ball.Pos.X)
	}
}

func TestSolidBrickShakes(t *testing.T) {
	g, sound := newTestGame(t)
	// Solid brick at (0,0)-(200,150) has nothing below it.
	placeBall(g, 100, 160)
	g.ball.Velocity = core.V(0, -300)

	g.resolveBricks()

	if g.current().Bricks[0].Destroyed {
		t.Fatal("solid bricks are never destroyed")
	}
	shake, _, _ := g.Effects()
	if !shake || g.shakeTime != g.cfg.Gameplay.ShakeDuration {
		t.Error("solid hit should start a screen shake")
	}
	if g.ball.Velocity.Y != 300 {
		t.Error("solid brick should reflect the ball")
	}
	if sound.count(SoundSolidHit) != 1 {
		t.Error("solid hit sound should play")
	}

	// The shake wears off.
	g.Update(0.1)
	if shake, _, _ := g.Effects(); shake {
		t.Error("shake should end after its duration")
	}
	if g.shakeTime != 0 {
		t.Errorf("shake timer should stop at zero, got %g", g.shakeTime)
	}
}

func TestPassThrough(t *testing.T) {
	g, _ := newTestGame(t)
	g.ball.PassThrough = true

	placeBall(g, 700, 160)
	g.ball.Velocity = core.V(0, -300)
	before := g.ball
	g.resolveBricks()
	if !g.current().Bricks[3].Destroyed {
		t.Error("pass-through ball still destroys bricks")
	}
	if g.ball.Velocity != before.Velocity || g.ball.Pos != before.Pos {
		t.Error("pass-through ball should not be deflected by destructible bricks")
	}

	placeBall(g, 100, 160)
	g.ball.Velocity = core.V(0, -300)
	g.resolveBricks()
	if g.ball.Velocity.Y != 300 {
		t.Error("pass-through ball should still bounce off solid bricks")
	}
}

func TestPaddleDeadCenter(t *testing.T) {
	g, sound := newTestGame(t)
	// Paddle at x=350, width 100: center 400.
	placeBall(g, 400, 572.5)
	g.ball.Velocity = core.V(70, 300)
	speed := g.ball.Velocity.Len()

	g.resolvePaddle()

	if g.ball.Velocity.X != 0 {
		t.Errorf("dead-center hit should zero vx, got %g", g.ball.Velocity.X)
	}
	if g.ball.Velocity.Y >= 0 {
		t.Errorf("ball should bounce up, vy = %g", g.ball.Velocity.Y)
	}
	if !approx(g.ball.Velocity.Len(), speed) {
		t.Errorf("speed changed: %g -> %g", speed, g.ball.Velocity.Len())
	}
	if g.ball.Stuck {
		t.Error("non-sticky ball should not stick")
	}
	if sound.count(SoundPaddleHit) != 1 {
		t.Error("paddle hit sound should play")
	}
}

func TestPaddleEdgeSteers(t *testing.T) {
	tests := []struct {
		name    string
		centerX float64
		wantVX  float64 // Sign only
	}{
		{"left half", 370, -1},
		{"right half", 430, 1},
		{"past right edge", 458, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := newTestGame(t)
			placeBall(g, tc.centerX, 572.5)
			g.ball.Velocity = core.V(0, 350)
			speed := g.ball.Velocity.Len()

			g.resolvePaddle()

			if math.Signbit(g.ball.Velocity.X) != (tc.wantVX < 0) || g.ball.Velocity.X == 0 {
				t.Errorf("vx = %g, expected sign %g", g.ball.Velocity.X, tc.wantVX)
			}
			if g.ball.Velocity.Y >= 0 {
				t.Error("ball should always leave upward")
			}
			if !approx(g.ball.Velocity.Len(), speed) {
				t.Errorf("speed changed: %g -> %g", speed, g.ball.Velocity.Len())
			}
		})
	}
}

func TestPaddleEdgeNotClamped(t *testing.T) {
	g, _ := newTestGame(t)
	// Center 8 units past the right edge: percentage 1.16.
	placeBall(g, 458, 572.5)
	g.ball.Velocity = core.V(0, 350)

	g.resolvePaddle()

	// Before renormalizing vx was 100 * 1.16 * 2 = 232 against vy 350.
	want := 350 * 232 / math.Hypot(232, 350)
	if !approx(g.ball.Velocity.X, want) {
		t.Errorf("vx = %g, expected %g", g.ball.Velocity.X, want)
	}
}

func TestStickyPaddle(t *testing.T) {
	g, _ := newTestGame(t)
	g.ball.Sticky = true
	placeBall(g, 400, 572.5)
	g.ball.Velocity = core.V(0, 350)

	g.resolvePaddle()
	if !g.ball.Stuck {
		t.Error("sticky ball should stick to the paddle")
	}

	// A stuck ball is ignored by the paddle check.
	g.ball.Velocity = core.V(0, 350)
	g.resolvePaddle()
	if g.ball.Velocity.Y != 350 {
		t.Error("stuck ball should not be deflected")
	}
}

func TestMultiBrickFrame(t *testing.T) {
	// Two bricks side by side; the ball straddles their shared bottom corner.
	g, _ := newTestGame(t, [][]int{{2, 2}})
	placeBall(g, 400, 305)
	g.ball.Velocity = core.V(0, -300)

	g.resolveBricks()

	bricks := g.current().Bricks
	if !bricks[0].Destroyed || !bricks[1].Destroyed {
		t.Fatal("both bricks should be hit in the same frame")
	}
	// The first hit pushes the ball down to exactly one radius below the
	// bricks, so the second one still touches and flips vy back.
	if g.ball.Velocity.Y != -300 {
		t.Errorf("vy = %g, expected -300 after two flips", g.ball.Velocity.Y)
	}
}
