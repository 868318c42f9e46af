package breakout

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar      = '='
	BallChar        = '●'
	BrickGlyph      = '▓'
	SolidBrickGlyph = '█'
)

// Texts shown over the play field.
const (
	textStart  = "Press ENTER to start"
	textSelect = "Press W or S to select level"
	textWon    = "You WON!!!"
	textRetry  = "Press ENTER to retry or Q to quit"
)

// chaosRotateHz is how many times per second tints rotate while chaos is on.
const chaosRotateHz = 4

// Render draws the current frame into dst, scaling the field to fit.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	v := viewport{
		sx: float64(dst.Width()) / g.cfg.Field.Width,
		sy: float64(dst.Height()) / g.cfg.Field.Height,
	}

	g.renderBricks(dst, v)
	g.renderPowerUps(dst, v)
	g.renderPaddle(dst, v)
	g.renderBall(dst, v)
	g.postProcess(dst)

	// Text is drawn after post-processing so it stays readable.
	g.renderHUD(dst)
}

// viewport maps field units to screen cells.
type viewport struct {
	sx, sy float64
}

func (v viewport) cell(p core.Vec2) (int, int) {
	return int(math.Floor(p.X * v.sx)), int(math.Floor(p.Y * v.sy))
}

// span returns the half-open cell range covered by r, at least one cell wide
// and tall.
func (v viewport) span(r core.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = v.cell(r.Pos)
	x1 = int(math.Floor(r.Right() * v.sx))
	y1 = int(math.Floor(r.Bottom() * v.sy))
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)
	return x0, y0, x1, y1
}

func (g *Game) renderBricks(dst *core.Screen, v viewport) {
	if len(g.levels) == 0 {
		return
	}
	for i := range g.current().Bricks {
		b := &g.current().Bricks[i]
		if b.Destroyed {
			continue
		}
		x0, y0, x1, y1 := v.span(b.Rect)
		if x1-x0 >= 3 {
			x1-- // Leave a gap so neighbors stay distinguishable
		}
		glyph := rune(BrickGlyph)
		if b.Solid {
			glyph = SolidBrickGlyph
		}
		dst.FillRect(x0, y0, x1, y1, glyph, b.Color)
	}
}

func (g *Game) renderPowerUps(dst *core.Screen, v viewport) {
	for i := range g.powerUps {
		p := &g.powerUps[i]
		if p.Destroyed {
			continue
		}
		x0, y0, x1, _ := v.span(p.Rect)
		dst.FillRect(x0, y0, x1, y0+1, p.Type.Glyph(), p.Color)
	}
}

func (g *Game) renderPaddle(dst *core.Screen, v viewport) {
	x0, _, x1, _ := v.span(g.paddle.Rect)
	// The paddle sits on the bottom edge; keep it on the last row.
	dst.FillRect(x0, dst.Height()-1, x1, dst.Height(), PaddleChar, g.paddle.Color)
}

func (g *Game) renderBall(dst *core.Screen, v viewport) {
	x, y := v.cell(g.ball.Center())
	if g.ball.Stuck {
		y = min(y, dst.Height()-2)
	}
	dst.SetColored(x, y, BallChar, g.ball.Color)
}

// postProcess applies the screen-wide effects.
func (g *Game) postProcess(dst *core.Screen) {
	if g.confuse {
		dst.Flip()
	}
	if g.chaos {
		n := int(g.clock * chaosRotateHz)
		dst.Recolor(func(c core.Color) core.Color { return c.Rotate(n) })
	}
	if g.shake {
		dx := 1
		if int(g.clock*60)%2 == 1 {
			dx = -1
		}
		dst.Shift(dx)
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Lives: %d", g.lives))

	mid := dst.Height() / 2
	switch g.state {
	case StateMenu:
		dst.DrawTextCentered(mid-1, textStart)
		dst.DrawTextCentered(mid+1, textSelect)
		dst.DrawTextCentered(mid+3, fmt.Sprintf("< %d/%d %s >", g.level+1, len(g.defs), g.LevelName()))
	case StateWin:
		dst.DrawTextCentered(mid-1, textWon)
		dst.DrawTextCentered(mid+1, textRetry)
	}
}
