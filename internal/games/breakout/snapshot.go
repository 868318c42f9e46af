package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Snapshot is a read-only copy of everything a renderer or HUD needs.
type Snapshot struct {
	State      State
	Lives      int
	LevelIndex int
	LevelName  string

	Paddle   Paddle
	Ball     Ball
	Bricks   []Brick
	PowerUps []PowerUp

	Shake   bool
	Confuse bool
	Chaos   bool

	Clock    float64
	RNGState uint64
}

// Snapshot returns the current game state. Slices are copies.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		State:      g.state,
		Lives:      g.lives,
		LevelIndex: g.level,
		LevelName:  g.LevelName(),
		Paddle:     g.paddle,
		Ball:       g.ball,
		PowerUps:   append([]PowerUp(nil), g.powerUps...),
		Shake:      g.shake,
		Confuse:    g.confuse,
		Chaos:      g.chaos,
		Clock:      g.clock,
		RNGState:   g.rng.state,
	}
	if g.level < len(g.levels) {
		snap.Bricks = append([]Brick(nil), g.current().Bricks...)
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	h := uint64(snap.State)                 //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelIndex)      //#nosec G115 -- hash computation
	h = hashRect(h, snap.Paddle.Rect)
	h = hashVec(h, snap.Ball.Pos)
	h = hashVec(h, snap.Ball.Velocity)
	h = h*31 + flags(snap.Ball.Stuck, snap.Ball.Sticky, snap.Ball.PassThrough)
	h = h*31 + flags(snap.Shake, snap.Confuse, snap.Chaos)

	for i := range snap.Bricks {
		h = h*31 + flags(snap.Bricks[i].Destroyed)
	}

	for i := range snap.PowerUps {
		p := &snap.PowerUps[i]
		h = h*31 + uint64(p.Type) //#nosec G115 -- hash computation
		h = hashRect(h, p.Rect)
		h = h*31 + math.Float64bits(p.Duration)
		h = h*31 + flags(p.Activated, p.Destroyed)
	}

	h = h*31 + snap.RNGState

	return h
}

func hashVec(h uint64, v core.Vec2) uint64 {
	h = h*31 + math.Float64bits(v.X)
	return h*31 + math.Float64bits(v.Y)
}

func hashRect(h uint64, r core.Rect) uint64 {
	return hashVec(hashVec(h, r.Pos), r.Size)
}

func flags(bs ...bool) uint64 {
	var v uint64
	for i, b := range bs {
		if b {
			v |= 1 << i
		}
	}
	return v
}
