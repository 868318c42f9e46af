package breakout

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// State is the game's top-level mode.
type State int

const (
	StateMenu   State = iota // Level select, ball parked
	StateActive              // Playing
	StateWin                 // Level cleared
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateActive:
		return "active"
	case StateWin:
		return "win"
	default:
		return "unknown"
	}
}

// ErrNoLevels is returned by New when no level data is supplied.
var ErrNoLevels = errors.New("breakout: no levels")

// RunStats counts what happened since the player last left the menu.
type RunStats struct {
	BricksBroken   int
	PowerUpsCaught int
	LivesLost      int
	Elapsed        float64 // Seconds spent in the active state
}

// Game is a single breakout session: one paddle, one ball, the falling and
// active power-ups, and a set of levels. It is not safe for concurrent use;
// the host drives it with ProcessInput, Update and Render once per frame.
type Game struct {
	cfg config.BreakoutConfig
	svc Services
	log *log.Logger
	rng *SimpleRNG

	defs   []LevelData
	levels []Level
	level  int

	paddle   Paddle
	ball     Ball
	powerUps []PowerUp

	state State
	lives int

	shake     bool
	shakeTime float64
	confuse   bool
	chaos     bool

	clock float64 // Seconds since Init, drives visual effects
	stats RunStats
}

// New creates a game over the given levels. Call Init before the first frame.
func New(cfg config.BreakoutConfig, levels []LevelData, svc Services) (*Game, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("breakout: %w", err)
	}
	svc = svc.withDefaults()
	return &Game{
		cfg:   cfg,
		svc:   svc,
		log:   svc.Logger,
		rng:   NewSimpleRNG(svc.Seed),
		defs:  append([]LevelData(nil), levels...),
		lives: cfg.Gameplay.Lives,
	}, nil
}

// Init builds every level, places the paddle and ball, and starts the music.
// The game begins in the menu on the first level.
func (g *Game) Init() error {
	g.levels = make([]Level, len(g.defs))
	for i, def := range g.defs {
		g.levels[i].Name = levelName(def)
		if err := g.levels[i].Load(def.Grid, g.cfg.Field.Width, g.brickAreaHeight()); err != nil {
			return fmt.Errorf("breakout: init: %w", err)
		}
	}
	g.level = 0
	g.state = StateMenu
	g.lives = g.cfg.Gameplay.Lives
	g.powerUps = g.powerUps[:0]
	g.resetPlayer()
	g.log.Info("levels loaded", "count", len(g.levels))
	g.svc.Sound.Play(SoundMusic)
	return nil
}

func levelName(def LevelData) string {
	if def.Name != "" {
		return def.Name
	}
	return def.ID
}

func (g *Game) brickAreaHeight() float64 {
	return g.cfg.Field.Height * g.cfg.Field.BrickArea
}

func (g *Game) current() *Level {
	return &g.levels[g.level]
}

// ProcessInput applies one frame of key state. Menu and win-screen actions
// fire once per press; paddle movement and launch act while held.
func (g *Game) ProcessInput(keys *core.KeyState, dt float64) {
	switch g.state {
	case StateMenu:
		if keys.Consume(core.KeyConfirm) {
			g.setState(StateActive)
			g.stats = RunStats{}
		}
		if keys.Consume(core.KeyUp) {
			g.level = (g.level + 1) % len(g.levels)
		}
		if keys.Consume(core.KeyDown) {
			g.level = (g.level - 1 + len(g.levels)) % len(g.levels)
		}
	case StateWin:
		if keys.Consume(core.KeyConfirm) {
			g.chaos = false
			g.setState(StateMenu)
		}
	case StateActive:
		g.movePaddle(keys, dt)
		if keys.Held(core.KeyLaunch) {
			g.ball.Stuck = false
		}
	}
}

// movePaddle slides the paddle within the field. A stuck ball rides along.
func (g *Game) movePaddle(keys *core.KeyState, dt float64) {
	step := 0.0
	if keys.Held(core.KeyLeft) {
		step -= g.cfg.Paddle.Speed * dt
	}
	if keys.Held(core.KeyRight) {
		step += g.cfg.Paddle.Speed * dt
	}
	if step == 0 {
		return
	}
	maxX := max(g.cfg.Field.Width-g.paddle.Size.X, 0)
	x := core.ClampF(g.paddle.Pos.X+step, 0, maxX)
	moved := x - g.paddle.Pos.X
	g.paddle.Pos.X = x
	if g.ball.Stuck {
		g.ball.Pos.X += moved
	}
}

func (g *Game) setState(s State) {
	if g.state == s {
		return
	}
	g.log.Debug("state change", "from", g.state, "to", s, "level", g.level)
	g.state = s
}

// resetLevel rebuilds the current level's bricks and restores lives.
func (g *Game) resetLevel() {
	lvl := g.current()
	if err := lvl.Load(g.defs[g.level].Grid, g.cfg.Field.Width, g.brickAreaHeight()); err != nil {
		// Grids are validated in Init and ReplaceLevel.
		panic(fmt.Sprintf("breakout: reload validated level %d: %v", g.level, err))
	}
	g.lives = g.cfg.Gameplay.Lives
}

// resetPlayer puts the paddle and a stuck ball back at the start position
// and clears every effect on them.
func (g *Game) resetPlayer() {
	w, h := g.cfg.Paddle.Width, g.cfg.Paddle.Height
	g.paddle = Paddle{
		Rect:  core.NewRect(g.cfg.Field.Width/2-w/2, g.cfg.Field.Height-h, w, h),
		Color: core.ColorWhite,
	}

	r := g.cfg.Ball.Radius
	g.ball.Radius = r
	g.ball.Reset(
		g.paddle.Pos.Add(core.V(w/2-r, -r*2)),
		core.V(g.cfg.Ball.VelocityX, g.cfg.Ball.VelocityY),
	)
	g.ball.Color = core.ColorWhite

	g.chaos = false
	g.confuse = false
}

// ReplaceLevel swaps the grid of level i, for example after its file was
// edited. The bricks are rebuilt at once unless that level is being played,
// in which case the new grid applies at its next reset.
func (g *Game) ReplaceLevel(i int, def LevelData) error {
	if i < 0 || i >= len(g.defs) {
		return fmt.Errorf("breakout: level index %d out of range [0, %d)", i, len(g.defs))
	}
	if err := ValidateGrid(levelName(def), def.Grid); err != nil {
		return err
	}
	g.defs[i] = def
	if i >= len(g.levels) {
		return nil // Not initialized yet
	}
	g.levels[i].Name = levelName(def)
	if i == g.level && g.state == StateActive {
		return nil
	}
	return g.levels[i].Load(def.Grid, g.cfg.Field.Width, g.brickAreaHeight())
}

// FindLevel returns the index of the level with the given ID, or -1.
func (g *Game) FindLevel(id string) int {
	for i, def := range g.defs {
		if def.ID == id {
			return i
		}
	}
	return -1
}

// SelectLevel jumps to level i. It only has an effect in the menu.
func (g *Game) SelectLevel(i int) {
	if g.state != StateMenu || i < 0 || i >= len(g.levels) {
		return
	}
	g.level = i
}

// State returns the current game state.
func (g *Game) State() State { return g.state }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// LevelIndex returns the index of the current level.
func (g *Game) LevelIndex() int { return g.level }

// LevelCount returns the number of levels.
func (g *Game) LevelCount() int { return len(g.defs) }

// LevelName returns the display name of the current level.
func (g *Game) LevelName() string { return levelName(g.defs[g.level]) }

// LevelID returns the identifier of the current level.
func (g *Game) LevelID() string { return g.defs[g.level].ID }

// Stats returns the counters of the current or last run.
func (g *Game) Stats() RunStats { return g.stats }

// Effects returns the post-processing flags: shake, confuse and chaos.
func (g *Game) Effects() (shake, confuse, chaos bool) {
	return g.shake, g.confuse, g.chaos
}
