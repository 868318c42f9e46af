package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// statusTicks is how long a status message stays in the bottom bar.
const statusTicks = 180

// Options configures a game host.
type Options struct {
	Config  config.BreakoutConfig
	Levels  []levels.Level
	Runtime core.RuntimeConfig
	Store   *storage.Store       // Optional; runs are not recorded without it
	Sound   breakout.SoundPlayer // Optional
	Logger  *log.Logger          // Optional
	Player  string               // Recorded with each run, "local" if empty
	Watcher *levels.Watcher      // Optional; enables level hot reload
	KeyHold time.Duration        // Zero uses DefaultKeyHold

	// Renderer is the lipgloss renderer for this terminal.
	// Nil uses the default renderer.
	Renderer *lipgloss.Renderer
}

// levelChangedMsg reports a level file that changed on disk.
type levelChangedMsg struct{ path string }

// levelWatchErrMsg reports a watcher failure.
type levelWatchErrMsg struct{ err error }

// Model is the Bubble Tea model hosting one breakout game.
//
// Each tick feeds the latched key state to ProcessInput, advances the game by
// a fixed step and records finished runs.
type Model struct {
	game     *breakout.Game
	screen   *core.Screen
	renderer *Renderer
	keys     *KeyLatch
	bindings GameKeyMap
	help     help.Model
	store    *storage.Store
	log      *log.Logger
	runtime  core.RuntimeConfig
	player   string
	levels   []levels.Level
	watcher  *levels.Watcher
	board    *RunboardModel

	status      string
	statusTicks int
	quitting    bool
}

// NewModel creates a host model and initializes its game.
func NewModel(opts Options) (Model, error) {
	rt := opts.Runtime
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if opts.Player == "" {
		opts.Player = "local"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if len(opts.Levels) == 0 {
		opts.Levels = levels.Defaults()
	}

	game, err := breakout.New(opts.Config, levels.Data(opts.Levels), breakout.Services{
		Sound:  opts.Sound,
		Logger: logger,
		Seed:   rt.Seed,
	})
	if err != nil {
		return Model{}, err
	}
	if err := game.Init(); err != nil {
		return Model{}, err
	}

	h := help.New()
	h.Width = rt.ScreenW

	return Model{
		game:     game,
		screen:   core.NewScreen(rt.ScreenW, playHeight(rt.ScreenH)),
		renderer: NewRenderer(opts.Renderer),
		keys:     NewKeyLatch(opts.KeyHold),
		bindings: DefaultGameKeyMap(),
		help:     h,
		store:    opts.Store,
		log:      logger,
		runtime:  rt,
		player:   opts.Player,
		levels:   append([]levels.Level(nil), opts.Levels...),
		watcher:  opts.Watcher,
	}, nil
}

// playHeight reserves the last terminal row for the help bar.
func playHeight(h int) int {
	return max(h-1, 1)
}

// Game returns the hosted game.
func (m Model) Game() *breakout.Game {
	return m.game
}

// Init starts the tick loop and, if configured, the level watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.runtime.TickRate), waitForLevelChange(m.watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.board != nil {
			return m.updateBoard(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case levelChangedMsg:
		m.reloadLevel(msg.path)
		return m, waitForLevelChange(m.watcher)

	case levelWatchErrMsg:
		m.log.Warn("level watcher error", "error", msg.err)
		return m, waitForLevelChange(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.bindings.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.bindings.Runs):
		if m.store == nil {
			m.setStatus("run history is disabled")
			return m, nil
		}
		board := NewRunboardModel(m.store, levels.Data(m.levels), m.runtime.ScreenW, m.runtime.ScreenH)
		m.board = &board
		m.keys.Reset()
		return m, nil
	}

	if k, ok := m.bindings.MapKey(msg); ok {
		m.keys.Press(k, time.Now())
	}
	return m, nil
}

// updateBoard forwards input to the open run board.
func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	board := next.(RunboardModel)
	switch {
	case board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case board.IsGoingBack():
		m.board = nil
		return m, nil
	}
	m.board = &board
	return m, cmd
}

// handleResize processes window resize events. The field is scaled to the
// screen, so the game itself is not reset.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width
	if m.board != nil {
		m.board.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick advances the game by one fixed step.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.statusTicks > 0 {
		m.statusTicks--
		if m.statusTicks == 0 {
			m.status = ""
		}
	}

	// The game is paused while the run board is open.
	if m.board != nil {
		return m, tickCmd(m.runtime.TickRate)
	}

	m.step(now)
	return m, tickCmd(m.runtime.TickRate)
}

// step runs one frame: input, simulation, run recording.
func (m *Model) step(now time.Time) {
	dt := 1 / float64(m.runtime.TickRate)

	m.keys.Expire(now)
	m.game.ProcessInput(m.keys.State(), dt)
	result := m.game.Update(dt)
	if result.Outcome != core.OutcomeNone {
		m.recordRun(result.Outcome)
	}
}

// recordRun stores a finished run. Storage failures are logged, the game
// continues regardless.
func (m *Model) recordRun(outcome core.Outcome) {
	stats := m.game.Stats()
	run := storage.Run{
		Player:         m.player,
		LevelID:        m.game.LevelID(),
		LevelName:      m.game.LevelName(),
		Outcome:        outcome.String(),
		BricksBroken:   stats.BricksBroken,
		PowerUpsCaught: stats.PowerUpsCaught,
		LivesLost:      stats.LivesLost,
		Duration:       time.Duration(stats.Elapsed * float64(time.Second)),
	}
	m.log.Info("run finished",
		"player", run.Player,
		"level", run.LevelID,
		"outcome", run.Outcome,
		"duration", run.Duration.Round(time.Millisecond),
		"bricks", run.BricksBroken,
	)

	if outcome == core.OutcomeWon {
		m.setStatus(fmt.Sprintf("%s cleared in %s", run.LevelName, FormatDuration(run.Duration)))
	}

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.log.Warn("could not save run", "error", err)
	}
}

// reloadLevel re-parses a changed level file and swaps it into the game.
// Files that were not loaded at startup are ignored.
func (m *Model) reloadLevel(path string) {
	lvl, err := levels.NewLoader(filepath.Dir(path)).LoadFile(path)
	if err != nil {
		m.log.Warn("level reload failed", "path", path, "error", err)
		m.setStatus("reload failed: " + err.Error())
		return
	}

	i := m.levelIndex(path, lvl.ID)
	if i < 0 {
		m.log.Info("ignoring new level file until restart", "path", path)
		return
	}
	if err := m.game.ReplaceLevel(i, lvl.LevelData); err != nil {
		m.log.Warn("level reload rejected", "path", path, "error", err)
		m.setStatus("reload failed: " + err.Error())
		return
	}
	m.levels[i] = lvl
	m.log.Info("level reloaded", "path", path, "level", lvl.ID)
	m.setStatus("reloaded " + lvl.Name)
}

func (m *Model) levelIndex(path, id string) int {
	for i, l := range m.levels {
		if l.FilePath != "" && l.FilePath == path {
			return i
		}
	}
	return m.game.FindLevel(id)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTicks = statusTicks
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen) + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	line := m.help.View(m.bindings)
	if m.status != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
		return statusStyle.Render(m.status) + "  " + helpStyle.Render(line)
	}
	return helpStyle.Render(line)
}

// waitForLevelChange blocks until the watcher reports a change or an error.
func waitForLevelChange(w *levels.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case p, ok := <-w.Events:
			if !ok {
				return nil
			}
			return levelChangedMsg{path: p}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return levelWatchErrMsg{err: err}
		}
	}
}

// Run starts the Bubble Tea program for a local game.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
