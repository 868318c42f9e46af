package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagWatch   bool
	flagMute    bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play breakout",
	Long: `Start a local game.

Controls:
  A/D, Left/Right  - Move paddle
  Space            - Launch ball
  W/S, Up/Down     - Select level (menu)
  Enter            - Start level / back to menu after a win
  Tab              - Run history
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Wider paddle, slower ball
  normal - Config values as-is
  hard   - Narrower paddle, faster ball

With --watch, level files edited in the --levels directory are reloaded
while the game runs.

Examples:
  breakout play
  breakout play --difficulty hard
  breakout play --levels ./levels --watch
  breakout play --config ./my-breakout.yaml --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload level files when they change (requires --levels)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: no logs while playing)")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := playGame(tui.Run); err != nil {
		fatalf("%v", err)
	}
}

// playGame sets up a local session and hands it to run. Everything opened
// here is closed before it returns, including when run fails.
func playGame(run func(tui.Options) error) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	lvls, err := loadLevels()
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, ferr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if ferr != nil {
			return fmt.Errorf("cannot open log file: %w", ferr)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "breakout")
	if err != nil {
		return err
	}

	var watcher *levels.Watcher
	if flagWatch {
		if flagLevelsDir == "" {
			return errors.New("--watch requires --levels")
		}
		watcher, err = levels.NewWatcher(flagLevelsDir)
		if err != nil {
			return fmt.Errorf("cannot watch %s: %w", flagLevelsDir, err)
		}
		defer watcher.Close()
	}

	sound := audio.NewSoundManager()
	if !flagMute {
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio unavailable, playing without sound", "error", err)
		}
		defer sound.Cleanup()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	err = run(tui.Options{
		Config: cfg,
		Levels: lvls,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:   store,
		Sound:   sound,
		Logger:  logger,
		Watcher: watcher,
	})
	if err != nil {
		logger.Error("game stopped", "error", err)
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
