package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
)

// setPlayFlags points the play flags at a temp directory and restores them
// when the test ends.
func setPlayFlags(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	levelDir := filepath.Join(dir, "levels")
	if err := os.Mkdir(levelDir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(levelDir, "one.lvl"), []byte("# name: One\n1 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	saved := []any{flagLevelsDir, flagWatch, flagMute, flagLogFile, flagDBPath, flagLogLevel}
	t.Cleanup(func() {
		flagLevelsDir = saved[0].(string)
		flagWatch = saved[1].(bool)
		flagMute = saved[2].(bool)
		flagLogFile = saved[3].(string)
		flagDBPath = saved[4].(string)
		flagLogLevel = saved[5].(string)
	})

	flagLevelsDir = levelDir
	flagWatch = true
	flagMute = true
	flagLogFile = filepath.Join(dir, "play.log")
	flagDBPath = filepath.Join(dir, "runs.db")
	flagLogLevel = "info"
	return dir
}

func TestPlayGameClosesResourcesOnError(t *testing.T) {
	dir := setPlayFlags(t)

	runErr := errors.New("terminal gone")
	var watcher *levels.Watcher
	err := playGame(func(opts tui.Options) error {
		if opts.Store == nil {
			t.Error("store should be open while the game runs")
		}
		if len(opts.Levels) != 1 || opts.Levels[0].Name != "One" {
			t.Errorf("unexpected levels: %+v", opts.Levels)
		}
		watcher = opts.Watcher
		return runErr
	})

	if !errors.Is(err, runErr) {
		t.Fatalf("expected wrapped run error, got %v", err)
	}
	if watcher == nil {
		t.Fatal("--watch should start a watcher")
	}
	select {
	case _, ok := <-watcher.Events:
		if ok {
			t.Error("watcher should be closed after the game stops")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher was not closed")
	}

	data, rerr := os.ReadFile(filepath.Join(dir, "play.log"))
	if rerr != nil {
		t.Fatal(rerr)
	}
	if !strings.Contains(string(data), "game stopped") {
		t.Errorf("log file should record the failure, got %q", data)
	}
}

func TestPlayGameWatchNeedsLevels(t *testing.T) {
	setPlayFlags(t)
	flagLevelsDir = ""

	err := playGame(func(tui.Options) error {
		t.Error("game should not start")
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "--watch requires --levels") {
		t.Errorf("expected --watch error, got %v", err)
	}
}

func TestPlayGameSuccess(t *testing.T) {
	setPlayFlags(t)
	flagWatch = false

	called := false
	err := playGame(func(opts tui.Options) error {
		called = true
		if opts.Watcher != nil {
			t.Error("no watcher without --watch")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("playGame() failed: %v", err)
	}
	if !called {
		t.Error("game did not run")
	}
}
