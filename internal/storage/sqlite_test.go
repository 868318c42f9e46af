package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, r Run) int64 {
	t.Helper()
	id, err := store.SaveRun(r)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, store, Run{LevelID: "01-standard", Outcome: OutcomeWon, Duration: time.Minute})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run after reopen, got %d", len(runs))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	in := Run{
		Player:         "alice",
		LevelID:        "06-fortress",
		LevelName:      "Fortress",
		Outcome:        OutcomeWon,
		BricksBroken:   42,
		PowerUpsCaught: 3,
		LivesLost:      1,
		Duration:       83*time.Second + 250*time.Millisecond,
	}
	id := mustSave(t, store, in)
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.ID != id {
		t.Errorf("ID = %d, expected %d", got.ID, id)
	}
	if got.Player != in.Player || got.LevelID != in.LevelID || got.LevelName != in.LevelName {
		t.Errorf("identity fields = %+v", got)
	}
	if !got.Won() {
		t.Errorf("Outcome = %q, expected won", got.Outcome)
	}
	if got.BricksBroken != 42 || got.PowerUpsCaught != 3 || got.LivesLost != 1 {
		t.Errorf("counters = %d/%d/%d", got.BricksBroken, got.PowerUpsCaught, got.LivesLost)
	}
	if got.Duration != in.Duration {
		t.Errorf("Duration = %v, expected %v", got.Duration, in.Duration)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestStoreSaveDefaultsPlayer(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, Run{LevelID: "a", Outcome: OutcomeLost})

	runs, err := store.RecentRuns(1)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if runs[0].Player != "local" {
		t.Errorf("Player = %q, expected local", runs[0].Player)
	}
}

func TestStoreSaveRejectsBadOutcome(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(Run{LevelID: "a", Outcome: "draw"}); err == nil {
		t.Error("Expected error for unknown outcome")
	}
}

func TestStoreRecentRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 30 {
		mustSave(t, store, Run{LevelID: "a", Outcome: OutcomeLost, BricksBroken: i})
	}

	runs, err := store.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Fatalf("Expected 5 runs, got %d", len(runs))
	}
	// Same-second inserts fall back to newest ID first
	for i, r := range runs {
		if r.BricksBroken != 29-i {
			t.Errorf("runs[%d].BricksBroken = %d, expected %d", i, r.BricksBroken, 29-i)
		}
	}

	all, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns(0) failed: %v", err)
	}
	if len(all) != 20 {
		t.Errorf("Expected default limit of 20, got %d", len(all))
	}
}

func TestStoreBestRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{LevelID: "a", Outcome: OutcomeLost, BricksBroken: 10})
	mustSave(t, store, Run{LevelID: "a", Outcome: OutcomeWon, Duration: 90 * time.Second})
	mustSave(t, store, Run{LevelID: "a", Outcome: OutcomeLost, BricksBroken: 30})
	mustSave(t, store, Run{LevelID: "a", Outcome: OutcomeWon, Duration: 45 * time.Second})
	mustSave(t, store, Run{LevelID: "b", Outcome: OutcomeWon, Duration: time.Second})

	runs, err := store.BestRuns("a", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 4 {
		t.Fatalf("Expected 4 runs for level a, got %d", len(runs))
	}

	tests := []struct {
		outcome  string
		duration time.Duration
		bricks   int
	}{
		{OutcomeWon, 45 * time.Second, 0},
		{OutcomeWon, 90 * time.Second, 0},
		{OutcomeLost, 0, 30},
		{OutcomeLost, 0, 10},
	}
	for i, tc := range tests {
		r := runs[i]
		if r.Outcome != tc.outcome || r.Duration != tc.duration || r.BricksBroken != tc.bricks {
			t.Errorf("runs[%d] = %s/%v/%d, expected %s/%v/%d",
				i, r.Outcome, r.Duration, r.BricksBroken, tc.outcome, tc.duration, tc.bricks)
		}
	}

	top, err := store.BestRuns("a", 1)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(top) != 1 || top[0].Duration != 45*time.Second {
		t.Errorf("BestRuns(a, 1) = %+v", top)
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{LevelID: "b", LevelName: "Bee", Outcome: OutcomeLost})
	mustSave(t, store, Run{LevelID: "a", LevelName: "Ay", Outcome: OutcomeWon, Duration: 20 * time.Second})
	mustSave(t, store, Run{LevelID: "a", LevelName: "Ay", Outcome: OutcomeWon, Duration: 12 * time.Second})
	mustSave(t, store, Run{LevelID: "a", LevelName: "Ay", Outcome: OutcomeLost})

	stats, err := store.LevelStats()
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(stats))
	}

	a, b := stats[0], stats[1]
	if a.LevelID != "a" || a.LevelName != "Ay" || a.Plays != 3 || a.Wins != 2 {
		t.Errorf("stats[a] = %+v", a)
	}
	if a.BestTime != 12*time.Second {
		t.Errorf("stats[a].BestTime = %v, expected 12s", a.BestTime)
	}
	if a.LastPlayed.IsZero() {
		t.Error("stats[a].LastPlayed was not populated")
	}
	if b.LevelID != "b" || b.Plays != 1 || b.Wins != 0 || b.BestTime != 0 {
		t.Errorf("stats[b] = %+v", b)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{LevelID: "a", Outcome: OutcomeWon})
	mustSave(t, store, Run{LevelID: "b", Outcome: OutcomeWon})

	if err := store.ClearRuns("a"); err != nil {
		t.Fatalf("ClearRuns(a) failed: %v", err)
	}
	runs, _ := store.RecentRuns(10)
	if len(runs) != 1 || runs[0].LevelID != "b" {
		t.Errorf("after ClearRuns(a): %+v", runs)
	}

	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns(\"\") failed: %v", err)
	}
	runs, _ = store.RecentRuns(10)
	if len(runs) != 0 {
		t.Errorf("Expected no runs after clearing all, got %d", len(runs))
	}
}
