// Package storage provides SQLite-based persistence for finished breakout runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Run outcomes as stored in the outcome column.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run represents a single finished attempt at a level.
type Run struct {
	ID             int64
	Player         string // "local" or the SSH user
	LevelID        string
	LevelName      string
	Outcome        string // OutcomeWon or OutcomeLost
	BricksBroken   int
	PowerUpsCaught int
	LivesLost      int
	Duration       time.Duration
	CreatedAt      time.Time
}

// Won reports whether the run cleared its level.
func (r Run) Won() bool {
	return r.Outcome == OutcomeWon
}

// LevelStats aggregates all runs of one level.
type LevelStats struct {
	LevelID    string
	LevelName  string
	Plays      int
	Wins       int
	BestTime   time.Duration // Fastest win, zero if never won
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL DEFAULT 'local',
			level_id TEXT NOT NULL,
			level_name TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			bricks_broken INTEGER NOT NULL DEFAULT 0,
			powerups_caught INTEGER NOT NULL DEFAULT 0,
			lives_lost INTEGER NOT NULL DEFAULT 0,
			duration_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(level_id, outcome, duration_secs);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Outcome != OutcomeWon && r.Outcome != OutcomeLost {
		return 0, fmt.Errorf("storage: invalid outcome %q", r.Outcome)
	}
	if r.Player == "" {
		r.Player = "local"
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (player, level_id, level_name, outcome, bricks_broken, powerups_caught, lives_lost, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Player,
		r.LevelID,
		r.LevelName,
		r.Outcome,
		r.BricksBroken,
		r.PowerUpsCaught,
		r.LivesLost,
		r.Duration.Seconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, player, level_id, level_name, outcome, bricks_broken,
		        powerups_caught, lives_lost, duration_secs, created_at`

// RecentRuns retrieves the most recent runs across all levels.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// BestRuns retrieves the top N runs for a level.
// Wins come first, fastest first; losses follow, most bricks broken first.
func (s *Store) BestRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY outcome = 'won' DESC,
		          CASE WHEN outcome = 'won' THEN duration_secs END ASC,
		          bricks_broken DESC,
		          id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// LevelStats aggregates the run history per level, ordered by level ID.
func (s *Store) LevelStats() ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id,
		        MAX(level_name),
		        COUNT(*),
		        SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END),
		        MIN(CASE WHEN outcome = 'won' THEN duration_secs END),
		        MAX(created_at)
		 FROM runs
		 GROUP BY level_id
		 ORDER BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStats
	for rows.Next() {
		var st LevelStats
		var best sql.NullFloat64
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.LevelName, &st.Plays, &st.Wins, &best, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if best.Valid {
			st.BestTime = secondsToDuration(best.Float64)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes all runs for the given level, or every run when levelID
// is empty.
func (s *Store) ClearRuns(levelID string) error {
	var err error
	if levelID == "" {
		_, err = s.db.Exec("DELETE FROM runs")
	} else {
		_, err = s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var secs float64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Player,
			&r.LevelID,
			&r.LevelName,
			&r.Outcome,
			&r.BricksBroken,
			&r.PowerUpsCaught,
			&r.LivesLost,
			&secs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = secondsToDuration(secs)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles the datetime as either time.Time or string,
// depending on how the driver hands it back.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func secondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second)).Round(time.Millisecond)
}
