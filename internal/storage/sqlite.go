// Package storage persists finished minesweeper games in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeLayout is fixed-width so created_at sorts as text.
const timeLayout = "2006-01-02 15:04:05.000"

// Store manages the SQLite database connection for game results.
type Store struct {
	db *sql.DB
}

// Result is one finished game.
type Result struct {
	ID        string
	GameID    string
	Rows      int
	Cols      int
	Mines     int
	Won       bool
	Revealed  int
	Score     int
	Elapsed   time.Duration
	Seed      int64
	CreatedAt time.Time
}

// Stats aggregates the results of one game id.
type Stats struct {
	GameID     string
	Played     int
	Won        int
	Lost       int
	HighScore  int
	BestTime   time.Duration // Zero when there is no win yet
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
	// SQLite allows one writer; the HTTP API saves from many goroutines.
	db.SetMaxOpenConns(1)

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			board_rows INTEGER NOT NULL,
			board_cols INTEGER NOT NULL,
			mines INTEGER NOT NULL,
			won INTEGER NOT NULL,
			revealed INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_game_id ON results(game_id, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_results_best ON results(game_id, won, elapsed_ms);
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

// SaveResult records a finished game and returns its generated id.
// A zero CreatedAt is replaced with the current time.
func (s *Store) SaveResult(r Result) (string, error) {
	if r.GameID == "" {
		return "", errors.New("storage: result has no game id")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.ID = uuid.NewString()

	_, err := s.db.Exec(
		`INSERT INTO results
		 (id, game_id, board_rows, board_cols, mines, won, revealed, score, elapsed_ms, seed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.Rows, r.Cols, r.Mines, r.Won, r.Revealed, r.Score,
		r.Elapsed.Milliseconds(), r.Seed, r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}
	return r.ID, nil
}

const resultColumns = `id, game_id, board_rows, board_cols, mines, won, revealed, score, elapsed_ms, seed, created_at`

// BestTimes returns the fastest wins for the game, quickest first.
func (s *Store) BestTimes(gameID string, limit int) ([]Result, error) {
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE game_id = ? AND won = 1
		 ORDER BY elapsed_ms ASC, created_at ASC
		 LIMIT ?`,
		gameID, defaultLimit(limit),
	)
}

// TopScores returns the highest scoring games, won or lost.
func (s *Store) TopScores(gameID string, limit int) ([]Result, error) {
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE game_id = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		gameID, defaultLimit(limit),
	)
}

// RecentResults returns the latest games, newest first.
func (s *Store) RecentResults(gameID string, limit int) ([]Result, error) {
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, defaultLimit(limit),
	)
}

func defaultLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	return limit
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var elapsedMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Rows, &r.Cols, &r.Mines, &r.Won,
			&r.Revealed, &r.Score, &elapsedMS, &r.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// Stats returns aggregated statistics for a game id. A game with no
// results yields zero counts.
func (s *Store) Stats(gameID string) (Stats, error) {
	stats := Stats{GameID: gameID}

	var best sql.NullInt64
	var lastPlayed sql.NullString
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(won), 0),
		        COALESCE(MAX(score), 0),
		        MIN(CASE WHEN won = 1 THEN elapsed_ms END),
		        MAX(created_at)
		 FROM results WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Played, &stats.Won, &stats.HighScore, &best, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats.Lost = stats.Played - stats.Won
	if best.Valid {
		stats.BestTime = time.Duration(best.Int64) * time.Millisecond
	}
	if lastPlayed.Valid {
		stats.LastPlayed = parseTime(lastPlayed.String)
	}
	return stats, nil
}

// HighScore returns the highest score for the given game, 0 if none.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearResults deletes all results for the given game.
func (s *Store) ClearResults(gameID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// parseTime handles both driver-decoded times and stored text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case []byte:
		return parseTime(string(t))
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
