// Package storage provides SQLite-based persistence for finished matches.
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

// Reasons a match ended.
const (
	EndCompleted = "completed" // A side reached the win score
	EndQuit      = "quit"      // The player left before the end
)

// Winner values.
const (
	WinnerLeft  = "left"
	WinnerRight = "right"
	WinnerNone  = ""
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// Match is the record of one finished match.
type Match struct {
	ID         string // UUID, assigned by SaveMatch when empty
	Variant    string
	ScoreLeft  int
	ScoreRight int
	Winner     string // WinnerLeft, WinnerRight or WinnerNone
	EndReason  string // EndCompleted or EndQuit
	Duration   time.Duration
	Frames     uint64
	Player     string // Local user or SSH user name
	CreatedAt  time.Time
}

// Stats contains aggregated results for one variant.
type Stats struct {
	Variant     string
	Matches     int
	LeftWins    int
	RightWins   int
	AvgDuration time.Duration
	LastPlayed  time.Time
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
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			variant TEXT NOT NULL,
			score_left INTEGER NOT NULL DEFAULT 0,
			score_right INTEGER NOT NULL DEFAULT 0,
			winner TEXT NOT NULL DEFAULT '',
			end_reason TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_variant ON matches(variant);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
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

// SaveMatch records a finished match and returns its ID.
func (s *Store) SaveMatch(m Match) (string, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, variant, score_left, score_right, winner, end_reason, duration_ms, frames, player)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID,
		m.Variant,
		m.ScoreLeft,
		m.ScoreRight,
		m.Winner,
		m.EndReason,
		m.Duration.Milliseconds(),
		int64(min(m.Frames, 1<<63-1)), //nolint:gosec // clamped to max int64
		m.Player,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}

	return m.ID, nil
}

const matchColumns = `match_id, variant, score_left, score_right, winner,
	end_reason, duration_ms, frames, player, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (Match, error) {
	var m Match
	var durationMS, frames int64
	var createdAt any

	err := row.Scan(
		&m.ID,
		&m.Variant,
		&m.ScoreLeft,
		&m.ScoreRight,
		&m.Winner,
		&m.EndReason,
		&durationMS,
		&frames,
		&m.Player,
		&createdAt,
	)
	if err != nil {
		return Match{}, err
	}

	m.Duration = time.Duration(durationMS) * time.Millisecond
	m.Frames = uint64(max(frames, 0))
	m.CreatedAt = parseTimestamp(createdAt)
	return m, nil
}

// MatchByID retrieves a match by its ID. Returns nil if it does not exist.
func (s *Store) MatchByID(id string) (*Match, error) {
	row := s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		id,
	)

	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &m, nil
}

// RecentMatches returns the newest matches first. An empty variant
// returns matches of every variant.
func (s *Store) RecentMatches(variant string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ? = '' OR variant = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return matches, nil
}

// VariantStats aggregates the history of one variant.
func (s *Store) VariantStats(variant string) (*Stats, error) {
	stats := &Stats{Variant: variant}
	var avgMS float64
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(duration_ms), 0),
		        MAX(created_at)
		 FROM matches WHERE variant = ?`,
		WinnerLeft, WinnerRight, variant,
	).Scan(&stats.Matches, &stats.LeftWins, &stats.RightWins, &avgMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}

	stats.AvgDuration = time.Duration(avgMS * float64(time.Millisecond))
	stats.LastPlayed = parseTimestamp(lastPlayed)
	return stats, nil
}

// ClearMatches deletes the history of a variant.
func (s *Store) ClearMatches(variant string) error {
	_, err := s.db.Exec("DELETE FROM matches WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// parseTimestamp handles the driver returning either time.Time or text.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
