// Package storage provides SQLite-based persistence for campaign scores and
// per-level results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished campaign run.
type ScoreEntry struct {
	ID        int64
	Campaign  string
	SessionID string
	Score     int // Sum of level scores
	Levels    int // Levels played
	Won       int // Levels that reached their target
	CreatedAt time.Time
}

// LevelRecord is the stored result of one finished level.
type LevelRecord struct {
	ID        int64
	SessionID string
	Campaign  string
	Level     int // 1-indexed
	Score     int
	Moves     int
	Outcome   string // "won" or "lost"
	CreatedAt time.Time
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			campaign TEXT NOT NULL,
			session_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			levels INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_campaign ON scores(campaign);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(campaign, score DESC);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			campaign TEXT NOT NULL,
			level INTEGER NOT NULL,
			score INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_session ON level_results(session_id);
		CREATE INDEX IF NOT EXISTS idx_level_results_best ON level_results(campaign, level, score DESC);
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

// SaveScore records a finished campaign run.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (campaign, session_id, score, levels, won) VALUES (?, ?, ?, ?, ?)",
		e.Campaign, e.SessionID, e.Score, e.Levels, e.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N runs for the given campaign.
// Results are ordered by score descending.
func (s *Store) TopScores(campaign string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, campaign, session_id, score, levels, won, created_at
		 FROM scores
		 WHERE campaign = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		campaign, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Campaign, &e.SessionID, &e.Score, &e.Levels, &e.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best run score for the given campaign.
// Returns 0 if no scores exist.
func (s *Store) HighScore(campaign string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE campaign = ?",
		campaign,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all runs and level results for the given campaign.
func (s *Store) ClearScores(campaign string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec("DELETE FROM scores WHERE campaign = ?", campaign); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM level_results WHERE campaign = ?", campaign); err != nil {
		return fmt.Errorf("storage: cannot clear level results: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveLevelResult records one finished level.
func (s *Store) SaveLevelResult(r LevelRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO level_results (session_id, campaign, level, score, moves, outcome)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Campaign, r.Level, r.Score, r.Moves, r.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SessionResults returns every level recorded for a session, in level order.
func (s *Store) SessionResults(sessionID string) ([]LevelRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, campaign, level, score, moves, outcome, created_at
		 FROM level_results
		 WHERE session_id = ?
		 ORDER BY level ASC, id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level results: %w", err)
	}
	return scanLevelRecords(rows)
}

// BestLevelScore returns the highest score recorded for a level of a
// campaign, or 0 when it has never been played.
func (s *Store) BestLevelScore(campaign string, level int) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM level_results WHERE campaign = ? AND level = ?",
		campaign, level,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query level best: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

func scanLevelRecords(rows *sql.Rows) ([]LevelRecord, error) {
	defer rows.Close()

	var records []LevelRecord
	for rows.Next() {
		var r LevelRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Campaign, &r.Level, &r.Score, &r.Moves, &r.Outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// CampaignStats contains aggregated statistics for a campaign.
type CampaignStats struct {
	Campaign   string
	RunsCount  int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LevelsWon  int
	LevelsLost int
	LastPlayed time.Time
}

// GetCampaignStats retrieves aggregated statistics for a specific campaign.
func (s *Store) GetCampaignStats(campaign string) (*CampaignStats, error) {
	stats := &CampaignStats{Campaign: campaign}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE campaign = ?`,
		campaign,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get campaign stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COALESCE(SUM(outcome = 'won'), 0), COALESCE(SUM(outcome = 'lost'), 0)
		 FROM level_results WHERE campaign = ?`,
		campaign,
	).Scan(&stats.LevelsWon, &stats.LevelsLost)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE campaign = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		campaign,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// Campaigns lists every campaign that has at least one recorded run.
func (s *Store) Campaigns() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT campaign FROM scores ORDER BY campaign`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list campaigns: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
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
