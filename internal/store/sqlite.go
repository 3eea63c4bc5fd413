package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore records which normalized job keys each saved search has reported.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// seen_jobs table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS seen_jobs (
		search     TEXT NOT NULL,
		job_key    TEXT NOT NULL,
		first_seen DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (search, job_key)
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating seen_jobs table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// HasSeen returns true if the key has already been recorded for search.
func (s *SQLiteStore) HasSeen(search, key string) (bool, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM seen_jobs WHERE search = ? AND job_key = ?", search, key).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking seen status for %s/%s: %w", search, key, err)
	}
	return true, nil
}

// MarkSeen records a key for search. If it already exists the call is a no-op.
func (s *SQLiteStore) MarkSeen(search, key string) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO seen_jobs (search, job_key) VALUES (?, ?)", search, key)
	if err != nil {
		return fmt.Errorf("marking %s/%s as seen: %w", search, key, err)
	}
	return nil
}

// Cleanup deletes entries older than the given duration.
func (s *SQLiteStore) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.DateTime)
	_, err := s.db.Exec("DELETE FROM seen_jobs WHERE first_seen < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up seen jobs older than %v: %w", olderThan, err)
	}
	return nil
}

// Count returns how many keys are recorded for search.
func (s *SQLiteStore) Count(search string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM seen_jobs WHERE search = ?", search).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting seen jobs for %s: %w", search, err)
	}
	return count, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
