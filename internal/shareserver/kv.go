package shareserver

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// ErrNotFound is returned for missing or expired shares.
var ErrNotFound = errors.New("share not found")

// KV is the expiring key-value store behind the share endpoints.
type KV interface {
	Put(id string, payload []byte, ttl time.Duration) error
	Get(id string) ([]byte, error)
	Delete(id string) (bool, error)
	// Sweep removes expired rows and returns how many were dropped.
	Sweep() (int, error)
	Close() error
}

// SQLiteKV implements KV on a SQLite table. Expiry is enforced on
// read as well as by Sweep, so a stale row can never be served.
type SQLiteKV struct {
	db *sql.DB
}

// OpenKV opens (creating if needed) the share database at path.
func OpenKV(path string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening share database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to share database: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS shares (
			id         TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			expires_at TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating shares table: %w", err)
	}
	return &SQLiteKV{db: db}, nil
}

// Put stores the payload under id with the given time to live.
func (s *SQLiteKV) Put(id string, payload []byte, ttl time.Duration) error {
	expires := time.Now().Add(ttl).UTC().Format(time.RFC3339)
	query := `
		INSERT INTO shares (id, payload, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at
	`
	if _, err := s.db.Exec(query, id, string(payload), expires); err != nil {
		return fmt.Errorf("storing share %s: %w", id, err)
	}
	return nil
}

// Get returns the payload for id, or ErrNotFound when missing or
// expired.
func (s *SQLiteKV) Get(id string) ([]byte, error) {
	var payload, expires string
	err := s.db.QueryRow(`SELECT payload, expires_at FROM shares WHERE id = ?`, id).Scan(&payload, &expires)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading share %s: %w", id, err)
	}

	at, err := time.Parse(time.RFC3339, expires)
	if err != nil || !time.Now().Before(at) {
		return nil, ErrNotFound
	}
	return []byte(payload), nil
}

// Delete removes the share and reports whether a row existed.
func (s *SQLiteKV) Delete(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM shares WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting share %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Sweep drops expired rows.
func (s *SQLiteKV) Sweep() (int, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(`DELETE FROM shares WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, fmt.Errorf("sweeping shares: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Close releases database resources.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
