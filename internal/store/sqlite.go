// Package store provides the SQLite persistence collaborator for the
// planner: per-day task lists, per-day config overrides, and the
// global config. The schedule store in memory is the source of truth;
// this package only makes it durable.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/task"
)

const globalConfigKey = "global_config"

// SQLite implements schedule.Persister on a SQLite database.
type SQLite struct {
	db *sql.DB
}

// New opens (creating if needed) the database at path and runs
// migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	const schema = `
		CREATE TABLE IF NOT EXISTS days (
			day_key TEXT PRIMARY KEY,
			tasks   TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS day_configs (
			day_key    TEXT PRIMARY KEY,
			start_time TEXT NOT NULL,
			end_time   TEXT NOT NULL,
			interval   INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// SaveDay replaces the stored task list for the day. An empty list
// deletes the row.
func (s *SQLite) SaveDay(dayKey string, tasks []*task.Task) error {
	if len(tasks) == 0 {
		if _, err := s.db.Exec(`DELETE FROM days WHERE day_key = ?`, dayKey); err != nil {
			return fmt.Errorf("deleting day %s: %w", dayKey, err)
		}
		return nil
	}

	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshaling tasks: %w", err)
	}

	query := `
		INSERT INTO days (day_key, tasks, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(day_key) DO UPDATE SET tasks = excluded.tasks, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, dayKey, string(payload), time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("saving day %s: %w", dayKey, err)
	}
	return nil
}

// SaveDayConfig replaces the stored override for the day.
func (s *SQLite) SaveDayConfig(dayKey string, cfg schedule.DayConfig) error {
	query := `
		INSERT INTO day_configs (day_key, start_time, end_time, interval) VALUES (?, ?, ?, ?)
		ON CONFLICT(day_key) DO UPDATE SET
			start_time = excluded.start_time,
			end_time   = excluded.end_time,
			interval   = excluded.interval
	`
	if _, err := s.db.Exec(query, dayKey, cfg.StartTime, cfg.EndTime, cfg.Interval); err != nil {
		return fmt.Errorf("saving day config %s: %w", dayKey, err)
	}
	return nil
}

// DeleteDayConfig removes the day's override row.
func (s *SQLite) DeleteDayConfig(dayKey string) error {
	if _, err := s.db.Exec(`DELETE FROM day_configs WHERE day_key = ?`, dayKey); err != nil {
		return fmt.Errorf("deleting day config %s: %w", dayKey, err)
	}
	return nil
}

// SaveGlobalConfig replaces the stored global config.
func (s *SQLite) SaveGlobalConfig(cfg schedule.DayConfig) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling global config: %w", err)
	}
	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.Exec(query, globalConfigKey, string(payload)); err != nil {
		return fmt.Errorf("saving global config: %w", err)
	}
	return nil
}

// Snapshot is the full persisted planner state.
type Snapshot struct {
	Global    schedule.DayConfig
	Overrides map[string]schedule.DayConfig
	Days      map[string][]*task.Task
}

// LoadAll reads the complete planner state. A missing global config
// falls back to the built-in default.
func (s *SQLite) LoadAll() (*Snapshot, error) {
	snap := &Snapshot{
		Global:    schedule.DefaultConfig(),
		Overrides: make(map[string]schedule.DayConfig),
		Days:      make(map[string][]*task.Task),
	}

	var raw string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, globalConfigKey).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
		// keep defaults
	case err != nil:
		return nil, fmt.Errorf("loading global config: %w", err)
	default:
		if err := json.Unmarshal([]byte(raw), &snap.Global); err != nil {
			return nil, fmt.Errorf("parsing global config: %w", err)
		}
	}

	rows, err := s.db.Query(`SELECT day_key, start_time, end_time, interval FROM day_configs`)
	if err != nil {
		return nil, fmt.Errorf("loading day configs: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var key string
		var cfg schedule.DayConfig
		if err := rows.Scan(&key, &cfg.StartTime, &cfg.EndTime, &cfg.Interval); err != nil {
			return nil, fmt.Errorf("scanning day config: %w", err)
		}
		snap.Overrides[key] = cfg
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating day configs: %w", err)
	}

	dayRows, err := s.db.Query(`SELECT day_key, tasks FROM days`)
	if err != nil {
		return nil, fmt.Errorf("loading days: %w", err)
	}
	defer func() { _ = dayRows.Close() }()
	for dayRows.Next() {
		var key, payload string
		if err := dayRows.Scan(&key, &payload); err != nil {
			return nil, fmt.Errorf("scanning day: %w", err)
		}
		var tasks []*task.Task
		if err := json.Unmarshal([]byte(payload), &tasks); err != nil {
			return nil, fmt.Errorf("parsing tasks for %s: %w", key, err)
		}
		snap.Days[key] = tasks
	}
	if err := dayRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating days: %w", err)
	}

	return snap, nil
}

// ReplaceAll wipes the stored state and writes the snapshot in a
// single transaction. Used by destructive import.
func (s *SQLite) ReplaceAll(snap *Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"days", "day_configs", "settings"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	cfgPayload, err := json.Marshal(snap.Global)
	if err != nil {
		return fmt.Errorf("marshaling global config: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)`, globalConfigKey, string(cfgPayload)); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}

	for key, cfg := range snap.Overrides {
		if _, err := tx.Exec(`INSERT INTO day_configs (day_key, start_time, end_time, interval) VALUES (?, ?, ?, ?)`,
			key, cfg.StartTime, cfg.EndTime, cfg.Interval); err != nil {
			return fmt.Errorf("writing day config %s: %w", key, err)
		}
	}

	now := time.Now().Format(time.RFC3339)
	for key, tasks := range snap.Days {
		if len(tasks) == 0 {
			continue
		}
		payload, err := json.Marshal(tasks)
		if err != nil {
			return fmt.Errorf("marshaling tasks for %s: %w", key, err)
		}
		if _, err := tx.Exec(`INSERT INTO days (day_key, tasks, updated_at) VALUES (?, ?, ?)`,
			key, string(payload), now); err != nil {
			return fmt.Errorf("writing day %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}
