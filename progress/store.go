// Package progress persists what the player has already seen and been given,
// using the pure-Go modernc.org/sqlite driver.
package progress

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store records played one-shot cutscenes, fired triggers and granted items.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path, creating parent directories
// and running migrations. A leading ~ expands to the home directory.
func Open(path string) (*Store, error) {
	if path != MemoryPath {
		if path != "" && path[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("progress: cannot expand home directory: %w", err)
			}
			path = filepath.Join(home, path[1:])
		}
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("progress: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("progress: cannot open database: %w", err)
	}
	// An in-memory database lives only as long as its connection.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("progress: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("progress: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS played_cutscenes (
			name TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			played_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS fired_triggers (
			map TEXT NOT NULL,
			trigger_id TEXT NOT NULL,
			fired_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (map, trigger_id)
		);

		CREATE TABLE IF NOT EXISTS granted_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			item TEXT NOT NULL,
			count INTEGER NOT NULL,
			cutscene TEXT NOT NULL DEFAULT '',
			granted_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_granted_items_item ON granted_items(item);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// MarkPlayed records that a cutscene finished. Replaying overwrites the run id.
func (s *Store) MarkPlayed(name, runID string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO played_cutscenes (name, run_id) VALUES (?, ?)",
		name, runID,
	)
	if err != nil {
		return fmt.Errorf("progress: mark %s played: %w", name, err)
	}
	return nil
}

func (s *Store) Played(name string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM played_cutscenes WHERE name = ?", name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("progress: query %s: %w", name, err)
	}
	return true, nil
}

func (s *Store) MarkTriggerFired(mapName, id string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO fired_triggers (map, trigger_id) VALUES (?, ?)",
		mapName, id,
	)
	if err != nil {
		return fmt.Errorf("progress: mark trigger %s/%s: %w", mapName, id, err)
	}
	return nil
}

// FiredTriggers returns the ids of the triggers already fired on a map.
func (s *Store) FiredTriggers(mapName string) (map[string]bool, error) {
	rows, err := s.db.Query("SELECT trigger_id FROM fired_triggers WHERE map = ?", mapName)
	if err != nil {
		return nil, fmt.Errorf("progress: query triggers for %s: %w", mapName, err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("progress: scan trigger: %w", err)
		}
		out[id] = true
	}
	return out, rows.Err()
}

// RecordItem logs a grant. cutscene may be empty.
func (s *Store) RecordItem(item string, count int, cutscene string) error {
	_, err := s.db.Exec(
		"INSERT INTO granted_items (item, count, cutscene) VALUES (?, ?, ?)",
		item, count, cutscene,
	)
	if err != nil {
		return fmt.Errorf("progress: record %d %s: %w", count, item, err)
	}
	return nil
}

// ItemTotals sums every grant per item.
func (s *Store) ItemTotals() (map[string]int, error) {
	rows, err := s.db.Query("SELECT item, SUM(count) FROM granted_items GROUP BY item")
	if err != nil {
		return nil, fmt.Errorf("progress: query items: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var item string
		var total int
		if err := rows.Scan(&item, &total); err != nil {
			return nil, fmt.Errorf("progress: scan item: %w", err)
		}
		out[item] = total
	}
	return out, rows.Err()
}

// Reset forgets everything.
func (s *Store) Reset() error {
	_, err := s.db.Exec("DELETE FROM played_cutscenes; DELETE FROM fired_triggers; DELETE FROM granted_items;")
	if err != nil {
		return fmt.Errorf("progress: reset: %w", err)
	}
	return nil
}
