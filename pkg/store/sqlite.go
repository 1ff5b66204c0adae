package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/veslyn/tally/pkg/core"
)

// SQLite stores slots in a single database file. Each save mirrors the
// whole collection into the slot's rows inside one transaction, with a
// position column preserving sequence order, so the contract matches the
// file backend exactly.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (and if needed creates) the database at path.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		slot TEXT NOT NULL,
		pos INTEGER NOT NULL,
		id INTEGER NOT NULL,
		ts_unix_ms INTEGER NOT NULL,
		PRIMARY KEY (slot, pos)
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Load reads a slot's rows in sequence order. An unknown slot is an empty
// collection.
func (s *SQLite) Load(key string) ([]core.Entry, error) {
	rows, err := s.db.Query(
		"SELECT id, ts_unix_ms FROM entries WHERE slot = ? ORDER BY pos ASC", key)
	if err != nil {
		return nil, fmt.Errorf("query slot %s: %w", key, err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		var e core.Entry
		if err := rows.Scan(&e.ID, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan slot %s: %w", key, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return entries, nil
}

// Save replaces a slot's rows with the given collection in one transaction.
func (s *SQLite) Save(key string, entries []core.Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save %s: %w", key, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries WHERE slot = ?", key); err != nil {
		return fmt.Errorf("clear slot %s: %w", key, err)
	}
	stmt, err := tx.Prepare(
		"INSERT INTO entries (slot, pos, id, ts_unix_ms) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare save %s: %w", key, err)
	}
	defer stmt.Close()
	for i, e := range entries {
		if _, err := stmt.Exec(key, i, e.ID, e.Timestamp); err != nil {
			return fmt.Errorf("insert slot %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save %s: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
