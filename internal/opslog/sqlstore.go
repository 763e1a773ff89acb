package opslog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLStore keeps the log in an embedded SQLite file.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore opens (or creates) the SQLite log at path.
func NewSQLStore(path string) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ops_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts TEXT NOT NULL,
		department TEXT NOT NULL,
		person TEXT NOT NULL,
		item_no TEXT NOT NULL DEFAULT '',
		qty INTEGER NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		date_received TEXT,
		checked_by TEXT,
		notes TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_ops_entries_ts ON ops_entries(ts);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Append inserts e.
func (s *SQLStore) Append(ctx context.Context, e *Entry) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO ops_entries (ts, department, person, item_no, qty, location, date_received, checked_by, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Timestamp.UTC().Format(timestampLayout),
		e.Department, e.Person, e.ItemNo, e.Qty, e.Location,
		e.DateReceived, e.CheckedBy, e.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read entry id: %w", err)
	}
	e.ID = uint(id)
	return nil
}

const selectEntries = `
	SELECT id, ts, department, person, item_no, qty, location,
		COALESCE(date_received, ''), COALESCE(checked_by, ''), COALESCE(notes, '')
	FROM ops_entries`

// Recent returns up to limit entries, newest first.
func (s *SQLStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectEntries+` ORDER BY id DESC LIMIT ?`, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	return scanEntries(rows)
}

// Day returns the entries logged on day (UTC), oldest first.
func (s *SQLStore) Day(ctx context.Context, day time.Time) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectEntries+` WHERE substr(ts, 1, 10) = ? ORDER BY id ASC`,
		day.Format(dayLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			ts string
		)
		if err := rows.Scan(&e.ID, &ts, &e.Department, &e.Person, &e.ItemNo, &e.Qty,
			&e.Location, &e.DateReceived, &e.CheckedBy, &e.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		parsed, err := time.Parse(timestampLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("entry %d has bad timestamp %q: %w", e.ID, ts, err)
		}
		e.Timestamp = parsed
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}
