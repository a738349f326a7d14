package eventsource

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	stream    TEXT    NOT NULL,
	version   INTEGER NOT NULL,
	id        TEXT    NOT NULL,
	type      TEXT    NOT NULL,
	timestamp TEXT    NOT NULL,
	data      BLOB,
	PRIMARY KEY (stream, version)
);
`

// SQLiteStore persists event streams in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) a SQLite-backed store.
// Use ":memory:" for an ephemeral database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("eventsource: open sqlite: %w", err)
	}
	// The modernc driver serializes access through a single connection;
	// this also keeps ":memory:" databases from vanishing between conns.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("eventsource: create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append atomically adds events to a stream. The version check applies even
// to an empty batch, so a stale writer never observes success.
func (s *SQLiteStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return -1, fmt.Errorf("eventsource: begin append: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM events WHERE stream = ?`, stream,
	).Scan(&current)
	if err != nil {
		return -1, fmt.Errorf("eventsource: read stream version: %w", err)
	}
	if current != expectedVersion {
		return current, ErrConcurrencyConflict
	}

	for _, e := range events {
		current++
		e.Stream = stream
		e.Version = current
		var data []byte
		if e.Data != nil {
			data = []byte(e.Data)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO events (stream, version, id, type, timestamp, data) VALUES (?, ?, ?, ?, ?, ?)`,
			stream, e.Version, e.ID, e.Type, e.Timestamp.Format(time.RFC3339Nano), data,
		)
		if err != nil {
			return -1, fmt.Errorf("eventsource: insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return -1, fmt.Errorf("eventsource: commit append: %w", err)
	}
	return current, nil
}

// Read returns events of a stream with version >= fromVersion.
func (s *SQLiteStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, id, type, timestamp, data FROM events
		 WHERE stream = ? AND version >= ? ORDER BY version`,
		stream, fromVersion,
	)
	if err != nil {
		return nil, fmt.Errorf("eventsource: read stream: %w", err)
	}
	defer rows.Close()

	var out []*Event
	for rows.Next() {
		e := &Event{Stream: stream}
		var ts string
		var data []byte
		if err := rows.Scan(&e.Version, &e.ID, &e.Type, &ts, &data); err != nil {
			return nil, fmt.Errorf("eventsource: scan event: %w", err)
		}
		e.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("eventsource: parse timestamp: %w", err)
		}
		if len(data) > 0 {
			e.Data = json.RawMessage(data)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("eventsource: iterate events: %w", err)
	}
	return out, nil
}

// StreamVersion returns the current version of a stream (-1 if absent).
func (s *SQLiteStore) StreamVersion(ctx context.Context, stream string) (int, error) {
	var current int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM events WHERE stream = ?`, stream,
	).Scan(&current)
	if err != nil {
		return -1, fmt.Errorf("eventsource: read stream version: %w", err)
	}
	return current, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
