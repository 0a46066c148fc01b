// Package store persists user-edited suggestion tables in SQLite. A table
// that was never saved, or was reset, reads as its built-in default.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codepad/internal/logger"
	"codepad/internal/suggest"
)

// ErrUnknownTable is returned for names outside suggest.TableNames.
var ErrUnknownTable = errors.New("unknown suggestion table")

const schema = `
CREATE TABLE IF NOT EXISTS suggestion_tables (
	name       TEXT PRIMARY KEY,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS suggestions (
	table_name TEXT NOT NULL REFERENCES suggestion_tables(name) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	label      TEXT NOT NULL,
	value      TEXT NOT NULL,
	kind       TEXT NOT NULL,
	detail     TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (table_name, position)
);`

// Store is the suggestion table database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. ":memory:" works
// for tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps ":memory:" a single database
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	logger.Debug("suggestion store opened", "path", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func checkName(name suggest.TableName) error {
	if _, err := suggest.ParseTableName(string(name)); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return nil
}

// Load returns the stored table, or the default when it was never saved.
func (s *Store) Load(ctx context.Context, name suggest.TableName) ([]suggest.Suggestion, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	custom, err := s.Customized(ctx, name)
	if err != nil {
		return nil, err
	}
	if !custom {
		return suggest.DefaultTable(name), nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT label, value, kind, detail FROM suggestions WHERE table_name = ? ORDER BY position`, string(name))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()

	entries := []suggest.Suggestion{}
	for rows.Next() {
		var (
			e    suggest.Suggestion
			kind string
		)
		if err := rows.Scan(&e.Label, &e.Value, &kind, &e.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", name, err)
		}
		if k, ok := suggest.ParseKind(kind); ok {
			e.Kind = k
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Save replaces the stored table with entries, keeping their order.
func (s *Store) Save(ctx context.Context, name suggest.TableName, entries []suggest.Suggestion) error {
	if err := checkName(name); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO suggestion_tables (name, updated_at) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at`,
		string(name), time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to mark %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM suggestions WHERE table_name = ?`, string(name)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO suggestions (table_name, position, label, value, kind, detail) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()
	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, string(name), i, e.Label, e.Value, e.Kind.String(), e.Detail); err != nil {
			return fmt.Errorf("failed to insert %s[%d]: %w", name, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", name, err)
	}
	logger.Info("suggestion table saved", "table", name, "entries", len(entries))
	return nil
}

// Reset drops the stored copy so the table reads as its default again.
func (s *Store) Reset(ctx context.Context, name suggest.TableName) error {
	if err := checkName(name); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM suggestion_tables WHERE name = ?`, string(name)); err != nil {
		return fmt.Errorf("failed to reset %s: %w", name, err)
	}
	return nil
}

// ResetAll resets every table.
func (s *Store) ResetAll(ctx context.Context) error {
	for _, name := range suggest.TableNames() {
		if err := s.Reset(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// Customized reports whether name has a stored copy.
func (s *Store) Customized(ctx context.Context, name suggest.TableName) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM suggestion_tables WHERE name = ?`, string(name)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to look up %s: %w", name, err)
	}
	return n > 0, nil
}

// Tables loads all four tables.
func (s *Store) Tables(ctx context.Context) (suggest.Tables, error) {
	var t suggest.Tables
	for _, name := range suggest.TableNames() {
		entries, err := s.Load(ctx, name)
		if err != nil {
			return suggest.Tables{}, err
		}
		t = t.With(name, entries)
	}
	return t, nil
}
