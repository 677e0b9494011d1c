// Package sqlite implements the persistence ports over a SQLite database.
// Referential integrity between customers and projects is enforced by the
// schema itself: the foreign key cascades deletes, and every update is
// guarded by a row version.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Config captures the settings for opening the SQLite database.
type Config struct {
	// Path is the database file path (":memory:" for tests).
	Path string
}

// Open opens the database with foreign keys enabled. SQLite allows a single
// writer, so the pool is capped at one connection.
func Open(cfg Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	return db, nil
}

// EnsureSchema creates all tables when absent. With reset it first drops
// them, destroying all persisted data.
func EnsureSchema(ctx context.Context, db *sql.DB, reset bool) error {
	if reset {
		for _, table := range []string{"projects", "customers", "users"} {
			if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
				return fmt.Errorf("drop %s: %w", table, err)
			}
		}
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	roles TEXT NOT NULL DEFAULT '[]',
	created_at INTEGER NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS customers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	code TEXT NOT NULL,
	responsible_person TEXT NOT NULL,
	start_date INTEGER NOT NULL,
	version INTEGER NOT NULL DEFAULT 1
)`,
		`CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL,
	responsible_person TEXT NOT NULL DEFAULT '',
	start_date INTEGER NOT NULL,
	end_date INTEGER NOT NULL DEFAULT 0,
	customer_id INTEGER NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
	version INTEGER NOT NULL DEFAULT 1
)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_customer_id ON projects(customer_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Dates are stored as unix seconds; zero means "not set".

func timeToUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
