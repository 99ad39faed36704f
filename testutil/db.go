// Package testutil provides shared helpers for tests that need a real
// database. SQLite is embedded, so unlike a server-backed database these
// helpers never need to skip: every test run gets its own private file.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/pkordes/doodle-diary/migrations"
)

// NewDB opens a fresh SQLite database in the test's temp directory and runs
// all embedded migrations against it.
//
// Each call returns an isolated database file, so tests never observe each
// other's state. The connection is closed automatically when the test (and
// all its subtests) finish; the file is removed with the temp dir.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doodle-diary.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("testutil.NewDB: open: %v", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewDB: ping: %v", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		db.Close()
		t.Fatalf("testutil.NewDB: create goose provider: %v", err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewDB: run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
