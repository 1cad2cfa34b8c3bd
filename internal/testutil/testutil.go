// Package testutil provides helpers for tests that need a real database.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marquee/marquee/internal/database"
)

// TestDB wraps a migrated SQLite database living in a temp directory.
type TestDB struct {
	DB     *database.DB
	Conn   *sql.DB
	Path   string
	Logger zerolog.Logger
}

// NewTestDB creates a migrated database that is closed automatically when
// the test ends.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dir := t.TempDir()
	logger := NewTestLogger(t)

	db, err := database.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if _, err := db.Migrate(context.Background()); err != nil {
		db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	tdb := &TestDB{
		DB:     db,
		Conn:   db.Conn(),
		Path:   dir,
		Logger: logger,
	}
	t.Cleanup(tdb.Close)
	return tdb
}

// Close closes the database. Safe to call more than once.
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

// NewTestLogger creates a test logger that outputs to t.Log.
func NewTestLogger(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
}

// IntPtr returns a pointer to an int.
func IntPtr(i int) *int {
	return &i
}

// StringPtr returns a pointer to a string.
func StringPtr(s string) *string {
	return &s
}
