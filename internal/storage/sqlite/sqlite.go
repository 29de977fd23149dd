// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/lendbook/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// timestampLayout has a fixed width so that lexical order equals time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
// Any failure is wrapped in storage.ErrStoreUnavailable.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create database directory: %v", storage.ErrStoreUnavailable, err)
	}

	// Pragmas are set per connection through the DSN so every pooled
	// connection enforces foreign keys.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", storage.ErrStoreUnavailable, err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", storage.ErrStoreUnavailable, err)
	}

	return newWithDB(db), nil
}

// newWithDB wraps an already migrated database.
func newWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// timestamp returns the current time in storage layout.
func (s *SQLiteStore) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}

// constraintError converts a SQLite constraint failure into
// storage.ErrConstraintViolation worded for its class, and returns nil for any
// other error. onUnique and onForeignKey override the generic wording.
func constraintError(err error, subject, onUnique, onForeignKey string) error {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return nil
	}

	reason := subject + " violates a constraint"
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		reason = subject + " id already exists"
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		reason = subject + " is missing a required value"
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		if onUnique != "" {
			reason = onUnique
		}
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		if onForeignKey != "" {
			reason = onForeignKey
		}
	}
	return fmt.Errorf("%w: %s", storage.ErrConstraintViolation, reason)
}

// nullable maps "" to NULL for optional text columns.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
